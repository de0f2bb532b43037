package ui

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"github.com/mattn/go-runewidth"

	"github.com/a3music/opmchat/internal/chat"
)

// Sidebar represents the left panel with the conversation list
type Sidebar struct {
	sessions     []chat.SessionInfo
	selectedIdx  int
	activeID     string // id of the conversation open in the chat panel
	width        int
	height       int
	focused      bool
	scrollOffset int
}

// NewSidebar creates a new sidebar
func NewSidebar() *Sidebar {
	return &Sidebar{}
}

// SetSize sets the sidebar dimensions
func (s *Sidebar) SetSize(width, height int) {
	s.width = width
	s.height = height
}

// Width returns the sidebar width
func (s *Sidebar) Width() int {
	return s.width
}

// SetFocused sets the focus state
func (s *Sidebar) SetFocused(focused bool) {
	s.focused = focused
}

// IsFocused returns the focus state
func (s *Sidebar) IsFocused() bool {
	return s.focused
}

// SetSessions replaces the conversation list. Selection is preserved by id
// when the selected conversation survives the refresh.
func (s *Sidebar) SetSessions(sessions []chat.SessionInfo) {
	var selectedID string
	if s.selectedIdx >= 0 && s.selectedIdx < len(s.sessions) {
		selectedID = s.sessions[s.selectedIdx].ID
	}

	s.sessions = sessions

	s.selectedIdx = 0
	for i, sess := range sessions {
		if sess.ID == selectedID {
			s.selectedIdx = i
			break
		}
	}
	s.clampScroll()
}

// Sessions returns the current conversation list
func (s *Sidebar) Sessions() []chat.SessionInfo {
	return s.sessions
}

// SetActive marks the conversation open in the chat panel
func (s *Sidebar) SetActive(id string) {
	s.activeID = id
}

// Selected returns the highlighted conversation, or nil if the list is empty
func (s *Sidebar) Selected() *chat.SessionInfo {
	if s.selectedIdx < 0 || s.selectedIdx >= len(s.sessions) {
		return nil
	}
	return &s.sessions[s.selectedIdx]
}

// MoveUp moves the selection up
func (s *Sidebar) MoveUp() {
	if s.selectedIdx > 0 {
		s.selectedIdx--
	}
	s.clampScroll()
}

// MoveDown moves the selection down
func (s *Sidebar) MoveDown() {
	if s.selectedIdx < len(s.sessions)-1 {
		s.selectedIdx++
	}
	s.clampScroll()
}

// visibleRows returns how many list rows fit inside the panel
func (s *Sidebar) visibleRows() int {
	rows := s.height - BorderSize - 1 // minus the title row
	if rows < 1 {
		rows = 1
	}
	return rows
}

// clampScroll keeps the selection inside the visible window
func (s *Sidebar) clampScroll() {
	rows := s.visibleRows()
	if s.selectedIdx < s.scrollOffset {
		s.scrollOffset = s.selectedIdx
	}
	if s.selectedIdx >= s.scrollOffset+rows {
		s.scrollOffset = s.selectedIdx - rows + 1
	}
	if s.scrollOffset < 0 {
		s.scrollOffset = 0
	}
}

// Update handles navigation keys when focused
func (s *Sidebar) Update(msg tea.Msg) (*Sidebar, tea.Cmd) {
	if !s.focused {
		return s, nil
	}

	if keyMsg, ok := msg.(tea.KeyPressMsg); ok {
		switch keyMsg.String() {
		case "up", "k":
			s.MoveUp()
		case "down", "j":
			s.MoveDown()
		}
	}
	return s, nil
}

// truncate shortens a title to fit the sidebar width, counting display cells
// rather than runes so wide characters don't overflow the panel
func truncate(text string, max int) string {
	if max <= 1 {
		return ""
	}
	if runewidth.StringWidth(text) <= max {
		return text
	}
	return runewidth.Truncate(text, max, "…")
}

// View renders the sidebar
func (s *Sidebar) View() string {
	panelStyle := PanelStyle
	if s.focused {
		panelStyle = PanelFocusedStyle
	}

	innerWidth := s.width - BorderSize
	var sb strings.Builder
	sb.WriteString(SidebarTitleStyle.Render("Conversations"))
	sb.WriteString("\n")

	if len(s.sessions) == 0 {
		sb.WriteString(SidebarItemStyle.Foreground(ColorTextMuted).Italic(true).Render("No conversations yet"))
	} else {
		rows := s.visibleRows()
		end := s.scrollOffset + rows
		if end > len(s.sessions) {
			end = len(s.sessions)
		}
		for i := s.scrollOffset; i < end; i++ {
			sess := s.sessions[i]
			if i > s.scrollOffset {
				sb.WriteString("\n")
			}

			marker := "  "
			if sess.ID == s.activeID {
				marker = SidebarActiveMarkerStyle.Render("● ")
			}

			title := sess.Title
			if title == "" {
				title = chat.DefaultTitle
			}
			title = truncate(title, innerWidth-4)

			if i == s.selectedIdx && s.focused {
				sb.WriteString(SidebarSelectedStyle.Render(marker + title))
			} else {
				sb.WriteString(SidebarItemStyle.Render(marker + title))
			}
		}
	}

	return panelStyle.Width(s.width).Height(s.height).Render(sb.String())
}
