package ui

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
)

// FlashDuration is how long a flash message stays in the footer
const FlashDuration = 3 * time.Second

// FlashExpiredMsg is sent when the current flash message should disappear
type FlashExpiredMsg struct{}

// KeyBinding represents a keyboard shortcut
type KeyBinding struct {
	Key  string
	Desc string
}

// Footer represents the bottom footer bar with keybindings.
// It doubles as a transient flash area for errors and confirmations.
type Footer struct {
	width          int
	sidebarFocused bool
	busy           bool
	flash          string
	flashIsError   bool
}

// NewFooter creates a new footer
func NewFooter() *Footer {
	return &Footer{}
}

// SetWidth sets the footer width
func (f *Footer) SetWidth(width int) {
	f.width = width
}

// SetContext updates the footer's context for conditional bindings
func (f *Footer) SetContext(sidebarFocused, busy bool) {
	f.sidebarFocused = sidebarFocused
	f.busy = busy
}

// Flash shows a transient message in place of the keybindings
func (f *Footer) Flash(msg string, isError bool) tea.Cmd {
	f.flash = msg
	f.flashIsError = isError
	return tea.Tick(FlashDuration, func(time.Time) tea.Msg {
		return FlashExpiredMsg{}
	})
}

// ClearFlash removes the current flash message
func (f *Footer) ClearFlash() {
	f.flash = ""
	f.flashIsError = false
}

// HasFlash returns whether a flash message is showing
func (f *Footer) HasFlash() bool {
	return f.flash != ""
}

// bindings returns the shortcuts for the current context
func (f *Footer) bindings() []KeyBinding {
	if f.busy {
		return []KeyBinding{
			{Key: "pgup/dn", Desc: "scroll"},
			{Key: "ctrl+c", Desc: "quit"},
		}
	}
	if f.sidebarFocused {
		return []KeyBinding{
			{Key: "↑/↓", Desc: "select"},
			{Key: "enter", Desc: "open"},
			{Key: "n", Desc: "new chat"},
			{Key: "d", Desc: "delete"},
			{Key: "tab", Desc: "chat"},
			{Key: "q", Desc: "quit"},
		}
	}
	return []KeyBinding{
		{Key: "enter", Desc: "send"},
		{Key: "shift+enter", Desc: "newline"},
		{Key: "ctrl+y", Desc: "copy reply"},
		{Key: "tab", Desc: "conversations"},
		{Key: "pgup/dn", Desc: "scroll"},
	}
}

// View renders the footer
func (f *Footer) View() string {
	if f.flash != "" {
		style := FooterFlashStyle
		if f.flashIsError {
			style = FooterFlashErrorStyle
		}
		return style.Width(f.width).Render(f.flash)
	}

	var parts []string
	for _, b := range f.bindings() {
		key := FooterKeyStyle.Render(b.Key)
		desc := FooterDescStyle.Render(": " + b.Desc)
		parts = append(parts, key+desc)
	}

	content := strings.Join(parts, "  "+lipgloss.NewStyle().Foreground(ColorBorder).Render("|")+"  ")
	return FooterStyle.Width(f.width).Render(content)
}
