package app

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/a3music/opmchat/internal/ui"
)

// View renders the app. This is the core Bubble Tea view function.
func (m *Model) View() tea.View {
	var v tea.View
	v.AltScreen = true
	v.MouseMode = tea.MouseModeCellMotion
	v.ReportFocus = true

	if m.width == 0 || m.height == 0 {
		v.SetContent("Loading...")
		return v
	}

	v.SetContent(m.render())
	return v
}

// RenderToString renders the current view as a string. Useful for tests.
func (m *Model) RenderToString() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}
	return m.render()
}

func (m *Model) render() string {
	m.footer.SetContext(m.focus == FocusSidebar, m.busy)

	if m.modal.IsVisible() {
		// The modal view centers itself over the full screen
		return m.modal.View(m.width, m.height)
	}

	panels := lipgloss.JoinHorizontal(
		lipgloss.Top,
		m.sidebar.View(),
		m.chat.View(),
	)

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.header.View(),
		panels,
		m.footer.View(),
	)
}

// updateSizes updates component sizes based on terminal dimensions
func (m *Model) updateSizes() {
	width, height := m.width, m.height
	if width < ui.MinTerminalWidth {
		width = ui.MinTerminalWidth
	}
	if height < ui.MinTerminalHeight {
		height = ui.MinTerminalHeight
	}

	contentHeight := height - ui.HeaderHeight - ui.FooterHeight
	sidebarWidth := width / ui.SidebarWidthRatio
	chatWidth := width - sidebarWidth

	m.header.SetWidth(width)
	m.footer.SetWidth(width)
	m.sidebar.SetSize(sidebarWidth, contentHeight)
	m.chat.SetSize(chatWidth, contentHeight)
}
