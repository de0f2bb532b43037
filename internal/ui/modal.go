package ui

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
)

// ModalState is a discriminated union interface for modal-specific state.
// Each modal type implements this interface with its own state struct,
// ensuring type-safe access to modal-specific fields.
type ModalState interface {
	modalState() // marker method to restrict implementations
	Title() string
	Help() string
	Render() string
	Update(msg tea.Msg) (ModalState, tea.Cmd)
}

// Modal represents a popup dialog with type-safe state management.
// The State field is nil when no modal is visible.
type Modal struct {
	State ModalState
	error string
}

// NewModal creates a new modal
func NewModal() *Modal {
	return &Modal{}
}

// Show displays a modal with the given state
func (m *Modal) Show(state ModalState) {
	m.State = state
	m.error = ""
}

// Hide hides the modal
func (m *Modal) Hide() {
	m.State = nil
	m.error = ""
}

// IsVisible returns whether the modal is visible
func (m *Modal) IsVisible() bool {
	return m.State != nil
}

// SetError sets an error message
func (m *Modal) SetError(err string) {
	m.error = err
}

// Update handles messages by delegating to the current state
func (m *Modal) Update(msg tea.Msg) (*Modal, tea.Cmd) {
	if m.State == nil {
		return m, nil
	}
	var cmd tea.Cmd
	m.State, cmd = m.State.Update(msg)
	return m, cmd
}

// View renders the modal centered on the screen
func (m *Modal) View(screenWidth, screenHeight int) string {
	if m.State == nil {
		return ""
	}

	content := m.State.Render()
	if m.error != "" {
		content += "\n" + StatusErrorStyle.Render(m.error)
	}

	modal := ModalStyle.Render(content)

	return lipgloss.Place(
		screenWidth, screenHeight,
		lipgloss.Center, lipgloss.Center,
		modal,
	)
}

// =============================================================================
// ConfirmDeleteState - State for the delete confirmation modal
// =============================================================================

type ConfirmDeleteState struct {
	SessionID    string
	SessionTitle string
	Confirmed    bool // set when the user picks yes
	Dismissed    bool // set when the user backs out
}

func (*ConfirmDeleteState) modalState() {}

func (s *ConfirmDeleteState) Title() string { return "Delete Conversation" }

func (s *ConfirmDeleteState) Help() string {
	return "y to delete, n or esc to cancel"
}

func (s *ConfirmDeleteState) Render() string {
	title := ModalTitleStyle.Render(s.Title())

	name := s.SessionTitle
	if name == "" {
		name = s.SessionID
	}
	body := lipgloss.NewStyle().Foreground(ColorText).
		Render("Delete \"" + name + "\"?\nThis cannot be undone.")

	help := ModalHelpStyle.Render(s.Help())

	return lipgloss.JoinVertical(lipgloss.Left, title, body, help)
}

func (s *ConfirmDeleteState) Update(msg tea.Msg) (ModalState, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyPressMsg); ok {
		switch keyMsg.String() {
		case "y", "Y", "enter":
			s.Confirmed = true
		case "n", "N", "esc":
			s.Dismissed = true
		}
	}
	return s, nil
}

// NewConfirmDeleteState creates the delete confirmation state
func NewConfirmDeleteState(sessionID, sessionTitle string) *ConfirmDeleteState {
	return &ConfirmDeleteState{SessionID: sessionID, SessionTitle: sessionTitle}
}

// =============================================================================
// InfoState - State for simple informational modals (welcome, login required)
// =============================================================================

type InfoState struct {
	ModalTitle string
	Body       string
	Dismissed  bool
}

func (*InfoState) modalState() {}

func (s *InfoState) Title() string { return s.ModalTitle }

func (s *InfoState) Help() string { return "press any key to continue" }

func (s *InfoState) Render() string {
	title := ModalTitleStyle.Render(s.ModalTitle)
	body := lipgloss.NewStyle().Foreground(ColorText).Render(s.Body)
	help := ModalHelpStyle.Render(s.Help())
	return lipgloss.JoinVertical(lipgloss.Left, title, body, help)
}

func (s *InfoState) Update(msg tea.Msg) (ModalState, tea.Cmd) {
	if _, ok := msg.(tea.KeyPressMsg); ok {
		s.Dismissed = true
	}
	return s, nil
}

// NewInfoState creates an informational modal state
func NewInfoState(title, body string) *InfoState {
	return &InfoState{ModalTitle: title, Body: body}
}

// NewLoginRequiredState is the modal shown when an operation needs a login
func NewLoginRequiredState() *InfoState {
	return NewInfoState(
		"Login Required",
		"You need to be logged in to do that.\nRun `opmchat login` from your shell, then come back.",
	)
}

// NewWelcomeState is the first-run welcome modal
func NewWelcomeState() *InfoState {
	return NewInfoState(
		"Welcome to opmchat",
		"Your guide to Original Pilipino Music.\nAsk for recommendations, artist trivia, or playlist ideas.",
	)
}
