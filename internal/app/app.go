// Package app is the Bubble Tea model that ties the UI panels to the chat
// backend and the session pointer store.
package app

import (
	tea "charm.land/bubbletea/v2"

	"github.com/a3music/opmchat/internal/chat"
	"github.com/a3music/opmchat/internal/config"
	"github.com/a3music/opmchat/internal/store"
	"github.com/a3music/opmchat/internal/ui"
)

// Focus represents which panel is focused
type Focus int

const (
	FocusSidebar Focus = iota
	FocusChat
)

// Model is the main Bubble Tea model
type Model struct {
	config  *config.Config
	svc     chat.Service
	store   *store.Store
	version string // App version (injected at build time)
	guest   bool   // Running against the local store

	header  *ui.Header
	footer  *ui.Footer
	sidebar *ui.Sidebar
	chat    *ui.Chat
	modal   *ui.Modal

	width  int
	height int
	focus  Focus

	// busy serializes sends: while true, input is locked and enter is a no-op
	busy bool

	windowFocused bool

	// activeTitle is the header label for the open conversation
	activeTitle string
}

// New creates a new app model
func New(cfg *config.Config, svc chat.Service, st *store.Store, version string, guest bool) *Model {
	m := &Model{
		config:        cfg,
		svc:           svc,
		store:         st,
		version:       version,
		guest:         guest,
		header:        ui.NewHeader(),
		footer:        ui.NewFooter(),
		sidebar:       ui.NewSidebar(),
		chat:          ui.NewChat(),
		modal:         ui.NewModal(),
		focus:         FocusChat,
		windowFocused: true,
	}

	m.header.SetGuestMode(guest)
	m.chat.SetFocused(true)
	ui.SetSyntaxTheme(cfg.GetTheme())

	return m
}

// Init kicks off the startup work: reconcile the saved session pointer,
// load the sidebar, and show the welcome modal on first run.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		m.reconcileCmd(),
		m.refreshSessionsCmd(),
	}
	if !m.config.IsWelcomeShown() {
		cmds = append(cmds, func() tea.Msg { return StartupModalMsg{} })
	}
	return tea.Batch(cmds...)
}

// IsBusy returns whether a send is in flight
func (m *Model) IsBusy() bool {
	return m.busy
}

// setFocus moves focus between the sidebar and the chat panel
func (m *Model) setFocus(f Focus) {
	m.focus = f
	m.sidebar.SetFocused(f == FocusSidebar)
	m.chat.SetFocused(f == FocusChat)
}

// setActiveConversation updates the header and sidebar marker together
func (m *Model) setActiveConversation(id, title string) {
	m.activeTitle = title
	m.header.SetSessionTitle(title)
	m.sidebar.SetActive(id)
}

// clearActiveConversation resets the chat panel to a fresh conversation
func (m *Model) clearActiveConversation() {
	m.activeTitle = ""
	m.header.SetSessionTitle("")
	m.sidebar.SetActive("")
	m.chat.Clear()
}

// titleFor looks up a conversation title in the sidebar list
func (m *Model) titleFor(sessionID string) string {
	for _, s := range m.sidebar.Sessions() {
		if s.ID == sessionID {
			return s.Title
		}
	}
	return ""
}
