package app

import (
	"fmt"

	tea "charm.land/bubbletea/v2"

	"github.com/a3music/opmchat/internal/chat"
	"github.com/a3music/opmchat/internal/clipboard"
	"github.com/a3music/opmchat/internal/errors"
	"github.com/a3music/opmchat/internal/keys"
	"github.com/a3music/opmchat/internal/logger"
	"github.com/a3music/opmchat/internal/notification"
	"github.com/a3music/opmchat/internal/ui"
)

// Update handles messages. This is the core Bubble Tea update function that
// routes all messages to appropriate handlers.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateSizes()

	case tea.FocusMsg:
		m.windowFocused = true

	case tea.BlurMsg:
		m.windowFocused = false

	case tea.KeyPressMsg:
		if model, cmd, handled := m.handleKeyPress(msg); handled {
			return model, cmd
		}

	case StartupModalMsg:
		m.modal.Show(ui.NewWelcomeState())
		return m, nil

	case ReconcileDoneMsg:
		return m.handleReconcileDone(msg)

	case SessionsLoadedMsg:
		return m.handleSessionsLoaded(msg)

	case SendResultMsg:
		return m.handleSendResult(msg)

	case NewChatResultMsg:
		return m.handleNewChatResult(msg)

	case HistoryLoadedMsg:
		return m.handleHistoryLoaded(msg)

	case DeleteResultMsg:
		return m.handleDeleteResult(msg)

	case ui.FlashExpiredMsg:
		m.footer.ClearFlash()
		return m, nil
	}

	// Modal swallows everything else while visible
	if m.modal.IsVisible() {
		var cmd tea.Cmd
		m.modal, cmd = m.modal.Update(msg)
		cmds = append(cmds, cmd)
		if cmd2 := m.resolveModal(); cmd2 != nil {
			cmds = append(cmds, cmd2)
		}
		return m, tea.Batch(cmds...)
	}

	// Stopwatch ticks go to the chat panel regardless of focus
	if _, ok := msg.(ui.StopwatchTickMsg); ok {
		var cmd tea.Cmd
		m.chat, cmd = m.chat.Update(msg)
		return m, cmd
	}

	// Update focused panel for other messages
	if m.focus == FocusSidebar {
		var cmd tea.Cmd
		m.sidebar, cmd = m.sidebar.Update(msg)
		cmds = append(cmds, cmd)
	} else {
		var cmd tea.Cmd
		m.chat, cmd = m.chat.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// handleKeyPress handles global and panel-level shortcuts. Returns handled =
// false when the key should fall through to the focused panel.
func (m *Model) handleKeyPress(msg tea.KeyPressMsg) (tea.Model, tea.Cmd, bool) {
	key := msg.String()

	// ctrl+c always quits
	if key == keys.CtrlC {
		return m, tea.Quit, true
	}

	// Modal gets every key while visible
	if m.modal.IsVisible() {
		var cmd tea.Cmd
		m.modal, cmd = m.modal.Update(msg)
		if cmd2 := m.resolveModal(); cmd2 != nil {
			cmd = tea.Batch(cmd, cmd2)
		}
		return m, cmd, true
	}

	switch key {
	case keys.Tab:
		if m.focus == FocusSidebar {
			m.setFocus(FocusChat)
		} else {
			m.setFocus(FocusSidebar)
		}
		return m, nil, true

	case keys.CtrlY:
		return m.copyLastReply()
	}

	if m.focus == FocusSidebar {
		switch key {
		case "q":
			return m, tea.Quit, true
		case keys.Enter:
			return m.openSelected()
		case "n":
			return m.startNewChat()
		case "d":
			return m.confirmDeleteSelected()
		}
		return m, nil, false
	}

	// Chat focused
	if key == keys.Enter {
		return m.send()
	}
	if mood, ok := moodForKey(key); ok && m.chat.ShowingWelcome() {
		return m.submit(ui.MoodPrompt(mood))
	}
	return m, nil, false
}

// moodForKey maps alt+1..alt+N onto the welcome screen's mood presets
func moodForKey(key string) (string, bool) {
	for i, mood := range ui.MoodPresets {
		if key == fmt.Sprintf("alt+%d", i+1) {
			return mood, true
		}
	}
	return "", false
}

// send submits whatever is typed in the input. Empty input is a no-op.
func (m *Model) send() (tea.Model, tea.Cmd, bool) {
	text := m.chat.GetInput()
	if text == "" {
		return m, nil, true
	}
	return m.submit(text)
}

// submit implements the delivery path: optimistic user bubble, busy lock,
// async send. In-flight sends make further submissions no-ops.
func (m *Model) submit(text string) (tea.Model, tea.Cmd, bool) {
	if m.busy {
		return m, nil, true
	}

	m.chat.AddUserMessage(text)
	m.chat.ClearInput()
	m.chat.SetBusy(true)
	m.busy = true

	sessionID := m.store.ActiveSession()
	logger.Debug("app: sending message, session=%q", sessionID)

	return m, tea.Batch(m.sendCmd(text, sessionID), ui.StopwatchTick()), true
}

// handleSendResult finishes a send. The busy lock always clears; the user
// bubble always stays, even on failure.
func (m *Model) handleSendResult(msg SendResultMsg) (tea.Model, tea.Cmd) {
	m.busy = false
	m.chat.SetBusy(false)

	if msg.Err != nil {
		m.chat.AddErrorMessage(friendlyError(msg.Err))
		if errors.Is(msg.Err, errors.KindAuth) {
			m.modal.Show(ui.NewLoginRequiredState())
		}
		return m, nil
	}

	m.chat.AddBotMessage(msg.Reply)

	var cmds []tea.Cmd

	if !m.windowFocused && m.config.GetNotificationsEnabled() {
		// Best effort; a failed notification is not worth surfacing
		_ = notification.ReplyArrived(m.activeTitle)
	}

	prev := m.store.ActiveSession()
	if msg.SessionID != "" && msg.SessionID != prev {
		// The backend minted a conversation for us; adopt its id
		if err := m.store.Adopt(msg.SessionID); err != nil {
			logger.Warn("app: could not persist session pointer: %v", err)
		}
		m.setActiveConversation(msg.SessionID, chat.DeriveTitle(msg.UserMessage))
		cmds = append(cmds, m.refreshSessionsCmd())
	}

	return m, tea.Batch(cmds...)
}

// handleReconcileDone restores the previous conversation when the backend
// confirms it still exists.
func (m *Model) handleReconcileDone(msg ReconcileDoneMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		return m, m.footer.Flash("Couldn't restore your last conversation", true)
	}
	if !msg.Adopted {
		return m, nil
	}

	id := m.store.ActiveSession()
	m.chat.SetHistory(msg.History)
	m.setActiveConversation(id, m.titleFor(id))
	return m, nil
}

// handleSessionsLoaded refreshes the sidebar
func (m *Model) handleSessionsLoaded(msg SessionsLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		logger.Warn("app: could not load chat list: %v", msg.Err)
		if errors.Is(msg.Err, errors.KindAuth) {
			// Not logged in: an empty list, not an error
			m.sidebar.SetSessions(nil)
			return m, nil
		}
		return m, m.footer.Flash("Couldn't load your conversations", true)
	}

	m.sidebar.SetSessions(msg.Sessions)

	// Titles may have arrived after the pointer was reconciled
	if id := m.store.ActiveSession(); id != "" && m.activeTitle == "" {
		m.setActiveConversation(id, m.titleFor(id))
	}
	return m, nil
}

// openSelected loads the highlighted conversation into the chat panel
func (m *Model) openSelected() (tea.Model, tea.Cmd, bool) {
	sel := m.sidebar.Selected()
	if sel == nil {
		return m, nil, true
	}
	return m, m.loadHistoryCmd(sel.ID, sel.Title), true
}

// handleHistoryLoaded switches the chat panel to an opened conversation
func (m *Model) handleHistoryLoaded(msg HistoryLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		if errors.Is(msg.Err, errors.KindNotFound) {
			// Deleted underneath us; drop it from the list
			return m, tea.Batch(
				m.footer.Flash("That conversation no longer exists", true),
				m.refreshSessionsCmd(),
			)
		}
		return m, m.footer.Flash(friendlyError(msg.Err), true)
	}

	// A conversation with no messages is treated as gone, same as reconcile
	if len(msg.History) == 0 {
		return m, tea.Batch(
			m.footer.Flash("That conversation has no messages", true),
			m.refreshSessionsCmd(),
		)
	}

	if err := m.store.Adopt(msg.SessionID); err != nil {
		logger.Warn("app: could not persist session pointer: %v", err)
	}
	m.chat.SetHistory(msg.History)
	m.setActiveConversation(msg.SessionID, msg.Title)
	m.setFocus(FocusChat)
	return m, nil
}

// startNewChat asks the backend to mint a fresh conversation id. The panel
// resets when the id arrives.
func (m *Model) startNewChat() (tea.Model, tea.Cmd, bool) {
	return m, m.newChatCmd(), true
}

// handleNewChatResult finishes the new-chat action. A 401 means the user
// needs to log in first; nothing local changes in that case.
func (m *Model) handleNewChatResult(msg NewChatResultMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		if errors.Is(msg.Err, errors.KindAuth) {
			m.modal.Show(ui.NewLoginRequiredState())
			return m, nil
		}
		return m, m.footer.Flash("Couldn't start a new chat", true)
	}

	if err := m.store.Adopt(msg.SessionID); err != nil {
		logger.Warn("app: could not persist session pointer: %v", err)
	}
	m.chat.Clear()
	m.setActiveConversation(msg.SessionID, chat.DefaultTitle)
	m.setFocus(FocusChat)
	return m, m.refreshSessionsCmd()
}

// confirmDeleteSelected opens the delete confirmation modal
func (m *Model) confirmDeleteSelected() (tea.Model, tea.Cmd, bool) {
	sel := m.sidebar.Selected()
	if sel == nil {
		return m, nil, true
	}
	m.modal.Show(ui.NewConfirmDeleteState(sel.ID, sel.Title))
	return m, nil, true
}

// handleDeleteResult finishes a conversation delete
func (m *Model) handleDeleteResult(msg DeleteResultMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		return m, m.footer.Flash(friendlyError(msg.Err), true)
	}

	cmds := []tea.Cmd{
		m.refreshSessionsCmd(),
		m.footer.Flash("Conversation deleted", false),
	}

	if msg.SessionID == m.store.ActiveSession() {
		if err := m.store.Clear(); err != nil {
			logger.Warn("app: could not clear session pointer: %v", err)
		}
		m.clearActiveConversation()
	}
	return m, tea.Batch(cmds...)
}

// resolveModal inspects the modal state after an update and acts on any
// terminal state (confirmed delete, dismissed info).
func (m *Model) resolveModal() tea.Cmd {
	switch state := m.modal.State.(type) {
	case *ui.ConfirmDeleteState:
		if state.Confirmed {
			m.modal.Hide()
			return m.deleteCmd(state.SessionID)
		}
		if state.Dismissed {
			m.modal.Hide()
		}
	case *ui.InfoState:
		if state.Dismissed {
			m.modal.Hide()
			if !m.config.IsWelcomeShown() {
				m.config.MarkWelcomeShown()
				if err := m.config.Save(); err != nil {
					logger.Warn("app: could not save config: %v", err)
				}
			}
		}
	}
	return nil
}

// copyLastReply puts the most recent bot reply on the system clipboard
func (m *Model) copyLastReply() (tea.Model, tea.Cmd, bool) {
	reply := m.chat.LastBotMessage()
	if reply == "" {
		return m, m.footer.Flash("Nothing to copy yet", true), true
	}
	if err := clipboard.WriteText(reply); err != nil {
		return m, m.footer.Flash("Couldn't copy to clipboard", true), true
	}
	return m, m.footer.Flash("Copied reply to clipboard", false), true
}

// friendlyError turns a backend error into a message fit for the chat UI
func friendlyError(err error) string {
	switch errors.GetKind(err) {
	case errors.KindAuth:
		return "You need to log in before chatting. Run `opmchat login` and try again."
	case errors.KindNetwork:
		return "Could not reach the server. Check your connection and try again."
	case errors.KindNotFound:
		return "That conversation no longer exists."
	case errors.KindServer:
		return "The server had a problem answering. Please try again."
	default:
		return "Something went wrong. Please try again."
	}
}
