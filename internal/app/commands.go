package app

import (
	"context"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/a3music/opmchat/internal/logger"
)

// commandTimeout bounds every backend call made from the UI
const commandTimeout = 2 * time.Minute

// reconcileCmd verifies the saved session pointer against the backend
func (m *Model) reconcileCmd() tea.Cmd {
	st, svc := m.store, m.svc
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
		defer cancel()

		history, adopted, err := st.Reconcile(ctx, svc)
		return ReconcileDoneMsg{History: history, Adopted: adopted, Err: err}
	}
}

// refreshSessionsCmd reloads the sidebar list
func (m *Model) refreshSessionsCmd() tea.Cmd {
	svc := m.svc
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
		defer cancel()

		sessions, err := svc.Sessions(ctx)
		return SessionsLoadedMsg{Sessions: sessions, Err: err}
	}
}

// sendCmd delivers a message to the backend
func (m *Model) sendCmd(message, sessionID string) tea.Cmd {
	svc := m.svc
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
		defer cancel()

		reply, newID, err := svc.Send(ctx, message, sessionID)
		if err != nil {
			logger.Warn("app: send failed: %v", err)
		}
		return SendResultMsg{UserMessage: message, Reply: reply, SessionID: newID, Err: err}
	}
}

// newChatCmd asks the backend for a fresh conversation id
func (m *Model) newChatCmd() tea.Cmd {
	svc := m.svc
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
		defer cancel()

		id, err := svc.NewChat(ctx)
		return NewChatResultMsg{SessionID: id, Err: err}
	}
}

// loadHistoryCmd opens a conversation from the sidebar
func (m *Model) loadHistoryCmd(sessionID, title string) tea.Cmd {
	svc := m.svc
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
		defer cancel()

		history, err := svc.History(ctx, sessionID)
		return HistoryLoadedMsg{SessionID: sessionID, Title: title, History: history, Err: err}
	}
}

// deleteCmd removes a conversation
func (m *Model) deleteCmd(sessionID string) tea.Cmd {
	svc := m.svc
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
		defer cancel()

		err := svc.DeleteChat(ctx, sessionID)
		return DeleteResultMsg{SessionID: sessionID, Err: err}
	}
}
