package app

import "github.com/a3music/opmchat/internal/chat"

// StartupModalMsg is sent on app start to trigger the welcome modal
type StartupModalMsg struct{}

// ReconcileDoneMsg carries the result of verifying the saved session pointer
type ReconcileDoneMsg struct {
	History []chat.Message
	Adopted bool
	Err     error
}

// SessionsLoadedMsg carries a refreshed sidebar list
type SessionsLoadedMsg struct {
	Sessions []chat.SessionInfo
	Err      error
}

// SendResultMsg carries the backend's reply to a sent message
type SendResultMsg struct {
	UserMessage string
	Reply       string
	SessionID   string
	Err         error
}

// NewChatResultMsg carries the fresh conversation id minted by the backend
type NewChatResultMsg struct {
	SessionID string
	Err       error
}

// HistoryLoadedMsg carries a conversation opened from the sidebar
type HistoryLoadedMsg struct {
	SessionID string
	Title     string
	History   []chat.Message
	Err       error
}

// DeleteResultMsg carries the outcome of a conversation delete
type DeleteResultMsg struct {
	SessionID string
	Err       error
}
