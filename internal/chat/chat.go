// Package chat defines the conversation domain types shared by the
// server-backed API client and the local storage backend.
package chat

import (
	"context"
	"strings"

	"github.com/rivo/uniseg"
)

// Sender values used on the wire and in rendering.
const (
	SenderUser = "user"
	SenderBot  = "bot"
)

// Message is a single entry in a conversation, in chronological order.
type Message struct {
	Content string `json:"content"`
	Sender  string `json:"sender"`
}

// SessionInfo is the sidebar projection of a conversation: id and title only.
type SessionInfo struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// Service is the backend a conversation UI talks to. The HTTP client and the
// local sqlite store both implement it; the choice is made once at startup.
type Service interface {
	// Send delivers a message. An empty sessionID asks the backend to create
	// a new conversation; the returned session id is authoritative and may
	// differ from the one sent.
	Send(ctx context.Context, message, sessionID string) (reply, newSessionID string, err error)

	// Sessions lists known conversations, most recent first.
	Sessions(ctx context.Context) ([]SessionInfo, error)

	// History returns the full message log of a conversation.
	History(ctx context.Context, sessionID string) ([]Message, error)

	// NewChat asks the backend for a fresh conversation id.
	NewChat(ctx context.Context) (sessionID string, err error)

	// DeleteChat removes a conversation permanently.
	DeleteChat(ctx context.Context, sessionID string) error
}

// DefaultTitle is shown for conversations that have no messages yet.
const DefaultTitle = "New Chat"

// TitleMaxGraphemes caps derived titles at a displayable length.
const TitleMaxGraphemes = 40

// DeriveTitle builds a display title from the first message of a
// conversation: the first line, truncated on a grapheme boundary so
// multi-byte text never splits mid-character.
func DeriveTitle(firstMessage string) string {
	text := strings.TrimSpace(firstMessage)
	if text == "" {
		return DefaultTitle
	}
	if i := strings.IndexByte(text, '\n'); i >= 0 {
		text = strings.TrimSpace(text[:i])
	}

	g := uniseg.NewGraphemes(text)
	count := 0
	for g.Next() {
		count++
		if count == TitleMaxGraphemes {
			_, end := g.Positions()
			if end < len(text) {
				return text[:end] + "…"
			}
			return text
		}
	}
	return text
}
