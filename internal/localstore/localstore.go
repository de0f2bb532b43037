// Package localstore is a chat.Service backed by a local SQLite database.
// It is used in guest mode: conversations are kept on disk and replies are
// canned, so the UI works without a server or a login.
package localstore

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/a3music/opmchat/internal/chat"
	"github.com/a3music/opmchat/internal/errors"
	"github.com/a3music/opmchat/internal/logger"
)

const schema = `
CREATE TABLE IF NOT EXISTS sessions (
	id         TEXT PRIMARY KEY,
	title      TEXT NOT NULL,
	created_at INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS messages (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	session_id TEXT NOT NULL REFERENCES sessions(id) ON DELETE CASCADE,
	content    TEXT NOT NULL,
	sender     TEXT NOT NULL,
	created_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_messages_session ON messages(session_id, id);
`

// guestReply is returned for every message in guest mode. The real model
// lives behind the server; locally there is nobody to ask.
const guestReply = "You're chatting in guest mode, so I can't reach the music model right now. " +
	"Your conversation is saved locally. Log in with `opmchat login` to get real recommendations."

// Store is a local SQLite implementation of chat.Service.
type Store struct {
	db *sql.DB
}

// Open creates or opens the local database at path and ensures the schema.
func Open(path string) (*Store, error) {
	const op = errors.Op("localstore.Open")

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errors.E(op, errors.KindIO, "failed to open database", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, errors.E(op, errors.KindIO, "database ping failed", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, errors.E(op, errors.KindIO, "failed to enable foreign keys", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, errors.E(op, errors.KindIO, "failed to apply schema", err)
	}

	logger.Debug("localstore: opened %s", path)
	return &Store{db: db}, nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// newSessionID builds an id the same shape the server uses: a timestamp
// prefix for rough ordering plus a UUID suffix for uniqueness.
func newSessionID() string {
	return fmt.Sprintf("%d-%s", time.Now().UnixMilli(), uuid.New().String()[:8])
}

// Send stores the user message, creating the session first if sessionID is
// empty, and returns the canned guest reply.
func (s *Store) Send(ctx context.Context, message, sessionID string) (string, string, error) {
	const op = errors.Op("localstore.Send")

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", "", errors.E(op, errors.KindIO, "failed to begin transaction", err)
	}
	defer tx.Rollback()

	now := time.Now().UnixMilli()

	if sessionID == "" {
		sessionID = newSessionID()
		title := chat.DeriveTitle(message)
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO sessions (id, title, created_at) VALUES (?, ?, ?)",
			sessionID, title, now); err != nil {
			return "", "", errors.E(op, errors.KindIO, "failed to create session", err)
		}
	} else {
		var exists int
		err := tx.QueryRowContext(ctx,
			"SELECT COUNT(1) FROM sessions WHERE id = ?", sessionID).Scan(&exists)
		if err != nil {
			return "", "", errors.E(op, errors.KindIO, "failed to check session", err)
		}
		if exists == 0 {
			return "", "", errors.SessionNotFound(sessionID)
		}
	}

	if _, err := tx.ExecContext(ctx,
		"INSERT INTO messages (session_id, content, sender, created_at) VALUES (?, ?, ?, ?)",
		sessionID, message, chat.SenderUser, now); err != nil {
		return "", "", errors.E(op, errors.KindIO, "failed to store message", err)
	}
	if _, err := tx.ExecContext(ctx,
		"INSERT INTO messages (session_id, content, sender, created_at) VALUES (?, ?, ?, ?)",
		sessionID, guestReply, chat.SenderBot, now); err != nil {
		return "", "", errors.E(op, errors.KindIO, "failed to store reply", err)
	}

	if err := tx.Commit(); err != nil {
		return "", "", errors.E(op, errors.KindIO, "failed to commit", err)
	}
	return guestReply, sessionID, nil
}

// Sessions lists saved conversations, most recent first.
func (s *Store) Sessions(ctx context.Context) ([]chat.SessionInfo, error) {
	const op = errors.Op("localstore.Sessions")

	rows, err := s.db.QueryContext(ctx,
		"SELECT id, title FROM sessions ORDER BY created_at DESC, id DESC")
	if err != nil {
		return nil, errors.E(op, errors.KindIO, "query failed", err)
	}
	defer rows.Close()

	var sessions []chat.SessionInfo
	for rows.Next() {
		var info chat.SessionInfo
		if err := rows.Scan(&info.ID, &info.Title); err != nil {
			return nil, errors.E(op, errors.KindIO, "scan failed", err)
		}
		sessions = append(sessions, info)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.E(op, errors.KindIO, "rows iteration failed", err)
	}
	return sessions, nil
}

// History returns the message log of a conversation in chronological order.
func (s *Store) History(ctx context.Context, sessionID string) ([]chat.Message, error) {
	const op = errors.Op("localstore.History")

	var exists int
	if err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(1) FROM sessions WHERE id = ?", sessionID).Scan(&exists); err != nil {
		return nil, errors.E(op, errors.KindIO, "failed to check session", err)
	}
	if exists == 0 {
		return nil, errors.SessionNotFound(sessionID)
	}

	rows, err := s.db.QueryContext(ctx,
		"SELECT content, sender FROM messages WHERE session_id = ? ORDER BY id", sessionID)
	if err != nil {
		return nil, errors.E(op, errors.KindIO, "query failed", err)
	}
	defer rows.Close()

	var history []chat.Message
	for rows.Next() {
		var m chat.Message
		if err := rows.Scan(&m.Content, &m.Sender); err != nil {
			return nil, errors.E(op, errors.KindIO, "scan failed", err)
		}
		history = append(history, m)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.E(op, errors.KindIO, "rows iteration failed", err)
	}
	return history, nil
}

// NewChat creates an empty conversation and returns its id.
func (s *Store) NewChat(ctx context.Context) (string, error) {
	const op = errors.Op("localstore.NewChat")

	id := newSessionID()
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO sessions (id, title, created_at) VALUES (?, ?, ?)",
		id, chat.DefaultTitle, time.Now().UnixMilli())
	if err != nil {
		return "", errors.E(op, errors.KindIO, "failed to create session", err)
	}
	return id, nil
}

// DeleteChat removes a conversation and its messages.
func (s *Store) DeleteChat(ctx context.Context, sessionID string) error {
	const op = errors.Op("localstore.DeleteChat")

	res, err := s.db.ExecContext(ctx, "DELETE FROM sessions WHERE id = ?", sessionID)
	if err != nil {
		return errors.E(op, errors.KindIO, "delete failed", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return errors.E(op, errors.KindIO, "delete failed", err)
	}
	if affected == 0 {
		return errors.SessionNotFound(sessionID)
	}
	logger.Info("localstore: deleted session %s", sessionID)
	return nil
}

var _ chat.Service = (*Store)(nil)
