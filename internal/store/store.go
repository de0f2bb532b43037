// Package store tracks which conversation is active. The pointer survives
// restarts via a small state file, but the saved id is never trusted until
// the backend confirms the session still exists.
package store

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/a3music/opmchat/internal/chat"
	"github.com/a3music/opmchat/internal/errors"
	"github.com/a3music/opmchat/internal/logger"
)

// State describes the lifecycle of the session pointer.
type State int

const (
	// NoSession means no conversation is active; the next send starts one.
	NoSession State = iota
	// Loading means a saved pointer is being verified against the backend.
	Loading
	// Active means the pointer names a confirmed, live conversation.
	Active
)

func (s State) String() string {
	switch s {
	case Loading:
		return "loading"
	case Active:
		return "active"
	default:
		return "no session"
	}
}

type pointerFile struct {
	SessionID string `json:"session_id"`
}

// Store holds the active session pointer and persists it across runs.
type Store struct {
	mu        sync.Mutex
	state     State
	sessionID string
	filePath  string
}

// New creates a store backed by the given state file. A saved pointer is
// loaded but left in NoSession until Reconcile confirms it.
func New(filePath string) *Store {
	s := &Store{filePath: filePath}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return s
	}
	var p pointerFile
	if json.Unmarshal(data, &p) == nil {
		s.sessionID = p.SessionID
	}
	return s
}

// Current returns the pointer and its state.
func (s *Store) Current() (string, State) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sessionID, s.state
}

// ActiveSession returns the session id if one is confirmed active, else "".
func (s *Store) ActiveSession() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != Active {
		return ""
	}
	return s.sessionID
}

// Adopt records a confirmed session id and persists it. The id comes from
// the backend, never from user input.
func (s *Store) Adopt(sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessionID = sessionID
	s.state = Active
	return s.persist()
}

// Clear forgets the pointer and removes the state file. The next send will
// start a fresh conversation.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessionID = ""
	s.state = NoSession
	if s.filePath == "" {
		return nil
	}
	if err := os.Remove(s.filePath); err != nil && !os.IsNotExist(err) {
		return errors.E(errors.Op("store.Clear"), errors.KindIO, "failed to remove state file", err)
	}
	return nil
}

// Reconcile verifies a saved pointer against the backend. On success the
// pointer becomes Active and the conversation history is returned. On any
// failure the pointer is NOT adopted: a missing session or an empty message
// log clears the pointer for good, while transient errors leave the saved id
// on disk for the next attempt. Either way the state ends up NoSession.
func (s *Store) Reconcile(ctx context.Context, svc chat.Service) ([]chat.Message, bool, error) {
	s.mu.Lock()
	saved := s.sessionID
	if saved == "" {
		s.state = NoSession
		s.mu.Unlock()
		return nil, false, nil
	}
	s.state = Loading
	s.mu.Unlock()

	history, err := svc.History(ctx, saved)
	if err != nil {
		if errors.Is(err, errors.KindNotFound) {
			logger.Info("store: saved session %s no longer exists, clearing", saved)
			return nil, false, s.Clear()
		}
		s.mu.Lock()
		s.state = NoSession
		s.mu.Unlock()
		logger.Warn("store: could not verify saved session %s: %v", saved, err)
		return nil, false, errors.SessionLoadFailed(saved, err)
	}

	// A conversation with no messages counts as gone: resuming it would show
	// an empty log instead of the welcome state.
	if len(history) == 0 {
		logger.Info("store: saved session %s has no messages, clearing", saved)
		return nil, false, s.Clear()
	}

	s.mu.Lock()
	s.state = Active
	s.mu.Unlock()
	logger.Debug("store: resumed session %s with %d messages", saved, len(history))
	return history, true, nil
}

// persist writes the pointer file. Caller holds the lock.
func (s *Store) persist() error {
	if s.filePath == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(s.filePath), 0755); err != nil {
		return errors.E(errors.Op("store.Adopt"), errors.KindIO, "failed to create state dir", err)
	}
	data, err := json.Marshal(pointerFile{SessionID: s.sessionID})
	if err != nil {
		return err
	}
	if err := os.WriteFile(s.filePath, data, 0644); err != nil {
		return errors.E(errors.Op("store.Adopt"), errors.KindIO, "failed to write state file", err)
	}
	return nil
}
