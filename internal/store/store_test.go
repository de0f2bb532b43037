package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/a3music/opmchat/internal/chat"
	"github.com/a3music/opmchat/internal/errors"
)

// fakeService implements chat.Service with canned responses.
type fakeService struct {
	history    []chat.Message
	historyErr error
}

func (f *fakeService) Send(ctx context.Context, message, sessionID string) (string, string, error) {
	return "", "", nil
}

func (f *fakeService) Sessions(ctx context.Context) ([]chat.SessionInfo, error) {
	return nil, nil
}

func (f *fakeService) History(ctx context.Context, sessionID string) ([]chat.Message, error) {
	if f.historyErr != nil {
		return nil, f.historyErr
	}
	return f.history, nil
}

func (f *fakeService) NewChat(ctx context.Context) (string, error) { return "", nil }

func (f *fakeService) DeleteChat(ctx context.Context, sessionID string) error { return nil }

func statePath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "session.json")
}

func TestNew_NoFile(t *testing.T) {
	s := New(statePath(t))

	id, state := s.Current()
	if id != "" || state != NoSession {
		t.Errorf("fresh store = (%q, %v), want empty NoSession", id, state)
	}
}

func TestAdopt_Persists(t *testing.T) {
	path := statePath(t)

	s := New(path)
	if err := s.Adopt("abc123"); err != nil {
		t.Fatalf("Adopt() error = %v", err)
	}
	if got := s.ActiveSession(); got != "abc123" {
		t.Errorf("ActiveSession() = %q", got)
	}

	// A new store sees the saved pointer but does not trust it yet.
	reloaded := New(path)
	id, state := reloaded.Current()
	if id != "abc123" {
		t.Errorf("reloaded pointer = %q, want abc123", id)
	}
	if state != NoSession {
		t.Errorf("reloaded state = %v, want NoSession before reconcile", state)
	}
	if reloaded.ActiveSession() != "" {
		t.Error("unreconciled pointer must not report as active")
	}
}

func TestClear_RemovesFile(t *testing.T) {
	path := statePath(t)

	s := New(path)
	if err := s.Adopt("abc123"); err != nil {
		t.Fatal(err)
	}
	if err := s.Clear(); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}

	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("state file should be removed on Clear")
	}
	if id, state := s.Current(); id != "" || state != NoSession {
		t.Errorf("after Clear = (%q, %v)", id, state)
	}
}

func TestReconcile_Adopts(t *testing.T) {
	path := statePath(t)
	New(path).Adopt("abc123")

	s := New(path)
	svc := &fakeService{history: []chat.Message{
		{Content: "hi", Sender: chat.SenderUser},
		{Content: "hello!", Sender: chat.SenderBot},
	}}

	history, ok, err := s.Reconcile(context.Background(), svc)
	if err != nil {
		t.Fatalf("Reconcile() error = %v", err)
	}
	if !ok {
		t.Fatal("Reconcile() should adopt a pointer the backend confirms")
	}
	if len(history) != 2 {
		t.Errorf("got %d messages, want 2", len(history))
	}
	if s.ActiveSession() != "abc123" {
		t.Errorf("ActiveSession() = %q after reconcile", s.ActiveSession())
	}
}

func TestReconcile_NotFoundClearsPointer(t *testing.T) {
	path := statePath(t)
	New(path).Adopt("gone")

	s := New(path)
	svc := &fakeService{historyErr: errors.SessionNotFound("gone")}

	_, ok, err := s.Reconcile(context.Background(), svc)
	if err != nil {
		t.Fatalf("Reconcile() error = %v", err)
	}
	if ok {
		t.Fatal("a deleted session must not be adopted")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("state file should be removed when the session is gone")
	}
}

func TestReconcile_EmptyHistoryClearsPointer(t *testing.T) {
	path := statePath(t)
	New(path).Adopt("hollow")

	s := New(path)
	svc := &fakeService{history: []chat.Message{}}

	history, ok, err := s.Reconcile(context.Background(), svc)
	if err != nil {
		t.Fatalf("Reconcile() error = %v", err)
	}
	if ok {
		t.Fatal("a session with no messages must not be adopted")
	}
	if history != nil {
		t.Errorf("history = %v, want nil", history)
	}
	if _, state := s.Current(); state != NoSession {
		t.Errorf("state = %v, want NoSession", state)
	}
	if _, statErr := os.Stat(path); !os.IsNotExist(statErr) {
		t.Error("state file should be removed when the session is empty")
	}
}

func TestReconcile_NetworkErrorKeepsPointer(t *testing.T) {
	path := statePath(t)
	New(path).Adopt("abc123")

	s := New(path)
	svc := &fakeService{historyErr: errors.RequestFailed("api.History", os.ErrDeadlineExceeded)}

	_, ok, err := s.Reconcile(context.Background(), svc)
	if err == nil {
		t.Fatal("expected the transient error to surface")
	}
	if ok {
		t.Fatal("a pointer must not be adopted when verification fails")
	}
	if _, state := s.Current(); state != NoSession {
		t.Errorf("state = %v, want NoSession", state)
	}

	// The saved id stays on disk for the next attempt.
	if _, statErr := os.Stat(path); statErr != nil {
		t.Error("state file should survive a transient failure")
	}
}

func TestReconcile_NoPointer(t *testing.T) {
	s := New(statePath(t))

	history, ok, err := s.Reconcile(context.Background(), &fakeService{})
	if err != nil || ok || history != nil {
		t.Errorf("Reconcile() with no pointer = (%v, %v, %v), want (nil, false, nil)", history, ok, err)
	}
}
