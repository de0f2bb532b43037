package app

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/a3music/opmchat/internal/chat"
	"github.com/a3music/opmchat/internal/config"
	"github.com/a3music/opmchat/internal/keys"
	"github.com/a3music/opmchat/internal/store"
)

// fakeService is a scriptable chat.Service for driving the app model in tests
type fakeService struct {
	reply      string
	sendID     string
	sendErr    error
	sessions   []chat.SessionInfo
	sessionErr error
	history    map[string][]chat.Message
	historyErr error
	deleteErr  error
	newChatID  string
	newChatErr error

	sentMessages []string
	deletedIDs   []string
	newChatCalls int
}

func newFakeService() *fakeService {
	return &fakeService{
		reply:     "Try Eraserheads' Ang Huling El Bimbo.",
		sendID:    "sess-1",
		newChatID: "fresh-1",
		history:   make(map[string][]chat.Message),
	}
}

func (f *fakeService) Send(_ context.Context, message, sessionID string) (string, string, error) {
	if f.sendErr != nil {
		return "", "", f.sendErr
	}
	f.sentMessages = append(f.sentMessages, message)
	id := sessionID
	if id == "" {
		id = f.sendID
	}
	return f.reply, id, nil
}

func (f *fakeService) Sessions(_ context.Context) ([]chat.SessionInfo, error) {
	return f.sessions, f.sessionErr
}

func (f *fakeService) History(_ context.Context, sessionID string) ([]chat.Message, error) {
	if f.historyErr != nil {
		return nil, f.historyErr
	}
	return f.history[sessionID], nil
}

func (f *fakeService) NewChat(_ context.Context) (string, error) {
	f.newChatCalls++
	if f.newChatErr != nil {
		return "", f.newChatErr
	}
	return f.newChatID, nil
}

func (f *fakeService) DeleteChat(_ context.Context, sessionID string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deletedIDs = append(f.deletedIDs, sessionID)
	return nil
}

// testConfig creates a config backed by a temp file, with the welcome modal
// already dismissed so tests don't have to clear it.
func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.LoadFrom(filepath.Join(t.TempDir(), "config.json"))
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	cfg.MarkWelcomeShown()
	return cfg
}

// testConfigFirstRun creates a config that has never shown the welcome modal
func testConfigFirstRun(t *testing.T) (*config.Config, error) {
	t.Helper()
	return config.LoadFrom(filepath.Join(t.TempDir(), "config.json"))
}

// testModel creates an app model wired to a fake backend at a usable size
func testModel(t *testing.T, svc chat.Service) *Model {
	t.Helper()
	cfg := testConfig(t)
	st := store.New(filepath.Join(t.TempDir(), "session.json"))
	m := New(cfg, svc, st, "0.0.0-test", false)
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return m
}

// keyPress creates a tea.KeyPressMsg for the given key string
func keyPress(key string) tea.KeyPressMsg {
	switch key {
	case keys.Enter:
		return tea.KeyPressMsg{Code: tea.KeyEnter}
	case keys.ShiftEnter:
		return tea.KeyPressMsg{Code: tea.KeyEnter, Mod: tea.ModShift}
	case keys.Tab:
		return tea.KeyPressMsg{Code: tea.KeyTab}
	case keys.Escape:
		return tea.KeyPressMsg{Code: tea.KeyEscape}
	case keys.Up:
		return tea.KeyPressMsg{Code: tea.KeyUp}
	case keys.Down:
		return tea.KeyPressMsg{Code: tea.KeyDown}
	case keys.CtrlC:
		return tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl}
	case keys.CtrlY:
		return tea.KeyPressMsg{Code: 'y', Mod: tea.ModCtrl}
	default:
		if strings.HasPrefix(key, "alt+") && len(key) == 5 {
			return tea.KeyPressMsg{Code: rune(key[4]), Mod: tea.ModAlt}
		}
		if len(key) == 1 {
			return tea.KeyPressMsg{Code: rune(key[0]), Text: key}
		}
		return tea.KeyPressMsg{Text: key}
	}
}

// sendKey sends a key press to the model and returns the updated model
func sendKey(m *Model, key string) *Model {
	result, _ := m.Update(keyPress(key))
	return result.(*Model)
}

// typeText simulates typing a string one character at a time
func typeText(m *Model, text string) *Model {
	for _, ch := range text {
		m = sendKey(m, string(ch))
	}
	return m
}

// runCmd executes a command and feeds the resulting message back into the
// model, the way the Bubble Tea runtime would. Batches run sequentially.
func runCmd(m *Model, cmd tea.Cmd) *Model {
	if cmd == nil {
		return m
	}
	msg := cmd()
	if msg == nil {
		return m
	}
	if batch, ok := msg.(tea.BatchMsg); ok {
		for _, sub := range batch {
			m = runCmd(m, sub)
		}
		return m
	}
	result, _ := m.Update(msg)
	return result.(*Model)
}
