package ui

import (
	"strings"
	"testing"
	"time"

	"github.com/a3music/opmchat/internal/chat"
)

func TestChat_AddMessages(t *testing.T) {
	c := NewChat()

	c.AddUserMessage("any sad OPM songs?")
	c.AddBotMessage("Try \"Migraine\" by Moonstar88.")

	if c.MessageCount() != 2 {
		t.Errorf("MessageCount() = %d, want 2", c.MessageCount())
	}
	if got := c.LastBotMessage(); got != "Try \"Migraine\" by Moonstar88." {
		t.Errorf("LastBotMessage() = %q", got)
	}
}

func TestChat_ErrorBubbleKeepsUserMessage(t *testing.T) {
	c := NewChat()

	c.AddUserMessage("hello")
	c.AddErrorMessage("Could not reach the server. Please try again.")

	// The user bubble stays; the error is appended after it.
	if c.MessageCount() != 2 {
		t.Fatalf("MessageCount() = %d, want 2", c.MessageCount())
	}
	// Error bubbles are not replies.
	if got := c.LastBotMessage(); got != "" {
		t.Errorf("LastBotMessage() = %q, want empty", got)
	}
}

func TestChat_SetHistory(t *testing.T) {
	c := NewChat()
	c.AddUserMessage("stale")

	c.SetHistory([]chat.Message{
		{Content: "hi", Sender: chat.SenderUser},
		{Content: "hello!", Sender: chat.SenderBot},
	})

	if c.MessageCount() != 2 {
		t.Errorf("MessageCount() = %d, want 2", c.MessageCount())
	}
	if got := c.LastBotMessage(); got != "hello!" {
		t.Errorf("LastBotMessage() = %q", got)
	}
}

func TestChat_Clear(t *testing.T) {
	c := NewChat()
	c.AddUserMessage("hello")
	c.Clear()

	if c.MessageCount() != 0 {
		t.Errorf("MessageCount() = %d after Clear, want 0", c.MessageCount())
	}
}

func TestChat_Busy(t *testing.T) {
	c := NewChat()

	c.SetBusy(true)
	if !c.IsBusy() {
		t.Error("IsBusy() should be true after SetBusy(true)")
	}
	c.SetBusy(false)
	if c.IsBusy() {
		t.Error("IsBusy() should be false after SetBusy(false)")
	}
}

func TestFormatElapsed(t *testing.T) {
	tests := []struct {
		d        time.Duration
		expected string
	}{
		{500 * time.Millisecond, "0.5s"},
		{1200 * time.Millisecond, "1.2s"},
		{59 * time.Second, "59.0s"},
		{83 * time.Second, "1:23"},
		{10 * time.Minute, "10:00"},
	}

	for _, tt := range tests {
		if got := formatElapsed(tt.d); got != tt.expected {
			t.Errorf("formatElapsed(%v) = %q, want %q", tt.d, got, tt.expected)
		}
	}
}

func TestRandomThinkingVerb(t *testing.T) {
	verb := randomThinkingVerb()
	found := false
	for _, v := range thinkingVerbs {
		if v == verb {
			found = true
			break
		}
	}
	if !found {
		t.Errorf("randomThinkingVerb() returned %q, not in list", verb)
	}
}

func TestChat_InputTrimmed(t *testing.T) {
	c := NewChat()
	c.input.SetValue("  hello  ")

	if got := c.GetInput(); got != "hello" {
		t.Errorf("GetInput() = %q, want trimmed value", got)
	}

	c.ClearInput()
	if got := c.GetInput(); got != "" {
		t.Errorf("GetInput() after ClearInput = %q", got)
	}
}

func TestChat_WelcomeShownUntilFirstMessage(t *testing.T) {
	c := NewChat()
	c.SetSize(100, 30)

	if !strings.Contains(c.viewport.View(), "OPM music guide") {
		t.Error("welcome placeholder should render before any message")
	}

	c.AddUserMessage("hi")
	if strings.Contains(c.viewport.View(), "OPM music guide") {
		t.Error("welcome placeholder should disappear after the first message")
	}
}

func TestChat_WelcomeListsMoodPresets(t *testing.T) {
	c := NewChat()
	c.SetSize(100, 30)

	if !c.ShowingWelcome() {
		t.Fatal("ShowingWelcome() should be true for a fresh panel")
	}
	view := c.viewport.View()
	for _, mood := range MoodPresets {
		if !strings.Contains(view, mood) {
			t.Errorf("welcome screen should list the %q preset", mood)
		}
	}
	if !strings.Contains(view, "alt+1") {
		t.Error("welcome screen should show the preset shortcut")
	}

	c.AddUserMessage("hi")
	if c.ShowingWelcome() {
		t.Error("ShowingWelcome() should be false once a message exists")
	}
}

func TestMoodPrompt(t *testing.T) {
	got := MoodPrompt("chill")
	want := "Recommend OPM music for a chill mood/playlist."
	if got != want {
		t.Errorf("MoodPrompt() = %q, want %q", got, want)
	}
}
