package ui

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"charm.land/bubbles/v2/textarea"
	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/a3music/opmchat/internal/chat"
	"github.com/a3music/opmchat/internal/keys"
)

// StopwatchTickMsg is sent to update the stopwatch display
type StopwatchTickMsg time.Time

// MoodPresets are the quick prompts offered before a conversation starts
var MoodPresets = []string{"happy", "sad", "chill", "romantic"}

// MoodPrompt expands a mood preset into the canned recommendation request
func MoodPrompt(mood string) string {
	return fmt.Sprintf("Recommend OPM music for a %s mood/playlist.", mood)
}

// thinkingVerbs are playful status messages that cycle while waiting for a reply
var thinkingVerbs = []string{
	"Thinking",
	"Listening",
	"Humming",
	"Digging through crates",
	"Tuning",
	"Rewinding",
	"Shuffling",
	"Harmonizing",
	"Remembering lyrics",
	"Queueing tracks",
}

// randomThinkingVerb returns a random verb from the list
func randomThinkingVerb() string {
	return thinkingVerbs[rand.Intn(len(thinkingVerbs))]
}

// bubble is one rendered entry in the conversation. Error bubbles come from
// failed sends and are styled differently from bot replies.
type bubble struct {
	chat.Message
	isError bool
}

// Chat represents the right panel with the conversation view and input area
type Chat struct {
	viewport      viewport.Model
	input         textarea.Model
	width         int
	height        int
	focused       bool
	bubbles       []bubble
	busy          bool      // A send is in flight; input is locked
	busyStartTime time.Time // When the send started (for stopwatch)
	busyVerb      string    // Random verb to display while waiting
	welcome       bool      // Show the welcome placeholder instead of history
}

// NewChat creates a new chat panel
func NewChat() *Chat {
	ti := textarea.New()
	ti.Placeholder = "Ask about OPM music..."
	ti.CharLimit = 0
	ti.SetHeight(TextareaHeight)
	ti.ShowLineNumbers = false
	ti.Prompt = ""

	vp := viewport.New()
	vp.MouseWheelEnabled = true
	vp.MouseWheelDelta = 3

	c := &Chat{
		viewport: vp,
		input:    ti,
		welcome:  true,
	}
	c.updateContent()
	return c
}

// SetSize sets the chat panel dimensions
func (c *Chat) SetSize(width, height int) {
	c.width = width
	c.height = height

	chatPanelHeight := height - InputTotalHeight

	innerWidth := width - BorderSize
	viewportHeight := chatPanelHeight - BorderSize
	if viewportHeight < 1 {
		viewportHeight = 1
	}

	c.viewport.SetWidth(innerWidth)
	c.viewport.SetHeight(viewportHeight)
	c.input.SetWidth(innerWidth - InputPaddingWidth)
	c.updateContent()
}

// SetFocused sets the focus state
func (c *Chat) SetFocused(focused bool) {
	c.focused = focused
	if focused {
		c.input.Focus()
	} else {
		c.input.Blur()
	}
}

// IsFocused returns the focus state
func (c *Chat) IsFocused() bool {
	return c.focused
}

// ShowingWelcome reports whether the pre-conversation welcome screen is up
func (c *Chat) ShowingWelcome() bool {
	return c.welcome && len(c.bubbles) == 0
}

// SetHistory replaces the conversation with a loaded message log
func (c *Chat) SetHistory(messages []chat.Message) {
	c.bubbles = c.bubbles[:0]
	for _, m := range messages {
		c.bubbles = append(c.bubbles, bubble{Message: m})
	}
	c.welcome = false
	c.updateContent()
}

// Clear empties the conversation and shows the welcome placeholder again
func (c *Chat) Clear() {
	c.bubbles = nil
	c.welcome = true
	c.updateContent()
}

// AddUserMessage appends a user bubble
func (c *Chat) AddUserMessage(content string) {
	c.bubbles = append(c.bubbles, bubble{Message: chat.Message{
		Content: content,
		Sender:  chat.SenderUser,
	}})
	c.welcome = false
	c.updateContent()
}

// AddBotMessage appends a bot reply bubble
func (c *Chat) AddBotMessage(content string) {
	c.bubbles = append(c.bubbles, bubble{Message: chat.Message{
		Content: content,
		Sender:  chat.SenderBot,
	}})
	c.welcome = false
	c.updateContent()
}

// AddErrorMessage appends an error bubble. The user message that triggered
// the failed send stays in place above it.
func (c *Chat) AddErrorMessage(content string) {
	c.bubbles = append(c.bubbles, bubble{
		Message: chat.Message{Content: content, Sender: chat.SenderBot},
		isError: true,
	})
	c.welcome = false
	c.updateContent()
}

// LastBotMessage returns the most recent bot reply, or "" if there is none.
// Error bubbles don't count.
func (c *Chat) LastBotMessage() string {
	for i := len(c.bubbles) - 1; i >= 0; i-- {
		b := c.bubbles[i]
		if b.Sender == chat.SenderBot && !b.isError {
			return b.Content
		}
	}
	return ""
}

// MessageCount returns the number of bubbles in the conversation
func (c *Chat) MessageCount() int {
	return len(c.bubbles)
}

// GetInput returns the current input text, trimmed
func (c *Chat) GetInput() string {
	return strings.TrimSpace(c.input.Value())
}

// ClearInput clears the input field
func (c *Chat) ClearInput() {
	c.input.Reset()
}

// SetBusy locks or unlocks the input while a send is in flight
func (c *Chat) SetBusy(busy bool) {
	c.busy = busy
	if busy {
		c.busyStartTime = time.Now()
		c.busyVerb = randomThinkingVerb()
	}
	c.updateContent()
}

// IsBusy returns whether a send is in flight
func (c *Chat) IsBusy() bool {
	return c.busy
}

// StopwatchTick returns a command that sends a tick message after a delay
func StopwatchTick() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(t time.Time) tea.Msg {
		return StopwatchTickMsg(t)
	})
}

// formatElapsed formats a duration as a stopwatch string (e.g., "1.2s", "1:23")
func formatElapsed(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("%.1fs", d.Seconds())
	}
	mins := int(d.Minutes())
	secs := int(d.Seconds()) % 60
	return fmt.Sprintf("%d:%02d", mins, secs)
}

// renderWelcome renders the placeholder shown before any conversation starts
func (c *Chat) renderWelcome() string {
	msgStyle := lipgloss.NewStyle().Foreground(ColorTextMuted)
	keyStyle := lipgloss.NewStyle().Foreground(ColorPrimary).Bold(true)

	var sb strings.Builder
	sb.WriteString(msgStyle.Italic(true).Render("Kumusta! I'm your OPM music guide."))
	sb.WriteString("\n\n")
	sb.WriteString(msgStyle.Render("Ask me about Filipino artists, songs, or playlists."))
	sb.WriteString("\n\n")
	sb.WriteString(msgStyle.Render("  • Type a message and press "))
	sb.WriteString(keyStyle.Render("enter"))
	sb.WriteString(msgStyle.Render(" to send"))
	sb.WriteString("\n")
	sb.WriteString(msgStyle.Render("  • Press "))
	sb.WriteString(keyStyle.Render("tab"))
	sb.WriteString(msgStyle.Render(" to browse past conversations"))
	sb.WriteString("\n\n")
	sb.WriteString(msgStyle.Render("Or pick a mood for instant recommendations:"))
	for i, mood := range MoodPresets {
		sb.WriteString("\n")
		sb.WriteString(msgStyle.Render("  • "))
		sb.WriteString(keyStyle.Render(fmt.Sprintf("alt+%d", i+1)))
		sb.WriteString(msgStyle.Render(" " + mood))
	}
	return sb.String()
}

func (c *Chat) updateContent() {
	var sb strings.Builder

	wrapWidth := c.viewport.Width()
	if wrapWidth <= 0 {
		wrapWidth = DefaultWrapWidth
	}

	if c.welcome && len(c.bubbles) == 0 {
		sb.WriteString(c.renderWelcome())
	} else {
		for i, b := range c.bubbles {
			if i > 0 {
				sb.WriteString("\n\n")
			}

			switch {
			case b.isError:
				sb.WriteString(StatusErrorStyle.Render("Error:"))
				sb.WriteString("\n")
				sb.WriteString(ChatErrorStyle.Render(strings.TrimSpace(b.Content)))
			case b.Sender == chat.SenderUser:
				// User text renders verbatim; only bot replies get markdown
				sb.WriteString(ChatUserStyle.Render("You:"))
				sb.WriteString("\n")
				sb.WriteString(lipgloss.NewStyle().Width(wrapWidth).Render(strings.TrimSpace(b.Content)))
			default:
				sb.WriteString(ChatBotStyle.Render("Guide:"))
				sb.WriteString("\n")
				sb.WriteString(renderMarkdown(strings.TrimSpace(b.Content), wrapWidth))
			}
		}

		if c.busy {
			if len(c.bubbles) > 0 {
				sb.WriteString("\n\n")
			}
			elapsed := time.Since(c.busyStartTime)
			stopwatchStyle := lipgloss.NewStyle().Foreground(ColorPrimary).Bold(true)
			sb.WriteString(ChatBotStyle.Render("Guide:"))
			sb.WriteString("\n")
			sb.WriteString(StatusLoadingStyle.Render(c.busyVerb + "... "))
			sb.WriteString(stopwatchStyle.Render(formatElapsed(elapsed)))
		}
	}

	c.viewport.SetContent(sb.String())
	c.viewport.GotoBottom()
}

// Update handles messages
func (c *Chat) Update(msg tea.Msg) (*Chat, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg.(type) {
	case StopwatchTickMsg:
		if c.busy {
			c.updateContent()
			cmds = append(cmds, StopwatchTick())
		}
		return c, tea.Batch(cmds...)
	}

	if c.focused && !c.busy {
		if keyMsg, isKey := msg.(tea.KeyPressMsg); isKey {
			switch keyMsg.String() {
			// Scroll keys go to the viewport, not the input
			case keys.PgUp, keys.PgDown, keys.Home, keys.End,
				keys.CtrlU, keys.CtrlD:
				var cmd tea.Cmd
				c.viewport, cmd = c.viewport.Update(msg)
				cmds = append(cmds, cmd)
				return c, tea.Batch(cmds...)
			// Plain enter sends (handled upstream); shift+enter inserts a
			// newline, which the textarea binds to plain enter.
			case keys.ShiftEnter:
				msg = tea.KeyPressMsg{Code: tea.KeyEnter}
			}
		}

		var cmd tea.Cmd
		c.input, cmd = c.input.Update(msg)
		cmds = append(cmds, cmd)

		// Keep key events out of the viewport while typing
		if _, isKey := msg.(tea.KeyPressMsg); isKey {
			return c, tea.Batch(cmds...)
		}
	}

	var cmd tea.Cmd
	c.viewport, cmd = c.viewport.Update(msg)
	cmds = append(cmds, cmd)

	return c, tea.Batch(cmds...)
}

// View renders the chat panel
func (c *Chat) View() string {
	panelStyle := PanelStyle
	if c.focused {
		panelStyle = PanelFocusedStyle
	}

	chatPanelHeight := c.height - InputTotalHeight
	chatPanel := panelStyle.Width(c.width).Height(chatPanelHeight).Render(c.viewport.View())

	inputStyle := ChatInputStyle
	if c.focused && !c.busy {
		inputStyle = ChatInputFocusedStyle
	}
	inputArea := inputStyle.Width(c.width).Render(c.input.View())

	return lipgloss.JoinVertical(lipgloss.Left, chatPanel, inputArea)
}
