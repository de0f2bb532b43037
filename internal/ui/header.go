package ui

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// Header represents the top header bar
type Header struct {
	width        int
	sessionTitle string
	guestMode    bool
}

// NewHeader creates a new header
func NewHeader() *Header {
	return &Header{}
}

// SetWidth sets the header width
func (h *Header) SetWidth(width int) {
	h.width = width
}

// SetSessionTitle sets the active conversation title to display
func (h *Header) SetSessionTitle(title string) {
	h.sessionTitle = title
}

// SetGuestMode marks the header when running against the local store
func (h *Header) SetGuestMode(guest bool) {
	h.guestMode = guest
}

// View renders the header
func (h *Header) View() string {
	titleText := "opmchat"
	if h.guestMode {
		titleText += " (guest)"
	}

	rightText := h.sessionTitle

	// Account for the style's own padding on both sides
	paddingLen := h.width - runewidth.StringWidth(titleText) - runewidth.StringWidth(rightText) - InputPaddingWidth
	if paddingLen < 1 {
		paddingLen = 1
	}

	content := titleText + strings.Repeat(" ", paddingLen) + rightText
	return HeaderStyle.Width(h.width).Render(content)
}
