// Package notification provides cross-platform desktop notifications.
// It uses the beeep library to send notifications on macOS, Linux, and Windows.
package notification

import (
	"github.com/gen2brain/beeep"

	"github.com/a3music/opmchat/internal/logger"
)

// notifyFunc is the notification backend. Swappable for testing.
type notifyFunc func(title, message string, icon any) error

var notifier notifyFunc = beeep.Notify

// SetNotifier replaces the notification backend. Used in tests.
func SetNotifier(fn func(title, message string, icon any) error) {
	notifier = fn
}

// ResetNotifier restores the default beeep backend.
func ResetNotifier() {
	notifier = beeep.Notify
}

// Send sends a desktop notification with the given title and message.
// On macOS, it uses terminal-notifier or AppleScript.
// On Linux, it uses D-Bus or notify-send.
// On Windows, it uses the Windows Runtime COM API.
func Send(title, message string) error {
	logger.Debug("notification: sending title=%q message=%q", title, message)
	// Empty icon: beeep handles platform defaults
	err := notifier(title, message, "")
	if err != nil {
		logger.Warn("notification: failed to send: %v", err)
	}
	return err
}

// ReplyArrived notifies that the music guide answered while the terminal
// was in the background.
func ReplyArrived(sessionTitle string) error {
	if sessionTitle == "" {
		return Send("opmchat", "Your music guide replied")
	}
	return Send("opmchat", "New reply in "+sessionTitle)
}
