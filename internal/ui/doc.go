// Package ui provides the terminal interface components for opmchat.
//
// # Layout
//
// The screen is split into four regions:
//
//	┌──────────────────────────────────────┐
//	│ Header (1 line)                      │
//	├───────────┬──────────────────────────┤
//	│ Sidebar   │ Chat viewport            │
//	│ (1/3)     │                          │
//	│           ├──────────────────────────┤
//	│           │ Input textarea           │
//	├───────────┴──────────────────────────┤
//	│ Footer (1 line)                      │
//	└──────────────────────────────────────┘
//
// The sidebar lists conversations; the chat panel shows the active
// conversation and the input area below it. Modals render centered on top
// of everything else.
//
// # Components
//
// Chat: conversation viewport plus input textarea. Owns message rendering,
// including markdown code blocks with syntax highlighting.
//
// Sidebar: flat list of conversations with keyboard navigation.
//
// Modal: popup dialogs using a type-safe state interface. Each dialog kind
// has its own state struct.
//
// Header and Footer: single-line chrome. The footer doubles as a transient
// flash message area for errors and confirmations.
package ui
