// Package tui implements the interactive chat interface for Atlas.
// It is built on Bubble Tea with a transcript viewport, an input field,
// and a status line fed by workflow events.
package tui
