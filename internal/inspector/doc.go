// Package inspector implements the interactive tile configuration view.
//
// The inspector is a Bubble Tea program driven entirely by backend
// messages: connection state changes pick the visible screen, tile
// property snapshots populate the form fields, and form edits are
// written back as property updates. A single coordinator model owns
// the screen routing and delegates per-screen input handling.
package inspector
