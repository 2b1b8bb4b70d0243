// ABOUTME: Global hotkey manager toggling the presentation window
// ABOUTME: Declares the Manager interface, typed errors and the combo descriptor

// Package hotkey registers a global key combination that shows/hides the
// presentation window. Build constraints select the implementation:
// desktop platforms use golang.design/x/hotkey, everything else gets a stub
// that reports ErrUnsupported and leaves the engine running without a
// hotkey.
package hotkey

import "errors"

var (
	// ErrConflict is returned when the combination is already claimed by
	// another process. The engine keeps running without an active hotkey.
	ErrConflict = errors.New("hotkey already registered by another process")

	// ErrUnsupported is returned on platforms without global hotkey support
	ErrUnsupported = errors.New("global hotkeys not supported on this platform")
)

// Manager owns at most one registered global combination
type Manager interface {
	// Register claims the combination. Only valid in the unregistered state.
	Register(combo string) error

	// Rebind atomically replaces the current combination: the old one is
	// unregistered before the new one is claimed. On conflict the old
	// binding is already gone and ErrConflict is returned.
	Rebind(combo string) error

	// Triggered delivers one signal per hotkey press. The channel is never
	// closed and drops presses while the consumer is busy.
	Triggered() <-chan struct{}

	// Close unregisters the combination and releases resources
	Close()
}

// NewManager returns the platform hotkey manager
func NewManager() Manager {
	return newPlatformManager()
}
