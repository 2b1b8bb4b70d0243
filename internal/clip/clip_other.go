// ABOUTME: Clipboard backend stub for platforms without clipboard support
// ABOUTME: Returns the headless no-op backend unconditionally

//go:build !linux && !windows && !darwin

package clip

import "time"

// New returns the headless no-op backend on unsupported platforms.
func New(_ time.Duration) Backend {
	return newHeadless()
}
