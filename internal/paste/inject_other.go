// ABOUTME: Paste injection stub for platforms without synthetic input support
// ABOUTME: Gestures always fail; Copy still works through the clipboard backend

//go:build !linux && !windows && !darwin

package paste

import "errors"

type noopInjector struct{}

func newPlatformInjector() Injector { return noopInjector{} }

func (noopInjector) PasteGesture() error {
	return errors.New("paste injection is not supported on this platform")
}
