// ABOUTME: Hotkey manager stub for platforms without global hotkey support
// ABOUTME: Registration reports ErrUnsupported; the engine runs without a hotkey

//go:build !linux && !windows && !darwin

package hotkey

type stubManager struct {
	triggered chan struct{}
}

func newPlatformManager() Manager {
	return &stubManager{triggered: make(chan struct{})}
}

func (m *stubManager) Register(combo string) error {
	if _, err := ParseCombo(combo); err != nil {
		return err
	}
	return ErrUnsupported
}

func (m *stubManager) Rebind(combo string) error  { return m.Register(combo) }
func (m *stubManager) Triggered() <-chan struct{} { return m.triggered }
func (m *stubManager) Close()                     {}
