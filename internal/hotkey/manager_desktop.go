// ABOUTME: Desktop hotkey manager on golang.design/x/hotkey
// ABOUTME: Handles registration, atomic rebinding and trigger fan-in

//go:build linux || windows || darwin

package hotkey

import (
	"fmt"
	"log/slog"
	"sync"

	"golang.design/x/hotkey"
)

type desktopManager struct {
	mu        sync.Mutex
	current   *hotkey.Hotkey
	stop      chan struct{} // stops the listen goroutine for current
	triggered chan struct{}
	logger    *slog.Logger
}

func newPlatformManager() Manager {
	return &desktopManager{
		triggered: make(chan struct{}, 1),
		logger:    slog.Default().With("component", "hotkey"),
	}
}

func (m *desktopManager) Register(combo string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.current != nil {
		return fmt.Errorf("hotkey already registered; use Rebind")
	}
	return m.registerLocked(combo)
}

func (m *desktopManager) Rebind(combo string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.unregisterLocked()
	return m.registerLocked(combo)
}

// registerLocked claims the combination. Must be called with mu held and no
// current registration.
func (m *desktopManager) registerLocked(combo string) error {
	parsed, err := ParseCombo(combo)
	if err != nil {
		return err
	}
	mods, key, err := toPlatform(parsed)
	if err != nil {
		return err
	}

	hk := hotkey.New(mods, key)
	if err := hk.Register(); err != nil {
		// The library doesn't distinguish failure causes; a combination
		// held by another process is by far the common one.
		return fmt.Errorf("%w: %v", ErrConflict, err)
	}

	stop := make(chan struct{})
	go m.listen(hk, stop)

	m.current = hk
	m.stop = stop
	m.logger.Info("hotkey registered", "combo", parsed.String())
	return nil
}

func (m *desktopManager) listen(hk *hotkey.Hotkey, stop chan struct{}) {
	for {
		select {
		case <-stop:
			return
		case <-hk.Keydown():
			select {
			case m.triggered <- struct{}{}:
			default:
				// Consumer still handling the previous press
			}
		}
	}
}

// unregisterLocked releases the current registration if any. Must be called
// with mu held.
func (m *desktopManager) unregisterLocked() {
	if m.current == nil {
		return
	}
	close(m.stop)
	if err := m.current.Unregister(); err != nil {
		m.logger.Warn("hotkey unregister failed", "err", err)
	}
	m.current = nil
	m.stop = nil
}

func (m *desktopManager) Triggered() <-chan struct{} { return m.triggered }

func (m *desktopManager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.unregisterLocked()
}
