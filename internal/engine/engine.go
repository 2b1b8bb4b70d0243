// ABOUTME: Engine wiring the store, watcher, paste simulator, hotkey, and settings together
// ABOUTME: Exposes the command surface the presentation layer calls into

// Package engine composes the capture-and-recall machinery into a single
// long-running service. The engine owns the background goroutines (capture
// loop, hotkey trigger loop) and exposes the synchronous command surface:
// history queries, pin/delete, paste/copy, and settings updates with their
// side effects.
package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/pastify/pastify/internal/capture"
	"github.com/pastify/pastify/internal/clip"
	"github.com/pastify/pastify/internal/dedupe"
	"github.com/pastify/pastify/internal/hotkey"
	"github.com/pastify/pastify/internal/notify"
	"github.com/pastify/pastify/internal/paste"
	"github.com/pastify/pastify/internal/settings"
	"github.com/pastify/pastify/internal/store"
	"github.com/pastify/pastify/internal/watcher"
)

// suppressTTL bounds how long a self-written clipboard payload stays
// invisible to the capture loop. Long enough to cover slow clipboard
// round-trips, short enough that a user deliberately re-copying the same
// content later is still captured.
const suppressTTL = 5 * time.Second

// Options configures engine construction. Store is required; the rest
// default to platform implementations.
type Options struct {
	Store        store.Store
	Clipboard    clip.Backend
	Hotkeys      hotkey.Manager
	Resolver     capture.SourceResolver
	Injector     paste.Injector
	PollInterval time.Duration
	SettleDelay  time.Duration
}

// Engine is the running service
type Engine struct {
	store    store.Store
	clip     clip.Backend
	settings *settings.Manager
	events   *notify.Broadcaster
	suppress *dedupe.Cache
	watcher  *watcher.Watcher
	paster   *paste.Simulator
	hotkeys  hotkey.Manager
	logger   *slog.Logger
}

// New builds an engine from the given options, loading persisted settings
// as part of construction.
func New(ctx context.Context, opts Options) (*Engine, error) {
	if opts.Store == nil {
		return nil, fmt.Errorf("engine requires a store")
	}
	if opts.Clipboard == nil {
		opts.Clipboard = clip.New(opts.PollInterval)
	}
	if opts.Hotkeys == nil {
		opts.Hotkeys = hotkey.NewManager()
	}
	if opts.Resolver == nil {
		opts.Resolver = capture.NewSourceResolver(nil)
	}

	sm, err := settings.NewManager(ctx, opts.Store)
	if err != nil {
		return nil, err
	}

	events := notify.New(nil)
	suppress := dedupe.New(suppressTTL, 256)

	e := &Engine{
		store:    opts.Store,
		clip:     opts.Clipboard,
		settings: sm,
		events:   events,
		suppress: suppress,
		watcher:  watcher.New(opts.Clipboard, opts.Store, sm, opts.Resolver, suppress, events),
		paster:   paste.NewSimulator(opts.Store, opts.Clipboard, suppress, events, opts.Injector, opts.SettleDelay),
		hotkeys:  opts.Hotkeys,
		logger:   slog.Default().With("component", "engine"),
	}
	return e, nil
}

// Start launches the background loops and registers the recall hotkey.
// A hotkey conflict is reported but does not stop the engine; every other
// capability keeps working and the binding can be changed through
// UpdateSettings. Start returns immediately; the loops run until ctx is
// cancelled.
func (e *Engine) Start(ctx context.Context) error {
	go func() {
		if err := e.watcher.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			e.logger.Error("watcher loop exited", "err", err)
		}
	}()
	go e.triggerLoop(ctx)

	combo := e.settings.Get().Hotkey
	if err := e.hotkeys.Register(combo); err != nil {
		if errors.Is(err, hotkey.ErrUnsupported) {
			e.logger.Warn("global hotkeys unsupported on this platform")
			return nil
		}
		return fmt.Errorf("registering hotkey %q: %w", combo, err)
	}
	e.logger.Info("recall hotkey registered", "combo", combo)
	return nil
}

// triggerLoop turns hotkey activations into window toggle events.
func (e *Engine) triggerLoop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-e.hotkeys.Triggered():
			e.logger.Debug("recall hotkey triggered")
			e.events.Publish(&notify.Event{Kind: notify.KindWindowToggle})
		}
	}
}

// History returns entries matching the filter, pinned first, newest first.
func (e *Engine) History(ctx context.Context, f store.Filter) ([]*store.Entry, error) {
	if f.Now.IsZero() {
		f.Now = time.Now()
	}
	return e.store.ListEntries(ctx, f)
}

// Delete removes an entry. Deleting an unknown id is a no-op.
func (e *Engine) Delete(ctx context.Context, id int64) error {
	deleted, err := e.store.DeleteEntry(ctx, id)
	if err != nil {
		return err
	}
	if deleted {
		e.logger.Debug("entry deleted", "id", id)
	}
	return nil
}

// TogglePin flips an entry's pinned flag and returns the updated entry.
func (e *Engine) TogglePin(ctx context.Context, id int64) (*store.Entry, error) {
	entry, err := e.store.GetEntry(ctx, id)
	if err != nil {
		return nil, err
	}
	return e.store.SetPinned(ctx, id, !entry.IsPinned)
}

// Paste replays an entry into the previously focused application.
func (e *Engine) Paste(ctx context.Context, id int64, plain bool) (*store.Entry, error) {
	return e.paster.Paste(ctx, id, plain)
}

// Copy puts an entry back on the clipboard without injecting a gesture.
func (e *Engine) Copy(ctx context.Context, id int64) (*store.Entry, error) {
	return e.paster.Copy(ctx, id)
}

// Settings returns the current settings.
func (e *Engine) Settings() store.Settings {
	return e.settings.Get()
}

// UpdateSettings applies a partial settings update and performs its side
// effects: shrinking the history cap evicts surplus unpinned entries
// immediately, and a hotkey change rebinds the global shortcut. A hotkey
// conflict is returned to the caller but the settings stay saved; the
// previous binding is gone and the user picks a new one.
func (e *Engine) UpdateSettings(ctx context.Context, p settings.Partial) (store.Settings, error) {
	prev, next, err := e.settings.Update(ctx, p)
	if err != nil {
		return prev, err
	}

	if next.MaxHistory < prev.MaxHistory {
		evicted, err := e.store.EnforceLimit(ctx, next.MaxHistory)
		if err != nil {
			return next, fmt.Errorf("enforcing new history limit: %w", err)
		}
		if evicted > 0 {
			e.logger.Info("history trimmed to new limit", "evicted", evicted, "limit", next.MaxHistory)
		}
	}

	if next.Hotkey != prev.Hotkey {
		if err := e.hotkeys.Rebind(next.Hotkey); err != nil {
			if errors.Is(err, hotkey.ErrUnsupported) {
				e.logger.Warn("global hotkeys unsupported, binding saved only")
			} else {
				return next, fmt.Errorf("rebinding hotkey %q: %w", next.Hotkey, err)
			}
		} else {
			e.logger.Info("recall hotkey rebound", "combo", next.Hotkey)
		}
	}

	return next, nil
}

// Subscribe registers an event listener; the subscription ends with ctx.
func (e *Engine) Subscribe(ctx context.Context) (<-chan *notify.Event, string) {
	return e.events.Subscribe(ctx)
}

// Close releases the engine's resources. The background loops stop with
// the context passed to Start.
func (e *Engine) Close() error {
	e.hotkeys.Close()
	e.clip.Close()
	e.events.Close()
	e.suppress.Close()
	return e.store.Close()
}
