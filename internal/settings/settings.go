// ABOUTME: Settings manager holding the validated in-memory copy of user preferences
// ABOUTME: Applies partial updates, clamps bounds, and persists through the store

// Package settings owns the mutable runtime configuration: history cap,
// image recording toggle, recall hotkey, and the source-app blacklist.
// The manager keeps a validated in-memory copy so hot paths (the capture
// loop) never touch the database, and writes through to the store on every
// accepted update.
package settings

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/pastify/pastify/internal/hotkey"
	"github.com/pastify/pastify/internal/store"
)

// Partial is a sparse update; nil fields keep their current value.
type Partial struct {
	MaxHistory   *int      `json:"max_history,omitempty"`
	RecordImages *bool     `json:"record_images,omitempty"`
	Hotkey       *string   `json:"hotkey,omitempty"`
	Blacklist    *[]string `json:"blacklist,omitempty"`
}

// Manager serializes settings reads and writes
type Manager struct {
	mu     sync.RWMutex
	cur    *store.Settings
	st     store.Store
	logger *slog.Logger
}

// NewManager loads persisted settings (or defaults when none exist) and
// returns a manager seeded with them.
func NewManager(ctx context.Context, st store.Store) (*Manager, error) {
	cur, err := st.LoadSettings(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading settings: %w", err)
	}
	return &Manager{
		cur:    cur,
		st:     st,
		logger: slog.Default().With("component", "settings"),
	}, nil
}

// Get returns a copy of the current settings.
func (m *Manager) Get() store.Settings {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := *m.cur
	out.Blacklist = append([]string(nil), m.cur.Blacklist...)
	return out
}

// Update validates and applies a partial update, persisting the result.
// Returns the previous and the new settings so callers can react to what
// changed. Validation failures leave the current settings untouched.
func (m *Manager) Update(ctx context.Context, p Partial) (prev, next store.Settings, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	prev = *m.cur
	prev.Blacklist = append([]string(nil), m.cur.Blacklist...)

	candidate := prev
	candidate.Blacklist = append([]string(nil), prev.Blacklist...)

	if p.MaxHistory != nil {
		candidate.MaxHistory = clampHistory(*p.MaxHistory)
	}
	if p.RecordImages != nil {
		candidate.RecordImages = *p.RecordImages
	}
	if p.Hotkey != nil {
		combo, perr := hotkey.ParseCombo(*p.Hotkey)
		if perr != nil {
			return prev, prev, fmt.Errorf("invalid hotkey %q: %w", *p.Hotkey, perr)
		}
		candidate.Hotkey = combo.String()
	}
	if p.Blacklist != nil {
		candidate.Blacklist = normalizeBlacklist(*p.Blacklist)
	}

	if err := m.st.SaveSettings(ctx, &candidate); err != nil {
		return prev, prev, fmt.Errorf("persisting settings: %w", err)
	}

	m.cur = &candidate
	m.logger.Info("settings updated",
		"max_history", candidate.MaxHistory,
		"record_images", candidate.RecordImages,
		"hotkey", candidate.Hotkey,
		"blacklist_len", len(candidate.Blacklist))

	next = candidate
	next.Blacklist = append([]string(nil), candidate.Blacklist...)
	return prev, next, nil
}

// clampHistory bounds the history cap to its supported range rather than
// rejecting out-of-range values.
func clampHistory(n int) int {
	if n < store.MinHistory {
		return store.MinHistory
	}
	if n > store.MaxHistoryCap {
		return store.MaxHistoryCap
	}
	return n
}

// normalizeBlacklist trims entries, drops empties, and removes
// case-insensitive duplicates while preserving first-seen order.
func normalizeBlacklist(apps []string) []string {
	seen := make(map[string]struct{}, len(apps))
	out := make([]string, 0, len(apps))
	for _, app := range apps {
		app = strings.TrimSpace(app)
		if app == "" {
			continue
		}
		key := strings.ToLower(app)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, app)
	}
	return out
}
