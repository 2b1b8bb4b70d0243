// ABOUTME: Settings persistence in the SQLite store
// ABOUTME: Stores Settings as one JSON blob under the key 'app' in the settings table

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
)

// settingsKey is the settings-table key holding the Settings JSON blob
const settingsKey = "app"

// LoadSettings returns the persisted settings, or defaults when nothing has
// been saved yet. A corrupt blob also falls back to defaults rather than
// failing startup.
func (s *SQLiteStore) LoadSettings(ctx context.Context) (*Settings, error) {
	var raw string
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM settings WHERE key = ?`, settingsKey).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return DefaultSettings(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading settings: %w", err)
	}

	var loaded Settings
	if err := json.Unmarshal([]byte(raw), &loaded); err != nil {
		s.logger.Warn("settings blob unreadable, using defaults", "err", err)
		return DefaultSettings(), nil
	}
	if loaded.Blacklist == nil {
		loaded.Blacklist = []string{}
	}
	return &loaded, nil
}

// SaveSettings persists the settings immediately
func (s *SQLiteStore) SaveSettings(ctx context.Context, settings *Settings) error {
	raw, err := json.Marshal(settings)
	if err != nil {
		return fmt.Errorf("encoding settings: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO settings(key, value) VALUES(?, ?)`,
		settingsKey, string(raw))
	if err != nil {
		return fmt.Errorf("saving settings: %w", err)
	}
	return nil
}
