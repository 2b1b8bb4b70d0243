// ABOUTME: Store interface and data types for pastify persistence
// ABOUTME: Defines Entry, Settings, Filter and the Store interface for database operations

package store

import (
	"context"
	"errors"
	"strings"
	"time"
)

// ErrNotFound is returned when a requested entry does not exist
var ErrNotFound = errors.New("entry not found")

// ContentType identifies what kind of payload an entry holds
type ContentType string

const (
	ContentTypeText  ContentType = "text"
	ContentTypeImage ContentType = "image"
)

// Entry represents one captured clipboard snapshot with metadata
type Entry struct {
	ID          int64
	ContentType ContentType
	TextContent string // present iff ContentType == text
	ImageData   []byte // PNG bytes, present iff ContentType == image
	ImageThumb  []byte // PNG bytes, size-bounded preview of ImageData
	ContentHash string // hex SHA-256 of the raw payload bytes
	CreatedAt   time.Time
	SourceApp   string // best-effort, may be empty
	SourceIcon  []byte // PNG bytes, best-effort, may be nil
	IsPinned    bool
	UsageCount  int64
}

// Settings holds the user-tunable engine parameters. The JSON field names
// are the on-disk format (stored as one JSON blob in the settings table),
// so they must stay stable across releases.
type Settings struct {
	MaxHistory   int      `json:"max_history"`
	RecordImages bool     `json:"record_images"`
	Hotkey       string   `json:"hotkey"`
	Blacklist    []string `json:"blacklist"`
}

// Bounds for Settings.MaxHistory
const (
	MinHistory     = 100
	MaxHistoryCap  = 5000
	DefaultHistory = 1000
)

// DefaultSettings returns the settings used when no row has been persisted yet
func DefaultSettings() *Settings {
	return &Settings{
		MaxHistory:   DefaultHistory,
		RecordImages: true,
		Hotkey:       "ctrl+shift+v",
		Blacklist:    []string{},
	}
}

// Blacklisted reports whether app matches a blacklist entry, ignoring case
func (s *Settings) Blacklisted(app string) bool {
	if app == "" {
		return false
	}
	for _, b := range s.Blacklist {
		if strings.EqualFold(b, app) {
			return true
		}
	}
	return false
}

// TypeFilter restricts a query to one content type
type TypeFilter string

const (
	TypeAll   TypeFilter = "all"
	TypeText  TypeFilter = "text"
	TypeImage TypeFilter = "image"
)

// TimeFilter restricts a query to a local-time day bucket. Buckets are
// evaluated against the clock at query time, not capture time, so entries
// re-bucket as days roll over.
type TimeFilter string

const (
	TimeAll       TimeFilter = "all"
	TimeToday     TimeFilter = "today"
	TimeYesterday TimeFilter = "yesterday"
	TimeEarlier   TimeFilter = "earlier"
)

// Filter describes one history query
type Filter struct {
	Query  string     // case-insensitive substring over text content
	Type   TypeFilter // empty means all
	Time   TimeFilter // empty means all
	Source string     // exact source_app match, empty means all

	// Now anchors the time buckets. The zero value means time.Now();
	// tests inject a fixed clock here.
	Now time.Time
}

// maxListResults is a defensive cap on query result size. The unpinned set
// is already bounded by max_history, so this only matters for stores with
// very many pinned entries.
const maxListResults = 500

// Store defines the interface for clipboard entry and settings persistence
type Store interface {
	// InsertEntry persists a captured entry, enforcing the history cap in
	// the same transaction. When the entry's hash equals the most recently
	// captured entry's hash the capture collapses into that entry: its
	// created_at is bumped instead of inserting a new row, and the returned
	// bool is true.
	InsertEntry(ctx context.Context, entry *Entry, maxHistory int) (*Entry, bool, error)

	GetEntry(ctx context.Context, id int64) (*Entry, error)

	// DeleteEntry removes an entry. Deleting a nonexistent id is a no-op
	// returning false, not an error.
	DeleteEntry(ctx context.Context, id int64) (bool, error)

	SetPinned(ctx context.Context, id int64, pinned bool) (*Entry, error)

	// IncrementUsage bumps usage_count after a successful paste
	IncrementUsage(ctx context.Context, id int64) (*Entry, error)

	// ListEntries returns entries matching the filter, pinned first by
	// recency, then unpinned by recency.
	ListEntries(ctx context.Context, f Filter) ([]*Entry, error)

	// EnforceLimit deletes the oldest unpinned entries until at most max
	// remain. Used when max_history is lowered via settings.
	EnforceLimit(ctx context.Context, max int) (int64, error)

	LoadSettings(ctx context.Context) (*Settings, error)
	SaveSettings(ctx context.Context, s *Settings) error

	// Close releases any resources held by the store
	Close() error
}
