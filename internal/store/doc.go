// Package store provides persistent storage for clipboard history using SQLite.
//
// # Architecture
//
// The Store interface covers entry persistence, the settings blob, and the
// eviction policy. SQLiteStore implements it on modernc.org/sqlite with WAL
// mode and a single connection, which serializes all mutating access.
//
// # Data Model
//
//   - Entry: one captured clipboard snapshot (text or image) with content
//     hash, capture timestamp, best-effort source application, pin flag and
//     usage count
//   - Settings: max_history, record_images, hotkey and blacklist, stored as
//     one JSON blob in the settings table
//
// # Invariants
//
// InsertEntry enforces the history cap and duplicate collapse inside one
// transaction: readers never observe more than max_history unpinned entries,
// and a capture matching the newest entry's hash bumps that entry's
// created_at instead of inserting a row. Pinned entries are exempt from
// eviction and do not count against the cap.
//
// # Error Handling
//
// ErrNotFound is returned when a requested entry does not exist. DeleteEntry
// of a missing id is a no-op returning false, not an error.
//
// # Testing
//
// Use NewSQLiteStore(":memory:") for tests; the schema is created on open.
package store
