// ABOUTME: Tests for entry CRUD, duplicate collapse and the eviction policy
// ABOUTME: Covers the capture scenarios: consecutive dedup, cap enforcement, pin exemption

package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInsertEntry_AssignsID(t *testing.T) {
	s := newTestStore(t)
	defer s.Close()
	ctx := context.Background()

	e, collapsed, err := s.InsertEntry(ctx, textEntry("hello", time.Now()), DefaultHistory)
	require.NoError(t, err)
	assert.False(t, collapsed)
	assert.Greater(t, e.ID, int64(0))
	assert.Equal(t, ContentTypeText, e.ContentType)
	assert.Equal(t, int64(0), e.UsageCount)
	assert.False(t, e.IsPinned)
}

func TestInsertEntry_CollapsesConsecutiveDuplicate(t *testing.T) {
	s := newTestStore(t)
	defer s.Close()
	ctx := context.Background()

	t0 := time.Now().Add(-time.Minute)
	first, collapsed, err := s.InsertEntry(ctx, textEntry("hello", t0), DefaultHistory)
	require.NoError(t, err)
	require.False(t, collapsed)

	t1 := t0.Add(30 * time.Second)
	second, collapsed, err := s.InsertEntry(ctx, textEntry("hello", t1), DefaultHistory)
	require.NoError(t, err)

	// Same id, bumped timestamp, usage untouched by capture
	assert.True(t, collapsed)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, t1.UnixMilli(), second.CreatedAt.UnixMilli())
	assert.Equal(t, int64(0), second.UsageCount)

	entries, err := s.ListEntries(ctx, Filter{})
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestInsertEntry_NonConsecutiveDuplicateInsertsNewRow(t *testing.T) {
	s := newTestStore(t)
	defer s.Close()
	ctx := context.Background()

	base := time.Now().Add(-time.Minute)
	_, _, err := s.InsertEntry(ctx, textEntry("hello", base), DefaultHistory)
	require.NoError(t, err)
	_, _, err = s.InsertEntry(ctx, textEntry("other", base.Add(time.Second)), DefaultHistory)
	require.NoError(t, err)

	// "hello" is no longer the newest entry, so capturing it again is a new row
	_, collapsed, err := s.InsertEntry(ctx, textEntry("hello", base.Add(2*time.Second)), DefaultHistory)
	require.NoError(t, err)
	assert.False(t, collapsed)

	entries, err := s.ListEntries(ctx, Filter{})
	require.NoError(t, err)
	assert.Len(t, entries, 3)
}

func TestInsertEntry_EvictsOldestUnpinned(t *testing.T) {
	s := newTestStore(t)
	defer s.Close()
	ctx := context.Background()

	// max_history = 3; capture A, B, C, D in order -> {B, C, D}
	base := time.Now().Add(-time.Hour)
	for i, text := range []string{"A", "B", "C", "D"} {
		_, _, err := s.InsertEntry(ctx, textEntry(text, base.Add(time.Duration(i)*time.Minute)), 3)
		require.NoError(t, err)
	}

	entries, err := s.ListEntries(ctx, Filter{})
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "D", entries[0].TextContent)
	assert.Equal(t, "C", entries[1].TextContent)
	assert.Equal(t, "B", entries[2].TextContent)
}

func TestInsertEntry_PinnedExemptFromEviction(t *testing.T) {
	s := newTestStore(t)
	defer s.Close()
	ctx := context.Background()

	base := time.Now().Add(-time.Hour)
	var bID int64
	for i, text := range []string{"A", "B", "C", "D"} {
		e, _, err := s.InsertEntry(ctx, textEntry(text, base.Add(time.Duration(i)*time.Minute)), 3)
		require.NoError(t, err)
		if text == "B" {
			bID = e.ID
		}
	}

	// Pin B, then capture E -> {B(pinned), C, D, E}
	_, err := s.SetPinned(ctx, bID, true)
	require.NoError(t, err)
	_, _, err = s.InsertEntry(ctx, textEntry("E", base.Add(10*time.Minute)), 3)
	require.NoError(t, err)

	entries, err := s.ListEntries(ctx, Filter{})
	require.NoError(t, err)
	require.Len(t, entries, 4)

	// Pinned first, then unpinned by recency
	assert.Equal(t, "B", entries[0].TextContent)
	assert.True(t, entries[0].IsPinned)
	assert.Equal(t, "E", entries[1].TextContent)
	assert.Equal(t, "D", entries[2].TextContent)
	assert.Equal(t, "C", entries[3].TextContent)
}

func TestEnforceLimit_AfterCapDecrease(t *testing.T) {
	s := newTestStore(t)
	defer s.Close()
	ctx := context.Background()

	base := time.Now().Add(-time.Hour)
	for i := 0; i < 10; i++ {
		_, _, err := s.InsertEntry(ctx, textEntry(string(rune('a'+i)), base.Add(time.Duration(i)*time.Minute)), DefaultHistory)
		require.NoError(t, err)
	}

	evicted, err := s.EnforceLimit(ctx, 4)
	require.NoError(t, err)
	assert.Equal(t, int64(6), evicted)

	entries, err := s.ListEntries(ctx, Filter{})
	require.NoError(t, err)
	assert.Len(t, entries, 4)
}

func TestDeleteEntry(t *testing.T) {
	s := newTestStore(t)
	defer s.Close()
	ctx := context.Background()

	e, _, err := s.InsertEntry(ctx, textEntry("bye", time.Now()), DefaultHistory)
	require.NoError(t, err)

	deleted, err := s.DeleteEntry(ctx, e.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	// Deleting a nonexistent id is a no-op returning false
	deleted, err = s.DeleteEntry(ctx, e.ID)
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestGetEntry_NotFound(t *testing.T) {
	s := newTestStore(t)
	defer s.Close()

	_, err := s.GetEntry(context.Background(), 9999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSetPinned_NotFound(t *testing.T) {
	s := newTestStore(t)
	defer s.Close()

	_, err := s.SetPinned(context.Background(), 9999, true)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestIncrementUsage(t *testing.T) {
	s := newTestStore(t)
	defer s.Close()
	ctx := context.Background()

	e, _, err := s.InsertEntry(ctx, textEntry("paste me", time.Now()), DefaultHistory)
	require.NoError(t, err)

	updated, err := s.IncrementUsage(ctx, e.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), updated.UsageCount)

	updated, err = s.IncrementUsage(ctx, e.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), updated.UsageCount)

	_, err = s.IncrementUsage(ctx, 9999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestInsertEntry_ImagePayload(t *testing.T) {
	s := newTestStore(t)
	defer s.Close()
	ctx := context.Background()

	img := &Entry{
		ContentType: ContentTypeImage,
		ImageData:   []byte{0x89, 'P', 'N', 'G', 1, 2, 3},
		ImageThumb:  []byte{0x89, 'P', 'N', 'G'},
		ContentHash: "img-hash",
		CreatedAt:   time.Now(),
		SourceApp:   "Screenshot Tool",
	}
	saved, _, err := s.InsertEntry(ctx, img, DefaultHistory)
	require.NoError(t, err)

	got, err := s.GetEntry(ctx, saved.ID)
	require.NoError(t, err)
	assert.Equal(t, ContentTypeImage, got.ContentType)
	assert.Equal(t, img.ImageData, got.ImageData)
	assert.Equal(t, img.ImageThumb, got.ImageThumb)
	assert.Equal(t, "Screenshot Tool", got.SourceApp)
	assert.Empty(t, got.TextContent)
}
