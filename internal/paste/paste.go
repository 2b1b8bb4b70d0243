// ABOUTME: Paste simulator replaying stored entries into the previously focused application
// ABOUTME: Writes the entry to the clipboard, waits for focus to settle, injects a paste gesture

// Package paste replays a stored entry's content into whichever external
// application last held keyboard focus. The sequence is: write the entry
// back to the system clipboard, ask the presentation window to yield focus,
// wait a short settle delay, then inject the platform paste gesture.
// Injection happens outside any store transaction; the store is only
// touched again to bump usage_count after a successful injection.
package paste

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/pastify/pastify/internal/capture"
	"github.com/pastify/pastify/internal/clip"
	"github.com/pastify/pastify/internal/dedupe"
	"github.com/pastify/pastify/internal/notify"
	"github.com/pastify/pastify/internal/store"
)

var (
	// ErrFocusTimeout is returned when the focus-settle wait is cancelled
	// before the gesture could be injected.
	ErrFocusTimeout = errors.New("focus did not return to the target window in time")

	// ErrInjectionRejected is returned when the target application refused
	// the synthetic input (protected or elevated windows block it).
	ErrInjectionRejected = errors.New("target application rejected synthetic input")
)

// DefaultSettleDelay is the pause between yielding focus and injecting the
// paste gesture. Focus transfer is not instantaneous; shorter delays paste
// into the wrong window, longer ones feel sluggish.
const DefaultSettleDelay = 150 * time.Millisecond

// Injector performs the platform paste gesture (Ctrl+V / Cmd+V)
type Injector interface {
	// PasteGesture injects the paste key chord into the focused window
	PasteGesture() error
}

// Simulator replays stored entries via the system clipboard
type Simulator struct {
	store    store.Store
	clip     clip.Backend
	suppress *dedupe.Cache
	events   *notify.Broadcaster
	injector Injector
	settle   time.Duration
	logger   *slog.Logger
}

// NewSimulator creates a Simulator. A nil injector selects the platform
// default; settle <= 0 selects DefaultSettleDelay.
func NewSimulator(st store.Store, cb clip.Backend, suppress *dedupe.Cache, events *notify.Broadcaster, injector Injector, settle time.Duration) *Simulator {
	if injector == nil {
		injector = newPlatformInjector()
	}
	if settle <= 0 {
		settle = DefaultSettleDelay
	}
	return &Simulator{
		store:    st,
		clip:     cb,
		suppress: suppress,
		events:   events,
		injector: injector,
		settle:   settle,
		logger:   slog.Default().With("component", "paste"),
	}
}

// Paste replays the entry with the given id into the previously focused
// application. For text entries, plain normalizes line endings before
// injection; image entries ignore plain and always paste the image data.
// usage_count is only incremented after a successful injection.
func (s *Simulator) Paste(ctx context.Context, id int64, plain bool) (*store.Entry, error) {
	entry, err := s.store.GetEntry(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.writeToClipboard(entry, plain); err != nil {
		return nil, err
	}

	// Hide the presentation window so focus falls back to the external
	// application, then give the window manager a moment to finish the
	// focus transfer.
	s.events.Publish(&notify.Event{Kind: notify.KindWindowHide})
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%w: %v", ErrFocusTimeout, ctx.Err())
	case <-time.After(s.settle):
	}

	if err := s.injector.PasteGesture(); err != nil {
		s.logger.Warn("paste injection failed", "id", id, "err", err)
		return nil, fmt.Errorf("%w: %v", ErrInjectionRejected, err)
	}

	updated, err := s.store.IncrementUsage(ctx, id)
	if err != nil {
		// The paste itself landed; surface the entry we had
		s.logger.Warn("usage increment failed after paste", "id", id, "err", err)
		return entry, nil
	}
	s.logger.Debug("entry pasted", "id", id, "type", entry.ContentType, "plain", plain)
	return updated, nil
}

// Copy writes the entry back to the system clipboard without injecting a
// gesture, and increments usage_count.
func (s *Simulator) Copy(ctx context.Context, id int64) (*store.Entry, error) {
	entry, err := s.store.GetEntry(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.writeToClipboard(entry, false); err != nil {
		return nil, err
	}
	return s.store.IncrementUsage(ctx, id)
}

// writeToClipboard puts the entry's payload on the system clipboard and
// marks its hash so the watcher does not record the write as a new capture.
func (s *Simulator) writeToClipboard(entry *store.Entry, plain bool) error {
	switch entry.ContentType {
	case store.ContentTypeText:
		text := entry.TextContent
		if plain {
			text = stripFormatting(text)
		}
		payload := []byte(text)
		s.suppress.Mark(entry.ContentHash)
		if plain {
			// A normalized payload hashes differently from the stored one
			s.suppress.Mark(capture.Fingerprint(payload))
		}
		if err := s.clip.WriteText(payload); err != nil {
			return fmt.Errorf("writing text to clipboard: %w", err)
		}
	case store.ContentTypeImage:
		s.suppress.Mark(entry.ContentHash)
		if err := s.clip.WriteImage(entry.ImageData); err != nil {
			return fmt.Errorf("writing image to clipboard: %w", err)
		}
	default:
		return fmt.Errorf("unsupported content type %q", entry.ContentType)
	}
	return nil
}

// stripFormatting reduces text to its plain form: carriage returns dropped,
// trailing per-line whitespace removed. Stored text is already unstyled, so
// this is line-ending normalization more than de-styling.
func stripFormatting(text string) string {
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(strings.ReplaceAll(line, "\r", ""), " \t")
	}
	return strings.Join(lines, "\n")
}
