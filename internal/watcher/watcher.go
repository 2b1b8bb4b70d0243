// ABOUTME: Clipboard watcher loop that captures changes into the history store
// ABOUTME: Applies blacklist, image toggle, and self-write suppression before inserting

// Package watcher runs the background capture loop. Each time the clipboard
// backend signals a change, the watcher reads the content, resolves the
// foreground application, and records the result as a history entry unless
// one of the capture gates rejects it: empty content, blacklisted source,
// images disabled, or a payload this process wrote itself.
package watcher

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/pastify/pastify/internal/capture"
	"github.com/pastify/pastify/internal/clip"
	"github.com/pastify/pastify/internal/dedupe"
	"github.com/pastify/pastify/internal/notify"
	"github.com/pastify/pastify/internal/settings"
	"github.com/pastify/pastify/internal/store"
)

// Watcher captures clipboard changes into the store
type Watcher struct {
	backend    clip.Backend
	store      store.Store
	settings   *settings.Manager
	resolver   capture.SourceResolver
	classifier *capture.Classifier
	suppress   *dedupe.Cache
	events     *notify.Broadcaster
	logger     *slog.Logger

	now func() time.Time // test hook
}

// New assembles a watcher over the given collaborators.
func New(backend clip.Backend, st store.Store, sm *settings.Manager, resolver capture.SourceResolver, suppress *dedupe.Cache, events *notify.Broadcaster) *Watcher {
	return &Watcher{
		backend:    backend,
		store:      st,
		settings:   sm,
		resolver:   resolver,
		classifier: capture.NewClassifier(),
		suppress:   suppress,
		events:     events,
		logger:     slog.Default().With("component", "watcher"),
		now:        time.Now,
	}
}

// Run blocks processing clipboard change signals until ctx is cancelled.
// Individual capture failures are logged and skipped; the loop only exits
// with the context.
func (w *Watcher) Run(ctx context.Context) error {
	w.logger.Info("clipboard watcher started", "backend", w.backend.Name())
	changes := w.backend.Watch()
	for {
		select {
		case <-ctx.Done():
			w.logger.Info("clipboard watcher stopped")
			return ctx.Err()
		case <-changes:
			w.tick(ctx)
		}
	}
}

// tick processes one clipboard change signal.
func (w *Watcher) tick(ctx context.Context) {
	content, err := w.backend.Read()
	if err != nil {
		w.logger.Warn("clipboard read failed", "err", err)
		return
	}

	cfg := w.settings.Get()
	source := w.resolver.Resolve()
	if source != nil && cfg.Blacklisted(source.App) {
		w.logger.Debug("skipping capture from blacklisted app", "app", source.App)
		return
	}
	if !cfg.RecordImages && content != nil {
		content = &clip.Content{Text: content.Text}
	}

	entry, err := w.classifier.Classify(content, source, w.now())
	if err != nil {
		if !errors.Is(err, capture.ErrEmpty) {
			w.logger.Warn("classification failed", "err", err)
		}
		return
	}

	if w.suppress.Seen(entry.ContentHash) {
		w.logger.Debug("skipping self-written clipboard content", "hash", entry.ContentHash[:12])
		return
	}

	stored, collapsed, err := w.store.InsertEntry(ctx, entry, cfg.MaxHistory)
	if err != nil {
		w.logger.Error("storing clipboard entry failed", "err", err)
		return
	}
	if collapsed {
		w.logger.Debug("consecutive duplicate collapsed", "id", stored.ID)
	} else {
		w.logger.Debug("clipboard entry captured",
			"id", stored.ID, "type", stored.ContentType, "source", stored.SourceApp)
	}
	w.events.Publish(&notify.Event{Kind: notify.KindEntryCaptured, Entry: stored})
}
