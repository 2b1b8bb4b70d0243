// ABOUTME: In-memory fan-out broadcaster pushing engine events to presentation subscribers
// ABOUTME: Carries entry.captured plus the window show/hide signals driven by hotkey and paste

// Package notify provides the engine's event surface: an in-memory pub/sub
// channel between the capture loop (and hotkey/paste paths) and however
// many presentation-layer subscribers are attached. Delivery is
// fire-and-forget; the engine gives no ordering guarantee between an event
// and a concurrent query's result.
package notify

import (
	"context"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/pastify/pastify/internal/store"
)

// subscriberBufferSize is the channel buffer for each subscriber
const subscriberBufferSize = 64

// Kind identifies the event type
type Kind string

const (
	// KindEntryCaptured fires once per successful capture. A duplicate
	// collapse still fires it, carrying the touched entry.
	KindEntryCaptured Kind = "entry.captured"

	// KindWindowToggle asks the presentation window to show or hide,
	// driven by the global hotkey.
	KindWindowToggle Kind = "window.toggle"

	// KindWindowHide asks the presentation window to yield focus so a
	// paste can land in the previously active application.
	KindWindowHide Kind = "window.hide"
)

// Event is one notification pushed to subscribers
type Event struct {
	Kind  Kind
	Entry *store.Entry // set for KindEntryCaptured, nil otherwise
}

// Broadcaster provides in-memory pub/sub for engine events
type Broadcaster struct {
	mu          sync.RWMutex
	subscribers map[string]chan *Event
	logger      *slog.Logger
}

// New creates a broadcaster. Pass nil logger for default.
func New(logger *slog.Logger) *Broadcaster {
	if logger == nil {
		logger = slog.Default()
	}
	return &Broadcaster{
		subscribers: make(map[string]chan *Event),
		logger:      logger.With("component", "notify"),
	}
}

// Subscribe registers a subscriber. Returns a channel that receives events
// and a subscription ID for later unsubscription. The subscription is
// automatically cleaned up when ctx is cancelled.
func (b *Broadcaster) Subscribe(ctx context.Context) (<-chan *Event, string) {
	subID := uuid.New().String()
	ch := make(chan *Event, subscriberBufferSize)

	b.mu.Lock()
	b.subscribers[subID] = ch
	b.mu.Unlock()

	b.logger.Debug("subscriber added", "sub_id", subID)

	go func() {
		<-ctx.Done()
		b.Unsubscribe(subID)
	}()

	return ch, subID
}

// Publish sends an event to all subscribers. Non-blocking: events are
// dropped for subscribers whose channels are full.
func (b *Broadcaster) Publish(event *Event) {
	b.mu.RLock()
	targets := make([]chan *Event, 0, len(b.subscribers))
	for _, ch := range b.subscribers {
		targets = append(targets, ch)
	}
	b.mu.RUnlock()

	for _, ch := range targets {
		select {
		case ch <- event:
		default:
			b.logger.Debug("dropped event for slow subscriber", "kind", event.Kind)
		}
	}
}

// Unsubscribe removes a subscription and closes its channel
func (b *Broadcaster) Unsubscribe(subID string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	ch, ok := b.subscribers[subID]
	if !ok {
		return
	}
	delete(b.subscribers, subID)
	close(ch)

	b.logger.Debug("subscriber removed", "sub_id", subID)
}

// Close shuts down the broadcaster and closes all subscriber channels
func (b *Broadcaster) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	for subID, ch := range b.subscribers {
		close(ch)
		delete(b.subscribers, subID)
	}
	b.logger.Debug("broadcaster closed")
}
