// Package events carries notifications emitted after destructive
// operations so downstream consumers (cache purgers, search indexes)
// can react.
package events

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DeletedEvent records the removal of one addressable URL and every
// object that was destroyed under it.
type DeletedEvent struct {
	// ID uniquely identifies the event.
	ID uuid.UUID `json:"id"`

	// Backend names the store the deletion happened on.
	Backend string `json:"backend"`

	// URL is the virtual URL that was removed. For directories this is
	// the directory URL, not the individual objects beneath it.
	URL string `json:"url"`

	// At is the completion time of the deletion, UTC.
	At time.Time `json:"at"`
}

// NewDeletedEvent builds an event with a fresh ID and timestamp.
func NewDeletedEvent(backend, url string) DeletedEvent {
	return DeletedEvent{
		ID:      uuid.New(),
		Backend: backend,
		URL:     url,
		At:      time.Now().UTC(),
	}
}

// Publisher delivers events. Publishing failures must not fail the
// operation that produced the event; callers log and continue.
type Publisher interface {
	Publish(ctx context.Context, ev DeletedEvent) error
}

// Nop discards all events.
type Nop struct{}

// Publish does nothing.
func (Nop) Publish(context.Context, DeletedEvent) error { return nil }

// LogPublisher writes events to a structured log.
type LogPublisher struct {
	log *zap.Logger
}

// NewLogPublisher creates a publisher that logs each event.
func NewLogPublisher(log *zap.Logger) *LogPublisher {
	return &LogPublisher{log: log}
}

// Publish logs the event at info level.
func (p *LogPublisher) Publish(_ context.Context, ev DeletedEvent) error {
	p.log.Info("asset deleted",
		zap.String("event_id", ev.ID.String()),
		zap.String("backend", ev.Backend),
		zap.String("url", ev.URL),
		zap.Time("at", ev.At),
	)
	return nil
}

// Recorder captures published events for inspection in tests.
type Recorder struct {
	mu     sync.Mutex
	events []DeletedEvent
}

// Publish appends the event.
func (r *Recorder) Publish(_ context.Context, ev DeletedEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
	return nil
}

// Events returns a copy of everything published so far.
func (r *Recorder) Events() []DeletedEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]DeletedEvent(nil), r.events...)
}
