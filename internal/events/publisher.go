package events

import (
	"context"
	"sync"
)

// Publisher sends domain events to a downstream consumer.
type Publisher interface {
	Publish(ctx context.Context, evt Event) error
}

// NopPublisher drops every event. Used when no queue is configured.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, Event) error { return nil }

// RecordingPublisher keeps published events in memory for tests and local runs.
type RecordingPublisher struct {
	mu     sync.Mutex
	events []Event
	Err    error
}

func (r *RecordingPublisher) Publish(_ context.Context, evt Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	r.events = append(r.events, evt)
	return nil
}

// Events returns a copy of everything published so far.
func (r *RecordingPublisher) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Event, len(r.events))
	copy(out, r.events)
	return out
}

var (
	_ Publisher = NopPublisher{}
	_ Publisher = (*RecordingPublisher)(nil)
)
