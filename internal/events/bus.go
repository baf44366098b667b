package events

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"
)

// Event is an in-process domain event. Nothing here is persisted; the bus
// fans events out to subscribers within the same process.
type Event struct {
	Topic      string
	OccurredAt time.Time
	Payload    map[string]any
}

// Notifier reacts to emitted events (notifications, metrics, etc.).
type Notifier interface {
	Notify(ctx context.Context, event Event) error
}

// Bus records domain events and fans them out to downstream handlers.
type Bus struct {
	Notifiers []Notifier
	Now       func() time.Time

	mu  sync.Mutex
	log []Event
}

// Emit dispatches the event to all configured notifiers. Notifier failures
// are joined and returned but do not stop the fan-out.
func (b *Bus) Emit(ctx context.Context, topic string, payload map[string]any) (Event, error) {
	if b == nil {
		return Event{}, errors.New("events: bus not configured")
	}
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return Event{}, errors.New("events: topic is required")
	}
	now := time.Now()
	if b.Now != nil {
		now = b.Now()
	}
	if payload == nil {
		payload = map[string]any{}
	}
	ev := Event{Topic: topic, OccurredAt: now, Payload: payload}

	b.mu.Lock()
	b.log = append(b.log, ev)
	b.mu.Unlock()

	var joined error
	for _, notifier := range b.Notifiers {
		if notifier == nil {
			continue
		}
		if err := notifier.Notify(ctx, ev); err != nil {
			joined = errors.Join(joined, fmt.Errorf("events: notifier: %w", err))
		}
	}
	return ev, joined
}

// Log returns a copy of all events emitted so far.
func (b *Bus) Log() []Event {
	if b == nil {
		return nil
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]Event(nil), b.log...)
}
