// Package pubsub publishes grade-completion notifications to downstream
// consumers (email digests, press-conference generation, UI refresh).
package pubsub

import (
	"context"
	"sync"
	"time"
)

// Completion event types.
const (
	TypeGradesCompleted = "grades.completed"
	TypeGradesCleared   = "grades.cleared"
)

// Event is a grade lifecycle notification.
type Event struct {
	Type     string    `json:"type"`
	LeagueID string    `json:"league_id"`
	Teams    int       `json:"teams,omitempty"`
	At       time.Time `json:"at"`
}

// Broker publishes events and hands out subscription channels.
type Broker interface {
	Publish(ctx context.Context, e Event) error
	Subscribe() <-chan Event
	Close() error
}

// subscriberBuffer bounds each subscription channel; slow subscribers drop
// events rather than block publishers.
const subscriberBuffer = 64

// InMemoryBroker implements Broker for single-process deployments and
// tests.
type InMemoryBroker struct {
	mu          sync.RWMutex
	subscribers []chan Event
	closed      bool
}

// NewInMemoryBroker creates an in-process broker.
func NewInMemoryBroker() *InMemoryBroker {
	return &InMemoryBroker{}
}

// Publish delivers e to every subscriber, skipping full channels.
func (b *InMemoryBroker) Publish(ctx context.Context, e Event) error {
	b.mu.RLock()
	subs := make([]chan Event, len(b.subscribers))
	copy(subs, b.subscribers)
	b.mu.RUnlock()

	for _, ch := range subs {
		select {
		case ch <- e:
		default:
		}
	}
	return nil
}

// Subscribe returns a channel receiving future events.
func (b *InMemoryBroker) Subscribe() <-chan Event {
	b.mu.Lock()
	defer b.mu.Unlock()

	ch := make(chan Event, subscriberBuffer)
	b.subscribers = append(b.subscribers, ch)
	return ch
}

// Close closes all subscription channels.
func (b *InMemoryBroker) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil
	}
	for _, ch := range b.subscribers {
		close(ch)
	}
	b.subscribers = nil
	b.closed = true
	return nil
}
