package pubsub

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/nats-io/nats.go"
)

// DefaultSubject is the NATS subject grade notifications are published on.
const DefaultSubject = "draftgrade.grades"

// NATSBroker implements Broker over a NATS connection so every service
// instance sees completion events.
type NATSBroker struct {
	nc      *nats.Conn
	subject string

	mu          sync.Mutex
	subs        []*nats.Subscription
	subscribers []chan Event
}

// NewNATSBroker connects to natsURL and publishes on subject. An empty
// subject falls back to DefaultSubject.
func NewNATSBroker(natsURL, subject string) (*NATSBroker, error) {
	nc, err := nats.Connect(natsURL)
	if err != nil {
		return nil, fmt.Errorf("connect to NATS: %w", err)
	}
	if subject == "" {
		subject = DefaultSubject
	}
	return &NATSBroker{nc: nc, subject: subject}, nil
}

// Publish marshals e and publishes it on the broker subject.
func (b *NATSBroker) Publish(ctx context.Context, e Event) error {
	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	if err := b.nc.Publish(b.subject, data); err != nil {
		return fmt.Errorf("publish to NATS: %w", err)
	}
	return nil
}

// Subscribe returns a channel fed by a NATS subscription on the broker
// subject.
func (b *NATSBroker) Subscribe() <-chan Event {
	ch := make(chan Event, subscriberBuffer)

	sub, err := b.nc.Subscribe(b.subject, func(msg *nats.Msg) {
		var e Event
		if err := json.Unmarshal(msg.Data, &e); err != nil {
			return
		}
		select {
		case ch <- e:
		default:
		}
	})
	if err != nil {
		close(ch)
		return ch
	}

	b.mu.Lock()
	b.subs = append(b.subs, sub)
	b.subscribers = append(b.subscribers, ch)
	b.mu.Unlock()
	return ch
}

// Close drains subscriptions and closes the connection.
func (b *NATSBroker) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, sub := range b.subs {
		_ = sub.Unsubscribe()
	}
	for _, ch := range b.subscribers {
		close(ch)
	}
	b.subs = nil
	b.subscribers = nil

	if b.nc != nil {
		b.nc.Close()
	}
	return nil
}
