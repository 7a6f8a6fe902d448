// Package pubsub fans values out to subscribers and feeds them into the
// bubbletea update loop.
package pubsub

import (
	"context"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

const defaultBufferSize = 64

// Event wraps a published value.
type Event[T any] struct {
	Payload T
	Time    time.Time
}

// Broker delivers published values to every live subscriber. A slow
// subscriber loses values rather than blocking the publisher.
type Broker[T any] struct {
	mu         sync.RWMutex
	subs       map[chan Event[T]]struct{}
	closed     bool
	bufferSize int
}

// NewBroker creates a broker whose subscriptions buffer size values.
// A size of zero uses 64.
func NewBroker[T any](size int) *Broker[T] {
	if size <= 0 {
		size = defaultBufferSize
	}
	return &Broker[T]{
		subs:       make(map[chan Event[T]]struct{}),
		bufferSize: size,
	}
}

// Subscribe returns a channel of events that closes when ctx ends or the
// broker closes.
func (b *Broker[T]) Subscribe(ctx context.Context) <-chan Event[T] {
	b.mu.Lock()
	defer b.mu.Unlock()

	sub := make(chan Event[T], b.bufferSize)
	if b.closed {
		close(sub)
		return sub
	}
	b.subs[sub] = struct{}{}

	go func() {
		<-ctx.Done()
		b.mu.Lock()
		defer b.mu.Unlock()
		if _, ok := b.subs[sub]; ok {
			delete(b.subs, sub)
			close(sub)
		}
	}()
	return sub
}

// Publish sends payload to every subscriber with room for it.
func (b *Broker[T]) Publish(payload T) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	ev := Event[T]{Payload: payload, Time: time.Now()}
	for sub := range b.subs {
		select {
		case sub <- ev:
		default:
		}
	}
}

// Close ends every subscription. Publishing afterwards is a no-op.
func (b *Broker[T]) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	b.closed = true
	for sub := range b.subs {
		close(sub)
	}
	clear(b.subs)
}

// Subscribers is the number of live subscriptions.
func (b *Broker[T]) Subscribers() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}

// Listen returns a command that waits for the next event on ch. It yields
// nil once ch is closed, which ends the listen loop.
func Listen[T any](ch <-chan Event[T]) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return nil
		}
		return ev
	}
}
