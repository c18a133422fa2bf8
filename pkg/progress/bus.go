package progress

import (
	"sync"
)

// Event is one pipeline state transition, as delivered to stream clients.
type Event struct {
	Status string `json:"status"`
}

// Publisher is the write side of the bus. The pipeline only needs this half;
// stream handlers hold the full *Bus.
type Publisher interface {
	Publish(key string, ev Event)
}

const subscriberBuffer = 64

// Bus fans out events to every live subscriber of a key. It is a live tap,
// not a log: events published while nobody is subscribed are dropped, and a
// subscriber that falls behind loses its oldest events rather than stalling
// the publisher.
type Bus struct {
	mu   sync.Mutex
	subs map[string][]chan Event
}

func NewBus() *Bus {
	return &Bus{subs: make(map[string][]chan Event)}
}

// Subscribe registers a new independent queue for key. Each concurrent
// subscriber receives every subsequent publish.
func (b *Bus) Subscribe(key string) <-chan Event {
	ch := make(chan Event, subscriberBuffer)
	b.mu.Lock()
	b.subs[key] = append(b.subs[key], ch)
	b.mu.Unlock()
	return ch
}

// Unsubscribe removes q from key's subscriber list. Calling it twice, or with
// a queue that was never registered, is a no-op. The key's slot is reclaimed
// once its last subscriber leaves.
func (b *Bus) Unsubscribe(key string, q <-chan Event) {
	b.mu.Lock()
	defer b.mu.Unlock()

	list := b.subs[key]
	for i, ch := range list {
		if ch == q {
			b.subs[key] = append(list[:i], list[i+1:]...)
			break
		}
	}
	if len(b.subs[key]) == 0 {
		delete(b.subs, key)
	}
}

// Publish delivers ev to every current subscriber of key. Publishing with no
// subscribers is a silent no-op. A full subscriber queue drops its oldest
// event so the publisher never blocks.
func (b *Bus) Publish(key string, ev Event) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, ch := range b.subs[key] {
		for {
			select {
			case ch <- ev:
			default:
				// Queue full: evict the oldest entry and retry.
				select {
				case <-ch:
				default:
				}
				continue
			}
			break
		}
	}
}
