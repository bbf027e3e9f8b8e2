package store

import (
	"sync"
)

// Computed is a value derived from a Store's state. It recomputes on every
// change of the source and notifies its own subscribers only when the derived
// value changes.
type Computed[T any] struct {
	value       T
	subscribers []subscriberOf[T]
	nextID      uint64
	mu          sync.RWMutex
	unsub       Unsubscriber
}

type subscriberOf[T any] struct {
	id uint64
	fn func(T)
}

type ReadableStore[T any] interface {
	Get() T
	Subscribe(callback func(T)) Unsubscriber
}

func NewComputed[T any](source *Store, transform func(state map[string]any) T) *Computed[T] {
	c := &Computed[T]{
		value: transform(source.Snapshot()),
	}

	c.unsub = source.SubscribeAll(func(Change) {
		next := transform(source.Snapshot())

		c.mu.Lock()
		if sameValue(any(c.value), any(next)) {
			c.mu.Unlock()
			return
		}
		c.value = next
		subs := make([]subscriberOf[T], len(c.subscribers))
		copy(subs, c.subscribers)
		c.mu.Unlock()

		for _, sub := range subs {
			sub.fn(next)
		}
	})

	return c
}

func (c *Computed[T]) Get() T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.value
}

func (c *Computed[T]) Subscribe(callback func(T)) Unsubscriber {
	c.mu.Lock()
	c.nextID++
	id := c.nextID
	c.subscribers = append(c.subscribers, subscriberOf[T]{id: id, fn: callback})
	c.mu.Unlock()

	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		for i, sub := range c.subscribers {
			if sub.id == id {
				c.subscribers = append(c.subscribers[:i:i], c.subscribers[i+1:]...)
				return
			}
		}
	}
}

// Destroy detaches c from its source.
func (c *Computed[T]) Destroy() {
	if c.unsub != nil {
		c.unsub()
	}
}
