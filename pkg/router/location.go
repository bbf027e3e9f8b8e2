package router

import (
	"context"
	"sync"
)

// Location is the addressable fragment a Router reads and writes.
//
// SetHash must report the change through the OnChange listeners
// asynchronously, never from inside SetHash itself. ReplaceHash must not
// report a change at all. Hashes are passed with their leading "#".
type Location interface {
	Hash() string
	SetHash(hash string)
	ReplaceHash(hash string)
	OnChange(fn func()) (remove func())
}

// MemoryLocation is a Location backed by an in-process history stack. Change
// events are queued and delivered by Flush or Run, standing in for the
// browser's event loop.
type MemoryLocation struct {
	mu        sync.Mutex
	history   []string
	pending   int
	listeners map[int]func()
	order     []int
	nextID    int
	wake      chan struct{}
}

func NewMemoryLocation(initial string) *MemoryLocation {
	return &MemoryLocation{
		history:   []string{initial},
		listeners: make(map[int]func()),
		wake:      make(chan struct{}, 1),
	}
}

func (m *MemoryLocation) Hash() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.history[len(m.history)-1]
}

// SetHash pushes a history entry and queues a change event. Setting the
// current hash again is ignored, as in browsers.
func (m *MemoryLocation) SetHash(hash string) {
	m.mu.Lock()
	if m.history[len(m.history)-1] == hash {
		m.mu.Unlock()
		return
	}
	m.history = append(m.history, hash)
	m.pending++
	m.mu.Unlock()

	m.signal()
}

func (m *MemoryLocation) ReplaceHash(hash string) {
	m.mu.Lock()
	m.history[len(m.history)-1] = hash
	m.mu.Unlock()
}

// Back pops one history entry and queues a change event. It reports false
// when there is nothing to go back to.
func (m *MemoryLocation) Back() bool {
	m.mu.Lock()
	if len(m.history) < 2 {
		m.mu.Unlock()
		return false
	}
	m.history = m.history[:len(m.history)-1]
	m.pending++
	m.mu.Unlock()

	m.signal()
	return true
}

func (m *MemoryLocation) OnChange(fn func()) func() {
	m.mu.Lock()
	id := m.nextID
	m.nextID++
	m.listeners[id] = fn
	m.order = append(m.order, id)
	m.mu.Unlock()

	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		delete(m.listeners, id)
	}
}

// Len returns the number of history entries.
func (m *MemoryLocation) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.history)
}

// Pending returns the number of queued, undelivered change events.
func (m *MemoryLocation) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.pending
}

// Flush delivers every queued change event on the calling goroutine and
// returns how many were delivered. Events queued by listeners during the
// flush are delivered too.
func (m *MemoryLocation) Flush() int {
	delivered := 0
	for {
		m.mu.Lock()
		if m.pending == 0 {
			m.mu.Unlock()
			return delivered
		}
		m.pending--
		listeners := make([]func(), 0, len(m.order))
		live := m.order[:0]
		for _, id := range m.order {
			if fn, ok := m.listeners[id]; ok {
				listeners = append(listeners, fn)
				live = append(live, id)
			}
		}
		m.order = live
		m.mu.Unlock()

		for _, fn := range listeners {
			fn()
		}
		delivered++
	}
}

// Run delivers change events as they are queued until ctx is done.
func (m *MemoryLocation) Run(ctx context.Context) error {
	for {
		m.Flush()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-m.wake:
		}
	}
}

func (m *MemoryLocation) signal() {
	select {
	case m.wake <- struct{}{}:
	default:
	}
}
