package store

import (
	"encoding/json"
	"fmt"
	"sync"
)

// Persister keeps store snapshots across module reloads.
type Persister interface {
	Load(key string) (map[string]any, bool)
	Save(key string, state map[string]any) error
}

// MemoryPersister keeps JSON-encoded snapshots in process memory, so what it
// returns has the same shape a browser-side persister would produce.
type MemoryPersister struct {
	mu    sync.Mutex
	saved map[string][]byte
}

func NewMemoryPersister() *MemoryPersister {
	return &MemoryPersister{saved: make(map[string][]byte)}
}

func (p *MemoryPersister) Load(key string) (map[string]any, bool) {
	p.mu.Lock()
	data, ok := p.saved[key]
	p.mu.Unlock()
	if !ok {
		return nil, false
	}

	var state map[string]any
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, false
	}
	return state, true
}

func (p *MemoryPersister) Save(key string, state map[string]any) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("encode state %s: %w", key, err)
	}

	p.mu.Lock()
	p.saved[key] = data
	p.mu.Unlock()
	return nil
}
