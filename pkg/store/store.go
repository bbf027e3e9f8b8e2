// Package store holds shared UI state as a flat key/value map with change
// notification.
//
// All callbacks run synchronously on the goroutine that caused the change,
// after the store lock has been released, so a callback may read or write the
// store again.
package store

import (
	"log/slog"
	"sort"
	"sync"
)

// Wildcard subscribes to changes of every key.
const Wildcard = "*"

type Unsubscriber func()

// Change is delivered to wildcard subscribers.
type Change struct {
	Key   string
	Value any
	Prev  any
}

// Entry is one key/value pair of a batch update.
type Entry struct {
	Key   string
	Value any
}

// Subscription identifies one registered callback.
type Subscription struct {
	key string
	id  uint64
}

func (s Subscription) Key() string {
	return s.key
}

type subscriber struct {
	id uint64
	fn func(Change)
}

type Store struct {
	initial  map[string]any
	state    map[string]any
	subs     map[string][]subscriber
	wildcard []subscriber
	nextID   uint64
	mu       sync.RWMutex

	logger     *slog.Logger
	isolate    bool
	persister  Persister
	persistKey string
}

type Option func(*Store)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithRecover isolates subscriber callbacks: a panicking callback is logged
// and the remaining callbacks still run. Without it a panic propagates out of
// Set and the rest of that call's notifications are skipped.
func WithRecover() Option {
	return func(s *Store) {
		s.isolate = true
	}
}

// WithPersistence loads a previously saved snapshot for key over the initial
// state and saves the state after every mutation.
func WithPersistence(p Persister, key string) Option {
	return func(s *Store) {
		s.persister = p
		s.persistKey = key
	}
}

// New creates a store seeded with a shallow copy of initial.
func New(initial map[string]any, opts ...Option) *Store {
	s := &Store{
		initial: copyMap(initial),
		subs:    make(map[string][]subscriber),
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.state = copyMap(s.initial)
	if s.persister != nil {
		if saved, ok := s.persister.Load(s.persistKey); ok {
			for k, v := range saved {
				s.state[k] = v
			}
		}
	}
	return s
}

// Get returns the current value of key, or nil when it was never set.
func (s *Store) Get(key string) any {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state[key]
}

func (s *Store) Lookup(key string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.state[key]
	return v, ok
}

// Snapshot returns a shallow copy of the whole state.
func (s *Store) Snapshot() map[string]any {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyMap(s.state)
}

func (s *Store) Set(key string, value any) {
	s.apply(key, value)
}

// SetMany applies entries in order. Each key is written and, if its value
// changed, notified before the next entry is written.
func (s *Store) SetMany(entries ...Entry) {
	for _, e := range entries {
		s.apply(e.Key, e.Value)
	}
}

func (s *Store) apply(key string, value any) {
	s.mu.Lock()
	prev := s.state[key]
	s.state[key] = value
	changed := !sameValue(prev, value)
	var keyed, wild []subscriber
	if changed {
		keyed = append(keyed, s.subs[key]...)
		wild = append(wild, s.wildcard...)
	}
	s.mu.Unlock()

	if !changed {
		return
	}
	s.save()
	s.notify(Change{Key: key, Value: value, Prev: prev}, keyed, wild)
}

func (s *Store) notify(c Change, keyed, wild []subscriber) {
	for _, sub := range keyed {
		s.invoke(sub, c)
	}
	for _, sub := range wild {
		s.invoke(sub, c)
	}
}

func (s *Store) invoke(sub subscriber, c Change) {
	if !s.isolate {
		sub.fn(c)
		return
	}
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("store subscriber panicked",
				"panic", r,
				"key", c.Key,
			)
		}
	}()
	sub.fn(c)
}

// Subscribe registers fn for changes of key. Subscribing to Wildcard fires
// for every key but does not say which one changed; use SubscribeAll when
// the key matters.
func (s *Store) Subscribe(key string, fn func(value, prev any)) Unsubscriber {
	sub := s.register(key, func(c Change) { fn(c.Value, c.Prev) })
	return func() { s.Unsubscribe(sub) }
}

// SubscribeAll registers fn for changes of every key.
func (s *Store) SubscribeAll(fn func(Change)) Unsubscriber {
	sub := s.register(Wildcard, fn)
	return func() { s.Unsubscribe(sub) }
}

// Watch is Subscribe returning the handle instead of a closure.
func (s *Store) Watch(key string, fn func(value, prev any)) Subscription {
	return s.register(key, func(c Change) { fn(c.Value, c.Prev) })
}

func (s *Store) register(key string, fn func(Change)) Subscription {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	sub := subscriber{id: s.nextID, fn: fn}
	if key == Wildcard {
		s.wildcard = append(s.wildcard, sub)
	} else {
		s.subs[key] = append(s.subs[key], sub)
	}
	return Subscription{key: key, id: sub.id}
}

// Unsubscribe removes one registration. Removing it again is a no-op.
func (s *Store) Unsubscribe(sub Subscription) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if sub.key == Wildcard {
		s.wildcard = without(s.wildcard, sub.id)
		return
	}
	subs := without(s.subs[sub.key], sub.id)
	if len(subs) == 0 {
		delete(s.subs, sub.key)
		return
	}
	s.subs[sub.key] = subs
}

func without(subs []subscriber, id uint64) []subscriber {
	for i, sub := range subs {
		if sub.id == id {
			out := make([]subscriber, 0, len(subs)-1)
			out = append(out, subs[:i]...)
			return append(out, subs[i+1:]...)
		}
	}
	return subs
}

// Reset restores a fresh copy of the initial state. Subscriptions are kept
// and no callback fires; readers relying on notifications must re-read.
func (s *Store) Reset() {
	s.mu.Lock()
	s.state = copyMap(s.initial)
	s.mu.Unlock()

	s.save()
}

// ResetAndNotify is Reset followed by one notification per key whose value
// differs from before the reset, in key order. Keys that only existed after
// creation are reported with a nil Value.
func (s *Store) ResetAndNotify() {
	s.mu.Lock()
	before := s.state
	s.state = copyMap(s.initial)

	keys := make([]string, 0, len(before)+len(s.state))
	for k := range before {
		keys = append(keys, k)
	}
	for k := range s.state {
		if _, ok := before[k]; !ok {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	type pending struct {
		change Change
		keyed  []subscriber
	}
	var changes []pending
	for _, k := range keys {
		prev, value := before[k], s.state[k]
		if sameValue(prev, value) {
			continue
		}
		changes = append(changes, pending{
			change: Change{Key: k, Value: value, Prev: prev},
			keyed:  append([]subscriber(nil), s.subs[k]...),
		})
	}
	wild := append([]subscriber(nil), s.wildcard...)
	s.mu.Unlock()

	s.save()
	for _, p := range changes {
		s.notify(p.change, p.keyed, wild)
	}
}

func (s *Store) save() {
	if s.persister == nil {
		return
	}
	if err := s.persister.Save(s.persistKey, s.Snapshot()); err != nil {
		s.logger.Warn("store state not saved", "key", s.persistKey, "error", err)
	}
}

func copyMap(src map[string]any) map[string]any {
	dst := make(map[string]any, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}
