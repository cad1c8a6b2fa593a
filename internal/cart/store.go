package cart

import (
	"sync"

	"storefront/internal/models"
)

type EventKind string

const (
	EventLoaded          EventKind = "loaded"
	EventItemAdded       EventKind = "item-added"
	EventQuantityChanged EventKind = "quantity-changed"
	EventItemRemoved     EventKind = "item-removed"
	EventCleared         EventKind = "cleared"
	EventReset           EventKind = "reset"
)

// Event is published once per successful cart change.
type Event struct {
	Kind     EventKind           `json:"kind"`
	Snapshot models.CartSnapshot `json:"cart"`
	Count    int                 `json:"count"`
	Seq      uint64              `json:"seq"`
}

// Store is the local mirror of the remote cart. Writes go through Service;
// everything else reads snapshots or subscribes to events.
type Store struct {
	mu          sync.RWMutex
	snapshot    models.CartSnapshot
	issued      uint64
	applied     uint64
	subscribers map[int]chan Event
	nextID      int
}

func NewStore() *Store {
	return &Store{subscribers: map[int]chan Event{}}
}

func (s *Store) Snapshot() models.CartSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot.Clone()
}

func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot.Count()
}

// Subscribe returns a channel of cart events and a func that closes it.
// A slow subscriber loses older events, never the newest one.
func (s *Store) Subscribe(buffer int) (<-chan Event, func()) {
	if buffer < 1 {
		buffer = 1
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextID
	s.nextID++
	ch := make(chan Event, buffer)
	s.subscribers[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			delete(s.subscribers, id)
			close(ch)
		})
	}
}

// begin issues the sequence number for a new load.
func (s *Store) begin() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.issued++
	return s.issued
}

// apply installs snapshot unless a newer load has been issued since seq.
func (s *Store) apply(seq uint64, snapshot models.CartSnapshot) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if seq < s.issued || seq <= s.applied {
		return false
	}
	s.applied = seq
	s.snapshot = snapshot.Clone()
	return true
}

// replace installs snapshot and invalidates loads still in flight.
func (s *Store) replace(snapshot models.CartSnapshot) {
	s.apply(s.begin(), snapshot)
}

// Reset empties the mirror, for sign-out and expired sessions.
func (s *Store) Reset() {
	s.replace(models.CartSnapshot{Items: []models.CartItem{}})
	s.publish(EventReset)
}

func (s *Store) publish(kind EventKind) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	event := Event{
		Kind:     kind,
		Snapshot: s.snapshot.Clone(),
		Count:    s.snapshot.Count(),
		Seq:      s.applied,
	}
	for _, ch := range s.subscribers {
		select {
		case ch <- event:
			continue
		default:
		}
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- event:
		default:
		}
	}
}
