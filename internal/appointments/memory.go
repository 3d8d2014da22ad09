package appointments

import (
	"context"
	"sync"
)

// MemoryStore keeps appointments in process memory. Appends are guarded by a
// mutex so the store is safe under the server's goroutine-per-request model;
// contents do not survive a restart.
type MemoryStore struct {
	mu    sync.Mutex
	items []Appointment
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Add appends an appointment.
func (s *MemoryStore) Add(ctx context.Context, appt Appointment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = append(s.items, appt)
	return nil
}

// List returns a copy of every stored appointment in insertion order.
func (s *MemoryStore) List(ctx context.Context) ([]Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Appointment, len(s.items))
	copy(out, s.items)
	return out, nil
}

var _ Store = (*MemoryStore)(nil)
