package upload

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	domain "github.com/BruksfildServices01/coach-platform/internal/domain/upload"
)

type memoryEntry struct {
	state  domain.State
	chunks map[int][]byte
}

// MemoryStore keeps uploads in process memory. Uploads do not survive a
// restart and are only visible to the instance that received them.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[uuid.UUID]*memoryEntry
}

var _ domain.Store = (*MemoryStore)(nil)

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: map[uuid.UUID]*memoryEntry{}}
}

func (m *MemoryStore) Create(_ context.Context, s *domain.State) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	st := *s
	st.Received = map[int]int{}
	m.entries[s.ID] = &memoryEntry{state: st, chunks: map[int][]byte{}}
	return nil
}

func (m *MemoryStore) Get(_ context.Context, id uuid.UUID) (*domain.State, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entries[id]
	if !ok {
		return nil, errNotFound()
	}
	return e.snapshot(), nil
}

func (m *MemoryStore) PutChunk(_ context.Context, id uuid.UUID, index int, data []byte, at time.Time) (*domain.State, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entries[id]
	if !ok {
		return nil, errNotFound()
	}

	e.chunks[index] = append([]byte(nil), data...)
	e.state.Received[index] = len(data)
	e.state.LastActivity = at
	return e.snapshot(), nil
}

func (m *MemoryStore) Chunks(_ context.Context, id uuid.UUID) (map[int][]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entries[id]
	if !ok {
		return nil, errNotFound()
	}

	out := make(map[int][]byte, len(e.chunks))
	for i, b := range e.chunks {
		out[i] = b
	}
	return out, nil
}

func (m *MemoryStore) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.entries, id)
	return nil
}

func (m *MemoryStore) Sweep(_ context.Context, cutoff time.Time) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	n := 0
	for id, e := range m.entries {
		if e.state.LastActivity.Before(cutoff) {
			delete(m.entries, id)
			n++
		}
	}
	return n, nil
}

func (e *memoryEntry) snapshot() *domain.State {
	st := e.state
	st.Received = make(map[int]int, len(e.state.Received))
	for i, n := range e.state.Received {
		st.Received[i] = n
	}
	return &st
}
