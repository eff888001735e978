package storage

import (
	"context"
	"net/url"
	"sync"
	"time"
)

// Memory keeps objects in process. It backs local development when no
// bucket is configured, and tests.
type Memory struct {
	mu      sync.RWMutex
	objects map[string]Object
	baseURL string
}

type Object struct {
	ContentType string
	Body        []byte
}

var _ Backend = (*Memory)(nil)

func NewMemory(baseURL string) *Memory {
	return &Memory{
		objects: map[string]Object{},
		baseURL: baseURL,
	}
}

func (m *Memory) Put(_ context.Context, key, contentType string, body []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.objects[key] = Object{ContentType: contentType, Body: append([]byte(nil), body...)}
	return nil
}

func (m *Memory) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.objects, key)
	return nil
}

func (m *Memory) PresignGet(_ context.Context, key, _ string, ttl time.Duration) (string, error) {
	q := url.Values{}
	q.Set("expires", time.Now().Add(ttl).UTC().Format(time.RFC3339))
	return m.baseURL + "/objects/" + url.PathEscape(key) + "?" + q.Encode(), nil
}

// Object returns a stored object.
func (m *Memory) Object(key string) (Object, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	o, ok := m.objects[key]
	return o, ok
}

func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.objects)
}
