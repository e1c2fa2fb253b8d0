package cache

import (
	"context"
	"sync"
	"time"
)

// MemoryCache is an in-process TopicCache used when no Redis URL is
// configured. Entries survive only for the lifetime of the process.
type MemoryCache struct {
	mu   sync.Mutex
	data map[string]time.Time
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{data: make(map[string]time.Time)}
}

func (m *MemoryCache) Close() error { return nil }

func (m *MemoryCache) Seen(ctx context.Context, hash string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	expiry, ok := m.data[hash]
	if !ok {
		return false, nil
	}
	if !expiry.IsZero() && time.Now().After(expiry) {
		delete(m.data, hash)
		return false, nil
	}
	return true, nil
}

func (m *MemoryCache) Mark(ctx context.Context, hash string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	var expiry time.Time
	if ttl > 0 {
		expiry = time.Now().Add(ttl)
	}
	m.data[hash] = expiry
	return nil
}

func (m *MemoryCache) Clear(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = make(map[string]time.Time)
	return nil
}
