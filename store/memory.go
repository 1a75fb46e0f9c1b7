package store

import (
	"encoding/json"
	"sync"
)

// MemoryStore keeps everything in memory. Data is lost on restart.
// Safe for concurrent use.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]any
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]any)}
}

// deepCopy returns a deep copy of a value by round-tripping through JSON,
// so callers cannot mutate stored state through shared references.
func deepCopy(src any) any {
	if src == nil {
		return nil
	}
	b, _ := json.Marshal(src)
	var dst any
	_ = json.Unmarshal(b, &dst)
	return dst
}

func (m *MemoryStore) Get(key string) (any, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.entries[key]
	if !ok {
		return nil, nil
	}
	return deepCopy(v), nil
}

func (m *MemoryStore) Put(key string, value any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = deepCopy(value)
	return nil
}

func (m *MemoryStore) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, key)
	return nil
}

func (m *MemoryStore) Health() error {
	return nil
}
