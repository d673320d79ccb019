package store

import "sync"

// Memory is an in-memory KV. It does not survive restarts and is meant for
// tests and throwaway runs.
type Memory struct {
	values sync.Map
}

// NewMemory returns an empty Memory.
func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) Get(key string) ([]byte, bool, error) {
	v, ok := m.values.Load(key)
	if !ok {
		return nil, false, nil
	}
	return v.([]byte), true, nil
}

func (m *Memory) Set(key string, data []byte) error {
	cp := make([]byte, len(data))
	copy(cp, data)
	m.values.Store(key, cp)
	return nil
}

func (m *Memory) Delete(key string) error {
	m.values.Delete(key)
	return nil
}
