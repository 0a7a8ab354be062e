package storage

import "sync"

// MemoryBackend keeps the snapshot in memory. Used in tests and for
// throwaway sessions; nothing survives process exit.
type MemoryBackend struct {
	mu   sync.Mutex
	data []byte
}

// NewMemoryBackend creates an empty in-memory backend.
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{}
}

// Load returns the last saved snapshot, or (nil, nil) if none.
func (b *MemoryBackend) Load() ([]byte, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.data == nil {
		return nil, nil
	}
	cp := make([]byte, len(b.data))
	copy(cp, b.data)
	return cp, nil
}

// Save stores a copy of data.
func (b *MemoryBackend) Save(data []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.data = make([]byte, len(data))
	copy(b.data, data)
	return nil
}

// Close is a no-op for the memory backend.
func (b *MemoryBackend) Close() error { return nil }
