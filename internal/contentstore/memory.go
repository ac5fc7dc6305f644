package contentstore

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
)

// Memory is an in-process Store computing real content identifiers. It backs
// the "memory" backend for offline use and gives tests a Store with the same
// CID contract as the gateway.
type Memory struct {
	mu      sync.RWMutex
	objects map[string][]byte
}

// NewMemory constructs an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{objects: make(map[string][]byte)}
}

// Upload stores the bytes under their computed CID. Progress is reported as a
// single completion event when a callback is provided.
func (m *Memory) Upload(ctx context.Context, data []byte, onProgress ProgressFunc) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	id, err := ComputeCID(data)
	if err != nil {
		return "", fmt.Errorf("compute cid: %w", err)
	}

	m.mu.Lock()
	if _, exists := m.objects[id]; !exists {
		stored := make([]byte, len(data))
		copy(stored, data)
		m.objects[id] = stored
	}
	m.mu.Unlock()

	if onProgress != nil {
		onProgress(100)
	}
	return id, nil
}

// UploadJSON marshals doc and stores the resulting document. The filename is
// accepted for interface parity; content addressing makes it advisory.
func (m *Memory) UploadJSON(ctx context.Context, doc any, filename string) (string, error) {
	data, err := json.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("marshal %s: %w", filename, err)
	}
	return m.Upload(ctx, data, nil)
}

// Get returns the stored bytes for a CID, if present.
func (m *Memory) Get(id string) ([]byte, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	data, ok := m.objects[id]
	if !ok {
		return nil, false
	}
	out := make([]byte, len(data))
	copy(out, data)
	return out, true
}

// Len reports the number of distinct objects stored.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.objects)
}
