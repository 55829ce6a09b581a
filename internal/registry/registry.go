// Package registry is the duplicate gate: a content hash of every parsed
// document is recorded so re-uploads are rejected before any extraction work.
package registry

import (
	"context"
	"strconv"
	"sync"
)

// Registry tracks content hashes of already-processed documents.
type Registry interface {
	// Seen reports whether the hash has been recorded.
	Seen(ctx context.Context, hash string) (bool, error)
	// Mark records the hash.
	Mark(ctx context.Context, hash string) error
}

// Hash computes the DJB2 hash over the document text's bytes, folded to
// unsigned and hex-encoded. Fast and non-cryptographic: collisions only cause
// a spurious duplicate rejection, never data corruption.
func Hash(text string) string {
	h := uint32(5381)
	for i := 0; i < len(text); i++ {
		h = h*33 + uint32(text[i])
	}
	return strconv.FormatUint(uint64(h), 16)
}

// Memory is a process-lifetime registry. It backs tests, the CLI, and the
// degraded mode when the persistent registry is unreachable.
type Memory struct {
	mu     sync.Mutex
	hashes map[string]struct{}
}

func NewMemory() *Memory {
	return &Memory{hashes: make(map[string]struct{})}
}

func (m *Memory) Seen(_ context.Context, hash string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.hashes[hash]
	return ok, nil
}

func (m *Memory) Mark(_ context.Context, hash string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.hashes[hash] = struct{}{}
	return nil
}
