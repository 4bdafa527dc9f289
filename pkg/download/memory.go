package download

import (
	"context"
	"sync"
)

// MemoryStore keeps blobs in process memory.
type MemoryStore struct {
	mu    sync.Mutex
	blobs map[string]Blob
}

// NewMemoryStore creates an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{blobs: make(map[string]Blob)}
}

func (s *MemoryStore) Put(ctx context.Context, blob Blob) (string, error) {
	url, err := newURL()
	if err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.blobs[url] = blob
	return url, nil
}

func (s *MemoryStore) Open(ctx context.Context, url string) (Blob, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	blob, ok := s.blobs[url]
	if !ok {
		return Blob{}, ErrRevoked
	}
	return blob, nil
}

func (s *MemoryStore) Revoke(ctx context.Context, url string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.blobs, url)
	return nil
}

// Live returns the number of URLs not yet revoked.
func (s *MemoryStore) Live() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.blobs)
}

var _ Store = (*MemoryStore)(nil)
