package download

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/matzehuels/formio/pkg/cache"
	"github.com/matzehuels/formio/pkg/observability"
)

// DefaultTTL bounds how long a blob survives if its URL is never revoked,
// for example when the process dies between Put and Revoke.
const DefaultTTL = 5 * time.Minute

const keyType = "blob"

// CacheStore keeps blobs in a [cache.Cache], so a file or Redis cache can
// share download URLs between processes.
type CacheStore struct {
	cache cache.Cache
	ttl   time.Duration
}

// NewCacheStore wraps c. A zero ttl uses DefaultTTL.
func NewCacheStore(c cache.Cache, ttl time.Duration) *CacheStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &CacheStore{cache: c, ttl: ttl}
}

func (s *CacheStore) Put(ctx context.Context, blob Blob) (string, error) {
	url, err := newURL()
	if err != nil {
		return "", err
	}
	data, err := json.Marshal(blob)
	if err != nil {
		return "", fmt.Errorf("encode blob: %w", err)
	}
	if err := s.cache.Set(ctx, url, data, s.ttl); err != nil {
		return "", err
	}
	observability.Cache().OnCacheSet(ctx, keyType, len(data))
	return url, nil
}

func (s *CacheStore) Open(ctx context.Context, url string) (Blob, error) {
	data, ok, err := s.cache.Get(ctx, url)
	if err != nil {
		return Blob{}, err
	}
	if !ok {
		observability.Cache().OnCacheMiss(ctx, keyType)
		return Blob{}, fmt.Errorf("%w: %w", ErrRevoked, cache.ErrCacheMiss)
	}
	observability.Cache().OnCacheHit(ctx, keyType)
	var blob Blob
	if err := json.Unmarshal(data, &blob); err != nil {
		return Blob{}, fmt.Errorf("decode blob: %w", err)
	}
	return blob, nil
}

func (s *CacheStore) Revoke(ctx context.Context, url string) error {
	return s.cache.Delete(ctx, url)
}

var _ Store = (*CacheStore)(nil)
