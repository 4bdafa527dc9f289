package download

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/matzehuels/formio/pkg/cache"
)

func testBlob() Blob {
	return Blob{Name: "input.json", ContentType: "application/json", Data: []byte(`{}`)}
}

func TestOfferRevokesAfterDelivery(t *testing.T) {
	store := NewMemoryStore()
	var seen string

	err := Offer(context.Background(), store, testBlob(), func(ctx context.Context, url string) error {
		seen = url
		if store.Live() != 1 {
			t.Errorf("Live() during delivery = %d, want 1", store.Live())
		}
		blob, err := store.Open(ctx, url)
		if err != nil {
			t.Fatalf("Open during delivery: %v", err)
		}
		if string(blob.Data) != "{}" {
			t.Errorf("blob data = %q", blob.Data)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Offer: %v", err)
	}
	if !strings.HasPrefix(seen, URLScheme) {
		t.Errorf("url %q lacks scheme %q", seen, URLScheme)
	}
	if store.Live() != 0 {
		t.Errorf("Live() after Offer = %d, want 0", store.Live())
	}
	if _, err := store.Open(context.Background(), seen); !errors.Is(err, ErrRevoked) {
		t.Errorf("Open after Offer error = %v, want ErrRevoked", err)
	}
}

func TestOfferRevokesOnDeliveryFailure(t *testing.T) {
	store := NewMemoryStore()
	boom := errors.New("client went away")

	err := Offer(context.Background(), store, testBlob(), func(context.Context, string) error {
		return boom
	})
	if !errors.Is(err, boom) {
		t.Errorf("Offer error = %v, want %v", err, boom)
	}
	if store.Live() != 0 {
		t.Errorf("Live() after failed delivery = %d, want 0", store.Live())
	}
}

func TestOfferRevokesOnPanic(t *testing.T) {
	store := NewMemoryStore()
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic to propagate")
		}
		if store.Live() != 0 {
			t.Errorf("Live() after panic = %d, want 0", store.Live())
		}
	}()
	_ = Offer(context.Background(), store, testBlob(), func(context.Context, string) error {
		panic("deliver")
	})
}

func TestOfferRevokesOnCancelledContext(t *testing.T) {
	store := NewMemoryStore()
	ctx, cancel := context.WithCancel(context.Background())

	err := Offer(ctx, store, testBlob(), func(ctx context.Context, url string) error {
		cancel()
		return ctx.Err()
	})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Offer error = %v, want context.Canceled", err)
	}
	if store.Live() != 0 {
		t.Errorf("Live() = %d, want 0", store.Live())
	}
}

type failingStore struct {
	*MemoryStore
	putErr, revokeErr error
}

func (s *failingStore) Put(ctx context.Context, b Blob) (string, error) {
	if s.putErr != nil {
		return "", s.putErr
	}
	return s.MemoryStore.Put(ctx, b)
}

func (s *failingStore) Revoke(ctx context.Context, url string) error {
	_ = s.MemoryStore.Revoke(ctx, url)
	return s.revokeErr
}

func TestOfferStoreErrors(t *testing.T) {
	putErr := errors.New("disk full")
	s := &failingStore{MemoryStore: NewMemoryStore(), putErr: putErr}
	called := false
	err := Offer(context.Background(), s, testBlob(), func(context.Context, string) error {
		called = true
		return nil
	})
	if !errors.Is(err, putErr) || called {
		t.Errorf("put failure: err %v, delivered %v", err, called)
	}

	revokeErr := errors.New("redis down")
	s = &failingStore{MemoryStore: NewMemoryStore(), revokeErr: revokeErr}
	err = Offer(context.Background(), s, testBlob(), func(context.Context, string) error { return nil })
	if !errors.Is(err, revokeErr) {
		t.Errorf("revoke failure: err %v, want %v", err, revokeErr)
	}

	deliverErr := errors.New("write failed")
	s = &failingStore{MemoryStore: NewMemoryStore(), revokeErr: revokeErr}
	err = Offer(context.Background(), s, testBlob(), func(context.Context, string) error { return deliverErr })
	if !errors.Is(err, deliverErr) {
		t.Errorf("deliver error should win over revoke error, got %v", err)
	}
}

func TestCacheStore(t *testing.T) {
	ctx := context.Background()
	mem := cache.NewMemoryCache()
	store := NewCacheStore(mem, time.Minute)

	err := Offer(ctx, store, testBlob(), func(ctx context.Context, url string) error {
		blob, err := store.Open(ctx, url)
		if err != nil {
			return err
		}
		if blob.Name != "input.json" || blob.ContentType != "application/json" || string(blob.Data) != "{}" {
			t.Errorf("round-tripped blob = %+v", blob)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Offer: %v", err)
	}
	if mem.Len() != 0 {
		t.Errorf("cache holds %d entries after Offer, want 0", mem.Len())
	}
	if _, err := store.Open(ctx, "blob:unknown"); !errors.Is(err, ErrRevoked) || !errors.Is(err, cache.ErrCacheMiss) {
		t.Errorf("Open(unknown) = %v, want ErrRevoked and ErrCacheMiss", err)
	}
}

func TestCacheStoreFileBackend(t *testing.T) {
	ctx := context.Background()
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	store := NewCacheStore(fc, 0)

	url, err := store.Put(ctx, testBlob())
	if err != nil {
		t.Fatalf("Put: %v", err)
	}
	if _, err := store.Open(ctx, url); err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := store.Revoke(ctx, url); err != nil {
		t.Fatalf("Revoke: %v", err)
	}
	if _, err := store.Open(ctx, url); !errors.Is(err, ErrRevoked) {
		t.Errorf("Open after Revoke = %v, want ErrRevoked", err)
	}
}
