// Package download manages short-lived download handles for in-memory blobs.
//
// A browser exposes a blob to the user through an object URL that must be
// released once the download has started. [Store] models that handle: [Store.Put]
// acquires a URL for a blob, [Store.Open] resolves it while it is live, and
// [Store.Revoke] releases it. [Offer] ties the three together so every handle
// is released exactly once whatever the delivery does.
package download

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// ErrRevoked is returned when a URL is unknown or has been released.
var ErrRevoked = errors.New("download url revoked")

// URLScheme prefixes every URL handed out by the stores in this package.
const URLScheme = "blob:"

// Blob is a named in-memory file offered for download.
type Blob struct {
	Name        string `json:"name"`
	ContentType string `json:"content_type"`
	Data        []byte `json:"data"`
}

// Store hands out and resolves download URLs.
type Store interface {
	// Put stores blob and returns a URL that resolves to it.
	Put(ctx context.Context, blob Blob) (string, error)

	// Open returns the blob behind url, or an error wrapping ErrRevoked.
	Open(ctx context.Context, url string) (Blob, error)

	// Revoke releases url. Revoking an unknown url is not an error.
	Revoke(ctx context.Context, url string) error
}

// Deliver hands a live URL to whatever starts the download.
type Deliver func(ctx context.Context, url string) error

// Offer acquires a URL for blob, passes it to deliver once, and revokes it
// before returning regardless of the delivery result. The revocation runs
// on a context detached from cancellation so a cancelled request still
// releases its handle.
func Offer(ctx context.Context, store Store, blob Blob, deliver Deliver) (err error) {
	url, err := store.Put(ctx, blob)
	if err != nil {
		return fmt.Errorf("create url: %w", err)
	}
	defer func() {
		if rerr := store.Revoke(context.WithoutCancel(ctx), url); rerr != nil && err == nil {
			err = fmt.Errorf("revoke url: %w", rerr)
		}
	}()
	return deliver(ctx, url)
}

func newURL() (string, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return "", err
	}
	return URLScheme + id.String(), nil
}
