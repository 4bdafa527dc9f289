// Package session keeps per-browser form state between requests.
//
// A [Session] holds the values currently shown in a visitor's form together
// with the alerts waiting to be displayed on the next page render. Stores
// are provided for several backends:
//   - memory: in-process storage for development and tests
//   - file: JSON files on disk for a single instance
//   - redis: shared storage with native expiry for multi-instance deployments
//   - mongo: a document collection with a TTL index
//
// # Usage
//
//	store := session.NewMemoryStore()
//
//	sess, err := session.New(schema.Defaults(), session.DefaultTTL)
//	if err != nil {
//	    return err
//	}
//	store.Set(ctx, sess)
//
//	sess, err = store.Get(ctx, id)
//	if err != nil {
//	    return err
//	}
//	if sess == nil {
//	    // unknown or expired
//	}
package session

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/formio/pkg/io"
)

// DefaultTTL is the default session lifetime.
const DefaultTTL = 24 * time.Hour

// Session stores one visitor's form values and pending alerts.
type Session struct {
	ID        string     `json:"id"`
	Values    *io.Record `json:"values"`
	Flash     []string   `json:"flash,omitempty"`
	ExpiresAt time.Time  `json:"expires_at"`
	CreatedAt time.Time  `json:"created_at"`
}

// IsExpired returns true if the session has expired.
func (s *Session) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}

// AddFlash queues an alert for the next render.
func (s *Session) AddFlash(msg string) {
	s.Flash = append(s.Flash, msg)
}

// TakeFlash returns and clears the queued alerts.
func (s *Session) TakeFlash() []string {
	out := s.Flash
	s.Flash = nil
	return out
}

// Touch extends the expiry to ttl from now.
func (s *Session) Touch(ttl time.Duration) {
	s.ExpiresAt = time.Now().Add(ttl)
}

// New creates a session holding a copy of values.
func New(values *io.Record, ttl time.Duration) (*Session, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return nil, err
	}
	now := time.Now()
	return &Session{
		ID:        id.String(),
		Values:    values.Clone(),
		ExpiresAt: now.Add(ttl),
		CreatedAt: now,
	}, nil
}

// ValidID reports whether id has the shape of an ID produced by [New].
func ValidID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil && len(id) == 36
}

// Store is the interface for session storage backends.
type Store interface {
	// Get retrieves a session by ID.
	// Returns nil, nil if the session doesn't exist or has expired.
	Get(ctx context.Context, id string) (*Session, error)

	// Set stores a session until its ExpiresAt.
	Set(ctx context.Context, sess *Session) error

	// Delete removes a session.
	Delete(ctx context.Context, id string) error

	// Cleanup removes expired sessions (may be a no-op for backends with
	// native expiry).
	Cleanup(ctx context.Context) error

	// Close releases backend resources.
	Close() error
}
