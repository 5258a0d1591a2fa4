// Package session holds authenticated-session state. Sessions are volatile
// by design: they live in a TTL'd store keyed by an opaque token and never
// outlive their TTL, while the ledger stays durable. The session is derived
// state only — the ledger remains authoritative.
package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Session is the proof of "knows this owner's credentials" for the current
// session. BookingID is set only when authentication happened via a
// booking reference + PIN.
type Session struct {
	Email     string `json:"email"`
	Name      string `json:"name"`
	BookingID string `json:"booking_id,omitempty"`
}

// NewToken mints an opaque session token.
func NewToken() string {
	return uuid.NewString()
}

type Store interface {
	// Put stores the session under token for the store's TTL.
	Put(ctx context.Context, token string, s Session) error
	// Get returns (nil, nil) for an absent or expired token.
	Get(ctx context.Context, token string) (*Session, error)
	Delete(ctx context.Context, token string) error
}

// MemoryStore is the single-process fallback when Redis is not configured.
type MemoryStore struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]memoryEntry
}

type memoryEntry struct {
	session   Session
	expiresAt time.Time
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{ttl: ttl, entries: make(map[string]memoryEntry)}
}

func (s *MemoryStore) Put(ctx context.Context, token string, sess Session) error {
	s.mu.Lock()
	s.entries[token] = memoryEntry{session: sess, expiresAt: time.Now().Add(s.ttl)}
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Get(ctx context.Context, token string) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.entries[token]
	if !ok {
		return nil, nil
	}
	if time.Now().After(entry.expiresAt) {
		delete(s.entries, token)
		return nil, nil
	}
	sess := entry.session
	return &sess, nil
}

func (s *MemoryStore) Delete(ctx context.Context, token string) error {
	s.mu.Lock()
	delete(s.entries, token)
	s.mu.Unlock()
	return nil
}

var _ Store = (*MemoryStore)(nil)
