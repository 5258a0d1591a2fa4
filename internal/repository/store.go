// Package repository implements the ledger storage boundary: the entire
// booking collection is one serialized JSON array kept under a fixed key and
// rewritten in full on every mutation. The store is the single source of
// truth; the ledger service re-reads it before every operation instead of
// caching records in memory.
package repository

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/Domenick1991/tripflow/internal/domain"
)

// LedgerKey is the fixed key the booking array lives under.
const LedgerKey = "tripflow:bookings"

type LedgerStore interface {
	Load(ctx context.Context) ([]domain.BookingRecord, error)
	Save(ctx context.Context, records []domain.BookingRecord) error
}

// MemoryLedgerStore keeps the serialized ledger in process memory. Used in
// tests and as the fallback when no storage is configured.
type MemoryLedgerStore struct {
	mu   sync.Mutex
	data []byte
}

func NewMemoryLedgerStore() *MemoryLedgerStore {
	return &MemoryLedgerStore{}
}

func (s *MemoryLedgerStore) Load(ctx context.Context) ([]domain.BookingRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.data) == 0 {
		return nil, nil
	}
	var records []domain.BookingRecord
	if err := json.Unmarshal(s.data, &records); err != nil {
		return nil, err
	}
	return records, nil
}

func (s *MemoryLedgerStore) Save(ctx context.Context, records []domain.BookingRecord) error {
	data, err := json.Marshal(records)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.data = data
	s.mu.Unlock()
	return nil
}

var _ LedgerStore = (*MemoryLedgerStore)(nil)
