package repository

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/Domenick1991/tripflow/internal/domain"
	"github.com/stretchr/testify/assert"
)

func sampleRecords() []domain.BookingRecord {
	return []domain.BookingRecord{
		{
			ID:         "TF-PBAL-MCK3X9Z",
			OwnerEmail: "asha@example.com",
			OwnerName:  "Asha Rao",
			Status:     domain.BookingStatusConfirmed,
			TotalPaid:  1177.64,
			CreatedAt:  time.Date(2026, 8, 30, 11, 42, 0, 0, time.UTC),
			Snapshot: domain.OfferSnapshot{
				OfferID:  "bali-7d",
				Kind:     domain.OfferKindPackage,
				Quantity: 2,
				Included: []string{"Hotel", "Breakfast"},
			},
		},
	}
}

func TestMemoryLedgerStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryLedgerStore()

	loaded, err := store.Load(ctx)
	assert.NoError(t, err)
	assert.Nil(t, loaded)

	records := sampleRecords()
	assert.NoError(t, store.Save(ctx, records))

	loaded, err = store.Load(ctx)
	assert.NoError(t, err)
	assert.Equal(t, records, loaded)

	// Mutating the loaded slice must not leak into the store.
	loaded[0].OwnerName = "changed"
	again, err := store.Load(ctx)
	assert.NoError(t, err)
	assert.Equal(t, "Asha Rao", again[0].OwnerName)
}

func TestSQLiteLedgerStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "ledger.db")

	store, err := NewSQLiteLedgerStore(path)
	assert.NoError(t, err)
	defer store.Close()

	loaded, err := store.Load(ctx)
	assert.NoError(t, err)
	assert.Nil(t, loaded)

	records := sampleRecords()
	assert.NoError(t, store.Save(ctx, records))

	loaded, err = store.Load(ctx)
	assert.NoError(t, err)
	assert.Equal(t, records[0].ID, loaded[0].ID)
	assert.Equal(t, records[0].Snapshot.Included, loaded[0].Snapshot.Included)

	// Full rewrite on every save: a second save replaces, never appends.
	records[0].Status = domain.BookingStatusCancelled
	assert.NoError(t, store.Save(ctx, records))

	loaded, err = store.Load(ctx)
	assert.NoError(t, err)
	assert.Len(t, loaded, 1)
	assert.Equal(t, domain.BookingStatusCancelled, loaded[0].Status)
}

func TestSQLiteLedgerStore_Reopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "ledger.db")

	store, err := NewSQLiteLedgerStore(path)
	assert.NoError(t, err)
	assert.NoError(t, store.Save(ctx, sampleRecords()))
	assert.NoError(t, store.Close())

	reopened, err := NewSQLiteLedgerStore(path)
	assert.NoError(t, err)
	defer reopened.Close()

	loaded, err := reopened.Load(ctx)
	assert.NoError(t, err)
	assert.Len(t, loaded, 1)
	assert.Equal(t, "TF-PBAL-MCK3X9Z", loaded[0].ID)
}
