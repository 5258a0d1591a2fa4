package ledger

import (
	"context"
	"testing"
	"time"

	"github.com/Domenick1991/tripflow/internal/domain"
	"github.com/Domenick1991/tripflow/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockProducer struct {
	mock.Mock
}

func (m *MockProducer) Publish(ctx context.Context, topic, key string, value interface{}) error {
	args := m.Called(ctx, topic, key, value)
	return args.Error(0)
}

func newTestService(opts ...ServiceOption) *Service {
	return NewService(repository.NewMemoryLedgerStore(), opts...)
}

func createInput() CreateInput {
	return CreateInput{
		OwnerEmail: "asha@example.com",
		OwnerName:  "Asha Rao",
		OwnerPhone: "+91 98100 00000",
		TravelDate: time.Date(2026, 10, 12, 0, 0, 0, 0, time.UTC),
		TotalPaid:  1177.64,
		Snapshot: domain.OfferSnapshot{
			OfferID:      "bali-7d",
			Kind:         domain.OfferKindPackage,
			Title:        "Bali Escape",
			Quantity:     2,
			UnitPriceUSD: 499,
			Subtotal:     998,
			Tax:          179.64,
			Total:        1177.64,
		},
	}
}

func TestCreate_Success(t *testing.T) {
	service := newTestService()
	ctx := context.Background()

	record, err := service.Create(ctx, createInput())

	assert.NoError(t, err)
	assert.NotNil(t, record)
	assert.Equal(t, domain.BookingStatusConfirmed, record.Status)
	assert.Regexp(t, `^TF-PBAL-[0-9A-Z]+$`, record.ID)
	assert.Len(t, record.PIN, 6)
	assert.False(t, record.CreatedAt.IsZero())
	assert.Nil(t, record.ModifiedAt)
	assert.Nil(t, record.CancelledAt)
}

func TestCreate_ValidationErrors(t *testing.T) {
	service := newTestService()
	ctx := context.Background()

	testCases := []struct {
		name   string
		mutate func(*CreateInput)
	}{
		{"empty email", func(in *CreateInput) { in.OwnerEmail = "" }},
		{"blank email", func(in *CreateInput) { in.OwnerEmail = "   " }},
		{"empty name", func(in *CreateInput) { in.OwnerName = "" }},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			input := createInput()
			tc.mutate(&input)

			record, err := service.Create(ctx, input)
			assert.Nil(t, record)
			assert.ErrorIs(t, err, domain.ErrValidation)
		})
	}
}

func TestCreate_PublishesEvent(t *testing.T) {
	producer := &MockProducer{}
	service := newTestService(
		WithProducer(producer, "booking_events"),
		WithNotificationsTopic("notifications"),
	)
	ctx := context.Background()

	producer.On("Publish", ctx, "booking_events", mock.Anything, mock.Anything).Return(nil).Once()
	producer.On("Publish", ctx, "notifications", mock.Anything, mock.Anything).Return(nil).Once()

	_, err := service.Create(ctx, createInput())

	assert.NoError(t, err)
	producer.AssertExpectations(t)
}

func TestCreate_DuplicateIDRetries(t *testing.T) {
	ids := []string{"TF-PBAL-SAME", "TF-PBAL-SAME", "TF-PBAL-FRESH"}
	calls := 0
	service := newTestService(WithIDGenerator(func(kind domain.OfferKind, offerID string) string {
		id := ids[calls%len(ids)]
		calls++
		return id
	}))
	ctx := context.Background()

	first, err := service.Create(ctx, createInput())
	assert.NoError(t, err)
	assert.Equal(t, "TF-PBAL-SAME", first.ID)

	// Generator repeats the taken id twice before producing a fresh one.
	calls = 0
	second, err := service.Create(ctx, createInput())
	assert.NoError(t, err)
	assert.Equal(t, "TF-PBAL-FRESH", second.ID)
}

func TestCreate_DuplicateIDExhausted(t *testing.T) {
	service := newTestService(WithIDGenerator(func(kind domain.OfferKind, offerID string) string {
		return "TF-PBAL-STUCK"
	}))
	ctx := context.Background()

	_, err := service.Create(ctx, createInput())
	assert.NoError(t, err)

	record, err := service.Create(ctx, createInput())
	assert.Nil(t, record)
	assert.ErrorIs(t, err, domain.ErrDuplicateID)
}

func TestListByOwner(t *testing.T) {
	service := newTestService()
	ctx := context.Background()

	first, err := service.Create(ctx, createInput())
	assert.NoError(t, err)
	second, err := service.Create(ctx, createInput())
	assert.NoError(t, err)

	other := createInput()
	other.OwnerEmail = "someone@else.com"
	_, err = service.Create(ctx, other)
	assert.NoError(t, err)

	// Case-insensitive match, insertion order newest-first.
	list, err := service.ListByOwner(ctx, "ASHA@EXAMPLE.COM")
	assert.NoError(t, err)
	assert.Len(t, list, 2)
	assert.Equal(t, second.ID, list[0].ID)
	assert.Equal(t, first.ID, list[1].ID)
}

func TestListByOwner_NoBookings(t *testing.T) {
	service := newTestService()

	list, err := service.ListByOwner(context.Background(), "nobody@example.com")
	assert.NoError(t, err)
	assert.Empty(t, list)
}

func TestFindByOwnerAndID(t *testing.T) {
	service := newTestService()
	ctx := context.Background()

	created, err := service.Create(ctx, createInput())
	assert.NoError(t, err)

	found, err := service.FindByOwnerAndID(ctx, "Asha@Example.com", created.ID)
	assert.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)

	_, err = service.FindByOwnerAndID(ctx, "asha@example.com", "TF-BAD-ID")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = service.FindByOwnerAndID(ctx, "stranger@example.com", created.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestModify_UpdatesLogisticsOnly(t *testing.T) {
	clock := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	service := newTestService(WithClock(func() time.Time { return clock }))
	ctx := context.Background()

	created, err := service.Create(ctx, createInput())
	assert.NoError(t, err)

	newDate := time.Date(2026, 10, 20, 0, 0, 0, 0, time.UTC)
	newPhone := "+91 98100 11111"
	clock = clock.Add(time.Hour)

	modified, err := service.Modify(ctx, created.OwnerEmail, created.ID, ModifyInput{
		TravelDate: &newDate,
		Phone:      &newPhone,
	})

	assert.NoError(t, err)
	assert.Equal(t, domain.BookingStatusModified, modified.Status)
	assert.Equal(t, newDate, modified.TravelDate)
	assert.Equal(t, newPhone, modified.OwnerPhone)
	assert.Equal(t, clock, *modified.ModifiedAt)
	// Settled price and credentials never change.
	assert.Equal(t, created.TotalPaid, modified.TotalPaid)
	assert.Equal(t, created.PIN, modified.PIN)
	assert.Equal(t, created.OwnerEmail, modified.OwnerEmail)
}

func TestModify_TwiceKeepsLastWrite(t *testing.T) {
	clock := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	service := newTestService(WithClock(func() time.Time { return clock }))
	ctx := context.Background()

	created, err := service.Create(ctx, createInput())
	assert.NoError(t, err)

	firstDate := time.Date(2026, 10, 20, 0, 0, 0, 0, time.UTC)
	clock = clock.Add(time.Hour)
	first, err := service.Modify(ctx, created.OwnerEmail, created.ID, ModifyInput{TravelDate: &firstDate})
	assert.NoError(t, err)

	secondDate := time.Date(2026, 10, 25, 0, 0, 0, 0, time.UTC)
	clock = clock.Add(time.Hour)
	second, err := service.Modify(ctx, created.OwnerEmail, created.ID, ModifyInput{TravelDate: &secondDate})
	assert.NoError(t, err)

	assert.Equal(t, secondDate, second.TravelDate)
	assert.Equal(t, domain.BookingStatusModified, second.Status)
	assert.True(t, second.ModifiedAt.After(*first.ModifiedAt))
}

func TestModify_Errors(t *testing.T) {
	service := newTestService()
	ctx := context.Background()

	created, err := service.Create(ctx, createInput())
	assert.NoError(t, err)

	_, err = service.Modify(ctx, created.OwnerEmail, "TF-BAD-ID", ModifyInput{})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = service.Modify(ctx, "stranger@example.com", created.ID, ModifyInput{})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestModify_CancelledIsRejected(t *testing.T) {
	service := newTestService()
	ctx := context.Background()

	created, err := service.Create(ctx, createInput())
	assert.NoError(t, err)

	_, err = service.Cancel(ctx, created.OwnerEmail, created.ID)
	assert.NoError(t, err)

	newDate := time.Date(2026, 10, 20, 0, 0, 0, 0, time.UTC)
	_, err = service.Modify(ctx, created.OwnerEmail, created.ID, ModifyInput{TravelDate: &newDate})
	assert.ErrorIs(t, err, domain.ErrCancelled)
}

func TestCancel_Idempotent(t *testing.T) {
	clock := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	service := newTestService(WithClock(func() time.Time { return clock }))
	ctx := context.Background()

	created, err := service.Create(ctx, createInput())
	assert.NoError(t, err)

	clock = clock.Add(time.Hour)
	first, err := service.Cancel(ctx, created.OwnerEmail, created.ID)
	assert.NoError(t, err)
	assert.Equal(t, domain.BookingStatusCancelled, first.Status)
	assert.Equal(t, clock, *first.CancelledAt)

	// Second cancel is a no-op: same terminal state, unchanged stamp.
	clock = clock.Add(time.Hour)
	second, err := service.Cancel(ctx, created.OwnerEmail, created.ID)
	assert.NoError(t, err)
	assert.Equal(t, domain.BookingStatusCancelled, second.Status)
	assert.Equal(t, *first.CancelledAt, *second.CancelledAt)
}

func TestCancel_Errors(t *testing.T) {
	service := newTestService()
	ctx := context.Background()

	created, err := service.Create(ctx, createInput())
	assert.NoError(t, err)

	_, err = service.Cancel(ctx, created.OwnerEmail, "TF-BAD-ID")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = service.Cancel(ctx, "stranger@example.com", created.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestCancelledRecordStaysInLedger(t *testing.T) {
	service := newTestService()
	ctx := context.Background()

	created, err := service.Create(ctx, createInput())
	assert.NoError(t, err)

	_, err = service.Cancel(ctx, created.OwnerEmail, created.ID)
	assert.NoError(t, err)

	list, err := service.ListByOwner(ctx, created.OwnerEmail)
	assert.NoError(t, err)
	assert.Len(t, list, 1)
	assert.Equal(t, domain.BookingStatusCancelled, list[0].Status)
}

func TestEnsureSeed(t *testing.T) {
	store := repository.NewMemoryLedgerStore()
	service := NewService(store)
	ctx := context.Background()

	assert.NoError(t, service.EnsureSeed(ctx))

	list, err := service.ListByOwner(ctx, "demo@tripflow.dev")
	assert.NoError(t, err)
	assert.Len(t, list, 2)

	// Seeding is idempotent and never overwrites real data.
	assert.NoError(t, service.EnsureSeed(ctx))
	_, err = service.Create(ctx, createInput())
	assert.NoError(t, err)
	assert.NoError(t, service.EnsureSeed(ctx))

	all, err := service.ListByOwner(ctx, "demo@tripflow.dev")
	assert.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestCrossProcessConsistency(t *testing.T) {
	// Two services over one store model two tabs sharing storage: a write
	// through one must be observed by the next read through the other.
	store := repository.NewMemoryLedgerStore()
	tabA := NewService(store)
	tabB := NewService(store)
	ctx := context.Background()

	created, err := tabA.Create(ctx, createInput())
	assert.NoError(t, err)

	seen, err := tabB.FindByOwnerAndID(ctx, created.OwnerEmail, created.ID)
	assert.NoError(t, err)
	assert.Equal(t, created.ID, seen.ID)

	_, err = tabB.Cancel(ctx, created.OwnerEmail, created.ID)
	assert.NoError(t, err)

	after, err := tabA.FindByOwnerAndID(ctx, created.OwnerEmail, created.ID)
	assert.NoError(t, err)
	assert.Equal(t, domain.BookingStatusCancelled, after.Status)
}
