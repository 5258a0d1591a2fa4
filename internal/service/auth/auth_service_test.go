package auth

import (
	"context"
	"testing"
	"time"

	"github.com/Domenick1991/tripflow/internal/domain"
	"github.com/Domenick1991/tripflow/internal/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockLedger struct {
	mock.Mock
}

func (m *MockLedger) ListByOwner(ctx context.Context, email string) ([]domain.BookingRecord, error) {
	args := m.Called(ctx, email)
	return args.Get(0).([]domain.BookingRecord), args.Error(1)
}

func (m *MockLedger) FindByOwnerAndID(ctx context.Context, email, bookingID string) (*domain.BookingRecord, error) {
	args := m.Called(ctx, email, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BookingRecord), args.Error(1)
}

func demoRecord() domain.BookingRecord {
	return domain.BookingRecord{
		ID:         "TF-PBAL-DEMO01",
		OwnerEmail: "demo@x.com",
		OwnerName:  "Demo Traveler",
		PIN:        "482913",
		Status:     domain.BookingStatusConfirmed,
	}
}

func TestAuthenticateByEmail_Success(t *testing.T) {
	ledger := &MockLedger{}
	sessions := session.NewMemoryStore(time.Minute)
	service := NewService(ledger, sessions)
	ctx := context.Background()

	ledger.On("ListByOwner", ctx, "demo@x.com").Return([]domain.BookingRecord{demoRecord()}, nil).Once()

	result, err := service.AuthenticateByEmail(ctx, "demo@x.com")

	assert.NoError(t, err)
	assert.NotEmpty(t, result.Token)
	assert.Equal(t, "demo@x.com", result.Session.Email)
	assert.Equal(t, "Demo Traveler", result.Session.Name)
	assert.Empty(t, result.Session.BookingID)
	assert.Len(t, result.Bookings, 1)

	resolved, err := service.Resolve(ctx, result.Token)
	assert.NoError(t, err)
	assert.Equal(t, result.Session, *resolved)
	ledger.AssertExpectations(t)
}

func TestAuthenticateByEmail_NoBookings(t *testing.T) {
	ledger := &MockLedger{}
	service := NewService(ledger, session.NewMemoryStore(time.Minute))
	ctx := context.Background()

	ledger.On("ListByOwner", ctx, "nobody@x.com").Return([]domain.BookingRecord{}, nil).Once()

	result, err := service.AuthenticateByEmail(ctx, "nobody@x.com")

	assert.Nil(t, result)
	assert.ErrorIs(t, err, domain.ErrDenied)
}

func TestAuthenticateByEmail_Blank(t *testing.T) {
	service := NewService(&MockLedger{}, session.NewMemoryStore(time.Minute))

	result, err := service.AuthenticateByEmail(context.Background(), "  ")

	assert.Nil(t, result)
	assert.ErrorIs(t, err, domain.ErrDenied)
}

func TestAuthenticate_Success(t *testing.T) {
	ledger := &MockLedger{}
	sessions := session.NewMemoryStore(time.Minute)
	service := NewService(ledger, sessions)
	ctx := context.Background()

	record := demoRecord()
	ledger.On("FindByOwnerAndID", ctx, "demo@x.com", "TF-PBAL-DEMO01").Return(&record, nil).Once()
	ledger.On("ListByOwner", ctx, "demo@x.com").Return([]domain.BookingRecord{record}, nil).Once()

	result, err := service.Authenticate(ctx, "demo@x.com", "TF-PBAL-DEMO01", "482913")

	assert.NoError(t, err)
	assert.Equal(t, "TF-PBAL-DEMO01", result.Session.BookingID)
	assert.Len(t, result.Bookings, 1)
	ledger.AssertExpectations(t)
}

func TestAuthenticate_UnknownBooking(t *testing.T) {
	ledger := &MockLedger{}
	sessions := session.NewMemoryStore(time.Minute)
	service := NewService(ledger, sessions)
	ctx := context.Background()

	ledger.On("FindByOwnerAndID", ctx, "demo@x.com", "TF-BAD-ID").Return(nil, domain.ErrNotFound).Once()

	result, err := service.Authenticate(ctx, "demo@x.com", "TF-BAD-ID", "000000")

	assert.Nil(t, result)
	assert.ErrorIs(t, err, domain.ErrDenied)
	ledger.AssertNotCalled(t, "ListByOwner")
}

func TestAuthenticate_WrongPIN(t *testing.T) {
	ledger := &MockLedger{}
	service := NewService(ledger, session.NewMemoryStore(time.Minute))
	ctx := context.Background()

	record := demoRecord()
	ledger.On("FindByOwnerAndID", ctx, "demo@x.com", "TF-PBAL-DEMO01").Return(&record, nil).Once()

	result, err := service.Authenticate(ctx, "demo@x.com", "TF-PBAL-DEMO01", "000000")

	assert.Nil(t, result)
	assert.ErrorIs(t, err, domain.ErrDenied)
}

func TestAuthenticate_ForbiddenCollapsesToDenied(t *testing.T) {
	ledger := &MockLedger{}
	service := NewService(ledger, session.NewMemoryStore(time.Minute))
	ctx := context.Background()

	ledger.On("FindByOwnerAndID", ctx, "other@x.com", "TF-PBAL-DEMO01").Return(nil, domain.ErrForbidden).Once()

	_, err := service.Authenticate(ctx, "other@x.com", "TF-PBAL-DEMO01", "482913")

	assert.ErrorIs(t, err, domain.ErrDenied)
}

func TestLogout(t *testing.T) {
	ledger := &MockLedger{}
	sessions := session.NewMemoryStore(time.Minute)
	service := NewService(ledger, sessions)
	ctx := context.Background()

	ledger.On("ListByOwner", ctx, "demo@x.com").Return([]domain.BookingRecord{demoRecord()}, nil).Once()

	result, err := service.AuthenticateByEmail(ctx, "demo@x.com")
	assert.NoError(t, err)

	assert.NoError(t, service.Logout(ctx, result.Token))

	resolved, err := service.Resolve(ctx, result.Token)
	assert.NoError(t, err)
	assert.Nil(t, resolved)
}

func TestResolve_EmptyToken(t *testing.T) {
	service := NewService(&MockLedger{}, session.NewMemoryStore(time.Minute))

	resolved, err := service.Resolve(context.Background(), "")
	assert.NoError(t, err)
	assert.Nil(t, resolved)
}
