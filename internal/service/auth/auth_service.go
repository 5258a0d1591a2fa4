// Package auth gates ledger access by knowledge of a booking's credentials.
// Both modes are weak by design: they are lookup friction for a self-service
// dashboard, not a security boundary. Hardening would add rate limiting in
// front of Authenticate; the signature already accommodates that.
package auth

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Domenick1991/tripflow/internal/domain"
	"github.com/Domenick1991/tripflow/internal/session"
)

type AuthUseCase interface {
	AuthenticateByEmail(ctx context.Context, email string) (*Result, error)
	Authenticate(ctx context.Context, email, bookingID, pin string) (*Result, error)
	Logout(ctx context.Context, token string) error
	Resolve(ctx context.Context, token string) (*session.Session, error)
}

// Ledger is the read-only slice of the booking ledger auth needs.
type Ledger interface {
	ListByOwner(ctx context.Context, email string) ([]domain.BookingRecord, error)
	FindByOwnerAndID(ctx context.Context, email, bookingID string) (*domain.BookingRecord, error)
}

// Result is a freshly established session plus everything the dashboard
// shows right after login.
type Result struct {
	Token    string
	Session  session.Session
	Bookings []domain.BookingRecord
}

type Service struct {
	ledger   Ledger
	sessions session.Store
}

func NewService(ledger Ledger, sessions session.Store) *Service {
	return &Service{ledger: ledger, sessions: sessions}
}

// AuthenticateByEmail succeeds when the ledger holds at least one booking for
// the email and establishes a session scoped to that email.
func (s *Service) AuthenticateByEmail(ctx context.Context, email string) (*Result, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, domain.ErrDenied
	}

	bookings, err := s.ledger.ListByOwner(ctx, email)
	if err != nil {
		return nil, err
	}
	if len(bookings) == 0 {
		return nil, domain.ErrDenied
	}

	return s.establish(ctx, session.Session{
		Email: email,
		Name:  bookings[0].OwnerName,
	}, bookings)
}

// Authenticate succeeds only on an exact (email, bookingID, pin) match against
// one ledger record. The session it establishes is scoped to the email, not
// just the booking: once in, the owner sees all of their bookings.
func (s *Service) Authenticate(ctx context.Context, email, bookingID, pin string) (*Result, error) {
	record, err := s.ledger.FindByOwnerAndID(ctx, email, bookingID)
	if err != nil {
		// NotFound and Forbidden collapse into one opaque denial so a
		// caller cannot probe which booking ids exist.
		return nil, domain.ErrDenied
	}
	if record.PIN != pin {
		return nil, domain.ErrDenied
	}

	bookings, err := s.ledger.ListByOwner(ctx, email)
	if err != nil {
		return nil, err
	}

	return s.establish(ctx, session.Session{
		Email:     email,
		Name:      record.OwnerName,
		BookingID: record.ID,
	}, bookings)
}

func (s *Service) Logout(ctx context.Context, token string) error {
	return s.sessions.Delete(ctx, token)
}

// Resolve maps a session token back to its session; (nil, nil) means
// unauthenticated.
func (s *Service) Resolve(ctx context.Context, token string) (*session.Session, error) {
	if token == "" {
		return nil, nil
	}
	return s.sessions.Get(ctx, token)
}

func (s *Service) establish(ctx context.Context, sess session.Session, bookings []domain.BookingRecord) (*Result, error) {
	token := session.NewToken()
	if err := s.sessions.Put(ctx, token, sess); err != nil {
		return nil, fmt.Errorf("store session: %w", err)
	}
	slog.Info("session established", "email", sess.Email)
	return &Result{Token: token, Session: sess, Bookings: bookings}, nil
}

var _ AuthUseCase = (*Service)(nil)
