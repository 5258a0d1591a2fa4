// Package ledger is the authoritative collection of booking records. It is
// the only writer: every operation re-reads the storage boundary under the
// service lock, mutates, and rewrites the whole document, so concurrent
// callers and other processes sharing the store always observe committed
// state and never a torn record.
package ledger

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/Domenick1991/tripflow/internal/domain"
	"github.com/Domenick1991/tripflow/internal/ident"
	"github.com/Domenick1991/tripflow/internal/kafka"
	"github.com/Domenick1991/tripflow/internal/metrics"
	"github.com/Domenick1991/tripflow/internal/repository"
)

// idRetries bounds duplicate-reference regeneration. Exhausting it means the
// generator is defective, not that the user did anything wrong.
const idRetries = 3

type LedgerUseCase interface {
	Create(ctx context.Context, input CreateInput) (*domain.BookingRecord, error)
	ListByOwner(ctx context.Context, email string) ([]domain.BookingRecord, error)
	FindByOwnerAndID(ctx context.Context, email, bookingID string) (*domain.BookingRecord, error)
	Modify(ctx context.Context, email, bookingID string, changes ModifyInput) (*domain.BookingRecord, error)
	Cancel(ctx context.Context, email, bookingID string) (*domain.BookingRecord, error)
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

type CreateInput struct {
	OwnerEmail string
	OwnerName  string
	OwnerPhone string
	TravelDate time.Time
	TotalPaid  float64
	Snapshot   domain.OfferSnapshot
}

// ModifyInput carries the only mutable logistics fields. Nil means "leave
// unchanged"; the settled price is never recomputed.
type ModifyInput struct {
	TravelDate *time.Time
	Phone      *string
}

type Service struct {
	mu                 sync.Mutex
	store              repository.LedgerStore
	producer           Producer
	eventsTopic        string
	notificationsTopic string
	now                func() time.Time
	newID              func(kind domain.OfferKind, offerID string) string
	newPIN             func() string
}

type ServiceOption func(*Service)

func WithProducer(producer Producer, eventsTopic string) ServiceOption {
	return func(s *Service) {
		s.producer = producer
		s.eventsTopic = eventsTopic
	}
}

func WithNotificationsTopic(topic string) ServiceOption {
	return func(s *Service) {
		s.notificationsTopic = topic
	}
}

func WithClock(now func() time.Time) ServiceOption {
	return func(s *Service) {
		s.now = now
	}
}

func WithIDGenerator(newID func(kind domain.OfferKind, offerID string) string) ServiceOption {
	return func(s *Service) {
		s.newID = newID
	}
}

func NewService(store repository.LedgerStore, opts ...ServiceOption) *Service {
	s := &Service{
		store:  store,
		now:    time.Now,
		newID:  ident.BookingID,
		newPIN: ident.PIN,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) Create(ctx context.Context, input CreateInput) (*domain.BookingRecord, error) {
	if strings.TrimSpace(input.OwnerEmail) == "" {
		return nil, fmt.Errorf("owner email is required: %w", domain.ErrValidation)
	}
	if strings.TrimSpace(input.OwnerName) == "" {
		return nil, fmt.Errorf("owner name is required: %w", domain.ErrValidation)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}

	id, err := s.uniqueID(records, input.Snapshot.Kind, input.Snapshot.OfferID)
	if err != nil {
		return nil, err
	}

	record := domain.BookingRecord{
		ID:         id,
		OwnerEmail: input.OwnerEmail,
		OwnerName:  input.OwnerName,
		OwnerPhone: input.OwnerPhone,
		Snapshot:   input.Snapshot,
		TravelDate: input.TravelDate,
		TotalPaid:  input.TotalPaid,
		PIN:        s.newPIN(),
		Status:     domain.BookingStatusConfirmed,
		CreatedAt:  s.now(),
	}

	records = append(records, record)
	if err := s.store.Save(ctx, records); err != nil {
		return nil, err
	}

	metrics.BookingsCreated.Inc()
	slog.Info("booking created", "booking_id", record.ID, "owner", record.OwnerEmail)
	s.publish(ctx, "booking_created", &record)
	return &record, nil
}

// ListByOwner returns the owner's bookings in insertion order, newest first.
func (s *Service) ListByOwner(ctx context.Context, email string) ([]domain.BookingRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}

	owned := make([]domain.BookingRecord, 0)
	for i := len(records) - 1; i >= 0; i-- {
		if records[i].OwnedBy(email) {
			owned = append(owned, records[i])
		}
	}
	return owned, nil
}

func (s *Service) FindByOwnerAndID(ctx context.Context, email, bookingID string) (*domain.BookingRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}

	idx := indexByID(records, bookingID)
	if idx < 0 {
		return nil, domain.ErrNotFound
	}
	if !records[idx].OwnedBy(email) {
		return nil, domain.ErrForbidden
	}
	record := records[idx]
	return &record, nil
}

func (s *Service) Modify(ctx context.Context, email, bookingID string, changes ModifyInput) (*domain.BookingRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}

	idx := indexByID(records, bookingID)
	if idx < 0 {
		return nil, domain.ErrNotFound
	}
	if !records[idx].OwnedBy(email) {
		return nil, domain.ErrForbidden
	}
	if records[idx].Status == domain.BookingStatusCancelled {
		return nil, fmt.Errorf("modify %s: %w", bookingID, domain.ErrCancelled)
	}

	if changes.TravelDate != nil {
		records[idx].TravelDate = *changes.TravelDate
	}
	if changes.Phone != nil {
		records[idx].OwnerPhone = *changes.Phone
	}
	now := s.now()
	records[idx].Status = domain.BookingStatusModified
	records[idx].ModifiedAt = &now

	if err := s.store.Save(ctx, records); err != nil {
		return nil, err
	}

	metrics.BookingsModified.Inc()
	record := records[idx]
	s.publish(ctx, "booking_modified", &record)
	return &record, nil
}

// Cancel is a soft delete: the record stays in the ledger, terminally
// Cancelled. Cancelling an already-cancelled booking is a harmless no-op and
// returns the existing record with its original cancelledAt stamp.
func (s *Service) Cancel(ctx context.Context, email, bookingID string) (*domain.BookingRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}

	idx := indexByID(records, bookingID)
	if idx < 0 {
		return nil, domain.ErrNotFound
	}
	if !records[idx].OwnedBy(email) {
		return nil, domain.ErrForbidden
	}
	if records[idx].Status == domain.BookingStatusCancelled {
		record := records[idx]
		return &record, nil
	}

	now := s.now()
	records[idx].Status = domain.BookingStatusCancelled
	records[idx].CancelledAt = &now

	if err := s.store.Save(ctx, records); err != nil {
		return nil, err
	}

	metrics.BookingsCancelled.Inc()
	record := records[idx]
	slog.Info("booking cancelled", "booking_id", record.ID)
	s.publish(ctx, "booking_cancelled", &record)
	return &record, nil
}

// EnsureSeed writes the deterministic demo records when the store is empty.
// Called once at process start.
func (s *Service) EnsureSeed(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.store.Load(ctx)
	if err != nil {
		return err
	}
	if len(records) > 0 {
		return nil
	}

	slog.Info("seeding demo bookings")
	return s.store.Save(ctx, SeedRecords())
}

func (s *Service) uniqueID(records []domain.BookingRecord, kind domain.OfferKind, offerID string) (string, error) {
	for attempt := 0; attempt < idRetries; attempt++ {
		id := s.newID(kind, offerID)
		if indexByID(records, id) < 0 {
			return id, nil
		}
		slog.Warn("booking id collision, regenerating", "booking_id", id, "attempt", attempt+1)
	}
	slog.Error("booking id generator exhausted retries", "offer_id", offerID)
	return "", domain.ErrDuplicateID
}

func (s *Service) publish(ctx context.Context, eventType string, record *domain.BookingRecord) {
	if s.producer == nil || s.eventsTopic == "" {
		return
	}
	event := kafka.BookingEvent{
		Type:       eventType,
		BookingID:  record.ID,
		OwnerEmail: record.OwnerEmail,
		OwnerName:  record.OwnerName,
		OfferTitle: record.Snapshot.Title,
		Status:     string(record.Status),
		TotalPaid:  record.TotalPaid,
		TravelDate: record.TravelDate,
		OccurredAt: s.now(),
	}
	if err := s.producer.Publish(ctx, s.eventsTopic, record.ID, event); err != nil {
		slog.Warn("publish booking event failed", "type", eventType, "booking_id", record.ID, "error", err)
		return
	}
	if s.notificationsTopic != "" {
		if err := s.producer.Publish(ctx, s.notificationsTopic, record.ID, event); err != nil {
			slog.Warn("publish notification failed", "type", eventType, "booking_id", record.ID, "error", err)
		}
	}
}

func indexByID(records []domain.BookingRecord, bookingID string) int {
	for i := range records {
		if records[i].ID == bookingID {
			return i
		}
	}
	return -1
}

var _ LedgerUseCase = (*Service)(nil)
