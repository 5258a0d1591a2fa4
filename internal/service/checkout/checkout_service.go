// Package checkout sequences a selected offer into a persisted booking and a
// ticket. Each attempt walks a linear state machine: Details -> Payment ->
// Ticket, with one allowed reversal (Payment -> Details) that keeps what was
// already typed. Nothing touches the ledger until the simulated payment's
// success phase, and no ticket is encoded until the ledger create returns —
// a ticket can never exist for a booking that doesn't.
package checkout

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/Domenick1991/tripflow/internal/domain"
	"github.com/Domenick1991/tripflow/internal/metrics"
	"github.com/Domenick1991/tripflow/internal/pricing"
	"github.com/Domenick1991/tripflow/internal/service/ledger"
	"github.com/Domenick1991/tripflow/internal/ticket"
	"github.com/google/uuid"
)

type Step string

const (
	StepDetails Step = "DETAILS"
	StepPayment Step = "PAYMENT"
	StepTicket  Step = "TICKET"
	// StepFailed is the extension point for a real gateway integration: a
	// declined payment would move the attempt here and then back to
	// StepDetails. The current simulation cannot fail, so no transition
	// enters this state.
	StepFailed Step = "FAILED"
)

// PaymentPhases is the fixed simulation script. Portions sum to 1 and split
// the configured total duration.
var PaymentPhases = []PaymentPhase{
	{Name: "verification", Portion: 0.15},
	{Name: "gateway_connect", Portion: 0.20},
	{Name: "processing", Portion: 0.35},
	{Name: "invoice", Portion: 0.20},
	{Name: "success", Portion: 0.10},
}

type PaymentPhase struct {
	Name    string
	Portion float64
}

type TravelerDetails struct {
	Name       string
	Email      string
	Phone      string
	TravelDate time.Time
}

// attemptTTL bounds how long an unfinished attempt survives. Stale attempts
// are evicted lazily the next time a new checkout begins.
const attemptTTL = 30 * time.Minute

// Attempt is one checkout in progress. Attempts are process-local: they hold
// no ledger state, are removed once the ticket is issued and evaporate after
// attemptTTL when abandoned.
type Attempt struct {
	ID       string
	Offer    domain.Offer
	Quantity int
	Details  TravelerDetails
	Step     Step

	// settling marks a Pay call in flight so a concurrent one is rejected
	// instead of settling the same attempt twice.
	settling  bool
	touchedAt time.Time
}

// Result is what the caller gets on reaching Ticket.
type Result struct {
	Record    *domain.BookingRecord
	Payload   ticket.Payload
	TicketURL string
}

type CheckoutUseCase interface {
	Begin(ctx context.Context, offerID string, quantity int) (*Attempt, error)
	SubmitDetails(ctx context.Context, attemptID string, details TravelerDetails) (*Attempt, error)
	Back(ctx context.Context, attemptID string) (*Attempt, error)
	Pay(ctx context.Context, attemptID string, progress func(phase string)) (*Result, error)
	Attempt(ctx context.Context, attemptID string) (*Attempt, error)
}

type Catalog interface {
	GetByID(ctx context.Context, id string) (*domain.Offer, error)
}

type Ledger interface {
	Create(ctx context.Context, input ledger.CreateInput) (*domain.BookingRecord, error)
}

type Service struct {
	catalog     Catalog
	ledger      Ledger
	baseURL     string
	payDuration time.Duration
	maxQuantity int
	now         func() time.Time

	mu       sync.Mutex
	attempts map[string]*Attempt
	nextSeq  int
}

type ServiceOption func(*Service)

func WithClock(now func() time.Time) ServiceOption {
	return func(s *Service) { s.now = now }
}

func NewService(catalog Catalog, ledgerSvc Ledger, baseURL string, payDuration time.Duration, maxQuantity int, opts ...ServiceOption) *Service {
	s := &Service{
		catalog:     catalog,
		ledger:      ledgerSvc,
		baseURL:     baseURL,
		payDuration: payDuration,
		maxQuantity: maxQuantity,
		now:         time.Now,
		attempts:    make(map[string]*Attempt),
		nextSeq:     1,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Begin opens an attempt for an offer. Quantity is clamped to [1, max] here
// at the boundary, and a request beyond the offer's capacity is rejected
// before any checkout state exists.
func (s *Service) Begin(ctx context.Context, offerID string, quantity int) (*Attempt, error) {
	offer, err := s.catalog.GetByID(ctx, offerID)
	if err != nil {
		return nil, err
	}

	if quantity < 1 {
		quantity = 1
	}
	if quantity > s.maxQuantity {
		quantity = s.maxQuantity
	}
	if quantity > offer.CapacityAvailable {
		return nil, fmt.Errorf("offer %s has %d seats left: %w", offer.ID, offer.CapacityAvailable, domain.ErrValidation)
	}

	attempt := &Attempt{
		ID:        uuid.NewString(),
		Offer:     *offer,
		Quantity:  quantity,
		Step:      StepDetails,
		touchedAt: s.now(),
	}

	s.mu.Lock()
	s.evictStale()
	s.attempts[attempt.ID] = attempt
	s.mu.Unlock()

	snapshot := *attempt
	return &snapshot, nil
}

// SubmitDetails validates traveler details and advances Details -> Payment.
func (s *Service) SubmitDetails(ctx context.Context, attemptID string, details TravelerDetails) (*Attempt, error) {
	if err := validateDetails(details, s.now()); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	attempt, ok := s.attempts[attemptID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if attempt.Step != StepDetails {
		return nil, fmt.Errorf("details already submitted at step %s: %w", attempt.Step, domain.ErrValidation)
	}

	attempt.Details = details
	attempt.Step = StepPayment
	attempt.touchedAt = s.now()

	snapshot := *attempt
	return &snapshot, nil
}

// Back reverses Payment -> Details without discarding anything typed.
func (s *Service) Back(ctx context.Context, attemptID string) (*Attempt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	attempt, ok := s.attempts[attemptID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if attempt.Step != StepPayment {
		return nil, fmt.Errorf("cannot go back from step %s: %w", attempt.Step, domain.ErrValidation)
	}
	if attempt.settling {
		return nil, fmt.Errorf("payment already in progress: %w", domain.ErrValidation)
	}

	attempt.Step = StepDetails
	attempt.touchedAt = s.now()
	snapshot := *attempt
	return &snapshot, nil
}

// Pay runs the scripted payment simulation and, only after its success
// phase, prices the offer, persists the booking and encodes the ticket.
// The attempt is marked settling under the lock before the simulation starts,
// so a concurrent Pay on the same attempt is rejected and exactly one ledger
// record can result. The simulation is cancellable via ctx; cancellation or a
// ledger failure rolls the attempt back to Payment with nothing persisted.
// On success the attempt is removed.
func (s *Service) Pay(ctx context.Context, attemptID string, progress func(phase string)) (*Result, error) {
	s.mu.Lock()
	attempt, ok := s.attempts[attemptID]
	if !ok {
		s.mu.Unlock()
		return nil, domain.ErrNotFound
	}
	if attempt.Step != StepPayment {
		s.mu.Unlock()
		return nil, fmt.Errorf("payment not reachable from step %s: %w", attempt.Step, domain.ErrValidation)
	}
	if attempt.settling {
		s.mu.Unlock()
		return nil, fmt.Errorf("payment already in progress: %w", domain.ErrValidation)
	}
	attempt.settling = true
	attempt.touchedAt = s.now()
	working := *attempt
	s.mu.Unlock()

	if err := s.runSimulation(ctx, progress); err != nil {
		s.releaseSettling(attemptID)
		return nil, err
	}
	metrics.PaymentsSimulated.Inc()

	quote := pricing.Calculate(working.Offer.UnitPriceUSD, working.Quantity)
	snapshot := s.buildSnapshot(working.Offer, working.Quantity, quote)

	record, err := s.ledger.Create(ctx, ledger.CreateInput{
		OwnerEmail: working.Details.Email,
		OwnerName:  working.Details.Name,
		OwnerPhone: working.Details.Phone,
		TravelDate: working.Details.TravelDate,
		TotalPaid:  pricing.Round2(quote.Total),
		Snapshot:   snapshot,
	})
	if err != nil {
		s.releaseSettling(attemptID)
		return nil, err
	}

	payload := ticket.FromRecord(record)
	encoded, err := ticket.Encode(payload)
	if err != nil {
		s.releaseSettling(attemptID)
		return nil, err
	}

	s.mu.Lock()
	delete(s.attempts, attemptID)
	s.mu.Unlock()

	slog.Info("checkout complete", "booking_id", record.ID, "total", record.TotalPaid)
	return &Result{
		Record:    record,
		Payload:   payload,
		TicketURL: ticket.URL(s.baseURL, encoded),
	}, nil
}

// Attempt returns a snapshot of an attempt's current state.
func (s *Service) Attempt(ctx context.Context, attemptID string) (*Attempt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	attempt, ok := s.attempts[attemptID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	snapshot := *attempt
	return &snapshot, nil
}

// releaseSettling rolls a failed Pay back so the attempt can be retried.
func (s *Service) releaseSettling(attemptID string) {
	s.mu.Lock()
	if attempt, ok := s.attempts[attemptID]; ok {
		attempt.settling = false
	}
	s.mu.Unlock()
}

// evictStale drops attempts untouched for longer than attemptTTL. Caller
// holds s.mu.
func (s *Service) evictStale() {
	cutoff := s.now().Add(-attemptTTL)
	for id, attempt := range s.attempts {
		if attempt.touchedAt.Before(cutoff) {
			delete(s.attempts, id)
		}
	}
}

func (s *Service) runSimulation(ctx context.Context, progress func(phase string)) error {
	for _, phase := range PaymentPhases {
		// Cancellation must be honored even when the configured duration
		// makes every wait zero.
		if err := ctx.Err(); err != nil {
			return err
		}
		wait := time.Duration(float64(s.payDuration) * phase.Portion)
		if wait > 0 {
			timer := time.NewTimer(wait)
			select {
			case <-ctx.Done():
				timer.Stop()
				return ctx.Err()
			case <-timer.C:
			}
		}
		if progress != nil {
			progress(phase.Name)
		}
	}
	return nil
}

func (s *Service) buildSnapshot(offer domain.Offer, quantity int, quote pricing.Quote) domain.OfferSnapshot {
	snapshot := domain.OfferSnapshot{
		OfferID:      offer.ID,
		Kind:         offer.Kind,
		Title:        offer.Title,
		Quantity:     quantity,
		UnitPriceUSD: offer.UnitPriceUSD,
		Subtotal:     quote.Subtotal,
		Tax:          quote.Tax,
		Total:        quote.Total,
		Destination:  offer.Destination,
		Country:      offer.Country,
		DurationDays: offer.DurationDays,
		Included:     offer.Included,
		FromCode:     offer.FromCode,
		FromCity:     offer.FromCity,
		ToCode:       offer.ToCode,
		ToCity:       offer.ToCity,
		FlightNo:     offer.FlightNo,
		CabinClass:   offer.CabinClass,
		DepartTime:   offer.DepartTime,
		ArriveTime:   offer.ArriveTime,
	}
	if offer.Kind == domain.OfferKindFlight {
		snapshot.Assignment = s.assignBoarding(offer, quantity)
	}
	return snapshot
}

// assignBoarding fills the gate/seat block at confirmation time. Assignments
// are derived from a per-process sequence; nothing about them is negotiated
// with a real carrier.
func (s *Service) assignBoarding(offer domain.Offer, quantity int) *domain.Boarding {
	s.mu.Lock()
	seq := s.nextSeq
	s.nextSeq++
	s.mu.Unlock()

	seats := make([]string, 0, quantity)
	row := 12 + seq%20
	for i := 0; i < quantity; i++ {
		seats = append(seats, fmt.Sprintf("%d%c", row, 'A'+i))
	}

	return &domain.Boarding{
		Gate:         fmt.Sprintf("%c%d", 'A'+seq%6, 1+seq%22),
		Terminal:     fmt.Sprintf("T%d", 1+seq%3),
		Seats:        seats,
		BoardingTime: boardingTime(offer.DepartTime),
		Sequence:     seq,
	}
}

// boardingTime is 45 minutes before departure; empty when the offer carries
// no parseable departure time.
func boardingTime(departTime string) string {
	t, err := time.Parse("15:04", departTime)
	if err != nil {
		return ""
	}
	return t.Add(-45 * time.Minute).Format("15:04")
}

func validateDetails(d TravelerDetails, now time.Time) error {
	if strings.TrimSpace(d.Name) == "" {
		return fmt.Errorf("traveler name is required: %w", domain.ErrValidation)
	}
	email := strings.TrimSpace(d.Email)
	if email == "" || !strings.Contains(email, "@") {
		return fmt.Errorf("valid email is required: %w", domain.ErrValidation)
	}
	if strings.TrimSpace(d.Phone) == "" {
		return fmt.Errorf("phone is required: %w", domain.ErrValidation)
	}
	if d.TravelDate.IsZero() {
		return fmt.Errorf("travel date is required: %w", domain.ErrValidation)
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if d.TravelDate.Before(today) {
		return fmt.Errorf("travel date is in the past: %w", domain.ErrValidation)
	}
	return nil
}

var _ CheckoutUseCase = (*Service)(nil)
