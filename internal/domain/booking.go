package domain

import (
	"strings"
	"time"
)

type BookingStatus string

const (
	BookingStatusConfirmed BookingStatus = "CONFIRMED"
	BookingStatusModified  BookingStatus = "MODIFIED"
	BookingStatusCancelled BookingStatus = "CANCELLED"
)

// BookingRecord is the persisted unit of truth for a completed checkout.
// ID, OwnerEmail, PIN and TotalPaid are fixed at creation; only contact
// details and travel logistics change afterwards.
type BookingRecord struct {
	ID          string        `json:"id"`
	OwnerEmail  string        `json:"owner_email"`
	OwnerName   string        `json:"owner_name"`
	OwnerPhone  string        `json:"owner_phone"`
	Snapshot    OfferSnapshot `json:"snapshot"`
	TravelDate  time.Time     `json:"travel_date"`
	TotalPaid   float64       `json:"total_paid"`
	PIN         string        `json:"pin"`
	Status      BookingStatus `json:"status"`
	CreatedAt   time.Time     `json:"created_at"`
	ModifiedAt  *time.Time    `json:"modified_at,omitempty"`
	CancelledAt *time.Time    `json:"cancelled_at,omitempty"`
}

// OwnedBy reports whether the record belongs to the given email.
// Owner identity is always compared case-insensitively.
func (b *BookingRecord) OwnedBy(email string) bool {
	return strings.EqualFold(b.OwnerEmail, email)
}

// OfferSnapshot is a denormalized copy of the offer's display fields taken at
// booking time, so historical bookings stay stable even if the catalog changes
// later. For flights the Assignment block is filled once at confirmation.
type OfferSnapshot struct {
	OfferID      string    `json:"offer_id"`
	Kind         OfferKind `json:"kind"`
	Title        string    `json:"title"`
	Quantity     int       `json:"quantity"`
	UnitPriceUSD float64   `json:"unit_price_usd"`
	Subtotal     float64   `json:"subtotal"`
	Tax          float64   `json:"tax"`
	Total        float64   `json:"total"`

	// Destination package fields.
	Destination  string   `json:"destination,omitempty"`
	Country      string   `json:"country,omitempty"`
	DurationDays int      `json:"duration_days,omitempty"`
	Included     []string `json:"included,omitempty"`

	// Flight fields.
	FromCode   string    `json:"from_code,omitempty"`
	FromCity   string    `json:"from_city,omitempty"`
	ToCode     string    `json:"to_code,omitempty"`
	ToCity     string    `json:"to_city,omitempty"`
	FlightNo   string    `json:"flight_no,omitempty"`
	CabinClass string    `json:"cabin_class,omitempty"`
	DepartTime string    `json:"depart_time,omitempty"`
	ArriveTime string    `json:"arrive_time,omitempty"`
	Assignment *Boarding `json:"assignment,omitempty"`
}

// Boarding is the gate/seat block assigned at confirmation time.
type Boarding struct {
	Gate         string   `json:"gate"`
	Terminal     string   `json:"terminal"`
	Seats        []string `json:"seats"`
	BoardingTime string   `json:"boarding_time"`
	Sequence     int      `json:"sequence"`
}
