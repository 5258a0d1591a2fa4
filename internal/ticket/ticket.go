// Package ticket encodes a booking's display fields into a compact, URL-safe,
// self-contained payload and parses it back. A ticket link never consults the
// ledger: the payload alone is enough to render it, so an issued ticket stays
// human-meaningful even after its booking is cancelled or deleted.
package ticket

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/Domenick1991/tripflow/internal/domain"
	"github.com/Domenick1991/tripflow/internal/pricing"
)

// Payload types. The decoder discriminates shape by this field, never by
// sniffing which fields happen to be present.
const (
	TypeTripVoucher  = "trip"
	TypeBoardingPass = "flight"
)

// Payload is the flat projection of a booking carried inside a ticket URL.
// New fields must be optional so previously issued links keep decoding.
// Slice fields deliberately omit omitempty: an empty list must round-trip
// as an empty list.
type Payload struct {
	Type       string  `json:"type"`
	BookingID  string  `json:"booking_id"`
	Name       string  `json:"name"`
	Email      string  `json:"email"`
	TravelDate string  `json:"travel_date"`
	Quantity   int     `json:"quantity"`
	Subtotal   float64 `json:"subtotal"`
	Tax        float64 `json:"tax"`
	Total      float64 `json:"total"`
	IssuedAt   string  `json:"issued_at"`

	// Trip voucher fields.
	Destination  string   `json:"destination,omitempty"`
	Country      string   `json:"country,omitempty"`
	DurationDays int      `json:"duration_days,omitempty"`
	Included     []string `json:"included"`

	// Boarding pass fields.
	FromCode     string   `json:"from_code,omitempty"`
	FromCity     string   `json:"from_city,omitempty"`
	ToCode       string   `json:"to_code,omitempty"`
	ToCity       string   `json:"to_city,omitempty"`
	FlightNo     string   `json:"flight_no,omitempty"`
	CabinClass   string   `json:"cabin_class,omitempty"`
	DepartTime   string   `json:"depart_time,omitempty"`
	ArriveTime   string   `json:"arrive_time,omitempty"`
	Gate         string   `json:"gate,omitempty"`
	Terminal     string   `json:"terminal,omitempty"`
	Seats        []string `json:"seats"`
	BoardingTime string   `json:"boarding_time,omitempty"`
	Sequence     int      `json:"sequence,omitempty"`
}

// DecodeError is the typed failure for malformed ticket payloads. Callers
// render an "invalid ticket" state from it; decoding never panics.
type DecodeError struct {
	Reason string
	Err    error
}

func (e *DecodeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("decode ticket: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("decode ticket: %s", e.Reason)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// Encode serializes the payload to a string safe for embedding as a URL query
// value.
func Encode(p Payload) (string, error) {
	data, err := json.Marshal(p)
	if err != nil {
		return "", fmt.Errorf("encode ticket: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(data), nil
}

// Decode parses an encoded payload. It is tolerant of garbage input and
// returns a *DecodeError rather than failing loudly.
func Decode(encoded string) (*Payload, error) {
	if encoded == "" {
		return nil, &DecodeError{Reason: "empty payload"}
	}
	data, err := base64.RawURLEncoding.DecodeString(encoded)
	if err != nil {
		return nil, &DecodeError{Reason: "not base64url", Err: err}
	}
	var p Payload
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, &DecodeError{Reason: "not a ticket document", Err: err}
	}
	if p.Type != TypeTripVoucher && p.Type != TypeBoardingPass {
		return nil, &DecodeError{Reason: fmt.Sprintf("unknown ticket type %q", p.Type)}
	}
	if p.BookingID == "" {
		return nil, &DecodeError{Reason: "missing booking id"}
	}
	return &p, nil
}

// URL embeds an encoded payload into a fully-qualified shareable link that
// re-enters the same decode path when opened.
func URL(baseURL, encoded string) string {
	return fmt.Sprintf("%s/ticket?d=%s", strings.TrimRight(baseURL, "/"), encoded)
}

// FromRecord projects a persisted booking into a payload.
func FromRecord(rec *domain.BookingRecord) Payload {
	s := rec.Snapshot
	p := Payload{
		BookingID:  rec.ID,
		Name:       rec.OwnerName,
		Email:      rec.OwnerEmail,
		TravelDate: rec.TravelDate.Format("2006-01-02"),
		Quantity:   s.Quantity,
		Subtotal:   pricing.Round2(s.Subtotal),
		Tax:        pricing.Round2(s.Tax),
		Total:      pricing.Round2(s.Total),
		IssuedAt:   rec.CreatedAt.Format("2006-01-02 15:04"),
		Included:   []string{},
		Seats:      []string{},
	}

	switch s.Kind {
	case domain.OfferKindFlight:
		p.Type = TypeBoardingPass
		p.FromCode = s.FromCode
		p.FromCity = s.FromCity
		p.ToCode = s.ToCode
		p.ToCity = s.ToCity
		p.FlightNo = s.FlightNo
		p.CabinClass = s.CabinClass
		p.DepartTime = s.DepartTime
		p.ArriveTime = s.ArriveTime
		if s.Assignment != nil {
			p.Gate = s.Assignment.Gate
			p.Terminal = s.Assignment.Terminal
			p.BoardingTime = s.Assignment.BoardingTime
			p.Sequence = s.Assignment.Sequence
			if len(s.Assignment.Seats) > 0 {
				p.Seats = append(p.Seats, s.Assignment.Seats...)
			}
		}
	default:
		p.Type = TypeTripVoucher
		p.Destination = s.Destination
		p.Country = s.Country
		p.DurationDays = s.DurationDays
		if len(s.Included) > 0 {
			p.Included = append(p.Included, s.Included...)
		}
	}
	return p
}
