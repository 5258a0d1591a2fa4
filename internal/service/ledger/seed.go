package ledger

import (
	"time"

	"github.com/Domenick1991/tripflow/internal/domain"
)

// SeedRecords are the deterministic demo bookings written into an empty
// store, so a fresh install has something to look up.
func SeedRecords() []domain.BookingRecord {
	return []domain.BookingRecord{
		{
			ID:         "TF-PBAL-DEMO01",
			OwnerEmail: "demo@tripflow.dev",
			OwnerName:  "Demo Traveler",
			OwnerPhone: "+1 555 0100",
			TravelDate: time.Date(2026, 12, 18, 0, 0, 0, 0, time.UTC),
			TotalPaid:  1177.64,
			PIN:        "482913",
			Status:     domain.BookingStatusConfirmed,
			CreatedAt:  time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC),
			Snapshot: domain.OfferSnapshot{
				OfferID:      "bali-7d",
				Kind:         domain.OfferKindPackage,
				Title:        "Bali Escape",
				Quantity:     2,
				UnitPriceUSD: 499,
				Subtotal:     998,
				Tax:          179.64,
				Total:        1177.64,
				Destination:  "Bali",
				Country:      "Indonesia",
				DurationDays: 7,
				Included:     []string{"Hotel", "Breakfast", "Airport transfer"},
			},
		},
		{
			ID:         "TF-FFL2-DEMO02",
			OwnerEmail: "demo@tripflow.dev",
			OwnerName:  "Demo Traveler",
			OwnerPhone: "+1 555 0100",
			TravelDate: time.Date(2026, 11, 2, 0, 0, 0, 0, time.UTC),
			TotalPaid:  722.16,
			PIN:        "170356",
			Status:     domain.BookingStatusConfirmed,
			CreatedAt:  time.Date(2026, 6, 2, 14, 30, 0, 0, time.UTC),
			Snapshot: domain.OfferSnapshot{
				OfferID:      "fl-204",
				Kind:         domain.OfferKindFlight,
				Title:        "New York to Paris",
				Quantity:     1,
				UnitPriceUSD: 612,
				Subtotal:     612,
				Tax:          110.16,
				Total:        722.16,
				FromCode:     "JFK",
				FromCity:     "New York",
				ToCode:       "CDG",
				ToCity:       "Paris",
				FlightNo:     "TF204",
				CabinClass:   "Economy",
				DepartTime:   "08:15",
				ArriveTime:   "21:40",
				Assignment: &domain.Boarding{
					Gate:         "B7",
					Terminal:     "T1",
					Seats:        []string{"21C"},
					BoardingTime: "07:30",
					Sequence:     1,
				},
			},
		},
	}
}
