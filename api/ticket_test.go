package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Domenick1991/tripflow/internal/domain"
	"github.com/Domenick1991/tripflow/internal/ticket"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func ticketRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	NewTicketHandler().Register(router)
	return router
}

func TestTicketHandler_TripVoucher(t *testing.T) {
	record := &domain.BookingRecord{
		ID:         "TF-PBAL-ABC123",
		OwnerEmail: "demo@x.com",
		OwnerName:  "Demo Traveler",
		Snapshot: domain.OfferSnapshot{
			Kind:         domain.OfferKindPackage,
			Quantity:     2,
			Subtotal:     998,
			Tax:          179.64,
			Total:        1177.64,
			Destination:  "Bali",
			Country:      "Indonesia",
			DurationDays: 7,
			Included:     []string{"Hotel", "Breakfast"},
		},
		TravelDate: time.Date(2026, 11, 20, 0, 0, 0, 0, time.UTC),
		CreatedAt:  time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
	}
	encoded, err := ticket.Encode(ticket.FromRecord(record))
	assert.NoError(t, err)

	w := httptest.NewRecorder()
	ticketRouter().ServeHTTP(w, httptest.NewRequest("GET", "/ticket?d="+encoded, nil))

	assert.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "Trip Voucher")
	assert.Contains(t, body, "TF-PBAL-ABC123")
	assert.Contains(t, body, "Bali, Indonesia")
	assert.Contains(t, body, "$1177.64")
	assert.Contains(t, body, "<li>Hotel</li>")
}

func TestTicketHandler_BoardingPass(t *testing.T) {
	record := &domain.BookingRecord{
		ID:         "TF-FFL2-XYZ789",
		OwnerEmail: "demo@x.com",
		OwnerName:  "Demo Traveler",
		Snapshot: domain.OfferSnapshot{
			Kind:       domain.OfferKindFlight,
			Quantity:   1,
			Subtotal:   612,
			Tax:        110.16,
			Total:      722.16,
			FromCode:   "JFK",
			FromCity:   "New York",
			ToCode:     "CDG",
			ToCity:     "Paris",
			FlightNo:   "TF204",
			CabinClass: "Economy",
			DepartTime: "08:15",
			ArriveTime: "21:40",
			Assignment: &domain.Boarding{
				Gate:         "B4",
				Terminal:     "T2",
				Seats:        []string{"14A"},
				BoardingTime: "07:30",
				Sequence:     3,
			},
		},
		TravelDate: time.Date(2026, 10, 5, 0, 0, 0, 0, time.UTC),
		CreatedAt:  time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
	}
	encoded, err := ticket.Encode(ticket.FromRecord(record))
	assert.NoError(t, err)

	w := httptest.NewRecorder()
	ticketRouter().ServeHTTP(w, httptest.NewRequest("GET", "/ticket?d="+encoded, nil))

	assert.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "Boarding Pass")
	assert.Contains(t, body, "TF204")
	assert.Contains(t, body, "Gate B4, Terminal T2, boarding 07:30")
	assert.Contains(t, body, "14A")
}

func TestTicketHandler_InvalidPayload(t *testing.T) {
	testCases := []struct {
		name  string
		query string
	}{
		{"missing param", "/ticket"},
		{"garbage", "/ticket?d=%25%25%25"},
		{"not json", "/ticket?d=bm90IGpzb24"},
		{"wrong type", "/ticket?d=eyJ0eXBlIjoiYnVzIiwiYm9va2luZ19pZCI6IlgifQ"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			ticketRouter().ServeHTTP(w, httptest.NewRequest("GET", tc.query, nil))

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Contains(t, w.Body.String(), "not valid")
		})
	}
}
