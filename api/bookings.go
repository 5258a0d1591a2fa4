package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/Domenick1991/tripflow/internal/domain"
	"github.com/Domenick1991/tripflow/internal/service/ledger"
	"github.com/gin-gonic/gin"
)

type BookingHandler struct {
	service ledger.LedgerUseCase
}

type modifyBookingRequest struct {
	TravelDate *string `json:"travel_date"`
	Phone      *string `json:"phone"`
}

// bookingResponse is the outward shape of a ledger record. The access PIN
// never leaves the server.
type bookingResponse struct {
	ID          string               `json:"id"`
	Status      string               `json:"status"`
	OwnerName   string               `json:"owner_name"`
	OwnerEmail  string               `json:"owner_email"`
	OwnerPhone  string               `json:"owner_phone"`
	TravelDate  string               `json:"travel_date"`
	TotalPaid   float64              `json:"total_paid"`
	Snapshot    domain.OfferSnapshot `json:"snapshot"`
	CreatedAt   string               `json:"created_at"`
	ModifiedAt  string               `json:"modified_at,omitempty"`
	CancelledAt string               `json:"cancelled_at,omitempty"`
}

func NewBookingHandler(service ledger.LedgerUseCase) *BookingHandler {
	return &BookingHandler{service: service}
}

func (h *BookingHandler) Register(router *gin.RouterGroup) {
	router.GET("/", h.list)
	router.GET("/:id", h.get)
	router.PATCH("/:id", h.modify)
	router.DELETE("/:id", h.cancel)
}

func (h *BookingHandler) list(c *gin.Context) {
	sess, ok := currentSession(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "access denied"})
		return
	}

	records, err := h.service.ListByOwner(c.Request.Context(), sess.Email)
	if err != nil {
		writeError(c, err)
		return
	}

	bookings := make([]bookingResponse, 0, len(records))
	for i := range records {
		bookings = append(bookings, toBookingResponse(&records[i]))
	}
	c.JSON(http.StatusOK, gin.H{"bookings": bookings})
}

func (h *BookingHandler) get(c *gin.Context) {
	sess, ok := currentSession(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "access denied"})
		return
	}

	record, err := h.service.FindByOwnerAndID(c.Request.Context(), sess.Email, c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toBookingResponse(record))
}

func (h *BookingHandler) modify(c *gin.Context) {
	sess, ok := currentSession(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "access denied"})
		return
	}

	var req modifyBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	changes := ledger.ModifyInput{Phone: req.Phone}
	if req.TravelDate != nil {
		date, err := time.Parse("2006-01-02", *req.TravelDate)
		if err != nil {
			writeError(c, fmt.Errorf("travel_date must be YYYY-MM-DD: %w", domain.ErrValidation))
			return
		}
		changes.TravelDate = &date
	}

	record, err := h.service.Modify(c.Request.Context(), sess.Email, c.Param("id"), changes)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toBookingResponse(record))
}

func (h *BookingHandler) cancel(c *gin.Context) {
	sess, ok := currentSession(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "access denied"})
		return
	}

	record, err := h.service.Cancel(c.Request.Context(), sess.Email, c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toBookingResponse(record))
}

func toBookingResponse(record *domain.BookingRecord) bookingResponse {
	resp := bookingResponse{
		ID:         record.ID,
		Status:     string(record.Status),
		OwnerName:  record.OwnerName,
		OwnerEmail: record.OwnerEmail,
		OwnerPhone: record.OwnerPhone,
		TravelDate: record.TravelDate.Format("2006-01-02"),
		TotalPaid:  record.TotalPaid,
		Snapshot:   record.Snapshot,
		CreatedAt:  record.CreatedAt.Format(time.RFC3339),
	}
	if record.ModifiedAt != nil {
		resp.ModifiedAt = record.ModifiedAt.Format(time.RFC3339)
	}
	if record.CancelledAt != nil {
		resp.CancelledAt = record.CancelledAt.Format(time.RFC3339)
	}
	return resp
}
