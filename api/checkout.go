package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/Domenick1991/tripflow/internal/domain"
	"github.com/Domenick1991/tripflow/internal/service/checkout"
	"github.com/Domenick1991/tripflow/internal/ticket"
	"github.com/gin-gonic/gin"
)

type CheckoutHandler struct {
	service checkout.CheckoutUseCase
}

type beginCheckoutRequest struct {
	OfferID  string `json:"offer_id"`
	Quantity int    `json:"quantity"`
}

type detailsRequest struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	TravelDate string `json:"travel_date"`
}

type attemptResponse struct {
	ID       string       `json:"id"`
	Step     string       `json:"step"`
	Offer    domain.Offer `json:"offer"`
	Quantity int          `json:"quantity"`
}

// payResponse is the one place the booking's access PIN crosses the wire:
// the customer needs it for PIN login later and no other surface reveals it.
type payResponse struct {
	Phases    []string        `json:"phases"`
	Booking   bookingResponse `json:"booking"`
	PIN       string          `json:"pin"`
	Ticket    ticket.Payload  `json:"ticket"`
	TicketURL string          `json:"ticket_url"`
}

func NewCheckoutHandler(service checkout.CheckoutUseCase) *CheckoutHandler {
	return &CheckoutHandler{service: service}
}

func (h *CheckoutHandler) Register(router *gin.RouterGroup) {
	router.POST("/", h.begin)
	router.GET("/:id", h.get)
	router.PUT("/:id/details", h.details)
	router.POST("/:id/back", h.back)
	router.POST("/:id/pay", h.pay)
}

func (h *CheckoutHandler) begin(c *gin.Context) {
	var req beginCheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	attempt, err := h.service.Begin(c.Request.Context(), req.OfferID, req.Quantity)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toAttemptResponse(attempt))
}

func (h *CheckoutHandler) get(c *gin.Context) {
	attempt, err := h.service.Attempt(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toAttemptResponse(attempt))
}

func (h *CheckoutHandler) details(c *gin.Context) {
	var req detailsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	travelDate, err := time.Parse("2006-01-02", req.TravelDate)
	if err != nil {
		writeError(c, fmt.Errorf("travel_date must be YYYY-MM-DD: %w", domain.ErrValidation))
		return
	}

	attempt, err := h.service.SubmitDetails(c.Request.Context(), c.Param("id"), checkout.TravelerDetails{
		Name:       req.Name,
		Email:      req.Email,
		Phone:      req.Phone,
		TravelDate: travelDate,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toAttemptResponse(attempt))
}

func (h *CheckoutHandler) back(c *gin.Context) {
	attempt, err := h.service.Back(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toAttemptResponse(attempt))
}

// pay blocks through the payment simulation and responds once with the phase
// trail and the finished booking.
func (h *CheckoutHandler) pay(c *gin.Context) {
	phases := make([]string, 0, len(checkout.PaymentPhases))
	result, err := h.service.Pay(c.Request.Context(), c.Param("id"), func(phase string) {
		phases = append(phases, phase)
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, payResponse{
		Phases:    phases,
		Booking:   toBookingResponse(result.Record),
		PIN:       result.Record.PIN,
		Ticket:    result.Payload,
		TicketURL: result.TicketURL,
	})
}

func toAttemptResponse(attempt *checkout.Attempt) attemptResponse {
	return attemptResponse{
		ID:       attempt.ID,
		Step:     string(attempt.Step),
		Offer:    attempt.Offer,
		Quantity: attempt.Quantity,
	}
}
