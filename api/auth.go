package api

import (
	"net/http"

	"github.com/Domenick1991/tripflow/internal/service/auth"
	"github.com/Domenick1991/tripflow/internal/session"
	"github.com/gin-gonic/gin"
)

// SessionHeader carries the session token on authenticated requests.
const SessionHeader = "X-Session-Token"

const sessionContextKey = "tripflow.session"

type AuthHandler struct {
	service auth.AuthUseCase
}

type emailLoginRequest struct {
	Email string `json:"email"`
}

type bookingLoginRequest struct {
	Email     string `json:"email"`
	BookingID string `json:"booking_id"`
	PIN       string `json:"pin"`
}

type authResponse struct {
	Token     string            `json:"token"`
	Email     string            `json:"email"`
	Name      string            `json:"name"`
	BookingID string            `json:"booking_id,omitempty"`
	Bookings  []bookingResponse `json:"bookings"`
}

func NewAuthHandler(service auth.AuthUseCase) *AuthHandler {
	return &AuthHandler{service: service}
}

func (h *AuthHandler) Register(router *gin.RouterGroup) {
	router.POST("/email", h.loginByEmail)
	router.POST("/booking", h.loginByBooking)
	router.POST("/logout", h.logout)
}

func (h *AuthHandler) loginByEmail(c *gin.Context) {
	var req emailLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.service.AuthenticateByEmail(c.Request.Context(), req.Email)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, toAuthResponse(result))
}

func (h *AuthHandler) loginByBooking(c *gin.Context) {
	var req bookingLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.service.Authenticate(c.Request.Context(), req.Email, req.BookingID, req.PIN)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, toAuthResponse(result))
}

func (h *AuthHandler) logout(c *gin.Context) {
	if err := h.service.Logout(c.Request.Context(), c.GetHeader(SessionHeader)); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "logged_out"})
}

func toAuthResponse(result *auth.Result) authResponse {
	bookings := make([]bookingResponse, 0, len(result.Bookings))
	for i := range result.Bookings {
		bookings = append(bookings, toBookingResponse(&result.Bookings[i]))
	}
	return authResponse{
		Token:     result.Token,
		Email:     result.Session.Email,
		Name:      result.Session.Name,
		BookingID: result.Session.BookingID,
		Bookings:  bookings,
	}
}

// SessionRequired resolves the session token header and rejects the request
// when it maps to nothing.
func SessionRequired(service auth.AuthUseCase) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, err := service.Resolve(c.Request.Context(), c.GetHeader(SessionHeader))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}
		if sess == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "access denied"})
			return
		}
		c.Set(sessionContextKey, sess)
		c.Next()
	}
}

func currentSession(c *gin.Context) (*session.Session, bool) {
	value, ok := c.Get(sessionContextKey)
	if !ok {
		return nil, false
	}
	sess, ok := value.(*session.Session)
	return sess, ok
}
