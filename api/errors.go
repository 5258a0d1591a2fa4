package api

import (
	"errors"
	"net/http"

	"github.com/Domenick1991/tripflow/internal/domain"
	"github.com/gin-gonic/gin"
)

// writeError maps domain sentinels onto HTTP statuses. NotFound and Forbidden
// produce the same status and body so a caller cannot tell a foreign booking
// from a nonexistent one.
func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrDenied):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "access denied"})
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrForbidden):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, domain.ErrCancelled):
		c.JSON(http.StatusConflict, gin.H{"error": "booking is cancelled"})
	case errors.Is(err, domain.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
