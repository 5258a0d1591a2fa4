package api

import (
	"net/http"

	"github.com/Domenick1991/tripflow/internal/catalog"
	"github.com/gin-gonic/gin"
)

type OfferHandler struct {
	service catalog.CatalogUseCase
}

func NewOfferHandler(service catalog.CatalogUseCase) *OfferHandler {
	return &OfferHandler{service: service}
}

func (h *OfferHandler) Register(router *gin.RouterGroup) {
	router.GET("/", h.list)
	router.GET("/:id", h.get)
}

func (h *OfferHandler) list(c *gin.Context) {
	offers, err := h.service.List(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"offers": offers})
}

func (h *OfferHandler) get(c *gin.Context) {
	offer, err := h.service.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, offer)
}
