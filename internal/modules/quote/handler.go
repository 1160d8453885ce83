package quote

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"tourpricing/internal/pkg/apperr"
	"tourpricing/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(public *gin.RouterGroup) {
	public.POST("/quotes", h.QuoteItinerary)
	public.GET("/variants/:id/quote", h.QuoteVariant)
}

func (h *Handler) QuoteItinerary(c *gin.Context) {
	var req QuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, string(apperr.TypeValidation), "Invalid request body")
		return
	}

	days, err := req.Itinerary()
	if err != nil {
		response.FromError(c, err)
		return
	}

	result, err := h.service.QuoteItinerary(c.Request.Context(), days, req.MarkupPercentage)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, result)
}

func (h *Handler) QuoteVariant(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid variant ID")
		return
	}

	var markup *decimal.Decimal
	if raw := c.Query("markup"); raw != "" {
		m, err := decimal.NewFromString(raw)
		if err != nil {
			response.FromError(c, apperr.Validation("markup", "markup must be a decimal number"))
			return
		}
		markup = &m
	}

	result, err := h.service.QuoteVariant(c.Request.Context(), id, markup)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, result)
}
