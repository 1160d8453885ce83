package variant

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"tourpricing/internal/modules/quote"
	"tourpricing/internal/pkg/apperr"
	"tourpricing/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts reads on public and edits on operator.
func (h *Handler) RegisterRoutes(public, operator *gin.RouterGroup) {
	public.GET("/queries/:id/variants", h.ListVariants)
	public.GET("/variants/:id/days", h.Days)
	public.GET("/variants/:id/pricing", h.Pricing)

	operator.POST("/queries", h.CreateQuery)
	operator.POST("/queries/:id/variants", h.CreateVariant)
	operator.PUT("/variants/:id/days/:dayNumber", h.ReplaceDay)
	operator.PUT("/variants/:id/pricing", h.ReplacePricing)
}

func (h *Handler) CreateQuery(c *gin.Context) {
	var req CreateQueryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, string(apperr.TypeValidation), "Invalid request body")
		return
	}
	q, err := h.service.CreateQuery(c.Request.Context(), req.Name)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"query": q})
}

func (h *Handler) CreateVariant(c *gin.Context) {
	queryID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req CreateVariantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, string(apperr.TypeValidation), "Invalid request body")
		return
	}
	v, err := req.Variant(queryID)
	if err != nil {
		response.FromError(c, err)
		return
	}
	if err := h.service.CreateVariant(c.Request.Context(), v); err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"variant": v})
}

func (h *Handler) ListVariants(c *gin.Context) {
	queryID, ok := pathID(c, "id")
	if !ok {
		return
	}
	variants, err := h.service.ListVariants(c.Request.Context(), queryID)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"variants": variants})
}

func (h *Handler) ReplaceDay(c *gin.Context) {
	variantID, ok := pathID(c, "id")
	if !ok {
		return
	}
	dayNumber, ok := pathID(c, "dayNumber")
	if !ok {
		return
	}

	var req quote.DayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, string(apperr.TypeValidation), "Invalid request body")
		return
	}
	req.DayNumber = int(dayNumber)

	day, err := req.Assignment()
	if err != nil {
		response.FromError(c, err)
		return
	}
	row, err := h.service.ReplaceDay(c.Request.Context(), variantID, day)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"day": row})
}

func (h *Handler) Days(c *gin.Context) {
	variantID, ok := pathID(c, "id")
	if !ok {
		return
	}
	days, err := h.service.Itinerary(c.Request.Context(), variantID)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"days": days})
}

func (h *Handler) ReplacePricing(c *gin.Context) {
	variantID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req ReplacePricingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, string(apperr.TypeValidation), "Invalid request body")
		return
	}
	periods, err := req.Pricing()
	if err != nil {
		response.FromError(c, err)
		return
	}
	stored, err := h.service.ReplacePricing(c.Request.Context(), variantID, periods)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"periods": stored})
}

func (h *Handler) Pricing(c *gin.Context) {
	variantID, ok := pathID(c, "id")
	if !ok {
		return
	}
	periods, err := h.service.Pricing(c.Request.Context(), variantID)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"periods": periods})
}

func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid "+name)
		return 0, false
	}
	return id, true
}
