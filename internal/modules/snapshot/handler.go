package snapshot

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

func (h *Handler) RegisterRoutes(public, operator *gin.RouterGroup) {
	public.GET("/queries/:id/snapshots", h.List)

	operator.POST("/queries/:id/snapshots", h.Create)
	operator.DELETE("/queries/:id/snapshots", h.Delete)
}

func (h *Handler) Create(c *gin.Context) {
	queryID, ok := parseQueryID(c)
	if !ok {
		return
	}
	var req CreateSnapshotsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, string(apperr.TypeValidation), "variant_ids must list positive variant ids")
		return
	}

	result, err := h.service.CreateSnapshots(c.Request.Context(), queryID, req.VariantIDs, req.ShouldOverwrite())
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, result)
}

// List returns the current snapshots. With ?markup= or ?with_markup=true the
// response also carries marked-up display prices.
func (h *Handler) List(c *gin.Context) {
	queryID, ok := parseQueryID(c)
	if !ok {
		return
	}

	snaps, err := h.service.GetSnapshots(c.Request.Context(), queryID)
	if err != nil {
		response.FromError(c, err)
		return
	}

	data := gin.H{"snapshots": snaps}
	if raw := c.Query("markup"); raw != "" {
		pct, err := decimal.NewFromString(raw)
		if err != nil || pct.IsNegative() {
			response.FromError(c, apperr.Validation("markup", "markup must be a non-negative decimal"))
			return
		}
		data["display"] = ApplyMarkup(snaps, &pct, h.service.Precision())
	} else if c.Query("with_markup") == "true" {
		data["display"] = ApplyMarkup(snaps, nil, h.service.Precision())
	}
	response.Success(c, http.StatusOK, data)
}

func (h *Handler) Delete(c *gin.Context) {
	queryID, ok := parseQueryID(c)
	if !ok {
		return
	}
	count, err := h.service.DeleteSnapshots(c.Request.Context(), queryID)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"count": count})
}

func parseQueryID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid query ID")
		return 0, false
	}
	return id, true
}
