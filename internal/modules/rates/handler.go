package rates

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"tourpricing/internal/pkg/apperr"
	"tourpricing/internal/pkg/dates"
	"tourpricing/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts reads on public and writes on operator.
func (h *Handler) RegisterRoutes(public, operator *gin.RouterGroup) {
	public.GET("/rate-periods", h.List)
	public.GET("/rate-periods/resolve", h.Resolve)
	public.GET("/rate-periods/:id", h.Get)

	operator.POST("/rate-periods", h.Insert)
	operator.PATCH("/rate-periods/:id", h.SetActive)
	operator.DELETE("/rate-periods/:id", h.Delete)
}

func (h *Handler) Insert(c *gin.Context) {
	var req InsertPeriodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, string(apperr.TypeValidation), "Invalid request body")
		return
	}

	period, err := req.Period()
	if err != nil {
		response.FromError(c, err)
		return
	}

	if req.DryRun {
		plan, err := h.service.PlanInsert(c.Request.Context(), period)
		if err != nil {
			response.FromError(c, err)
			return
		}
		response.Success(c, http.StatusOK, gin.H{"plan": plan, "applied": false})
		return
	}

	plan, err := h.service.Insert(c.Request.Context(), period)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"plan": plan, "applied": true})
}

func (h *Handler) List(c *gin.Context) {
	var req KeyRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.Error(c, http.StatusBadRequest, string(apperr.TypeValidation), "Invalid attribute key")
		return
	}

	includeInactive := c.Query("include_inactive") == "true"
	periods, err := h.service.List(c.Request.Context(), req.Key(), includeInactive)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"periods": periods})
}

func (h *Handler) Resolve(c *gin.Context) {
	var req ResolveRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.Error(c, http.StatusBadRequest, string(apperr.TypeValidation), "Invalid resolve query")
		return
	}
	date, err := dates.Parse(req.Date)
	if err != nil {
		response.FromError(c, apperr.Validation("date", err.Error()))
		return
	}

	res, err := h.service.Resolve(c.Request.Context(), date, req.Key())
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, res)
}

func (h *Handler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	p, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"period": p})
}

func (h *Handler) SetActive(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req SetActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, string(apperr.TypeValidation), "Invalid request body")
		return
	}
	if err := h.service.SetActive(c.Request.Context(), id, *req.IsActive); err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"id": id, "is_active": *req.IsActive})
}

func (h *Handler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": id})
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid rate period ID")
		return 0, false
	}
	return id, true
}
