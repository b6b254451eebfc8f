package http

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/branchbooks/reviewd/internal/application/service"
	"github.com/branchbooks/reviewd/internal/domain/review"
)

// Handlers contains all HTTP request handlers
type Handlers struct {
	reviewService service.ReviewService
	queryService  service.QueryService
	paging        PagingConfig
	logger        Logger
}

// PagingConfig bounds skip/limit query parameters
type PagingConfig struct {
	DefaultLimit int
	MaxLimit     int
}

// NewHandlers creates a new Handlers instance
func NewHandlers(
	reviewService service.ReviewService,
	queryService service.QueryService,
	paging PagingConfig,
	logger Logger,
) *Handlers {
	return &Handlers{
		reviewService: reviewService,
		queryService:  queryService,
		paging:        paging,
		logger:        logger,
	}
}

// Response represents a standard JSON response
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
	Warning string      `json:"warning,omitempty"`
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Version   string `json:"version"`
}

// ReviewUpdateRequest is the body of a review transition request
type ReviewUpdateRequest struct {
	ReviewState        string  `json:"review_state" binding:"required"`
	ReviewObservations *string `json:"review_observations"`
}

// HealthCheck handles GET /health
func (h *Handlers) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, Response{
		Success: true,
		Data: HealthResponse{
			Status:    "healthy",
			Timestamp: time.Now().UTC().Format(time.RFC3339),
			Version:   "1.0.0",
		},
	})
}

// UpdateReview handles PATCH /api/:kind/:id/review
func (h *Handlers) UpdateReview(c *gin.Context) {
	kind, ok := h.kindParam(c)
	if !ok {
		return
	}
	id := c.Param("id")

	var req ReviewUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, Response{
			Success: false,
			Error:   "invalid request body",
		})
		return
	}

	// The state string is validated here at the boundary; the engine only
	// ever sees a parsed State.
	state, err := review.ParseState(req.ReviewState)
	if err != nil {
		c.JSON(http.StatusBadRequest, Response{
			Success: false,
			Error:   err.Error(),
		})
		return
	}

	result, err := h.reviewService.ReviewRecord(
		c.Request.Context(), kind, id, actorFrom(c), state, req.ReviewObservations,
	)
	if err != nil {
		h.renderError(c, err)
		return
	}

	resp := Response{
		Success: true,
		Data:    result.Record,
	}
	if result.AuditWarning != nil {
		resp.Warning = result.AuditWarning.Error()
	}
	c.JSON(http.StatusOK, resp)
}

// ListPendingReview handles GET /api/:kind/pending-review
func (h *Handlers) ListPendingReview(c *gin.Context) {
	kind, ok := h.kindParam(c)
	if !ok {
		return
	}
	skip, limit := h.paginationParams(c)

	records, err := h.queryService.PendingReview(c.Request.Context(), kind, actorFrom(c), skip, limit)
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, Response{
		Success: true,
		Data:    records,
	})
}

// ListByReviewState handles GET /api/:kind/review/:state
func (h *Handlers) ListByReviewState(c *gin.Context) {
	kind, ok := h.kindParam(c)
	if !ok {
		return
	}
	skip, limit := h.paginationParams(c)

	records, err := h.queryService.ByReviewState(
		c.Request.Context(), kind, actorFrom(c), c.Param("state"), skip, limit,
	)
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, Response{
		Success: true,
		Data:    records,
	})
}

// ReviewHistory handles GET /api/:kind/:id/review/history
func (h *Handlers) ReviewHistory(c *gin.Context) {
	kind, ok := h.kindParam(c)
	if !ok {
		return
	}

	entries, err := h.queryService.ReviewHistory(c.Request.Context(), kind, actorFrom(c), c.Param("id"))
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, Response{
		Success: true,
		Data:    entries,
	})
}

// kindParam parses the :kind path segment, rendering 404 for collections
// that do not exist
func (h *Handlers) kindParam(c *gin.Context) (review.Kind, bool) {
	kind, err := review.ParseKind(c.Param("kind"))
	if err != nil {
		c.JSON(http.StatusNotFound, Response{
			Success: false,
			Error:   err.Error(),
		})
		return "", false
	}
	return kind, true
}

// paginationParams reads skip/limit, clamping to the configured bounds
func (h *Handlers) paginationParams(c *gin.Context) (skip, limit int) {
	skip, _ = strconv.Atoi(c.DefaultQuery("skip", "0"))
	if skip < 0 {
		skip = 0
	}

	limit, _ = strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(h.paging.DefaultLimit)))
	if limit <= 0 {
		limit = h.paging.DefaultLimit
	}
	if limit > h.paging.MaxLimit {
		limit = h.paging.MaxLimit
	}
	return skip, limit
}

// renderError maps review error kinds onto HTTP statuses. Every kind stays
// distinguishable to the caller: forbidden, bad input, not found and
// storage failure never collapse into each other.
func (h *Handlers) renderError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, review.ErrForbidden):
		c.JSON(http.StatusForbidden, Response{Success: false, Error: "admin capability required"})
	case errors.Is(err, review.ErrInvalidState), errors.Is(err, review.ErrUnknownKind):
		c.JSON(http.StatusBadRequest, Response{Success: false, Error: err.Error()})
	case errors.Is(err, review.ErrNotFound):
		c.JSON(http.StatusNotFound, Response{Success: false, Error: err.Error()})
	default:
		h.logger.Error("Request failed", "error", err, "path", c.Request.URL.Path)
		c.JSON(http.StatusInternalServerError, Response{Success: false, Error: "internal error"})
	}
}
