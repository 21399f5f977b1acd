package analysis

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"talent-backend/internal/shared/server/middleware"
	"talent-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the analysis orchestrator.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches analysis routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/candidates/:id/analyze", h.requestAnalysis)
	rg.GET("/candidates/:id/analysis", h.getStatus)
	rg.GET("/candidates/:id/analysis/history", h.getHistory)
}

type analyzeRequest struct {
	PortfolioURL string `json:"portfolioUrl"`
	GithubURL    string `json:"githubUrl"`
}

func (h *Handler) requestAnalysis(c *gin.Context) {
	candidateID := c.Param("id")
	c.Set("candidateId", candidateID)

	var req analyzeRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			respond.Error(c, http.StatusBadRequest, "validation_error", "invalid analyze payload", err.Error())
			return
		}
	}

	ctx := WithRequestID(c.Request.Context(), middleware.RequestIDFromContext(c))
	record, err := h.Svc.RequestAnalysis(ctx, RequestInput{
		CandidateID:  candidateID,
		PortfolioURL: req.PortfolioURL,
		GithubURL:    req.GithubURL,
	})
	if err != nil {
		var validationErr *ValidationError
		switch {
		case errors.As(err, &validationErr):
			respond.Error(c, http.StatusBadRequest, "validation_error", validationErr.Error(), nil)
		case errors.Is(err, ErrConflict):
			respond.Error(c, http.StatusConflict, "conflict", "analysis already in progress for this candidate", nil)
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "candidate not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to start analysis", nil)
		}
		return
	}

	respond.JSON(c, http.StatusAccepted, gin.H{
		"candidateId": record.CandidateID,
		"status":      record.Status,
		"attempt":     record.Attempt,
	})
}

func (h *Handler) getStatus(c *gin.Context) {
	candidateID := c.Param("id")
	c.Set("candidateId", candidateID)

	record, err := h.Svc.GetStatus(c.Request.Context(), candidateID)
	if err != nil {
		var validationErr *ValidationError
		if errors.As(err, &validationErr) {
			respond.Error(c, http.StatusBadRequest, "validation_error", validationErr.Error(), nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to load analysis status", nil)
		return
	}
	respond.OK(c, record)
}

func (h *Handler) getHistory(c *gin.Context) {
	candidateID := c.Param("id")
	c.Set("candidateId", candidateID)

	limit := 20
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 || parsed > 100 {
			respond.Error(c, http.StatusBadRequest, "validation_error", "limit must be an integer between 1 and 100", nil)
			return
		}
		limit = parsed
	}

	records, err := h.Svc.History(c.Request.Context(), candidateID, limit)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to load analysis history", nil)
		return
	}
	if records == nil {
		records = []Record{}
	}
	respond.OK(c, gin.H{"candidateId": candidateID, "history": records})
}
