package matching

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"talent-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the match engine.
type Handler struct {
	Engine *Engine
}

// NewHandler constructs a Handler.
func NewHandler(engine *Engine) *Handler {
	return &Handler{Engine: engine}
}

// RegisterRoutes attaches shortlist routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/jobs/:id/shortlist", h.computeShortlist)
	rg.GET("/jobs/:id/shortlist", h.getShortlist)
}

type shortlistRequest struct {
	CandidateIDs  []string `json:"candidateIds"`
	MaxCandidates int      `json:"maxCandidates" binding:"gte=0"`
}

func (h *Handler) computeShortlist(c *gin.Context) {
	jobID := c.Param("id")
	c.Set("jobId", jobID)

	// An empty body means defaults: full candidate pool, no cap.
	var req shortlistRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			respond.Error(c, http.StatusBadRequest, "validation_error", "invalid shortlist payload", err.Error())
			return
		}
	}

	entries, err := h.Engine.ComputeShortlist(c.Request.Context(), jobID, req.CandidateIDs, req.MaxCandidates)
	if err != nil {
		var notFound *NotFoundError
		if errors.As(err, &notFound) {
			respond.Error(c, http.StatusNotFound, "not_found", notFound.Error(), nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to compute shortlist", nil)
		return
	}
	respond.OK(c, gin.H{"jobId": jobID, "entries": entries})
}

func (h *Handler) getShortlist(c *gin.Context) {
	jobID := c.Param("id")
	c.Set("jobId", jobID)

	if h.Engine.Shortlists == nil {
		respond.Error(c, http.StatusNotFound, "not_found", "shortlist persistence is not configured", nil)
		return
	}
	entries, err := h.Engine.Shortlists.ListForJob(c.Request.Context(), jobID)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to load shortlist", nil)
		return
	}
	respond.OK(c, gin.H{"jobId": jobID, "entries": entries})
}
