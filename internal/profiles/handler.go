package profiles

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"talent-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the profiles service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches profile routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/candidates", h.createCandidate)
	rg.GET("/candidates", h.listCandidates)
	rg.GET("/candidates/:id", h.getCandidate)
	rg.PUT("/candidates/:id", h.updateCandidate)
	rg.POST("/jobs", h.createJob)
	rg.GET("/jobs", h.listJobs)
	rg.GET("/jobs/:id", h.getJob)
}

type candidateRequest struct {
	Skills            []string `json:"skills"`
	YearsOfExperience int      `json:"yearsOfExperience" binding:"gte=0"`
	EducationLevel    string   `json:"educationLevel" binding:"omitempty,oneof=none student graduate phd"`
	Availability      string   `json:"availability" binding:"omitempty,oneof=open full_time part_time contract freelance"`
	PortfolioURL      string   `json:"portfolioUrl" binding:"omitempty,url"`
	GithubURL         string   `json:"githubUrl" binding:"omitempty,url"`
}

type jobRequest struct {
	RequiredSkills      []string `json:"requiredSkills"`
	MinExperience       int      `json:"minExperience" binding:"gte=0"`
	EducationPreference string   `json:"educationPreference" binding:"omitempty,oneof=student graduate phd"`
	Budget              float64  `json:"budget" binding:"gte=0"`
	RoleType            string   `json:"roleType" binding:"omitempty,oneof=full_time part_time contract freelance"`
}

func (h *Handler) createCandidate(c *gin.Context) {
	var req candidateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid candidate payload", err.Error())
		return
	}

	candidate, err := h.Svc.CreateCandidate(c.Request.Context(), Candidate{
		Skills:            req.Skills,
		YearsOfExperience: req.YearsOfExperience,
		EducationLevel:    EducationLevel(req.EducationLevel),
		Availability:      Availability(req.Availability),
		PortfolioURL:      req.PortfolioURL,
		GithubURL:         req.GithubURL,
	})
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		return
	}
	c.Set("candidateId", candidate.ID)
	respond.JSON(c, http.StatusCreated, candidate)
}

func (h *Handler) listCandidates(c *gin.Context) {
	candidates, err := h.Svc.ListCandidates(c.Request.Context())
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list candidates", nil)
		return
	}
	respond.OK(c, candidates)
}

func (h *Handler) getCandidate(c *gin.Context) {
	candidateID := c.Param("id")
	candidate, err := h.Svc.GetCandidate(c.Request.Context(), candidateID)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "candidate not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch candidate", nil)
		}
		return
	}
	c.Set("candidateId", candidate.ID)
	respond.OK(c, candidate)
}

func (h *Handler) updateCandidate(c *gin.Context) {
	candidateID := c.Param("id")
	var req candidateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid candidate payload", err.Error())
		return
	}

	candidate, err := h.Svc.UpdateCandidate(c.Request.Context(), Candidate{
		ID:                candidateID,
		Skills:            req.Skills,
		YearsOfExperience: req.YearsOfExperience,
		EducationLevel:    EducationLevel(req.EducationLevel),
		Availability:      Availability(req.Availability),
		PortfolioURL:      req.PortfolioURL,
		GithubURL:         req.GithubURL,
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "candidate not found", nil)
		default:
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		}
		return
	}
	c.Set("candidateId", candidate.ID)
	respond.OK(c, candidate)
}

func (h *Handler) createJob(c *gin.Context) {
	var req jobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid job payload", err.Error())
		return
	}

	job, err := h.Svc.CreateJob(c.Request.Context(), Job{
		RequiredSkills:      req.RequiredSkills,
		MinExperience:       req.MinExperience,
		EducationPreference: EducationLevel(req.EducationPreference),
		Budget:              req.Budget,
		RoleType:            RoleType(req.RoleType),
	})
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		return
	}
	c.Set("jobId", job.ID)
	respond.JSON(c, http.StatusCreated, job)
}

func (h *Handler) listJobs(c *gin.Context) {
	jobs, err := h.Svc.ListJobs(c.Request.Context())
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list jobs", nil)
		return
	}
	respond.OK(c, jobs)
}

func (h *Handler) getJob(c *gin.Context) {
	jobID := c.Param("id")
	job, err := h.Svc.GetJob(c.Request.Context(), jobID)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "job not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch job", nil)
		}
		return
	}
	c.Set("jobId", job.ID)
	respond.OK(c, job)
}
