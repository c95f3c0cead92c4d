package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/skillmate/skillmate-api/internal/application"
	"github.com/skillmate/skillmate-api/internal/domain/entity"
	"github.com/skillmate/skillmate-api/pkg/response"
	"github.com/skillmate/skillmate-api/pkg/validation"
)

type ExperienceHandler struct {
	Experiences *application.ExperienceService
	Logger      *logrus.Logger
}

func NewExperienceHandler(experiences *application.ExperienceService, logger *logrus.Logger) *ExperienceHandler {
	return &ExperienceHandler{Experiences: experiences, Logger: logger}
}

type createExperienceRequest struct {
	AccountID   string    `json:"account_id" binding:"required"`
	StartAt     time.Time `json:"start_at" binding:"required"`
	EndAt       time.Time `json:"end_at"`
	JobRole     string    `json:"job_role"`
	Description string    `json:"description"`
}

type updateExperienceRequest struct {
	AccountID   *string    `json:"account_id"`
	StartAt     *time.Time `json:"start_at"`
	EndAt       *time.Time `json:"end_at"`
	JobRole     *string    `json:"job_role"`
	Description *string    `json:"description"`
}

// Create POST /api/experience
func (h *ExperienceHandler) Create(c *gin.Context) {
	var req createExperienceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	e, err := h.Experiences.Create(c.Request.Context(), &entity.Experience{
		AccountID:   req.AccountID,
		StartAt:     req.StartAt,
		EndAt:       req.EndAt,
		JobRole:     req.JobRole,
		Description: req.Description,
	})
	if err != nil {
		writeErr(c, err)
		return
	}
	response.Success(c, http.StatusCreated, toExperienceResponse(e), "experience created", nil)
}

// List GET /api/experience
func (h *ExperienceHandler) List(c *gin.Context) {
	es, err := h.Experiences.List(c.Request.Context())
	if err != nil {
		writeErr(c, err)
		return
	}
	response.Success(c, http.StatusOK, toExperienceResponses(es), "experiences retrieved", nil)
}

// Get GET /api/experience/:id
func (h *ExperienceHandler) Get(c *gin.Context) {
	e, err := h.Experiences.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeErr(c, err)
		return
	}
	response.Success(c, http.StatusOK, toExperienceResponse(e), "experience retrieved", nil)
}

// ListByUser GET /api/experience/user/:id
func (h *ExperienceHandler) ListByUser(c *gin.Context) {
	es, err := h.Experiences.ListByAccount(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeErr(c, err)
		return
	}
	response.Success(c, http.StatusOK, toExperienceResponses(es), "experiences retrieved", nil)
}

// Update PUT /api/experience/:id
func (h *ExperienceHandler) Update(c *gin.Context) {
	var req updateExperienceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	e, err := h.Experiences.Update(c.Request.Context(), c.Param("id"), application.UpdateExperienceInput{
		AccountID:   req.AccountID,
		StartAt:     req.StartAt,
		EndAt:       req.EndAt,
		JobRole:     req.JobRole,
		Description: req.Description,
	})
	if err != nil {
		writeErr(c, err)
		return
	}
	response.Success(c, http.StatusOK, toExperienceResponse(e), "experience updated", nil)
}

// Delete DELETE /api/experience/:id
func (h *ExperienceHandler) Delete(c *gin.Context) {
	if err := h.Experiences.Delete(c.Request.Context(), c.Param("id")); err != nil {
		writeErr(c, err)
		return
	}
	response.Success[any](c, http.StatusOK, nil, "experience deleted", nil)
}
