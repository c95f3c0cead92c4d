package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/skillmate/skillmate-api/internal/application"
	"github.com/skillmate/skillmate-api/internal/domain/entity"
	"github.com/skillmate/skillmate-api/pkg/response"
	"github.com/skillmate/skillmate-api/pkg/validation"
)

// maxAvatarSize caps avatar uploads at 5 MiB.
const maxAvatarSize = 5 << 20

type UserHandler struct {
	Profiles *application.ProfileService
	Logger   *logrus.Logger
}

func NewUserHandler(profiles *application.ProfileService, logger *logrus.Logger) *UserHandler {
	return &UserHandler{Profiles: profiles, Logger: logger}
}

type expertiseRequest struct {
	ExpertiseID string `json:"expertise_id"`
	LevelName   string `json:"level_name"`
}

type skillRequest struct {
	Name        string           `json:"name" binding:"required"`
	Description string           `json:"description"`
	Expertise   expertiseRequest `json:"expertise"`
}

func (r skillRequest) toEntity() entity.Skill {
	return entity.Skill{
		Name:        r.Name,
		Description: r.Description,
		Expertise: entity.Expertise{
			ExpertiseID: r.Expertise.ExpertiseID,
			LevelName:   r.Expertise.LevelName,
		},
	}
}

type createUserRequest struct {
	AccountID string         `json:"account_id" binding:"required"`
	Name      string         `json:"name" binding:"required"`
	Avatar    string         `json:"avatar" binding:"omitempty,url"`
	JobRole   string         `json:"job_role"`
	Skills    []skillRequest `json:"skills" binding:"omitempty,dive"`
}

type updateUserRequest struct {
	AccountID *string        `json:"account_id"`
	Name      *string        `json:"name"`
	Avatar    *string        `json:"avatar" binding:"omitempty,url"`
	JobRole   *string        `json:"job_role"`
	Skills    []skillRequest `json:"skills" binding:"omitempty,dive"`
}

// Create POST /api/user
func (h *UserHandler) Create(c *gin.Context) {
	var req createUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	skills := make([]entity.Skill, 0, len(req.Skills))
	for _, s := range req.Skills {
		skills = append(skills, s.toEntity())
	}
	p, err := h.Profiles.Create(c.Request.Context(), &entity.Profile{
		AccountID: req.AccountID,
		Name:      req.Name,
		AvatarURL: req.Avatar,
		JobRole:   req.JobRole,
		Skills:    skills,
	})
	if err != nil {
		writeErr(c, err)
		return
	}
	response.Success(c, http.StatusCreated, toUserResponse(p), "user created", nil)
}

// List GET /api/user
func (h *UserHandler) List(c *gin.Context) {
	ps, err := h.Profiles.List(c.Request.Context())
	if err != nil {
		writeErr(c, err)
		return
	}
	response.Success(c, http.StatusOK, toUserResponses(ps), "users retrieved", nil)
}

// Get GET /api/user/:id
func (h *UserHandler) Get(c *gin.Context) {
	p, err := h.Profiles.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeErr(c, err)
		return
	}
	response.Success(c, http.StatusOK, toUserResponse(p), "user retrieved", nil)
}

// Update PUT /api/user/:id
func (h *UserHandler) Update(c *gin.Context) {
	var req updateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	in := application.UpdateProfileInput{
		AccountID: req.AccountID,
		Name:      req.Name,
		Avatar:    req.Avatar,
		JobRole:   req.JobRole,
	}
	if req.Skills != nil {
		skills := make([]entity.Skill, 0, len(req.Skills))
		for _, s := range req.Skills {
			skills = append(skills, s.toEntity())
		}
		in.Skills = skills
	}
	p, err := h.Profiles.Update(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		writeErr(c, err)
		return
	}
	response.Success(c, http.StatusOK, toUserResponse(p), "user updated", nil)
}

// Delete DELETE /api/user/:id (soft delete)
func (h *UserHandler) Delete(c *gin.Context) {
	if err := h.Profiles.SoftDelete(c.Request.Context(), c.Param("id")); err != nil {
		writeErr(c, err)
		return
	}
	response.Success[any](c, http.StatusOK, nil, "user deleted", nil)
}

// GetSkills GET /api/user/:id/skills
func (h *UserHandler) GetSkills(c *gin.Context) {
	skills, err := h.Profiles.GetSkills(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeErr(c, err)
		return
	}
	response.Success(c, http.StatusOK, skills, "skills retrieved", nil)
}

// AddSkill POST /api/user/:id/skills
func (h *UserHandler) AddSkill(c *gin.Context) {
	var req skillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	p, err := h.Profiles.AddSkill(c.Request.Context(), c.Param("id"), req.toEntity())
	if err != nil {
		writeErr(c, err)
		return
	}
	response.Success(c, http.StatusCreated, toUserResponse(p), "skill added", nil)
}

// RemoveSkill DELETE /api/user/:id/skills/:name
func (h *UserHandler) RemoveSkill(c *gin.Context) {
	p, err := h.Profiles.RemoveSkill(c.Request.Context(), c.Param("id"), c.Param("name"))
	if err != nil {
		writeErr(c, err)
		return
	}
	response.Success(c, http.StatusOK, toUserResponse(p), "skill removed", nil)
}

// SearchBySkill GET /api/user/search/skill?name=
func (h *UserHandler) SearchBySkill(c *gin.Context) {
	name := c.Query("name")
	if name == "" {
		response.Error(c, http.StatusBadRequest, "name query parameter is required", nil)
		return
	}
	ps, err := h.Profiles.SearchBySkillName(c.Request.Context(), name)
	if err != nil {
		writeErr(c, err)
		return
	}
	response.Success(c, http.StatusOK, toUserResponses(ps), "users retrieved", nil)
}

// Search GET /api/user/search?q= (Elasticsearch free-text)
func (h *UserHandler) Search(c *gin.Context) {
	q := c.Query("q")
	if q == "" {
		response.Error(c, http.StatusBadRequest, "q query parameter is required", nil)
		return
	}
	size, _ := strconv.Atoi(c.DefaultQuery("size", "10"))
	hits, err := h.Profiles.SearchProfiles(c.Request.Context(), q, size)
	if err != nil {
		writeErr(c, err)
		return
	}
	response.Success(c, http.StatusOK, hits, "search results", nil)
}

// UploadAvatar POST /api/user/:id/avatar (multipart field "avatar")
func (h *UserHandler) UploadAvatar(c *gin.Context) {
	fh, err := c.FormFile("avatar")
	if err != nil {
		response.Error(c, http.StatusBadRequest, "avatar file is required", nil)
		return
	}
	if fh.Size > maxAvatarSize {
		response.Error(c, http.StatusBadRequest, "avatar file too large", nil)
		return
	}
	f, err := fh.Open()
	if err != nil {
		response.Error(c, http.StatusBadRequest, "unable to read avatar file", nil)
		return
	}
	defer func() { _ = f.Close() }()

	url, err := h.Profiles.UploadAvatar(c.Request.Context(), c.Param("id"), f, fh.Filename, fh.Header.Get("Content-Type"))
	if err != nil {
		writeErr(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"avatar_url": url}, "avatar uploaded", nil)
}
