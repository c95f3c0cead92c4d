package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/skillmate/skillmate-api/internal/domain/entity"
	"github.com/skillmate/skillmate-api/pkg/apperr"
	"github.com/skillmate/skillmate-api/pkg/response"
)

// writeErr renders a service error. The API contract reports every
// constraint violation as 400, so conflicts are downgraded from the
// taxonomy's default 409 here.
func writeErr(c *gin.Context, err error) {
	status := apperr.HTTPStatus(err)
	if apperr.IsCode(err, apperr.CodeConflict) {
		status = http.StatusBadRequest
	}
	response.Error(c, status, apperr.Message(err), nil)
}

type userResponse struct {
	AccountID string         `json:"account_id"`
	Name      string         `json:"name"`
	AvatarURL string         `json:"avatar_url"`
	JobRole   string         `json:"job_role,omitempty"`
	Skills    []entity.Skill `json:"skills"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

func toUserResponse(p *entity.Profile) userResponse {
	skills := p.Skills
	if skills == nil {
		skills = []entity.Skill{}
	}
	return userResponse{
		AccountID: p.AccountID,
		Name:      p.Name,
		AvatarURL: p.AvatarURL,
		JobRole:   p.JobRole,
		Skills:    skills,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

func toUserResponses(ps []entity.Profile) []userResponse {
	out := make([]userResponse, 0, len(ps))
	for i := range ps {
		out = append(out, toUserResponse(&ps[i]))
	}
	return out
}

type experienceResponse struct {
	ID          string    `json:"id"`
	AccountID   string    `json:"account_id"`
	StartAt     time.Time `json:"start_at"`
	EndAt       time.Time `json:"end_at"`
	JobRole     string    `json:"job_role"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func toExperienceResponse(e *entity.Experience) experienceResponse {
	return experienceResponse{
		ID:          e.ID,
		AccountID:   e.AccountID,
		StartAt:     e.StartAt,
		EndAt:       e.EndAt,
		JobRole:     e.JobRole,
		Description: e.Description,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}

func toExperienceResponses(es []entity.Experience) []experienceResponse {
	out := make([]experienceResponse, 0, len(es))
	for i := range es {
		out = append(out, toExperienceResponse(&es[i]))
	}
	return out
}

type courseResponse struct {
	CourseID        string   `json:"course_id"`
	Name            string   `json:"name"`
	Description     string   `json:"description,omitempty"`
	Category        string   `json:"category,omitempty"`
	EnrollmentCount int      `json:"enrollment_count"`
	LessonIDs       []string `json:"lesson_ids"`
}

func toCourseResponse(c *entity.Course) courseResponse {
	ids := c.LessonIDs
	if ids == nil {
		ids = []string{}
	}
	return courseResponse{
		CourseID:        c.CourseID,
		Name:            c.Name,
		Description:     c.Description,
		Category:        c.Category,
		EnrollmentCount: c.EnrollmentCount,
		LessonIDs:       ids,
	}
}

type lessonResponse struct {
	LessonID    string   `json:"lesson_id"`
	Name        string   `json:"name"`
	Keywords    []string `json:"keywords"`
	QuestionIDs []string `json:"question_ids"`
}

func toLessonResponse(l *entity.Lesson) lessonResponse {
	keywords := l.Keywords
	if keywords == nil {
		keywords = []string{}
	}
	ids := l.QuestionIDs
	if ids == nil {
		ids = []string{}
	}
	return lessonResponse{LessonID: l.LessonID, Name: l.Name, Keywords: keywords, QuestionIDs: ids}
}

type questionResponse struct {
	QuestionID string   `json:"question_id"`
	Question   string   `json:"question"`
	Options    []string `json:"options"`
	Answer     int      `json:"answer"`
	Solution   string   `json:"solution,omitempty"`
}

func toQuestionResponse(q *entity.Question) questionResponse {
	return questionResponse{
		QuestionID: q.QuestionID,
		Question:   q.Question,
		Options:    q.Options,
		Answer:     q.Answer,
		Solution:   q.Solution,
	}
}
