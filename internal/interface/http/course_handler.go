package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/skillmate/skillmate-api/internal/application"
	"github.com/skillmate/skillmate-api/internal/domain/entity"
	"github.com/skillmate/skillmate-api/pkg/response"
	"github.com/skillmate/skillmate-api/pkg/validation"
)

// CourseHandler serves the whole catalog surface: courses, lessons,
// questions, and the containment edges between them.
type CourseHandler struct {
	Catalog *application.CatalogService
	Logger  *logrus.Logger
}

func NewCourseHandler(catalog *application.CatalogService, logger *logrus.Logger) *CourseHandler {
	return &CourseHandler{Catalog: catalog, Logger: logger}
}

type createCourseRequest struct {
	CourseID        string `json:"course_id" binding:"required"`
	Name            string `json:"name" binding:"required"`
	Description     string `json:"description"`
	Category        string `json:"category"`
	EnrollmentCount int    `json:"enrollment_count" binding:"omitempty,gte=0"`
}

type updateCourseRequest struct {
	Name            *string `json:"name"`
	Description     *string `json:"description"`
	Category        *string `json:"category"`
	EnrollmentCount *int    `json:"enrollment_count" binding:"omitempty,gte=0"`
}

type createLessonRequest struct {
	LessonID string   `json:"lesson_id" binding:"required"`
	Name     string   `json:"name" binding:"required"`
	Keywords []string `json:"keywords"`
}

type updateLessonRequest struct {
	Name     *string  `json:"name"`
	Keywords []string `json:"keywords"`
}

type createQuestionRequest struct {
	QuestionID string   `json:"question_id" binding:"required"`
	Question   string   `json:"question" binding:"required"`
	Options    []string `json:"options" binding:"required"`
	Answer     int      `json:"answer" binding:"required"`
	Solution   string   `json:"solution"`
}

type updateQuestionRequest struct {
	Question *string  `json:"question"`
	Options  []string `json:"options"`
	Answer   *int     `json:"answer"`
	Solution *string  `json:"solution"`
}

// CreateCourse POST /api/course
func (h *CourseHandler) CreateCourse(c *gin.Context) {
	var req createCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	course, err := h.Catalog.CreateCourse(c.Request.Context(), &entity.Course{
		CourseID:        req.CourseID,
		Name:            req.Name,
		Description:     req.Description,
		Category:        req.Category,
		EnrollmentCount: req.EnrollmentCount,
	})
	if err != nil {
		writeErr(c, err)
		return
	}
	response.Success(c, http.StatusCreated, toCourseResponse(course), "course created", nil)
}

// ListCourses GET /api/course
func (h *CourseHandler) ListCourses(c *gin.Context) {
	cs, err := h.Catalog.ListCourses(c.Request.Context())
	if err != nil {
		writeErr(c, err)
		return
	}
	out := make([]courseResponse, 0, len(cs))
	for i := range cs {
		out = append(out, toCourseResponse(&cs[i]))
	}
	response.Success(c, http.StatusOK, out, "courses retrieved", nil)
}

// GetCourse GET /api/course/:courseId
func (h *CourseHandler) GetCourse(c *gin.Context) {
	course, err := h.Catalog.GetCourse(c.Request.Context(), c.Param("courseId"))
	if err != nil {
		writeErr(c, err)
		return
	}
	response.Success(c, http.StatusOK, toCourseResponse(course), "course retrieved", nil)
}

// UpdateCourse PUT /api/course/:courseId
func (h *CourseHandler) UpdateCourse(c *gin.Context) {
	var req updateCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	course, err := h.Catalog.UpdateCourse(c.Request.Context(), c.Param("courseId"), application.UpdateCourseInput{
		Name:            req.Name,
		Description:     req.Description,
		Category:        req.Category,
		EnrollmentCount: req.EnrollmentCount,
	})
	if err != nil {
		writeErr(c, err)
		return
	}
	response.Success(c, http.StatusOK, toCourseResponse(course), "course updated", nil)
}

// DeleteCourse DELETE /api/course/:courseId
func (h *CourseHandler) DeleteCourse(c *gin.Context) {
	if err := h.Catalog.DeleteCourse(c.Request.Context(), c.Param("courseId")); err != nil {
		writeErr(c, err)
		return
	}
	response.Success[any](c, http.StatusOK, nil, "course deleted", nil)
}

// CreateLesson POST /api/course/lessons
func (h *CourseHandler) CreateLesson(c *gin.Context) {
	var req createLessonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	lesson, err := h.Catalog.CreateLesson(c.Request.Context(), &entity.Lesson{
		LessonID: req.LessonID,
		Name:     req.Name,
		Keywords: req.Keywords,
	})
	if err != nil {
		writeErr(c, err)
		return
	}
	response.Success(c, http.StatusCreated, toLessonResponse(lesson), "lesson created", nil)
}

// ListLessons GET /api/course/lessons
func (h *CourseHandler) ListLessons(c *gin.Context) {
	ls, err := h.Catalog.ListLessons(c.Request.Context())
	if err != nil {
		writeErr(c, err)
		return
	}
	out := make([]lessonResponse, 0, len(ls))
	for i := range ls {
		out = append(out, toLessonResponse(&ls[i]))
	}
	response.Success(c, http.StatusOK, out, "lessons retrieved", nil)
}

// GetLesson GET /api/course/lessons/:lessonId
func (h *CourseHandler) GetLesson(c *gin.Context) {
	lesson, err := h.Catalog.GetLesson(c.Request.Context(), c.Param("lessonId"))
	if err != nil {
		writeErr(c, err)
		return
	}
	response.Success(c, http.StatusOK, toLessonResponse(lesson), "lesson retrieved", nil)
}

// UpdateLesson PUT /api/course/lessons/:lessonId
func (h *CourseHandler) UpdateLesson(c *gin.Context) {
	var req updateLessonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	lesson, err := h.Catalog.UpdateLesson(c.Request.Context(), c.Param("lessonId"), application.UpdateLessonInput{
		Name:     req.Name,
		Keywords: req.Keywords,
	})
	if err != nil {
		writeErr(c, err)
		return
	}
	response.Success(c, http.StatusOK, toLessonResponse(lesson), "lesson updated", nil)
}

// DeleteLesson DELETE /api/course/lessons/:lessonId
func (h *CourseHandler) DeleteLesson(c *gin.Context) {
	if err := h.Catalog.DeleteLesson(c.Request.Context(), c.Param("lessonId")); err != nil {
		writeErr(c, err)
		return
	}
	response.Success[any](c, http.StatusOK, nil, "lesson deleted", nil)
}

// CreateQuestion POST /api/course/questions
func (h *CourseHandler) CreateQuestion(c *gin.Context) {
	var req createQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	q, err := h.Catalog.CreateQuestion(c.Request.Context(), &entity.Question{
		QuestionID: req.QuestionID,
		Question:   req.Question,
		Options:    req.Options,
		Answer:     req.Answer,
		Solution:   req.Solution,
	})
	if err != nil {
		writeErr(c, err)
		return
	}
	response.Success(c, http.StatusCreated, toQuestionResponse(q), "question created", nil)
}

// ListQuestions GET /api/course/questions
func (h *CourseHandler) ListQuestions(c *gin.Context) {
	qs, err := h.Catalog.ListQuestions(c.Request.Context())
	if err != nil {
		writeErr(c, err)
		return
	}
	out := make([]questionResponse, 0, len(qs))
	for i := range qs {
		out = append(out, toQuestionResponse(&qs[i]))
	}
	response.Success(c, http.StatusOK, out, "questions retrieved", nil)
}

// GetQuestion GET /api/course/questions/:questionId
func (h *CourseHandler) GetQuestion(c *gin.Context) {
	q, err := h.Catalog.GetQuestion(c.Request.Context(), c.Param("questionId"))
	if err != nil {
		writeErr(c, err)
		return
	}
	response.Success(c, http.StatusOK, toQuestionResponse(q), "question retrieved", nil)
}

// UpdateQuestion PUT /api/course/questions/:questionId
func (h *CourseHandler) UpdateQuestion(c *gin.Context) {
	var req updateQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	q, err := h.Catalog.UpdateQuestion(c.Request.Context(), c.Param("questionId"), application.UpdateQuestionInput{
		Question: req.Question,
		Options:  req.Options,
		Answer:   req.Answer,
		Solution: req.Solution,
	})
	if err != nil {
		writeErr(c, err)
		return
	}
	response.Success(c, http.StatusOK, toQuestionResponse(q), "question updated", nil)
}

// DeleteQuestion DELETE /api/course/questions/:questionId
func (h *CourseHandler) DeleteQuestion(c *gin.Context) {
	if err := h.Catalog.DeleteQuestion(c.Request.Context(), c.Param("questionId")); err != nil {
		writeErr(c, err)
		return
	}
	response.Success[any](c, http.StatusOK, nil, "question deleted", nil)
}

// AddLesson POST /api/course/:courseId/lessons/:lessonId
func (h *CourseHandler) AddLesson(c *gin.Context) {
	course, err := h.Catalog.AddLessonToCourse(c.Request.Context(), c.Param("courseId"), c.Param("lessonId"))
	if err != nil {
		writeErr(c, err)
		return
	}
	response.Success(c, http.StatusOK, toCourseResponse(course), "lesson added to course", nil)
}

// RemoveLesson DELETE /api/course/:courseId/lessons/:lessonId
func (h *CourseHandler) RemoveLesson(c *gin.Context) {
	course, err := h.Catalog.RemoveLessonFromCourse(c.Request.Context(), c.Param("courseId"), c.Param("lessonId"))
	if err != nil {
		writeErr(c, err)
		return
	}
	response.Success(c, http.StatusOK, toCourseResponse(course), "lesson removed from course", nil)
}

// AddQuestion POST /api/course/lessons/:lessonId/questions/:questionId
func (h *CourseHandler) AddQuestion(c *gin.Context) {
	lesson, err := h.Catalog.AddQuestionToLesson(c.Request.Context(), c.Param("lessonId"), c.Param("questionId"))
	if err != nil {
		writeErr(c, err)
		return
	}
	response.Success(c, http.StatusOK, toLessonResponse(lesson), "question added to lesson", nil)
}

// RemoveQuestion DELETE /api/course/lessons/:lessonId/questions/:questionId
func (h *CourseHandler) RemoveQuestion(c *gin.Context) {
	lesson, err := h.Catalog.RemoveQuestionFromLesson(c.Request.Context(), c.Param("lessonId"), c.Param("questionId"))
	if err != nil {
		writeErr(c, err)
		return
	}
	response.Success(c, http.StatusOK, toLessonResponse(lesson), "question removed from lesson", nil)
}
