package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	handlers "github.com/skillmate/skillmate-api/internal/interface/http"
	"github.com/skillmate/skillmate-api/internal/interface/middleware"
)

// CourseModule registers the catalog endpoints. The catalog has no auth
// guards; a shared per-IP limiter keeps it from being hammered.
type CourseModule struct {
	Handler *handlers.CourseHandler
	RDB     *redis.Client
}

func NewCourseModule(h *handlers.CourseHandler, rdb *redis.Client) *CourseModule {
	return &CourseModule{Handler: h, RDB: rdb}
}

func (m *CourseModule) Register(rg *gin.RouterGroup) {
	rl := middleware.RateLimit(m.RDB, 300, time.Minute, middleware.KeyByIP(), middleware.AllowPrivateIP())

	course := rg.Group("/course", rl)
	{
		course.POST("", m.Handler.CreateCourse)
		course.GET("", m.Handler.ListCourses)

		course.POST("/lessons", m.Handler.CreateLesson)
		course.GET("/lessons", m.Handler.ListLessons)
		course.GET("/lessons/:lessonId", m.Handler.GetLesson)
		course.PUT("/lessons/:lessonId", m.Handler.UpdateLesson)
		course.DELETE("/lessons/:lessonId", m.Handler.DeleteLesson)

		course.POST("/questions", m.Handler.CreateQuestion)
		course.GET("/questions", m.Handler.ListQuestions)
		course.GET("/questions/:questionId", m.Handler.GetQuestion)
		course.PUT("/questions/:questionId", m.Handler.UpdateQuestion)
		course.DELETE("/questions/:questionId", m.Handler.DeleteQuestion)

		course.POST("/lessons/:lessonId/questions/:questionId", m.Handler.AddQuestion)
		course.DELETE("/lessons/:lessonId/questions/:questionId", m.Handler.RemoveQuestion)

		course.GET("/:courseId", m.Handler.GetCourse)
		course.PUT("/:courseId", m.Handler.UpdateCourse)
		course.DELETE("/:courseId", m.Handler.DeleteCourse)
		course.POST("/:courseId/lessons/:lessonId", m.Handler.AddLesson)
		course.DELETE("/:courseId/lessons/:lessonId", m.Handler.RemoveLesson)
	}
}
