package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	handlers "github.com/skillmate/skillmate-api/internal/interface/http"
	"github.com/skillmate/skillmate-api/internal/interface/middleware"
	"github.com/skillmate/skillmate-api/pkg/helpers"
)

// ExperienceModule registers the work-experience endpoints. Reads are
// public; mutations require an authenticated session.
type ExperienceModule struct {
	Handler *handlers.ExperienceHandler
	JWT     *helpers.JWTManager
	RDB     *redis.Client
}

func NewExperienceModule(h *handlers.ExperienceHandler, jwt *helpers.JWTManager, rdb *redis.Client) *ExperienceModule {
	return &ExperienceModule{Handler: h, JWT: jwt, RDB: rdb}
}

func (m *ExperienceModule) Register(rg *gin.RouterGroup) {
	readLimiter := middleware.RateLimit(m.RDB, 300, time.Minute, middleware.KeyByIP(), middleware.AllowPrivateIP())

	rg.GET("/experience", readLimiter, m.Handler.List)
	rg.GET("/experience/user/:id", readLimiter, m.Handler.ListByUser)
	rg.GET("/experience/:id", readLimiter, m.Handler.Get)

	auth := rg.Group("/")
	auth.Use(middleware.Auth(m.RDB, m.JWT))
	auth.Use(middleware.RateLimit(m.RDB, 120, time.Minute, middleware.KeyByAccountID(), nil))
	{
		auth.POST("/experience", m.Handler.Create)
		auth.PUT("/experience/:id", m.Handler.Update)
		auth.DELETE("/experience/:id", m.Handler.Delete)
	}
}
