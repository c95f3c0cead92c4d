package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	handlers "github.com/skillmate/skillmate-api/internal/interface/http"
	"github.com/skillmate/skillmate-api/internal/interface/middleware"
	"github.com/skillmate/skillmate-api/pkg/helpers"
)

// UserModule registers the user endpoints. Reads are public; mutations
// require an authenticated session.
type UserModule struct {
	Handler *handlers.UserHandler
	JWT     *helpers.JWTManager
	RDB     *redis.Client
}

func NewUserModule(h *handlers.UserHandler, jwt *helpers.JWTManager, rdb *redis.Client) *UserModule {
	return &UserModule{Handler: h, JWT: jwt, RDB: rdb}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	readLimiter := middleware.RateLimit(m.RDB, 300, time.Minute, middleware.KeyByIP(), middleware.AllowPrivateIP())

	rg.GET("/user", readLimiter, m.Handler.List)
	rg.GET("/user/search/skill", readLimiter, m.Handler.SearchBySkill)
	rg.GET("/user/search", readLimiter, m.Handler.Search)
	rg.GET("/user/:id", readLimiter, m.Handler.Get)
	rg.GET("/user/:id/skills", readLimiter, m.Handler.GetSkills)

	auth := rg.Group("/")
	auth.Use(middleware.Auth(m.RDB, m.JWT))
	auth.Use(middleware.RateLimit(m.RDB, 120, time.Minute, middleware.KeyByAccountID(), nil))
	{
		auth.POST("/user", m.Handler.Create)
		auth.PUT("/user/:id", m.Handler.Update)
		auth.DELETE("/user/:id", m.Handler.Delete)
		auth.POST("/user/:id/skills", m.Handler.AddSkill)
		auth.DELETE("/user/:id/skills/:name", m.Handler.RemoveSkill)
		auth.POST("/user/:id/avatar", m.Handler.UploadAvatar)
	}
}
