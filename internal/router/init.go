package router

import (
	"cloud.google.com/go/storage"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/skillmate/skillmate-api/config"
	"github.com/skillmate/skillmate-api/internal/application"
	pginfra "github.com/skillmate/skillmate-api/internal/infrastructure/postgres"
	handlers "github.com/skillmate/skillmate-api/internal/interface/http"
	"github.com/skillmate/skillmate-api/internal/router/modules"
	"github.com/skillmate/skillmate-api/pkg/helpers"
)

// Deps carries the shared infrastructure every module builds on. All wiring
// is explicit; there is no ambient container.
type Deps struct {
	Cfg    *config.Config
	Logger *logrus.Logger
	DB     *pgxpool.Pool
	RDB    *redis.Client
	JWT    *helpers.JWTManager
	Pub    *helpers.RabbitPublisher
	GCS    *storage.Client
	ES     *elasticsearch.Client
}

// InitModules builds every repository, service, and handler and registers the
// feature modules with the registry. Called once during startup.
func InitModules(r *Registry, d Deps) {
	credentials := pginfra.NewCredentialRepository(d.DB)
	profiles := pginfra.NewProfileRepository(d.DB)
	experiences := pginfra.NewExperienceRepository(d.DB)
	courses := pginfra.NewCourseRepository(d.DB)
	lessons := pginfra.NewLessonRepository(d.DB)
	questions := pginfra.NewQuestionRepository(d.DB)

	accountSvc := application.NewAccountService(
		credentials, profiles, d.JWT, d.RDB, d.Pub, d.Logger,
		d.Cfg.AppName, d.Cfg.DefaultAvatarURL, d.Cfg.MailSendEnabled,
	)
	profileSvc := application.NewProfileService(
		profiles, d.Logger, d.GCS, d.Cfg.GCSBucket, d.ES, d.Cfg.ESProfilesIndex,
	)
	experienceSvc := application.NewExperienceService(experiences, profiles, d.Logger)
	catalogSvc := application.NewCatalogService(courses, lessons, questions, d.Logger)

	cookies := helpers.NewCookieManager(d.Cfg.CookieDomain, d.Cfg.CookieSecure)

	r.Add(modules.NewAuthModule(handlers.NewAuthHandler(accountSvc, cookies, d.RDB, d.Logger), d.JWT, d.RDB))
	r.Add(modules.NewUserModule(handlers.NewUserHandler(profileSvc, d.Logger), d.JWT, d.RDB))
	r.Add(modules.NewExperienceModule(handlers.NewExperienceHandler(experienceSvc, d.Logger), d.JWT, d.RDB))
	r.Add(modules.NewCourseModule(handlers.NewCourseHandler(catalogSvc, d.Logger), d.RDB))
	if d.Cfg.DebugMetricsEnabled {
		r.Add(modules.NewDebugModule(d.RDB))
	}
}
