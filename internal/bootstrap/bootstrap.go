package bootstrap

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	appControllers "github.com/yigit/registrar/internal/app/controllers"
	appMigrations "github.com/yigit/registrar/internal/app/migrations"
	appRepos "github.com/yigit/registrar/internal/app/repositories"
	"github.com/yigit/registrar/internal/app/repositories/postgres"
	"github.com/yigit/registrar/internal/app/repositories/sqlstore"
	appRoutes "github.com/yigit/registrar/internal/app/routes"
	appServices "github.com/yigit/registrar/internal/app/services"
	"github.com/yigit/registrar/internal/config"
	"github.com/yigit/registrar/internal/db"
	appMiddleware "github.com/yigit/registrar/internal/middleware"
	"github.com/yigit/registrar/internal/pkg/logger"
	"github.com/yigit/registrar/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	Repos                *appRepos.Repositories
	Services             *appServices.Services
	StudentController    *appControllers.StudentController
	CourseController     *appControllers.CourseController
	EnrollmentController *appControllers.EnrollmentController
	Logger               zerolog.Logger
}

// Store is an open database with the repositories built over it.
type Store struct {
	Repos *appRepos.Repositories
	Close func()
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	cfg, err := config.LoadConfig(config.Path())
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.ParseLevel(cfg.Logging.Level)
	prettyLog := strings.ToLower(cfg.Logging.Format) == "text"

	logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: prettyLog,
	})

	lgr := logger.Get()
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase connects to the configured driver, applies migrations and
// seeds default data.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*Store, error) {
	lgr.Info().Str("driver", cfg.Database.Driver).Msg("Establishing database connection...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	var (
		store *Store
		err   error
	)
	switch cfg.Database.Driver {
	case config.DriverPostgres:
		store, err = setupPostgres(ctx, cfg, lgr)
	case config.DriverSQLite, config.DriverMySQL:
		store, err = setupSQL(ctx, cfg, lgr)
	default:
		err = fmt.Errorf("unsupported database driver %q", cfg.Database.Driver)
	}
	if err != nil {
		lgr.Error().Err(err).Msg("Database setup failed")
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")

	if cfg.Seed.Enabled {
		if err := seed.CreateDefaultData(ctx, store.Repos.CourseRepository, cfg.Seed.Courses, lgr); err != nil {
			lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
		}
	}

	return store, nil
}

func setupPostgres(ctx context.Context, cfg *config.Config, lgr zerolog.Logger) (*Store, error) {
	lgr.Info().Msg("Running database migrations...")
	if err := appMigrations.MigratePostgres(ctx, cfg.GetPostgresConnectionString(), lgr); err != nil {
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}

	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		return nil, err
	}

	return &Store{Repos: postgres.NewRepositories(database), Close: database.Close}, nil
}

func setupSQL(ctx context.Context, cfg *config.Config, lgr zerolog.Logger) (*Store, error) {
	database, err := db.NewSQLDB(cfg)
	if err != nil {
		return nil, err
	}

	source, err := appMigrations.Files(cfg.Database.Driver)
	if err != nil {
		database.Close()
		return nil, err
	}

	lgr.Info().Msg("Running database migrations...")
	if _, err := appMigrations.NewMigrator(database.DB, source, lgr).Migrate(ctx); err != nil {
		database.Close()
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}

	return &Store{Repos: sqlstore.NewRepositories(database), Close: database.Close}, nil
}

// BuildDependencies initializes application services and controllers.
func BuildDependencies(repos *appRepos.Repositories, lgr zerolog.Logger) *Dependencies {
	deps := &Dependencies{Repos: repos, Logger: lgr}

	deps.Services = appServices.NewServices(repos)

	deps.StudentController = appControllers.NewStudentController(deps.Services.StudentService)
	deps.CourseController = appControllers.NewCourseController(deps.Services.CourseService)
	deps.EnrollmentController = appControllers.NewEnrollmentController(deps.Services.EnrollmentService)

	return deps
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	switch cfg.Server.Mode {
	case config.ModeProduction:
		gin.SetMode(gin.ReleaseMode)
	case config.ModeTest:
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.DebugMode)
	}
	lgr.Info().Str("ginMode", gin.Mode()).Msg("Gin mode set")

	router := gin.New()
	router.Use(
		appMiddleware.RequestID(),
		appMiddleware.RequestLogger(lgr),
		appMiddleware.Recovery(lgr),
	)

	limiter := appMiddleware.NewRateLimiter(appMiddleware.RateLimitConfig{
		RequestsPerSecond: cfg.Server.RateLimit.RequestsPerSecond,
		Burst:             cfg.Server.RateLimit.Burst,
	})
	router.Use(limiter.Middleware())

	if !cfg.IsProduction() {
		appRoutes.SetupSwagger(router)
	}

	appRoutes.SetupRouter(router,
		deps.StudentController,
		deps.CourseController,
		deps.EnrollmentController,
	)

	return router
}
