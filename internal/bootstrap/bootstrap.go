package bootstrap

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	appControllers "github.com/yigit/psychcourse/internal/app/controllers"
	appMigrations "github.com/yigit/psychcourse/internal/app/migrations"
	appRepos "github.com/yigit/psychcourse/internal/app/repositories"
	appRoutes "github.com/yigit/psychcourse/internal/app/routes"
	appServices "github.com/yigit/psychcourse/internal/app/services"
	"github.com/yigit/psychcourse/internal/app/views"
	"github.com/yigit/psychcourse/internal/config"
	"github.com/yigit/psychcourse/internal/db"
	appMiddleware "github.com/yigit/psychcourse/internal/middleware"
	pkgAuth "github.com/yigit/psychcourse/internal/pkg/auth"
	"github.com/yigit/psychcourse/internal/pkg/filestorage"
	"github.com/yigit/psychcourse/internal/pkg/helpers"
	"github.com/yigit/psychcourse/internal/pkg/logger"
	"github.com/yigit/psychcourse/internal/pkg/slides"
	"github.com/yigit/psychcourse/internal/seed"
)

// UploadsURLPath is where stored files are served
const UploadsURLPath = "/uploads"

// Dependencies holds all the application dependencies
type Dependencies struct {
	Repos          *appRepos.Repositories
	Services       *appServices.Services
	Controllers    *appRoutes.Controllers
	AuthMiddleware *appMiddleware.AuthMiddleware
	JWTService     *pkgAuth.JWTService
	FileStorage    *filestorage.LocalStorage
	Registry       *slides.Registry
}

// ConfigPath returns the config file location, overridable with CONFIG_PATH
func ConfigPath() string {
	return config.GetEnv("CONFIG_PATH", filepath.Join("configs", "config.yaml"))
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, error) {
	cfg, err := config.LoadConfig(ConfigPath())
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, err
	}

	SetupLogger(cfg)
	return cfg, nil
}

// SetupLogger configures the global logger from the logging section
func SetupLogger(cfg *config.Config) {
	logLevel := logger.LogLevel(strings.ToLower(cfg.Logging.Level))
	format := strings.ToLower(cfg.Logging.Format)

	logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: format == "text" || format == "console",
		File: logger.FileConfig{
			Path:       cfg.Logging.File,
			MaxSizeMB:  cfg.Logging.MaxSizeMB,
			MaxBackups: cfg.Logging.MaxBackups,
			MaxAgeDays: cfg.Logging.MaxAgeDays,
			Compress:   true,
		},
	})

	logger.Info().
		Str("logLevel", string(logLevel)).
		Str("logFormat", cfg.Logging.Format).
		Str("logFile", cfg.Logging.File).
		Msg("Logger configured")
}

// RunMigrations applies every pending SQL file in the configured directory
func RunMigrations(ctx context.Context, cfg *config.Config, dbPool *pgxpool.Pool) error {
	migrationsDir := cfg.Server.MigrationsDir
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		logger.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		return fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	logger.Info().Str("path", migrationsDir).Msg("Running database migrations...")
	if err := appMigrations.NewMigrator(dbPool).MigrateFromDirectory(ctx, migrationsDir); err != nil {
		logger.Error().Err(err).Msg("Database migration error")
		return fmt.Errorf("database migrations failed: %w", err)
	}
	logger.Info().Msg("Database migrations successfully applied.")
	return nil
}

// SetupDatabase establishes the database connection and runs migrations.
func SetupDatabase(cfg *config.Config) (*pgxpool.Pool, error) {
	logger.Info().Msg("Establishing database connection...")
	ctx := context.Background()

	dbPool, err := db.Connect(ctx, cfg)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}

	if err := RunMigrations(ctx, cfg, dbPool); err != nil {
		dbPool.Close()
		return nil, err
	}
	return dbPool, nil
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, dbPool *pgxpool.Pool) (*Dependencies, error) {
	deps := &Dependencies{}
	deps.Repos = appRepos.NewRepositories(dbPool)

	baseURL := strings.TrimRight(cfg.Server.PublicBaseURL, "/")
	if baseURL == "" {
		baseURL = "http://localhost:" + cfg.Server.Port
	}

	var err error
	deps.FileStorage, err = filestorage.NewLocalStorage(cfg.Server.StoragePath, baseURL+UploadsURLPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to initialize file storage")
		return nil, fmt.Errorf("failed to initialize file storage: %w", err)
	}

	deps.Registry, err = slides.LoadBuiltin()
	if err != nil {
		return nil, fmt.Errorf("failed to load built-in decks: %w", err)
	}
	logger.Info().Strs("decks", deps.Registry.Slugs()).Msg("Built-in decks loaded")

	renderer, err := slides.NewRenderer()
	if err != nil {
		return nil, err
	}
	pages, err := views.NewPages(renderer)
	if err != nil {
		return nil, err
	}

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:      cfg.JWT.Secret,
		AccessTokenExp: helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, 12*time.Hour),
		TokenIssuer:    cfg.JWT.Issuer,
	})

	deps.Services = appServices.NewServices(deps.Repos, deps.JWTService, deps.FileStorage, deps.Registry)
	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService)

	deps.Controllers = &appRoutes.Controllers{
		Auth:         appControllers.NewAuthController(deps.Services.Auth),
		Course:       appControllers.NewCourseController(deps.Services.Course),
		Week:         appControllers.NewWeekController(deps.Services.Week),
		Lesson:       appControllers.NewLessonController(deps.Services.Lesson),
		Asset:        appControllers.NewAssetController(deps.Services.Asset),
		Presentation: appControllers.NewPresentationController(deps.Services.Presentation, pages),
		Editor:       appControllers.NewEditorController(deps.Services.Course, pages),
	}

	return deps, nil
}

// SeedDefaultData creates the default admin and the optional demo course.
// Failures are logged and startup continues.
func SeedDefaultData(ctx context.Context, cfg *config.Config, deps *Dependencies) {
	seeder := seed.NewSeeder(
		deps.Repos.AdminUserRepository,
		deps.Repos.CourseRepository,
		deps.Repos.WeekRepository,
		deps.Repos.LessonRepository,
	).WithBcryptCost(cfg.Admin.BcryptCost)
	if err := seeder.CreateDefaultData(ctx, cfg, deps.Registry); err != nil {
		logger.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
	}
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
		logger.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		logger.Info().Msg("Setting Gin mode to debug")
	}

	appMiddleware.RegisterValidators()

	router := gin.New()
	router.Use(gin.Recovery(), appMiddleware.RequestLogger(), appMiddleware.CORS(cfg.Server.CORSOrigins))
	router.MaxMultipartMemory = 32 << 20

	appRoutes.SetupSwagger(router)
	appRoutes.SetupRouter(router, deps.Controllers, deps.AuthMiddleware)

	return router
}
