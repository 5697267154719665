package bootstrap

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appControllers "github.com/prop101/strataops/internal/app/controllers"
	appMigrations "github.com/prop101/strataops/internal/app/migrations"
	appRepos "github.com/prop101/strataops/internal/app/repositories"
	appRoutes "github.com/prop101/strataops/internal/app/routes"
	appServices "github.com/prop101/strataops/internal/app/services"
	"github.com/prop101/strataops/internal/config"
	"github.com/prop101/strataops/internal/db"
	appMiddleware "github.com/prop101/strataops/internal/middleware"
	"github.com/prop101/strataops/internal/pkg/logger"
	"github.com/prop101/strataops/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	PropertyService   appServices.PropertyService
	ReminderService   appServices.ReminderService
	ActionLogService  appServices.ActionLogService
	ContractorService appServices.ContractorService
	UserService       appServices.UserService

	PropertyController   *appControllers.PropertyController
	ReminderController   *appControllers.ReminderController
	ActionLogController  *appControllers.ActionLogController
	ContractorController *appControllers.ContractorController
	UserController       *appControllers.UserController

	Repos  *appRepos.Repositories
	Logger zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := strings.ToLower(cfg.Logging.Level)
	prettyLog := strings.ToLower(cfg.Logging.Format) == "text"

	logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: prettyLog,
	})

	lgr := log.Logger
	lgr.Info().Str("logLevel", logLevel).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase establishes the database connection, runs migrations and
// optionally seeds default data.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*db.PostgresDB, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}

	lgr.Info().Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(database.Pool)

	migrationsDir := "migrations"
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		database.Close()
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	if err := migrator.MigrateFromDirectory(migrationsDir); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		database.Close()
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}
	lgr.Info().Msg("Database migrations successfully applied.")

	if cfg.Seed.Enabled {
		if err := seed.CreateDefaultData(context.Background(), database.Pool, lgr); err != nil {
			// Seeding failure is not fatal; the API works on an empty portfolio.
			lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
		}
	}

	return database, nil
}

// BuildDependencies initializes application repositories, services, and
// controllers, and primes the reminder projection with an initial recompute.
func BuildDependencies(cfg *config.Config, database *db.PostgresDB, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(database)

	deps.ReminderService = appServices.NewReminderService(deps.Repos.PropertyRepository)
	deps.PropertyService = appServices.NewPropertyService(
		deps.Repos.PropertyRepository,
		deps.Repos.MeetingRepository,
		deps.Repos.UserRepository,
		deps.ReminderService,
	)
	deps.ActionLogService = appServices.NewActionLogService(
		deps.Repos.ActionCommentRepository,
		deps.Repos.UserRepository,
	)
	deps.ContractorService = appServices.NewContractorService(deps.Repos.ContractorRepository)
	deps.UserService = appServices.NewUserService(deps.Repos.UserRepository)

	deps.PropertyController = appControllers.NewPropertyController(deps.PropertyService)
	deps.ReminderController = appControllers.NewReminderController(deps.ReminderService, deps.ActionLogService)
	deps.ActionLogController = appControllers.NewActionLogController(deps.ActionLogService)
	deps.ContractorController = appControllers.NewContractorController(deps.ContractorService)
	deps.UserController = appControllers.NewUserController(deps.UserService)

	// Prime the derived reminder set so the feed is populated before the
	// first mutation arrives.
	if err := deps.ReminderService.Recompute(context.Background()); err != nil {
		return nil, fmt.Errorf("failed to compute initial reminder set: %w", err)
	}

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.New()
	router.Use(appMiddleware.RequestLogger(), gin.Recovery())

	appRoutes.SetupRouter(router,
		deps.PropertyController,
		deps.ReminderController,
		deps.ActionLogController,
		deps.ContractorController,
		deps.UserController,
	)

	return router
}
