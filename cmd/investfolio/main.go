package main

import (
	"context"
	"database/sql"
	"log/slog"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/mpopesco/investfolio/internal/adapters/database/pgsql"
	"github.com/mpopesco/investfolio/internal/adapters/external/bnr"
	"github.com/mpopesco/investfolio/internal/adapters/external/ollama"
	portsrepo "github.com/mpopesco/investfolio/internal/core/ports/repositories"
	"github.com/mpopesco/investfolio/internal/core/services"
	"github.com/mpopesco/investfolio/internal/handlers"
	"github.com/mpopesco/investfolio/internal/middleware"
	"github.com/mpopesco/investfolio/internal/platform/config"
	"github.com/mpopesco/investfolio/internal/platform/scheduler"
	"github.com/mpopesco/investfolio/pkg/database"

	migrate "github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"
)

// @title Investfolio API
// @version 1.0
// @description Multi-currency investment tracking backend API.

// @host localhost:8080
// @BasePath /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @security BearerAuth
func main() {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Initialize database connection pool (for application use)
	dbPool, err := database.NewPgxPool(context.Background(), cfg.DatabaseURL)
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer dbPool.Close()
	logger.Info("Database connection pool established.")

	if err := runMigrations(cfg, logger); err != nil {
		logger.Error("Failed to apply migrations", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Repositories
	repos := portsrepo.RepositoryProvider{
		InvestmentRepo: pgsql.NewInvestmentRepository(dbPool),
		ObjectiveRepo:  pgsql.NewObjectiveRepository(dbPool),
		RateRepo:       pgsql.NewRateRepository(dbPool),
	}

	// External clients
	rateSource := bnr.NewClient(cfg.RatesURL)
	forecaster := ollama.NewClient(cfg.OllamaURL, cfg.OllamaModel)

	// Services
	serviceContainer := services.NewServiceContainer(context.Background(), cfg, repos, rateSource, forecaster, logger)

	// Fetch fresh rates in the background at startup; the persisted snapshot
	// keeps conversions working until this lands.
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := serviceContainer.Rates.Refresh(ctx); err != nil {
			logger.Warn("Initial rate refresh failed", slog.String("error", err.Error()))
		}
	}()

	// Periodic rate refresh
	sched := scheduler.New(logger)
	if err := sched.AddJob(cfg.RateRefreshSpec, scheduler.NewRateRefreshJob(serviceContainer.Rates)); err != nil {
		logger.Error("Failed to register rate refresh job", slog.String("error", err.Error()))
		os.Exit(1)
	}
	sched.Start()
	defer sched.Stop()

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware (logging, recovery, CORS)
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = cfg.CORSAllowedOrigins
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	r.Use(cors.New(corsConfig))

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	handlers.RegisterRoutes(r, cfg, serviceContainer)

	logger.Info("Server starting", slog.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("Server failed to run", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// runMigrations applies all pending "up" migrations from the migrations
// directory using a temporary database/sql connection.
func runMigrations(cfg *config.Config, logger *slog.Logger) error {
	logger.Info("Running database migrations...")

	// Open a temporary standard sql.DB connection for migrations,
	// using the pgx/v5/stdlib driver to be compatible with the main pool.
	migrationDB, err := sql.Open("pgx", cfg.DatabaseURL)
	if err != nil {
		return err
	}
	if err := migrationDB.Ping(); err != nil {
		migrationDB.Close()
		return err
	}

	driver, err := postgres.WithInstance(migrationDB, &postgres.Config{})
	if err != nil {
		migrationDB.Close()
		return err
	}

	m, err := migrate.NewWithDatabaseInstance("file://migrations", "postgres", driver)
	if err != nil {
		migrationDB.Close()
		return err
	}

	err = m.Up()
	if err != nil && err != migrate.ErrNoChange {
		m.Close()
		return err
	}

	sourceErr, dbErr := m.Close()
	if sourceErr != nil {
		return sourceErr
	}
	if dbErr != nil {
		return dbErr
	}

	if err == migrate.ErrNoChange {
		logger.Info("No new migrations to apply.")
	} else {
		logger.Info("Database migrations applied successfully.")
	}
	return nil
}
