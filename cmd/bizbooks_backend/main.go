package main

import (
	"context"
	"database/sql"
	"log/slog"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	migrate "github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/bizbookshq/biz_books_app/internal/adapters/database/pgsql"
	portssvc "github.com/bizbookshq/biz_books_app/internal/core/ports/services"
	"github.com/bizbookshq/biz_books_app/internal/core/services"
	"github.com/bizbookshq/biz_books_app/internal/handlers"
	"github.com/bizbookshq/biz_books_app/internal/middleware"
	"github.com/bizbookshq/biz_books_app/pkg/config"
	"github.com/bizbookshq/biz_books_app/pkg/database"
)

// @title BizBooks Backend API
// @version 1.0
// @description Accounting and invoicing backend for small businesses.

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

	if err := runMigrations(logger, cfg.DatabaseURL); err != nil {
		logger.Error("Failed to apply migrations", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware (logging, recovery, CORS, rate limiting)
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = cfg.AllowedOrigins
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	r.Use(cors.New(corsConfig))

	rate, err := limiter.NewRateFromFormatted(cfg.RateLimit)
	if err != nil {
		logger.Error("Invalid rate limit format", slog.String("rate", cfg.RateLimit), slog.String("error", err.Error()))
		os.Exit(1)
	}
	r.Use(middleware.RateLimit(limiter.New(memory.NewStore(), rate)))

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Build the service container from the pgsql adapters
	container := buildServices(dbPool, cfg)

	handlers.RegisterRoutes(r, cfg, container)

	logger.Info("Server starting", slog.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("Server failed to run", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// buildServices wires repositories into services and bundles them for the
// HTTP layer.
func buildServices(dbPool *pgxpool.Pool, cfg *config.Config) *portssvc.ServiceContainer {
	userRepo := pgsql.NewUserRepository(dbPool)
	partyRepo := pgsql.NewPartyRepository(dbPool)
	itemRepo := pgsql.NewItemRepository(dbPool)
	txnRepo := pgsql.NewTransactionRepository(dbPool)
	bnplRepo := pgsql.NewBnplLimitRepository(dbPool)
	syncRepo := pgsql.NewSyncLogRepository(dbPool)

	userSvc := services.NewUserService(userRepo)
	bnplSvc := services.NewBnplService(bnplRepo, partyRepo)

	return &portssvc.ServiceContainer{
		Auth:        services.NewAuthService(userSvc, cfg),
		GoogleOAuth: services.NewGoogleOAuthService(cfg),
		User:        userSvc,
		Party:       services.NewPartyService(partyRepo, txnRepo),
		Item:        services.NewItemService(itemRepo),
		Transaction: services.NewTransactionService(txnRepo, partyRepo, bnplSvc),
		Bnpl:        bnplSvc,
		SyncLog:     services.NewSyncLogService(syncRepo),
		Reporting:   services.NewReportingService(txnRepo),
	}
}

// runMigrations applies all pending migrations using a temporary database/sql
// connection over the pgx stdlib driver.
func runMigrations(logger *slog.Logger, databaseURL string) error {
	logger.Info("Running database migrations...")

	migrationDB, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := migrationDB.Close(); cerr != nil {
			logger.Error("Error closing migration DB connection", slog.String("error", cerr.Error()))
		}
	}()
	if err := migrationDB.Ping(); err != nil {
		return err
	}

	driver, err := postgres.WithInstance(migrationDB, &postgres.Config{})
	if err != nil {
		return err
	}

	m, err := migrate.NewWithDatabaseInstance("file://migrations", "postgres", driver)
	if err != nil {
		return err
	}

	err = m.Up()
	if err != nil && err != migrate.ErrNoChange {
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
