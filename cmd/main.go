package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/Dosada05/tournament-bracket/brackets"
	"github.com/Dosada05/tournament-bracket/concurrency"
	"github.com/Dosada05/tournament-bracket/config"
	"github.com/Dosada05/tournament-bracket/db"
	"github.com/Dosada05/tournament-bracket/handlers"
	"github.com/Dosada05/tournament-bracket/middleware"
	"github.com/Dosada05/tournament-bracket/notifications"
	"github.com/Dosada05/tournament-bracket/repositories"
	api "github.com/Dosada05/tournament-bracket/routes"
	"github.com/Dosada05/tournament-bracket/services"
	"github.com/Dosada05/tournament-bracket/storage"
)

// @title Tournament Bracket API
// @version 1.0
// @description Elimination brackets, result reporting and prize settlement.
// @BasePath /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	if err := run(); err != nil {
		slog.Error("application failed", slog.Any("error", err))
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	level, _ := cfg.SlogLevel()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	logger.Info("configuration loaded", slog.Int("port", cfg.ServerPort), slog.String("notifier", cfg.Notifier))

	deps := services.Dependencies{
		Locks:  concurrency.NewLockManager(),
		Logger: logger,
	}

	var dbConn *sql.DB
	if cfg.DatabaseURL != "" {
		if cfg.RunMigrations {
			if err := db.Migrate(cfg.DatabaseURL, logger); err != nil {
				return fmt.Errorf("failed to run migrations: %w", err)
			}
		}

		dbConn, err = db.Connect(cfg.DatabaseURL, 5*time.Second)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer func() {
			if err := dbConn.Close(); err != nil {
				logger.Error("failed to close database connection", slog.Any("error", err))
			} else {
				logger.Info("database connection closed")
			}
		}()
		logger.Info("database connection established")

		deps.Tournaments = repositories.NewPostgresTournamentRepository(dbConn)
		deps.Brackets = repositories.NewCachedBracketRepository(repositories.NewPostgresBracketRepository(dbConn), cfg.BracketCacheSize)
		deps.Teams = repositories.NewPostgresTeamRepository(dbConn)
		deps.Tx = repositories.NewSQLTransactor(dbConn, logger)
	} else {
		logger.Warn("DATABASE_URL is empty, using in-memory stores")
		deps.Tournaments = repositories.NewMemoryTournamentRepository()
		deps.Brackets = repositories.NewMemoryBracketRepository()
		deps.Teams = repositories.NewMemoryTeamRepository()
	}

	switch cfg.Notifier {
	case config.NotifierOutbox:
		deps.Notifier = notifications.NewOutboxNotifier(dbConn)
	case config.NotifierKafka:
		kafkaNotifier := notifications.NewKafkaNotifier(cfg.KafkaBrokers, cfg.KafkaTopic, logger)
		defer func() {
			if err := kafkaNotifier.Close(); err != nil {
				logger.Error("failed to close kafka writer", slog.Any("error", err))
			}
		}()
		deps.Notifier = kafkaNotifier
	default:
		deps.Notifier = notifications.NewLogNotifier(logger)
	}
	logger.Info("notifier initialized", slog.String("notifier", cfg.Notifier))

	if cfg.R2Enabled() {
		uploader, err := storage.NewCloudflareR2Uploader(context.Background(), storage.CloudflareR2UploaderConfig{
			AccountID:       cfg.R2AccountID,
			AccessKeyID:     cfg.R2AccessKeyID,
			SecretAccessKey: cfg.R2SecretAccessKey,
			BucketName:      cfg.R2BucketName,
			PublicBaseURL:   cfg.R2PublicBaseURL,
		})
		if err != nil {
			return fmt.Errorf("failed to initialize Cloudflare R2 uploader: %w", err)
		}
		deps.Archiver = storage.NewBracketArchiver(uploader)
		logger.Info("Cloudflare R2 archive enabled")
	}

	broker := brackets.NewBroker(logger)
	deps.Publisher = broker

	bracketService := services.NewBracketService(deps)
	matchService := services.NewMatchService(deps)
	payoutService := services.NewPayoutService(deps)
	logger.Info("services initialized")

	validator := handlers.NewValidator()
	var pinger handlers.Pinger
	if dbConn != nil {
		pinger = dbConn
	}

	router := chi.NewRouter()
	api.SetupRoutes(router, api.Handlers{
		Tournament: handlers.NewTournamentHandler(bracketService, payoutService, validator, logger),
		Match:      handlers.NewMatchHandler(bracketService, matchService, validator, logger),
		WebSocket:  handlers.NewWebSocketHandler(broker, bracketService, cfg.CORSAllowedOrigins, logger),
		Health:     handlers.NewHealthHandler(pinger, logger),
	}, middleware.NewAuthenticator(cfg.JWTSecretKey, logger), cfg.CORSAllowedOrigins)
	logger.Info("routes configured")

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("starting server", slog.String("address", server.Addr))
		serverErrors <- server.ListenAndServe()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		logger.Info("server stopped gracefully")
	case sig := <-quit:
		logger.Info("shutdown signal received", slog.String("signal", sig.String()))
		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancelShutdown()

		logger.Info("shutting down server", slog.Duration("timeout", 15*time.Second))
		if err := server.Shutdown(shutdownCtx); err != nil {
			if closeErr := server.Close(); closeErr != nil {
				logger.Error("failed to force close server", slog.Any("error", closeErr))
			}
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		logger.Info("server shutdown complete")
	}
	logger.Info("application exited")
	return nil
}
