package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	_ "github.com/lib/pq"

	"github.com/piotronm/tourney-backend-sub001/config"
	"github.com/piotronm/tourney-backend-sub001/db"
	"github.com/piotronm/tourney-backend-sub001/handlers"
	"github.com/piotronm/tourney-backend-sub001/live"
	"github.com/piotronm/tourney-backend-sub001/middleware"
	"github.com/piotronm/tourney-backend-sub001/repositories"
	"github.com/piotronm/tourney-backend-sub001/routes"
	"github.com/piotronm/tourney-backend-sub001/services"
	"github.com/piotronm/tourney-backend-sub001/storage"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("configuration loaded", slog.Int("port", cfg.ServerPort))

	dbConn, err := db.Connect(cfg.DatabaseURL, 5*time.Second)
	if err != nil {
		logger.Error("failed to connect to database", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := dbConn.Close(); err != nil {
			logger.Error("failed to close database connection", slog.Any("error", err))
		}
	}()
	logger.Info("database connection established")

	var uploader storage.FileUploader
	if cfg.R2Configured() {
		uploader, err = storage.NewCloudflareR2Uploader(storage.CloudflareR2UploaderConfig{
			AccountID:       cfg.R2AccountID,
			AccessKeyID:     cfg.R2AccessKeyID,
			SecretAccessKey: cfg.R2SecretAccessKey,
			BucketName:      cfg.R2Bucket,
			PublicBaseURL:   cfg.R2PublicBaseURL,
		})
		if err != nil {
			logger.Error("failed to initialize R2 uploader", slog.Any("error", err))
			os.Exit(1)
		}
		logger.Info("R2 uploader initialized", slog.String("bucket", cfg.R2Bucket))
	} else {
		logger.Warn("R2 not configured, export publishing disabled")
	}

	wsHub := live.NewHub(logger)
	go wsHub.Run()
	logger.Info("websocket hub started")

	userRepo := repositories.NewPostgresUserRepository(dbConn)
	tournamentRepo := repositories.NewPostgresTournamentRepository(dbConn)
	divisionRepo := repositories.NewPostgresDivisionRepository(dbConn)
	teamRepo := repositories.NewPostgresTeamRepository(dbConn)
	poolRepo := repositories.NewPostgresPoolRepository(dbConn)
	matchRepo := repositories.NewPostgresMatchRepository(dbConn)
	logger.Info("repositories initialized")

	authService := services.NewAuthService(userRepo, cfg.JWTSecretKey)
	tournamentService := services.NewTournamentService(tournamentRepo, divisionRepo)
	divisionService := services.NewDivisionService(tournamentRepo, divisionRepo, teamRepo, poolRepo)
	teamService := services.NewTeamService(divisionRepo, teamRepo)
	scheduleService := services.NewScheduleService(dbConn, divisionRepo, teamRepo, poolRepo, matchRepo, logger)
	matchService := services.NewMatchService(matchRepo, teamRepo, wsHub, logger)
	standingsService := services.NewStandingsService(divisionRepo, teamRepo, poolRepo, matchRepo)
	exportService := services.NewExportService(scheduleService, standingsService, teamRepo, uploader)
	logger.Info("services initialized")

	authenticator := middleware.NewAuthenticator(cfg.JWTSecretKey)

	router := chi.NewRouter()
	routes.SetupRoutes(
		router,
		authenticator,
		handlers.NewAuthHandler(authService),
		handlers.NewTournamentHandler(tournamentService),
		handlers.NewDivisionHandler(divisionService),
		handlers.NewTeamHandler(teamService),
		handlers.NewScheduleHandler(scheduleService),
		handlers.NewMatchHandler(matchService),
		handlers.NewStandingsHandler(standingsService),
		handlers.NewExportHandler(exportService),
		handlers.NewWebSocketHandler(wsHub),
	)
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
			logger.Error("server error", slog.Any("error", err))
			os.Exit(1)
		}
		logger.Info("server stopped gracefully")
	case sig := <-quit:
		logger.Info("shutdown signal received", slog.String("signal", sig.String()))
		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancelShutdown()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", slog.Any("error", err))
			if closeErr := server.Close(); closeErr != nil {
				logger.Error("failed to force close server", slog.Any("error", closeErr))
			}
			os.Exit(1)
		}
		logger.Info("server shutdown complete")
	}
	logger.Info("application exited")
}
