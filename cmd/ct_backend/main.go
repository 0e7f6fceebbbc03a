package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/SscSPs/closing_tracker/internal/core/services"
	"github.com/SscSPs/closing_tracker/internal/handlers"
	"github.com/SscSPs/closing_tracker/internal/middleware"
	"github.com/SscSPs/closing_tracker/internal/platform/app"
	"github.com/SscSPs/closing_tracker/internal/platform/config"
	"github.com/SscSPs/closing_tracker/internal/utils"
	"github.com/gin-gonic/gin"
)

const shutdownTimeout = 15 * time.Second

// @title Transaction Completion Tracker API
// @version 1.0
// @description Closing checklists, documents, payments, key dates and post-closing handover for business sale transactions.

// @host localhost:8080
// @BasePath /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @security BearerAuth
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg.LogLevel)
	slog.SetDefault(logger)

	if err := run(cfg, logger); err != nil {
		logger.Error("Server exited with error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rt, err := app.Build(ctx, cfg, logger, app.Options{Migrate: true})
	if err != nil {
		return err
	}
	defer rt.Close()

	posthogClient := utils.InitializePosthogClient(cfg.PosthogAPIKey, cfg.PosthogEndpoint, logger)
	defer posthogClient.Close()

	sweeper := services.NewOverdueSweeper(rt.Services.Payment, cfg.OverdueSweepInterval)
	sweepDone := make(chan struct{})
	go func() {
		defer close(sweepDone)
		sweeper.Run(middleware.WithLogger(ctx, logger.With(slog.String("component", "overdue_sweeper"))))
	}()

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())
	if err := r.SetTrustedProxies(nil); err != nil {
		return err
	}

	if err := handlers.RegisterRoutes(r, cfg, rt.Services, handlers.RouterDeps{
		Posthog: posthogClient,
		Files:   rt.Files,
	}); err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("Server starting", slog.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		stop()
		<-sweepDone
		return err
	case <-ctx.Done():
	}

	logger.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	<-sweepDone
	logger.Info("Server stopped")
	return nil
}
