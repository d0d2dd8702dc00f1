package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/SAP-F-2025/question-parser-service/internal/cache"
	"github.com/SAP-F-2025/question-parser-service/internal/handlers"
	"github.com/SAP-F-2025/question-parser-service/internal/pdf"
	"github.com/SAP-F-2025/question-parser-service/internal/repositories"
	"github.com/SAP-F-2025/question-parser-service/internal/repositories/postgres"
	"github.com/SAP-F-2025/question-parser-service/internal/services"
	"github.com/SAP-F-2025/question-parser-service/internal/utils"
	"github.com/SAP-F-2025/question-parser-service/internal/validator"
	"github.com/SAP-F-2025/question-parser-service/pkg"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 15 * time.Second

var servePort string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	Long: `Start the question parser HTTP API.

Redis must be reachable at startup. Postgres is optional: without DATABASE_URL
finalized question sets are cached but not persisted.

Examples:
  question-parser serve              # PORT from the environment (default 8000)
  question-parser serve --port 9000`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&servePort, "port", "", "Port to listen on (overrides PORT)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if servePort != "" {
		cfg.Port = servePort
	}

	logger := utils.NewLogger(cfg.IsProduction())
	slogger := utils.ToSlogLogger(logger)

	redisClient, err := pkg.NewRedisClient(ctx, cfg)
	if err != nil {
		logger.LogError(err, "Redis unavailable", "url", cfg.RedisURL)
		return err
	}
	defer redisClient.Close()

	var repo repositories.QuestionSetRepository
	if cfg.DatabaseURL != "" {
		db, err := pkg.InitDatabase(cfg)
		if err != nil {
			return err
		}
		if sqlDB, err := db.DB(); err == nil {
			defer sqlDB.Close()
		}
		repo = postgres.NewQuestionSetPostgreSQL(db)
	} else {
		logger.Warn("DATABASE_URL not set, finalized question sets will not be persisted")
	}

	rules := validator.New(cfg.SchemaMode)
	extractor, err := newExtractor(cfg, rules, slogger)
	if err != nil {
		return err
	}

	publisher, err := cfg.Events.CreateEventPublisher(slogger)
	if err != nil {
		return fmt.Errorf("create event publisher: %w", err)
	}
	defer func() {
		if err := publisher.Close(); err != nil {
			logger.Error("Failed to close event publisher", "error", err)
		}
	}()

	serviceManager := services.NewServiceManager(services.Dependencies{
		TextSource:     pdf.NewFitzSource(),
		Extractor:      extractor,
		Cache:          cache.NewRedisCache(redisClient, cfg.CacheTTL, slogger),
		Repository:     repo,
		Publisher:      publisher,
		Validator:      rules,
		MaxUploadBytes: cfg.MaxUploadBytes,
		FinalCacheTTL:  cfg.FinalCacheTTL,
		Logger:         slogger,
	})

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.MaxMultipartMemory = cfg.MaxUploadBytes
	handlers.SetupMiddleware(router, logger, cfg.CORSAllowedOrigins)
	handlers.NewHandlerManager(serviceManager, logger, cfg.MaxUploadBytes).SetupRoutes(router)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Starting question parser service", "port", cfg.Port, "environment", cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	return nil
}
