// Mentor API - Project tracking and learning-mentor chat server
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

	"github.com/alumnx/mentor-api/internal/api"
	"github.com/alumnx/mentor-api/internal/config"
	"github.com/alumnx/mentor-api/internal/mentor"
	"github.com/alumnx/mentor-api/internal/middleware"
	"github.com/alumnx/mentor-api/internal/store"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
)

const version = "2.0.0"

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	slog.Info("Starting server", "port", cfg.Port, "database", cfg.DatabaseName, "dev", cfg.IsDevelopment())

	// Initialize dependencies.
	connectCtx, connectCancel := context.WithTimeout(context.Background(), 10*time.Second)
	repo, err := store.NewMongo(connectCtx, cfg.MongoURI, cfg.DatabaseName)
	connectCancel()
	if err != nil {
		slog.Error("Failed to initialize database", "error", err)
		os.Exit(1)
	}
	defer func() {
		closeCtx, closeCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer closeCancel()
		if closeErr := repo.Close(closeCtx); closeErr != nil {
			slog.Error("Failed to close repository", "error", closeErr)
		}
	}()
	slog.Info("Database connected", "database", cfg.DatabaseName)

	// Initialize the Gemini completer (optional).
	var completer mentor.Completer
	if cfg.AIEnabled() {
		gemini, err := mentor.NewGeminiCompleter(context.Background(), mentor.GeminiConfig{
			APIKey: cfg.GoogleAPIKey,
			Model:  cfg.GeminiModel,
		})
		if err != nil {
			slog.Error("Failed to initialize Gemini client", "error", err)
			os.Exit(1)
		}
		completer = gemini
		slog.Info("Gemini model initialized", "model", cfg.GeminiModel)
	} else {
		slog.Info("AI completions disabled (GOOGLE_API_KEY not set), general chat uses a fixed reply")
	}

	mentorSvc := mentor.NewService(repo, completer)

	// Initialize handlers.
	baseHandler := api.NewHandler(repo)
	healthHandler := api.NewHealthHandler(repo, version)
	projectHandler := api.NewProjectHandler(baseHandler)
	taskHandler := api.NewTaskHandler(baseHandler)
	goalHandler := api.NewGoalHandler(baseHandler)
	agentHandler := api.NewAgentRegistryHandler(baseHandler)
	chatHandler := api.NewChatHandler(baseHandler, mentorSvc)

	// Setup router.
	r := chi.NewRouter()

	// Global middleware.
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(middleware.CORS([]string{"*"}))

	healthHandler.RegisterRoutes(r)
	projectHandler.RegisterRoutes(r)
	taskHandler.RegisterRoutes(r)
	goalHandler.RegisterRoutes(r)
	agentHandler.RegisterRoutes(r)
	chatHandler.RegisterRoutes(r)

	// Create server. Completion calls can take a while, so the write
	// timeout stays generous.
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Start server.
	go func() {
		slog.Info("Server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for shutdown signal.
	<-ctx.Done()
	stop()

	slog.Info("Shutting down gracefully...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("Server stopped successfully")
}
