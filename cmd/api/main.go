// Package main is the entrypoint for the June API server.
package main

import (
	"log/slog"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"

	"github.com/junelabs/june/internal/auth"
	"github.com/junelabs/june/internal/config"
	"github.com/junelabs/june/internal/groq"
	"github.com/junelabs/june/internal/handler"
	"github.com/junelabs/june/internal/middleware"
	"github.com/junelabs/june/internal/ratelimit"
	"github.com/junelabs/june/internal/repository"
	"github.com/junelabs/june/internal/server"
	"github.com/junelabs/june/internal/service"
)

// Rate limit windows, matching the advisory abuse-protection budgets:
// a broad window for all API traffic and a tight one for AI calls.
const (
	generalLimit  = 100
	generalWindow = 15 * time.Minute
	aiLimit       = 20
	aiWindow      = 60 * time.Second
)

func main() {
	// Load .env if present; real environments set variables directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := initLogger(cfg)

	// Seed the credential store synchronously so the default account is
	// available for the very first request.
	users, err := repository.NewInMemory(repository.DefaultSeed)
	if err != nil {
		logger.Error("failed to seed user store", "error", err)
		os.Exit(1)
	}
	logger.Info("user store seeded", "users", len(repository.DefaultSeed))

	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTTTL)

	groqClient := groq.NewClient(cfg.GroqAPIKey).
		WithBaseURL(cfg.GroqBaseURL).
		WithModel(cfg.GroqModel).
		WithTimeout(cfg.GroqTimeout)

	chatService := service.NewChatService(groqClient, logger)

	healthHandler := handler.NewHealthHandler(users, cfg.AppEnv)
	authHandler := handler.NewAuthHandler(users, tokens, logger)
	chatHandler := handler.NewChatHandler(chatService, logger)

	r := setupRouter(healthHandler, authHandler, chatHandler, tokens, cfg, logger)

	srv := server.New(
		r,
		cfg.AppPort,
		cfg.ReadTimeout,
		cfg.WriteTimeout,
		cfg.ShutdownTimeout,
		logger,
	)

	logger.Info("starting server",
		"port", cfg.AppPort,
		"env", cfg.AppEnv,
		"model", cfg.GroqModel,
	)

	if err := srv.Run(); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}

// initLogger initializes the slog logger based on configuration.
func initLogger(cfg *config.Config) *slog.Logger {
	var h slog.Handler

	opts := &slog.HandlerOptions{
		Level: parseLogLevel(cfg.LogLevel),
	}

	if cfg.LogFormat == "json" {
		h = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		h = slog.NewTextHandler(os.Stdout, opts)
	}

	logger := slog.New(h)
	slog.SetDefault(logger)

	return logger
}

// parseLogLevel converts string log level to slog.Level.
func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// setupRouter configures the chi router with all routes and middleware.
func setupRouter(
	healthHandler *handler.HealthHandler,
	authHandler *handler.AuthHandler,
	chatHandler *handler.ChatHandler,
	tokens *auth.TokenManager,
	cfg *config.Config,
	logger *slog.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recoverer(logger))

	securityCfg := middleware.DefaultSecurityConfig()
	securityCfg.IsDevelopment = cfg.IsDevelopment()
	securityCfg.MaxRequestBodySize = cfg.MaxRequestBodySize
	r.Use(middleware.Security(securityCfg))
	r.Use(middleware.MaxBodySize(securityCfg.MaxRequestBodySize))

	corsCfg := middleware.DefaultCORSConfig()
	corsCfg.AllowedOrigins = cfg.GetCORSAllowedOrigins()
	r.Use(middleware.CORS(corsCfg))

	authCfg := middleware.AuthConfig{
		Logger: logger,
		Tokens: tokens,
	}

	rateLimitCfg := middleware.RateLimitConfig{
		Logger:  logger,
		Enabled: cfg.RateLimitEnabled,
		General: ratelimit.New(generalLimit, generalWindow),
		AI:      ratelimit.New(aiLimit, aiWindow),
	}

	r.Route("/api", func(r chi.Router) {
		// The general window covers all API traffic, public routes included.
		r.Use(middleware.RateLimitGeneral(rateLimitCfg))

		r.Get("/health", healthHandler.Health)
		r.Post("/auth/login", authHandler.Login)

		r.Route("/ai", func(r chi.Router) {
			r.Use(middleware.Auth(authCfg))
			r.Use(middleware.RateLimitAI(rateLimitCfg))
			r.Post("/chat", chatHandler.Chat)
		})
	})

	r.NotFound(handler.NotFound)
	r.MethodNotAllowed(handler.MethodNotAllowed)

	return r
}
