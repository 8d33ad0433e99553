package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"moneta/internal/amqp"
	"moneta/internal/analysis"
	"moneta/internal/config"
	apphttp "moneta/internal/http"
	"moneta/internal/llm"
	"moneta/internal/log"
	"moneta/internal/storage"
)

func main() {
	// Load .env file for local development (ignore errors in production/docker)
	_ = godotenv.Load()

	logger := log.New(slog.LevelInfo, log.ComponentApp)
	log.SetDefault(logger)

	logger.Info("Starting moneta server")

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", log.FieldError, err)
		os.Exit(1)
	}

	repo, err := storage.NewSQLiteRepository(cfg.SQLiteDBPath)
	if err != nil {
		logger.Error("Failed to initialize SQLite repository", log.FieldError, err, "path", cfg.SQLiteDBPath)
		os.Exit(1)
	}
	defer repo.Close()

	// A missing or half-configured provider is not fatal: the analysis
	// pipeline serves rule-based insights instead.
	var client llm.Client
	if cfg.ProviderConfigured() {
		client, err = llm.NewClient(providerConfig(cfg))
		if err != nil && !errors.Is(err, llm.ErrNotConfigured) {
			logger.Error("Failed to initialize LLM client", log.FieldError, err, log.FieldProvider, cfg.LLMProvider)
			os.Exit(1)
		}
	}
	if client != nil {
		logger.Info("LLM client initialized", log.FieldProvider, cfg.LLMProvider, log.FieldModel, client.Model())
	} else {
		logger.Info("LLM provider not configured, analyses will use the rule-based fallback")
	}

	var publisher analysis.ExportPublisher
	if cfg.AMQPURL != "" {
		amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Error("Failed to initialize AMQP client", log.FieldError, err)
			os.Exit(1)
		}
		defer amqpClient.Close()
		publisher = amqpClient
		logger.Info("AMQP client initialized", "exchange", cfg.AMQPExchange, "queue", cfg.AMQPQueue)
	} else {
		logger.Info("AMQP disabled - no AMQP_URL provided")
	}

	accessor := analysis.NewAccessor(repo, logger)
	requester := analysis.NewRequester(client, cfg.ProviderTimeout, logger)
	svc := analysis.NewService(repo, accessor, requester, publisher, analysis.Options{
		WindowMonths: cfg.AnalysisWindowMonths,
		CacheSize:    cfg.AnalysisCacheSize,
		CacheTTL:     cfg.AnalysisCacheTTL,
	}, logger)

	srv := apphttp.NewServer(":"+cfg.Port, repo, svc)

	// Configure server timeouts and limits
	srv.ReadTimeout = 10 * time.Second
	srv.WriteTimeout = 10 * time.Second
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16 // 64KB

	// Graceful shutdown handling
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigChan
		logger.Info("Shutdown signal received", "signal", sig.String())

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown error", log.FieldError, err)
		}
		cancel()
	}()

	logger.Info("Starting moneta server", "port", cfg.Port)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("Server error", log.FieldError, err, "port", cfg.Port)
		os.Exit(1)
	}

	<-ctx.Done()
	logger.Info("Server stopped gracefully")
}

// providerConfig maps the application configuration onto the selected
// provider's client settings.
func providerConfig(cfg *config.Config) llm.Config {
	c := llm.Config{Provider: cfg.LLMProvider}
	switch strings.ToLower(cfg.LLMProvider) {
	case "anthropic":
		c.APIKey = cfg.AnthropicAPIKey
		c.Model = cfg.AnthropicModel
	default:
		c.APIKey = cfg.GeminiAPIKey
		c.ProjectID = cfg.GeminiProjectID
		c.Location = cfg.GeminiLocation
		c.Model = cfg.GeminiModel
	}
	return c
}
