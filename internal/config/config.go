package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Config carries all runtime settings, loaded from environment variables.
type Config struct {
	// HTTP server
	Port string

	// Database
	SQLiteDBPath string

	// Generative insight provider
	LLMProvider     string // "gemini" or "anthropic"
	GeminiAPIKey    string
	GeminiProjectID string
	GeminiLocation  string
	GeminiModel     string
	AnthropicAPIKey string
	AnthropicModel  string
	ProviderTimeout time.Duration

	// Analysis
	AnalysisWindowMonths int
	AnalysisCacheTTL     time.Duration
	AnalysisCacheSize    int

	// AMQP (optional; analysis export to the worker)
	AMQPURL      string
	AMQPExchange string
	AMQPQueue    string

	// Google Sheets export (optional; consumed by the worker)
	GoogleSpreadsheetID string
	GoogleSheetName     string
}

func Load() *Config {
	return &Config{
		Port:         getEnv("PORT", "8081"),
		SQLiteDBPath: getEnv("SQLITE_DB_PATH", "./data/moneta.db"),

		LLMProvider:     getEnv("LLM_PROVIDER", "gemini"),
		GeminiAPIKey:    getEnv("GEMINI_API_KEY", ""),
		GeminiProjectID: getEnv("GEMINI_PROJECT_ID", ""),
		GeminiLocation:  getEnv("GEMINI_LOCATION", "us-central1"),
		GeminiModel:     getEnv("GEMINI_MODEL", "gemini-1.5-flash"),
		AnthropicAPIKey: getEnv("ANTHROPIC_API_KEY", ""),
		AnthropicModel:  getEnv("ANTHROPIC_MODEL", "claude-3-5-haiku-latest"),
		ProviderTimeout: getEnvDuration("PROVIDER_TIMEOUT", 30*time.Second),

		AnalysisWindowMonths: getEnvInt("ANALYSIS_WINDOW_MONTHS", 6),
		AnalysisCacheTTL:     getEnvDuration("ANALYSIS_CACHE_TTL", 10*time.Minute),
		AnalysisCacheSize:    getEnvInt("ANALYSIS_CACHE_SIZE", 256),

		AMQPURL:      getEnv("AMQP_URL", ""),
		AMQPExchange: getEnv("AMQP_EXCHANGE", "moneta"),
		AMQPQueue:    getEnv("AMQP_QUEUE", "analysis_exports"),

		GoogleSpreadsheetID: getEnv("GOOGLE_SPREADSHEET_ID", ""),
		GoogleSheetName:     getEnv("GOOGLE_SHEET_NAME", "Analyses"),
	}
}

// Validate checks the configuration and returns all problems at once.
func (c *Config) Validate() error {
	var errs []string

	if port, err := strconv.Atoi(c.Port); err != nil {
		errs = append(errs, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		errs = append(errs, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	if c.SQLiteDBPath == "" {
		errs = append(errs, "SQLite database path cannot be empty")
	} else {
		dir := filepath.Dir(c.SQLiteDBPath)
		if dir != "." && dir != "" {
			if _, err := os.Stat(dir); os.IsNotExist(err) {
				if err := os.MkdirAll(dir, 0755); err != nil {
					errs = append(errs, fmt.Sprintf("cannot create SQLite database directory '%s': %v", dir, err))
				}
			}
		}
	}

	switch c.LLMProvider {
	case "gemini", "anthropic":
	default:
		errs = append(errs, fmt.Sprintf("invalid LLM provider '%s': must be 'gemini' or 'anthropic'", c.LLMProvider))
	}

	if c.ProviderTimeout < time.Second {
		errs = append(errs, fmt.Sprintf("invalid provider timeout %v: must be at least 1 second", c.ProviderTimeout))
	}

	if c.AnalysisWindowMonths < 1 || c.AnalysisWindowMonths > 60 {
		errs = append(errs, fmt.Sprintf("invalid analysis window %d: must be between 1 and 60 months", c.AnalysisWindowMonths))
	}

	if c.AnalysisCacheSize < 1 {
		errs = append(errs, fmt.Sprintf("invalid analysis cache size %d: must be at least 1", c.AnalysisCacheSize))
	}

	if c.AMQPURL != "" {
		if parsed, err := url.Parse(c.AMQPURL); err != nil {
			errs = append(errs, fmt.Sprintf("invalid AMQP URL '%s': %v", c.AMQPURL, err))
		} else if parsed.Scheme != "amqp" && parsed.Scheme != "amqps" {
			errs = append(errs, fmt.Sprintf("invalid AMQP URL scheme '%s': must be 'amqp' or 'amqps'", parsed.Scheme))
		}
		if c.AMQPExchange == "" {
			errs = append(errs, "AMQP exchange name cannot be empty when AMQP URL is provided")
		}
		if c.AMQPQueue == "" {
			errs = append(errs, "AMQP queue name cannot be empty when AMQP URL is provided")
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errs, "\n- "))
	}
	return nil
}

// ProviderConfigured reports whether the selected provider has the
// credentials it needs. A half-configured provider is treated the same as an
// absent one: the analysis pipeline falls back to rule-based insights.
func (c *Config) ProviderConfigured() bool {
	switch c.LLMProvider {
	case "anthropic":
		return c.AnthropicAPIKey != ""
	default:
		return c.GeminiAPIKey != "" && c.GeminiProjectID != ""
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
