// Package llm provides clients for the language model providers used to
// generate financial insights.
package llm

import (
	"context"
	"errors"
)

// ErrNotConfigured indicates that no provider credentials are present.
// Callers treat this differently from a call failure: the analysis
// pipeline falls back to the rule-based analyzer without logging an
// error.
var ErrNotConfigured = errors.New("llm provider not configured")

// ErrConnectivity indicates that the provider could not be reached during
// the connection probe.
var ErrConnectivity = errors.New("llm provider unreachable")

// ErrProvider indicates that a generation call failed after a successful
// probe.
var ErrProvider = errors.New("llm generation failed")

// Client is the minimal surface the analysis pipeline needs from a
// language model provider.
type Client interface {
	// Generate sends a single prompt and returns the raw text response.
	Generate(ctx context.Context, prompt string) (string, error)
	// Model returns the model identifier used for generation.
	Model() string
}

// Config holds provider settings. Only the fields relevant to the
// selected provider need to be set.
type Config struct {
	Provider  string
	APIKey    string
	ProjectID string
	Location  string
	Model     string
	MaxTokens int64
}
