package http

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"moneta/internal/core"
)

func (s *Server) handleAIHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}

	status := "online"
	if err := s.analysis.Health(r.Context()); err != nil {
		slog.WarnContext(r.Context(), "AI provider health check failed", "error", err)
		status = "degraded"
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"service":   "AI Financial Assistant",
		"status":    status,
		"timestamp": time.Now(),
		"endpoints": map[string]string{
			"financialAnalysis": "/api/v1.0/ai/financial-analysis",
			"quickInsights":     "/api/v1.0/ai/quick-insights",
			"health":            "/api/v1.0/ai/health",
		},
	})
}

func (s *Server) handleFinancialAnalysis(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}

	profileID, err := queryInt64(r, "profileId")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	refresh := strings.EqualFold(r.URL.Query().Get("refresh"), "true")

	result, err := s.analysis.GetFinancialAnalysis(r.Context(), profileID, refresh)
	if err != nil {
		if errors.Is(err, core.ErrProfileNotFound) {
			writeError(w, http.StatusNotFound, "profile not found")
			return
		}
		slog.ErrorContext(r.Context(), "Financial analysis failed", "profile_id", profileID, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to generate analysis")
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleQuickInsights(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}

	profileID, err := queryInt64(r, "profileId")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message":   "Quick insights feature coming soon",
		"profileId": profileID,
		"timestamp": time.Now(),
		"tip":       "Add more transactions to get better insights",
		"status":    "success",
	})
}
