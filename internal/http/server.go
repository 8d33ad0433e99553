// Package http exposes the ledger and analysis APIs as a JSON service.
package http

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"moneta/internal/core"
)

// LedgerStore is the storage surface the HTTP handlers need.
type LedgerStore interface {
	CreateProfile(ctx context.Context, p core.Profile) (core.Profile, error)
	GetProfile(ctx context.Context, id int64) (core.Profile, error)
	CreateCategory(ctx context.Context, c core.Category) (core.Category, error)
	ListCategories(ctx context.Context, profileID int64) ([]core.Category, error)
	CreateRecord(ctx context.Context, kind core.LedgerKind, rec core.LedgerRecord) (core.LedgerRecord, error)
	DeleteRecord(ctx context.Context, kind core.LedgerKind, profileID, id int64) error
	RecordsByProfile(ctx context.Context, profileID int64, kind core.LedgerKind) ([]core.LedgerRecord, error)
	RecordsByMonth(ctx context.Context, profileID int64, kind core.LedgerKind, year, month int) ([]core.LedgerRecord, error)
	TotalByProfile(ctx context.Context, profileID int64, kind core.LedgerKind) (int64, error)
}

// AnalysisService is the pipeline surface the AI endpoints need.
type AnalysisService interface {
	Health(ctx context.Context) error
	GetFinancialAnalysis(ctx context.Context, profileID int64, refresh bool) (core.AnalysisResult, error)
}

type Server struct {
	http.Server
	store        LedgerStore
	analysis     AnalysisService
	rateLimiter  *rateLimiter
	shutdownOnce sync.Once
}

// NewServer configures routes and returns a ready-to-run server.
func NewServer(addr string, store LedgerStore, analysisSvc AnalysisService) *Server {
	mux := http.NewServeMux()

	s := &Server{
		Server: http.Server{
			Addr:    addr,
			Handler: mux,
		},
		store:       store,
		analysis:    analysisSvc,
		rateLimiter: newRateLimiter(),
	}

	mux.HandleFunc("/healthz", handleHealth)
	mux.HandleFunc("/readyz", handleReady)

	mux.HandleFunc("/api/v1.0/profiles", s.withMiddleware(s.handleProfiles))
	mux.HandleFunc("/api/v1.0/categories", s.withMiddleware(s.handleCategories))
	mux.HandleFunc("/api/v1.0/incomes", s.withMiddleware(s.handleLedger(core.KindIncome)))
	mux.HandleFunc("/api/v1.0/expenses", s.withMiddleware(s.handleLedger(core.KindExpense)))

	mux.HandleFunc("/api/v1.0/ai/health", s.withMiddleware(s.handleAIHealth))
	mux.HandleFunc("/api/v1.0/ai/financial-analysis", s.withMiddleware(s.handleFinancialAnalysis))
	mux.HandleFunc("/api/v1.0/ai/quick-insights", s.withMiddleware(s.handleQuickInsights))

	return s
}

// Shutdown stops the server and its background routines.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		if s.rateLimiter != nil {
			s.rateLimiter.stop()
		}
		shutdownErr = s.Server.Shutdown(ctx)
	})
	return shutdownErr
}

// withMiddleware adds request IDs, access logging, rate limiting on writes,
// and baseline security headers.
func (s *Server) withMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ip := clientIP(r)

		requestID := generateRequestID()
		ctx := context.WithValue(r.Context(), requestIDKey{}, requestID)
		r = r.WithContext(ctx)

		slog.InfoContext(ctx, "Request started",
			"request_id", requestID,
			"method", r.Method,
			"url", r.URL.Path,
			"client_ip", ip)

		if r.Method != http.MethodGet && !s.rateLimiter.allow(ip) {
			slog.WarnContext(ctx, "Rate limit exceeded", "client_ip", ip, "url", r.URL.Path)
			w.Header().Set("Retry-After", "60")
			writeError(w, http.StatusTooManyRequests, "Rate limit exceeded. Please try again later.")
			return
		}

		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next(rw, r)

		slog.InfoContext(ctx, "Request completed",
			"request_id", requestID,
			"method", r.Method,
			"url", r.URL.Path,
			"status", rw.statusCode,
			"duration_ms", time.Since(start).Milliseconds(),
			"client_ip", ip)
	}
}

type requestIDKey struct{}

// responseWriter wraps http.ResponseWriter to capture the status code.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func handleReady(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}
