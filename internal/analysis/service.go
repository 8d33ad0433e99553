package analysis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"moneta/internal/cache"
	"moneta/internal/core"
	"moneta/internal/llm"
	"moneta/internal/log"
)

// ProfileStore resolves profile identities.
type ProfileStore interface {
	GetProfile(ctx context.Context, id int64) (core.Profile, error)
}

// ExportPublisher announces a finished analysis to interested consumers.
// Publishing is best effort and never fails the request.
type ExportPublisher interface {
	PublishAnalysisExport(ctx context.Context, profileID int64, generatedAt time.Time) error
}

// Options configures a Service.
type Options struct {
	WindowMonths int
	CacheSize    int
	CacheTTL     time.Duration
}

// Service orchestrates the analysis pipeline end to end.
type Service struct {
	profiles     ProfileStore
	accessor     *Accessor
	requester    *Requester
	publisher    ExportPublisher
	results      *cache.LRU[core.AnalysisResult]
	windowMonths int
	logger       *log.Logger

	now func() time.Time
}

// NewService wires the pipeline. publisher may be nil when no message broker
// is configured.
func NewService(profiles ProfileStore, accessor *Accessor, requester *Requester, publisher ExportPublisher, opts Options, logger *log.Logger) *Service {
	windowMonths := opts.WindowMonths
	if windowMonths <= 0 {
		windowMonths = 6
	}
	cacheSize := opts.CacheSize
	if cacheSize <= 0 {
		cacheSize = 256
	}
	cacheTTL := opts.CacheTTL
	if cacheTTL <= 0 {
		cacheTTL = 10 * time.Minute
	}
	return &Service{
		profiles:     profiles,
		accessor:     accessor,
		requester:    requester,
		publisher:    publisher,
		results:      cache.New[core.AnalysisResult](cacheSize, cacheTTL),
		windowMonths: windowMonths,
		logger:       logger.WithComponent(log.ComponentAnalysis),
		now:          time.Now,
	}
}

// Health reports whether the configured provider is reachable right now.
func (s *Service) Health(ctx context.Context) error {
	return s.requester.Probe(ctx)
}

// GetFinancialAnalysis runs the full pipeline for one profile. An unknown
// profile is the only failure that aborts; every provider-side failure
// degrades to the rule-based fallback with Success=false and a populated
// Analysis.
func (s *Service) GetFinancialAnalysis(ctx context.Context, profileID int64, refresh bool) (core.AnalysisResult, error) {
	cacheKey := fmt.Sprintf("profile:%d", profileID)
	if !refresh {
		if cached, ok := s.results.Get(cacheKey); ok {
			s.logger.InfoContext(ctx, "analysis served from cache", log.FieldProfileID, profileID)
			return cached, nil
		}
	}

	profile, err := s.profiles.GetProfile(ctx, profileID)
	if err != nil {
		return core.AnalysisResult{}, fmt.Errorf("resolve profile %d: %w", profileID, err)
	}

	windowEnd := s.now()
	windowStart := windowEnd.AddDate(0, -s.windowMonths, 0)

	var incomes, expenses []core.LedgerRecord
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		incomes = s.accessor.Fetch(gctx, profileID, core.KindIncome, windowStart, windowEnd)
		return nil
	})
	g.Go(func() error {
		expenses = s.accessor.Fetch(gctx, profileID, core.KindExpense, windowStart, windowEnd)
		return nil
	})
	_ = g.Wait()

	summary := Aggregate(profile, incomes, expenses, windowStart, windowEnd)

	result := core.AnalysisResult{
		RawData:   summary,
		Timestamp: s.now(),
	}

	raw, err := s.requester.RequestInsight(ctx, summary)
	switch {
	case err == nil:
		result.Success = true
		result.Analysis = ParseInsight(raw)
		result.ModelUsed = s.requester.Model()
	case errors.Is(err, llm.ErrNotConfigured):
		result.Error = "AI provider is not configured. Please check configuration."
		result.Analysis = FallbackInsight(summary)
	case errors.Is(err, llm.ErrConnectivity):
		s.logger.WarnContext(ctx, "provider unreachable, using fallback analysis",
			log.FieldProfileID, profileID, log.FieldError, err)
		result.Error = "AI provider connection failed. Please check configuration."
		result.Analysis = FallbackInsight(summary)
	default:
		s.logger.ErrorContext(ctx, "insight generation failed, using fallback analysis",
			log.FieldProfileID, profileID, log.FieldError, err)
		result.Error = err.Error()
		result.Analysis = FallbackInsight(summary)
	}

	s.results.Set(cacheKey, result)

	if result.Success && s.publisher != nil {
		if err := s.publisher.PublishAnalysisExport(ctx, profileID, result.Timestamp); err != nil {
			s.logger.WarnContext(ctx, "analysis export publish failed",
				log.FieldProfileID, profileID, log.FieldError, err)
		}
	}

	s.logger.InfoContext(ctx, "analysis completed",
		log.FieldProfileID, profileID,
		log.FieldSuccess, result.Success,
		log.FieldModel, result.ModelUsed)
	return result, nil
}
