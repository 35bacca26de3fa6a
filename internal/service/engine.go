package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/driftware/engagekit/internal/biz/domain"
	"github.com/driftware/engagekit/internal/biz/repo"
	"github.com/driftware/engagekit/internal/biz/usecase"
)

// Report is the aggregated outcome of one discover-and-engage cycle
type Report struct {
	RunID      string
	Discovered []domain.DiscoveredPost
	Engaged    []domain.EngagementResult
	Failed     []domain.EngagementResult
}

// Engine wires adapters, discovery, engagement, and the ledger into one
// pipeline per run
type Engine struct {
	adapters     map[domain.Platform]repo.AdapterRepo
	discoveryUC  *usecase.DiscoveryUsecase
	engagementUC *usecase.EngagementUsecase
	ledger       repo.LedgerRepo
	log          *logrus.Logger
}

// NewEngine creates an engine over the registered adapters and ledger
func NewEngine(
	adapters map[domain.Platform]repo.AdapterRepo,
	discoveryUC *usecase.DiscoveryUsecase,
	engagementUC *usecase.EngagementUsecase,
	ledger repo.LedgerRepo,
	log *logrus.Logger,
) *Engine {
	return &Engine{
		adapters:     adapters,
		discoveryUC:  discoveryUC,
		engagementUC: engagementUC,
		ledger:       ledger,
		log:          log,
	}
}

// Login authenticates an adapter. Unlike per-post failures, a missing
// adapter here is a hard error: the caller asked for a platform that was
// never constructed.
func (e *Engine) Login(ctx context.Context, platform domain.Platform, credentials map[string]string) error {
	adapter, ok := e.adapters[platform]
	if !ok {
		return fmt.Errorf("no adapter for platform %q", platform)
	}
	return adapter.Login(ctx, credentials)
}

// Discover runs the discovery phase only
func (e *Engine) Discover(ctx context.Context, cfg domain.DiscoveryConfig) ([]domain.DiscoveredPost, error) {
	return e.discoveryUC.Discover(ctx, cfg)
}

// DiscoverAndEngage runs the full pipeline: discover posts, drop those the
// ledger has already seen, then engage per platform with every outcome
// recorded to the ledger
func (e *Engine) DiscoverAndEngage(
	ctx context.Context,
	audience domain.TargetAudience,
	discoveryCfg domain.DiscoveryConfig,
	engagementCfg domain.EngagementConfig,
) (*Report, error) {
	if err := engagementCfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid engagement config: %w", err)
	}
	engagementCfg.Audience = audience

	runID := uuid.NewString()
	log := e.log.WithField("run_id", runID)

	discovered, err := e.discoveryUC.Discover(ctx, discoveryCfg)
	if err != nil {
		return nil, fmt.Errorf("discovery: %w", err)
	}
	log.WithField("count", len(discovered)).Info("discovery complete")

	report := &Report{RunID: runID, Discovered: discovered}

	toEngage := discovered
	if engagementCfg.SkipAlreadyEngaged {
		toEngage = nil
		for _, d := range discovered {
			engaged, err := e.ledger.IsEngaged(ctx, d.Post.PostID)
			if err != nil {
				return nil, fmt.Errorf("dedup check: %w", err)
			}
			if !engaged {
				toEngage = append(toEngage, d)
			}
		}
		log.WithField("count", len(toEngage)).Info("filtered already-engaged posts")
	}

	for _, platform := range discoveryCfg.Platforms {
		adapter, ok := e.adapters[platform]
		if !ok {
			log.WithField("platform", platform).Warn("no adapter registered, skipping engagement")
			continue
		}

		var posts []domain.Post
		for _, d := range toEngage {
			if d.Post.Platform == platform {
				posts = append(posts, d.Post)
			}
		}
		if len(posts) == 0 {
			continue
		}

		log.WithFields(logrus.Fields{
			"platform": platform,
			"count":    len(posts),
		}).Info("engaging posts")

		results := e.engagementUC.Engage(ctx, posts, adapter, engagementCfg, e.recordSink(ctx, runID))

		for _, res := range results {
			if res.Success {
				report.Engaged = append(report.Engaged, res)
			} else {
				report.Failed = append(report.Failed, res)
			}
		}
	}

	return report, nil
}

// recordSink forwards every outcome to the ledger. A failed write is logged
// and absorbed so one ledger error never aborts the batch.
func (e *Engine) recordSink(ctx context.Context, runID string) usecase.ResultSink {
	return func(post domain.Post, result domain.EngagementResult) {
		rec := &domain.EngagementRecord{
			RunID:      runID,
			Platform:   result.Platform,
			Action:     result.Action,
			PostID:     result.PostID,
			PostAuthor: post.Author,
			Comment:    result.Message,
			Success:    result.Success,
			Error:      result.Error,
			Timestamp:  result.Timestamp,
		}
		if err := e.ledger.Record(ctx, rec); err != nil {
			e.log.WithFields(logrus.Fields{
				"run_id":  runID,
				"post_id": result.PostID,
				"error":   err,
			}).Error("failed to record engagement")
		}
	}
}

// Stats returns the overall engagement summary
func (e *Engine) Stats(ctx context.Context) (*domain.TotalStats, error) {
	return e.ledger.TotalStats(ctx)
}

// DailyStats returns per-day aggregates for the last N days
func (e *Engine) DailyStats(ctx context.Context, days int) ([]domain.DailyStat, error) {
	return e.ledger.DailyStats(ctx, days)
}

// Recent returns the latest ledger records
func (e *Engine) Recent(ctx context.Context, limit int) ([]*domain.EngagementRecord, error) {
	return e.ledger.Recent(ctx, limit)
}

// SuccessRate returns the rolling success percentage
func (e *Engine) SuccessRate(ctx context.Context, days int) (float64, error) {
	return e.ledger.SuccessRate(ctx, days)
}

// IsEngaged reports whether the ledger has a comment record for the post
func (e *Engine) IsEngaged(ctx context.Context, postID string) (bool, error) {
	return e.ledger.IsEngaged(ctx, postID)
}

// Close releases adapters and the ledger
func (e *Engine) Close() error {
	var firstErr error
	for platform, adapter := range e.adapters {
		if err := adapter.Close(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("close %s adapter: %w", platform, err)
		}
	}
	if err := e.ledger.Close(); err != nil && firstErr == nil {
		firstErr = fmt.Errorf("close ledger: %w", err)
	}
	return firstErr
}
