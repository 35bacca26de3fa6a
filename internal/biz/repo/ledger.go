package repo

import (
	"context"

	"github.com/driftware/engagekit/internal/biz/domain"
)

// LedgerRepo is the durable engagement ledger.
// Record must append the row and update the matching daily aggregate
// atomically; the ledger is the sole dedup and aggregate authority.
type LedgerRepo interface {
	// Record appends an engagement record and increments the daily aggregate
	Record(ctx context.Context, rec *domain.EngagementRecord) error

	// IsEngaged reports whether a comment action exists for the post.
	// Scoped to comments only; likes and follows are never deduplicated.
	IsEngaged(ctx context.Context, postID string) (bool, error)

	// DailyStats returns aggregates for the last N days, newest first
	DailyStats(ctx context.Context, days int) ([]domain.DailyStat, error)

	// TotalStats returns the overall summary
	TotalStats(ctx context.Context) (*domain.TotalStats, error)

	// Recent returns the latest records, newest first
	Recent(ctx context.Context, limit int) ([]*domain.EngagementRecord, error)

	// SuccessRate returns the success percentage over the last N days
	SuccessRate(ctx context.Context, days int) (float64, error)

	// Close closes the underlying store
	Close() error
}
