package data

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/driftware/engagekit/internal/biz/domain"
	"github.com/driftware/engagekit/internal/biz/repo"

	_ "modernc.org/sqlite"
)

// ledgerRepo implements the engagement ledger on SQLite
type ledgerRepo struct {
	db *sql.DB
}

// NewLedgerRepo opens (and if needed creates) the ledger database
func NewLedgerRepo(dbPath string) (repo.LedgerRepo, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS engagements (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id TEXT NOT NULL DEFAULT '',
			platform TEXT NOT NULL,
			action TEXT NOT NULL,
			post_id TEXT NOT NULL,
			post_author TEXT,
			comment TEXT,
			success INTEGER NOT NULL,
			error TEXT,
			timestamp INTEGER NOT NULL
		)
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create engagements table: %w", err)
	}

	_, err = db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_engagements_post_action ON engagements(post_id, action)
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create index: %w", err)
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS daily_stats (
			date TEXT PRIMARY KEY,
			comments_posted INTEGER DEFAULT 0,
			likes_posted INTEGER DEFAULT 0,
			follows_posted INTEGER DEFAULT 0,
			success_count INTEGER DEFAULT 0,
			failure_count INTEGER DEFAULT 0
		)
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create daily_stats table: %w", err)
	}

	return &ledgerRepo{db: db}, nil
}

// Record appends the engagement row and updates the daily aggregate in one
// transaction, so a crash never leaves one without the other
func (r *ledgerRepo) Record(ctx context.Context, rec *domain.EngagementRecord) error {
	if rec.Timestamp.IsZero() {
		rec.Timestamp = time.Now()
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		INSERT INTO engagements (run_id, platform, action, post_id, post_author, comment, success, error, timestamp)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		rec.RunID,
		string(rec.Platform),
		string(rec.Action),
		rec.PostID,
		rec.PostAuthor,
		rec.Comment,
		boolToInt(rec.Success),
		rec.Error,
		rec.Timestamp.Unix(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert engagement: %w", err)
	}

	var comments, likes, follows int
	switch rec.Action {
	case domain.ActionComment:
		comments = 1
	case domain.ActionLike:
		likes = 1
	case domain.ActionFollow:
		follows = 1
	}

	success := boolToInt(rec.Success)
	failure := 1 - success

	_, err = tx.ExecContext(ctx, `
		INSERT INTO daily_stats (date, comments_posted, likes_posted, follows_posted, success_count, failure_count)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(date) DO UPDATE SET
			comments_posted = comments_posted + excluded.comments_posted,
			likes_posted = likes_posted + excluded.likes_posted,
			follows_posted = follows_posted + excluded.follows_posted,
			success_count = success_count + excluded.success_count,
			failure_count = failure_count + excluded.failure_count
	`,
		rec.Timestamp.Format("2006-01-02"),
		comments, likes, follows, success, failure,
	)
	if err != nil {
		return fmt.Errorf("failed to update daily stats: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit engagement: %w", err)
	}

	if id, err := res.LastInsertId(); err == nil {
		rec.ID = id
	}
	return nil
}

// IsEngaged reports whether a comment action was ever recorded for the post
func (r *ledgerRepo) IsEngaged(ctx context.Context, postID string) (bool, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM engagements
		WHERE post_id = ? AND action = 'comment'
	`, postID).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to query engagement: %w", err)
	}
	return count > 0, nil
}

// DailyStats returns aggregates for the last N days, newest first
func (r *ledgerRepo) DailyStats(ctx context.Context, days int) ([]domain.DailyStat, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT date, comments_posted, likes_posted, follows_posted, success_count, failure_count
		FROM daily_stats
		ORDER BY date DESC
		LIMIT ?
	`, days)
	if err != nil {
		return nil, fmt.Errorf("failed to query daily stats: %w", err)
	}
	defer rows.Close()

	var stats []domain.DailyStat
	for rows.Next() {
		var s domain.DailyStat
		if err := rows.Scan(&s.Date, &s.Comments, &s.Likes, &s.Follows, &s.SuccessCount, &s.FailureCount); err != nil {
			return nil, fmt.Errorf("failed to scan daily stat: %w", err)
		}
		stats = append(stats, s)
	}
	return stats, rows.Err()
}

// TotalStats returns the overall summary
func (r *ledgerRepo) TotalStats(ctx context.Context) (*domain.TotalStats, error) {
	now := time.Now()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	stats := &domain.TotalStats{ByAction: make(map[domain.Action]domain.ActionTotal)}

	err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM engagements WHERE timestamp >= ?
	`, startOfDay.Unix()).Scan(&stats.Today)
	if err != nil {
		return nil, fmt.Errorf("failed to count today: %w", err)
	}

	err = r.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM engagements WHERE timestamp >= ?
	`, now.AddDate(0, 0, -7).Unix()).Scan(&stats.ThisWeek)
	if err != nil {
		return nil, fmt.Errorf("failed to count week: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT action, COUNT(*), COALESCE(SUM(success), 0)
		FROM engagements
		GROUP BY action
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query action totals: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var action string
		var total domain.ActionTotal
		if err := rows.Scan(&action, &total.Total, &total.Success); err != nil {
			return nil, fmt.Errorf("failed to scan action total: %w", err)
		}
		stats.ByAction[domain.Action(action)] = total
	}
	return stats, rows.Err()
}

// Recent returns the latest records, newest first
func (r *ledgerRepo) Recent(ctx context.Context, limit int) ([]*domain.EngagementRecord, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, run_id, platform, action, post_id, post_author, comment, success, error, timestamp
		FROM engagements
		ORDER BY timestamp DESC, id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query recent engagements: %w", err)
	}
	defer rows.Close()

	var records []*domain.EngagementRecord
	for rows.Next() {
		var rec domain.EngagementRecord
		var platform, action string
		var success int
		var ts int64
		if err := rows.Scan(&rec.ID, &rec.RunID, &platform, &action, &rec.PostID, &rec.PostAuthor, &rec.Comment, &success, &rec.Error, &ts); err != nil {
			return nil, fmt.Errorf("failed to scan engagement: %w", err)
		}
		rec.Platform = domain.Platform(platform)
		rec.Action = domain.Action(action)
		rec.Success = success != 0
		rec.Timestamp = time.Unix(ts, 0)
		records = append(records, &rec)
	}
	return records, rows.Err()
}

// SuccessRate returns the success percentage over the last N days
func (r *ledgerRepo) SuccessRate(ctx context.Context, days int) (float64, error) {
	var success, total int
	err := r.db.QueryRowContext(ctx, `
		SELECT COALESCE(SUM(success), 0), COUNT(*)
		FROM engagements
		WHERE timestamp >= ?
	`, time.Now().AddDate(0, 0, -days).Unix()).Scan(&success, &total)
	if err != nil {
		return 0, fmt.Errorf("failed to query success rate: %w", err)
	}
	if total == 0 {
		return 0, nil
	}
	return float64(success) / float64(total) * 100, nil
}

// Close closes the database connection
func (r *ledgerRepo) Close() error {
	return r.db.Close()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
