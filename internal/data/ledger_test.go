package data

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/driftware/engagekit/internal/biz/domain"
	"github.com/driftware/engagekit/internal/biz/repo"
)

func newTestLedger(t *testing.T) repo.LedgerRepo {
	t.Helper()

	ledger, err := NewLedgerRepo(filepath.Join(t.TempDir(), "ledger.db"))
	if err != nil {
		t.Fatalf("Failed to open ledger: %v", err)
	}
	t.Cleanup(func() { ledger.Close() })
	return ledger
}

func commentRecord(postID string, success bool) *domain.EngagementRecord {
	rec := &domain.EngagementRecord{
		RunID:      "run-1",
		Platform:   domain.PlatformInstagram,
		Action:     domain.ActionComment,
		PostID:     postID,
		PostAuthor: "author-" + postID,
		Comment:    "nice post",
		Success:    success,
		Timestamp:  time.Now(),
	}
	if !success {
		rec.Error = "blocked"
	}
	return rec
}

func TestRecord_AssignsIncreasingIDs(t *testing.T) {
	ledger := newTestLedger(t)
	ctx := context.Background()

	first := commentRecord("p1", true)
	second := commentRecord("p2", true)

	if err := ledger.Record(ctx, first); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if err := ledger.Record(ctx, second); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if first.ID == 0 || second.ID == 0 {
		t.Fatal("Expected assigned ids")
	}
	if second.ID <= first.ID {
		t.Errorf("Expected increasing ids, got %d then %d", first.ID, second.ID)
	}
}

func TestIsEngaged_CommentScopeOnly(t *testing.T) {
	ledger := newTestLedger(t)
	ctx := context.Background()

	like := commentRecord("p1", true)
	like.Action = domain.ActionLike
	if err := ledger.Record(ctx, like); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	engaged, err := ledger.IsEngaged(ctx, "p1")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if engaged {
		t.Error("Expected like action to not count as engaged")
	}

	if err := ledger.Record(ctx, commentRecord("p1", true)); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	engaged, err = ledger.IsEngaged(ctx, "p1")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !engaged {
		t.Error("Expected comment action to mark post engaged")
	}
}

func TestIsEngaged_FailedCommentStillCounts(t *testing.T) {
	ledger := newTestLedger(t)
	ctx := context.Background()

	if err := ledger.Record(ctx, commentRecord("p1", false)); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	engaged, err := ledger.IsEngaged(ctx, "p1")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !engaged {
		t.Error("Expected any comment record to mark post engaged")
	}
}

func TestDailyStats_AggregateConsistency(t *testing.T) {
	ledger := newTestLedger(t)
	ctx := context.Background()

	outcomes := []bool{true, true, false, true, false}
	for i, success := range outcomes {
		rec := commentRecord(string(rune('a'+i)), success)
		if i == 4 {
			rec.Action = domain.ActionLike
		}
		if err := ledger.Record(ctx, rec); err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
	}

	stats, err := ledger.DailyStats(ctx, 7)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(stats) != 1 {
		t.Fatalf("Expected 1 daily row, got %d", len(stats))
	}

	day := stats[0]
	if day.SuccessCount+day.FailureCount != len(outcomes) {
		t.Errorf("Expected success+failure == %d, got %d+%d", len(outcomes), day.SuccessCount, day.FailureCount)
	}
	if day.Comments+day.Likes+day.Follows != len(outcomes) {
		t.Errorf("Expected per-action counts to sum to %d, got %d+%d+%d",
			len(outcomes), day.Comments, day.Likes, day.Follows)
	}
	if day.Comments != 4 || day.Likes != 1 {
		t.Errorf("Expected 4 comments and 1 like, got %d and %d", day.Comments, day.Likes)
	}
	if day.SuccessCount != 3 || day.FailureCount != 2 {
		t.Errorf("Expected 3 successes and 2 failures, got %d and %d", day.SuccessCount, day.FailureCount)
	}
}

func TestTotalStats(t *testing.T) {
	ledger := newTestLedger(t)
	ctx := context.Background()

	if err := ledger.Record(ctx, commentRecord("p1", true)); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if err := ledger.Record(ctx, commentRecord("p2", false)); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	follow := commentRecord("u1", true)
	follow.Action = domain.ActionFollow
	if err := ledger.Record(ctx, follow); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	stats, err := ledger.TotalStats(ctx)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if stats.Today != 3 {
		t.Errorf("Expected 3 today, got %d", stats.Today)
	}
	if stats.ThisWeek != 3 {
		t.Errorf("Expected 3 this week, got %d", stats.ThisWeek)
	}
	if got := stats.ByAction[domain.ActionComment]; got.Total != 2 || got.Success != 1 {
		t.Errorf("Expected comment totals 2/1, got %d/%d", got.Total, got.Success)
	}
	if got := stats.ByAction[domain.ActionFollow]; got.Total != 1 || got.Success != 1 {
		t.Errorf("Expected follow totals 1/1, got %d/%d", got.Total, got.Success)
	}
}

func TestRecent_NewestFirst(t *testing.T) {
	ledger := newTestLedger(t)
	ctx := context.Background()

	older := commentRecord("old", true)
	older.Timestamp = time.Now().Add(-time.Hour)
	newer := commentRecord("new", true)

	if err := ledger.Record(ctx, older); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if err := ledger.Record(ctx, newer); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	records, err := ledger.Recent(ctx, 10)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("Expected 2 records, got %d", len(records))
	}
	if records[0].PostID != "new" {
		t.Errorf("Expected newest first, got '%s'", records[0].PostID)
	}
	if records[0].RunID != "run-1" {
		t.Errorf("Expected run id to round-trip, got '%s'", records[0].RunID)
	}
	if records[0].PostAuthor != "author-new" {
		t.Errorf("Expected author to round-trip, got '%s'", records[0].PostAuthor)
	}
}

func TestSuccessRate(t *testing.T) {
	ledger := newTestLedger(t)
	ctx := context.Background()

	rate, err := ledger.SuccessRate(ctx, 30)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if rate != 0 {
		t.Errorf("Expected 0 rate for empty ledger, got %f", rate)
	}

	for _, success := range []bool{true, true, false, true} {
		if err := ledger.Record(ctx, commentRecord("p", success)); err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
	}

	rate, err = ledger.SuccessRate(ctx, 30)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if rate != 75 {
		t.Errorf("Expected 75%%, got %f", rate)
	}
}
