package usecase

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/driftware/engagekit/internal/biz/domain"
)

// newPacedUsecase returns an engagement usecase with deterministic pacing
// and a recorder for the sleeps it takes
func newPacedUsecase(t *testing.T, completion *mockCompletion) (*EngagementUsecase, *[]time.Duration) {
	t.Helper()

	uc := NewEngagementUsecase(NewCommentUsecase(completion, newTestLogger()), newTestLogger())
	sleeps := &[]time.Duration{}
	uc.sleep = func(d time.Duration) { *sleeps = append(*sleeps, d) }
	uc.randN = func(n int) int { return 0 }
	return uc, sleeps
}

func zeroDelayConfig() domain.EngagementConfig {
	cfg := engagementConfig()
	cfg.MinDelaySeconds = 0
	cfg.MaxDelaySeconds = 0
	return cfg
}

func TestEngage_DailyQuota(t *testing.T) {
	uc, _ := newPacedUsecase(t, nil)
	adapter := &mockAdapter{platform: domain.PlatformInstagram}

	posts := []domain.Post{
		instagramPost("p1", 10), instagramPost("p2", 10), instagramPost("p3", 10),
		instagramPost("p4", 10), instagramPost("p5", 10),
	}

	cfg := zeroDelayConfig()
	cfg.MaxDaily = 2

	results := uc.Engage(context.Background(), posts, adapter, cfg, nil)

	if len(results) != 2 {
		t.Fatalf("Expected 2 results, got %d", len(results))
	}
	if adapter.commentCalls != 2 {
		t.Errorf("Expected 2 adapter calls, got %d", adapter.commentCalls)
	}
}

func TestEngage_DelayBeforeEveryAttempt(t *testing.T) {
	uc, sleeps := newPacedUsecase(t, nil)
	uc.randN = func(n int) int { return n - 1 } // always the top of the range
	adapter := &mockAdapter{platform: domain.PlatformInstagram}

	cfg := engagementConfig()
	cfg.MinDelaySeconds = 2
	cfg.MaxDelaySeconds = 5

	uc.Engage(context.Background(), []domain.Post{instagramPost("p1", 10), instagramPost("p2", 10)}, adapter, cfg, nil)

	if len(*sleeps) != 2 {
		t.Fatalf("Expected a delay before each attempt, got %d sleeps", len(*sleeps))
	}
	for _, d := range *sleeps {
		if d < 2*time.Second || d > 5*time.Second {
			t.Errorf("Delay %v outside [2s, 5s]", d)
		}
	}
}

func TestEngage_ZeroDelayDegenerates(t *testing.T) {
	uc, sleeps := newPacedUsecase(t, nil)
	adapter := &mockAdapter{platform: domain.PlatformInstagram}

	uc.Engage(context.Background(), []domain.Post{instagramPost("p1", 10)}, adapter, zeroDelayConfig(), nil)

	if len(*sleeps) != 1 {
		t.Fatalf("Expected 1 sleep, got %d", len(*sleeps))
	}
	if (*sleeps)[0] != 0 {
		t.Errorf("Expected zero delay, got %v", (*sleeps)[0])
	}
}

func TestEngage_SkipsPostWithNoComments(t *testing.T) {
	// "ok" is unparseable: no JSON array and no line over 10 chars
	uc, _ := newPacedUsecase(t, &mockCompletion{response: "ok"})
	adapter := &mockAdapter{platform: domain.PlatformInstagram}

	results := uc.Engage(context.Background(), []domain.Post{instagramPost("p1", 10)}, adapter, zeroDelayConfig(), nil)

	if len(results) != 0 {
		t.Fatalf("Expected no results for skipped post, got %d", len(results))
	}
	if adapter.commentCalls != 0 {
		t.Errorf("Expected no adapter calls, got %d", adapter.commentCalls)
	}
}

func TestEngage_FailureThenSuccess(t *testing.T) {
	uc, _ := newPacedUsecase(t, nil)
	adapter := &mockAdapter{
		platform: domain.PlatformInstagram,
		commentResults: []domain.EngagementResult{
			{Success: false, Platform: domain.PlatformInstagram, Action: domain.ActionComment, PostID: "p1", Error: "comment blocked"},
			{Success: true, Platform: domain.PlatformInstagram, Action: domain.ActionComment, PostID: "p2", Message: "hello"},
		},
	}

	var seen []domain.EngagementResult
	sink := func(post domain.Post, result domain.EngagementResult) {
		seen = append(seen, result)
	}

	results := uc.Engage(context.Background(),
		[]domain.Post{instagramPost("p1", 10), instagramPost("p2", 10)},
		adapter, zeroDelayConfig(), sink)

	if len(results) != 2 {
		t.Fatalf("Expected 2 results, got %d", len(results))
	}
	if results[0].Success {
		t.Error("Expected first result to fail")
	}
	if !results[1].Success {
		t.Error("Expected second result to succeed")
	}
	if len(seen) != 2 {
		t.Errorf("Expected sink to see both results, got %d", len(seen))
	}
}

func TestEngage_AdapterErrorBecomesFailedResult(t *testing.T) {
	uc, _ := newPacedUsecase(t, nil)
	adapter := &mockAdapter{
		platform:    domain.PlatformInstagram,
		commentErrs: []error{fmt.Errorf("connection reset")},
	}

	results := uc.Engage(context.Background(),
		[]domain.Post{instagramPost("p1", 10), instagramPost("p2", 10)},
		adapter, zeroDelayConfig(), nil)

	if len(results) != 2 {
		t.Fatalf("Expected the loop to continue past the error, got %d results", len(results))
	}
	if results[0].Success {
		t.Error("Expected first result to fail")
	}
	if results[0].Error != "connection reset" {
		t.Errorf("Expected error to be captured, got '%s'", results[0].Error)
	}
	if results[0].Action != domain.ActionComment {
		t.Errorf("Expected comment action, got '%s'", results[0].Action)
	}
}

func TestEngage_UsesFirstGeneratedComment(t *testing.T) {
	completion := &mockCompletion{response: `["first choice", "second choice"]`}
	uc, _ := newPacedUsecase(t, completion)
	adapter := &mockAdapter{platform: domain.PlatformInstagram}

	uc.Engage(context.Background(), []domain.Post{instagramPost("p1", 10)}, adapter, zeroDelayConfig(), nil)

	if adapter.lastComment != "first choice" {
		t.Errorf("Expected first candidate to be posted, got '%s'", adapter.lastComment)
	}
}

func TestEngage_TemplateFallbackEveryPost(t *testing.T) {
	completion := &mockCompletion{err: fmt.Errorf("always down")}
	uc, _ := newPacedUsecase(t, completion)
	adapter := &mockAdapter{platform: domain.PlatformInstagram}

	posts := []domain.Post{
		instagramPost("p1", 10, "#climbing"),
		instagramPost("p2", 10, "#climbing"),
		instagramPost("p3", 10, "#climbing"),
	}

	results := uc.Engage(context.Background(), posts, adapter, zeroDelayConfig(), nil)

	if len(results) != len(posts) {
		t.Fatalf("Expected every post engaged via templates, got %d/%d", len(results), len(posts))
	}
	if adapter.lastComment == "" {
		t.Error("Expected a template comment to be posted")
	}
}
