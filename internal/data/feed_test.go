package data

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/driftware/engagekit/internal/biz/domain"
	"github.com/driftware/engagekit/internal/biz/repo"
)

func writeFeed(t *testing.T, entries []feedPost) string {
	t.Helper()

	raw, err := json.Marshal(entries)
	if err != nil {
		t.Fatalf("Failed to marshal feed: %v", err)
	}
	path := filepath.Join(t.TempDir(), "feed.json")
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		t.Fatalf("Failed to write feed: %v", err)
	}
	return path
}

func testFeed(t *testing.T) repo.AdapterRepo {
	t.Helper()

	path := writeFeed(t, []feedPost{
		{
			PostID:    "p1",
			Author:    "alice",
			AuthorID:  "u1",
			Content:   "morning session at the crag",
			Likes:     150,
			Timestamp: "2026-08-01T09:00:00Z",
			Location:  "Fontainebleau",
			Hashtags:  []string{"#climbing", "#bouldering"},
		},
		{
			PostID:   "p2",
			Author:   "bob",
			Content:  "new running shoes",
			Likes:    40,
			Hashtags: []string{"#running"},
		},
	})

	adapter, err := NewFeedAdapter(domain.PlatformInstagram, path)
	if err != nil {
		t.Fatalf("Failed to load feed: %v", err)
	}
	return adapter
}

func TestFeedAdapter_SearchByHashtag(t *testing.T) {
	adapter := testFeed(t)

	posts, err := adapter.Search(context.Background(), repo.SearchQuery{
		Hashtags: []string{"#Climbing"},
	})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if len(posts) != 1 {
		t.Fatalf("Expected 1 post, got %d", len(posts))
	}
	if posts[0].PostID != "p1" {
		t.Errorf("Expected 'p1', got '%s'", posts[0].PostID)
	}
	if posts[0].Platform != domain.PlatformInstagram {
		t.Errorf("Expected instagram platform tag, got '%s'", posts[0].Platform)
	}
	if posts[0].Timestamp.IsZero() {
		t.Error("Expected parsed timestamp")
	}
}

func TestFeedAdapter_SearchByQueryAndLocation(t *testing.T) {
	adapter := testFeed(t)

	posts, err := adapter.Search(context.Background(), repo.SearchQuery{
		Query:    "crag",
		Location: "fontainebleau",
	})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(posts) != 1 || posts[0].PostID != "p1" {
		t.Fatalf("Expected only the matching post, got %v", posts)
	}
}

func TestFeedAdapter_SearchLimit(t *testing.T) {
	adapter := testFeed(t)

	posts, err := adapter.Search(context.Background(), repo.SearchQuery{Limit: 1})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(posts) != 1 {
		t.Errorf("Expected limit to apply, got %d posts", len(posts))
	}
}

func TestFeedAdapter_Lookups(t *testing.T) {
	adapter := testFeed(t)
	ctx := context.Background()

	post, err := adapter.GetPost(ctx, "p2")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if post == nil || post.Author != "bob" {
		t.Errorf("Unexpected post: %+v", post)
	}

	missing, err := adapter.GetPost(ctx, "nope")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if missing != nil {
		t.Errorf("Expected nil for unknown post, got %+v", missing)
	}

	user, err := adapter.GetUser(ctx, "Alice")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if user == nil || user.UserID != "u1" {
		t.Errorf("Unexpected user: %+v", user)
	}
}

func TestFeedAdapter_SimulatedComment(t *testing.T) {
	adapter := testFeed(t)

	result, err := adapter.Comment(context.Background(), "p1", "great line!")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !result.Success {
		t.Error("Expected simulated comment to succeed")
	}
	if result.Action != domain.ActionComment || result.Message != "great line!" {
		t.Errorf("Unexpected result: %+v", result)
	}
}

func TestNewFeedAdapter_BadFile(t *testing.T) {
	if _, err := NewFeedAdapter(domain.PlatformInstagram, filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("Expected error for missing feed file")
	}

	path := filepath.Join(t.TempDir(), "feed.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("Failed to write feed: %v", err)
	}
	if _, err := NewFeedAdapter(domain.PlatformInstagram, path); err == nil {
		t.Error("Expected error for malformed feed file")
	}
}
