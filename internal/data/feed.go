package data

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/driftware/engagekit/internal/biz/domain"
	"github.com/driftware/engagekit/internal/biz/repo"
)

// feedPost is the on-disk feed entry format
type feedPost struct {
	PostID        string   `json:"post_id"`
	URL           string   `json:"url"`
	Author        string   `json:"author"`
	AuthorID      string   `json:"author_id"`
	Content       string   `json:"content"`
	ImageURL      string   `json:"image_url,omitempty"`
	Likes         int      `json:"likes"`
	CommentsCount int      `json:"comments_count"`
	Timestamp     string   `json:"timestamp,omitempty"` // RFC 3339
	Location      string   `json:"location,omitempty"`
	Hashtags      []string `json:"hashtags,omitempty"`
}

// feedAdapter is a file-backed candidate source for fixtures and dry runs.
// Engagement actions are simulated and always succeed.
type feedAdapter struct {
	platform domain.Platform
	posts    []domain.Post
}

// NewFeedAdapter loads a JSON feed file and serves it as the given platform
func NewFeedAdapter(platform domain.Platform, feedPath string) (repo.AdapterRepo, error) {
	raw, err := os.ReadFile(feedPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read feed: %w", err)
	}

	var entries []feedPost
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse feed: %w", err)
	}

	posts := make([]domain.Post, 0, len(entries))
	for _, e := range entries {
		post := domain.Post{
			Platform:      platform,
			PostID:        e.PostID,
			URL:           e.URL,
			Author:        e.Author,
			AuthorID:      e.AuthorID,
			Content:       e.Content,
			ImageURL:      e.ImageURL,
			Likes:         e.Likes,
			CommentsCount: e.CommentsCount,
			Location:      e.Location,
			Hashtags:      e.Hashtags,
		}
		if e.Timestamp != "" {
			if ts, err := time.Parse(time.RFC3339, e.Timestamp); err == nil {
				post.Timestamp = ts
			}
		}
		posts = append(posts, post)
	}

	return &feedAdapter{platform: platform, posts: posts}, nil
}

// Platform returns the platform tag this feed serves
func (a *feedAdapter) Platform() domain.Platform {
	return a.platform
}

// Login is a no-op for feed adapters
func (a *feedAdapter) Login(ctx context.Context, credentials map[string]string) error {
	return nil
}

// Search filters the feed by hashtags, query substring, and location
func (a *feedAdapter) Search(ctx context.Context, q repo.SearchQuery) ([]domain.Post, error) {
	var matched []domain.Post
	for _, post := range a.posts {
		if len(q.Hashtags) > 0 && !hasAnyHashtag(post, q.Hashtags) {
			continue
		}
		if q.Query != "" && !matchesQuery(post, q.Query) {
			continue
		}
		if q.Location != "" && !strings.EqualFold(post.Location, q.Location) {
			continue
		}
		matched = append(matched, post)
		if q.Limit > 0 && len(matched) >= q.Limit {
			break
		}
	}
	return matched, nil
}

// GetPost returns a post by id, nil when not found
func (a *feedAdapter) GetPost(ctx context.Context, postID string) (*domain.Post, error) {
	for _, post := range a.posts {
		if post.PostID == postID {
			p := post
			return &p, nil
		}
	}
	return nil, nil
}

// GetUser returns a minimal profile for any author present in the feed
func (a *feedAdapter) GetUser(ctx context.Context, username string) (*domain.User, error) {
	for _, post := range a.posts {
		if strings.EqualFold(post.Author, username) {
			return &domain.User{
				Platform:    a.platform,
				UserID:      post.AuthorID,
				Username:    post.Author,
				DisplayName: post.Author,
			}, nil
		}
	}
	return nil, nil
}

// Comment simulates a successful comment
func (a *feedAdapter) Comment(ctx context.Context, postID, text string) (domain.EngagementResult, error) {
	return domain.EngagementResult{
		Success:   true,
		Platform:  a.platform,
		Action:    domain.ActionComment,
		PostID:    postID,
		Message:   text,
		Timestamp: time.Now(),
	}, nil
}

// Like simulates a successful like
func (a *feedAdapter) Like(ctx context.Context, postID string) (domain.EngagementResult, error) {
	return domain.EngagementResult{
		Success:   true,
		Platform:  a.platform,
		Action:    domain.ActionLike,
		PostID:    postID,
		Timestamp: time.Now(),
	}, nil
}

// Follow simulates a successful follow
func (a *feedAdapter) Follow(ctx context.Context, userID string) (domain.EngagementResult, error) {
	return domain.EngagementResult{
		Success:   true,
		Platform:  a.platform,
		Action:    domain.ActionFollow,
		PostID:    userID,
		Timestamp: time.Now(),
	}, nil
}

// Close is a no-op for feed adapters
func (a *feedAdapter) Close() error {
	return nil
}

func hasAnyHashtag(post domain.Post, hashtags []string) bool {
	for _, want := range hashtags {
		for _, have := range post.Hashtags {
			if strings.EqualFold(want, have) {
				return true
			}
		}
	}
	return false
}

func matchesQuery(post domain.Post, query string) bool {
	content := strings.ToLower(post.Content)
	for _, word := range strings.Fields(strings.ToLower(query)) {
		if strings.Contains(content, word) {
			return true
		}
	}
	return false
}
