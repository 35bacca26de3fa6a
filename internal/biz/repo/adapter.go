package repo

import (
	"context"

	"github.com/driftware/engagekit/internal/biz/domain"
)

// SearchQuery describes one candidate-source pull
type SearchQuery struct {
	Query    string
	Hashtags []string
	Location string
	Limit    int
}

// AdapterRepo is the platform capability interface.
// Search may fail per call and callers must tolerate and skip; the action
// methods return an error only for transport-level failures, which callers
// turn into failed results rather than aborting a batch.
type AdapterRepo interface {
	// Platform returns the platform this adapter serves
	Platform() domain.Platform

	// Login authenticates against the platform
	Login(ctx context.Context, credentials map[string]string) error

	// Search returns posts matching the query
	Search(ctx context.Context, q SearchQuery) ([]domain.Post, error)

	// GetPost fetches a single post by id, nil when not found
	GetPost(ctx context.Context, postID string) (*domain.Post, error)

	// GetUser fetches a user profile, nil when not found
	GetUser(ctx context.Context, username string) (*domain.User, error)

	// Comment posts a comment on a post
	Comment(ctx context.Context, postID, text string) (domain.EngagementResult, error)

	// Like likes a post
	Like(ctx context.Context, postID string) (domain.EngagementResult, error)

	// Follow follows a user
	Follow(ctx context.Context, userID string) (domain.EngagementResult, error)

	// Close releases adapter resources
	Close() error
}
