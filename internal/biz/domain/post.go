package domain

import (
	"fmt"
	"time"
)

// Platform identifies a social media platform
type Platform string

const (
	PlatformInstagram Platform = "instagram"
	PlatformTwitter   Platform = "twitter"
	PlatformTikTok    Platform = "tiktok"
	PlatformLinkedIn  Platform = "linkedin"
)

// ParsePlatform parses a platform tag.
// Unknown tags are a configuration error and abort before the pipeline starts.
func ParsePlatform(s string) (Platform, error) {
	switch Platform(s) {
	case PlatformInstagram, PlatformTwitter, PlatformTikTok, PlatformLinkedIn:
		return Platform(s), nil
	}
	return "", fmt.Errorf("unknown platform: %q", s)
}

// Post represents a social media post pulled from a platform.
// Immutable once produced by a source adapter.
type Post struct {
	Platform      Platform
	PostID        string
	URL           string
	Author        string
	AuthorID      string
	Content       string
	ImageURL      string
	Likes         int
	CommentsCount int
	Timestamp     time.Time // zero when the platform did not expose one
	Location      string
	Hashtags      []string
}

// User represents a social media user profile
type User struct {
	Platform    Platform
	UserID      string
	Username    string
	DisplayName string
	Bio         string
	Followers   int
	Following   int
	PostsCount  int
	IsPrivate   bool
	Verified    bool
}

// Action is the kind of engagement action taken on a target
type Action string

const (
	ActionComment Action = "comment"
	ActionLike    Action = "like"
	ActionFollow  Action = "follow"
)

// EngagementResult is the outcome of one attempted engagement action.
// Produced exactly once per attempt and never mutated afterwards.
type EngagementResult struct {
	Success   bool
	Platform  Platform
	Action    Action
	PostID    string
	Message   string // the text actually posted, for comments
	Error     string
	Timestamp time.Time
}
