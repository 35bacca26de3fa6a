package domain

// DiscoveryConfig configures a discovery pass.
// Absent filters mean no restriction; Platforms must be non-empty.
type DiscoveryConfig struct {
	Platforms       []Platform
	Hashtags        []string
	Keywords        []string
	Location        string
	MinLikes        int
	MaxLikes        int
	PostsAgeHours   int
	Limit           int
	ExcludeUsers    []string
	ExcludeHashtags []string
}

// DefaultDiscoveryConfig returns a config with the standard filter bounds
func DefaultDiscoveryConfig() DiscoveryConfig {
	return DiscoveryConfig{
		Platforms:     []Platform{PlatformInstagram},
		MinLikes:      0,
		MaxLikes:      1000000,
		PostsAgeHours: 24,
		Limit:         20,
	}
}

// Validate checks the config before a run
func (c *DiscoveryConfig) Validate() error {
	if len(c.Platforms) == 0 {
		return &ValidationError{Field: "platforms", Message: "at least one platform required"}
	}
	if c.MinLikes > c.MaxLikes {
		return &ValidationError{Field: "min_likes/max_likes", Message: "min_likes must not exceed max_likes"}
	}
	if c.Limit <= 0 {
		return &ValidationError{Field: "limit", Message: "must be positive"}
	}
	return nil
}

// DiscoveredPost is a scored post that survived filtering and is ready for engagement
type DiscoveredPost struct {
	Post          Post
	Score         float64
	Reason        string
	FiltersPassed []string
}

// ValidationError reports an invalid configuration field
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}
