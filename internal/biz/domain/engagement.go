package domain

// TargetAudience describes who the campaign is trying to reach.
// Pure data, consumed only by the comment prompt builder.
type TargetAudience struct {
	Interests    []string
	Demographics map[string]string
	PainPoints   []string
	Desires      []string
}

// EngagementConfig configures the engagement executor.
// MaxDaily caps attempts within a single Engage call, not across calls;
// the ledger's daily aggregates are the cross-call record.
type EngagementConfig struct {
	Audience           TargetAudience
	Tone               string
	MaxDaily           int
	MinDelaySeconds    int
	MaxDelaySeconds    int
	SkipAlreadyEngaged bool
}

// DefaultEngagementConfig returns the standard pacing settings
func DefaultEngagementConfig() EngagementConfig {
	return EngagementConfig{
		Tone:               "friendly",
		MaxDaily:           20,
		MinDelaySeconds:    30,
		MaxDelaySeconds:    120,
		SkipAlreadyEngaged: true,
	}
}

// Validate checks the config before a run
func (c *EngagementConfig) Validate() error {
	if c.MaxDaily <= 0 {
		return &ValidationError{Field: "max_daily", Message: "must be positive"}
	}
	if c.MinDelaySeconds < 0 {
		return &ValidationError{Field: "min_delay_seconds", Message: "must not be negative"}
	}
	if c.MinDelaySeconds > c.MaxDelaySeconds {
		return &ValidationError{Field: "min_delay_seconds/max_delay_seconds", Message: "min delay must not exceed max delay"}
	}
	return nil
}
