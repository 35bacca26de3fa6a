package conf

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/driftware/engagekit/internal/biz/domain"
)

// CampaignConfig is a campaign definition loaded from YAML
type CampaignConfig struct {
	Audience   AudienceConfig     `yaml:"audience"`
	Discovery  DiscoverySettings  `yaml:"discovery"`
	Engagement EngagementSettings `yaml:"engagement"`
}

// AudienceConfig describes the target audience
type AudienceConfig struct {
	Interests    []string          `yaml:"interests"`
	Demographics map[string]string `yaml:"demographics"`
	PainPoints   []string          `yaml:"pain_points"`
	Desires      []string          `yaml:"desires"`
}

// DiscoverySettings configures the discovery phase
type DiscoverySettings struct {
	Platforms       []string `yaml:"platforms"`
	Hashtags        []string `yaml:"hashtags"`
	Keywords        []string `yaml:"keywords"`
	Location        string   `yaml:"location"`
	MinLikes        int      `yaml:"min_likes"`
	MaxLikes        int      `yaml:"max_likes"`
	PostsAgeHours   int      `yaml:"posts_age_hours"`
	Limit           int      `yaml:"limit"`
	ExcludeUsers    []string `yaml:"exclude_users"`
	ExcludeHashtags []string `yaml:"exclude_hashtags"`
}

// EngagementSettings configures the engagement phase
type EngagementSettings struct {
	Tone               string `yaml:"tone"`
	MaxDaily           int    `yaml:"max_daily"`
	MinDelaySeconds    *int   `yaml:"min_delay_seconds"`
	MaxDelaySeconds    *int   `yaml:"max_delay_seconds"`
	SkipAlreadyEngaged *bool  `yaml:"skip_already_engaged"`
}

// LoadCampaign loads a campaign definition from a YAML file
func LoadCampaign(path string) (*CampaignConfig, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read campaign file: %w", err)
	}

	var campaign CampaignConfig
	if err := yaml.Unmarshal(raw, &campaign); err != nil {
		return nil, fmt.Errorf("failed to parse campaign file: %w", err)
	}
	return &campaign, nil
}

// ToTargetAudience converts the audience section to the domain type
func (c *CampaignConfig) ToTargetAudience() domain.TargetAudience {
	return domain.TargetAudience{
		Interests:    c.Audience.Interests,
		Demographics: c.Audience.Demographics,
		PainPoints:   c.Audience.PainPoints,
		Desires:      c.Audience.Desires,
	}
}

// ToDiscoveryConfig converts the discovery section, applying defaults and
// validating platform tags
func (c *CampaignConfig) ToDiscoveryConfig() (domain.DiscoveryConfig, error) {
	cfg := domain.DefaultDiscoveryConfig()

	if len(c.Discovery.Platforms) > 0 {
		cfg.Platforms = nil
		for _, tag := range c.Discovery.Platforms {
			platform, err := domain.ParsePlatform(tag)
			if err != nil {
				return domain.DiscoveryConfig{}, err
			}
			cfg.Platforms = append(cfg.Platforms, platform)
		}
	}

	cfg.Hashtags = c.Discovery.Hashtags
	cfg.Keywords = c.Discovery.Keywords
	cfg.Location = c.Discovery.Location
	cfg.MinLikes = c.Discovery.MinLikes
	if c.Discovery.MaxLikes > 0 {
		cfg.MaxLikes = c.Discovery.MaxLikes
	}
	if c.Discovery.PostsAgeHours > 0 {
		cfg.PostsAgeHours = c.Discovery.PostsAgeHours
	}
	if c.Discovery.Limit > 0 {
		cfg.Limit = c.Discovery.Limit
	}
	cfg.ExcludeUsers = c.Discovery.ExcludeUsers
	cfg.ExcludeHashtags = c.Discovery.ExcludeHashtags

	if err := cfg.Validate(); err != nil {
		return domain.DiscoveryConfig{}, err
	}
	return cfg, nil
}

// ToEngagementConfig converts the engagement section, applying defaults
func (c *CampaignConfig) ToEngagementConfig() (domain.EngagementConfig, error) {
	cfg := domain.DefaultEngagementConfig()
	cfg.Audience = c.ToTargetAudience()

	if c.Engagement.Tone != "" {
		cfg.Tone = c.Engagement.Tone
	}
	if c.Engagement.MaxDaily > 0 {
		cfg.MaxDaily = c.Engagement.MaxDaily
	}
	if c.Engagement.MinDelaySeconds != nil {
		cfg.MinDelaySeconds = *c.Engagement.MinDelaySeconds
	}
	if c.Engagement.MaxDelaySeconds != nil {
		cfg.MaxDelaySeconds = *c.Engagement.MaxDelaySeconds
	}
	if c.Engagement.SkipAlreadyEngaged != nil {
		cfg.SkipAlreadyEngaged = *c.Engagement.SkipAlreadyEngaged
	}

	if err := cfg.Validate(); err != nil {
		return domain.EngagementConfig{}, err
	}
	return cfg, nil
}
