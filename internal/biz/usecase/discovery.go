package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/driftware/engagekit/internal/biz/domain"
	"github.com/driftware/engagekit/internal/biz/repo"
)

// DiscoveryUsecase finds and ranks posts worth engaging with across platforms
type DiscoveryUsecase struct {
	adapters map[domain.Platform]repo.AdapterRepo
	log      *logrus.Logger
	now      func() time.Time
}

// NewDiscoveryUsecase creates a discovery usecase over the registered adapters
func NewDiscoveryUsecase(adapters map[domain.Platform]repo.AdapterRepo, log *logrus.Logger) *DiscoveryUsecase {
	return &DiscoveryUsecase{
		adapters: adapters,
		log:      log,
		now:      time.Now,
	}
}

// Discover pulls posts from every configured platform, filters and scores
// them, and returns at most cfg.Limit candidates sorted by descending score.
// A source failure on one platform is logged and skipped; it never aborts
// discovery for the others.
func (uc *DiscoveryUsecase) Discover(ctx context.Context, cfg domain.DiscoveryConfig) ([]domain.DiscoveredPost, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid discovery config: %w", err)
	}

	var results []domain.DiscoveredPost

	for _, platform := range cfg.Platforms {
		adapter, ok := uc.adapters[platform]
		if !ok {
			uc.log.WithField("platform", platform).Warn("no adapter registered, skipping platform")
			continue
		}

		posts, err := adapter.Search(ctx, repo.SearchQuery{
			Query:    strings.Join(cfg.Keywords, " "),
			Hashtags: cfg.Hashtags,
			Location: cfg.Location,
			Limit:    cfg.Limit,
		})
		if err != nil {
			uc.log.WithFields(logrus.Fields{
				"platform": platform,
				"error":    err,
			}).Warn("discovery failed for platform")
			continue
		}

		for _, post := range posts {
			if discovered, ok := uc.evaluate(post, cfg); ok {
				results = append(results, discovered)
			}
		}
	}

	// Stable: equal scores keep source-encounter order
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if len(results) > cfg.Limit {
		results = results[:cfg.Limit]
	}
	return results, nil
}

// evaluate runs the exclusion chain and scores a surviving post
func (uc *DiscoveryUsecase) evaluate(post domain.Post, cfg domain.DiscoveryConfig) (domain.DiscoveredPost, bool) {
	for _, user := range cfg.ExcludeUsers {
		if post.Author == user {
			return domain.DiscoveredPost{}, false
		}
	}

	for _, hashtag := range post.Hashtags {
		for _, excluded := range cfg.ExcludeHashtags {
			if hashtag == excluded {
				return domain.DiscoveredPost{}, false
			}
		}
	}

	if post.Likes < cfg.MinLikes || post.Likes > cfg.MaxLikes {
		return domain.DiscoveredPost{}, false
	}

	return domain.DiscoveredPost{
		Post:   post,
		Score:  uc.score(post, cfg),
		Reason: uc.reason(post, cfg),
	}, true
}

// score computes the engagement score for a post
func (uc *DiscoveryUsecase) score(post domain.Post, cfg domain.DiscoveryConfig) float64 {
	score := 0.0

	// Like count, normalized to 0-10
	likeScore := float64(post.Likes) / 100
	if likeScore > 10 {
		likeScore = 10
	}
	score += likeScore

	// Recency bonus; posts without a timestamp get none
	if !post.Timestamp.IsZero() {
		hoursOld := uc.now().Sub(post.Timestamp).Hours()
		switch {
		case hoursOld < 1:
			score += 5
		case hoursOld < 6:
			score += 3
		case hoursOld < 24:
			score += 1
		}
	}

	// Hashtag relevance
	for _, hashtag := range post.Hashtags {
		for _, configured := range cfg.Hashtags {
			if strings.EqualFold(hashtag, configured) {
				score += 2
			}
		}
	}

	// Keyword relevance
	content := strings.ToLower(post.Content)
	for _, keyword := range cfg.Keywords {
		if strings.Contains(content, strings.ToLower(keyword)) {
			score += 3
		}
	}

	return score
}

// reason builds the human-readable justification for a discovered post
func (uc *DiscoveryUsecase) reason(post domain.Post, cfg domain.DiscoveryConfig) string {
	var reasons []string

	var matching []string
	for _, hashtag := range post.Hashtags {
		for _, configured := range cfg.Hashtags {
			if strings.EqualFold(hashtag, configured) {
				matching = append(matching, hashtag)
				break
			}
		}
	}
	if len(matching) > 0 {
		reasons = append(reasons, "Matching hashtags: "+strings.Join(matching, ", "))
	}

	if post.Likes > 100 {
		reasons = append(reasons, fmt.Sprintf("Good engagement: %d likes", post.Likes))
	}

	if !post.Timestamp.IsZero() && uc.now().Sub(post.Timestamp).Hours() < 6 {
		reasons = append(reasons, "Recent post")
	}

	if len(reasons) == 0 {
		return "Matches criteria"
	}
	return strings.Join(reasons, "; ")
}
