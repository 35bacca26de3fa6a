package usecase

import (
	"context"
	"math/rand"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/driftware/engagekit/internal/biz/domain"
	"github.com/driftware/engagekit/internal/biz/repo"
)

// ResultSink is invoked synchronously after each attempted action.
// Failures inside the sink are the caller's concern; the executor neither
// retries nor suppresses them.
type ResultSink func(post domain.Post, result domain.EngagementResult)

// EngagementUsecase walks a candidate list and performs paced, quota-limited
// comment actions, one at a time
type EngagementUsecase struct {
	comments *CommentUsecase
	log      *logrus.Logger

	// Injected for tests; default to time.Sleep and math/rand
	sleep func(time.Duration)
	randN func(n int) int
}

// NewEngagementUsecase creates an engagement usecase
func NewEngagementUsecase(comments *CommentUsecase, log *logrus.Logger) *EngagementUsecase {
	return &EngagementUsecase{
		comments: comments,
		log:      log,
		sleep:    time.Sleep,
		randN:    rand.Intn,
	}
}

// Engage processes posts in order, producing one result per attempted post.
// The run stops after cfg.MaxDaily attempts. Every attempt is preceded by a
// uniformly random delay in [MinDelaySeconds, MaxDelaySeconds]. Posts with no
// generated comment are skipped without a result; adapter failures become
// failed results and never abort the loop.
func (uc *EngagementUsecase) Engage(
	ctx context.Context,
	posts []domain.Post,
	adapter repo.AdapterRepo,
	cfg domain.EngagementConfig,
	onResult ResultSink,
) []domain.EngagementResult {
	var results []domain.EngagementResult

	for i, post := range posts {
		if i >= cfg.MaxDaily {
			uc.log.WithField("max_daily", cfg.MaxDaily).Info("reached daily limit")
			break
		}

		delay := uc.delay(cfg)
		uc.log.WithFields(logrus.Fields{
			"post_id": post.PostID,
			"delay":   delay,
		}).Debug("waiting before next engagement")
		uc.sleep(delay)

		comments := uc.comments.Generate(ctx, post, cfg)
		if len(comments) == 0 {
			uc.log.WithField("post_id", post.PostID).Info("skipping post, no comments generated")
			continue
		}

		result, err := adapter.Comment(ctx, post.PostID, comments[0])
		if err != nil {
			result = domain.EngagementResult{
				Success:   false,
				Platform:  post.Platform,
				Action:    domain.ActionComment,
				PostID:    post.PostID,
				Error:     err.Error(),
				Timestamp: time.Now(),
			}
		}
		results = append(results, result)

		if result.Success {
			uc.log.WithField("post_id", post.PostID).Info("commented")
		} else {
			uc.log.WithFields(logrus.Fields{
				"post_id": post.PostID,
				"error":   result.Error,
			}).Warn("engagement failed")
		}

		if onResult != nil {
			onResult(post, result)
		}
	}

	return results
}

// delay samples a uniform random duration in [min, max] seconds
func (uc *EngagementUsecase) delay(cfg domain.EngagementConfig) time.Duration {
	seconds := cfg.MinDelaySeconds
	if spread := cfg.MaxDelaySeconds - cfg.MinDelaySeconds; spread > 0 {
		seconds += uc.randN(spread + 1)
	}
	return time.Duration(seconds) * time.Second
}
