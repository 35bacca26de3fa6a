package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/driftware/engagekit/internal/biz/domain"
	"github.com/driftware/engagekit/internal/biz/repo"
)

const commentTemperature = 0.8

var jsonArrayPattern = regexp.MustCompile(`(?s)\[.*\]`)

// commentTemplates is the deterministic fallback pool.
// {interest} is replaced with the post's first hashtag.
var commentTemplates = []string{
	"This is exactly what I've been looking for! 👏",
	"Love this! What made you get into {interest}?",
	"This is inspiring! Any tips for beginners?",
	"Where is this? Looks amazing! 🧗",
	"This is goals! 🔥 How long have you been doing this?",
	"Just started getting into {interest} - this gives me motivation!",
	"The community around here is so supportive 💪",
	"Absolutely incredible shot! What camera/filter did you use?",
}

// CommentUsecase generates candidate comments for a post
type CommentUsecase struct {
	completion repo.CompletionRepo // nil means template-only
	log        *logrus.Logger
}

// NewCommentUsecase creates a comment usecase.
// completion may be nil, in which case only the template pool is used.
func NewCommentUsecase(completion repo.CompletionRepo, log *logrus.Logger) *CommentUsecase {
	return &CommentUsecase{completion: completion, log: log}
}

// Generate returns candidate comment strings for a post, best first.
// An empty result means "no usable comment, skip this post". The model path
// can return empty when its output is unparseable; the template path never
// fails.
func (uc *CommentUsecase) Generate(ctx context.Context, post domain.Post, cfg domain.EngagementConfig) []string {
	if uc.completion == nil {
		return uc.templateComments(post)
	}

	prompt := uc.buildPrompt(post, cfg)

	response, err := uc.completion.Complete(ctx, prompt, commentTemperature)
	if err != nil {
		uc.log.WithFields(logrus.Fields{
			"post_id": post.PostID,
			"error":   err,
		}).Warn("comment generation failed, using templates")
		return uc.templateComments(post)
	}

	return parseComments(response)
}

// buildPrompt embeds the audience profile and post details into the
// generation prompt
func (uc *CommentUsecase) buildPrompt(post domain.Post, cfg domain.EngagementConfig) string {
	demographics, _ := json.Marshal(cfg.Audience.Demographics)

	hashtags := "None"
	if len(post.Hashtags) > 0 {
		hashtags = strings.Join(post.Hashtags, ", ")
	}

	var sb strings.Builder
	sb.WriteString("You are a social media engagement specialist. Generate 3-5 genuine, contextual comments for the following post.\n\n")

	sb.WriteString("Target Audience:\n")
	fmt.Fprintf(&sb, "- Interests: %s\n", strings.Join(cfg.Audience.Interests, ", "))
	fmt.Fprintf(&sb, "- Demographics: %s\n", demographics)
	fmt.Fprintf(&sb, "- Pain points: %s\n", strings.Join(cfg.Audience.PainPoints, ", "))
	fmt.Fprintf(&sb, "- Desires: %s\n\n", strings.Join(cfg.Audience.Desires, ", "))

	sb.WriteString("Post Details:\n")
	fmt.Fprintf(&sb, "- Author: %s\n", post.Author)
	fmt.Fprintf(&sb, "- Content: %s\n", post.Content)
	fmt.Fprintf(&sb, "- Hashtags: %s\n", hashtags)
	fmt.Fprintf(&sb, "- Likes: %d\n\n", post.Likes)

	sb.WriteString("Requirements:\n")
	fmt.Fprintf(&sb, "- Tone: %s\n", cfg.Tone)
	sb.WriteString("- Length: 1-3 sentences max\n")
	sb.WriteString("- Genuine and conversational\n")
	sb.WriteString("- NO generic spam like \"great post!\", \"🔥🔥🔥\", \"nicee\"\n")
	sb.WriteString("- Ask questions to start conversation\n")
	sb.WriteString("- Show you actually read/understood the post\n\n")
	sb.WriteString("Return ONLY a JSON array of strings, nothing else. Example:\n")
	sb.WriteString(`["Comment 1", "Comment 2", "Comment 3"]` + "\n")

	return sb.String()
}

// parseComments extracts comment candidates from raw model output.
// Tries a JSON string array first, then falls back to lines longer than
// 10 characters. Returns nil when nothing usable is found.
func parseComments(response string) []string {
	if match := jsonArrayPattern.FindString(response); match != "" {
		var comments []string
		if err := json.Unmarshal([]byte(match), &comments); err == nil {
			return comments
		}
	}

	var comments []string
	for _, line := range strings.Split(response, "\n") {
		line = strings.TrimSpace(line)
		if len(line) > 10 {
			comments = append(comments, line)
		}
	}
	return comments
}

// templateComments fills the fallback pool with the post's first hashtag,
// capped at 5 entries
func (uc *CommentUsecase) templateComments(post domain.Post) []string {
	interest := "this"
	if len(post.Hashtags) > 0 {
		interest = post.Hashtags[0]
	}

	comments := make([]string, 0, 5)
	for _, template := range commentTemplates {
		comments = append(comments, strings.ReplaceAll(template, "{interest}", interest))
		if len(comments) == 5 {
			break
		}
	}
	return comments
}
