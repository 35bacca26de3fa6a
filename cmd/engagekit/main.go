package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/driftware/engagekit/internal/biz/domain"
	"github.com/driftware/engagekit/internal/biz/repo"
	"github.com/driftware/engagekit/internal/biz/usecase"
	"github.com/driftware/engagekit/internal/conf"
	"github.com/driftware/engagekit/internal/data"
	"github.com/driftware/engagekit/internal/infra/llm"
	"github.com/driftware/engagekit/internal/service"
	"github.com/driftware/engagekit/pkg/logging"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	cfg := conf.LoadFromEnv()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid config: %v", err)
	}

	ctx := context.Background()

	var err error
	switch os.Args[1] {
	case "discover":
		err = cmdDiscover(ctx, cfg, os.Args[2:])
	case "engage":
		err = cmdEngage(ctx, cfg, os.Args[2:])
	case "stats":
		err = cmdStats(ctx, cfg, os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
	if err != nil {
		log.Fatalf("%s: %v", os.Args[1], err)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "Usage: engagekit <discover|engage|stats> [flags]")
	fmt.Fprintln(os.Stderr, "  discover  rank candidate posts without engaging")
	fmt.Fprintln(os.Stderr, "  engage    run a discovery + engagement campaign")
	fmt.Fprintln(os.Stderr, "  stats     show engagement statistics")
}

// buildEngine wires the engine for the requested platforms.
// When FEED_PATH is set, each platform gets a file-backed feed adapter;
// otherwise no adapters are registered and every platform is skipped.
func buildEngine(cfg *conf.Config, platforms []domain.Platform) (*service.Engine, error) {
	logger := logging.NewTextLogger()

	adapters := make(map[domain.Platform]repo.AdapterRepo)
	if cfg.Feed.Path != "" {
		for _, platform := range platforms {
			adapter, err := data.NewFeedAdapter(platform, cfg.Feed.Path)
			if err != nil {
				return nil, fmt.Errorf("feed adapter for %s: %w", platform, err)
			}
			adapters[platform] = adapter
		}
	}

	var client *llm.Client
	if cfg.LLM.Enabled() {
		client = llm.NewClient(cfg.LLM.APIKey, cfg.LLM.BaseURL, cfg.LLM.Model)
		logger.Info("LLM comment generation enabled")
	} else {
		logger.Info("no LLM configured, using template comments")
	}

	ledger, err := data.NewLedgerRepo(cfg.Ledger.DBPath)
	if err != nil {
		return nil, fmt.Errorf("open ledger: %w", err)
	}

	discoveryUC := usecase.NewDiscoveryUsecase(adapters, logger)
	commentUC := usecase.NewCommentUsecase(data.NewCompletionRepo(client), logger)
	engagementUC := usecase.NewEngagementUsecase(commentUC, logger)

	return service.NewEngine(adapters, discoveryUC, engagementUC, ledger, logger), nil
}

func cmdDiscover(ctx context.Context, cfg *conf.Config, args []string) error {
	fs := flag.NewFlagSet("discover", flag.ExitOnError)
	campaignPath := fs.String("campaign", "", "campaign YAML file")
	platform := fs.String("platform", "instagram", "platform tag")
	hashtags := fs.String("hashtags", "", "comma-separated hashtags")
	keywords := fs.String("keywords", "", "comma-separated keywords")
	location := fs.String("location", "", "location filter")
	limit := fs.Int("limit", 20, "maximum candidates")
	fs.Parse(args)

	dcfg, _, _, err := resolveCampaign(*campaignPath, *platform, *hashtags, *keywords, *location, *limit)
	if err != nil {
		return err
	}

	engine, err := buildEngine(cfg, dcfg.Platforms)
	if err != nil {
		return err
	}
	defer engine.Close()

	discovered, err := engine.Discover(ctx, dcfg)
	if err != nil {
		return err
	}

	fmt.Printf("Found %d posts:\n\n", len(discovered))
	for _, d := range discovered {
		fmt.Printf("  %s\n", d.Post.URL)
		fmt.Printf("    Score: %.1f | %s\n\n", d.Score, d.Reason)
	}
	return nil
}

func cmdEngage(ctx context.Context, cfg *conf.Config, args []string) error {
	fs := flag.NewFlagSet("engage", flag.ExitOnError)
	campaignPath := fs.String("campaign", "", "campaign YAML file")
	platform := fs.String("platform", "instagram", "platform tag")
	hashtags := fs.String("hashtags", "", "comma-separated hashtags")
	keywords := fs.String("keywords", "", "comma-separated keywords")
	location := fs.String("location", "", "location filter")
	interests := fs.String("interests", "", "comma-separated audience interests")
	tone := fs.String("tone", "friendly", "comment tone")
	limit := fs.Int("limit", 50, "max posts to process")
	dailyLimit := fs.Int("daily-limit", 20, "max actions this run")
	minDelay := fs.Int("min-delay", 30, "min delay between actions (seconds)")
	maxDelay := fs.Int("max-delay", 120, "max delay between actions (seconds)")
	fs.Parse(args)

	dcfg, ecfg, audience, err := resolveCampaign(*campaignPath, *platform, *hashtags, *keywords, *location, *limit)
	if err != nil {
		return err
	}
	if *campaignPath == "" {
		audience = domain.TargetAudience{Interests: splitList(*interests)}
		ecfg = domain.DefaultEngagementConfig()
		ecfg.Tone = *tone
		ecfg.MaxDaily = *dailyLimit
		ecfg.MinDelaySeconds = *minDelay
		ecfg.MaxDelaySeconds = *maxDelay
		if err := ecfg.Validate(); err != nil {
			return err
		}
	}

	engine, err := buildEngine(cfg, dcfg.Platforms)
	if err != nil {
		return err
	}
	defer engine.Close()

	fmt.Println("Starting engagement campaign...")
	report, err := engine.DiscoverAndEngage(ctx, audience, dcfg, ecfg)
	if err != nil {
		return err
	}

	fmt.Printf("\nRun %s results:\n", report.RunID)
	fmt.Printf("  Discovered: %d\n", len(report.Discovered))
	fmt.Printf("  Engaged:    %d\n", len(report.Engaged))
	fmt.Printf("  Failed:     %d\n", len(report.Failed))
	return nil
}

func cmdStats(ctx context.Context, cfg *conf.Config, args []string) error {
	fs := flag.NewFlagSet("stats", flag.ExitOnError)
	days := fs.Int("days", 7, "days of daily breakdown")
	fs.Parse(args)

	engine, err := buildEngine(cfg, nil)
	if err != nil {
		return err
	}
	defer engine.Close()

	stats, err := engine.Stats(ctx)
	if err != nil {
		return err
	}

	fmt.Println("Statistics")
	fmt.Println(strings.Repeat("-", 30))
	fmt.Printf("Today: %d engagements\n", stats.Today)
	fmt.Printf("This week: %d engagements\n\n", stats.ThisWeek)
	fmt.Println("By action:")
	for action, total := range stats.ByAction {
		rate := 0.0
		if total.Total > 0 {
			rate = float64(total.Success) / float64(total.Total) * 100
		}
		fmt.Printf("  %s: %d/%d (%.1f%%)\n", action, total.Success, total.Total, rate)
	}

	daily, err := engine.DailyStats(ctx, *days)
	if err != nil {
		return err
	}
	if len(daily) > 0 {
		fmt.Printf("\nLast %d days:\n", *days)
		for _, d := range daily {
			fmt.Printf("  %s: %d comments, %d likes, %d follows (%d ok, %d failed)\n",
				d.Date, d.Comments, d.Likes, d.Follows, d.SuccessCount, d.FailureCount)
		}
	}
	return nil
}

// resolveCampaign builds configs from a campaign file when given, otherwise
// from the CLI flags
func resolveCampaign(campaignPath, platform, hashtags, keywords, location string, limit int) (domain.DiscoveryConfig, domain.EngagementConfig, domain.TargetAudience, error) {
	if campaignPath != "" {
		campaign, err := conf.LoadCampaign(campaignPath)
		if err != nil {
			return domain.DiscoveryConfig{}, domain.EngagementConfig{}, domain.TargetAudience{}, err
		}
		dcfg, err := campaign.ToDiscoveryConfig()
		if err != nil {
			return domain.DiscoveryConfig{}, domain.EngagementConfig{}, domain.TargetAudience{}, err
		}
		ecfg, err := campaign.ToEngagementConfig()
		if err != nil {
			return domain.DiscoveryConfig{}, domain.EngagementConfig{}, domain.TargetAudience{}, err
		}
		return dcfg, ecfg, campaign.ToTargetAudience(), nil
	}

	tag, err := domain.ParsePlatform(platform)
	if err != nil {
		return domain.DiscoveryConfig{}, domain.EngagementConfig{}, domain.TargetAudience{}, err
	}

	dcfg := domain.DefaultDiscoveryConfig()
	dcfg.Platforms = []domain.Platform{tag}
	dcfg.Hashtags = splitList(hashtags)
	dcfg.Keywords = splitList(keywords)
	dcfg.Location = location
	if limit > 0 {
		dcfg.Limit = limit
	}
	if err := dcfg.Validate(); err != nil {
		return domain.DiscoveryConfig{}, domain.EngagementConfig{}, domain.TargetAudience{}, err
	}
	return dcfg, domain.DefaultEngagementConfig(), domain.TargetAudience{}, nil
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
