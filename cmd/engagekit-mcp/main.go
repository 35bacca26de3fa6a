package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/driftware/engagekit/internal/biz/domain"
	"github.com/driftware/engagekit/internal/biz/repo"
	"github.com/driftware/engagekit/internal/biz/usecase"
	"github.com/driftware/engagekit/internal/conf"
	"github.com/driftware/engagekit/internal/data"
	"github.com/driftware/engagekit/internal/mcpserver"
	"github.com/driftware/engagekit/internal/service"
	"github.com/driftware/engagekit/pkg/logging"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := conf.LoadFromEnv()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid config: %v", err)
	}

	// Logs must not touch stdout: that is the MCP transport
	logger := logging.NewLogger()
	logger.SetOutput(os.Stderr)

	adapters := make(map[domain.Platform]repo.AdapterRepo)
	if cfg.Feed.Path != "" {
		adapter, err := data.NewFeedAdapter(domain.PlatformInstagram, cfg.Feed.Path)
		if err != nil {
			log.Fatalf("Failed to load feed: %v", err)
		}
		adapters[domain.PlatformInstagram] = adapter
	}

	ledger, err := data.NewLedgerRepo(cfg.Ledger.DBPath)
	if err != nil {
		log.Fatalf("Failed to open ledger: %v", err)
	}

	discoveryUC := usecase.NewDiscoveryUsecase(adapters, logger)
	commentUC := usecase.NewCommentUsecase(nil, logger)
	engagementUC := usecase.NewEngagementUsecase(commentUC, logger)
	engine := service.NewEngine(adapters, discoveryUC, engagementUC, ledger, logger)
	defer engine.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	srv := mcpserver.NewServer(engine)
	if err := srv.Run(ctx); err != nil && ctx.Err() == nil {
		log.Fatalf("MCP server error: %v", err)
	}
}
