package mcpserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/driftware/engagekit/internal/biz/domain"
	"github.com/driftware/engagekit/internal/service"
)

// EngageMCPServer exposes read-only discovery and ledger tools over MCP.
// Engagement actions are deliberately not exposed here.
type EngageMCPServer struct {
	server *mcp.Server
	engine *service.Engine
}

// NewServer creates an MCP server over the engine
func NewServer(engine *service.Engine) *EngageMCPServer {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "engagekit-tools",
		Version: "v1.0.0",
	}, nil)

	s := &EngageMCPServer{
		server: server,
		engine: engine,
	}
	s.registerTools()
	return s
}

// registerTools registers all engagement-related MCP tools
func (s *EngageMCPServer) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "engage_discover",
		Description: "Discover and rank candidate posts for the given hashtags and keywords. Read-only: nothing is engaged or recorded.",
	}, s.handleDiscover)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "engage_stats",
		Description: "Get overall engagement statistics: today's count, this week's count, and per-action totals.",
	}, s.handleStats)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "engage_daily_stats",
		Description: "Get per-day engagement aggregates for the last N days.",
	}, s.handleDailyStats)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "engage_recent",
		Description: "Get the most recent engagement records from the ledger.",
	}, s.handleRecent)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "engage_check",
		Description: "Check whether a post has already been commented on.",
	}, s.handleCheck)
}

// DiscoverInput selects what to discover
type DiscoverInput struct {
	Platform string   `json:"platform,omitempty" jsonschema:"description=Platform tag (instagram, twitter, tiktok, linkedin). Defaults to instagram."`
	Hashtags []string `json:"hashtags,omitempty" jsonschema:"description=Hashtags to search for"`
	Keywords []string `json:"keywords,omitempty" jsonschema:"description=Keywords to search for"`
	Limit    int      `json:"limit,omitempty" jsonschema:"description=Maximum number of candidates (default 20)"`
}

// DiscoveredCandidate is one ranked discovery result
type DiscoveredCandidate struct {
	PostID string  `json:"post_id"`
	URL    string  `json:"url"`
	Author string  `json:"author"`
	Score  float64 `json:"score"`
	Reason string  `json:"reason"`
}

// DiscoverOutput contains the ranked candidates
type DiscoverOutput struct {
	Candidates []DiscoveredCandidate `json:"candidates"`
	Error      string                `json:"error,omitempty"`
}

func (s *EngageMCPServer) handleDiscover(ctx context.Context, req *mcp.CallToolRequest, input DiscoverInput) (*mcp.CallToolResult, DiscoverOutput, error) {
	cfg := domain.DefaultDiscoveryConfig()
	if input.Platform != "" {
		platform, err := domain.ParsePlatform(input.Platform)
		if err != nil {
			return nil, DiscoverOutput{Error: err.Error()}, nil
		}
		cfg.Platforms = []domain.Platform{platform}
	}
	cfg.Hashtags = input.Hashtags
	cfg.Keywords = input.Keywords
	if input.Limit > 0 {
		cfg.Limit = input.Limit
	}

	discovered, err := s.engine.Discover(ctx, cfg)
	if err != nil {
		return nil, DiscoverOutput{Error: err.Error()}, nil
	}

	out := DiscoverOutput{Candidates: make([]DiscoveredCandidate, 0, len(discovered))}
	for _, d := range discovered {
		out.Candidates = append(out.Candidates, DiscoveredCandidate{
			PostID: d.Post.PostID,
			URL:    d.Post.URL,
			Author: d.Post.Author,
			Score:  d.Score,
			Reason: d.Reason,
		})
	}
	return nil, out, nil
}

// StatsInput is empty - no input needed
type StatsInput struct{}

// ActionStat is the total and success count for one action kind
type ActionStat struct {
	Action  string `json:"action"`
	Total   int    `json:"total"`
	Success int    `json:"success"`
}

// StatsOutput contains the overall summary
type StatsOutput struct {
	Today    int          `json:"today"`
	ThisWeek int          `json:"this_week"`
	ByAction []ActionStat `json:"by_action"`
	Error    string       `json:"error,omitempty"`
}

func (s *EngageMCPServer) handleStats(ctx context.Context, req *mcp.CallToolRequest, input StatsInput) (*mcp.CallToolResult, StatsOutput, error) {
	stats, err := s.engine.Stats(ctx)
	if err != nil {
		return nil, StatsOutput{Error: err.Error()}, nil
	}

	out := StatsOutput{Today: stats.Today, ThisWeek: stats.ThisWeek}
	for action, total := range stats.ByAction {
		out.ByAction = append(out.ByAction, ActionStat{
			Action:  string(action),
			Total:   total.Total,
			Success: total.Success,
		})
	}
	return nil, out, nil
}

// DailyStatsInput specifies how many days to retrieve
type DailyStatsInput struct {
	Days int `json:"days,omitempty" jsonschema:"description=Number of days to retrieve (default 7)"`
}

// DailyStatsOutput contains per-day aggregates
type DailyStatsOutput struct {
	Days  []domain.DailyStat `json:"days"`
	Error string             `json:"error,omitempty"`
}

func (s *EngageMCPServer) handleDailyStats(ctx context.Context, req *mcp.CallToolRequest, input DailyStatsInput) (*mcp.CallToolResult, DailyStatsOutput, error) {
	days := input.Days
	if days <= 0 {
		days = 7
	}

	stats, err := s.engine.DailyStats(ctx, days)
	if err != nil {
		return nil, DailyStatsOutput{Error: err.Error()}, nil
	}
	return nil, DailyStatsOutput{Days: stats}, nil
}

// RecentInput specifies how many records to retrieve
type RecentInput struct {
	Limit int `json:"limit,omitempty" jsonschema:"description=Maximum number of records (default 20)"`
}

// RecentRecord is one ledger record
type RecentRecord struct {
	Platform string `json:"platform"`
	Action   string `json:"action"`
	PostID   string `json:"post_id"`
	Author   string `json:"author"`
	Comment  string `json:"comment,omitempty"`
	Success  bool   `json:"success"`
	Error    string `json:"error,omitempty"`
}

// RecentOutput contains recent ledger records
type RecentOutput struct {
	Records []RecentRecord `json:"records"`
	Error   string         `json:"error,omitempty"`
}

func (s *EngageMCPServer) handleRecent(ctx context.Context, req *mcp.CallToolRequest, input RecentInput) (*mcp.CallToolResult, RecentOutput, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = 20
	}

	records, err := s.engine.Recent(ctx, limit)
	if err != nil {
		return nil, RecentOutput{Error: err.Error()}, nil
	}

	out := RecentOutput{Records: make([]RecentRecord, 0, len(records))}
	for _, rec := range records {
		out.Records = append(out.Records, RecentRecord{
			Platform: string(rec.Platform),
			Action:   string(rec.Action),
			PostID:   rec.PostID,
			Author:   rec.PostAuthor,
			Comment:  rec.Comment,
			Success:  rec.Success,
			Error:    rec.Error,
		})
	}
	return nil, out, nil
}

// CheckInput identifies the post to check
type CheckInput struct {
	PostID string `json:"post_id" jsonschema:"description=The post id to check"`
}

// CheckOutput reports dedup state
type CheckOutput struct {
	Engaged bool   `json:"engaged"`
	Error   string `json:"error,omitempty"`
}

func (s *EngageMCPServer) handleCheck(ctx context.Context, req *mcp.CallToolRequest, input CheckInput) (*mcp.CallToolResult, CheckOutput, error) {
	engaged, err := s.engine.IsEngaged(ctx, input.PostID)
	if err != nil {
		return nil, CheckOutput{Error: err.Error()}, nil
	}
	return nil, CheckOutput{Engaged: engaged}, nil
}

// Run starts the MCP server with stdio transport
func (s *EngageMCPServer) Run(ctx context.Context) error {
	return s.server.Run(ctx, &mcp.StdioTransport{})
}
