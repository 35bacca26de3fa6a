package domain

import "time"

// EngagementRecord is the durable projection of an EngagementResult.
// ID is assigned by the ledger at insertion; rows are append-only.
type EngagementRecord struct {
	ID         int64
	RunID      string
	Platform   Platform
	Action     Action
	PostID     string
	PostAuthor string
	Comment    string
	Success    bool
	Error      string
	Timestamp  time.Time
}

// DailyStat is one calendar date's aggregate counters.
// For every ledger record the matching date's counters are incremented
// exactly once, atomically with the insert.
type DailyStat struct {
	Date         string // YYYY-MM-DD
	Comments     int
	Likes        int
	Follows      int
	SuccessCount int
	FailureCount int
}

// ActionTotal is the all-time total and success count for one action kind
type ActionTotal struct {
	Total   int
	Success int
}

// TotalStats is the overall engagement summary
type TotalStats struct {
	Today    int
	ThisWeek int
	ByAction map[Action]ActionTotal
}
