package models

import "time"

// Post is a single search result. Only the fields that survive into the
// CSV output are kept; everything else the API returns is discarded at
// decode time.
type Post struct {
	Handle      string
	CreatedAt   string // raw RFC3339 string as returned by the API
	Text        string
	ReplyCount  int
	RepostCount int
	LikeCount   int
	QuoteCount  int
}

// Page is one page of search results. An empty Cursor means this is the
// last page of its window.
type Page struct {
	Posts  []Post
	Cursor string
}

// TimeWindow is a closed-inclusive [Since, Until] interval. Both bounds
// carry the planner's fixed zone offset.
type TimeWindow struct {
	Since time.Time
	Until time.Time
}

// RunStats accumulates counters for one crawl execution. It is
// process-local and never persisted.
type RunStats struct {
	Query            string    `json:"query"`
	Since            string    `json:"since"`
	Until            string    `json:"until"`
	TotalPosts       int       `json:"total_posts"`
	TotalPages       int       `json:"total_pages"`
	WindowsCompleted int       `json:"windows_completed"`
	ShardsFinalized  int       `json:"shards_finalized"`
	StartedAt        time.Time `json:"started_at"`
	FinishedAt       time.Time `json:"finished_at"`
}
