package bluesky

import (
	"fmt"
	"net/url"
	"time"

	"bskycrawl/pkg/models"
)

const (
	// BaseURL is the public, unauthenticated Bluesky AppView
	BaseURL = "https://public.api.bsky.app"

	// SearchEndpoint is the post search XRPC method
	SearchEndpoint = "/xrpc/app.bsky.feed.searchPosts"

	// SortLatest asks the API for reverse-chronological ordering
	SortLatest = "latest"

	// DefaultLimit is the page size used when none is configured
	DefaultLimit = 25

	// MaxLimit is the largest page size the API accepts
	MaxLimit = 100
)

// SearchURL constructs the search request URL for one page of results.
// Window bounds are sent as RFC3339 timestamps with their explicit
// offset. An empty cursor requests the first page of the window.
func SearchURL(base, query string, w models.TimeWindow, lang string, limit int, cursor string) string {
	if limit <= 0 {
		limit = DefaultLimit
	} else if limit > MaxLimit {
		limit = MaxLimit
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("sort", SortLatest)
	params.Set("since", w.Since.Format(time.RFC3339))
	params.Set("until", w.Until.Format(time.RFC3339))
	if lang != "" {
		params.Set("lang", lang)
	}
	params.Set("limit", fmt.Sprintf("%d", limit))
	if cursor != "" {
		params.Set("cursor", cursor)
	}

	return fmt.Sprintf("%s%s?%s", base, SearchEndpoint, params.Encode())
}
