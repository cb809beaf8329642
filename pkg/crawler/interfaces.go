package crawler

import "bskycrawl/pkg/models"

// PostSource fetches one page of search results for a query within a
// time window. An empty cursor requests the first page.
type PostSource interface {
	SearchPosts(query string, w models.TimeWindow, cursor string) (*models.Page, error)
}
