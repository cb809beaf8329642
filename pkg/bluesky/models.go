package bluesky

import "bskycrawl/pkg/models"

// SearchResponse is the wire shape of a searchPosts page. Fields the
// crawl does not output are left undeclared and dropped at decode time.
type SearchResponse struct {
	Cursor string     `json:"cursor"`
	Posts  []PostView `json:"posts"`
}

// PostView is one post as returned by the API
type PostView struct {
	Author      Author `json:"author"`
	Record      Record `json:"record"`
	ReplyCount  int    `json:"replyCount"`
	RepostCount int    `json:"repostCount"`
	LikeCount   int    `json:"likeCount"`
	QuoteCount  int    `json:"quoteCount"`
}

// Author is the posting account
type Author struct {
	Handle string `json:"handle"`
}

// Record is the post content
type Record struct {
	CreatedAt string `json:"createdAt"`
	Text      string `json:"text"`
}

// ToPage converts a decoded response into the crawl's page model,
// preserving the source's ordering.
func (r *SearchResponse) ToPage() *models.Page {
	page := &models.Page{
		Posts:  make([]models.Post, 0, len(r.Posts)),
		Cursor: r.Cursor,
	}
	for _, pv := range r.Posts {
		page.Posts = append(page.Posts, models.Post{
			Handle:      pv.Author.Handle,
			CreatedAt:   pv.Record.CreatedAt,
			Text:        pv.Record.Text,
			ReplyCount:  pv.ReplyCount,
			RepostCount: pv.RepostCount,
			LikeCount:   pv.LikeCount,
			QuoteCount:  pv.QuoteCount,
		})
	}
	return page
}
