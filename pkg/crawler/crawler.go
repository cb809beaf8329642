package crawler

import (
	"time"

	"bskycrawl/pkg/config"
	"bskycrawl/pkg/logger"
	"bskycrawl/pkg/models"
	"bskycrawl/pkg/ratelimit"
	"bskycrawl/pkg/shard"
	"bskycrawl/pkg/window"
)

// Crawler drives the crawl: it walks the planner's windows strictly in
// order, drains each window's pagination cursor fully before advancing,
// and forwards every page to the shard writer. There is no parallelism
// anywhere, so output ordering across shards is non-decreasing by
// window start and, within a window, the source's native ordering.
type Crawler struct {
	source  PostSource
	writer  *shard.Writer
	planner *window.Planner
	limiter ratelimit.Limiter
	cfg     *config.Config
	logger  logger.Logger
	stats   models.RunStats
}

// New creates a Crawler from its collaborators.
func New(cfg *config.Config, source PostSource, writer *shard.Writer, planner *window.Planner, limiter ratelimit.Limiter) *Crawler {
	return &Crawler{
		source:  source,
		writer:  writer,
		planner: planner,
		limiter: limiter,
		cfg:     cfg,
		logger:  logger.GetLogger(),
	}
}

// Run executes the full crawl. On normal completion the last open
// shard is finalized and run stats are returned. On any error the run
// aborts immediately: finalized shards are the durable high-water
// mark, and a shard left open mid-fetch stays on disk unfinalized.
func (c *Crawler) Run() (*models.RunStats, error) {
	c.stats = models.RunStats{
		Query:     c.cfg.Search.Query,
		Since:     c.cfg.Crawl.Since,
		Until:     c.cfg.Crawl.Until,
		StartedAt: time.Now(),
	}

	windows := c.planner.Windows()
	c.logger.InfoWithFields("starting crawl", map[string]interface{}{
		"query":   c.cfg.Search.Query,
		"since":   c.cfg.Crawl.Since,
		"until":   c.cfg.Crawl.Until,
		"windows": len(windows),
	})

	for _, w := range windows {
		if err := c.runWindow(w); err != nil {
			c.logger.WithError(err).WithFields(map[string]interface{}{
				"window_since": w.Since.Format(time.RFC3339),
				"window_until": w.Until.Format(time.RFC3339),
				"open_shard":   c.writer.OpenPath(),
			}).Error("crawl aborted")
			return nil, err
		}
		c.stats.WindowsCompleted++
	}

	// The loop returned normally; flush and finalize whatever is
	// still open.
	if err := c.writer.Close(); err != nil {
		c.logger.WithError(err).Error("failed to finalize last shard")
		return nil, err
	}

	c.stats.TotalPosts = c.writer.TotalRecords()
	c.stats.ShardsFinalized = c.writer.FinalizedCount()
	c.stats.FinishedAt = time.Now()

	c.logger.InfoWithFields("crawl completed", map[string]interface{}{
		"total_posts":      c.stats.TotalPosts,
		"total_pages":      c.stats.TotalPages,
		"windows":          c.stats.WindowsCompleted,
		"shards_finalized": c.stats.ShardsFinalized,
		"duration":         c.stats.FinishedAt.Sub(c.stats.StartedAt),
	})

	return &c.stats, nil
}

// runWindow drains one window: fetch with an empty cursor, append each
// page in source order, continue while a cursor comes back. A page
// with no posts ends the window even when it carries a cursor, since
// cursors past the end of the result set return empty pages.
func (c *Crawler) runWindow(w models.TimeWindow) error {
	sinceStr := w.Since.Format(time.RFC3339)
	untilStr := w.Until.Format(time.RFC3339)

	cursor := ""
	posts := 0
	pages := 0

	for {
		c.limiter.Wait()

		page, err := c.source.SearchPosts(c.cfg.Search.Query, w, cursor)
		if err != nil {
			return err
		}
		pages++
		c.stats.TotalPages++

		if len(page.Posts) == 0 {
			c.logger.DebugWithFields("empty page, window exhausted", map[string]interface{}{
				"since":  sinceStr,
				"until":  untilStr,
				"cursor": cursor,
			})
			break
		}

		for _, p := range page.Posts {
			if err := c.writer.Append(p); err != nil {
				return err
			}
		}
		posts += len(page.Posts)

		if page.Cursor == "" {
			break
		}
		cursor = page.Cursor
	}

	logger.LogWindowDone(sinceStr, untilStr, posts, pages)
	return nil
}
