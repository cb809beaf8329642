package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"bskycrawl/pkg/bluesky"
	"bskycrawl/pkg/config"
	"bskycrawl/pkg/crawler"
	"bskycrawl/pkg/logger"
	"bskycrawl/pkg/ratelimit"
	"bskycrawl/pkg/report"
	"bskycrawl/pkg/shard"
	"bskycrawl/pkg/ui"
	"bskycrawl/pkg/window"
)

var (
	// Crawl command flags
	query        string
	since        string
	until        string
	language     string
	limit        int
	outputDir    string
	postsPerFile int
	interval     int
)

// crawlCmd represents the crawl command
var crawlCmd = &cobra.Command{
	Use:   "crawl",
	Short: "Run a full crawl over the configured date range",
	Long: `Run a crawl: partition the date range into time windows, drain each
window's search results page by page, and write the posts as rotating
gzip-compressed CSV shards under the output directory.

A failed run leaves the finalized shards and the run log as the record
of completed work; there is no resumption, a new run restarts the full
range.`,
	Example: `  # Crawl one day of posts
  bskycrawl crawl --query "eleições" --since 2024-01-01 --until 2024-01-01

  # Larger windows and smaller shards
  bskycrawl crawl --query golang --since 2024-01-01 --until 2024-01-31 \
    --interval 720 --posts-per-file 10000 --output ./data`,
	RunE: runCrawl,
}

func init() {
	crawlCmd.Flags().StringVarP(&query, "query", "q", "", "search query (required unless configured)")
	crawlCmd.Flags().StringVar(&since, "since", "", "first day of the range, YYYY-MM-DD")
	crawlCmd.Flags().StringVar(&until, "until", "", "last day of the range, YYYY-MM-DD")
	crawlCmd.Flags().StringVar(&language, "lang", "", "post language filter")
	crawlCmd.Flags().IntVar(&limit, "limit", 0, "page size per API call (max 100)")
	crawlCmd.Flags().StringVarP(&outputDir, "output", "o", "", "directory for shard output")
	crawlCmd.Flags().IntVar(&postsPerFile, "posts-per-file", 0, "records per shard before rotation")
	crawlCmd.Flags().IntVar(&interval, "interval", 0, "window length in minutes")
}

func runCrawl(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true

	cfg, err := loadConfig()
	if err != nil {
		ui.PrintError("Configuration error", err)
		return err
	}

	if err := logger.Initialize(&cfg.Logging); err != nil {
		ui.PrintError("Failed to initialize logger", err)
		return err
	}
	log := logger.GetLogger()

	ui.PrintInfo("Query", cfg.Search.Query)
	ui.PrintInfo("Range", fmt.Sprintf("%s .. %s", cfg.Crawl.Since, cfg.Crawl.Until))
	ui.PrintInfo("Output", cfg.Output.BaseDirectory)

	planner, err := window.New(cfg.Crawl.Since, cfg.Crawl.Until, cfg.Crawl.MinuteInterval, cfg.Crawl.UTCOffsetHours)
	if err != nil {
		ui.PrintError("Invalid crawl range", err)
		return err
	}

	writer, err := shard.NewWriter(cfg.Output.BaseDirectory, cfg.Output.PostsPerFile, log)
	if err != nil {
		ui.PrintError("Failed to set up output directory", err)
		return err
	}

	client := bluesky.NewClient(30*time.Second, cfg.Search.Language, cfg.Search.Limit, log)
	limiter := ratelimit.NewPacer(cfg.RateLimit.RequestsPerMinute, cfg.RateLimit.BurstSize)

	c := crawler.New(cfg, client, writer, planner, limiter)
	stats, err := c.Run()
	if err != nil {
		log.WithError(err).Error("crawl failed")
		ui.PrintError("Crawl failed", err)
		return err
	}

	reportPath, err := report.Write(cfg.Output.BaseDirectory, stats)
	if err != nil {
		log.WithError(err).Error("failed to write run report")
		ui.PrintError("Failed to write run report", err)
		return err
	}

	ui.PrintSuccess(fmt.Sprintf("Crawl completed: %d posts in %d shards", stats.TotalPosts, stats.ShardsFinalized))
	ui.PrintInfo("Report", reportPath)
	return nil
}

// loadConfig merges flags over env and file configuration
func loadConfig() (*config.Config, error) {
	flags := make(map[string]interface{})
	if query != "" {
		flags["query"] = query
	}
	if since != "" {
		flags["since"] = since
	}
	if until != "" {
		flags["until"] = until
	}
	if language != "" {
		flags["lang"] = language
	}
	if limit > 0 {
		flags["limit"] = limit
	}
	if outputDir != "" {
		flags["output"] = outputDir
	}
	if postsPerFile > 0 {
		flags["posts-per-file"] = postsPerFile
	}
	if interval > 0 {
		flags["interval"] = interval
	}
	if logLevel != "" {
		flags["log-level"] = logLevel
	}

	return config.Load(configFile, flags)
}
