package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Version information
	version   = "1.0.0"
	gitCommit = "unknown"
	buildDate = "unknown"

	// Global flags
	configFile string
	logLevel   string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "bskycrawl",
	Short: "Crawl Bluesky search results into compressed CSV shards",
	Long: `bskycrawl retrieves Bluesky posts matching a search query across a
historical date range and writes them as rotating, gzip-compressed CSV
shards.

The date range is partitioned into fixed-size time windows so each
search stays under the API's result cap; every window's pagination
cursor is drained fully before the next window starts. Each run writes
an append-only log of every API call and shard lifecycle event.`,
	Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, gitCommit, buildDate),
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "config file (default searches .bskycrawl.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")

	rootCmd.AddCommand(crawlCmd)
}
