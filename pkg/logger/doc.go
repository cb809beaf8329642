// Package logger provides structured logging for the crawler, built on
// zerolog.
//
// The Logger interface wraps zerolog so the rest of the codebase never
// depends on it directly. When a log file is configured, events are
// written both to the console (pretty format) and to the file as
// newline-delimited JSON with RFC3339 timestamps. The file is opened in
// append mode and written without buffering, so the run log is durable
// up to the last emitted event.
//
// The helpers file carries the crawl-specific call sites: one line per
// API request (logged before the request is issued), one per shard
// lifecycle transition, one per completed window.
package logger
