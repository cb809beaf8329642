// Package bluesky implements the client for the public Bluesky post
// search endpoint (app.bsky.feed.searchPosts).
//
// The client is deliberately thin: one GET per call, typed errors for
// transport, HTTP status, and decode failures, and no retry logic. The
// crawl's error policy is that any failure aborts the run, so the
// client surfaces everything and recovers nothing.
//
// Only the fields that survive into the output are decoded from the
// response: author handle, record createdAt and text, and the four
// engagement counts. Everything else the API returns is discarded.
package bluesky
