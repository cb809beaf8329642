// Package crawler orchestrates the time-windowed crawl.
//
// The Crawler walks the window planner's partition of the date range
// in order. For each window it follows the search endpoint's
// continuation cursor until the window is exhausted, forwarding every
// page of posts to the shard writer. Windows, pages within a window,
// and records within a page are all processed strictly sequentially;
// exactly one request is ever in flight.
//
// Errors are never recovered here: any transport, HTTP status, decode,
// or filesystem failure aborts the run. The shard writer is only
// closed (which finalizes a non-empty open shard) when the crawl loop
// returns normally, so a mid-fetch failure leaves the open shard's
// temp file on disk with exactly the records appended before the
// failure.
package crawler
