// Package shard writes crawled posts as rotating CSV shards.
//
// The Writer keeps at most one shard open at a time. Records accumulate
// until the configured rotation threshold, at which point the shard is
// finalized synchronously inside Append: the file is closed, renamed to
// posts_<firstCreatedAt>_<lastCreatedAt>.csv (timestamp separators
// stripped for filesystem safety), gzipped, and the uncompressed file
// deleted only after the archive is confirmed written. If compression
// fails the CSV is preserved and the error surfaces.
//
// Text fields have embedded newlines collapsed to single spaces before
// CSV escaping, so each record is exactly one line in the output.
//
// Any I/O failure aborts the run; the last finalized archive is the
// durable high-water mark.
package shard
