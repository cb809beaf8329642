package shard

import (
	"compress/gzip"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"bskycrawl/pkg/errors"
	"bskycrawl/pkg/logger"
	"bskycrawl/pkg/models"
)

// State tracks the shard lifecycle. A shard goes open -> finalized
// exactly once; after that its backing storage is the gzip archive
// only.
type State string

const (
	StateOpen      State = "open"
	StateFinalized State = "finalized"
)

// Shard is the mutable accumulator for one output file.
type Shard struct {
	Index          int
	RecordCount    int
	FirstCreatedAt string
	LastCreatedAt  string
	State          State
}

// headerFields is the fixed CSV header row
var headerFields = []string{
	"author.handle",
	"record.createdAt",
	"record.text",
	"replyCount",
	"repostCount",
	"likeCount",
	"quoteCount",
}

// Writer accumulates posts into rotating CSV shards. At most one shard
// is open at any time; when a shard reaches postsPerFile records it is
// finalized synchronously before Append returns, so no shard ever
// holds more than the threshold.
type Writer struct {
	dir          string
	postsPerFile int
	log          logger.Logger

	current *Shard
	file    *os.File
	csv     *csv.Writer
	path    string

	nextIndex    int
	totalRecords int
	finalized    int
}

// NewWriter creates a shard writer rooted at dir, creating it if
// needed.
func NewWriter(dir string, postsPerFile int, log logger.Logger) (*Writer, error) {
	if postsPerFile <= 0 {
		return nil, fmt.Errorf("posts per file must be positive, got %d", postsPerFile)
	}
	if log == nil {
		log = logger.GetLogger()
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, errors.Filesystem("create output directory", err)
	}

	return &Writer{
		dir:          dir,
		postsPerFile: postsPerFile,
		log:          log,
		nextIndex:    1,
	}, nil
}

// Append writes one post as one CSV record. It opens a new shard if
// none is open, and finalizes the shard synchronously once the record
// count reaches the rotation threshold.
func (w *Writer) Append(p models.Post) error {
	if w.current == nil {
		if err := w.open(); err != nil {
			return err
		}
	}

	record := []string{
		p.Handle,
		p.CreatedAt,
		normalizeText(p.Text),
		strconv.Itoa(p.ReplyCount),
		strconv.Itoa(p.RepostCount),
		strconv.Itoa(p.LikeCount),
		strconv.Itoa(p.QuoteCount),
	}
	if err := w.csv.Write(record); err != nil {
		return errors.Filesystem("write record", err)
	}
	w.csv.Flush()
	if err := w.csv.Error(); err != nil {
		return errors.Filesystem("write record", err)
	}

	if w.current.RecordCount == 0 {
		w.current.FirstCreatedAt = p.CreatedAt
	}
	w.current.LastCreatedAt = p.CreatedAt
	w.current.RecordCount++
	w.totalRecords++

	if w.current.RecordCount >= w.postsPerFile {
		return w.finalize()
	}

	return nil
}

// Close finalizes a shard left open with at least one record. An open
// but empty shard file is removed instead. Called once at run
// completion.
func (w *Writer) Close() error {
	if w.current == nil {
		return nil
	}

	if w.current.RecordCount == 0 {
		path := w.path
		w.discardOpen()
		if err := os.Remove(path); err != nil {
			return errors.Filesystem("remove empty shard", err)
		}
		return nil
	}

	return w.finalize()
}

// TotalRecords returns the number of records appended across all
// shards.
func (w *Writer) TotalRecords() int {
	return w.totalRecords
}

// FinalizedCount returns the number of shards finalized so far.
func (w *Writer) FinalizedCount() int {
	return w.finalized
}

// Current returns a copy of the open shard's state, or nil when no
// shard is open.
func (w *Writer) Current() *Shard {
	if w.current == nil {
		return nil
	}
	s := *w.current
	return &s
}

// OpenPath returns the path of the open shard file, empty when none.
func (w *Writer) OpenPath() string {
	if w.current == nil {
		return ""
	}
	return w.path
}

// open allocates the next shard index and writes the header row
func (w *Writer) open() error {
	index := w.nextIndex
	path := filepath.Join(w.dir, fmt.Sprintf("shard_%04d.csv.tmp", index))

	file, err := os.Create(path)
	if err != nil {
		return errors.Filesystem("create shard file", err)
	}

	cw := csv.NewWriter(file)
	if err := cw.Write(headerFields); err != nil {
		file.Close()
		os.Remove(path)
		return errors.Filesystem("write shard header", err)
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		file.Close()
		os.Remove(path)
		return errors.Filesystem("write shard header", err)
	}

	w.current = &Shard{Index: index, State: StateOpen}
	w.file = file
	w.csv = cw
	w.path = path
	w.nextIndex++

	w.log.InfoWithFields("shard opened", map[string]interface{}{
		"shard_index": index,
		"path":        path,
	})
	return nil
}

// finalize is two-phase: close and rename the shard to its
// timestamp-derived name, then gzip it and delete the uncompressed
// file only after the archive is written. A compression failure
// preserves the CSV and surfaces the error; no data is silently lost.
func (w *Writer) finalize() error {
	shard := w.current

	w.csv.Flush()
	if err := w.csv.Error(); err != nil {
		return errors.Filesystem("flush shard", err)
	}
	if err := w.file.Close(); err != nil {
		return errors.Filesystem("close shard", err)
	}

	finalName := fmt.Sprintf("posts_%s_%s.csv",
		sanitizeTimestamp(shard.FirstCreatedAt),
		sanitizeTimestamp(shard.LastCreatedAt),
	)
	finalPath := filepath.Join(w.dir, finalName)

	if err := os.Rename(w.path, finalPath); err != nil {
		return errors.Filesystem("rename shard", err)
	}

	archivePath := finalPath + ".gz"
	if err := compressFile(finalPath, archivePath); err != nil {
		// The uncompressed CSV stays on disk for recovery
		return err
	}

	if err := os.Remove(finalPath); err != nil {
		return errors.Filesystem("remove uncompressed shard", err)
	}

	shard.State = StateFinalized
	w.finalized++
	w.log.InfoWithFields("shard finalized", map[string]interface{}{
		"shard_index": shard.Index,
		"records":     shard.RecordCount,
		"first":       shard.FirstCreatedAt,
		"last":        shard.LastCreatedAt,
		"path":        archivePath,
	})

	w.discardOpen()
	return nil
}

// discardOpen drops the open-shard handles without touching disk
func (w *Writer) discardOpen() {
	w.current = nil
	w.file = nil
	w.csv = nil
	w.path = ""
}

// compressFile gzips src into dst. dst is removed on failure so a
// half-written archive never survives.
func compressFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return errors.Filesystem("open shard for compression", err)
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return errors.Filesystem("create archive", err)
	}

	gw, err := gzip.NewWriterLevel(out, gzip.BestSpeed)
	if err != nil {
		out.Close()
		os.Remove(dst)
		return errors.Filesystem("create gzip writer", err)
	}

	if _, err := io.Copy(gw, in); err != nil {
		gw.Close()
		out.Close()
		os.Remove(dst)
		return errors.Filesystem("compress shard", err)
	}

	if err := gw.Close(); err != nil {
		out.Close()
		os.Remove(dst)
		return errors.Filesystem("finish archive", err)
	}
	if err := out.Close(); err != nil {
		os.Remove(dst)
		return errors.Filesystem("close archive", err)
	}

	return nil
}

// sanitizeTimestamp strips the characters that make ISO-8601
// timestamps awkward in filenames.
func sanitizeTimestamp(ts string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case ':', '-', 'T', 'Z':
			return -1
		}
		return r
	}, ts)
}

// normalizeText collapses embedded newlines to single spaces so every
// record occupies exactly one line. This is the one intentionally
// lossy transform in the pipeline.
func normalizeText(s string) string {
	s = strings.ReplaceAll(s, "\r\n", " ")
	s = strings.ReplaceAll(s, "\n", " ")
	s = strings.ReplaceAll(s, "\r", " ")
	return s
}
