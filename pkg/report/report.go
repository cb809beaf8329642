package report

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"bskycrawl/pkg/errors"
	"bskycrawl/pkg/models"
)

// FileName is the run summary artifact written next to the shards.
const FileName = "run_report.json"

// Report is the JSON document written at normal run completion.
type Report struct {
	models.RunStats
	DurationSeconds float64   `json:"duration_seconds"`
	GeneratedAt     time.Time `json:"generated_at"`
}

// Write persists the run summary into dir. It is only called after a
// run completes normally; a failed run's record is the log file.
func Write(dir string, stats *models.RunStats) (string, error) {
	r := Report{
		RunStats:        *stats,
		DurationSeconds: stats.FinishedAt.Sub(stats.StartedAt).Seconds(),
		GeneratedAt:     time.Now(),
	}

	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return "", errors.Filesystem("marshal run report", err)
	}

	path := filepath.Join(dir, FileName)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", errors.Filesystem("write run report", err)
	}

	return path, nil
}
