package window

import (
	"fmt"
	"time"

	"bskycrawl/pkg/models"
)

const dateLayout = "2006-01-02"

// Planner partitions a date range into fixed-length time windows. The
// emitted sequence is deterministic: calling Windows twice yields the
// same partition.
type Planner struct {
	start    time.Time // midnight of the first day
	end      time.Time // midnight of the last day
	interval time.Duration
	loc      *time.Location
}

// New creates a planner covering every calendar day from since to until
// inclusive, both YYYY-MM-DD. All windows carry the fixed utcOffsetHours
// zone; there is no UTC conversion.
func New(since, until string, intervalMinutes, utcOffsetHours int) (*Planner, error) {
	if intervalMinutes <= 0 || intervalMinutes > 24*60 {
		return nil, fmt.Errorf("interval must be between 1 and 1440 minutes, got %d", intervalMinutes)
	}

	loc := time.FixedZone(fmt.Sprintf("UTC%+03d:00", utcOffsetHours), utcOffsetHours*3600)

	start, err := time.ParseInLocation(dateLayout, since, loc)
	if err != nil {
		return nil, fmt.Errorf("invalid since date %q: %w", since, err)
	}
	end, err := time.ParseInLocation(dateLayout, until, loc)
	if err != nil {
		return nil, fmt.Errorf("invalid until date %q: %w", until, err)
	}
	if end.Before(start) {
		return nil, fmt.Errorf("until %s is before since %s", until, since)
	}

	return &Planner{
		start:    start,
		end:      end,
		interval: time.Duration(intervalMinutes) * time.Minute,
		loc:      loc,
	}, nil
}

// Windows returns the ordered partition of the full range. Each day is
// cut into consecutive interval-sized windows, closed-inclusive, the
// last one truncated to end at 23:59:59. When the interval does not
// divide the day evenly the final window is shorter than the rest;
// that is the contract, not an accident. The union of one day's
// windows is exactly [00:00:00, 23:59:59] with no gap or overlap.
func (p *Planner) Windows() []models.TimeWindow {
	var windows []models.TimeWindow

	for day := p.start; !day.After(p.end); day = day.AddDate(0, 0, 1) {
		dayEnd := day.Add(24*time.Hour - time.Second)

		for since := day; !since.After(dayEnd); since = since.Add(p.interval) {
			until := since.Add(p.interval - time.Second)
			if until.After(dayEnd) {
				until = dayEnd
			}
			windows = append(windows, models.TimeWindow{Since: since, Until: until})
		}
	}

	return windows
}

// Location returns the fixed zone the windows are expressed in.
func (p *Planner) Location() *time.Location {
	return p.loc
}
