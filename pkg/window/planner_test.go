package window

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRejectsInvalidInput(t *testing.T) {
	tests := []struct {
		name     string
		since    string
		until    string
		interval int
	}{
		{"zero interval", "2024-01-01", "2024-01-01", 0},
		{"negative interval", "2024-01-01", "2024-01-01", -30},
		{"interval over a day", "2024-01-01", "2024-01-01", 1500},
		{"bad since", "01/01/2024", "2024-01-01", 60},
		{"bad until", "2024-01-01", "not-a-date", 60},
		{"until before since", "2024-01-02", "2024-01-01", 60},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.since, tt.until, tt.interval, -3)
			assert.Error(t, err)
		})
	}
}

func TestWindowsSingleDayTwoHalves(t *testing.T) {
	p, err := New("2024-01-01", "2024-01-01", 720, -3)
	require.NoError(t, err)

	windows := p.Windows()
	require.Len(t, windows, 2)

	loc := time.FixedZone("UTC-03:00", -3*3600)

	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, loc).Unix(), windows[0].Since.Unix())
	assert.Equal(t, time.Date(2024, 1, 1, 11, 59, 59, 0, loc).Unix(), windows[0].Until.Unix())
	assert.Equal(t, time.Date(2024, 1, 1, 12, 0, 0, 0, loc).Unix(), windows[1].Since.Unix())
	assert.Equal(t, time.Date(2024, 1, 1, 23, 59, 59, 0, loc).Unix(), windows[1].Until.Unix())
}

func TestWindowsCarryFixedOffset(t *testing.T) {
	p, err := New("2024-01-01", "2024-01-01", 1440, -3)
	require.NoError(t, err)

	windows := p.Windows()
	require.Len(t, windows, 1)

	assert.Equal(t, "2024-01-01T00:00:00-03:00", windows[0].Since.Format(time.RFC3339))
	assert.Equal(t, "2024-01-01T23:59:59-03:00", windows[0].Until.Format(time.RFC3339))
}

func TestWindowsUnevenIntervalTruncatesLast(t *testing.T) {
	// 700 does not divide 1440: two full windows plus a 40-minute tail
	p, err := New("2024-01-01", "2024-01-01", 700, 0)
	require.NoError(t, err)

	windows := p.Windows()
	require.Len(t, windows, 3)

	last := windows[2]
	assert.Equal(t, "2024-01-01T23:20:00Z", last.Since.Format(time.RFC3339))
	assert.Equal(t, "2024-01-01T23:59:59Z", last.Until.Format(time.RFC3339))

	full := windows[0].Until.Sub(windows[0].Since)
	tail := last.Until.Sub(last.Since)
	assert.Less(t, tail, full)
}

func TestWindowsContiguousNoGapNoOverlap(t *testing.T) {
	intervals := []int{1, 7, 60, 90, 700, 720, 1440}

	for _, interval := range intervals {
		p, err := New("2024-02-28", "2024-03-01", interval, -3)
		require.NoError(t, err)

		windows := p.Windows()
		require.NotEmpty(t, windows)

		for i, w := range windows {
			assert.False(t, w.Until.Before(w.Since), "interval %d window %d inverted", interval, i)
			if i == 0 {
				continue
			}
			// Closed-inclusive bounds: consecutive windows are one
			// second apart, across day boundaries too.
			gap := w.Since.Sub(windows[i-1].Until)
			assert.Equal(t, time.Second, gap,
				"interval %d: windows %d and %d not contiguous", interval, i-1, i)
		}

		// Leap year: Feb 28, Feb 29, Mar 1
		first := windows[0]
		last := windows[len(windows)-1]
		assert.Equal(t, "2024-02-28", first.Since.Format("2006-01-02"))
		assert.Equal(t, "00:00:00", first.Since.Format("15:04:05"))
		assert.Equal(t, "2024-03-01", last.Until.Format("2006-01-02"))
		assert.Equal(t, "23:59:59", last.Until.Format("15:04:05"))
	}
}

func TestWindowsEveryDayEndsAtLastSecond(t *testing.T) {
	p, err := New("2024-01-01", "2024-01-03", 700, 0)
	require.NoError(t, err)

	seen := map[string]bool{}
	for _, w := range p.Windows() {
		day := w.Since.Format("2006-01-02")
		if w.Until.Format("15:04:05") == "23:59:59" {
			seen[day] = true
		}
	}

	for _, day := range []string{"2024-01-01", "2024-01-02", "2024-01-03"} {
		assert.True(t, seen[day], "day %s has no window ending at 23:59:59", day)
	}
}

func TestWindowsIsRestartable(t *testing.T) {
	p, err := New("2024-01-01", "2024-01-02", 90, -3)
	require.NoError(t, err)

	first := p.Windows()
	second := p.Windows()
	assert.Equal(t, first, second)
}
