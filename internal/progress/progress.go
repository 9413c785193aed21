// Package progress renders a console progress bar with rate and ETA for
// long-running batch operations.
package progress

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"
)

// Stats holds the counters of a running operation.
type Stats struct {
	Total     int
	Completed int
	Failed    int
	Skipped   int
	StartTime time.Time
}

// Processed returns the number of items handled so far.
func (s Stats) Processed() int {
	return s.Completed + s.Failed + s.Skipped
}

// Remaining returns the number of items still to handle.
func (s Stats) Remaining() int {
	return s.Total - s.Processed()
}

// Ratio returns progress in [0, 1].
func (s Stats) Ratio() float64 {
	if s.Total <= 0 {
		return 0
	}
	return float64(s.Processed()) / float64(s.Total)
}

// Rate returns the processing speed in items per second.
func (s Stats) Rate() float64 {
	elapsed := time.Since(s.StartTime).Seconds()
	if elapsed <= 0 {
		return 0
	}
	return float64(s.Processed()) / elapsed
}

// ETA estimates the remaining duration. The second return is false while
// no estimate is possible yet.
func (s Stats) ETA() (time.Duration, bool) {
	rate := s.Rate()
	if rate <= 0 || s.Remaining() <= 0 {
		return 0, false
	}
	return time.Duration(float64(s.Remaining()) / rate * float64(time.Second)), true
}

// Bar is a thread-safe console progress bar.
type Bar struct {
	mu       sync.Mutex
	out      io.Writer
	width    int
	showETA  bool
	showRate bool
	stats    Stats
}

// NewBar creates a bar for total items writing to out.
func NewBar(out io.Writer, total int) *Bar {
	return &Bar{
		out:      out,
		width:    50,
		showETA:  true,
		showRate: true,
		stats: Stats{
			Total:     total,
			StartTime: time.Now(),
		},
	}
}

// Increment records one completed item and redraws.
func (b *Bar) Increment() { b.add(func(s *Stats) { s.Completed++ }) }

// Fail records one failed item and redraws.
func (b *Bar) Fail() { b.add(func(s *Stats) { s.Failed++ }) }

// Skip records one skipped item and redraws.
func (b *Bar) Skip() { b.add(func(s *Stats) { s.Skipped++ }) }

// Snapshot returns a copy of the current counters.
func (b *Bar) Snapshot() Stats {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.stats
}

// Finish draws the final state and terminates the line.
func (b *Bar) Finish() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.render()
	fmt.Fprintln(b.out)
}

func (b *Bar) add(update func(*Stats)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	update(&b.stats)
	b.render()
}

func (b *Bar) render() {
	ratio := b.stats.Ratio()
	filled := int(ratio * float64(b.width))
	if filled > b.width {
		filled = b.width
	}
	bar := strings.Repeat("█", filled) + strings.Repeat("░", b.width-filled)

	line := fmt.Sprintf("\r[%s] %5.1f%% (%d/%d)", bar, ratio*100, b.stats.Processed(), b.stats.Total)
	if b.showRate {
		line += fmt.Sprintf(" %.1f/s", b.stats.Rate())
	}
	if b.showETA {
		if eta, ok := b.stats.ETA(); ok {
			line += " ETA " + FormatDuration(eta)
		}
	}
	if b.stats.Failed > 0 {
		line += fmt.Sprintf(" failed:%d", b.stats.Failed)
	}
	if b.stats.Skipped > 0 {
		line += fmt.Sprintf(" skipped:%d", b.stats.Skipped)
	}
	fmt.Fprint(b.out, line)
}

// FormatDuration renders a duration as MM:SS, or HH:MM:SS above an hour.
func FormatDuration(d time.Duration) string {
	total := int(d.Seconds())
	hours := total / 3600
	minutes := (total % 3600) / 60
	seconds := total % 60
	if hours > 0 {
		return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
	}
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}
