// Package pipeline derives the dashboard tables from a filtered record subset.
// Every function is pure: inputs are never mutated and outputs are freshly allocated.
package pipeline

import (
	"fmt"
	"time"

	"github.com/KaramelBytes/bikedash/internal/dataset"
)

// EmptyRangeError signals that no record falls inside the requested range.
// Callers treat it as a valid empty input.
type EmptyRangeError struct {
	Start time.Time
	End   time.Time
}

func (e *EmptyRangeError) Error() string {
	return fmt.Sprintf("no records between %s and %s", e.Start.Format("2006-01-02"), e.End.Format("2006-01-02"))
}

// FilterByRange returns the records whose calendar day lies in [start, end].
func FilterByRange(records []dataset.Record, start, end time.Time) ([]dataset.Record, error) {
	lo, hi := dataset.Day(start), dataset.Day(end)
	var out []dataset.Record
	for _, r := range records {
		d := dataset.Day(r.Date)
		if d.Before(lo) || d.After(hi) {
			continue
		}
		out = append(out, r)
	}
	if len(out) == 0 {
		return nil, &EmptyRangeError{Start: lo, End: hi}
	}
	return out, nil
}
