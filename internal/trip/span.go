package trip

import (
	"fmt"
	"strings"
	"time"
)

// SpanLayout is the day and clock format used on trip pages, e.g. "1-Sep-2024 18:00"
const SpanLayout = "2-Jan-2006 15:04"

// TimeCell is one qualifying row of a trip's schedule table
type TimeCell struct {
	Day   string // e.g. "Sun 01-Sep-2024"
	Range string // e.g. "18:00-22:00"
}

// ParseSpan computes the span covered by a trip's schedule rows.
// The start comes from the first row and the end from the last one, so trips listed
// over several rows span the whole range. The duration is not clamped and is
// negative when the rows are out of order.
func ParseSpan(cells []TimeCell) (start, end time.Time, hours float64, err error) {
	if len(cells) == 0 {
		return time.Time{}, time.Time{}, 0, fmt.Errorf("no schedule rows")
	}

	first := cells[0]
	startDay, err := dayToken(first.Day)
	if err != nil {
		return time.Time{}, time.Time{}, 0, err
	}
	startClock, _, err := clockTokens(first.Range)
	if err != nil {
		return time.Time{}, time.Time{}, 0, err
	}

	last := cells[len(cells)-1]
	endDay, err := dayToken(last.Day)
	if err != nil {
		return time.Time{}, time.Time{}, 0, err
	}
	_, endClock, err := clockTokens(last.Range)
	if err != nil {
		return time.Time{}, time.Time{}, 0, err
	}

	start, err = time.Parse(SpanLayout, startDay+" "+startClock)
	if err != nil {
		return time.Time{}, time.Time{}, 0, fmt.Errorf("parsing start: %w", err)
	}
	end, err = time.Parse(SpanLayout, endDay+" "+endClock)
	if err != nil {
		return time.Time{}, time.Time{}, 0, fmt.Errorf("parsing end: %w", err)
	}

	return start, end, end.Sub(start).Hours(), nil
}

// dayToken returns the second space-separated token of the day cell
func dayToken(day string) (string, error) {
	parts := strings.Split(day, " ")
	if len(parts) < 2 {
		return "", fmt.Errorf("malformed day cell %q", day)
	}
	return parts[1], nil
}

// clockTokens splits "HH:MM-HH:MM" into its start and end clock times
func clockTokens(r string) (string, string, error) {
	parts := strings.Split(r, "-")
	if len(parts) < 2 {
		return "", "", fmt.Errorf("malformed time range %q", r)
	}
	return parts[0], parts[1], nil
}
