package stats

import (
	"context"
	"fmt"
	"time"

	"github.com/mitsailing/sail-stats/internal/trip"
)

// Month is one calendar page to scrape
type Month struct {
	Year  int
	Month time.Month
}

func (m Month) String() string {
	return fmt.Sprintf("%04d-%02d", m.Year, int(m.Month))
}

// Months lists every month from the start month to the end month inclusive
func Months(startYear, startMonth, endYear, endMonth int) ([]Month, error) {
	if startMonth < 1 || startMonth > 12 {
		return nil, fmt.Errorf("invalid start month: %d", startMonth)
	}
	if endMonth < 1 || endMonth > 12 {
		return nil, fmt.Errorf("invalid end month: %d", endMonth)
	}
	first := startYear*12 + startMonth - 1
	last := endYear*12 + endMonth - 1
	if first > last {
		return nil, fmt.Errorf("start %04d-%02d is after end %04d-%02d", startYear, startMonth, endYear, endMonth)
	}

	months := make([]Month, 0, last-first+1)
	for i := first; i <= last; i++ {
		months = append(months, Month{Year: i / 12, Month: time.Month(i%12 + 1)})
	}
	return months, nil
}

// Collector produces the participant rows of one month
type Collector interface {
	CollectMonth(ctx context.Context, year, month int) ([]trip.Row, error)
}

// Aggregate collects every month in order and folds the rows into table.
// The first failing month aborts the run; table is left partially filled.
func Aggregate(ctx context.Context, c Collector, months []Month, table *Table) error {
	for _, m := range months {
		rows, err := c.CollectMonth(ctx, m.Year, int(m.Month))
		if err != nil {
			return fmt.Errorf("collecting %s: %w", m, err)
		}
		table.ApplyAll(rows)
	}
	return nil
}
