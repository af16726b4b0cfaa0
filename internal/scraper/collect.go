package scraper

import (
	"context"
	"fmt"
	"time"

	"github.com/mitsailing/sail-stats/internal/logger"
	"github.com/mitsailing/sail-stats/internal/trip"
)

// CollectMonth scrapes every trip on the month's calendar and flattens them into
// participant rows. Trips are fetched one at a time and the first failing trip
// aborts the month.
func (s *Scraper) CollectMonth(ctx context.Context, year, month int) ([]trip.Row, error) {
	started := time.Now()

	urls, err := s.TripURLs(ctx, year, month)
	if err != nil {
		return nil, err
	}

	rows := make([]trip.Row, 0)
	for _, u := range urls {
		page, err := s.FetchTrip(ctx, u)
		if err != nil {
			return nil, fmt.Errorf("trip %s: %w", u, err)
		}

		logger.Debug("Parsed trip", logger.Fields{
			"url":          u,
			"title":        page.Trip.Title,
			"hours":        page.Trip.DurationHours,
			"racing":       page.Trip.Racing,
			"cancelled":    page.Trip.Cancelled,
			"participants": len(page.Roster) + len(page.Skippers),
		})
		rows = append(rows, page.Rows()...)
	}

	s.metrics.AddRows(len(rows))
	logger.Info("Collected month", logger.Fields{
		"year":     year,
		"month":    month,
		"trips":    len(urls),
		"rows":     len(rows),
		"duration": time.Since(started).String(),
	})
	return rows, nil
}
