package scraper

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/mitsailing/sail-stats/internal/logger"
	"github.com/mitsailing/sail-stats/internal/metrics"
)

// Event links on the calendar are single-quoted attribute values
var eventLinkPattern = regexp.MustCompile(`(/calendar/events/event[^']*)'`)

// TripURLs returns the entries page of every trip on the month's calendar.
// The month is not validated; a calendar without trip links yields an empty slice.
func (s *Scraper) TripURLs(ctx context.Context, year, month int) ([]string, error) {
	listingURL := s.ListingURL(year, month)

	html, err := s.fetch(ctx, metrics.KindListing, listingURL)
	if err != nil {
		return nil, fmt.Errorf("fetching calendar: %w", err)
	}

	urls := extractTripURLs(s.baseURL, html)

	logger.Debug("Resolved trip listing", logger.Fields{
		"year":  year,
		"month": month,
		"trips": len(urls),
	})
	return urls, nil
}

// extractTripURLs rewrites every event link to its entries page.
// Duplicates are dropped by exact string identity, keeping first-seen order.
func extractTripURLs(baseURL, html string) []string {
	matches := eventLinkPattern.FindAllStringSubmatch(html, -1)

	seen := make(map[string]bool)
	urls := make([]string, 0, len(matches))
	for _, m := range matches {
		u := strings.ReplaceAll(baseURL+m[1], "event.php", "entries.php")
		if !seen[u] {
			seen[u] = true
			urls = append(urls, u)
		}
	}
	return urls
}
