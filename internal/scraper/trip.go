package scraper

import (
	"context"
	"fmt"

	"github.com/mitsailing/sail-stats/internal/logger"
	"github.com/mitsailing/sail-stats/internal/metrics"
	"github.com/mitsailing/sail-stats/internal/trip"
)

// TripPage is everything extracted from one trip's entries page
type TripPage struct {
	Trip     trip.Trip
	Roster   []trip.Participant
	Skippers []trip.Participant

	// SkippedRows holds roster rows dropped for missing name cells
	SkippedRows []string
}

// Participants returns roster entries followed by skippers.
// A person on both lists appears twice.
func (p *TripPage) Participants() []trip.Participant {
	all := make([]trip.Participant, 0, len(p.Roster)+len(p.Skippers))
	all = append(all, p.Roster...)
	return append(all, p.Skippers...)
}

// Rows flattens the page into one row per participant
func (p *TripPage) Rows() []trip.Row {
	return trip.Flatten(&p.Trip, p.Participants())
}

// ParseEntries extracts everything an entries page says on its own.
// Racing is left false; it needs the event page, see FetchTrip.
func ParseEntries(pageURL, html string) (*TripPage, error) {
	title, err := parseTitle(html)
	if err != nil {
		return nil, err
	}
	cancelled := trip.IsCancelledTitle(title)

	cells := scheduleCells(html)
	if len(cells) == 0 {
		return nil, ErrNoTimeRows
	}
	start, end, hours, err := trip.ParseSpan(cells)
	if err != nil {
		return nil, fmt.Errorf("parsing schedule: %w", err)
	}

	roster, skipped := parseRoster(html, cancelled)

	return &TripPage{
		Trip: trip.Trip{
			URL:           pageURL,
			Title:         title,
			Start:         start,
			End:           end,
			DurationHours: hours,
			Cancelled:     cancelled,
		},
		Roster:      roster,
		Skippers:    parseSkippers(html, cancelled),
		SkippedRows: skipped,
	}, nil
}

// FetchTrip fetches and parses one entries page, then follows its Description
// link to classify the trip as a race. Every trip with a Description link costs
// a second request.
func (s *Scraper) FetchTrip(ctx context.Context, entriesURL string) (*TripPage, error) {
	html, err := s.fetch(ctx, metrics.KindEntries, entriesURL)
	if err != nil {
		return nil, err
	}

	page, err := ParseEntries(entriesURL, html)
	if err != nil {
		return nil, err
	}

	racing, err := s.IsRacing(ctx, html, page.Trip.Title)
	if err != nil {
		return nil, fmt.Errorf("checking racing: %w", err)
	}
	page.Trip.Racing = racing

	for _, row := range page.SkippedRows {
		logger.Warn("Skipped roster row without names", logger.Fields{
			"url": entriesURL,
			"row": row,
		})
	}
	s.metrics.AddSkipped(len(page.SkippedRows))
	s.metrics.IncTrips()

	return page, nil
}

// IsRacing reports whether the trip's event description or title mentions a
// race keyword. Missing Description link or block means not racing.
func (s *Scraper) IsRacing(ctx context.Context, entriesHTML, tripTitle string) (bool, error) {
	eventURL, ok := descriptionURL(s.baseURL, entriesHTML)
	if !ok {
		return false, nil
	}

	eventHTML, err := s.fetch(ctx, metrics.KindEvent, eventURL)
	if err != nil {
		return false, err
	}

	description, ok := descriptionText(eventHTML)
	if !ok {
		logger.Debug("Event page has no description", logger.Fields{"url": eventURL})
		return false, nil
	}

	title, err := parseTitle(eventHTML)
	if err != nil {
		title = tripTitle
	}

	return hasRaceKeyword(description + title), nil
}
