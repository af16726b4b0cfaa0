package scraper

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/mitsailing/sail-stats/internal/trip"
)

var (
	// ErrNoTitle means the page has no <title> element
	ErrNoTitle = errors.New("page has no title")

	// ErrNoTimeRows means the page lists no schedule rows
	ErrNoTimeRows = errors.New("page has no schedule rows")
)

const (
	titleSuffix    = " Entries"
	organizerQuote = "Questions about this event should be directed to the organizer"
)

var (
	timeRowPattern     = regexp.MustCompile(`<tr><td style='text-align:right'>(.*?)</td></tr>`)
	entriesPattern     = regexp.MustCompile(`(?s)<h2>Entries</h2><table>(.*?)</table>`)
	lastNamePattern    = regexp.MustCompile(`>([^<]+)</a>`)
	firstNamePattern   = regexp.MustCompile(`</a></td><td>([^<]+)</td><td>`)
	organizerPattern   = regexp.MustCompile(`(?s)` + regexp.QuoteMeta(organizerQuote) + `.*?>(.*?)</a>`)
	descLinkPattern    = regexp.MustCompile(`/calendar/events/event\.php([^"]*)'>Description`)
	descriptionPattern = regexp.MustCompile(`(?s)<h2>Description</h2>(.*?)<h2>Organizers</h2>`)
)

var raceKeywords = []string{"race", "regatta", "cup"}

// parseTitle returns the first <title> of the page without the " Entries" suffix
func parseTitle(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", fmt.Errorf("parsing HTML: %w", err)
	}

	sel := doc.Find("title").First()
	if sel.Length() == 0 {
		return "", ErrNoTitle
	}

	return strings.TrimSuffix(sel.Text(), titleSuffix), nil
}

// scheduleCells collects the day and time cells of every schedule row,
// leaving out registration rows
func scheduleCells(html string) []trip.TimeCell {
	cells := make([]trip.TimeCell, 0)
	for _, m := range timeRowPattern.FindAllStringSubmatch(html, -1) {
		row := m[1]
		if strings.Contains(row, "Registration") {
			continue
		}

		parts := strings.Split(row, "</td><td>")
		cell := trip.TimeCell{Day: parts[0]}
		if len(parts) > 1 {
			cell.Range = parts[1]
		}
		cells = append(cells, cell)
	}
	return cells
}

// parseRoster reads the Entries table. Rows whose name cells cannot be found are
// returned separately so the caller can report them. A page without an Entries
// table yields no participants.
func parseRoster(html string, cancelled bool) ([]trip.Participant, []string) {
	m := entriesPattern.FindStringSubmatch(html)
	if m == nil {
		return nil, nil
	}

	var participants []trip.Participant
	var skipped []string
	for _, line := range strings.Split(m[1], "\n") {
		if !strings.HasPrefix(line, "<tr class") || !strings.HasSuffix(line, "</td></tr>") {
			continue
		}

		last := lastNamePattern.FindStringSubmatch(line)
		first := firstNamePattern.FindStringSubmatch(line)
		if last == nil || first == nil {
			skipped = append(skipped, line)
			continue
		}

		participants = append(participants, trip.Participant{
			LastName:  last[1],
			FirstName: first[1],
			Status:    rosterStatus(line, cancelled),
		})
	}
	return participants, skipped
}

// rosterStatus classifies a roster row. Only Confirmed entries become Cancelled
// on a cancelled trip.
func rosterStatus(line string, cancelled bool) trip.Status {
	status := trip.StatusUnknown
	switch {
	case strings.Contains(line, "Confirmed"):
		status = trip.StatusConfirmed
	case strings.Contains(line, "Pending"):
		status = trip.StatusPending
	}

	if cancelled && status == trip.StatusConfirmed {
		return trip.StatusCancelled
	}
	return status
}

// parseSkippers reads the organizer byline. The last word of each name is the
// last name, so multi-word last names end up in the first name.
// Skippers of a cancelled trip are always Cancelled.
func parseSkippers(html string, cancelled bool) []trip.Participant {
	m := organizerPattern.FindStringSubmatch(html)
	if m == nil {
		return nil
	}

	status := trip.StatusSkipper
	if cancelled {
		status = trip.StatusCancelled
	}

	var skippers []trip.Participant
	for _, name := range strings.Split(strings.TrimSpace(m[1]), ", ") {
		if name == "" {
			continue
		}
		words := strings.Split(name, " ")
		skippers = append(skippers, trip.Participant{
			LastName:  words[len(words)-1],
			FirstName: strings.Join(words[:len(words)-1], " "),
			Status:    status,
		})
	}
	return skippers
}

// descriptionURL finds the entries page link back to the event page
func descriptionURL(baseURL, html string) (string, bool) {
	m := descLinkPattern.FindStringSubmatch(html)
	if m == nil {
		return "", false
	}
	return baseURL + "/calendar/events/event.php" + m[1], true
}

// descriptionText returns the block between the Description and Organizers headings
func descriptionText(html string) (string, bool) {
	m := descriptionPattern.FindStringSubmatch(html)
	if m == nil {
		return "", false
	}
	return strings.TrimSpace(m[1]), true
}

// hasRaceKeyword is a case-insensitive substring check, not a word match
func hasRaceKeyword(text string) bool {
	lower := strings.ToLower(text)
	for _, kw := range raceKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
