package trip

import (
	"strings"
	"time"
)

// Status is the registration state of a participant on a trip
type Status string

const (
	StatusConfirmed Status = "Confirmed"
	StatusPending   Status = "Pending"
	StatusUnknown   Status = "Unknown"
	StatusCancelled Status = "Cancelled"
	StatusSkipper   Status = "Skipper"
)

// Sailed reports whether the status means the sail actually happened.
// Unknown is deliberately not included here; see stats.Table.Apply.
func (s Status) Sailed() bool {
	return s == StatusConfirmed || s == StatusSkipper
}

// Trip represents one scheduled outing parsed from its entries page
type Trip struct {
	URL           string    `json:"url"`
	Title         string    `json:"title"`
	Start         time.Time `json:"start"`
	End           time.Time `json:"end"`
	DurationHours float64   `json:"duration_hours"`
	Racing        bool      `json:"racing"`
	Cancelled     bool      `json:"cancelled"`
}

// Participant is one name listed on a trip page
type Participant struct {
	LastName  string `json:"last_name"`
	FirstName string `json:"first_name"`
	Status    Status `json:"status"`
}

// Row is one participant observed on one trip
type Row struct {
	FirstName     string    `json:"first_name"`
	LastName      string    `json:"last_name"`
	TripTitle     string    `json:"trip_title"`
	Start         time.Time `json:"start"`
	End           time.Time `json:"end"`
	DurationHours float64   `json:"duration_hours"`
	Racing        bool      `json:"racing"`
	Status        Status    `json:"status"`
}

// IsCancelledTitle reports whether a trip title marks the trip as cancelled.
// The check is a plain case-insensitive substring match on "cancel".
func IsCancelledTitle(title string) bool {
	return strings.Contains(strings.ToLower(title), "cancel")
}

// Flatten builds one Row per participant, all sharing the trip's span and flags
func Flatten(t *Trip, participants []Participant) []Row {
	rows := make([]Row, 0, len(participants))
	for _, p := range participants {
		rows = append(rows, Row{
			FirstName:     p.FirstName,
			LastName:      p.LastName,
			TripTitle:     t.Title,
			Start:         t.Start,
			End:           t.End,
			DurationHours: t.DurationHours,
			Racing:        t.Racing,
			Status:        p.Status,
		})
	}
	return rows
}
