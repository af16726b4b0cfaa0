package stats

import (
	"sort"

	"github.com/mitsailing/sail-stats/internal/trip"
)

const (
	multiDayHours = 24
	fullDayHours  = 6
)

// Key identifies a person. Spelling variants are different people.
type Key struct {
	FirstName string
	LastName  string
}

// Summary is the running tally for one person
type Summary struct {
	FirstName     string  `json:"first_name"`
	LastName      string  `json:"last_name"`
	Registrations int     `json:"registrations"`
	Sails         int     `json:"sails"`
	Races         int     `json:"races"`
	Pleasure      int     `json:"pleasure"`
	MultiDay      int     `json:"multi_day"`
	FullDay       int     `json:"full_day"`
	AsSkipper     int     `json:"as_skipper"`
	TotalHours    float64 `json:"total_hours"`
}

// Key returns the identity of the summary
func (s *Summary) Key() Key {
	return Key{FirstName: s.FirstName, LastName: s.LastName}
}

// count adds one sail described by row
func (s *Summary) count(row trip.Row) {
	s.Sails++
	if row.Racing {
		s.Races++
	} else {
		s.Pleasure++
	}
	if row.DurationHours > multiDayHours {
		s.MultiDay++
	}
	if row.DurationHours > fullDayHours {
		s.FullDay++
	}
	if row.Status == trip.StatusSkipper {
		s.AsSkipper++
	}
	s.TotalHours += row.DurationHours
}

// Table owns the summaries of one run, in first-seen order
type Table struct {
	index map[Key]*Summary
	order []*Summary
}

// NewTable creates an empty table
func NewTable() *Table {
	return &Table{
		index: make(map[Key]*Summary),
		order: make([]*Summary, 0),
	}
}

// Apply upserts one row.
//
// A new person always gets one registration, and the row counts as a sail unless
// it is Pending or Cancelled. For a known person the registration is added and
// only Confirmed or Skipper rows count as a sail. An Unknown status therefore
// counts only when it is the first row seen for that person.
func (t *Table) Apply(row trip.Row) {
	key := Key{FirstName: row.FirstName, LastName: row.LastName}

	s, exists := t.index[key]
	if !exists {
		s = &Summary{
			FirstName:     row.FirstName,
			LastName:      row.LastName,
			Registrations: 1,
		}
		if row.Status != trip.StatusPending && row.Status != trip.StatusCancelled {
			s.count(row)
		}
		t.index[key] = s
		t.order = append(t.order, s)
		return
	}

	s.Registrations++
	if row.Status.Sailed() {
		s.count(row)
	}
}

// ApplyAll upserts rows in order
func (t *Table) ApplyAll(rows []trip.Row) {
	for _, row := range rows {
		t.Apply(row)
	}
}

// Get returns a copy of the summary for a person
func (t *Table) Get(firstName, lastName string) (Summary, bool) {
	s, ok := t.index[Key{FirstName: firstName, LastName: lastName}]
	if !ok {
		return Summary{}, false
	}
	return *s, true
}

// Len returns the number of people seen
func (t *Table) Len() int {
	return len(t.order)
}

// Summaries returns copies of all summaries in first-seen order
func (t *Table) Summaries() []Summary {
	out := make([]Summary, 0, len(t.order))
	for _, s := range t.order {
		out = append(out, *s)
	}
	return out
}

// Sorted returns the summaries ordered by total hours, most first.
// Ties keep first-seen order.
func (t *Table) Sorted() []Summary {
	return SortByHours(t.Summaries())
}

// SortByHours sorts summaries in place by total hours, most first, and returns them
func SortByHours(summaries []Summary) []Summary {
	sort.SliceStable(summaries, func(i, j int) bool {
		return summaries[i].TotalHours > summaries[j].TotalHours
	})
	return summaries
}
