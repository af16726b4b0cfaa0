package report

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/mitsailing/sail-stats/internal/stats"
)

// Format specifies the output format
type Format string

const (
	FormatCSV   Format = "csv"
	FormatJSON  Format = "json"
	FormatTable Format = "table"
)

// Header is the fixed column order of the CSV report
var Header = []string{
	"first name",
	"last name",
	"number registrations",
	"number sails",
	"number races",
	"number pleasure",
	"number multi-day",
	"number full day (6+ hr)",
	"number as skipper",
	"total sail time (hrs)",
}

// ErrBadHeader is returned by ReadCSV when the header does not match Header
var ErrBadHeader = errors.New("unexpected report header")

// ParseFormat validates a format name
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	switch f {
	case FormatCSV, FormatJSON, FormatTable:
		return f, nil
	}
	return "", fmt.Errorf("invalid format: %s (must be 'csv', 'json' or 'table')", s)
}

// Write writes the summaries in the specified format
func Write(w io.Writer, format Format, summaries []stats.Summary) error {
	switch format {
	case FormatCSV:
		return WriteCSV(w, summaries)
	case FormatJSON:
		return WriteJSON(w, summaries)
	case FormatTable:
		return WriteTable(w, summaries)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// sorted returns a copy ordered by total hours
func sorted(summaries []stats.Summary) []stats.Summary {
	out := make([]stats.Summary, len(summaries))
	copy(out, summaries)
	return stats.SortByHours(out)
}

func formatHours(h float64) string {
	return strconv.FormatFloat(h, 'f', -1, 64)
}

func record(s stats.Summary) []string {
	return []string{
		s.FirstName,
		s.LastName,
		strconv.Itoa(s.Registrations),
		strconv.Itoa(s.Sails),
		strconv.Itoa(s.Races),
		strconv.Itoa(s.Pleasure),
		strconv.Itoa(s.MultiDay),
		strconv.Itoa(s.FullDay),
		strconv.Itoa(s.AsSkipper),
		formatHours(s.TotalHours),
	}
}

// WriteCSV writes the header and one row per person
func WriteCSV(w io.Writer, summaries []stats.Summary) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for _, s := range sorted(summaries) {
		if err := cw.Write(record(s)); err != nil {
			return fmt.Errorf("writing row for %s %s: %w", s.FirstName, s.LastName, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadCSV parses a report written by WriteCSV
func ReadCSV(r io.Reader) ([]stats.Summary, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(Header)

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}
	for i := range Header {
		if header[i] != Header[i] {
			return nil, fmt.Errorf("%w: column %d is %q, want %q", ErrBadHeader, i+1, header[i], Header[i])
		}
	}

	summaries := make([]stats.Summary, 0)
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading line %d: %w", line, err)
		}

		s, err := parseRecord(rec)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		summaries = append(summaries, s)
	}
	return summaries, nil
}

func parseRecord(rec []string) (stats.Summary, error) {
	s := stats.Summary{FirstName: rec[0], LastName: rec[1]}

	counts := []*int{
		&s.Registrations, &s.Sails, &s.Races, &s.Pleasure,
		&s.MultiDay, &s.FullDay, &s.AsSkipper,
	}
	for i, dst := range counts {
		n, err := strconv.Atoi(rec[i+2])
		if err != nil {
			return stats.Summary{}, fmt.Errorf("parsing %s: %w", Header[i+2], err)
		}
		*dst = n
	}

	hours, err := strconv.ParseFloat(rec[9], 64)
	if err != nil {
		return stats.Summary{}, fmt.Errorf("parsing %s: %w", Header[9], err)
	}
	s.TotalHours = hours
	return s, nil
}

// Result is the JSON document written by WriteJSON
type Result struct {
	GeneratedAt time.Time       `json:"generated_at"`
	People      int             `json:"people"`
	Summaries   []stats.Summary `json:"summaries"`
}

// WriteJSON outputs the summaries as an indented JSON document
func WriteJSON(w io.Writer, summaries []stats.Summary) error {
	result := &Result{
		GeneratedAt: time.Now().UTC(),
		People:      len(summaries),
		Summaries:   sorted(summaries),
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}

// WriteTable renders the summaries as a human-readable table
func WriteTable(w io.Writer, summaries []stats.Summary) error {
	if len(summaries) == 0 {
		_, err := fmt.Fprintln(w, "No participants found.")
		return err
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)

	header := make(table.Row, 0, len(Header))
	for _, h := range Header {
		header = append(header, h)
	}
	t.AppendHeader(header)

	var hours float64
	for _, s := range sorted(summaries) {
		t.AppendRow(table.Row{
			s.FirstName, s.LastName, s.Registrations, s.Sails, s.Races,
			s.Pleasure, s.MultiDay, s.FullDay, s.AsSkipper, formatHours(s.TotalHours),
		})
		hours += s.TotalHours
	}
	t.AppendFooter(table.Row{"", "Total", "", "", "", "", "", "", "", formatHours(hours)})

	t.SetStyle(table.StyleRounded)
	t.Render()
	return nil
}
