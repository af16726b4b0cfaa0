package trip

import (
	"testing"
	"time"
)

func TestIsCancelledTitle(t *testing.T) {
	tests := []struct {
		title string
		want  bool
	}{
		{"Evening Sail", false},
		{"Weekend Trip — CANCELLED", true},
		{"Cancelled: Harbor Tour", true},
		{"Cancellation Policy Briefing", true}, // purely lexical
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			if got := IsCancelledTitle(tt.title); got != tt.want {
				t.Errorf("IsCancelledTitle(%q) = %v, want %v", tt.title, got, tt.want)
			}
		})
	}
}

func TestStatusSailed(t *testing.T) {
	sailed := map[Status]bool{
		StatusConfirmed: true,
		StatusSkipper:   true,
		StatusPending:   false,
		StatusUnknown:   false,
		StatusCancelled: false,
	}
	for status, want := range sailed {
		if got := status.Sailed(); got != want {
			t.Errorf("%s.Sailed() = %v, want %v", status, got, want)
		}
	}
}

func TestFlatten(t *testing.T) {
	tr := &Trip{
		Title:         "Evening Sail",
		Start:         time.Date(2024, 9, 1, 18, 0, 0, 0, time.UTC),
		End:           time.Date(2024, 9, 1, 22, 0, 0, 0, time.UTC),
		DurationHours: 4,
		Racing:        true,
	}
	participants := []Participant{
		{LastName: "Doe", FirstName: "Jane", Status: StatusConfirmed},
		{LastName: "Roe", FirstName: "Rick", Status: StatusSkipper},
	}

	rows := Flatten(tr, participants)
	if len(rows) != 2 {
		t.Fatalf("Flatten() returned %d rows, want 2", len(rows))
	}
	for i, row := range rows {
		if row.TripTitle != tr.Title || row.DurationHours != 4 || !row.Racing {
			t.Errorf("row %d does not carry trip fields: %+v", i, row)
		}
		if !row.Start.Equal(tr.Start) || !row.End.Equal(tr.End) {
			t.Errorf("row %d span = %v..%v", i, row.Start, row.End)
		}
	}
	if rows[1].FirstName != "Rick" || rows[1].LastName != "Roe" || rows[1].Status != StatusSkipper {
		t.Errorf("row 1 = %+v", rows[1])
	}

	if got := Flatten(tr, nil); len(got) != 0 {
		t.Errorf("Flatten(nil) returned %d rows, want 0", len(got))
	}
}
