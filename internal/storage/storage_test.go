package storage

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mitsailing/sail-stats/internal/report"
	"github.com/mitsailing/sail-stats/internal/stats"
)

func testSummaries() []stats.Summary {
	return []stats.Summary{
		{FirstName: "Rick", LastName: "Roe", Registrations: 1},
		{FirstName: "Jane", LastName: "Doe", Registrations: 2, Sails: 2, Pleasure: 2, TotalHours: 8.5},
	}
}

func TestNew(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")

	s, err := New(dir)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		t.Errorf("data directory not created: %v", err)
	}
	if got := s.Path("out.csv"); got != filepath.Join(dir, "out.csv") {
		t.Errorf("Path() = %q", got)
	}
	if got := s.Path("/abs/out.csv"); got != "/abs/out.csv" {
		t.Errorf("Path() with absolute name = %q", got)
	}
}

func TestNew_HomeExpansion(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	s, err := New("~/sail-stats")
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if s.dataDir != filepath.Join(home, "sail-stats") {
		t.Errorf("dataDir = %q, want under %q", s.dataDir, home)
	}
}

func TestSaveAndLoadReport(t *testing.T) {
	s, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	path, err := s.SaveReport("sailing_data_2024.csv", report.FormatCSV, testSummaries())
	if err != nil {
		t.Fatalf("SaveReport() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading report: %v", err)
	}
	if !strings.HasPrefix(string(data), "first name,last name,") {
		t.Errorf("report does not start with the header:\n%s", data)
	}

	loaded, err := s.LoadReport("sailing_data_2024.csv")
	if err != nil {
		t.Fatalf("LoadReport() error = %v", err)
	}
	if len(loaded) != 2 || loaded[0].FirstName != "Jane" || loaded[0].TotalHours != 8.5 {
		t.Errorf("LoadReport() = %+v", loaded)
	}

	// No temp files left behind
	entries, _ := os.ReadDir(filepath.Dir(path))
	if len(entries) != 1 {
		t.Errorf("data dir has %d entries, want 1", len(entries))
	}
}

func TestSaveReport_Overwrites(t *testing.T) {
	s, _ := New(t.TempDir())

	if _, err := s.SaveReport("r.csv", report.FormatCSV, testSummaries()); err != nil {
		t.Fatalf("first SaveReport() error = %v", err)
	}
	if _, err := s.SaveReport("r.csv", report.FormatCSV, testSummaries()[:1]); err != nil {
		t.Fatalf("second SaveReport() error = %v", err)
	}

	loaded, err := s.LoadReport("r.csv")
	if err != nil {
		t.Fatalf("LoadReport() error = %v", err)
	}
	if len(loaded) != 1 {
		t.Errorf("LoadReport() returned %d rows, want 1", len(loaded))
	}
}

func TestSaveReport_BadFormat(t *testing.T) {
	dir := t.TempDir()
	s, _ := New(dir)

	if _, err := s.SaveReport("r.xml", report.Format("xml"), testSummaries()); err == nil {
		t.Error("SaveReport() expected error for unknown format")
	}
	if _, err := os.Stat(filepath.Join(dir, "r.xml")); !os.IsNotExist(err) {
		t.Error("report file created despite encoding failure")
	}
}

func TestLoadReport_Missing(t *testing.T) {
	s, _ := New(t.TempDir())

	_, err := s.LoadReport("missing.csv")
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("LoadReport() error = %v, want not-exist", err)
	}
}
