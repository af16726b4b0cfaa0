package cli

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mitsailing/sail-stats/internal/report"
	"github.com/mitsailing/sail-stats/internal/storage"
	"github.com/stretchr/testify/require"
)

// newClubServer serves the scraper fixtures; every month shows the same calendar
func newClubServer(t *testing.T) *httptest.Server {
	t.Helper()

	fixture := func(name string) string {
		data, err := os.ReadFile(filepath.Join("..", "scraper", "testdata", name))
		require.NoError(t, err)
		return string(data)
	}
	pages := map[string]string{
		"/calendar/events/entries.php?id=101": fixture("evening_sail.html"),
		"/calendar/events/entries.php?id=102": fixture("fall_regatta.html"),
		"/calendar/events/entries.php?id=103": fixture("weekend_trip.html"),
		"/calendar/events/event.php?id=102":   fixture("fall_regatta_event.html"),
		"/calendar/events/event.php?id=103":   fixture("weekend_trip_event.html"),
	}
	calendar := fixture("calendar.html")

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/calendar/index.php" {
			w.Write([]byte(calendar))
			return
		}
		body, ok := pages[r.URL.Path+"?"+r.URL.RawQuery]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server
}

func setupEnv(t *testing.T, baseURL string) string {
	t.Helper()
	dataDir := t.TempDir()
	t.Setenv("SAIL_STATS_BASE_URL", baseURL)
	t.Setenv("SAIL_STATS_DATA_DIR", dataDir)
	t.Setenv("SAIL_STATS_LOG_LEVEL", "info")
	return dataDir
}

func execute(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	err = cmd.ExecuteContext(context.Background())
	return out.String(), errOut.String(), err
}

func TestRun_WritesReport(t *testing.T) {
	server := newClubServer(t)
	dataDir := setupEnv(t, server.URL)

	_, stderr, err := execute(t,
		"--start-year", "2024", "--start-month", "9",
		"--end-year", "2024", "--end-month", "9",
	)
	require.NoError(t, err)
	require.Contains(t, stderr, "Report written")

	store, err := storage.New(dataDir)
	require.NoError(t, err)
	summaries, err := store.LoadReport("sailing_data_2024.csv")
	require.NoError(t, err)

	// Jane Doe, Rick Roe, Ann Poe, Sam Skipper, Ada Van Der Berg, Kim Lee
	require.Len(t, summaries, 6)
	require.Equal(t, "Jane", summaries[0].FirstName)
	require.Equal(t, "Doe", summaries[0].LastName)
	require.Equal(t, 2, summaries[0].Registrations)
	require.Equal(t, 2, summaries[0].Sails)
	require.Equal(t, 1, summaries[0].Races)
	require.InDelta(t, 34.0, summaries[0].TotalHours, 1e-9)
}

func TestRun_SpansMonthsAcrossYears(t *testing.T) {
	server := newClubServer(t)
	dataDir := setupEnv(t, server.URL)

	_, _, err := execute(t,
		"--start-year", "2023", "--start-month", "12",
		"--end-year", "2024", "--end-month", "1",
		"--output", "winter.csv",
	)
	require.NoError(t, err)

	store, err := storage.New(dataDir)
	require.NoError(t, err)
	summaries, err := store.LoadReport("winter.csv")
	require.NoError(t, err)

	// Same calendar served twice, so every counter doubles
	require.Equal(t, "Doe", summaries[0].LastName)
	require.Equal(t, 4, summaries[0].Registrations)
	require.InDelta(t, 68.0, summaries[0].TotalHours, 1e-9)
}

func TestRun_PrintAndMetrics(t *testing.T) {
	server := newClubServer(t)
	dataDir := setupEnv(t, server.URL)
	metricsPath := filepath.Join(dataDir, "run.prom")

	stdout, _, err := execute(t,
		"--start-month", "9", "--end-month", "9",
		"--format", "json", "--print", "--metrics-file", metricsPath,
	)
	require.NoError(t, err)
	require.Contains(t, stdout, "FIRST NAME")
	require.Contains(t, stdout, "Doe")

	_, err = os.Stat(filepath.Join(dataDir, "sailing_data_2024.json"))
	require.NoError(t, err)

	prom, err := os.ReadFile(metricsPath)
	require.NoError(t, err)
	require.Contains(t, string(prom), "sail_stats_rows_collected_total 9")
	require.Contains(t, string(prom), `sail_stats_pages_fetched_total{kind="listing"} 1`)
}

func TestRun_FailedMonthWritesNothing(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/calendar/index.php" {
			w.Write([]byte(`<a href='/calendar/events/event.php?id=7'>Trip</a>`))
			return
		}
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()
	dataDir := setupEnv(t, server.URL)

	_, _, err := execute(t, "--start-month", "3", "--end-month", "3")
	require.Error(t, err)
	require.Contains(t, err.Error(), "2024-03")

	entries, err := os.ReadDir(dataDir)
	require.NoError(t, err)
	require.Empty(t, entries)
}

func TestRun_InvalidFlags(t *testing.T) {
	setupEnv(t, "http://127.0.0.1:1")

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"bad format", []string{"--format", "xml"}, "invalid format"},
		{"bad month", []string{"--start-month", "13"}, "invalid start month"},
		{"reversed range", []string{"--start-year", "2025", "--end-year", "2024"}, "is after end"},
		{"positional args", []string{"extra"}, "unknown command"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := execute(t, tt.args...)
			require.Error(t, err)
			require.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestOutputName(t *testing.T) {
	NewRootCmd()
	flagEndYear = 2025

	tests := []struct {
		format report.Format
		want   string
	}{
		{report.FormatCSV, "sailing_data_2025.csv"},
		{report.FormatJSON, "sailing_data_2025.json"},
		{report.FormatTable, "sailing_data_2025.txt"},
	}
	for _, tt := range tests {
		if got := outputName(tt.format); got != tt.want {
			t.Errorf("outputName(%s) = %q, want %q", tt.format, got, tt.want)
		}
	}

	flagOutput = "custom.csv"
	defer func() { flagOutput = "" }()
	if got := outputName(report.FormatJSON); !strings.HasSuffix(got, "custom.csv") {
		t.Errorf("outputName with --output = %q", got)
	}
}
