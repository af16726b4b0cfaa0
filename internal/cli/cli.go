package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mitsailing/sail-stats/internal/config"
	"github.com/mitsailing/sail-stats/internal/logger"
	"github.com/mitsailing/sail-stats/internal/metrics"
	"github.com/mitsailing/sail-stats/internal/report"
	"github.com/mitsailing/sail-stats/internal/scraper"
	"github.com/mitsailing/sail-stats/internal/stats"
	"github.com/mitsailing/sail-stats/internal/storage"
	"github.com/spf13/cobra"
)

const (
	ExitSuccess = 0
	ExitError   = 1
)

const (
	defaultYear       = 2024
	defaultStartMonth = 1
	defaultEndMonth   = 12
)

var (
	flagStartYear   int
	flagStartMonth  int
	flagEndYear     int
	flagEndMonth    int
	flagOutput      string
	flagFormat      string
	flagPrint       bool
	flagMetricsFile string
	flagVerbose     bool
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sail-stats",
		Short: "Summarize sailing club trip participation per person",
		Long: `A CLI tool that scrapes the sailing club calendar for a range of months,
reads every trip's roster and organizers, and reports per-person totals:
registrations, sails, races, multi-day and full-day trips and hours on the water.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE:         runStats,
	}

	// Define flags
	cmd.Flags().IntVar(&flagStartYear, "start-year", defaultYear, "First year to scrape")
	cmd.Flags().IntVar(&flagStartMonth, "start-month", defaultStartMonth, "First month to scrape (1-12)")
	cmd.Flags().IntVar(&flagEndYear, "end-year", defaultYear, "Last year to scrape")
	cmd.Flags().IntVar(&flagEndMonth, "end-month", defaultEndMonth, "Last month to scrape (1-12)")
	cmd.Flags().StringVar(&flagOutput, "output", "", "Report file name, relative to the data directory (default sailing_data_<end-year>.<ext>)")
	cmd.Flags().StringVar(&flagFormat, "format", string(report.FormatCSV), "Report format: csv, json or table")
	cmd.Flags().BoolVar(&flagPrint, "print", false, "Also print the summary table to stdout")
	cmd.Flags().StringVar(&flagMetricsFile, "metrics-file", "", "Write Prometheus metrics in text format to this file")
	cmd.Flags().BoolVar(&flagVerbose, "verbose", false, "Enable verbose logging")

	return cmd
}

// outputName returns the report file name for the current flags
func outputName(format report.Format) string {
	if flagOutput != "" {
		return flagOutput
	}
	ext := string(format)
	if format == report.FormatTable {
		ext = "txt"
	}
	return fmt.Sprintf("sailing_data_%d.%s", flagEndYear, ext)
}

// runStats is the main command logic
func runStats(cmd *cobra.Command, args []string) error {
	format, err := report.ParseFormat(flagFormat)
	if err != nil {
		return err
	}

	months, err := stats.Months(flagStartYear, flagStartMonth, flagEndYear, flagEndMonth)
	if err != nil {
		return fmt.Errorf("invalid date range: %w", err)
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	level, err := logger.ParseLevel(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if flagVerbose {
		level = logger.LevelDebug
	}
	log := logger.New(level, cmd.ErrOrStderr())
	logger.SetDefault(log)
	defer log.Sync()

	// Initialize storage
	store, err := storage.New(cfg.DataDir)
	if err != nil {
		return fmt.Errorf("initializing storage: %w", err)
	}

	m := metrics.New()
	sc := scraper.New(cfg)
	sc.SetMetrics(m)

	logger.Info("Starting run", logger.Fields{
		"base_url": cfg.BaseURL,
		"from":     months[0].String(),
		"to":       months[len(months)-1].String(),
		"months":   len(months),
	})

	started := time.Now()
	table := stats.NewTable()
	if err := stats.Aggregate(cmd.Context(), sc, months, table); err != nil {
		writeMetrics(m)
		return fmt.Errorf("aggregating trips: %w", err)
	}

	summaries := table.Sorted()
	path, err := store.SaveReport(outputName(format), format, summaries)
	if err != nil {
		return fmt.Errorf("saving report: %w", err)
	}

	logger.Info("Report written", logger.Fields{
		"path":     path,
		"format":   string(format),
		"people":   len(summaries),
		"duration": time.Since(started).String(),
	})

	if flagPrint {
		if err := report.WriteTable(cmd.OutOrStdout(), summaries); err != nil {
			return fmt.Errorf("writing output: %w", err)
		}
	}

	writeMetrics(m)
	return nil
}

// writeMetrics dumps the run's metrics when --metrics-file is set.
// A failure here is logged and does not fail the run.
func writeMetrics(m *metrics.Metrics) {
	if flagMetricsFile == "" {
		return
	}
	if err := m.WriteTextfile(flagMetricsFile); err != nil {
		logger.Error("Failed to write metrics", logger.Fields{"path": flagMetricsFile}, err)
	}
}

// Execute runs the CLI
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := NewRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(ExitError)
	}
}
