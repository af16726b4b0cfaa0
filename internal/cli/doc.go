// Package cli implements the command-line interface for sail-stats.
//
// The root command walks the requested months of the sailing club calendar,
// folds every trip's participants into per-person totals and writes the
// summary report. It coordinates the config, scraper, stats, report and
// storage packages. Any failed month fails the whole run and no report is
// written.
package cli
