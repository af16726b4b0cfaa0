// Package storage persists the summary report in a data directory.
//
// The report is the only artifact a run leaves behind. It is written to a
// temporary file first and renamed into place, so a failed run never leaves a
// partial report. The default location is the working directory.
package storage
