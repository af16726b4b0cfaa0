// Package report writes the final per-person summary table.
//
// CSV is the canonical format and can be read back with ReadCSV. JSON and a
// rendered text table are also available. Every writer orders people by total
// sail time, most first.
package report
