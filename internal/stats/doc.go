// Package stats folds participant rows into per-person sailing summaries.
//
// People are identified by the exact (first name, last name) pair. The first row
// seen for a person creates their summary and every later row updates it in place.
// Months are folded in chronological order.
package stats
