// Package trip provides the record types produced by scraping sailing trips.
//
// A Trip holds what one trip page says about the outing itself (title, time span,
// racing and cancellation flags). A Participant is one name pulled from the roster
// or the skipper byline of that page. Flatten crosses the two into Rows, the unit
// of work consumed by the stats package.
package trip
