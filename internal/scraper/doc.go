// Package scraper fetches sailing trip pages and extracts trip records from them.
//
// A month is scraped in three steps: the calendar listing yields the trip links,
// each link is rewritten to the trip's entries page and parsed, and the entries
// page's Description link is followed once more to decide whether the trip is a
// race. Pages are loosely formatted, so extraction relies on literal markup
// fragments. Missing title or schedule rows fail the trip; a missing roster,
// organizer line or description simply yields nothing.
package scraper
