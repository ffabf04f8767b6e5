// Package scraper provides HTTP fetching and text extraction for the
// touring-data box-office page.
//
// The page has no stable DOM structure, so the scraper flattens the
// document to its visible text and recovers the schema line by line: a set
// of classifier predicates decides what each line probably is (region
// header, date range, gross, location, tickets, show count) and a forward
// state machine assembles one Event per block, bounded by a date line and a
// shows line. Per-field parse misses become nils, never errors; a block
// without a shows line is dropped entirely. A separate single-pass lookup
// pulls the document-wide summary Snapshot from the same line stream.
package scraper
