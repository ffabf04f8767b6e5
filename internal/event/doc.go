// Package event provides the domain types for the tourboard pipeline.
//
// The event package defines the Event (one tour stop) and Snapshot (one
// document-wide rollup) records produced by each scrape run, deterministic
// SHA1-based identifiers for cross-run tracking, date-range parsing for the
// human-readable date strings the source page uses, and batch diffing for
// detecting newly announced stops.
package event
