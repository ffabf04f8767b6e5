// Package cli implements the command-line interface for tourboard.
//
// The cli package provides the Cobra-based CLI with subcommands for scraping
// the box office page (update), reporting on recorded stops and snapshots
// (events, snapshots, rollup), scraping the songs-played table (songs), and
// serving the dataset over HTTP (serve). It coordinates the scraper, storage,
// filter, and rollup packages.
package cli
