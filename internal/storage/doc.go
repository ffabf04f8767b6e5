// Package storage provides append-only persistence for scrape runs.
//
// Events and snapshots are written once per scrape batch and never updated
// in place; "latest" queries discriminate on the batch's scraped_at
// timestamp. The geocode cache table is the one exception: it is an
// idempotent key/value upsert. The store opens a local SQLite file by
// default and PostgreSQL when a DSN is configured; migrations are additive
// only.
package storage
