// Package store persists book records in a local SQLite database.
//
// The Store owns the connection lifecycle (Open/Close), applies embedded
// migrations once at open, and exposes keyed upsert, lookup, enumeration,
// deletion and transactional partial update of records. Every failure carries
// the services.ErrStore marker; nothing is retried automatically.
//
// Add new columns through a numbered file under migrations/ and extend
// bookColumns and scanBook together.
package store
