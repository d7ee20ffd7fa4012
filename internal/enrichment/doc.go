// Package enrichment turns a scanned code into a candidate book record using
// the external metadata service.
//
// A hit yields title, authors and a genre mapped from the first category; a
// miss yields a skeleton carrying the placeholder title. Transport and decode
// failures surface as services.ErrLookup so callers create no record.
package enrichment
