// Package googlebooks provides the minimal Google Books API client used to
// enrich newly scanned codes.
//
// It issues rate-limited volume searches by ISBN, optionally authenticated with
// an API key, and decodes the subset of the volume payload the catalog needs.
// Options allow tests to supply custom HTTP clients or base URLs without
// modifying production code.
package googlebooks
