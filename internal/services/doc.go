// Package services defines shared utilities consumed by the catalog engine
// and its external integrations.
//
// Key responsibilities:
//   - Context helpers that stamp action identifiers, book EANs, and edited
//     field names for logging.
//   - Structured error markers plus the Wrap helper so every layer reports
//     validation, lookup, store, and partial batch failures the same way.
//
// External service clients (Google Books) live in subpackages.
package services
