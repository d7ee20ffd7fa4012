// Package importer converts spreadsheet rows into book records and upserts
// them one by one.
//
// Rows without a code are skipped; rows whose code is malformed are rejected
// with a reason. Missing fields take the manual-add defaults and dates are
// stored canonical. Unknown statut, genre or date values are coerced to
// defaults unless the importer runs in strict mode, where the row is
// rejected instead. The importer never reloads views; that is the caller's
// job once the whole batch is written.
//
// ReadCSV and WriteCSV translate between CSV files and rows.
package importer
