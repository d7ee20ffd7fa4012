// Package batch holds the selection set and applies one field change, or a
// deletion, to every selected record.
//
// Bulk operations run sequentially in selection order and are not atomic
// across records: a failure leaves earlier records changed. The caller reloads
// the working set once after each operation.
package batch
