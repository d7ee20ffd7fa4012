// Package catalog defines the book record persisted by the catalog engine
// and the rules that keep it canonical.
//
// A Book is keyed by its 13-digit EAN. Status and Genre are closed
// enumerations; EntryDate is always held in canonical ISO form and only
// converted to the DD/MM/YYYY display form at the edit boundary. Partial
// updates are expressed as Patch values, one concrete type per editable
// field, so an unknown field name cannot reach the store.
package catalog
