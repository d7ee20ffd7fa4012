// Package editing implements the single inline edit cursor.
//
// The controller is either Viewing or Editing one (EAN, field) cell. Begin
// stages the current value in edit form (dates as DD/MM/YYYY), Stage replaces
// the buffer, Commit converts the buffer back to canonical form and writes it
// only when it differs from the stored value, and Cancel discards it. Opening
// another cell while editing applies the configured switch policy.
package editing
