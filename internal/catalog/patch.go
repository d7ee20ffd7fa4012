package catalog

import (
	"fmt"
	"strings"

	"catalogage/internal/services"
)

// Field names one of the editable book fields. The EAN is the key and is not
// editable.
type Field int

const (
	FieldTitle Field = iota + 1
	FieldAuthors
	FieldGenre
	FieldCote
	FieldStatus
	FieldEntryDate
)

var editableFields = []Field{FieldTitle, FieldAuthors, FieldGenre, FieldCote, FieldStatus, FieldEntryDate}

// EditableFields returns the fields an operator may edit.
func EditableFields() []Field {
	cp := make([]Field, len(editableFields))
	copy(cp, editableFields)
	return cp
}

// String returns the persisted column name of the field.
func (f Field) String() string {
	switch f {
	case FieldTitle:
		return "titre"
	case FieldAuthors:
		return "auteur"
	case FieldGenre:
		return "genre"
	case FieldCote:
		return "cote"
	case FieldStatus:
		return "statut"
	case FieldEntryDate:
		return "date_entree"
	default:
		return fmt.Sprintf("field(%d)", int(f))
	}
}

// ParseField resolves a column name (or its English alias) to a Field.
func ParseField(name string) (Field, error) {
	switch FoldKey(strings.ReplaceAll(name, "-", "_")) {
	case "titre", "title":
		return FieldTitle, nil
	case "auteur", "auteurs", "author", "authors":
		return FieldAuthors, nil
	case "genre":
		return FieldGenre, nil
	case "cote":
		return FieldCote, nil
	case "statut", "status":
		return FieldStatus, nil
	case "date_entree", "date d'entree", "date", "entry_date":
		return FieldEntryDate, nil
	default:
		return 0, services.Wrap(services.ErrValidation, "catalog", "field", "unknown field "+quote(name), nil)
	}
}

// Value returns the stored string value of a field.
func (b Book) Value(f Field) string {
	switch f {
	case FieldTitle:
		return b.Title
	case FieldAuthors:
		return b.Authors
	case FieldGenre:
		return string(b.Genre)
	case FieldCote:
		return b.Cote
	case FieldStatus:
		return string(b.Status)
	case FieldEntryDate:
		return b.EntryDate
	default:
		return ""
	}
}

// EditValue returns the field value as presented in an edit buffer. Only the
// entry date differs from the stored value.
func (b Book) EditValue(f Field) string {
	if f == FieldEntryDate {
		return CanonicalToDisplay(b.EntryDate)
	}
	return b.Value(f)
}

// Patch is a typed partial update of a single field.
type Patch interface {
	Field() Field
	// Value returns the canonical string that will be stored.
	Value() string
	apply(*Book)
}

type TitlePatch struct{ Title string }

func (p TitlePatch) Field() Field  { return FieldTitle }
func (p TitlePatch) Value() string { return p.Title }
func (p TitlePatch) apply(b *Book) { b.Title = p.Title }

type AuthorsPatch struct{ Authors string }

func (p AuthorsPatch) Field() Field  { return FieldAuthors }
func (p AuthorsPatch) Value() string { return p.Authors }
func (p AuthorsPatch) apply(b *Book) { b.Authors = p.Authors }

type GenrePatch struct{ Genre Genre }

func (p GenrePatch) Field() Field  { return FieldGenre }
func (p GenrePatch) Value() string { return string(p.Genre) }
func (p GenrePatch) apply(b *Book) { b.Genre = p.Genre }

type CotePatch struct{ Cote string }

func (p CotePatch) Field() Field  { return FieldCote }
func (p CotePatch) Value() string { return p.Cote }
func (p CotePatch) apply(b *Book) { b.Cote = p.Cote }

type StatusPatch struct{ Status Status }

func (p StatusPatch) Field() Field  { return FieldStatus }
func (p StatusPatch) Value() string { return string(p.Status) }
func (p StatusPatch) apply(b *Book) { b.Status = p.Status }

// EntryDatePatch carries a canonical date or "" to clear it.
type EntryDatePatch struct{ Date string }

func (p EntryDatePatch) Field() Field  { return FieldEntryDate }
func (p EntryDatePatch) Value() string { return p.Date }
func (p EntryDatePatch) apply(b *Book) { b.EntryDate = p.Date }

// Apply merges patches over b in order.
func (b *Book) Apply(patches ...Patch) {
	for _, p := range patches {
		if p != nil {
			p.apply(b)
		}
	}
}

// With returns a copy of b with patches applied.
func (b Book) With(patches ...Patch) Book {
	b.Apply(patches...)
	return b
}

// NewPatch builds the patch for field from a raw value in edit form. Dates are
// converted from DD/MM/YYYY (unparseable input clears the date); genre and
// status must name a known value.
func NewPatch(field Field, raw string) (Patch, error) {
	switch field {
	case FieldTitle:
		return TitlePatch{Title: raw}, nil
	case FieldAuthors:
		return AuthorsPatch{Authors: raw}, nil
	case FieldCote:
		return CotePatch{Cote: raw}, nil
	case FieldGenre:
		genre, ok := ParseGenre(raw)
		if !ok {
			return nil, services.Wrap(services.ErrValidation, "catalog", "genre", "unknown genre "+quote(raw), nil)
		}
		return GenrePatch{Genre: genre}, nil
	case FieldStatus:
		status, ok := ParseStatus(raw)
		if !ok {
			return nil, services.Wrap(services.ErrValidation, "catalog", "statut", "unknown status "+quote(raw), nil)
		}
		return StatusPatch{Status: status}, nil
	case FieldEntryDate:
		return EntryDatePatch{Date: DisplayToCanonical(raw)}, nil
	default:
		return nil, services.Wrap(services.ErrValidation, "catalog", "field", "field "+field.String()+" is not editable", nil)
	}
}
