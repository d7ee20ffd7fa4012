package importer

import (
	"strings"

	"catalogage/internal/catalog"
)

// Column headers written by WriteCSV and recognized by Row lookups.
const (
	ColumnEAN       = "EAN"
	ColumnTitle     = "Titre"
	ColumnAuthors   = "Auteur"
	ColumnGenre     = "Genre"
	ColumnCote      = "Cote"
	ColumnStatus    = "Statut"
	ColumnEntryDate = "Date d’entrée"
)

var columnAliases = map[string][]string{
	ColumnEAN:       {"ean", "isbn", "code"},
	ColumnTitle:     {"titre", "title"},
	ColumnAuthors:   {"auteur", "auteurs", "author", "authors"},
	ColumnGenre:     {"genre"},
	ColumnCote:      {"cote"},
	ColumnStatus:    {"statut", "status"},
	ColumnEntryDate: {"date d'entree", "date_entree", "date entree", "date"},
}

// Row is one spreadsheet line keyed by header. Header matching ignores case,
// accents and apostrophe style.
type Row map[string]string

// Get returns the trimmed value of column, or "" when the row lacks it.
func (r Row) Get(column string) string {
	aliases, ok := columnAliases[column]
	if !ok {
		aliases = []string{catalog.FoldKey(column)}
	}
	folded := make(map[string]string, len(r))
	for key, value := range r {
		folded[catalog.FoldKey(key)] = value
	}
	for _, alias := range aliases {
		if value, ok := folded[alias]; ok {
			return strings.TrimSpace(value)
		}
	}
	return ""
}

// Empty reports whether every cell is blank.
func (r Row) Empty() bool {
	for _, value := range r {
		if strings.TrimSpace(value) != "" {
			return false
		}
	}
	return true
}
