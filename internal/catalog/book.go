package catalog

import (
	"strings"
	"time"

	"catalogage/internal/services"
)

// UnknownTitle is the placeholder stored when no title is known.
const UnknownTitle = "(Titre inconnu)"

// Status represents the cataloguing lifecycle of a book.
type Status string

const (
	StatusToCatalogue Status = "À cataloguer"
	StatusInProgress  Status = "En cours"
	StatusCatalogued  Status = "Catalogué"
)

var allStatuses = []Status{StatusToCatalogue, StatusInProgress, StatusCatalogued}

// AllStatuses returns the ordered list of known statuses.
func AllStatuses() []Status {
	cp := make([]Status, len(allStatuses))
	copy(cp, allStatuses)
	return cp
}

// ParseStatus converts a label into a known Status. Matching ignores case,
// accents, and surrounding whitespace so "catalogue" resolves to Catalogué.
func ParseStatus(value string) (Status, bool) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "", false
	}
	for _, status := range allStatuses {
		if string(status) == trimmed {
			return status, true
		}
	}
	key := FoldKey(trimmed)
	for _, status := range allStatuses {
		if FoldKey(string(status)) == key {
			return status, true
		}
	}
	return "", false
}

// IsCompleted reports whether the status belongs to the completed partition.
func (s Status) IsCompleted() bool {
	return s == StatusCatalogued
}

// Genre is one of the shelving categories used by the library.
type Genre string

const (
	GenreNone          Genre = ""
	GenreMangas        Genre = "Mangas"
	GenreAlbums        Genre = "Albums"
	GenreATPBebe       Genre = "ATP/BEBE"
	GenreTI            Genre = "TI"
	GenreConte         Genre = "Conte"
	GenreLivresSonores Genre = "Livres sonores"
	GenreLivresCD      Genre = "Livres CD"
)

var allGenres = []Genre{
	GenreMangas,
	GenreAlbums,
	GenreATPBebe,
	GenreTI,
	GenreConte,
	GenreLivresSonores,
	GenreLivresCD,
}

// AllGenres returns the ordered list of known genres (the empty genre excluded).
func AllGenres() []Genre {
	cp := make([]Genre, len(allGenres))
	copy(cp, allGenres)
	return cp
}

// ParseGenre converts a label into a known Genre. An empty label is valid and
// yields GenreNone.
func ParseGenre(value string) (Genre, bool) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return GenreNone, true
	}
	key := FoldKey(trimmed)
	for _, genre := range allGenres {
		if string(genre) == trimmed || FoldKey(string(genre)) == key {
			return genre, true
		}
	}
	return "", false
}

// Book is the sole persisted entity.
type Book struct {
	EAN       string `json:"ean"`
	Title     string `json:"titre"`
	Authors   string `json:"auteur"`
	Genre     Genre  `json:"genre"`
	Cote      string `json:"cote"`
	Status    Status `json:"statut"`
	EntryDate string `json:"date_entree"`
}

// NewBook returns a record carrying the manual-add defaults.
func NewBook(ean string, now time.Time) Book {
	return Book{
		EAN:       ean,
		Title:     UnknownTitle,
		Status:    StatusToCatalogue,
		EntryDate: CanonicalDate(now),
	}
}

// Validate checks every invariant a persisted record must satisfy.
func (b Book) Validate() error {
	if err := ValidateEAN(b.EAN); err != nil {
		return err
	}
	if !isExactStatus(b.Status) {
		return services.Wrap(services.ErrValidation, "catalog", "statut", "unknown status "+quote(string(b.Status)), nil)
	}
	if b.Genre != GenreNone && !isExactGenre(b.Genre) {
		return services.Wrap(services.ErrValidation, "catalog", "genre", "unknown genre "+quote(string(b.Genre)), nil)
	}
	if b.EntryDate != "" && !IsCanonicalDate(b.EntryDate) {
		return services.Wrap(services.ErrValidation, "catalog", "date_entree", "not a canonical date "+quote(b.EntryDate), nil)
	}
	return nil
}

func isExactStatus(s Status) bool {
	for _, status := range allStatuses {
		if s == status {
			return true
		}
	}
	return false
}

func isExactGenre(g Genre) bool {
	for _, genre := range allGenres {
		if g == genre {
			return true
		}
	}
	return false
}

func quote(s string) string {
	return "\"" + s + "\""
}
