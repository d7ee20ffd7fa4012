package view

import (
	"fmt"
	"strings"

	"catalogage/internal/catalog"
	"catalogage/internal/services"
)

// CoteSort selects how the pending partition is ordered.
type CoteSort int

const (
	// CoteSortNone keeps the base date order.
	CoteSortNone CoteSort = iota
	CoteSortAsc
	CoteSortDesc
)

// String returns the flag spelling of the sort.
func (s CoteSort) String() string {
	switch s {
	case CoteSortAsc:
		return "asc"
	case CoteSortDesc:
		return "desc"
	default:
		return ""
	}
}

// ParseCoteSort accepts "", "asc" or "desc".
func ParseCoteSort(value string) (CoteSort, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "none":
		return CoteSortNone, nil
	case "asc":
		return CoteSortAsc, nil
	case "desc":
		return CoteSortDesc, nil
	default:
		return CoteSortNone, services.Wrap(services.ErrValidation, "view", "sort", fmt.Sprintf("unknown cote sort %q", value), nil)
	}
}

// Filters narrow the pending partition. Empty Genre or Status means no filter.
type Filters struct {
	Genre    catalog.Genre  `json:"genre,omitempty"`
	Status   catalog.Status `json:"statut,omitempty"`
	CoteSort CoteSort       `json:"-"`
}

// ParseFilters builds Filters from user-supplied labels.
func ParseFilters(genre, status, coteSort string) (Filters, error) {
	var filters Filters
	if strings.TrimSpace(genre) != "" {
		g, ok := catalog.ParseGenre(genre)
		if !ok {
			return Filters{}, services.Wrap(services.ErrValidation, "view", "filter", fmt.Sprintf("unknown genre %q", genre), nil)
		}
		filters.Genre = g
	}
	if strings.TrimSpace(status) != "" {
		s, ok := catalog.ParseStatus(status)
		if !ok {
			return Filters{}, services.Wrap(services.ErrValidation, "view", "filter", fmt.Sprintf("unknown statut %q", status), nil)
		}
		filters.Status = s
	}
	sort, err := ParseCoteSort(coteSort)
	if err != nil {
		return Filters{}, err
	}
	filters.CoteSort = sort
	return filters, nil
}

func (f Filters) matches(book catalog.Book) bool {
	if f.Genre != catalog.GenreNone && book.Genre != f.Genre {
		return false
	}
	if f.Status != "" && book.Status != f.Status {
		return false
	}
	return true
}
