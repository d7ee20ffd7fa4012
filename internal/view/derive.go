package view

import (
	"slices"
	"strings"

	"catalogage/internal/catalog"
)

// View is the derived pair of partitions.
type View struct {
	Pending   []catalog.Book `json:"pending"`
	Completed []catalog.Book `json:"completed"`
}

// Derive partitions books and applies filters to the pending side. The input
// slice is not modified.
func Derive(books []catalog.Book, filters Filters) View {
	ordered := slices.Clone(books)
	slices.SortStableFunc(ordered, compareBase)

	view := View{
		Pending:   make([]catalog.Book, 0, len(ordered)),
		Completed: make([]catalog.Book, 0),
	}
	for _, book := range ordered {
		if book.Status.IsCompleted() {
			view.Completed = append(view.Completed, book)
			continue
		}
		if filters.matches(book) {
			view.Pending = append(view.Pending, book)
		}
	}

	switch filters.CoteSort {
	case CoteSortAsc:
		slices.SortStableFunc(view.Pending, func(a, b catalog.Book) int {
			return strings.Compare(a.Cote, b.Cote)
		})
	case CoteSortDesc:
		slices.SortStableFunc(view.Pending, func(a, b catalog.Book) int {
			return strings.Compare(b.Cote, a.Cote)
		})
	}
	return view
}

// compareBase orders by entry date descending, undated last, then EAN.
func compareBase(a, b catalog.Book) int {
	switch {
	case a.EntryDate == "" && b.EntryDate != "":
		return 1
	case a.EntryDate != "" && b.EntryDate == "":
		return -1
	}
	if c := strings.Compare(b.EntryDate, a.EntryDate); c != 0 {
		return c
	}
	return strings.Compare(a.EAN, b.EAN)
}

// EANs returns the codes of books in order.
func EANs(books []catalog.Book) []string {
	out := make([]string, len(books))
	for i, book := range books {
		out[i] = book.EAN
	}
	return out
}
