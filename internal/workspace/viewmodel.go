package workspace

import (
	"catalogage/internal/catalog"
	"catalogage/internal/editing"
	"catalogage/internal/view"
)

// CursorView describes the open edit cell.
type CursorView struct {
	EAN    string `json:"ean"`
	Field  string `json:"field"`
	Staged string `json:"staged"`
}

// ViewModel is the read model handed to renderers.
type ViewModel struct {
	Pending   []catalog.Book `json:"pending"`
	Completed []catalog.Book `json:"completed"`
	Selection []string       `json:"selection"`
	Cursor    *CursorView    `json:"cursor,omitempty"`
	Filters   view.Filters   `json:"filters"`
	CoteSort  string         `json:"cote_sort,omitempty"`
}

// View derives the current read model.
func (w *Workspace) View() ViewModel {
	w.mu.Lock()
	defer w.mu.Unlock()

	derived := w.view.Derive(w.filters)
	model := ViewModel{
		Pending:   derived.Pending,
		Completed: derived.Completed,
		Selection: w.selection.EANs(),
		Filters:   w.filters,
	}
	if w.filters.CoteSort != view.CoteSortNone {
		model.CoteSort = w.filters.CoteSort.String()
	}
	if cursor, ok := w.editor.Cursor(); ok {
		model.Cursor = cursorView(cursor)
	}
	return model
}

// Book returns the working-set record for ean.
func (w *Workspace) Book(ean string) (catalog.Book, bool) {
	return w.view.Book(ean)
}

func cursorView(c editing.Cursor) *CursorView {
	return &CursorView{EAN: c.EAN, Field: c.Field.String(), Staged: c.Staged}
}
