package workspace

import (
	"context"

	"catalogage/internal/batch"
	"catalogage/internal/catalog"
	"catalogage/internal/importer"
	"catalogage/internal/logging"
	"catalogage/internal/services"
	"catalogage/internal/view"
)

// Partition names one side of the derived view.
type Partition string

const (
	PartitionPending   Partition = "pending"
	PartitionCompleted Partition = "completed"
)

// ParsePartition resolves a partition name.
func ParsePartition(value string) (Partition, error) {
	switch Partition(catalog.FoldKey(value)) {
	case PartitionPending:
		return PartitionPending, nil
	case PartitionCompleted:
		return PartitionCompleted, nil
	default:
		return "", services.Wrap(services.ErrValidation, component, "partition", "unknown partition "+value, nil)
	}
}

// AddByCode looks code up and stores the resulting record, replacing any
// record with the same EAN. A malformed code fails before any request or
// write; a lookup failure writes nothing.
func (w *Workspace) AddByCode(ctx context.Context, code string) (catalog.Book, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	ctx = w.beginAction(ctx, "add")

	book, err := w.lookup.Lookup(ctx, code)
	if err != nil {
		return catalog.Book{}, err
	}
	ctx = services.WithEAN(ctx, book.EAN)
	if err := w.store.Put(ctx, book); err != nil {
		return catalog.Book{}, err
	}
	logging.WithContext(ctx, w.logger).Info("book added",
		logging.String("titre", book.Title),
		logging.String("genre", string(book.Genre)),
	)
	return book, w.reloadLocked(ctx)
}

// ImportRows upserts rows in order and reloads once when anything was written.
func (w *Workspace) ImportRows(ctx context.Context, rows []importer.Row) (importer.Result, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	ctx = w.beginAction(ctx, "import")

	result, err := w.importer.Import(ctx, rows)
	if result.Imported > 0 {
		if reloadErr := w.reloadLocked(ctx); err == nil {
			err = reloadErr
		}
	}
	return result, err
}

// BeginEdit opens the cell (ean, field). A commit triggered by the switch
// policy reloads the working set.
func (w *Workspace) BeginEdit(ctx context.Context, ean string, field catalog.Field) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	ctx = w.beginAction(ctx, "begin edit")

	wrote, err := w.editor.Begin(ctx, ean, field)
	if err != nil {
		return err
	}
	if wrote {
		return w.reloadLocked(ctx)
	}
	return nil
}

// StageEdit replaces the edit buffer.
func (w *Workspace) StageEdit(value string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.editor.Stage(value)
}

// CommitEdit writes the staged value if it changed and reports whether a
// write happened.
func (w *Workspace) CommitEdit(ctx context.Context) (bool, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	ctx = w.beginAction(ctx, "commit edit")

	wrote, err := w.editor.Commit(ctx)
	if err != nil || !wrote {
		return wrote, err
	}
	return true, w.reloadLocked(ctx)
}

// CancelEdit discards the staged value.
func (w *Workspace) CancelEdit() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.editor.Cancel()
}

// ToggleSelect flips the selection of a visible record and reports whether it
// is now selected.
func (w *Workspace) ToggleSelect(ean string) (bool, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.visibleLocked(ean) {
		return false, services.Wrap(services.ErrNotFound, component, "select", ean, nil)
	}
	return w.selection.Toggle(ean), nil
}

// SelectEANs replaces the selection with eans. Repeated codes are selected
// once; a code that is not visible leaves the selection unchanged.
func (w *Workspace) SelectEANs(eans []string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	for _, ean := range eans {
		if !w.visibleLocked(ean) {
			return services.Wrap(services.ErrNotFound, component, "select", ean, nil)
		}
	}
	w.selection.SelectAll(eans)
	return nil
}

// SelectAll replaces the selection with every visible record of partition.
func (w *Workspace) SelectAll(partition Partition) {
	w.mu.Lock()
	defer w.mu.Unlock()
	derived := w.view.Derive(w.filters)
	if partition == PartitionCompleted {
		w.selection.SelectAll(view.EANs(derived.Completed))
		return
	}
	w.selection.SelectAll(view.EANs(derived.Pending))
}

// ClearSelection empties the selection.
func (w *Workspace) ClearSelection() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.selection.Clear()
}

// ApplyBulk sets field to raw on every selected record, then reloads once.
func (w *Workspace) ApplyBulk(ctx context.Context, field catalog.Field, raw string) (batch.Result, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	ctx = w.beginAction(ctx, "apply bulk")

	result, err := w.batch.ApplyBulk(ctx, field, raw)
	return result, w.finishBatchLocked(ctx, result, err)
}

// DeleteSelected removes every selected record, then reloads once.
func (w *Workspace) DeleteSelected(ctx context.Context) (batch.Result, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	ctx = w.beginAction(ctx, "delete selected")

	result, err := w.batch.DeleteSelected(ctx)
	for _, ean := range result.Succeeded {
		w.editor.Forget(ean)
	}
	for _, ean := range result.Missing {
		w.editor.Forget(ean)
	}
	return result, w.finishBatchLocked(ctx, result, err)
}

func (w *Workspace) finishBatchLocked(ctx context.Context, result batch.Result, err error) error {
	if result.Requested == 0 {
		return err
	}
	if reloadErr := w.reloadLocked(ctx); err == nil {
		err = reloadErr
	}
	return err
}

// Delete removes one record. It reports false when no record had that EAN. On
// failure the working set is left untouched.
func (w *Workspace) Delete(ctx context.Context, ean string) (bool, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	ctx = services.WithEAN(w.beginAction(ctx, "delete"), ean)

	existed, err := w.store.Delete(ctx, ean)
	if err != nil {
		return false, err
	}
	w.editor.Forget(ean)
	if w.selection.Contains(ean) {
		w.selection.Toggle(ean)
	}
	if existed {
		logging.WithContext(ctx, w.logger).Info("book deleted")
	}
	return existed, w.reloadLocked(ctx)
}

// SetFilter replaces the pending filters and drops selected EANs that are no
// longer visible.
func (w *Workspace) SetFilter(filters view.Filters) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.filters = filters
	w.pruneSelectionLocked()
}

func (w *Workspace) visibleLocked(ean string) bool {
	derived := w.view.Derive(w.filters)
	for _, books := range [][]catalog.Book{derived.Pending, derived.Completed} {
		for _, book := range books {
			if book.EAN == ean {
				return true
			}
		}
	}
	return false
}
