package view

import (
	"context"
	"log/slog"
	"sync"

	"catalogage/internal/catalog"
	"catalogage/internal/logging"
)

// Source enumerates persisted records.
type Source interface {
	GetAll(ctx context.Context) ([]catalog.Book, error)
}

// Engine owns the working set loaded from a Source.
type Engine struct {
	mu     sync.RWMutex
	source Source
	logger *slog.Logger
	books  []catalog.Book
	index  map[string]int
}

// New constructs an Engine with an empty working set.
func New(source Source, logger *slog.Logger) *Engine {
	return &Engine{
		source: source,
		logger: logging.NewComponentLogger(logger, "view"),
		index:  make(map[string]int),
	}
}

// Reload replaces the working set with the current store contents. On error
// the previous working set is kept.
func (e *Engine) Reload(ctx context.Context) error {
	books, err := e.source.GetAll(ctx)
	if err != nil {
		logging.WarnWithContext(logging.WithContext(ctx, e.logger), "reload failed; keeping previous working set", "view_reload_failed",
			logging.Error(err),
		)
		return err
	}
	index := make(map[string]int, len(books))
	for i, book := range books {
		index[book.EAN] = i
	}

	e.mu.Lock()
	e.books = books
	e.index = index
	e.mu.Unlock()

	logging.WithContext(ctx, e.logger).Debug("working set reloaded", logging.Int("books", len(books)))
	return nil
}

// Derive computes the partitions of the current working set.
func (e *Engine) Derive(filters Filters) View {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return Derive(e.books, filters)
}

// Book returns the working-set record for ean.
func (e *Engine) Book(ean string) (catalog.Book, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	i, ok := e.index[ean]
	if !ok {
		return catalog.Book{}, false
	}
	return e.books[i], true
}

// Len returns the size of the working set.
func (e *Engine) Len() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.books)
}
