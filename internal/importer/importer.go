package importer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"catalogage/internal/catalog"
	"catalogage/internal/logging"
	"catalogage/internal/services"
)

const component = "importer"

// Writer persists records.
type Writer interface {
	Put(ctx context.Context, book catalog.Book) error
}

// RowError describes a rejected row. Index is 1-based within the batch.
type RowError struct {
	Index  int    `json:"index"`
	EAN    string `json:"ean,omitempty"`
	Reason string `json:"reason"`
}

func (e RowError) Error() string {
	if e.EAN == "" {
		return fmt.Sprintf("row %d: %s", e.Index, e.Reason)
	}
	return fmt.Sprintf("row %d (%s): %s", e.Index, e.EAN, e.Reason)
}

// Result summarizes one import.
type Result struct {
	Imported int        `json:"imported"`
	Skipped  int        `json:"skipped"`
	Rejected []RowError `json:"rejected,omitempty"`
}

// Importer upserts rows through a Writer.
type Importer struct {
	writer Writer
	strict bool
	logger *slog.Logger
	now    func() time.Time
}

// Option configures an Importer.
type Option func(*Importer)

// WithStrict rejects rows carrying unknown statut, genre or date values.
func WithStrict(strict bool) Option {
	return func(i *Importer) {
		i.strict = strict
	}
}

// WithClock overrides the clock used for missing entry dates.
func WithClock(now func() time.Time) Option {
	return func(i *Importer) {
		if now != nil {
			i.now = now
		}
	}
}

// New constructs an Importer writing through w.
func New(w Writer, logger *slog.Logger, opts ...Option) *Importer {
	i := &Importer{
		writer: w,
		logger: logging.NewComponentLogger(logger, component),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// Import converts and upserts rows in order. A store failure stops the batch;
// the returned Result then counts what was written before it.
func (i *Importer) Import(ctx context.Context, rows []Row) (Result, error) {
	logger := logging.WithContext(ctx, i.logger)
	importedAt := i.now()
	var result Result

	for idx, row := range rows {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		book, rowErr, skip := i.convert(row, importedAt)
		if skip {
			result.Skipped++
			continue
		}
		if rowErr != "" {
			result.Rejected = append(result.Rejected, RowError{Index: idx + 1, EAN: book.EAN, Reason: rowErr})
			continue
		}
		if err := i.writer.Put(ctx, book); err != nil {
			if errors.Is(err, services.ErrValidation) {
				result.Rejected = append(result.Rejected, RowError{Index: idx + 1, EAN: book.EAN, Reason: err.Error()})
				continue
			}
			logging.ErrorWithContext(logger, "import interrupted", "import_store_failure",
				logging.Int("row", idx+1),
				logging.String(logging.FieldEAN, book.EAN),
				logging.Int("imported", result.Imported),
				logging.Error(err),
			)
			return result, err
		}
		result.Imported++
	}

	logger.Info("import finished",
		logging.Int("rows", len(rows)),
		logging.Int("imported", result.Imported),
		logging.Int("skipped", result.Skipped),
		logging.Int("rejected", len(result.Rejected)),
	)
	return result, nil
}

// convert maps a row to a record. It returns skip for rows without a code and
// a non-empty reason for rejected rows.
func (i *Importer) convert(row Row, importedAt time.Time) (catalog.Book, string, bool) {
	code := catalog.NormalizeEAN(row.Get(ColumnEAN))
	if code == "" {
		return catalog.Book{}, "", true
	}
	book := catalog.NewBook(code, importedAt)
	if err := catalog.ValidateEAN(code); err != nil {
		return book, "EAN must be 13 digits", false
	}

	if title := row.Get(ColumnTitle); title != "" {
		book.Title = title
	}
	book.Authors = row.Get(ColumnAuthors)
	book.Cote = row.Get(ColumnCote)

	if raw := row.Get(ColumnStatus); raw != "" {
		status, ok := catalog.ParseStatus(raw)
		switch {
		case ok:
			book.Status = status
		case i.strict:
			return book, fmt.Sprintf("unknown statut %q", raw), false
		default:
			i.logger.Debug("unknown statut coerced to default", logging.String(logging.FieldEAN, code), logging.String("statut", raw))
		}
	}

	if raw := row.Get(ColumnGenre); raw != "" {
		genre, ok := catalog.ParseGenre(raw)
		switch {
		case ok:
			book.Genre = genre
		case i.strict:
			return book, fmt.Sprintf("unknown genre %q", raw), false
		default:
			i.logger.Debug("unknown genre dropped", logging.String(logging.FieldEAN, code), logging.String("genre", raw))
		}
	}

	if raw := row.Get(ColumnEntryDate); raw != "" {
		date, ok := catalog.ParseLooseDate(raw)
		switch {
		case ok:
			book.EntryDate = date
		case i.strict:
			return book, fmt.Sprintf("unparseable date %q", raw), false
		default:
			i.logger.Debug("unparseable date replaced by import date", logging.String(logging.FieldEAN, code), logging.String("date", raw))
		}
	}

	return book, "", false
}
