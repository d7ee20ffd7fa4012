package enrichment

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"catalogage/internal/catalog"
	"catalogage/internal/logging"
	"catalogage/internal/services"
	"catalogage/internal/services/googlebooks"
)

const component = "enrichment"

// Enricher resolves codes into candidate records.
type Enricher struct {
	searcher googlebooks.Searcher
	logger   *slog.Logger
	now      func() time.Time
}

// Option configures an Enricher.
type Option func(*Enricher)

// WithClock overrides the clock used for the entry date.
func WithClock(now func() time.Time) Option {
	return func(e *Enricher) {
		if now != nil {
			e.now = now
		}
	}
}

// New constructs an Enricher. A nil searcher makes every lookup a miss so the
// catalog keeps working offline.
func New(searcher googlebooks.Searcher, logger *slog.Logger, opts ...Option) *Enricher {
	e := &Enricher{
		searcher: searcher,
		logger:   logging.NewComponentLogger(logger, component),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Lookup returns the candidate record for code. The code is validated before
// any request is issued.
func (e *Enricher) Lookup(ctx context.Context, code string) (catalog.Book, error) {
	code = catalog.NormalizeEAN(code)
	if err := catalog.ValidateEAN(code); err != nil {
		return catalog.Book{}, err
	}
	logger := logging.WithContext(services.WithEAN(ctx, code), e.logger)

	book := catalog.NewBook(code, e.now())
	if e.searcher == nil {
		logger.Debug("lookup disabled; using skeleton record")
		return book, nil
	}

	resp, err := e.searcher.SearchISBN(ctx, code)
	if err != nil {
		logging.WarnWithContext(logger, "metadata lookup failed", "lookup_failed",
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "check network access or lookup.base_url"),
		)
		return catalog.Book{}, services.Wrap(services.ErrLookup, component, "lookup", code, err)
	}
	if resp == nil || len(resp.Items) == 0 {
		logger.Info("no metadata found", logging.String("result", "miss"))
		return book, nil
	}

	info := resp.Items[0].VolumeInfo
	if title := strings.TrimSpace(info.Title); title != "" {
		book.Title = title
	}
	book.Authors = joinAuthors(info.Authors)
	if len(info.Categories) > 0 {
		if genre, ok := MapCategory(info.Categories[0]); ok {
			book.Genre = genre
		} else {
			logger.Debug("category does not match a known genre", logging.String("category", info.Categories[0]))
		}
	}
	logger.Info("metadata found",
		logging.String("result", "hit"),
		logging.String("title", book.Title),
		logging.String("genre", string(book.Genre)),
	)
	return book, nil
}

// MapCategory matches an external category against the known genres,
// ignoring case and accents.
func MapCategory(category string) (catalog.Genre, bool) {
	if strings.TrimSpace(category) == "" {
		return catalog.GenreNone, false
	}
	genre, ok := catalog.ParseGenre(category)
	if !ok || genre == catalog.GenreNone {
		return catalog.GenreNone, false
	}
	return genre, true
}

func joinAuthors(authors []string) string {
	cleaned := make([]string, 0, len(authors))
	for _, author := range authors {
		if trimmed := strings.TrimSpace(author); trimmed != "" {
			cleaned = append(cleaned, trimmed)
		}
	}
	return strings.Join(cleaned, ", ")
}
