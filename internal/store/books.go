package store

import (
	"context"
	"database/sql"
	"errors"

	"catalogage/internal/catalog"
	"catalogage/internal/services"
)

const bookColumns = "ean, titre, auteur, genre, cote, statut, date_entree"

var errClosed = errors.New("store is closed")

type rowScanner interface {
	Scan(dest ...any) error
}

type queryer interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func scanBook(scanner rowScanner) (catalog.Book, error) {
	var (
		book   catalog.Book
		genre  string
		status string
	)
	if err := scanner.Scan(
		&book.EAN,
		&book.Title,
		&book.Authors,
		&genre,
		&book.Cote,
		&status,
		&book.EntryDate,
	); err != nil {
		return catalog.Book{}, err
	}
	book.Genre = catalog.Genre(genre)
	book.Status = catalog.Status(status)
	return book, nil
}

func (s *Store) ready() error {
	if s == nil || s.db == nil {
		return errClosed
	}
	return nil
}

// Put inserts book or fully replaces the record sharing its EAN.
func (s *Store) Put(ctx context.Context, book catalog.Book) error {
	if err := book.Validate(); err != nil {
		return err
	}
	if err := s.ready(); err != nil {
		return services.Wrap(services.ErrStore, component, "put", book.EAN, err)
	}
	_, err := s.db.ExecContext(
		ensureContext(ctx),
		`INSERT INTO books (`+bookColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?)
        ON CONFLICT(ean) DO UPDATE SET
            titre = excluded.titre,
            auteur = excluded.auteur,
            genre = excluded.genre,
            cote = excluded.cote,
            statut = excluded.statut,
            date_entree = excluded.date_entree`,
		book.EAN,
		book.Title,
		book.Authors,
		string(book.Genre),
		book.Cote,
		string(book.Status),
		book.EntryDate,
	)
	if err != nil {
		return services.Wrap(services.ErrStore, component, "put", book.EAN, err)
	}
	return nil
}

// Get returns the record for ean, or nil when none exists.
func (s *Store) Get(ctx context.Context, ean string) (*catalog.Book, error) {
	if err := s.ready(); err != nil {
		return nil, services.Wrap(services.ErrStore, component, "get", ean, err)
	}
	book, err := getBook(ensureContext(ctx), s.db, ean)
	if err != nil {
		return nil, services.Wrap(services.ErrStore, component, "get", ean, err)
	}
	return book, nil
}

func getBook(ctx context.Context, q queryer, ean string) (*catalog.Book, error) {
	row := q.QueryRowContext(ctx, `SELECT `+bookColumns+` FROM books WHERE ean = ?`, ean)
	book, err := scanBook(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &book, nil
}

// GetAll returns every persisted record. Order is unspecified.
func (s *Store) GetAll(ctx context.Context) ([]catalog.Book, error) {
	if err := s.ready(); err != nil {
		return nil, services.Wrap(services.ErrStore, component, "get all", "", err)
	}
	rows, err := s.db.QueryContext(ensureContext(ctx), `SELECT `+bookColumns+` FROM books`)
	if err != nil {
		return nil, services.Wrap(services.ErrStore, component, "get all", "", err)
	}
	defer rows.Close()

	var books []catalog.Book
	for rows.Next() {
		book, err := scanBook(rows)
		if err != nil {
			return nil, services.Wrap(services.ErrStore, component, "get all", "scan", err)
		}
		books = append(books, book)
	}
	if err := rows.Err(); err != nil {
		return nil, services.Wrap(services.ErrStore, component, "get all", "iterate", err)
	}
	return books, nil
}

// Delete removes the record for ean. It reports whether a record existed.
func (s *Store) Delete(ctx context.Context, ean string) (bool, error) {
	if err := s.ready(); err != nil {
		return false, services.Wrap(services.ErrStore, component, "delete", ean, err)
	}
	res, err := s.db.ExecContext(ensureContext(ctx), `DELETE FROM books WHERE ean = ?`, ean)
	if err != nil {
		return false, services.Wrap(services.ErrStore, component, "delete", ean, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, services.Wrap(services.ErrStore, component, "delete", ean, err)
	}
	return affected > 0, nil
}

// Update merges patches into the record for ean inside one transaction. It
// returns false without error when no record exists.
func (s *Store) Update(ctx context.Context, ean string, patches ...catalog.Patch) (bool, error) {
	if err := s.ready(); err != nil {
		return false, services.Wrap(services.ErrStore, component, "update", ean, err)
	}
	ctx = ensureContext(ctx)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return false, services.Wrap(services.ErrStore, component, "update", "begin tx", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	current, err := getBook(ctx, tx, ean)
	if err != nil {
		return false, services.Wrap(services.ErrStore, component, "update", ean, err)
	}
	if current == nil {
		return false, nil
	}

	merged := current.With(patches...)
	if err := merged.Validate(); err != nil {
		return false, err
	}

	if _, err := tx.ExecContext(
		ctx,
		`UPDATE books SET titre = ?, auteur = ?, genre = ?, cote = ?, statut = ?, date_entree = ? WHERE ean = ?`,
		merged.Title,
		merged.Authors,
		string(merged.Genre),
		merged.Cote,
		string(merged.Status),
		merged.EntryDate,
		ean,
	); err != nil {
		return false, services.Wrap(services.ErrStore, component, "update", ean, err)
	}

	if err := tx.Commit(); err != nil {
		return false, services.Wrap(services.ErrStore, component, "update", "commit", err)
	}
	return true, nil
}
