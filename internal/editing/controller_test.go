package editing_test

import (
	"context"
	"errors"
	"testing"

	"catalogage/internal/catalog"
	"catalogage/internal/editing"
	"catalogage/internal/logging"
	"catalogage/internal/services"
)

type update struct {
	ean     string
	patches []catalog.Patch
}

type memoryBooks struct {
	books   map[string]catalog.Book
	updates []update
	failErr error
}

func newMemoryBooks(books ...catalog.Book) *memoryBooks {
	m := &memoryBooks{books: make(map[string]catalog.Book)}
	for _, b := range books {
		m.books[b.EAN] = b
	}
	return m
}

func (m *memoryBooks) Book(ean string) (catalog.Book, bool) {
	b, ok := m.books[ean]
	return b, ok
}

func (m *memoryBooks) Update(_ context.Context, ean string, patches ...catalog.Patch) (bool, error) {
	if m.failErr != nil {
		return false, m.failErr
	}
	m.updates = append(m.updates, update{ean: ean, patches: patches})
	b, ok := m.books[ean]
	if !ok {
		return false, nil
	}
	m.books[ean] = b.With(patches...)
	return true, nil
}

const (
	eanA = "9782070368228"
	eanB = "9782253004226"
)

func sampleBooks() *memoryBooks {
	return newMemoryBooks(
		catalog.Book{EAN: eanA, Title: "L'Étranger", Status: catalog.StatusToCatalogue, EntryDate: "2024-03-07"},
		catalog.Book{EAN: eanB, Title: "Germinal", Status: catalog.StatusInProgress, EntryDate: "2023-11-30"},
	)
}

func TestBeginStagesEditValue(t *testing.T) {
	books := sampleBooks()
	c := editing.New(books, books, logging.NewNop())

	if c.State() != editing.StateViewing {
		t.Fatalf("initial state = %v", c.State())
	}
	if _, err := c.Begin(context.Background(), eanA, catalog.FieldEntryDate); err != nil {
		t.Fatalf("Begin: %v", err)
	}
	cursor, ok := c.Cursor()
	if !ok || c.State() != editing.StateEditing {
		t.Fatalf("expected editing state, got %v", c.State())
	}
	if cursor.EAN != eanA || cursor.Field != catalog.FieldEntryDate || cursor.Staged != "07/03/2024" {
		t.Fatalf("unexpected cursor %+v", cursor)
	}
}

func TestBeginUnknownRecord(t *testing.T) {
	books := sampleBooks()
	c := editing.New(books, books, logging.NewNop())
	_, err := c.Begin(context.Background(), "9780000000000", catalog.FieldTitle)
	if !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if c.State() != editing.StateViewing {
		t.Fatalf("state changed on failed begin")
	}
}

func TestCommitWritesOnlyChangedValues(t *testing.T) {
	books := sampleBooks()
	c := editing.New(books, books, logging.NewNop())
	ctx := context.Background()

	if _, err := c.Begin(ctx, eanA, catalog.FieldTitle); err != nil {
		t.Fatalf("Begin: %v", err)
	}
	wrote, err := c.Commit(ctx)
	if err != nil || wrote {
		t.Fatalf("unchanged commit: wrote=%v err=%v", wrote, err)
	}
	if len(books.updates) != 0 {
		t.Fatalf("expected no writes, got %d", len(books.updates))
	}
	if c.State() != editing.StateViewing {
		t.Fatalf("expected viewing after commit")
	}

	if _, err := c.Begin(ctx, eanA, catalog.FieldTitle); err != nil {
		t.Fatalf("Begin: %v", err)
	}
	if err := c.Stage("L'Étranger (Folio)"); err != nil {
		t.Fatalf("Stage: %v", err)
	}
	wrote, err = c.Commit(ctx)
	if err != nil || !wrote {
		t.Fatalf("changed commit: wrote=%v err=%v", wrote, err)
	}
	if len(books.updates) != 1 || books.books[eanA].Title != "L'Étranger (Folio)" {
		t.Fatalf("unexpected updates %+v", books.updates)
	}
}

func TestDateRoundTrip(t *testing.T) {
	books := sampleBooks()
	c := editing.New(books, books, logging.NewNop())
	ctx := context.Background()

	if _, err := c.Begin(ctx, eanB, catalog.FieldEntryDate); err != nil {
		t.Fatalf("Begin: %v", err)
	}
	if err := c.Stage("05/01/2024"); err != nil {
		t.Fatalf("Stage: %v", err)
	}
	if _, err := c.Commit(ctx); err != nil {
		t.Fatalf("Commit: %v", err)
	}
	if got := books.books[eanB].EntryDate; got != "2024-01-05" {
		t.Fatalf("stored date = %q", got)
	}
	if _, err := c.Begin(ctx, eanB, catalog.FieldEntryDate); err != nil {
		t.Fatalf("Begin: %v", err)
	}
	cursor, _ := c.Cursor()
	if cursor.Staged != "05/01/2024" {
		t.Fatalf("round trip staged = %q", cursor.Staged)
	}
}

func TestUnparseableDateClears(t *testing.T) {
	books := sampleBooks()
	c := editing.New(books, books, logging.NewNop())
	ctx := context.Background()

	_, _ = c.Begin(ctx, eanA, catalog.FieldEntryDate)
	_ = c.Stage("bientôt")
	wrote, err := c.Commit(ctx)
	if err != nil || !wrote {
		t.Fatalf("commit: wrote=%v err=%v", wrote, err)
	}
	if got := books.books[eanA].EntryDate; got != "" {
		t.Fatalf("expected cleared date, got %q", got)
	}
}

func TestInvalidStatusKeepsEditing(t *testing.T) {
	books := sampleBooks()
	c := editing.New(books, books, logging.NewNop())
	ctx := context.Background()

	_, _ = c.Begin(ctx, eanA, catalog.FieldStatus)
	_ = c.Stage("Perdu")
	_, err := c.Commit(ctx)
	if !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	if c.State() != editing.StateEditing {
		t.Fatalf("cursor should stay open after validation failure")
	}
	if len(books.updates) != 0 {
		t.Fatalf("invalid status must not be written")
	}

	_ = c.Stage("catalogué")
	wrote, err := c.Commit(ctx)
	if err != nil || !wrote {
		t.Fatalf("commit: wrote=%v err=%v", wrote, err)
	}
	if books.books[eanA].Status != catalog.StatusCatalogued {
		t.Fatalf("status = %q", books.books[eanA].Status)
	}
}

func TestStoreFailureKeepsEditing(t *testing.T) {
	books := sampleBooks()
	books.failErr = services.Wrap(services.ErrStore, "store", "update", "", errors.New("disk full"))
	c := editing.New(books, books, logging.NewNop())
	ctx := context.Background()

	_, _ = c.Begin(ctx, eanA, catalog.FieldCote)
	_ = c.Stage("R CAM")
	if _, err := c.Commit(ctx); !errors.Is(err, services.ErrStore) {
		t.Fatalf("expected ErrStore, got %v", err)
	}
	cursor, ok := c.Cursor()
	if !ok || cursor.Staged != "R CAM" {
		t.Fatalf("staged value lost: %+v", cursor)
	}
}

func TestSwitchPolicies(t *testing.T) {
	tests := []struct {
		name      string
		policy    editing.SwitchPolicy
		wantWrote bool
		wantCote  string
	}{
		{name: "commit", policy: editing.SwitchCommit, wantWrote: true, wantCote: "R CAM"},
		{name: "cancel", policy: editing.SwitchCancel, wantWrote: false, wantCote: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			books := sampleBooks()
			c := editing.New(books, books, logging.NewNop(), editing.WithSwitchPolicy(tt.policy))
			ctx := context.Background()

			_, _ = c.Begin(ctx, eanA, catalog.FieldCote)
			_ = c.Stage("R CAM")
			wrote, err := c.Begin(ctx, eanB, catalog.FieldTitle)
			if err != nil {
				t.Fatalf("Begin: %v", err)
			}
			if wrote != tt.wantWrote {
				t.Fatalf("wrote = %v, want %v", wrote, tt.wantWrote)
			}
			if got := books.books[eanA].Cote; got != tt.wantCote {
				t.Fatalf("cote = %q, want %q", got, tt.wantCote)
			}
			cursor, _ := c.Cursor()
			if cursor.EAN != eanB || cursor.Field != catalog.FieldTitle || cursor.Staged != "Germinal" {
				t.Fatalf("unexpected cursor %+v", cursor)
			}
		})
	}
}

func TestSwitchCommitFailureKeepsPreviousCell(t *testing.T) {
	books := sampleBooks()
	c := editing.New(books, books, logging.NewNop())
	ctx := context.Background()

	_, _ = c.Begin(ctx, eanA, catalog.FieldGenre)
	_ = c.Stage("Poésie")
	if _, err := c.Begin(ctx, eanB, catalog.FieldTitle); !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	cursor, _ := c.Cursor()
	if cursor.EAN != eanA || cursor.Field != catalog.FieldGenre {
		t.Fatalf("cursor moved despite failed commit: %+v", cursor)
	}
}

func TestStageWithoutCursor(t *testing.T) {
	books := sampleBooks()
	c := editing.New(books, books, logging.NewNop())
	if err := c.Stage("x"); !errors.Is(err, editing.ErrNotEditing) {
		t.Fatalf("expected ErrNotEditing, got %v", err)
	}
	wrote, err := c.Commit(context.Background())
	if wrote || err != nil {
		t.Fatalf("commit without cursor: wrote=%v err=%v", wrote, err)
	}
}

func TestForgetClosesMatchingCursor(t *testing.T) {
	books := sampleBooks()
	c := editing.New(books, books, logging.NewNop())
	_, _ = c.Begin(context.Background(), eanA, catalog.FieldTitle)
	c.Forget(eanB)
	if c.State() != editing.StateEditing {
		t.Fatalf("forget of another ean closed cursor")
	}
	c.Forget(eanA)
	if c.State() != editing.StateViewing {
		t.Fatalf("forget did not close cursor")
	}
}
