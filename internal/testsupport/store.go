package testsupport

import (
	"context"
	"testing"

	"catalogage/internal/catalog"
	"catalogage/internal/config"
	"catalogage/internal/store"
)

// MustOpenStore opens a store.Store for tests and registers cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config) *store.Store {
	t.Helper()

	st, err := store.Open(cfg)
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	t.Cleanup(func() {
		st.Close()
	})
	return st
}

// PutBooks persists books, failing the test on the first error.
func PutBooks(t testing.TB, st *store.Store, books ...catalog.Book) {
	t.Helper()

	for _, book := range books {
		if err := st.Put(context.Background(), book); err != nil {
			t.Fatalf("store.Put %s: %v", book.EAN, err)
		}
	}
}

// Book builds a valid record with the given EAN, status and entry date.
func Book(ean string, status catalog.Status, entryDate string) catalog.Book {
	return catalog.Book{
		EAN:       ean,
		Title:     "Livre " + ean[len(ean)-4:],
		Status:    status,
		EntryDate: entryDate,
	}
}
