package enrichment_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"catalogage/internal/catalog"
	"catalogage/internal/enrichment"
	"catalogage/internal/services"
	"catalogage/internal/services/googlebooks"
)

type stubSearcher struct {
	resp  *googlebooks.Response
	err   error
	calls int
}

func (s *stubSearcher) SearchISBN(context.Context, string) (*googlebooks.Response, error) {
	s.calls++
	return s.resp, s.err
}

func fixedClock() time.Time {
	return time.Date(2025, 3, 7, 18, 30, 0, 0, time.Local)
}

func TestLookupHitMapsVolume(t *testing.T) {
	searcher := &stubSearcher{resp: &googlebooks.Response{Items: []googlebooks.Volume{{
		VolumeInfo: googlebooks.VolumeInfo{
			Title:      "Le Petit Prince",
			Authors:    []string{"Antoine de Saint-Exupéry", " ", "Autre Auteur"},
			Categories: []string{"conte", "Fiction"},
		},
	}}}}
	enricher := enrichment.New(searcher, nil, enrichment.WithClock(fixedClock))

	book, err := enricher.Lookup(context.Background(), " 9782070612758 ")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	want := catalog.Book{
		EAN:       "9782070612758",
		Title:     "Le Petit Prince",
		Authors:   "Antoine de Saint-Exupéry, Autre Auteur",
		Genre:     catalog.GenreConte,
		Status:    catalog.StatusToCatalogue,
		EntryDate: "2025-03-07",
	}
	if book != want {
		t.Fatalf("unexpected book\n got %#v\nwant %#v", book, want)
	}
}

func TestLookupUnknownCategoryLeavesGenreEmpty(t *testing.T) {
	searcher := &stubSearcher{resp: &googlebooks.Response{Items: []googlebooks.Volume{{
		VolumeInfo: googlebooks.VolumeInfo{Title: "Dune", Categories: []string{"Fiction"}},
	}}}}
	book, err := enrichment.New(searcher, nil, enrichment.WithClock(fixedClock)).Lookup(context.Background(), "9780441013593")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if book.Genre != catalog.GenreNone {
		t.Fatalf("expected empty genre, got %q", book.Genre)
	}
	if book.Cote != "" {
		t.Fatalf("expected empty cote, got %q", book.Cote)
	}
}

func TestLookupMissReturnsSkeleton(t *testing.T) {
	searcher := &stubSearcher{resp: &googlebooks.Response{TotalItems: 0}}
	book, err := enrichment.New(searcher, nil, enrichment.WithClock(fixedClock)).Lookup(context.Background(), "9780000000002")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	want := catalog.NewBook("9780000000002", fixedClock())
	if book != want {
		t.Fatalf("unexpected skeleton %#v", book)
	}
	if err := book.Validate(); err != nil {
		t.Fatalf("skeleton must be valid: %v", err)
	}
}

func TestLookupFailureIsLookupError(t *testing.T) {
	searcher := &stubSearcher{err: errors.New("connection refused")}
	_, err := enrichment.New(searcher, nil).Lookup(context.Background(), "9780000000002")
	if !errors.Is(err, services.ErrLookup) {
		t.Fatalf("expected lookup error, got %v", err)
	}
}

func TestLookupRejectsInvalidCodeWithoutRequest(t *testing.T) {
	searcher := &stubSearcher{resp: &googlebooks.Response{}}
	_, err := enrichment.New(searcher, nil).Lookup(context.Background(), "12345")
	if !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if searcher.calls != 0 {
		t.Fatalf("expected no request, got %d", searcher.calls)
	}
}

func TestLookupWithoutSearcherIsMiss(t *testing.T) {
	book, err := enrichment.New(nil, nil, enrichment.WithClock(fixedClock)).Lookup(context.Background(), "9780000000002")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if book.Title != catalog.UnknownTitle {
		t.Fatalf("expected placeholder title, got %q", book.Title)
	}
}

func TestLookupAgainstHTTPServer(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"totalItems":1,"items":[{"volumeInfo":{"title":"Astérix","authors":["Goscinny","Uderzo"],"categories":["ALBUMS"]}}]}`))
	}))
	t.Cleanup(server.Close)

	client, err := googlebooks.New(server.URL)
	if err != nil {
		t.Fatalf("googlebooks.New: %v", err)
	}
	book, err := enrichment.New(client, nil, enrichment.WithClock(fixedClock)).Lookup(context.Background(), "9782012101333")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if book.Title != "Astérix" || book.Authors != "Goscinny, Uderzo" || book.Genre != catalog.GenreAlbums {
		t.Fatalf("unexpected book %#v", book)
	}
}

func TestMapCategory(t *testing.T) {
	cases := map[string]catalog.Genre{
		"Mangas":         catalog.GenreMangas,
		"livres sonores": catalog.GenreLivresSonores,
		"TI":             catalog.GenreTI,
	}
	for input, want := range cases {
		got, ok := enrichment.MapCategory(input)
		if !ok || got != want {
			t.Fatalf("MapCategory(%q) = %q, %v; want %q", input, got, ok, want)
		}
	}
	for _, input := range []string{"", "Juvenile Fiction", "Comics & Graphic Novels"} {
		if _, ok := enrichment.MapCategory(input); ok {
			t.Fatalf("MapCategory(%q) expected no match", input)
		}
	}
}
