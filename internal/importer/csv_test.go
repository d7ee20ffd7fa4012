package importer_test

import (
	"bytes"
	"strings"
	"testing"

	"catalogage/internal/catalog"
	"catalogage/internal/importer"
)

func TestReadCSVCommaWithBOM(t *testing.T) {
	input := "\uFEFFEAN,Titre,Auteur,Genre,Cote,Statut,Date d’entrée\n" +
		"9780000000001,\"Titre, avec virgule\",Auteur,Mangas,M A,En cours,2024-01-02\n" +
		"\n" +
		",,,,,,\n" +
		"9780000000002,Deux,,,,,\n"
	rows, err := importer.ReadCSV(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ReadCSV: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if got := rows[0].Get(importer.ColumnEAN); got != "9780000000001" {
		t.Fatalf("BOM not stripped from header, EAN = %q", got)
	}
	if got := rows[0].Get(importer.ColumnTitle); got != "Titre, avec virgule" {
		t.Fatalf("unexpected title %q", got)
	}
	if got := rows[0].Get(importer.ColumnEntryDate); got != "2024-01-02" {
		t.Fatalf("unexpected date %q", got)
	}
}

func TestReadCSVSemicolonAndShortRows(t *testing.T) {
	input := "ean;titre;date d'entrée\r\n9780000000001;Un;01/02/2024\r\n9780000000002\r\n"
	rows, err := importer.ReadCSV(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ReadCSV: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if got := rows[0].Get(importer.ColumnEntryDate); got != "01/02/2024" {
		t.Fatalf("unexpected date %q", got)
	}
	if got := rows[1].Get(importer.ColumnTitle); got != "" {
		t.Fatalf("expected missing title, got %q", got)
	}
}

func TestReadCSVEmptyInput(t *testing.T) {
	if _, err := importer.ReadCSV(strings.NewReader("")); err == nil {
		t.Fatal("expected error for empty input")
	}
}

func TestWriteCSVRoundTrip(t *testing.T) {
	books := []catalog.Book{
		{EAN: "9780000000001", Title: "Titre; \"cité\"", Authors: "A, B", Genre: catalog.GenreATPBebe, Cote: "R A", Status: catalog.StatusCatalogued, EntryDate: "2024-03-04"},
		{EAN: "9780000000002", Title: catalog.UnknownTitle, Status: catalog.StatusToCatalogue},
	}
	var buf bytes.Buffer
	if err := importer.WriteCSV(&buf, books); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}
	rows, err := importer.ReadCSV(&buf)
	if err != nil {
		t.Fatalf("ReadCSV: %v", err)
	}
	if len(rows) != len(books) {
		t.Fatalf("expected %d rows, got %d", len(books), len(rows))
	}
	first := rows[0]
	if first.Get(importer.ColumnTitle) != books[0].Title || first.Get(importer.ColumnAuthors) != "A, B" {
		t.Fatalf("unexpected first row %v", first)
	}
	if first.Get(importer.ColumnGenre) != "ATP/BEBE" || first.Get(importer.ColumnStatus) != "Catalogué" {
		t.Fatalf("unexpected first row %v", first)
	}
}

func TestRowGetMatchesHeaderVariants(t *testing.T) {
	cases := []importer.Row{
		{"Date d’entrée": "2024-01-01"},
		{"date d'entree": "2024-01-01"},
		{"DATE D'ENTRÉE": "2024-01-01"},
		{"date_entree": "2024-01-01"},
	}
	for _, row := range cases {
		if got := row.Get(importer.ColumnEntryDate); got != "2024-01-01" {
			t.Fatalf("row %v: got %q", row, got)
		}
	}
}
