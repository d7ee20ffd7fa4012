package main

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"catalogage/internal/catalog"
)

type columnAlignment int

const (
	alignLeft columnAlignment = iota
	alignRight
)

var bookHeaders = []string{"", "EAN", "Titre", "Auteur", "Genre", "Cote", "Statut", "Entrée"}

func renderTable(headers []string, rows [][]string, aligns []columnAlignment) string {
	columns := len(headers)
	if columns == 0 {
		return ""
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	header := make(table.Row, columns)
	for i := 0; i < columns; i++ {
		header[i] = headers[i]
	}
	tw.AppendHeader(header)

	for _, row := range rows {
		r := make(table.Row, columns)
		for i := 0; i < columns; i++ {
			if i < len(row) {
				r[i] = row[i]
			} else {
				r[i] = ""
			}
		}
		tw.AppendRow(r)
	}

	columnConfigs := make([]table.ColumnConfig, 0, columns)
	for i := 0; i < columns; i++ {
		align := text.AlignLeft
		if i < len(aligns) && aligns[i] == alignRight {
			align = text.AlignRight
		}
		columnConfigs = append(columnConfigs, table.ColumnConfig{
			Number:      i + 1,
			Align:       align,
			AlignHeader: text.AlignLeft,
			WidthMax:    40,
		})
	}
	tw.SetColumnConfigs(columnConfigs)

	return tw.Render()
}

// renderBooks renders one partition. The first column marks selected rows.
func renderBooks(books []catalog.Book, selected map[string]bool, colorize bool) string {
	rows := make([][]string, 0, len(books))
	for _, book := range books {
		mark := ""
		if selected[book.EAN] {
			mark = "*"
		}
		rows = append(rows, []string{
			mark,
			book.EAN,
			book.Title,
			book.Authors,
			string(book.Genre),
			book.Cote,
			renderBookStatus(book.Status, colorize),
			catalog.CanonicalToDisplay(book.EntryDate),
		})
	}
	return renderTable(bookHeaders, rows, nil)
}
