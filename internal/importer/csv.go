package importer

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"catalogage/internal/catalog"
)

const utf8BOM = "\uFEFF"

// ReadCSV parses a CSV document whose first line is a header. The delimiter
// (comma or semicolon) is detected from the header line and a leading UTF-8
// byte order mark is ignored. Blank lines are dropped.
func ReadCSV(r io.Reader) ([]Row, error) {
	buffered := bufio.NewReader(r)
	headerLine, err := buffered.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("read csv header: %w", err)
	}
	headerLine = strings.TrimPrefix(headerLine, utf8BOM)
	if strings.TrimSpace(headerLine) == "" {
		return nil, errors.New("csv header is empty")
	}

	reader := csv.NewReader(io.MultiReader(strings.NewReader(headerLine), buffered))
	reader.Comma = detectDelimiter(headerLine)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	var rows []Row
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv: %w", err)
		}
		row := make(Row, len(header))
		for i, name := range header {
			if name == "" || i >= len(record) {
				continue
			}
			row[name] = record[i]
		}
		if row.Empty() {
			continue
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func detectDelimiter(headerLine string) rune {
	if strings.Count(headerLine, ";") > strings.Count(headerLine, ",") {
		return ';'
	}
	return ','
}

// WriteCSV writes books with the same header ReadCSV expects, so an export
// can be imported again unchanged.
func WriteCSV(w io.Writer, books []catalog.Book) error {
	writer := csv.NewWriter(w)
	header := []string{ColumnEAN, ColumnTitle, ColumnAuthors, ColumnGenre, ColumnCote, ColumnStatus, ColumnEntryDate}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, book := range books {
		record := []string{
			book.EAN,
			book.Title,
			book.Authors,
			string(book.Genre),
			book.Cote,
			string(book.Status),
			book.EntryDate,
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("write csv row %s: %w", book.EAN, err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}
