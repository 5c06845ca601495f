// Package rowsource turns uploaded CSV/XLSX datasets into ordered row
// records. Each record maps a normalized column name to the raw trimmed cell
// value; typing happens later, at the validation boundary.
package rowsource

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"catalog-ingest-service/internal/models"
)

// HeaderRow is the spreadsheet row occupied by column headers. Data rows
// start at HeaderRow+1, and reported row numbers match what a user sees in
// their spreadsheet application.
const HeaderRow = 1

// Row is a single data row: raw cell values keyed by normalized column name,
// plus the 1-based spreadsheet row number.
type Row struct {
	Num    int
	Fields map[string]string
}

// Get returns the trimmed raw value for a column, or "" when the column is
// absent or empty.
func (r Row) Get(column string) string {
	return r.Fields[column]
}

// DetectFormat maps a filename to an import format.
func DetectFormat(filename string) (models.ImportFormat, error) {
	lower := strings.ToLower(filename)
	switch {
	case strings.HasSuffix(lower, ".csv"):
		return models.ImportFormatCSV, nil
	case strings.HasSuffix(lower, ".xlsx"):
		return models.ImportFormatXLSX, nil
	}
	return "", fmt.Errorf("unsupported file format %q: only CSV and XLSX are supported", filename)
}

// Read decodes a dataset in the given format.
func Read(file io.Reader, format models.ImportFormat, kind models.Kind) ([]Row, error) {
	if format == models.ImportFormatCSV {
		return ReadCSV(file)
	}
	return ReadXLSX(file, kind)
}

// ReadCSV parses a CSV dataset. The first line is the header; its values are
// lowercased, trimmed, and stripped of the template's " *" required marker.
func ReadCSV(file io.Reader) ([]Row, error) {
	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	headers, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}
	normalizeHeaders(headers)

	var rows []Row
	num := HeaderRow

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error reading line %d: %w", num+1, err)
		}
		num++
		rows = append(rows, makeRow(headers, record, num))
	}

	return rows, nil
}

// ReadXLSX parses an Excel dataset. The kind's named sheet is preferred when
// present, otherwise the first sheet is used.
func ReadXLSX(file io.Reader, kind models.Kind) ([]Row, error) {
	f, err := excelize.OpenReader(file)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("no sheets found in Excel file")
	}

	sheetName := sheets[0]
	for _, name := range sheets {
		if strings.EqualFold(name, kind.SheetName()) {
			sheetName = name
			break
		}
	}

	excelRows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet: %w", err)
	}

	if len(excelRows) < 2 {
		return nil, fmt.Errorf("file must have a header row and at least one data row")
	}

	headers := excelRows[0]
	normalizeHeaders(headers)

	var rows []Row
	for rowIdx, excelRow := range excelRows[1:] {
		rows = append(rows, makeRow(headers, excelRow, rowIdx+HeaderRow+1))
	}

	return rows, nil
}

func normalizeHeaders(headers []string) {
	for i := range headers {
		headers[i] = strings.TrimSpace(strings.ToLower(headers[i]))
		headers[i] = strings.TrimSuffix(headers[i], " *")
	}
}

func makeRow(headers, record []string, num int) Row {
	fields := make(map[string]string, len(headers))
	for i, value := range record {
		if i < len(headers) {
			fields[headers[i]] = strings.TrimSpace(value)
		}
	}
	return Row{Num: num, Fields: fields}
}
