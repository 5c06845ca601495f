package rowsource

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"catalog-ingest-service/internal/models"
)

func TestDetectFormat(t *testing.T) {
	format, err := DetectFormat("categories.csv")
	require.NoError(t, err)
	require.Equal(t, models.ImportFormatCSV, format)

	format, err = DetectFormat("Products.XLSX")
	require.NoError(t, err)
	require.Equal(t, models.ImportFormatXLSX, format)

	_, err = DetectFormat("catalog.pdf")
	require.Error(t, err)

	_, err = DetectFormat("legacy.xls")
	require.Error(t, err)
}

func TestReadCSV(t *testing.T) {
	input := "ID *,Name *,slug,Status\nc1, Shoes ,shoes,TRUE\nc2,Bags,bags,\n"

	rows, err := ReadCSV(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, rows, 2)

	// Headers normalize to lowercase without the template's required marker;
	// row numbers match what the user sees in a spreadsheet.
	require.Equal(t, 2, rows[0].Num)
	require.Equal(t, "c1", rows[0].Get("id"))
	require.Equal(t, "Shoes", rows[0].Get("name"))
	require.Equal(t, "TRUE", rows[0].Get("status"))

	require.Equal(t, 3, rows[1].Num)
	require.Equal(t, "c2", rows[1].Get("id"))
	require.Equal(t, "", rows[1].Get("status"))
	require.Equal(t, "", rows[1].Get("no_such_column"))
}

func TestReadCSVRaggedRows(t *testing.T) {
	input := "id,name,slug\nc1,Shoes\nc2,Bags,bags,extra\n"

	rows, err := ReadCSV(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, rows, 2)

	require.Equal(t, "", rows[0].Get("slug"))
	require.Equal(t, "bags", rows[1].Get("slug"))
}

func TestReadCSVHeaderOnly(t *testing.T) {
	rows, err := ReadCSV(strings.NewReader("id,name,slug\n"))
	require.NoError(t, err)
	require.Empty(t, rows)
}

func TestReadCSVEmptyFile(t *testing.T) {
	_, err := ReadCSV(strings.NewReader(""))
	require.Error(t, err)
}

func buildXLSX(t *testing.T, sheet string, cells [][]interface{}) *strings.Reader {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()
	f.SetSheetName("Sheet1", sheet)

	for r, rowCells := range cells {
		for c, value := range rowCells {
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			require.NoError(t, err)
			require.NoError(t, f.SetCellValue(sheet, cell, value))
		}
	}

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return strings.NewReader(buf.String())
}

func TestReadXLSX(t *testing.T) {
	file := buildXLSX(t, "Categories", [][]interface{}{
		{"id *", "name *", "slug", "status"},
		{"c1", "Shoes", "shoes", "TRUE"},
		{"c2", "Bags", "bags", "false"},
	})

	rows, err := ReadXLSX(file, models.KindCategory)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	require.Equal(t, 2, rows[0].Num)
	require.Equal(t, "c1", rows[0].Get("id"))
	require.Equal(t, "TRUE", rows[0].Get("status"))
	require.Equal(t, 3, rows[1].Num)
	require.Equal(t, "false", rows[1].Get("status"))
}

func TestReadXLSXFallsBackToFirstSheet(t *testing.T) {
	// Sheet name does not match the kind; the first sheet is used anyway.
	file := buildXLSX(t, "MyData", [][]interface{}{
		{"id", "name", "price", "category_id"},
		{"p1", "Runner", 79.9, "c1"},
	})

	rows, err := ReadXLSX(file, models.KindProduct)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, "p1", rows[0].Get("id"))
	require.Equal(t, "79.9", rows[0].Get("price"))
}

func TestReadXLSXRequiresDataRow(t *testing.T) {
	file := buildXLSX(t, "Categories", [][]interface{}{
		{"id", "name", "slug"},
	})

	_, err := ReadXLSX(file, models.KindCategory)
	require.Error(t, err)
}

func TestReadXLSXRejectsGarbage(t *testing.T) {
	_, err := ReadXLSX(strings.NewReader("not a zip archive"), models.KindCategory)
	require.Error(t, err)
}

func TestReadDispatchesOnFormat(t *testing.T) {
	rows, err := Read(strings.NewReader("id,name,slug\nc1,Shoes,shoes\n"), models.ImportFormatCSV, models.KindCategory)
	require.NoError(t, err)
	require.Len(t, rows, 1)
}
