package excel

import (
	"context"
	"testing"

	apperrors "school-import-service/pkg/errors"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func buildWorkbook(t *testing.T, sheet string, rows [][]interface{}) []byte {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	if sheet != "Sheet1" {
		_, err := f.NewSheet(sheet)
		require.NoError(t, err)
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

func TestParseReadsHeadersAndRows(t *testing.T) {
	data := buildWorkbook(t, "Sheet1", [][]interface{}{
		{"S.No", "Full Name *", " Email * "},
		{1, "John Doe", "john@example.com"},
		{2, "Jane Doe", "jane@example.com"},
	})

	sheet, err := NewParser().Parse(context.Background(), data)
	require.NoError(t, err)
	require.Equal(t, []string{"S.No", "Full Name *", "Email *"}, sheet.Headers)
	require.Len(t, sheet.Rows, 2)

	require.Equal(t, 2, sheet.Rows[0].Number)
	require.Equal(t, "John Doe", sheet.Rows[0].Cells["Full Name *"])
	require.Equal(t, "jane@example.com", sheet.Rows[1].Cells["Email *"])
}

func TestParsePrefersDataSheet(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()

	decoy := []interface{}{"Wrong", "Headers"}
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &decoy))

	_, err := f.NewSheet(DataSheetName)
	require.NoError(t, err)
	header := []interface{}{"Full Name *", "Email *"}
	row := []interface{}{"John Doe", "john@example.com"}
	require.NoError(t, f.SetSheetRow(DataSheetName, "A1", &header))
	require.NoError(t, f.SetSheetRow(DataSheetName, "A2", &row))

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	sheet, err := NewParser().Parse(context.Background(), buf.Bytes())
	require.NoError(t, err)
	require.Equal(t, []string{"Full Name *", "Email *"}, sheet.Headers)
	require.Len(t, sheet.Rows, 1)
}

func TestParseHeaderOnlyFileIsEmpty(t *testing.T) {
	data := buildWorkbook(t, "Sheet1", [][]interface{}{
		{"Full Name *", "Email *"},
	})

	_, err := NewParser().Parse(context.Background(), data)
	require.ErrorIs(t, err, apperrors.ErrEmptyFile)
}

func TestParseRejectsGarbage(t *testing.T) {
	_, err := NewParser().Parse(context.Background(), []byte("not a workbook"))
	require.Error(t, err)
}

func TestParseShortRowsFillEmptyCells(t *testing.T) {
	data := buildWorkbook(t, "Sheet1", [][]interface{}{
		{"Full Name *", "Email *", "Address"},
		{"John Doe", "john@example.com"},
	})

	sheet, err := NewParser().Parse(context.Background(), data)
	require.NoError(t, err)
	require.Equal(t, "", sheet.Rows[0].Cells["Address"])
}
