package excel

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	apperrors "school-import-service/pkg/errors"

	"github.com/xuri/excelize/v2"
)

// DataSheetName is the sheet imports are read from when present; otherwise
// the first sheet in the workbook is used.
const DataSheetName = "Data"

// Row is one spreadsheet record: header → cell value, with missing cells
// defaulting to empty string. Number is the spreadsheet row number the value
// came from, used for error reporting.
type Row struct {
	Number int
	Cells  map[string]string
}

// Sheet is the parsed workbook: the header row in original column order plus
// every data row beneath it.
type Sheet struct {
	Headers []string
	Rows    []Row
}

type Parser struct{}

func NewParser() *Parser {
	return &Parser{}
}

func (p *Parser) Parse(ctx context.Context, data []byte) (*Sheet, error) {
	file, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer file.Close()

	sheets := file.GetSheetList()
	if len(sheets) == 0 {
		return nil, apperrors.ErrInvalidFileFormat
	}

	sheetName := sheets[0]
	for _, name := range sheets {
		if name == DataSheetName {
			sheetName = name
			break
		}
	}

	rows, err := file.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to get rows: %w", err)
	}

	if len(rows) < 2 { // Header + at least one data row
		return nil, apperrors.ErrEmptyFile
	}

	headers := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		headers[i] = strings.TrimSpace(h)
	}

	sheet := &Sheet{Headers: headers}
	for i, raw := range rows[1:] {
		cells := make(map[string]string, len(headers))
		for j, header := range headers {
			if header == "" {
				continue
			}
			value := ""
			if j < len(raw) {
				value = raw[j]
			}
			cells[header] = value
		}
		sheet.Rows = append(sheet.Rows, Row{
			Number: i + 2, // 1-based, after the header row
			Cells:  cells,
		})
	}

	return sheet, nil
}
