package excel

import (
	"regexp"
	"strconv"
	"strings"

	"school-import-service/internal/schema"
)

// numericCell matches values Excel renders for numeric cells, including a
// zero fraction ("10", "10.0", "-3.00").
var numericCell = regexp.MustCompile(`^-?\d+(\.0+)?$`)

// Normalize trims filler rows and coerces cell values. A row whose only
// non-empty cell is the row-index column is a blank trailing row and is
// dropped. Values mapped onto textual fields lose a numeric zero fraction
// ("10.0" becomes "10"); values for numeric fields are left untouched for
// the importer to parse explicitly. Normalization never fails: unparseable
// rows are forwarded and fail later as row errors.
func Normalize(cs *schema.CategorySchema, rows []Row) []Row {
	var out []Row
	for _, row := range rows {
		if isFillerRow(row) {
			continue
		}

		cells := make(map[string]string, len(row.Cells))
		for header, value := range row.Cells {
			value = strings.TrimSpace(value)
			if col, ok := cs.ColumnFor(header); ok && !col.Numeric {
				value = coerceNumericText(value)
			}
			cells[header] = value
		}

		number := row.Number
		if sn, ok := cells[schema.RowIndexColumn]; ok {
			if n, err := strconv.Atoi(sn); err == nil && n > 0 {
				number = n
			}
		}

		out = append(out, Row{Number: number, Cells: cells})
	}
	return out
}

func isFillerRow(row Row) bool {
	for header, value := range row.Cells {
		if header == schema.RowIndexColumn {
			continue
		}
		if strings.TrimSpace(value) != "" {
			return false
		}
	}
	return true
}

func coerceNumericText(value string) string {
	if !numericCell.MatchString(value) {
		return value
	}
	if i := strings.IndexByte(value, '.'); i >= 0 {
		return value[:i]
	}
	return value
}
