package excel

import (
	"testing"

	"school-import-service/internal/schema"

	"github.com/stretchr/testify/require"
)

func inventorySchema(t *testing.T) *schema.CategorySchema {
	t.Helper()
	cs, err := schema.NewRegistry().Lookup(schema.CategoryInventory)
	require.NoError(t, err)
	return cs
}

func TestNormalizeDropsFillerRows(t *testing.T) {
	cs := studentSchema(t)

	rows := []Row{
		{Number: 2, Cells: map[string]string{schema.RowIndexColumn: "1", "Full Name *": "John Doe"}},
		{Number: 3, Cells: map[string]string{schema.RowIndexColumn: "2", "Full Name *": "  "}},
		{Number: 4, Cells: map[string]string{schema.RowIndexColumn: "3"}},
	}

	out := Normalize(cs, rows)
	require.Len(t, out, 1)
	require.Equal(t, "John Doe", out[0].Cells["Full Name *"])
}

func TestNormalizeTrimsCells(t *testing.T) {
	cs := studentSchema(t)

	rows := []Row{
		{Number: 2, Cells: map[string]string{"Full Name *": "  John Doe  ", "Email *": " john@example.com"}},
	}

	out := Normalize(cs, rows)
	require.Equal(t, "John Doe", out[0].Cells["Full Name *"])
	require.Equal(t, "john@example.com", out[0].Cells["Email *"])
}

func TestNormalizeCoercesNumericTextOnTextualColumns(t *testing.T) {
	cs := studentSchema(t)

	rows := []Row{
		{Number: 2, Cells: map[string]string{
			"Full Name *":    "John Doe",
			"Roll Number":    "10.0",
			"Contact Number": "9876543210",
		}},
	}

	out := Normalize(cs, rows)
	require.Equal(t, "10", out[0].Cells["Roll Number"])
	require.Equal(t, "9876543210", out[0].Cells["Contact Number"])
}

func TestNormalizeLeavesNumericColumnsUntouched(t *testing.T) {
	cs := inventorySchema(t)

	rows := []Row{
		{Number: 2, Cells: map[string]string{
			"Item Name *": "Marker",
			"Quantity *":  "100.0",
		}},
	}

	out := Normalize(cs, rows)
	require.Equal(t, "100.0", out[0].Cells["Quantity *"])
}

func TestNormalizeDoesNotMangleNonNumericValues(t *testing.T) {
	cs := studentSchema(t)

	rows := []Row{
		{Number: 2, Cells: map[string]string{
			"Full Name *": "John Doe",
			"Roll Number": "10.5",
			"Address":     "Flat 1.0A",
		}},
	}

	out := Normalize(cs, rows)
	require.Equal(t, "10.5", out[0].Cells["Roll Number"])
	require.Equal(t, "Flat 1.0A", out[0].Cells["Address"])
}

func TestNormalizePrefersRowIndexCellForNumbering(t *testing.T) {
	cs := studentSchema(t)

	rows := []Row{
		{Number: 5, Cells: map[string]string{schema.RowIndexColumn: "12", "Full Name *": "John Doe"}},
		{Number: 6, Cells: map[string]string{schema.RowIndexColumn: "oops", "Full Name *": "Jane Doe"}},
	}

	out := Normalize(cs, rows)
	require.Equal(t, 12, out[0].Number)
	require.Equal(t, 6, out[1].Number)
}
