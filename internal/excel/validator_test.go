package excel

import (
	"errors"
	"testing"

	"school-import-service/internal/schema"
	apperrors "school-import-service/pkg/errors"

	"github.com/stretchr/testify/require"
)

func studentSchema(t *testing.T) *schema.CategorySchema {
	t.Helper()
	cs, err := schema.NewRegistry().Lookup(schema.CategoryStudents)
	require.NoError(t, err)
	return cs
}

func TestValidateHeadersAccepts(t *testing.T) {
	cs := studentSchema(t)

	uploaded := append([]string{schema.RowIndexColumn}, cs.Headers()...)
	require.NoError(t, ValidateHeaders(cs, uploaded))
}

func TestValidateHeadersOptionalColumnsMayBeOmitted(t *testing.T) {
	cs := studentSchema(t)

	require.NoError(t, ValidateHeaders(cs, cs.RequiredHeaders()))
}

func TestValidateHeadersMissingRequired(t *testing.T) {
	cs := studentSchema(t)

	uploaded := []string{"Full Name *", "Email *", "Admission Number *"}
	err := ValidateHeaders(cs, uploaded)

	var sm apperrors.SchemaMismatchError
	require.True(t, errors.As(err, &sm))
	require.Contains(t, sm.MissingColumns, "Class Name *")
	require.Contains(t, sm.MissingColumns, "Section *")
	require.NotContains(t, sm.MissingColumns, "Full Name *")
	require.Equal(t, cs.Headers(), sm.ExpectedColumns)
	require.Equal(t, uploaded, sm.UploadedColumns)
}

func TestValidateHeadersIsCaseSensitive(t *testing.T) {
	cs := studentSchema(t)

	uploaded := cs.Headers()
	uploaded[0] = "full name *"
	err := ValidateHeaders(cs, uploaded)

	var sm apperrors.SchemaMismatchError
	require.True(t, errors.As(err, &sm))
	require.Contains(t, sm.MissingColumns, "Full Name *")
}

func TestValidateHeadersZeroOverlapIsWrongTemplate(t *testing.T) {
	cs := studentSchema(t)

	uploaded := []string{schema.RowIndexColumn, "Item Name *", "Quantity *", "Unit *"}
	err := ValidateHeaders(cs, uploaded)

	var wt apperrors.WrongTemplateError
	require.True(t, errors.As(err, &wt))
	require.Equal(t, schema.CategoryStudents, wt.Category)
	require.Len(t, wt.ExpectedSample, 5)
	// Samples drop the required marker for readability
	require.Equal(t, "Full Name", wt.ExpectedSample[0])
	require.Equal(t, []string{"Item Name *", "Quantity *", "Unit *"}, wt.UploadedSample)
}

func TestValidateHeadersIgnoresRowIndexAndBlanks(t *testing.T) {
	cs := studentSchema(t)

	uploaded := append([]string{schema.RowIndexColumn, "", "  "}, cs.RequiredHeaders()...)
	require.NoError(t, ValidateHeaders(cs, uploaded))
}
