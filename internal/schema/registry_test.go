package schema

import (
	"errors"
	"testing"

	apperrors "school-import-service/pkg/errors"

	"github.com/stretchr/testify/require"
)

func TestRegistryLookup(t *testing.T) {
	r := NewRegistry()

	cs, err := r.Lookup(CategoryStudents)
	require.NoError(t, err)
	require.Equal(t, "Students", cs.DisplayName)
	require.True(t, cs.RequiresAccount)

	cs, err = r.Lookup(CategoryInventory)
	require.NoError(t, err)
	require.False(t, cs.RequiresAccount)
}

func TestRegistryLookupUnknownCategory(t *testing.T) {
	r := NewRegistry()

	_, err := r.Lookup("vehicles")
	require.Error(t, err)

	var uc apperrors.UnsupportedCategoryError
	require.True(t, errors.As(err, &uc))
	require.Equal(t, "vehicles", uc.Category)
}

func TestRegistryCategoriesOrder(t *testing.T) {
	r := NewRegistry()

	var got []string
	for _, cs := range r.Categories() {
		got = append(got, cs.Category)
	}
	require.Equal(t, []string{
		CategoryStudents, CategoryTeachers, CategoryNonTeachingStaff,
		CategoryParents, CategoryInventory, CategoryLibrary,
	}, got)
}

func TestColumnForIsCaseSensitive(t *testing.T) {
	r := NewRegistry()
	cs, err := r.Lookup(CategoryStudents)
	require.NoError(t, err)

	col, ok := cs.ColumnFor("Full Name *")
	require.True(t, ok)
	require.Equal(t, "name", col.Field)
	require.True(t, col.Required)

	col, ok = cs.ColumnFor("  Email *  ")
	require.True(t, ok)
	require.Equal(t, "email", col.Field)

	_, ok = cs.ColumnFor("full name *")
	require.False(t, ok)
}

func TestRequiredHeaders(t *testing.T) {
	r := NewRegistry()
	cs, err := r.Lookup(CategoryParents)
	require.NoError(t, err)

	require.Equal(t, []string{
		"Full Name *", "Email *", "Phone Number *",
		"Relation (Father/Mother/Guardian) *", "Student Admission No *",
	}, cs.RequiredHeaders())
}

func TestNumericColumnsFlagged(t *testing.T) {
	r := NewRegistry()

	cs, err := r.Lookup(CategoryInventory)
	require.NoError(t, err)
	for _, header := range []string{"Quantity *", "Cost Per Unit *", "Minimum Quantity"} {
		col, ok := cs.ColumnFor(header)
		require.True(t, ok, header)
		require.True(t, col.Numeric, header)
	}

	cs, err = r.Lookup(CategoryLibrary)
	require.NoError(t, err)
	col, ok := cs.ColumnFor("Number of Copies")
	require.True(t, ok)
	require.True(t, col.Numeric)
}
