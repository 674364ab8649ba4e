package importer

import (
	"context"
	"fmt"
	"strings"

	"school-import-service/internal/db"
	"school-import-service/internal/excel"
	"school-import-service/internal/schema"
	apperrors "school-import-service/pkg/errors"
)

// Fields is one normalized row keyed by internal field name. Cells whose
// value is empty are absent, matching template cells the uploader left blank.
type Fields map[string]string

// RecordResult is the persisted outcome of one row. RecordID and the
// credential fields are set only for person categories, where they feed the
// provisioning step and, on failure, the retry path.
type RecordResult struct {
	RecordID string
	Name     string
	Email    string
	Password string
}

// Strategy imports one category. Import validates the row's fields, resolves
// references, and persists the domain record inside a single transaction.
// Row-scoped failures come back as validation, reference-not-found, or
// duplicate-record errors; anything else is treated as an internal fault.
type Strategy interface {
	Category() string
	RequiresAccount() bool
	Import(ctx context.Context, schoolID string, fields Fields) (*RecordResult, error)
}

// NewStrategies builds the category dispatch table.
func NewStrategies(repo db.Repository, creds CredentialGenerator) map[string]Strategy {
	strategies := []Strategy{
		&studentStrategy{repo: repo, creds: creds},
		&teacherStrategy{repo: repo, creds: creds},
		&nonTeachingStaffStrategy{repo: repo, creds: creds},
		&parentStrategy{repo: repo, creds: creds},
		&inventoryStrategy{repo: repo},
		&libraryStrategy{repo: repo},
	}

	table := make(map[string]Strategy, len(strategies))
	for _, s := range strategies {
		table[s.Category()] = s
	}
	return table
}

// FieldsFromRow maps a normalized spreadsheet row onto internal field names
// using the category schema. Headers the schema does not know are ignored.
func FieldsFromRow(cs *schema.CategorySchema, row excel.Row) Fields {
	fields := make(Fields)
	for header, value := range row.Cells {
		if value == "" {
			continue
		}
		if col, ok := cs.ColumnFor(header); ok {
			fields[col.Field] = value
		}
	}
	return fields
}

func requireFields(fields Fields, names ...string) error {
	var missing []string
	for _, name := range names {
		if strings.TrimSpace(fields[name]) == "" {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return apperrors.RowValidationError{
			Message: fmt.Sprintf("Missing required fields: %s", strings.Join(missing, ", ")),
		}
	}
	return nil
}
