package importer

import (
	"context"
	"fmt"
	"strconv"

	"school-import-service/internal/db"
	"school-import-service/internal/model"
	"school-import-service/internal/schema"
	apperrors "school-import-service/pkg/errors"
)

const defaultMinimumQuantity = 10

type inventoryStrategy struct {
	repo db.Repository
}

func (s *inventoryStrategy) Category() string      { return schema.CategoryInventory }
func (s *inventoryStrategy) RequiresAccount() bool { return false }

func (s *inventoryStrategy) Import(ctx context.Context, schoolID string, fields Fields) (*RecordResult, error) {
	if err := requireFields(fields, "name", "category", "quantity", "unit", "costPerUnit"); err != nil {
		return nil, err
	}

	quantity, err := parseIntField(fields, "quantity")
	if err != nil {
		return nil, err
	}

	costPerUnit, err := strconv.ParseFloat(fields["costPerUnit"], 64)
	if err != nil {
		return nil, apperrors.RowValidationError{
			Message: fmt.Sprintf("invalid costPerUnit value: %s", fields["costPerUnit"]),
		}
	}

	minimumQuantity := defaultMinimumQuantity
	if fields["minimumQuantity"] != "" {
		if minimumQuantity, err = parseIntField(fields, "minimumQuantity"); err != nil {
			return nil, err
		}
	}

	category, err := s.repo.FindOrCreateInventoryCategory(ctx, schoolID, fields["category"])
	if err != nil {
		return nil, err
	}

	item := &model.InventoryItem{
		SchoolID:        schoolID,
		CategoryID:      category.ID,
		Name:            fields["name"],
		Category:        fields["category"],
		Quantity:        quantity,
		Unit:            fields["unit"],
		CostPerUnit:     costPerUnit,
		MinimumQuantity: minimumQuantity,
		Location:        orDefault(fields["location"], "Default"),
		VendorName:      orDefault(fields["vendorName"], "Unknown"),
	}

	if err := s.repo.CreateInventoryItem(ctx, item); err != nil {
		return nil, err
	}

	return &RecordResult{Name: item.Name}, nil
}

func parseIntField(fields Fields, name string) (int, error) {
	value, err := strconv.Atoi(fields[name])
	if err != nil {
		return 0, apperrors.RowValidationError{
			Message: fmt.Sprintf("invalid %s value: %s", name, fields[name]),
		}
	}
	return value, nil
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
