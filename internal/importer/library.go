package importer

import (
	"context"

	"school-import-service/internal/db"
	"school-import-service/internal/model"
	"school-import-service/internal/schema"
	apperrors "school-import-service/pkg/errors"
)

type libraryStrategy struct {
	repo db.Repository
}

func (s *libraryStrategy) Category() string      { return schema.CategoryLibrary }
func (s *libraryStrategy) RequiresAccount() bool { return false }

func (s *libraryStrategy) Import(ctx context.Context, schoolID string, fields Fields) (*RecordResult, error) {
	if err := requireFields(fields, "title", "author", "isbn", "category"); err != nil {
		return nil, err
	}

	isbn := fields["isbn"]
	exists, err := s.repo.LibraryBookExists(ctx, schoolID, isbn)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperrors.DuplicateRecordError{Field: "ISBN", Value: isbn}
	}

	copies := 1
	if fields["copies"] != "" {
		if copies, err = parseIntField(fields, "copies"); err != nil {
			return nil, err
		}
	}

	book := &model.LibraryBook{
		SchoolID:      schoolID,
		Title:         fields["title"],
		Author:        fields["author"],
		ISBN:          isbn,
		Category:      fields["category"],
		Publisher:     fields["publisher"],
		PublishedYear: fields["publishedYear"],
		Copies:        copies,
	}

	if err := s.repo.CreateLibraryBook(ctx, book); err != nil {
		if db.IsDuplicateKey(err) {
			return nil, apperrors.DuplicateRecordError{Field: "ISBN", Value: isbn}
		}
		return nil, err
	}

	return &RecordResult{Name: book.Title}, nil
}
