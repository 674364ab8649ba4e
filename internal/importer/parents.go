package importer

import (
	"context"

	"school-import-service/internal/db"
	"school-import-service/internal/model"
	"school-import-service/internal/schema"
	apperrors "school-import-service/pkg/errors"
)

type parentStrategy struct {
	repo  db.Repository
	creds CredentialGenerator
}

func (s *parentStrategy) Category() string      { return schema.CategoryParents }
func (s *parentStrategy) RequiresAccount() bool { return true }

func (s *parentStrategy) Import(ctx context.Context, schoolID string, fields Fields) (*RecordResult, error) {
	if err := requireFields(fields, "name", "email", "phone", "relation", "studentAdmissionNo"); err != nil {
		return nil, err
	}

	admissionNo := fields["studentAdmissionNo"]
	student, err := s.repo.FindStudentByAdmissionNo(ctx, schoolID, admissionNo)
	if err != nil {
		return nil, err
	}
	if student == nil {
		return nil, apperrors.ReferenceNotFoundError{
			Entity: "student with admission number",
			Key:    admissionNo,
		}
	}

	email := fields["email"]
	exists, err := s.repo.UserEmailExists(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperrors.DuplicateRecordError{Field: "email", Value: email}
	}

	role, err := s.repo.FindRoleByName(ctx, "PARENT")
	if err != nil {
		return nil, err
	}
	if role == nil {
		return nil, apperrors.ReferenceNotFoundError{Entity: "role", Key: "PARENT"}
	}

	password := s.creds.Password(schema.CategoryParents, fields)
	user, err := newPersonUser(schoolID, fields["name"], email, fields["gender"], role.ID, password)
	if err != nil {
		return nil, err
	}

	parent := &model.Parent{
		UserID:     user.ID,
		SchoolID:   schoolID,
		StudentID:  student.ID,
		Name:       fields["name"],
		Email:      email,
		Phone:      fields["phone"],
		Relation:   fields["relation"],
		Address:    fields["address"],
		Occupation: fields["occupation"],
	}

	if err := s.repo.CreateParent(ctx, user, parent); err != nil {
		if db.IsDuplicateKey(err) {
			return nil, apperrors.DuplicateRecordError{Field: "email", Value: email}
		}
		return nil, err
	}

	return &RecordResult{
		RecordID: user.ID,
		Name:     user.Name,
		Email:    email,
		Password: password,
	}, nil
}
