package importer

import (
	"context"
	"fmt"
	"strings"
	"time"

	"school-import-service/internal/db"
	"school-import-service/internal/model"
	"school-import-service/internal/schema"
	apperrors "school-import-service/pkg/errors"
)

type studentStrategy struct {
	repo  db.Repository
	creds CredentialGenerator
}

func (s *studentStrategy) Category() string      { return schema.CategoryStudents }
func (s *studentStrategy) RequiresAccount() bool { return true }

func (s *studentStrategy) Import(ctx context.Context, schoolID string, fields Fields) (*RecordResult, error) {
	if err := requireFields(fields, "name", "email", "admissionNo", "className", "sectionName", "gender", "dob"); err != nil {
		return nil, err
	}

	className := fields["className"]
	class, err := s.repo.FindClassWithSections(ctx, schoolID, className)
	if err != nil {
		return nil, err
	}
	if class == nil {
		return nil, apperrors.ReferenceNotFoundError{
			Entity: "class",
			Key:    className,
			Hint:   "Please create the class first.",
		}
	}

	sectionName := fields["sectionName"]
	var section *model.Section
	for i := range class.Sections {
		if strings.EqualFold(class.Sections[i].Name, sectionName) {
			section = &class.Sections[i]
			break
		}
	}
	if section == nil {
		return nil, apperrors.ReferenceNotFoundError{
			Entity: "section",
			Key:    sectionName,
			Hint:   fmt.Sprintf("Class '%s' has no such section.", className),
		}
	}

	admissionNo := fields["admissionNo"]
	email := fields["email"]
	exists, err := s.repo.StudentExists(ctx, schoolID, admissionNo, email)
	if err != nil {
		return nil, err
	}
	if exists {
		// Name the colliding field precisely
		if existing, err := s.repo.FindStudentByAdmissionNo(ctx, schoolID, admissionNo); err != nil {
			return nil, err
		} else if existing != nil {
			return nil, apperrors.DuplicateRecordError{Field: "admission number", Value: admissionNo}
		}
		return nil, apperrors.DuplicateRecordError{Field: "email", Value: email}
	}

	role, err := s.repo.FindRoleByName(ctx, "STUDENT")
	if err != nil {
		return nil, err
	}
	if role == nil {
		return nil, apperrors.ReferenceNotFoundError{Entity: "role", Key: "STUDENT"}
	}

	password := s.creds.Password(schema.CategoryStudents, fields)
	user, err := newPersonUser(schoolID, fields["name"], email, fields["gender"], role.ID, password)
	if err != nil {
		return nil, err
	}

	student := &model.Student{
		UserID:        user.ID,
		SchoolID:      schoolID,
		Name:          fields["name"],
		Email:         email,
		AdmissionNo:   admissionNo,
		ClassID:       class.ID,
		SectionID:     section.ID,
		Gender:        fields["gender"],
		DOB:           fields["dob"],
		RollNumber:    fields["rollNumber"],
		ContactNumber: fields["contactNumber"],
		Address:       fields["address"],
		City:          fields["city"],
		State:         fields["state"],
		FatherName:    fields["fatherName"],
		MotherName:    fields["motherName"],
		FatherPhone:   fields["fatherPhone"],
		MotherPhone:   fields["motherPhone"],
		BloodGroup:    fields["bloodGroup"],
		AdmissionDate: time.Now().Format("2006-01-02"),
	}

	if err := s.repo.CreateStudent(ctx, user, student); err != nil {
		if db.IsDuplicateKey(err) {
			return nil, apperrors.DuplicateRecordError{Field: "admission number", Value: admissionNo}
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
