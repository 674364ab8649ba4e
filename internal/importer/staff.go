package importer

import (
	"context"

	"school-import-service/internal/db"
	"school-import-service/internal/model"
	"school-import-service/internal/schema"
	apperrors "school-import-service/pkg/errors"
)

type teacherStrategy struct {
	repo  db.Repository
	creds CredentialGenerator
}

func (s *teacherStrategy) Category() string      { return schema.CategoryTeachers }
func (s *teacherStrategy) RequiresAccount() bool { return true }

func (s *teacherStrategy) Import(ctx context.Context, schoolID string, fields Fields) (*RecordResult, error) {
	if err := requireFields(fields, "name", "email", "employeeId", "gender", "designation"); err != nil {
		return nil, err
	}

	email := fields["email"]
	exists, err := s.repo.UserEmailExists(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperrors.DuplicateRecordError{Field: "email", Value: email}
	}

	role, err := s.repo.FindRoleByName(ctx, "TEACHING_STAFF")
	if err != nil {
		return nil, err
	}
	if role == nil {
		return nil, apperrors.ReferenceNotFoundError{Entity: "role", Key: "TEACHING_STAFF"}
	}

	year, err := s.repo.FindActiveAcademicYear(ctx, schoolID)
	if err != nil {
		return nil, err
	}
	if year == nil {
		return nil, apperrors.ReferenceNotFoundError{
			Entity: "academic year",
			Key:    "active",
			Hint:   "Please set up an academic year first.",
		}
	}

	password := s.creds.Password(schema.CategoryTeachers, fields)
	user, err := newPersonUser(schoolID, fields["name"], email, fields["gender"], role.ID, password)
	if err != nil {
		return nil, err
	}

	staff := &model.TeachingStaff{
		UserID:         user.ID,
		SchoolID:       schoolID,
		AcademicYearID: year.ID,
		Name:           fields["name"],
		Email:          email,
		EmployeeID:     fields["employeeId"],
		Designation:    fields["designation"],
		Gender:         fields["gender"],
		Phone:          fields["phone"],
		Address:        fields["address"],
		Qualification:  fields["qualification"],
		Subjects:       fields["subjects"],
		JoiningDate:    fields["joiningDate"],
		Salary:         fields["salary"],
	}

	if err := s.repo.CreateTeachingStaff(ctx, user, staff); err != nil {
		if db.IsDuplicateKey(err) {
			return nil, apperrors.DuplicateRecordError{Field: "employee id", Value: staff.EmployeeID}
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

type nonTeachingStaffStrategy struct {
	repo  db.Repository
	creds CredentialGenerator
}

func (s *nonTeachingStaffStrategy) Category() string      { return schema.CategoryNonTeachingStaff }
func (s *nonTeachingStaffStrategy) RequiresAccount() bool { return true }

func (s *nonTeachingStaffStrategy) Import(ctx context.Context, schoolID string, fields Fields) (*RecordResult, error) {
	if err := requireFields(fields, "name", "email", "employeeId", "gender", "designation", "department"); err != nil {
		return nil, err
	}

	email := fields["email"]
	exists, err := s.repo.UserEmailExists(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperrors.DuplicateRecordError{Field: "email", Value: email}
	}

	role, err := s.repo.FindRoleByName(ctx, "NON_TEACHING_STAFF")
	if err != nil {
		return nil, err
	}
	if role == nil {
		return nil, apperrors.ReferenceNotFoundError{Entity: "role", Key: "NON_TEACHING_STAFF"}
	}

	year, err := s.repo.FindActiveAcademicYear(ctx, schoolID)
	if err != nil {
		return nil, err
	}
	if year == nil {
		return nil, apperrors.ReferenceNotFoundError{
			Entity: "academic year",
			Key:    "active",
			Hint:   "Please set up an academic year first.",
		}
	}

	department, err := s.repo.FindOrCreateDepartment(ctx, fields["department"])
	if err != nil {
		return nil, err
	}

	password := s.creds.Password(schema.CategoryNonTeachingStaff, fields)
	user, err := newPersonUser(schoolID, fields["name"], email, fields["gender"], role.ID, password)
	if err != nil {
		return nil, err
	}

	staff := &model.NonTeachingStaff{
		UserID:         user.ID,
		SchoolID:       schoolID,
		AcademicYearID: year.ID,
		DepartmentID:   department.ID,
		Name:           fields["name"],
		Email:          email,
		EmployeeID:     fields["employeeId"],
		Designation:    fields["designation"],
		Gender:         fields["gender"],
		Phone:          fields["phone"],
		Address:        fields["address"],
		JoiningDate:    fields["joiningDate"],
		Salary:         fields["salary"],
	}

	if err := s.repo.CreateNonTeachingStaff(ctx, user, staff); err != nil {
		if db.IsDuplicateKey(err) {
			return nil, apperrors.DuplicateRecordError{Field: "employee id", Value: staff.EmployeeID}
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
