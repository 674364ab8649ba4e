package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"school-import-service/internal/model"
)

// Repository is the tenant-scoped data access surface of the import
// pipeline. Find* methods return (nil, nil) when no row matches so callers
// can turn absence into a descriptive reference error. Create* methods for
// person categories insert the user and its detail record in one
// transaction.
type Repository interface {
	FindSchool(ctx context.Context, id string) (*model.School, error)
	FindClassWithSections(ctx context.Context, schoolID, name string) (*model.Class, error)
	FindRoleByName(ctx context.Context, name string) (*model.Role, error)
	FindActiveAcademicYear(ctx context.Context, schoolID string) (*model.AcademicYear, error)
	FindOrCreateDepartment(ctx context.Context, name string) (*model.Department, error)
	FindOrCreateInventoryCategory(ctx context.Context, schoolID, name string) (*model.InventoryCategory, error)
	FindStudentByAdmissionNo(ctx context.Context, schoolID, admissionNo string) (*model.Student, error)
	StudentExists(ctx context.Context, schoolID, admissionNo, email string) (bool, error)
	UserEmailExists(ctx context.Context, email string) (bool, error)
	LibraryBookExists(ctx context.Context, schoolID, isbn string) (bool, error)

	CreateStudent(ctx context.Context, user *model.User, student *model.Student) error
	CreateTeachingStaff(ctx context.Context, user *model.User, staff *model.TeachingStaff) error
	CreateNonTeachingStaff(ctx context.Context, user *model.User, staff *model.NonTeachingStaff) error
	CreateParent(ctx context.Context, user *model.User, parent *model.Parent) error
	CreateInventoryItem(ctx context.Context, item *model.InventoryItem) error
	CreateLibraryBook(ctx context.Context, book *model.LibraryBook) error

	UserIdentityStatus(ctx context.Context, userID string) (model.IdentityStatus, error)
	LinkIdentity(ctx context.Context, userID, identityID string) error

	CreateImportJob(ctx context.Context, job *model.ImportJob) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) FindSchool(ctx context.Context, id string) (*model.School, error) {
	query := `SELECT id, name FROM schools WHERE id = ?`

	var school model.School
	err := r.db.QueryRowContext(ctx, query, id).Scan(&school.ID, &school.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &school, nil
}

func (r *repository) FindClassWithSections(ctx context.Context, schoolID, name string) (*model.Class, error) {
	query := `SELECT id, school_id, name FROM classes WHERE school_id = ? AND name = ?`

	var class model.Class
	err := r.db.QueryRowContext(ctx, query, schoolID, name).Scan(&class.ID, &class.SchoolID, &class.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, `SELECT id, class_id, name FROM sections WHERE class_id = ?`, class.ID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var section model.Section
		if err := rows.Scan(&section.ID, &section.ClassID, &section.Name); err != nil {
			return nil, err
		}
		class.Sections = append(class.Sections, section)
	}

	return &class, rows.Err()
}

func (r *repository) FindRoleByName(ctx context.Context, name string) (*model.Role, error) {
	query := `SELECT id, name FROM roles WHERE name = ?`

	var role model.Role
	err := r.db.QueryRowContext(ctx, query, name).Scan(&role.ID, &role.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &role, nil
}

func (r *repository) FindActiveAcademicYear(ctx context.Context, schoolID string) (*model.AcademicYear, error) {
	query := `SELECT id, school_id, label, is_active FROM academic_years WHERE school_id = ? AND is_active = 1`

	var year model.AcademicYear
	err := r.db.QueryRowContext(ctx, query, schoolID).Scan(&year.ID, &year.SchoolID, &year.Label, &year.IsActive)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &year, nil
}

// FindOrCreateDepartment converges under concurrent creation: the unique key
// on departments.name is the correctness backstop, and a duplicate-key error
// is downgraded to a refetch.
func (r *repository) FindOrCreateDepartment(ctx context.Context, name string) (*model.Department, error) {
	dept, err := r.findDepartment(ctx, name)
	if err != nil || dept != nil {
		return dept, err
	}

	result, err := r.db.ExecContext(ctx, `INSERT INTO departments (name) VALUES (?)`, name)
	if err != nil {
		if IsDuplicateKey(err) {
			if dept, err = r.findDepartment(ctx, name); err == nil && dept == nil {
				err = fmt.Errorf("failed to create/find department: %s", name)
			}
			return dept, err
		}
		return nil, err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, err
	}
	return &model.Department{ID: id, Name: name}, nil
}

func (r *repository) findDepartment(ctx context.Context, name string) (*model.Department, error) {
	var dept model.Department
	err := r.db.QueryRowContext(ctx, `SELECT id, name FROM departments WHERE name = ?`, name).
		Scan(&dept.ID, &dept.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &dept, nil
}

func (r *repository) FindOrCreateInventoryCategory(ctx context.Context, schoolID, name string) (*model.InventoryCategory, error) {
	cat, err := r.findInventoryCategory(ctx, schoolID, name)
	if err != nil || cat != nil {
		return cat, err
	}

	result, err := r.db.ExecContext(ctx,
		`INSERT INTO inventory_categories (school_id, name) VALUES (?, ?)`, schoolID, name)
	if err != nil {
		if IsDuplicateKey(err) {
			if cat, err = r.findInventoryCategory(ctx, schoolID, name); err == nil && cat == nil {
				err = fmt.Errorf("failed to create/find inventory category: %s", name)
			}
			return cat, err
		}
		return nil, err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, err
	}
	return &model.InventoryCategory{ID: id, SchoolID: schoolID, Name: name}, nil
}

func (r *repository) findInventoryCategory(ctx context.Context, schoolID, name string) (*model.InventoryCategory, error) {
	var cat model.InventoryCategory
	err := r.db.QueryRowContext(ctx,
		`SELECT id, school_id, name FROM inventory_categories WHERE school_id = ? AND name = ?`,
		schoolID, name).Scan(&cat.ID, &cat.SchoolID, &cat.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &cat, nil
}

func (r *repository) FindStudentByAdmissionNo(ctx context.Context, schoolID, admissionNo string) (*model.Student, error) {
	query := `SELECT id, user_id, school_id, name, email, admission_no FROM students
			  WHERE school_id = ? AND admission_no = ?`

	var student model.Student
	err := r.db.QueryRowContext(ctx, query, schoolID, admissionNo).Scan(
		&student.ID, &student.UserID, &student.SchoolID,
		&student.Name, &student.Email, &student.AdmissionNo,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &student, nil
}

func (r *repository) StudentExists(ctx context.Context, schoolID, admissionNo, email string) (bool, error) {
	query := `SELECT COUNT(*) FROM students WHERE school_id = ? AND (admission_no = ? OR email = ?)`

	var count int
	if err := r.db.QueryRowContext(ctx, query, schoolID, admissionNo, email).Scan(&count); err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *repository) UserEmailExists(ctx context.Context, email string) (bool, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users WHERE email = ?`, email).Scan(&count); err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *repository) LibraryBookExists(ctx context.Context, schoolID, isbn string) (bool, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM library_books WHERE school_id = ? AND isbn = ?`, schoolID, isbn).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *repository) insertUser(ctx context.Context, tx *sql.Tx, user *model.User) error {
	query := `INSERT INTO users (id, name, email, password_hash, role_id, gender, school_id, status, identity_id, identity_status)
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := tx.ExecContext(ctx, query,
		user.ID, user.Name, user.Email, user.PasswordHash, user.RoleID,
		user.Gender, user.SchoolID, user.Status, user.IdentityID, user.IdentityStatus)
	return err
}

func (r *repository) CreateStudent(ctx context.Context, user *model.User, student *model.Student) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := r.insertUser(ctx, tx, user); err != nil {
		return err
	}

	query := `INSERT INTO students (user_id, school_id, name, email, admission_no, class_id, section_id,
			  gender, dob, roll_number, contact_number, address, city, state,
			  father_name, mother_name, father_phone, mother_phone, blood_group, admission_date)
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	result, err := tx.ExecContext(ctx, query,
		student.UserID, student.SchoolID, student.Name, student.Email, student.AdmissionNo,
		student.ClassID, student.SectionID, student.Gender, student.DOB, student.RollNumber,
		student.ContactNumber, student.Address, student.City, student.State,
		student.FatherName, student.MotherName, student.FatherPhone, student.MotherPhone,
		student.BloodGroup, student.AdmissionDate)
	if err != nil {
		return err
	}

	if student.ID, err = result.LastInsertId(); err != nil {
		return err
	}

	return tx.Commit()
}

func (r *repository) CreateTeachingStaff(ctx context.Context, user *model.User, staff *model.TeachingStaff) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := r.insertUser(ctx, tx, user); err != nil {
		return err
	}

	query := `INSERT INTO teaching_staff (user_id, school_id, academic_year_id, name, email, employee_id,
			  designation, gender, phone, address, qualification, subjects, joining_date, salary)
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	result, err := tx.ExecContext(ctx, query,
		staff.UserID, staff.SchoolID, staff.AcademicYearID, staff.Name, staff.Email,
		staff.EmployeeID, staff.Designation, staff.Gender, staff.Phone, staff.Address,
		staff.Qualification, staff.Subjects, staff.JoiningDate, staff.Salary)
	if err != nil {
		return err
	}

	if staff.ID, err = result.LastInsertId(); err != nil {
		return err
	}

	return tx.Commit()
}

func (r *repository) CreateNonTeachingStaff(ctx context.Context, user *model.User, staff *model.NonTeachingStaff) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := r.insertUser(ctx, tx, user); err != nil {
		return err
	}

	query := `INSERT INTO non_teaching_staff (user_id, school_id, academic_year_id, department_id, name, email,
			  employee_id, designation, gender, phone, address, joining_date, salary)
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	result, err := tx.ExecContext(ctx, query,
		staff.UserID, staff.SchoolID, staff.AcademicYearID, staff.DepartmentID,
		staff.Name, staff.Email, staff.EmployeeID, staff.Designation, staff.Gender,
		staff.Phone, staff.Address, staff.JoiningDate, staff.Salary)
	if err != nil {
		return err
	}

	if staff.ID, err = result.LastInsertId(); err != nil {
		return err
	}

	return tx.Commit()
}

func (r *repository) CreateParent(ctx context.Context, user *model.User, parent *model.Parent) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := r.insertUser(ctx, tx, user); err != nil {
		return err
	}

	query := `INSERT INTO parents (user_id, school_id, student_id, name, email, phone, relation, address, occupation)
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

	result, err := tx.ExecContext(ctx, query,
		parent.UserID, parent.SchoolID, parent.StudentID, parent.Name, parent.Email,
		parent.Phone, parent.Relation, parent.Address, parent.Occupation)
	if err != nil {
		return err
	}

	if parent.ID, err = result.LastInsertId(); err != nil {
		return err
	}

	return tx.Commit()
}

func (r *repository) CreateInventoryItem(ctx context.Context, item *model.InventoryItem) error {
	query := `INSERT INTO inventory_items (school_id, category_id, name, category, quantity, unit,
			  cost_per_unit, minimum_quantity, location, vendor_name)
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	result, err := r.db.ExecContext(ctx, query,
		item.SchoolID, item.CategoryID, item.Name, item.Category, item.Quantity,
		item.Unit, item.CostPerUnit, item.MinimumQuantity, item.Location, item.VendorName)
	if err != nil {
		return err
	}

	item.ID, err = result.LastInsertId()
	return err
}

func (r *repository) CreateLibraryBook(ctx context.Context, book *model.LibraryBook) error {
	query := `INSERT INTO library_books (school_id, title, author, isbn, category, publisher, published_year, copies)
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	result, err := r.db.ExecContext(ctx, query,
		book.SchoolID, book.Title, book.Author, book.ISBN, book.Category,
		book.Publisher, book.PublishedYear, book.Copies)
	if err != nil {
		return err
	}

	book.ID, err = result.LastInsertId()
	return err
}

func (r *repository) UserIdentityStatus(ctx context.Context, userID string) (model.IdentityStatus, error) {
	var status model.IdentityStatus
	err := r.db.QueryRowContext(ctx,
		`SELECT identity_status FROM users WHERE id = ?`, userID).Scan(&status)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("user '%s' not found", userID)
	}
	return status, err
}

func (r *repository) LinkIdentity(ctx context.Context, userID, identityID string) error {
	query := `UPDATE users SET identity_id = ?, identity_status = ?, updated_at = NOW() WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query, identityID, model.IdentityStatusLinked, userID)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("user '%s' not found", userID)
	}
	return nil
}

func (r *repository) CreateImportJob(ctx context.Context, job *model.ImportJob) error {
	var errorsJSON any
	if len(job.Errors) > 0 {
		data, err := json.Marshal(job.Errors)
		if err != nil {
			return err
		}
		errorsJSON = string(data)
	}

	query := `INSERT INTO import_history (id, school_id, category, file_name, archive_path, imported_by,
			  total_rows, success, failed, accounts_created, accounts_failed, errors)
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query,
		job.ID, job.SchoolID, job.Category, job.FileName,
		nullableString(job.ArchivePath), nullableString(job.ImportedBy),
		job.TotalRows, job.Success, job.Failed,
		job.AccountsCreated, job.AccountsFailed, errorsJSON)
	return err
}

func nullableString(s string) any {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return s
}
