package model

import "time"

// IdentityStatus tracks the link between a user record and its account in
// the external identity service. A person record starts PENDING and becomes
// LINKED once provisioning succeeds; it is never linked to two accounts.
type IdentityStatus string

const (
	IdentityStatusPending IdentityStatus = "PENDING"
	IdentityStatusLinked  IdentityStatus = "LINKED"
)

type School struct {
	ID   string `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
}

type User struct {
	ID             string         `json:"id" db:"id"`
	Name           string         `json:"name" db:"name"`
	Email          string         `json:"email" db:"email"`
	PasswordHash   string         `json:"-" db:"password_hash"`
	RoleID         int64          `json:"role_id" db:"role_id"`
	Gender         string         `json:"gender" db:"gender"`
	SchoolID       string         `json:"school_id" db:"school_id"`
	Status         string         `json:"status" db:"status"`
	IdentityID     string         `json:"identity_id" db:"identity_id"`
	IdentityStatus IdentityStatus `json:"identity_status" db:"identity_status"`
	CreatedAt      time.Time      `json:"created_at" db:"created_at"`
}

type Role struct {
	ID   int64  `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
}

type Class struct {
	ID       int64     `json:"id" db:"id"`
	SchoolID string    `json:"school_id" db:"school_id"`
	Name     string    `json:"name" db:"name"`
	Sections []Section `json:"sections"`
}

type Section struct {
	ID      int64  `json:"id" db:"id"`
	ClassID int64  `json:"class_id" db:"class_id"`
	Name    string `json:"name" db:"name"`
}

type AcademicYear struct {
	ID       int64  `json:"id" db:"id"`
	SchoolID string `json:"school_id" db:"school_id"`
	Label    string `json:"label" db:"label"`
	IsActive bool   `json:"is_active" db:"is_active"`
}

type Department struct {
	ID   int64  `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
}

type InventoryCategory struct {
	ID       int64  `json:"id" db:"id"`
	SchoolID string `json:"school_id" db:"school_id"`
	Name     string `json:"name" db:"name"`
}

type Student struct {
	ID            int64  `json:"id" db:"id"`
	UserID        string `json:"user_id" db:"user_id"`
	SchoolID      string `json:"school_id" db:"school_id"`
	Name          string `json:"name" db:"name"`
	Email         string `json:"email" db:"email"`
	AdmissionNo   string `json:"admission_no" db:"admission_no"`
	ClassID       int64  `json:"class_id" db:"class_id"`
	SectionID     int64  `json:"section_id" db:"section_id"`
	Gender        string `json:"gender" db:"gender"`
	DOB           string `json:"dob" db:"dob"`
	RollNumber    string `json:"roll_number" db:"roll_number"`
	ContactNumber string `json:"contact_number" db:"contact_number"`
	Address       string `json:"address" db:"address"`
	City          string `json:"city" db:"city"`
	State         string `json:"state" db:"state"`
	FatherName    string `json:"father_name" db:"father_name"`
	MotherName    string `json:"mother_name" db:"mother_name"`
	FatherPhone   string `json:"father_phone" db:"father_phone"`
	MotherPhone   string `json:"mother_phone" db:"mother_phone"`
	BloodGroup    string `json:"blood_group" db:"blood_group"`
	AdmissionDate string `json:"admission_date" db:"admission_date"`
}

type TeachingStaff struct {
	ID             int64  `json:"id" db:"id"`
	UserID         string `json:"user_id" db:"user_id"`
	SchoolID       string `json:"school_id" db:"school_id"`
	AcademicYearID int64  `json:"academic_year_id" db:"academic_year_id"`
	Name           string `json:"name" db:"name"`
	Email          string `json:"email" db:"email"`
	EmployeeID     string `json:"employee_id" db:"employee_id"`
	Designation    string `json:"designation" db:"designation"`
	Gender         string `json:"gender" db:"gender"`
	Phone          string `json:"phone" db:"phone"`
	Address        string `json:"address" db:"address"`
	Qualification  string `json:"qualification" db:"qualification"`
	Subjects       string `json:"subjects" db:"subjects"`
	JoiningDate    string `json:"joining_date" db:"joining_date"`
	Salary         string `json:"salary" db:"salary"`
}

type NonTeachingStaff struct {
	ID             int64  `json:"id" db:"id"`
	UserID         string `json:"user_id" db:"user_id"`
	SchoolID       string `json:"school_id" db:"school_id"`
	AcademicYearID int64  `json:"academic_year_id" db:"academic_year_id"`
	DepartmentID   int64  `json:"department_id" db:"department_id"`
	Name           string `json:"name" db:"name"`
	Email          string `json:"email" db:"email"`
	EmployeeID     string `json:"employee_id" db:"employee_id"`
	Designation    string `json:"designation" db:"designation"`
	Gender         string `json:"gender" db:"gender"`
	Phone          string `json:"phone" db:"phone"`
	Address        string `json:"address" db:"address"`
	JoiningDate    string `json:"joining_date" db:"joining_date"`
	Salary         string `json:"salary" db:"salary"`
}

type Parent struct {
	ID         int64  `json:"id" db:"id"`
	UserID     string `json:"user_id" db:"user_id"`
	SchoolID   string `json:"school_id" db:"school_id"`
	StudentID  int64  `json:"student_id" db:"student_id"`
	Name       string `json:"name" db:"name"`
	Email      string `json:"email" db:"email"`
	Phone      string `json:"phone" db:"phone"`
	Relation   string `json:"relation" db:"relation"`
	Address    string `json:"address" db:"address"`
	Occupation string `json:"occupation" db:"occupation"`
}

type InventoryItem struct {
	ID              int64   `json:"id" db:"id"`
	SchoolID        string  `json:"school_id" db:"school_id"`
	CategoryID      int64   `json:"category_id" db:"category_id"`
	Name            string  `json:"name" db:"name"`
	Category        string  `json:"category" db:"category"`
	Quantity        int     `json:"quantity" db:"quantity"`
	Unit            string  `json:"unit" db:"unit"`
	CostPerUnit     float64 `json:"cost_per_unit" db:"cost_per_unit"`
	MinimumQuantity int     `json:"minimum_quantity" db:"minimum_quantity"`
	Location        string  `json:"location" db:"location"`
	VendorName      string  `json:"vendor_name" db:"vendor_name"`
}

type LibraryBook struct {
	ID            int64  `json:"id" db:"id"`
	SchoolID      string `json:"school_id" db:"school_id"`
	Title         string `json:"title" db:"title"`
	Author        string `json:"author" db:"author"`
	ISBN          string `json:"isbn" db:"isbn"`
	Category      string `json:"category" db:"category"`
	Publisher     string `json:"publisher" db:"publisher"`
	PublishedYear string `json:"published_year" db:"published_year"`
	Copies        int    `json:"copies" db:"copies"`
}
