package schema

import (
	"strings"

	apperrors "school-import-service/pkg/errors"
)

// RowIndexColumn is the reserved serial-number column present in generated
// templates. It is excluded from header comparison and from row-emptiness
// checks.
const RowIndexColumn = "S.No"

const (
	CategoryStudents         = "students"
	CategoryTeachers         = "teachers"
	CategoryNonTeachingStaff = "nonTeachingStaff"
	CategoryParents          = "parents"
	CategoryInventory        = "inventory"
	CategoryLibrary          = "library"
)

// Column maps one template header onto an internal field name.
type Column struct {
	Header   string
	Field    string
	Required bool
	Numeric  bool
	Example  string
}

// CategorySchema is the ordered column set for one import category.
type CategorySchema struct {
	Category        string
	DisplayName     string
	RequiresAccount bool
	Columns         []Column
}

func (s *CategorySchema) Headers() []string {
	headers := make([]string, len(s.Columns))
	for i, col := range s.Columns {
		headers[i] = col.Header
	}
	return headers
}

func (s *CategorySchema) RequiredHeaders() []string {
	var headers []string
	for _, col := range s.Columns {
		if col.Required {
			headers = append(headers, col.Header)
		}
	}
	return headers
}

// ColumnFor resolves an uploaded header to its column definition using
// trimmed, case-sensitive equality.
func (s *CategorySchema) ColumnFor(header string) (Column, bool) {
	trimmed := strings.TrimSpace(header)
	for _, col := range s.Columns {
		if col.Header == trimmed {
			return col, true
		}
	}
	return Column{}, false
}

type Registry struct {
	schemas map[string]*CategorySchema
	order   []string
}

func NewRegistry() *Registry {
	r := &Registry{schemas: make(map[string]*CategorySchema)}
	for _, s := range defaultSchemas() {
		s := s
		r.schemas[s.Category] = &s
		r.order = append(r.order, s.Category)
	}
	return r
}

func (r *Registry) Lookup(category string) (*CategorySchema, error) {
	s, ok := r.schemas[category]
	if !ok {
		return nil, apperrors.UnsupportedCategoryError{Category: category}
	}
	return s, nil
}

// Categories returns all known schemas in registration order.
func (r *Registry) Categories() []*CategorySchema {
	out := make([]*CategorySchema, 0, len(r.order))
	for _, c := range r.order {
		out = append(out, r.schemas[c])
	}
	return out
}

func defaultSchemas() []CategorySchema {
	return []CategorySchema{
		{
			Category:        CategoryStudents,
			DisplayName:     "Students",
			RequiresAccount: true,
			Columns: []Column{
				{Header: "Full Name *", Field: "name", Required: true, Example: "John Doe"},
				{Header: "Email *", Field: "email", Required: true, Example: "john@example.com"},
				{Header: "Admission Number *", Field: "admissionNo", Required: true, Example: "ADM001"},
				{Header: "Class Name *", Field: "className", Required: true, Example: "Class 10"},
				{Header: "Section *", Field: "sectionName", Required: true, Example: "A"},
				{Header: "Gender *", Field: "gender", Required: true, Example: "Male"},
				{Header: "Date of Birth (YYYY-MM-DD) *", Field: "dob", Required: true, Example: "2010-05-15"},
				{Header: "Roll Number", Field: "rollNumber", Example: "01"},
				{Header: "Contact Number", Field: "contactNumber", Example: "9876543210"},
				{Header: "Address", Field: "address", Example: "123 Main Street"},
				{Header: "City", Field: "city", Example: "Mumbai"},
				{Header: "State", Field: "state", Example: "Maharashtra"},
				{Header: "Father Name", Field: "fatherName", Example: "Robert Doe"},
				{Header: "Mother Name", Field: "motherName", Example: "Jane Doe"},
				{Header: "Father Phone", Field: "fatherPhone", Example: "9876543211"},
				{Header: "Mother Phone", Field: "motherPhone", Example: "9876543212"},
				{Header: "Blood Group", Field: "bloodGroup", Example: "O+"},
			},
		},
		{
			Category:        CategoryTeachers,
			DisplayName:     "Teaching Staff",
			RequiresAccount: true,
			Columns: []Column{
				{Header: "Full Name *", Field: "name", Required: true, Example: "Dr. Sarah Johnson"},
				{Header: "Email *", Field: "email", Required: true, Example: "sarah@school.com"},
				{Header: "Employee ID *", Field: "employeeId", Required: true, Example: "EMP001"},
				{Header: "Gender *", Field: "gender", Required: true, Example: "Female"},
				{Header: "Designation *", Field: "designation", Required: true, Example: "Senior Teacher"},
				{Header: "Phone Number", Field: "phone", Example: "9876543210"},
				{Header: "Address", Field: "address", Example: "456 Oak Avenue"},
				{Header: "Qualification", Field: "qualification", Example: "M.Ed, B.Sc"},
				{Header: "Subjects (comma separated)", Field: "subjects", Example: "Mathematics, Physics"},
				{Header: "Joining Date (YYYY-MM-DD)", Field: "joiningDate", Example: "2020-04-01"},
				{Header: "Salary", Field: "salary", Example: "50000"},
			},
		},
		{
			Category:        CategoryNonTeachingStaff,
			DisplayName:     "Non-Teaching Staff",
			RequiresAccount: true,
			Columns: []Column{
				{Header: "Full Name *", Field: "name", Required: true, Example: "Ramesh Kumar"},
				{Header: "Email *", Field: "email", Required: true, Example: "ramesh@school.com"},
				{Header: "Employee ID *", Field: "employeeId", Required: true, Example: "NTS001"},
				{Header: "Gender *", Field: "gender", Required: true, Example: "Male"},
				{Header: "Designation *", Field: "designation", Required: true, Example: "Accountant"},
				{Header: "Department *", Field: "department", Required: true, Example: "Administration"},
				{Header: "Phone Number", Field: "phone", Example: "9876543210"},
				{Header: "Address", Field: "address", Example: "456 Oak Avenue"},
				{Header: "Joining Date (YYYY-MM-DD)", Field: "joiningDate", Example: "2020-04-01"},
				{Header: "Salary", Field: "salary", Example: "30000"},
			},
		},
		{
			Category:        CategoryParents,
			DisplayName:     "Parents",
			RequiresAccount: true,
			Columns: []Column{
				{Header: "Full Name *", Field: "name", Required: true, Example: "Robert Smith"},
				{Header: "Email *", Field: "email", Required: true, Example: "robert@email.com"},
				{Header: "Phone Number *", Field: "phone", Required: true, Example: "9876543210"},
				{Header: "Relation (Father/Mother/Guardian) *", Field: "relation", Required: true, Example: "Father"},
				{Header: "Student Admission No *", Field: "studentAdmissionNo", Required: true, Example: "ADM001"},
				{Header: "Address", Field: "address", Example: "789 Pine Road"},
				{Header: "Occupation", Field: "occupation", Example: "Engineer"},
			},
		},
		{
			Category:    CategoryInventory,
			DisplayName: "Inventory Items",
			Columns: []Column{
				{Header: "Item Name *", Field: "name", Required: true, Example: "Whiteboard Marker"},
				{Header: "Category *", Field: "category", Required: true, Example: "Stationery"},
				{Header: "Quantity *", Field: "quantity", Required: true, Numeric: true, Example: "100"},
				{Header: "Unit *", Field: "unit", Required: true, Example: "pieces"},
				{Header: "Cost Per Unit *", Field: "costPerUnit", Required: true, Numeric: true, Example: "25"},
				{Header: "Minimum Quantity", Field: "minimumQuantity", Numeric: true, Example: "20"},
				{Header: "Storage Location", Field: "location", Example: "Store Room A"},
				{Header: "Vendor Name", Field: "vendorName", Example: "ABC Supplies"},
			},
		},
		{
			Category:    CategoryLibrary,
			DisplayName: "Library Books",
			Columns: []Column{
				{Header: "Book Title *", Field: "title", Required: true, Example: "Introduction to Physics"},
				{Header: "Author *", Field: "author", Required: true, Example: "H.C. Verma"},
				{Header: "ISBN *", Field: "isbn", Required: true, Example: "978-0-123456-78-9"},
				{Header: "Category *", Field: "category", Required: true, Example: "Science"},
				{Header: "Publisher", Field: "publisher", Example: "Oxford Press"},
				{Header: "Published Year", Field: "publishedYear", Example: "2020"},
				{Header: "Number of Copies", Field: "copies", Numeric: true, Example: "5"},
			},
		},
	}
}
