package importer

import (
	"school-import-service/internal/schema"
)

// CredentialGenerator derives the default password for a newly imported
// person record.
type CredentialGenerator interface {
	Password(category string, fields Fields) string
}

// FormulaCredentials reproduces the deterministic per-category password
// formulas that existing provisioned accounts were created with, e.g.
// Student@<admission number>. The formulas are predictable from public data
// and are kept only for continuity; every run logs a weak-credential notice
// so the practice stays visible in the audit trail.
type FormulaCredentials struct{}

func (FormulaCredentials) Password(category string, fields Fields) string {
	switch category {
	case schema.CategoryStudents:
		return "Student@" + fields["admissionNo"]
	case schema.CategoryTeachers:
		return "Teacher@" + fields["employeeId"]
	case schema.CategoryNonTeachingStaff:
		return "Staff@" + fields["employeeId"]
	case schema.CategoryParents:
		return "Parent@" + lastN(fields["phone"], 4)
	default:
		return ""
	}
}

func lastN(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[len(s)-n:]
}
