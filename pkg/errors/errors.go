package errors

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrEmptyFile         = errors.New("no data found in the file")
	ErrNoValidRows       = errors.New("no valid data rows found")
	ErrInvalidFileFormat = errors.New("invalid file format")
)

// UnsupportedCategoryError is returned when an import is requested for a
// category the schema registry does not know about.
type UnsupportedCategoryError struct {
	Category string
}

func (e UnsupportedCategoryError) Error() string {
	return fmt.Sprintf("category '%s' is not supported", e.Category)
}

// SchemaMismatchError reports mandatory columns missing from an uploaded
// file, along with the full expected and uploaded header sets so the caller
// can show an actionable diagnostic.
type SchemaMismatchError struct {
	MissingColumns  []string
	ExpectedColumns []string
	UploadedColumns []string
}

func (e SchemaMismatchError) Error() string {
	return fmt.Sprintf("template mapping not matched: missing required columns: %s",
		strings.Join(e.MissingColumns, ", "))
}

func (e SchemaMismatchError) Suggestion() string {
	return "Please download the correct template and ensure all column headers match exactly."
}

// WrongTemplateError is the stronger signal: the uploaded headers share no
// overlap with the expected set, so the file is almost certainly a template
// for a different category. Only short samples are carried to keep the
// message readable.
type WrongTemplateError struct {
	Category       string
	ExpectedSample []string
	UploadedSample []string
}

func (e WrongTemplateError) Error() string {
	return "template mapping not matched: the uploaded file appears to be for a different category"
}

func (e WrongTemplateError) Suggestion() string {
	return fmt.Sprintf("Please use the correct %s template.", e.Category)
}

// RowValidationError marks a row whose cells are missing or unparseable.
// It is isolated to its row and never aborts the run.
type RowValidationError struct {
	Message string
}

func (e RowValidationError) Error() string {
	return e.Message
}

// ReferenceNotFoundError names the entity a row referenced but that does not
// exist in the tenant's dataset, together with the lookup key used.
type ReferenceNotFoundError struct {
	Entity string
	Key    string
	Hint   string
}

func (e ReferenceNotFoundError) Error() string {
	msg := fmt.Sprintf("%s '%s' not found", e.Entity, e.Key)
	if e.Hint != "" {
		msg += ". " + e.Hint
	}
	return msg
}

// DuplicateRecordError names the colliding unique field and its value.
type DuplicateRecordError struct {
	Field string
	Value string
}

func (e DuplicateRecordError) Error() string {
	return fmt.Sprintf("record with %s '%s' already exists", e.Field, e.Value)
}

// ProvisioningError is a post-commit failure of the external identity
// service. The row's domain data has already been persisted, so this error
// is tracked separately as retry-eligible and never demotes the row.
type ProvisioningError struct {
	Email   string
	Message string
}

func (e ProvisioningError) Error() string {
	return fmt.Sprintf("failed to provision account for '%s': %s", e.Email, e.Message)
}

type RetryableError struct {
	Err     error
	Message string
}

func (e RetryableError) Error() string {
	return fmt.Sprintf("retryable error: %s - %s", e.Message, e.Err.Error())
}

func (e RetryableError) Unwrap() error {
	return e.Err
}

func NewRetryableError(err error, message string) error {
	return RetryableError{
		Err:     err,
		Message: message,
	}
}

func IsRetryable(err error) bool {
	var re RetryableError
	return errors.As(err, &re)
}

// IsRowError reports whether err is scoped to a single row. Row errors are
// recorded against the row and processing continues; anything else aborts
// the remainder of the run.
func IsRowError(err error) bool {
	var (
		rv  RowValidationError
		ref ReferenceNotFoundError
		dup DuplicateRecordError
	)
	return errors.As(err, &rv) || errors.As(err, &ref) || errors.As(err, &dup)
}

// IsRunError reports whether err should abort the run before any row is
// processed, mapping to a 400-equivalent response.
func IsRunError(err error) bool {
	var (
		uc UnsupportedCategoryError
		sm SchemaMismatchError
		wt WrongTemplateError
	)
	return errors.Is(err, ErrEmptyFile) || errors.Is(err, ErrNoValidRows) ||
		errors.Is(err, ErrInvalidFileFormat) ||
		errors.As(err, &uc) || errors.As(err, &sm) || errors.As(err, &wt)
}
