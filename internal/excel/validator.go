package excel

import (
	"strings"

	"school-import-service/internal/schema"
	apperrors "school-import-service/pkg/errors"
)

const sampleSize = 5

// ValidateHeaders compares uploaded headers against the category schema.
// Matching is by trimmed string equality, deliberately case-sensitive: a
// header differing only by case is a mismatch.
//
// Zero overlap between the two sets is classified first as a wrong-template
// upload, the stronger signal; otherwise any missing mandatory column yields
// a schema mismatch carrying the full expected/uploaded sets.
func ValidateHeaders(cs *schema.CategorySchema, uploaded []string) error {
	var cleaned []string
	for _, h := range uploaded {
		h = strings.TrimSpace(h)
		if h == "" || h == schema.RowIndexColumn {
			continue
		}
		cleaned = append(cleaned, h)
	}

	uploadedSet := make(map[string]bool, len(cleaned))
	for _, h := range cleaned {
		uploadedSet[h] = true
	}

	expected := cs.Headers()
	overlap := 0
	for _, h := range expected {
		if uploadedSet[h] {
			overlap++
		}
	}

	if overlap == 0 {
		return apperrors.WrongTemplateError{
			Category:       cs.Category,
			ExpectedSample: sample(stripRequiredMarks(expected)),
			UploadedSample: sample(cleaned),
		}
	}

	var missing []string
	for _, h := range cs.RequiredHeaders() {
		if !uploadedSet[h] {
			missing = append(missing, h)
		}
	}

	if len(missing) > 0 {
		return apperrors.SchemaMismatchError{
			MissingColumns:  missing,
			ExpectedColumns: expected,
			UploadedColumns: cleaned,
		}
	}

	return nil
}

func sample(headers []string) []string {
	if len(headers) > sampleSize {
		return headers[:sampleSize]
	}
	return headers
}

func stripRequiredMarks(headers []string) []string {
	out := make([]string, len(headers))
	for i, h := range headers {
		out[i] = strings.TrimSuffix(h, " *")
	}
	return out
}
