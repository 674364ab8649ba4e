package model

import "time"

// ImportJob is the write-once audit record of a single import run. It is
// created after the run completes and never mutated; if persisting it fails
// the run still reports success to the caller.
type ImportJob struct {
	ID              string     `json:"id" db:"id"`
	SchoolID        string     `json:"school_id" db:"school_id"`
	Category        string     `json:"category" db:"category"`
	FileName        string     `json:"file_name" db:"file_name"`
	ArchivePath     string     `json:"archive_path,omitempty" db:"archive_path"`
	ImportedBy      string     `json:"imported_by,omitempty" db:"imported_by"`
	TotalRows       int        `json:"total_rows" db:"total_rows"`
	Success         int        `json:"success" db:"success"`
	Failed          int        `json:"failed" db:"failed"`
	AccountsCreated int        `json:"accounts_created" db:"accounts_created"`
	AccountsFailed  int        `json:"accounts_failed" db:"accounts_failed"`
	Errors          []RowError `json:"errors,omitempty" db:"-"`
	CreatedAt       time.Time  `json:"created_at" db:"created_at"`
}

// RowError is a row-scoped failure surfaced in the run response and stored
// (capped) on the import job.
type RowError struct {
	Row     int               `json:"row"`
	Message string            `json:"message"`
	Data    map[string]string `json:"data,omitempty"`
}

// AccountError is a post-commit provisioning failure. The row's domain data
// succeeded; the entry carries everything needed to retry provisioning later.
type AccountError struct {
	Row      int    `json:"row"`
	Email    string `json:"email"`
	Message  string `json:"message"`
	CanRetry bool   `json:"canRetry"`
	RecordID string `json:"recordId"`
}
