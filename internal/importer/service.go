package importer

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"school-import-service/internal/config"
	"school-import-service/internal/db"
	"school-import-service/internal/excel"
	"school-import-service/internal/logger"
	"school-import-service/internal/model"
	"school-import-service/internal/schema"
	"school-import-service/internal/storage"
	apperrors "school-import-service/pkg/errors"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Provisioner mirrors identity.Provisioner; declared here so the service can
// be tested with a fake without standing up the HTTP client.
type Provisioner interface {
	CreateAccount(ctx context.Context, email, password string) (string, error)
}

// Notifier enqueues credential jobs for fire-and-forget delivery.
type Notifier interface {
	EnqueueCredentialJob(ctx context.Context, job model.CredentialJob) error
}

// RunRequest is one upload to process.
type RunRequest struct {
	SchoolID   string
	Category   string
	FileName   string
	Data       []byte
	UserID     string
	SendEmails bool
}

type Service struct {
	cfg         *config.Config
	repo        db.Repository
	registry    *schema.Registry
	parser      *excel.Parser
	strategies  map[string]Strategy
	provisioner Provisioner
	notifier    Notifier
	archive     storage.Storage
	log         zerolog.Logger
}

func NewService(
	cfg *config.Config,
	repo db.Repository,
	registry *schema.Registry,
	provisioner Provisioner,
	notifier Notifier,
	archive storage.Storage,
) *Service {
	return &Service{
		cfg:         cfg,
		repo:        repo,
		registry:    registry,
		parser:      excel.NewParser(),
		strategies:  NewStrategies(repo, FormulaCredentials{}),
		provisioner: provisioner,
		notifier:    notifier,
		archive:     archive,
		log:         logger.Get(),
	}
}

// Run executes one import: parse, validate headers, normalize, then process
// rows sequentially. Row failures are isolated; run-level failures abort
// before any row is touched. Person rows that persist successfully are
// provisioned post-commit, and provisioning failures are recorded as
// retry-eligible without demoting the row.
func (s *Service) Run(ctx context.Context, req RunRequest) (*model.RunResult, error) {
	cs, err := s.registry.Lookup(req.Category)
	if err != nil {
		return nil, err
	}

	strategy, ok := s.strategies[req.Category]
	if !ok {
		return nil, apperrors.UnsupportedCategoryError{Category: req.Category}
	}

	sheet, err := s.parser.Parse(ctx, req.Data)
	if err != nil {
		return nil, err
	}

	if err := excel.ValidateHeaders(cs, sheet.Headers); err != nil {
		return nil, err
	}

	rows := excel.Normalize(cs, sheet.Rows)
	if len(rows) == 0 {
		return nil, apperrors.ErrNoValidRows
	}

	log := s.log.With().
		Str("school_id", req.SchoolID).
		Str("category", req.Category).
		Str("file_name", req.FileName).
		Logger()

	log.Info().Int("rows", len(rows)).Msg("Starting import run")
	if cs.RequiresAccount {
		log.Warn().Msg("Default passwords are formula-derived from row data; rotate after first login")
	}

	archivePath := s.archiveUpload(ctx, req, log)

	result := &model.RunResult{
		Message:       "Import completed",
		Total:         len(rows),
		TotalRecords:  len(rows),
		RequiresAuth:  cs.RequiresAccount,
		Errors:        []model.RowError{},
		AccountErrors: []model.AccountError{},
	}

	var created []model.CredentialJob

	for _, row := range rows {
		// A cancelled request stops the run between rows.
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		fields := FieldsFromRow(cs, row)

		rec, err := strategy.Import(ctx, req.SchoolID, fields)
		if err != nil {
			if !apperrors.IsRowError(err) {
				return nil, fmt.Errorf("row %d: %w", row.Number, err)
			}
			result.Failed++
			if len(result.Errors) < s.cfg.Import.MaxErrorsRecorded {
				result.Errors = append(result.Errors, model.RowError{
					Row:     row.Number,
					Message: err.Error(),
					Data:    rowErrorData(fields),
				})
			}
			continue
		}

		result.Success++

		if !cs.RequiresAccount {
			continue
		}

		externalID, provErr := s.provision(ctx, rec.Email, rec.Password)
		if provErr != nil {
			log.Warn().Err(provErr).Int("row", row.Number).Str("email", rec.Email).
				Msg("Account provisioning failed, recorded for retry")
			result.AccountsFailed++
			result.AccountErrors = append(result.AccountErrors, model.AccountError{
				Row:      row.Number,
				Email:    rec.Email,
				Message:  provErr.Error(),
				CanRetry: true,
				RecordID: rec.RecordID,
			})
			continue
		}

		result.AccountsCreated++

		// Realign the local identity reference to the externally assigned
		// id. The row stays a success if this update fails; the stale
		// reference is logged so the inconsistency is observable.
		if err := s.repo.LinkIdentity(ctx, rec.RecordID, externalID); err != nil {
			log.Error().Err(err).
				Str("record_id", rec.RecordID).
				Str("identity_id", externalID).
				Msg("Failed to link identity reference; record left with placeholder id")
		}

		created = append(created, model.CredentialJob{
			Email:    rec.Email,
			Name:     rec.Name,
			Password: rec.Password,
			UserType: userTypeFor(req.Category),
		})
	}

	s.recordHistory(ctx, req, archivePath, result, log)

	if req.SendEmails && len(created) > 0 {
		result.EmailsSent = s.dispatchCredentials(ctx, req.SchoolID, created, log)
	}

	log.Info().
		Int("success", result.Success).
		Int("failed", result.Failed).
		Int("accounts_created", result.AccountsCreated).
		Int("accounts_failed", result.AccountsFailed).
		Msg("Import run completed")

	return result, nil
}

// provision wraps the identity call with bounded retry and linear backoff.
// Only transport-level retryable failures are retried; a business rejection
// from the identity service fails immediately.
func (s *Service) provision(ctx context.Context, email, password string) (string, error) {
	attempts := s.cfg.Identity.RetryAttempts
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	for attempt := 0; attempt < attempts; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(s.cfg.Identity.RetryDelay * time.Duration(attempt)):
			}
		}

		externalID, err := s.provisioner.CreateAccount(ctx, email, password)
		if err == nil {
			return externalID, nil
		}

		lastErr = err
		if !apperrors.IsRetryable(err) {
			break
		}
		s.log.Warn().Err(err).Int("attempt", attempt+1).Str("email", email).
			Msg("Identity call failed, retrying")
	}

	return "", lastErr
}

func (s *Service) archiveUpload(ctx context.Context, req RunRequest, log zerolog.Logger) string {
	if s.archive == nil {
		return ""
	}

	key := fmt.Sprintf("imports/%s/%d_%s", req.SchoolID, time.Now().Unix(), req.FileName)
	if err := s.archive.Upload(ctx, key, bytes.NewReader(req.Data)); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("Failed to archive import file")
		return ""
	}
	return key
}

// recordHistory persists the write-once audit row. Persistence failure is
// logged and swallowed: the run still reports success to the caller.
func (s *Service) recordHistory(ctx context.Context, req RunRequest, archivePath string, result *model.RunResult, log zerolog.Logger) {
	job := &model.ImportJob{
		ID:              uuid.NewString(),
		SchoolID:        req.SchoolID,
		Category:        req.Category,
		FileName:        req.FileName,
		ArchivePath:     archivePath,
		ImportedBy:      req.UserID,
		TotalRows:       result.Total,
		Success:         result.Success,
		Failed:          result.Failed,
		AccountsCreated: result.AccountsCreated,
		AccountsFailed:  result.AccountsFailed,
		Errors:          result.Errors,
	}

	if err := s.repo.CreateImportJob(ctx, job); err != nil {
		log.Error().Err(err).Msg("Failed to persist import history")
	}
}

func (s *Service) dispatchCredentials(ctx context.Context, schoolID string, created []model.CredentialJob, log zerolog.Logger) int {
	schoolName := "Your School"
	if school, err := s.repo.FindSchool(ctx, schoolID); err != nil {
		log.Warn().Err(err).Msg("Failed to look up school for credential emails")
	} else if school != nil {
		schoolName = school.Name
	}

	if s.notifier == nil {
		return 0
	}

	loginURL := s.cfg.App.BaseURL + "/login"
	sent := 0
	for _, job := range created {
		job.SchoolName = schoolName
		job.LoginURL = loginURL
		if err := s.notifier.EnqueueCredentialJob(ctx, job); err != nil {
			log.Error().Err(err).Str("email", job.Email).Msg("Failed to enqueue credentials email")
			continue
		}
		sent++
	}
	return sent
}

func rowErrorData(fields Fields) map[string]string {
	for _, key := range []string{"name", "title"} {
		if fields[key] != "" {
			return map[string]string{"name": fields[key]}
		}
	}
	return nil
}

func userTypeFor(category string) string {
	switch category {
	case schema.CategoryStudents:
		return "student"
	case schema.CategoryTeachers:
		return "teacher"
	case schema.CategoryNonTeachingStaff:
		return "staff"
	case schema.CategoryParents:
		return "parent"
	default:
		return category
	}
}
