package importer

import (
	"context"

	"school-import-service/internal/model"
	apperrors "school-import-service/pkg/errors"
)

// Retry re-attempts provisioning for records whose domain data already
// exists. It never creates domain records and never re-validates row data:
// on success it only links the external account id onto the existing record.
// The operation is idempotent; a record that is already linked is reported
// as a success without touching the identity service.
func (s *Service) Retry(ctx context.Context, schoolID, category string, records []model.RetryRecord) (*model.RetryResult, error) {
	cs, err := s.registry.Lookup(category)
	if err != nil {
		return nil, err
	}
	if !cs.RequiresAccount {
		return nil, apperrors.UnsupportedCategoryError{Category: category}
	}

	log := s.log.With().
		Str("school_id", schoolID).
		Str("category", category).
		Logger()

	result := &model.RetryResult{
		Message: "Retry completed",
		Errors:  []model.AccountError{},
	}

	for _, record := range records {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		status, err := s.repo.UserIdentityStatus(ctx, record.RecordID)
		if err != nil {
			result.Failed++
			result.Errors = append(result.Errors, model.AccountError{
				Email:    record.Email,
				Message:  err.Error(),
				CanRetry: true,
				RecordID: record.RecordID,
			})
			continue
		}

		if status == model.IdentityStatusLinked {
			log.Debug().Str("record_id", record.RecordID).Msg("Record already linked, skipping")
			result.Success++
			continue
		}

		externalID, err := s.provision(ctx, record.Email, record.Password)
		if err != nil {
			result.Failed++
			result.Errors = append(result.Errors, model.AccountError{
				Email:    record.Email,
				Message:  err.Error(),
				CanRetry: true,
				RecordID: record.RecordID,
			})
			continue
		}

		if err := s.repo.LinkIdentity(ctx, record.RecordID, externalID); err != nil {
			log.Error().Err(err).
				Str("record_id", record.RecordID).
				Str("identity_id", externalID).
				Msg("Provisioned account but failed to link identity reference")
			result.Failed++
			result.Errors = append(result.Errors, model.AccountError{
				Email:    record.Email,
				Message:  "account created but identity link failed: " + err.Error(),
				CanRetry: true,
				RecordID: record.RecordID,
			})
			continue
		}

		result.Success++
	}

	return result, nil
}
