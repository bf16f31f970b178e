package kyc

import (
	"context"

	"github.com/slpe/agentpay/models"
	kycErrors "github.com/slpe/agentpay/services/kyc/errors"
	"github.com/slpe/agentpay/types"
	"gorm.io/gorm"
)

// RecordStore holds, per subject, the history of verification attempts.
// Entries are append-only; the current status for a record type is the
// verified record with the latest UpdatedAt. Older or failed attempts are
// retained for audit but never authoritative.
type RecordStore struct {
	db *gorm.DB
}

// NewRecordStore creates a KYC record store on the given database
func NewRecordStore(db *gorm.DB) *RecordStore {
	return &RecordStore{db: db}
}

// RecordAttempt appends one immutable verification attempt outcome
func (s *RecordStore) RecordAttempt(ctx context.Context, subjectID string, recordType types.KycRecordType, attempt types.KycAttempt) (*models.KycRecord, error) {
	record := &models.KycRecord{
		SubjectID:        subjectID,
		RecordType:       string(recordType),
		Verified:         attempt.Verified,
		MaskedIdentifier: attempt.MaskedIdentifier,
		Name:             attempt.Name,
		DateOfBirth:      attempt.DateOfBirth,
		Gender:           attempt.Gender,
		Address:          attempt.Address,
	}
	if err := s.db.WithContext(ctx).Create(record).Error; err != nil {
		return nil, kycErrors.ErrDatabase{Err: err}
	}
	return record, nil
}

// CurrentStatus resolves the authoritative status for a record type by the
// latest-verified-wins rule
func (s *RecordStore) CurrentStatus(ctx context.Context, subjectID string, recordType types.KycRecordType) (*types.KycStatus, error) {
	var record models.KycRecord
	err := s.db.WithContext(ctx).
		Where("subject_id = ? AND record_type = ? AND verified = ?", subjectID, string(recordType), true).
		Order("updated_at DESC").
		First(&record).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return &types.KycStatus{Verified: false}, nil
		}
		return nil, kycErrors.ErrDatabase{Err: err}
	}

	return &types.KycStatus{
		Verified:         true,
		MaskedIdentifier: record.MaskedIdentifier,
		Name:             record.Name,
		DateOfBirth:      record.DateOfBirth,
		Address:          record.Address,
		UpdatedAt:        record.UpdatedAt,
	}, nil
}

// History returns every attempt for a record type, newest first. It exists
// for audit display; status resolution never reads it.
func (s *RecordStore) History(ctx context.Context, subjectID string, recordType types.KycRecordType) ([]models.KycRecord, error) {
	var records []models.KycRecord
	err := s.db.WithContext(ctx).
		Where("subject_id = ? AND record_type = ?", subjectID, string(recordType)).
		Order("updated_at DESC").
		Find(&records).Error
	if err != nil {
		return nil, kycErrors.ErrDatabase{Err: err}
	}
	return records, nil
}
