package kyc

import (
	"context"
	"errors"
	"strings"

	"github.com/slpe/agentpay/models"
	kycErrors "github.com/slpe/agentpay/services/kyc/errors"
	"github.com/slpe/agentpay/types"
	"github.com/slpe/agentpay/utils"
	"github.com/slpe/agentpay/utils/logger"
	"gorm.io/gorm"
)

// WorkflowService enforces the Identity -> Tax-ID -> Bank-Account stage
// ordering. The current stage is never persisted; it is a projection over
// the record store, the OTP transactions, and the bank ledger.
type WorkflowService struct {
	db       *gorm.DB
	provider types.VerificationProvider
	store    *RecordStore
}

// NewWorkflowService creates a workflow service driving the given provider
func NewWorkflowService(db *gorm.DB, provider types.VerificationProvider) *WorkflowService {
	return &WorkflowService{
		db:       db,
		provider: provider,
		store:    NewRecordStore(db),
	}
}

// Store exposes the underlying record store
func (w *WorkflowService) Store() *RecordStore {
	return w.store
}

// RequestIdentityOtp starts the identity stage: it requests an OTP challenge
// from the provider and opens an OTP transaction correlating the returned
// refId with the subject and identifier.
func (w *WorkflowService) RequestIdentityOtp(ctx context.Context, subjectID, identifier string) (*types.OtpChallenge, error) {
	if !utils.IsValidIdentifier(identifier) {
		return nil, kycErrors.ErrValidation{Field: "identifier", Message: "must be exactly 12 digits"}
	}

	challenge, err := w.provider.RequestIdentityOtp(ctx, identifier)
	if err != nil {
		return nil, err
	}

	txn := &models.OtpTransaction{
		RefID:           challenge.RefID,
		SubjectID:       subjectID,
		IdentifierValue: identifier,
	}
	if err := w.db.WithContext(ctx).Create(txn).Error; err != nil {
		return nil, kycErrors.ErrDatabase{Err: err}
	}

	return challenge, nil
}

// ConfirmIdentityOtp completes the identity stage. The OTP transaction is
// claimed before the provider call by a single conditional update, so a
// duplicate confirm with the same refId fails with ErrInvalidTransaction.
// A transport failure releases the claim: no verification outcome exists,
// and the subject may retry with the same refId. A definitive provider
// answer, verified or not, keeps the refId consumed.
func (w *WorkflowService) ConfirmIdentityOtp(ctx context.Context, subjectID, refID, otp, identifier string) (*types.KycStatus, error) {
	if refID == "" {
		return nil, kycErrors.ErrValidation{Field: "refId", Message: "is required"}
	}
	if otp == "" {
		return nil, kycErrors.ErrValidation{Field: "otp", Message: "is required"}
	}
	if !utils.IsValidIdentifier(identifier) {
		return nil, kycErrors.ErrValidation{Field: "identifier", Message: "must be exactly 12 digits"}
	}

	claim := w.db.WithContext(ctx).
		Model(&models.OtpTransaction{}).
		Where("ref_id = ? AND subject_id = ? AND identifier_value = ? AND consumed = ?", refID, subjectID, identifier, false).
		Update("consumed", true)
	if claim.Error != nil {
		return nil, kycErrors.ErrDatabase{Err: claim.Error}
	}
	if claim.RowsAffected == 0 {
		return nil, kycErrors.ErrInvalidTransaction{}
	}

	result, err := w.provider.ConfirmIdentityOtp(ctx, refID, otp, identifier)
	if err != nil {
		var unreachable kycErrors.ErrProviderUnreachable
		if errors.As(err, &unreachable) {
			// no outcome was produced; release the claim so the refId
			// remains usable
			if relErr := w.db.WithContext(ctx).
				Model(&models.OtpTransaction{}).
				Where("ref_id = ?", refID).
				Update("consumed", false).Error; relErr != nil {
				logger.Errorf("Failed to release OTP transaction %s for subject %s: %v", refID, subjectID, relErr)
			}
			return nil, err
		}

		var respErr kycErrors.ErrProviderResponse
		if errors.As(err, &respErr) {
			// definitive rejection: keep a non-verified record for audit
			if _, recErr := w.store.RecordAttempt(ctx, subjectID, types.KycRecordTypeIdentity, types.KycAttempt{
				Verified:         false,
				MaskedIdentifier: utils.MaskIdentifier(identifier),
			}); recErr != nil {
				logger.Errorf("Failed to record identity attempt for subject %s: %v", subjectID, recErr)
			}
		}
		return nil, err
	}

	if _, err := w.store.RecordAttempt(ctx, subjectID, types.KycRecordTypeIdentity, types.KycAttempt{
		Verified:         true,
		MaskedIdentifier: result.MaskedIdentifier,
		Name:             result.Name,
		DateOfBirth:      result.DateOfBirth,
		Gender:           result.Gender,
		Address:          result.Address,
	}); err != nil {
		return nil, err
	}

	return w.store.CurrentStatus(ctx, subjectID, types.KycRecordTypeIdentity)
}

// VerifyTaxId runs the tax-ID stage. It requires a verified identity record
// and writes a record on every definitive provider answer, verified or not.
func (w *WorkflowService) VerifyTaxId(ctx context.Context, subjectID, taxID, declaredName string) (*types.KycStatus, error) {
	identity, err := w.store.CurrentStatus(ctx, subjectID, types.KycRecordTypeIdentity)
	if err != nil {
		return nil, err
	}
	if !identity.Verified {
		return nil, kycErrors.ErrPreconditionFailed{Requires: "verified identity"}
	}

	if !utils.IsValidTaxId(taxID) {
		return nil, kycErrors.ErrValidation{Field: "taxId", Message: "must match the fixed-length alphanumeric pattern"}
	}
	if len(strings.TrimSpace(declaredName)) < 3 {
		return nil, kycErrors.ErrValidation{Field: "name", Message: "must be at least 3 characters"}
	}

	result, err := w.provider.VerifyTaxId(ctx, taxID, declaredName)
	if err != nil {
		return nil, err
	}

	if _, err := w.store.RecordAttempt(ctx, subjectID, types.KycRecordTypeTaxId, types.KycAttempt{
		Verified:         result.Verified,
		MaskedIdentifier: utils.MaskIdentifier(taxID),
		Name:             declaredName,
	}); err != nil {
		return nil, err
	}

	return w.store.CurrentStatus(ctx, subjectID, types.KycRecordTypeTaxId)
}

// Stage projects the subject's position in the onboarding workflow from the
// underlying collections
func (w *WorkflowService) Stage(ctx context.Context, subjectID string) (types.OnboardingStage, error) {
	var bankCount int64
	if err := w.db.WithContext(ctx).
		Model(&models.BankAccount{}).
		Where("subject_id = ?", subjectID).
		Count(&bankCount).Error; err != nil {
		return "", kycErrors.ErrDatabase{Err: err}
	}
	if bankCount > 0 {
		return types.StageBankLinked, nil
	}

	taxID, err := w.store.CurrentStatus(ctx, subjectID, types.KycRecordTypeTaxId)
	if err != nil {
		return "", err
	}
	if taxID.Verified {
		return types.StageTaxIdVerified, nil
	}

	identity, err := w.store.CurrentStatus(ctx, subjectID, types.KycRecordTypeIdentity)
	if err != nil {
		return "", err
	}
	if identity.Verified {
		return types.StageIdentityVerified, nil
	}

	var pendingOtp int64
	if err := w.db.WithContext(ctx).
		Model(&models.OtpTransaction{}).
		Where("subject_id = ? AND consumed = ?", subjectID, false).
		Count(&pendingOtp).Error; err != nil {
		return "", kycErrors.ErrDatabase{Err: err}
	}
	if pendingOtp > 0 {
		return types.StageIdentityOtpPending, nil
	}

	return types.StageUnverified, nil
}

// Status builds the outbound workflow summary for the presentation layer
func (w *WorkflowService) Status(ctx context.Context, subjectID string) (*types.SubjectStatus, error) {
	stage, err := w.Stage(ctx, subjectID)
	if err != nil {
		return nil, err
	}

	identity, err := w.store.CurrentStatus(ctx, subjectID, types.KycRecordTypeIdentity)
	if err != nil {
		return nil, err
	}
	taxID, err := w.store.CurrentStatus(ctx, subjectID, types.KycRecordTypeTaxId)
	if err != nil {
		return nil, err
	}

	return &types.SubjectStatus{
		Stage:            stage,
		IdentityVerified: identity.Verified,
		TaxIdVerified:    taxID.Verified,
		CapturedName:     identity.Name,
		CapturedDob:      identity.DateOfBirth,
	}, nil
}
