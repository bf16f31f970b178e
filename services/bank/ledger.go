package bank

import (
	"context"
	"sort"

	"github.com/slpe/agentpay/models"
	"github.com/slpe/agentpay/services/kyc"
	kycErrors "github.com/slpe/agentpay/services/kyc/errors"
	"github.com/slpe/agentpay/types"
	"github.com/slpe/agentpay/utils"
	"gorm.io/gorm"
)

// LedgerService owns the lifecycle of payout bank accounts. Linking requires
// a verified tax-ID record, and the beneficiary name is always taken from the
// subject's verified identity record, never from free input.
type LedgerService struct {
	db       *gorm.DB
	provider types.VerificationProvider
	store    *kyc.RecordStore
}

// NewLedgerService creates a bank account ledger on the given database
func NewLedgerService(db *gorm.DB, provider types.VerificationProvider) *LedgerService {
	return &LedgerService{
		db:       db,
		provider: provider,
		store:    kyc.NewRecordStore(db),
	}
}

// Add links a new payout bank account for the subject. The first linked
// account becomes primary by default.
func (s *LedgerService) Add(ctx context.Context, subjectID string, payload types.AddBankAccountPayload) (*models.BankAccount, error) {
	taxID, err := s.store.CurrentStatus(ctx, subjectID, types.KycRecordTypeTaxId)
	if err != nil {
		return nil, err
	}
	if !taxID.Verified {
		return nil, kycErrors.ErrPreconditionFailed{Requires: "verified tax ID"}
	}

	if payload.AccountNumber != payload.ConfirmAccountNumber {
		return nil, kycErrors.ErrValidation{Field: "confirmAccountNumber", Message: "does not match the account number"}
	}
	if !utils.IsValidIfscCode(payload.IfscCode) {
		return nil, kycErrors.ErrValidation{Field: "ifscCode", Message: "must match the bank code pattern"}
	}
	if !utils.IsValidPhoneNumber(payload.Phone) {
		return nil, kycErrors.ErrValidation{Field: "phone", Message: "must be exactly 10 digits"}
	}

	identity, err := s.store.CurrentStatus(ctx, subjectID, types.KycRecordTypeIdentity)
	if err != nil {
		return nil, err
	}
	if !identity.Verified || identity.Name == "" {
		return nil, kycErrors.ErrPreconditionFailed{Requires: "verified identity"}
	}

	result, err := s.provider.VerifyBankAccount(ctx, payload.AccountNumber, payload.IfscCode, identity.Name, payload.Phone)
	if err != nil {
		return nil, err
	}

	var existing int64
	if err := s.db.WithContext(ctx).
		Model(&models.BankAccount{}).
		Where("subject_id = ?", subjectID).
		Count(&existing).Error; err != nil {
		return nil, kycErrors.ErrDatabase{Err: err}
	}

	account := &models.BankAccount{
		SubjectID:       subjectID,
		AccountNumber:   payload.AccountNumber,
		IfscCode:        payload.IfscCode,
		BeneficiaryName: result.NormalizedBeneficiaryName,
		Phone:           payload.Phone,
		Verified:        result.Verified,
		IsPrimary:       existing == 0,
	}
	if err := s.db.WithContext(ctx).Create(account).Error; err != nil {
		return nil, kycErrors.ErrDatabase{Err: err}
	}

	return account, nil
}

// List returns every bank account of the subject, newest first
func (s *LedgerService) List(ctx context.Context, subjectID string) ([]models.BankAccount, error) {
	var accounts []models.BankAccount
	err := s.db.WithContext(ctx).
		Where("subject_id = ?", subjectID).
		Order("updated_at DESC").
		Find(&accounts).Error
	if err != nil {
		return nil, kycErrors.ErrDatabase{Err: err}
	}
	return accounts, nil
}

// Delete removes a bank account. The account must belong to the subject.
func (s *LedgerService) Delete(ctx context.Context, subjectID, accountID string) error {
	result := s.db.WithContext(ctx).
		Where("id = ? AND subject_id = ?", accountID, subjectID).
		Delete(&models.BankAccount{})
	if result.Error != nil {
		return kycErrors.ErrDatabase{Err: result.Error}
	}
	if result.RowsAffected == 0 {
		return kycErrors.ErrNotFound{Resource: "bank account"}
	}
	return nil
}

// SetPrimary marks the given account as the subject's primary payout
// destination, clearing any previous explicit primary
func (s *LedgerService) SetPrimary(ctx context.Context, subjectID, accountID string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var account models.BankAccount
		if err := tx.Where("id = ? AND subject_id = ?", accountID, subjectID).First(&account).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return kycErrors.ErrNotFound{Resource: "bank account"}
			}
			return kycErrors.ErrDatabase{Err: err}
		}
		if err := tx.Model(&models.BankAccount{}).
			Where("subject_id = ? AND is_primary = ?", subjectID, true).
			Update("is_primary", false).Error; err != nil {
			return kycErrors.ErrDatabase{Err: err}
		}
		if err := tx.Model(&account).Update("is_primary", true).Error; err != nil {
			return kycErrors.ErrDatabase{Err: err}
		}
		return nil
	})
}

// ResolvePrimary applies the two-tier primary selection rule: if any account
// is explicitly primary, exactly that set is returned; otherwise at most one
// account is returned, the most recently updated verified one. Downstream
// payment flows therefore always have a deterministic account to show.
func ResolvePrimary(accounts []models.BankAccount) []models.BankAccount {
	var primaries []models.BankAccount
	for _, account := range accounts {
		if account.IsPrimary {
			primaries = append(primaries, account)
		}
	}
	if len(primaries) > 0 {
		return primaries
	}

	var verified []models.BankAccount
	for _, account := range accounts {
		if account.Verified {
			verified = append(verified, account)
		}
	}
	if len(verified) == 0 {
		return nil
	}

	sort.SliceStable(verified, func(i, j int) bool {
		return verified[i].UpdatedAt.After(verified[j].UpdatedAt)
	})
	return verified[:1]
}
