package bank

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/slpe/agentpay/models"
	kycErrors "github.com/slpe/agentpay/services/kyc/errors"
	"github.com/slpe/agentpay/types"
	"github.com/slpe/agentpay/utils/test"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type stubBankProvider struct {
	verified bool
	name     string
	calls    int
}

func (p *stubBankProvider) RequestIdentityOtp(ctx context.Context, identifier string) (*types.OtpChallenge, error) {
	return &types.OtpChallenge{RefID: uuid.NewString()}, nil
}

func (p *stubBankProvider) ConfirmIdentityOtp(ctx context.Context, refID, otp, identifier string) (*types.IdentityResult, error) {
	return &types.IdentityResult{}, nil
}

func (p *stubBankProvider) VerifyTaxId(ctx context.Context, taxID, declaredName string) (*types.TaxIdResult, error) {
	return &types.TaxIdResult{Verified: true}, nil
}

func (p *stubBankProvider) VerifyBankAccount(ctx context.Context, accountNumber, ifscCode, beneficiaryName, phone string) (*types.BankVerifyResult, error) {
	p.calls++
	return &types.BankVerifyResult{Verified: p.verified, NormalizedBeneficiaryName: p.name}, nil
}

// seedVerifiedSubject writes the identity and tax-ID records a subject needs
// before any bank account can be linked
func seedVerifiedSubject(t *testing.T, db *gorm.DB, subjectID string) {
	t.Helper()
	records := []models.KycRecord{
		{SubjectID: subjectID, RecordType: string(types.KycRecordTypeIdentity), Verified: true, Name: "Asha Rao", DateOfBirth: "1990-01-01", MaskedIdentifier: "XXXX9012"},
		{SubjectID: subjectID, RecordType: string(types.KycRecordTypeTaxId), Verified: true, MaskedIdentifier: "XXXX234F"},
	}
	for i := range records {
		assert.NoError(t, db.Create(&records[i]).Error)
	}
}

func validPayload() types.AddBankAccountPayload {
	return types.AddBankAccountPayload{
		AccountNumber:        "50100123456789",
		ConfirmAccountNumber: "50100123456789",
		IfscCode:             "HDFC0001234",
		Phone:                "9876543210",
	}
}

func TestLedger(t *testing.T) {
	ctx := context.Background()

	t.Run("Add requires a verified tax ID", func(t *testing.T) {
		db := test.SetupTestDB(t)
		ledger := NewLedgerService(db, &stubBankProvider{verified: true, name: "ASHA RAO"})

		_, err := ledger.Add(ctx, uuid.NewString(), validPayload())
		assert.Error(t, err)
		assert.Equal(t, kycErrors.ErrPreconditionFailed{Requires: "verified tax ID"}, err)
	})

	t.Run("Add rejects a mismatched confirmation number before the provider call", func(t *testing.T) {
		db := test.SetupTestDB(t)
		provider := &stubBankProvider{verified: true, name: "ASHA RAO"}
		ledger := NewLedgerService(db, provider)
		subjectID := uuid.NewString()
		seedVerifiedSubject(t, db, subjectID)

		payload := validPayload()
		payload.ConfirmAccountNumber = "50100123456780"
		_, err := ledger.Add(ctx, subjectID, payload)
		assert.Error(t, err)
		assert.IsType(t, kycErrors.ErrValidation{}, err)
		assert.Equal(t, 0, provider.calls)
	})

	t.Run("Add validates the bank code and phone", func(t *testing.T) {
		db := test.SetupTestDB(t)
		ledger := NewLedgerService(db, &stubBankProvider{verified: true, name: "ASHA RAO"})
		subjectID := uuid.NewString()
		seedVerifiedSubject(t, db, subjectID)

		payload := validPayload()
		payload.IfscCode = "HDFC1001234"
		_, err := ledger.Add(ctx, subjectID, payload)
		assert.IsType(t, kycErrors.ErrValidation{}, err)

		payload = validPayload()
		payload.Phone = "98765"
		_, err = ledger.Add(ctx, subjectID, payload)
		assert.IsType(t, kycErrors.ErrValidation{}, err)
	})

	t.Run("Add stores the provider's beneficiary name and marks the first account primary", func(t *testing.T) {
		db := test.SetupTestDB(t)
		ledger := NewLedgerService(db, &stubBankProvider{verified: true, name: "ASHA RAO"})
		subjectID := uuid.NewString()
		seedVerifiedSubject(t, db, subjectID)

		first, err := ledger.Add(ctx, subjectID, validPayload())
		assert.NoError(t, err)
		assert.True(t, first.IsPrimary)
		assert.True(t, first.Verified)
		assert.Equal(t, "ASHA RAO", first.BeneficiaryName)

		second := validPayload()
		second.AccountNumber = "50100999999999"
		second.ConfirmAccountNumber = "50100999999999"
		account, err := ledger.Add(ctx, subjectID, second)
		assert.NoError(t, err)
		assert.False(t, account.IsPrimary)
	})

	t.Run("Delete is scoped to the owning subject", func(t *testing.T) {
		db := test.SetupTestDB(t)
		ledger := NewLedgerService(db, &stubBankProvider{verified: true, name: "ASHA RAO"})
		subjectID := uuid.NewString()
		seedVerifiedSubject(t, db, subjectID)

		account, err := ledger.Add(ctx, subjectID, validPayload())
		assert.NoError(t, err)

		err = ledger.Delete(ctx, uuid.NewString(), account.ID)
		assert.Equal(t, kycErrors.ErrNotFound{Resource: "bank account"}, err)

		assert.NoError(t, ledger.Delete(ctx, subjectID, account.ID))

		accounts, err := ledger.List(ctx, subjectID)
		assert.NoError(t, err)
		assert.Empty(t, accounts)
	})

	t.Run("SetPrimary moves the explicit primary flag", func(t *testing.T) {
		db := test.SetupTestDB(t)
		ledger := NewLedgerService(db, &stubBankProvider{verified: true, name: "ASHA RAO"})
		subjectID := uuid.NewString()
		seedVerifiedSubject(t, db, subjectID)

		first, err := ledger.Add(ctx, subjectID, validPayload())
		assert.NoError(t, err)

		second := validPayload()
		second.AccountNumber = "50100999999999"
		second.ConfirmAccountNumber = "50100999999999"
		other, err := ledger.Add(ctx, subjectID, second)
		assert.NoError(t, err)

		assert.NoError(t, ledger.SetPrimary(ctx, subjectID, other.ID))

		accounts, err := ledger.List(ctx, subjectID)
		assert.NoError(t, err)
		for _, account := range accounts {
			switch account.ID {
			case first.ID:
				assert.False(t, account.IsPrimary)
			case other.ID:
				assert.True(t, account.IsPrimary)
			}
		}

		err = ledger.SetPrimary(ctx, subjectID, uuid.NewString())
		assert.Equal(t, kycErrors.ErrNotFound{Resource: "bank account"}, err)
	})
}

func TestResolvePrimary(t *testing.T) {
	now := time.Now()

	t.Run("explicit primaries win over recency", func(t *testing.T) {
		accounts := []models.BankAccount{
			{ID: "a", Verified: true, UpdatedAt: now},
			{ID: "b", Verified: false, IsPrimary: true, UpdatedAt: now.Add(-time.Hour)},
		}
		primaries := ResolvePrimary(accounts)
		assert.Len(t, primaries, 1)
		assert.Equal(t, "b", primaries[0].ID)
	})

	t.Run("falls back to the most recently updated verified account", func(t *testing.T) {
		accounts := []models.BankAccount{
			{ID: "a", Verified: true, UpdatedAt: now.Add(-time.Hour)},
			{ID: "b", Verified: true, UpdatedAt: now},
			{ID: "c", Verified: false, UpdatedAt: now.Add(time.Hour)},
		}
		primaries := ResolvePrimary(accounts)
		assert.Len(t, primaries, 1)
		assert.Equal(t, "b", primaries[0].ID)
	})

	t.Run("returns nothing when no account qualifies", func(t *testing.T) {
		accounts := []models.BankAccount{
			{ID: "a", Verified: false, UpdatedAt: now},
		}
		assert.Nil(t, ResolvePrimary(accounts))
	})

	t.Run("empty ledger resolves to nothing", func(t *testing.T) {
		assert.Nil(t, ResolvePrimary(nil))
	})
}
