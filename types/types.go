package types

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// KycRecordType distinguishes the two sequential verification stages
type KycRecordType string

const (
	KycRecordTypeIdentity KycRecordType = "identity"
	KycRecordTypeTaxId    KycRecordType = "tax_id"
)

// OnboardingStage is the derived position of a subject in the payout
// onboarding workflow. It is never persisted; it is recomputed from the
// KYC records and the bank ledger on every query.
type OnboardingStage string

const (
	StageUnverified         OnboardingStage = "unverified"
	StageIdentityOtpPending OnboardingStage = "identity_otp_pending"
	StageIdentityVerified   OnboardingStage = "identity_verified"
	StageTaxIdVerified      OnboardingStage = "tax_id_verified"
	StageBankLinked         OnboardingStage = "bank_linked"
)

// PaymentModeCategory classifies catalog entries
type PaymentModeCategory string

const (
	CategoryEducation PaymentModeCategory = "education"
	CategoryTravel    PaymentModeCategory = "travel"
	CategoryInsurance PaymentModeCategory = "insurance"
	CategoryOther     PaymentModeCategory = "other"
)

// OtpChallenge is the provider's handle for an in-flight identity OTP
type OtpChallenge struct {
	RefID string `json:"refId"`
}

// IdentityResult holds the fields captured from a successful identity
// verification. MaskedIdentifier carries only the last 4 digits.
type IdentityResult struct {
	Name             string `json:"name"`
	DateOfBirth      string `json:"dateOfBirth"`
	Gender           string `json:"gender"`
	Address          string `json:"address"`
	MaskedIdentifier string `json:"maskedIdentifier"`
}

// TaxIdResult is the outcome of a tax-ID verification
type TaxIdResult struct {
	Verified bool `json:"verified"`
}

// BankVerifyResult is the outcome of a penny-drop bank account verification
type BankVerifyResult struct {
	Verified                  bool   `json:"verified"`
	NormalizedBeneficiaryName string `json:"normalizedBeneficiaryName"`
}

// VerificationProvider defines the interface for identity verification providers
type VerificationProvider interface {
	RequestIdentityOtp(ctx context.Context, identifier string) (*OtpChallenge, error)
	ConfirmIdentityOtp(ctx context.Context, refID, otp, identifier string) (*IdentityResult, error)
	VerifyTaxId(ctx context.Context, taxID, declaredName string) (*TaxIdResult, error)
	VerifyBankAccount(ctx context.Context, accountNumber, ifscCode, beneficiaryName, phone string) (*BankVerifyResult, error)
}

// KycAttempt is one verification attempt outcome to be appended to a
// subject's history
type KycAttempt struct {
	Verified         bool
	MaskedIdentifier string
	Name             string
	DateOfBirth      string
	Gender           string
	Address          string
}

// KycStatus is the outbound per-type status projection
type KycStatus struct {
	Verified         bool      `json:"verified"`
	MaskedIdentifier string    `json:"maskedIdentifier,omitempty"`
	Name             string    `json:"name,omitempty"`
	DateOfBirth      string    `json:"dateOfBirth,omitempty"`
	Address          string    `json:"address,omitempty"`
	UpdatedAt        time.Time `json:"updatedAt,omitempty"`
}

// SubjectStatus is the outbound workflow summary for the presentation layer
type SubjectStatus struct {
	Stage            OnboardingStage `json:"stage"`
	IdentityVerified bool            `json:"identityVerified"`
	TaxIdVerified    bool            `json:"taxIdVerified"`
	CapturedName     string          `json:"capturedName,omitempty"`
	CapturedDob      string          `json:"capturedDob,omitempty"`
}

// SettlementQuote is a computed, never persisted settlement breakdown.
// serviceCharge + transferFee + settlementAmount always equals baseAmount.
type SettlementQuote struct {
	BaseAmount        decimal.Decimal `json:"baseAmount"`
	PercentageApplied decimal.Decimal `json:"percentageApplied"`
	ServiceCharge     decimal.Decimal `json:"serviceCharge"`
	TransferFee       decimal.Decimal `json:"transferFee"`
	SettlementAmount  decimal.Decimal `json:"settlementAmount"`
}

// RatePreset is a presentation shortcut layered over the rate floor
type RatePreset struct {
	Label      string          `json:"label"`
	Percentage decimal.Decimal `json:"percentage"`
}

// VerifyOtpPayload is the request body for the identity OTP confirm endpoint
type VerifyOtpPayload struct {
	RefID      string `json:"refId" binding:"required"`
	Otp        string `json:"otp" binding:"required"`
	Identifier string `json:"identifier" binding:"required"`
}

// VerifyTaxIdPayload is the request body for the tax-ID verify endpoint
type VerifyTaxIdPayload struct {
	TaxID string `json:"taxId" binding:"required"`
	Name  string `json:"name" binding:"required"`
}

// AddBankAccountPayload is the request body for linking a bank account.
// The account number is entered twice to catch transcription errors.
type AddBankAccountPayload struct {
	AccountNumber        string `json:"accountNumber" binding:"required"`
	ConfirmAccountNumber string `json:"confirmAccountNumber" binding:"required"`
	IfscCode             string `json:"ifscCode" binding:"required"`
	Phone                string `json:"phone" binding:"required"`
}

// BankAccountResponse is the outbound shape of a payout bank account
type BankAccountResponse struct {
	ID              string    `json:"id"`
	AccountNumber   string    `json:"accountNumber"`
	IfscCode        string    `json:"ifscCode"`
	BeneficiaryName string    `json:"beneficiaryName"`
	Phone           string    `json:"phone"`
	Verified        bool      `json:"verified"`
	IsPrimary       bool      `json:"isPrimary"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// QuotePayload is the request body for the settlement quote endpoint
type QuotePayload struct {
	Mode       string          `json:"mode" binding:"required"`
	Tier       int             `json:"tier" binding:"required"`
	BaseAmount decimal.Decimal `json:"baseAmount" binding:"required"`
	Percentage decimal.Decimal `json:"percentage"`
}

// QuoteResponse pairs a quote with the presets offered for the resolved floor
type QuoteResponse struct {
	Quote   SettlementQuote `json:"quote"`
	Presets []RatePreset    `json:"presets"`
}

// PaymentModeResponse is the outbound shape of a catalog entry
type PaymentModeResponse struct {
	ID                   string              `json:"id"`
	Name                 string              `json:"name"`
	Category             PaymentModeCategory `json:"category"`
	LiveForPayin         bool                `json:"liveForPayin"`
	MaxTransactionAmount decimal.Decimal     `json:"maxTransactionAmount"`
}

// Response is the struct for an API response
type Response struct {
	Status  string      `json:"status"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

// ErrorData is the struct for error data i.e when Status is "error"
type ErrorData struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}
