package provider

import (
	"context"
	"fmt"
	"strings"

	fastshot "github.com/opus-domini/fast-shot"
	"github.com/slpe/agentpay/config"
	kycErrors "github.com/slpe/agentpay/services/kyc/errors"
	"github.com/slpe/agentpay/types"
	"github.com/slpe/agentpay/utils"
)

// ProviderService talks to the external verification provider. It validates
// input before any network call, never retries, and has no side effects on
// failure; retries are a caller decision.
type ProviderService struct {
	conf *config.ProviderConfiguration
}

// NewProviderService creates a verification provider gateway
func NewProviderService() types.VerificationProvider {
	return &ProviderService{
		conf: config.ProviderConfig(),
	}
}

type otpResponse struct {
	RefID *string `json:"ref_id"`
}

type identityResponse struct {
	Status      *string `json:"status"`
	Name        *string `json:"name"`
	DateOfBirth *string `json:"date_of_birth"`
	Gender      string  `json:"gender"`
	Address     string  `json:"address"`
}

type taxIdResponse struct {
	Status    *string `json:"status"`
	NameMatch bool    `json:"name_match"`
}

type bankResponse struct {
	AccountExists *bool  `json:"account_exists"`
	NameAtBank    string `json:"name_at_bank"`
}

// RequestIdentityOtp implements the VerificationProvider interface
func (s *ProviderService) RequestIdentityOtp(ctx context.Context, identifier string) (*types.OtpChallenge, error) {
	if !utils.IsValidIdentifier(identifier) {
		return nil, kycErrors.ErrValidation{Field: "identifier", Message: "must be exactly 12 digits"}
	}

	res, err := fastshot.NewClient(s.conf.BaseUrl).
		Config().SetTimeout(s.conf.RequestTimeout).
		Header().Add("x-api-key", s.conf.ApiKey).
		Build().POST("/v1/identity/otp").
		Body().AsJSON(map[string]interface{}{
		"id_number": identifier,
	}).
		Send()
	if err != nil {
		return nil, kycErrors.ErrProviderUnreachable{Err: err}
	}
	if res.Status().IsError() {
		body, _ := res.Body().AsString()
		return nil, kycErrors.ErrProviderUnreachable{Err: fmt.Errorf("HTTP error %d: %s", res.Status().Code(), body)}
	}

	var data otpResponse
	if err := res.Body().AsJSON(&data); err != nil {
		return nil, kycErrors.ErrProviderResponse{Err: err}
	}
	if data.RefID == nil || *data.RefID == "" {
		return nil, kycErrors.ErrProviderResponse{Err: fmt.Errorf("missing ref_id in OTP response")}
	}

	return &types.OtpChallenge{RefID: *data.RefID}, nil
}

// ConfirmIdentityOtp implements the VerificationProvider interface
func (s *ProviderService) ConfirmIdentityOtp(ctx context.Context, refID, otp, identifier string) (*types.IdentityResult, error) {
	if refID == "" {
		return nil, kycErrors.ErrValidation{Field: "refId", Message: "is required"}
	}
	if otp == "" {
		return nil, kycErrors.ErrValidation{Field: "otp", Message: "is required"}
	}
	if !utils.IsValidIdentifier(identifier) {
		return nil, kycErrors.ErrValidation{Field: "identifier", Message: "must be exactly 12 digits"}
	}

	res, err := fastshot.NewClient(s.conf.BaseUrl).
		Config().SetTimeout(s.conf.RequestTimeout).
		Header().Add("x-api-key", s.conf.ApiKey).
		Build().POST("/v1/identity/otp/verify").
		Body().AsJSON(map[string]interface{}{
		"ref_id":    refID,
		"otp":       otp,
		"id_number": identifier,
	}).
		Send()
	if err != nil {
		return nil, kycErrors.ErrProviderUnreachable{Err: err}
	}
	if res.Status().IsError() {
		body, _ := res.Body().AsString()
		return nil, kycErrors.ErrProviderUnreachable{Err: fmt.Errorf("HTTP error %d: %s", res.Status().Code(), body)}
	}

	var data identityResponse
	if err := res.Body().AsJSON(&data); err != nil {
		return nil, kycErrors.ErrProviderResponse{Err: err}
	}
	if data.Status == nil || data.Name == nil || data.DateOfBirth == nil {
		return nil, kycErrors.ErrProviderResponse{Err: fmt.Errorf("missing required fields in identity response")}
	}
	if !strings.EqualFold(*data.Status, "valid") {
		return nil, kycErrors.ErrProviderResponse{Err: fmt.Errorf("identity verification failed with status %q", *data.Status)}
	}

	return &types.IdentityResult{
		Name:             *data.Name,
		DateOfBirth:      *data.DateOfBirth,
		Gender:           data.Gender,
		Address:          data.Address,
		MaskedIdentifier: utils.MaskIdentifier(identifier),
	}, nil
}

// VerifyTaxId implements the VerificationProvider interface
func (s *ProviderService) VerifyTaxId(ctx context.Context, taxID, declaredName string) (*types.TaxIdResult, error) {
	if !utils.IsValidTaxId(taxID) {
		return nil, kycErrors.ErrValidation{Field: "taxId", Message: "must match the fixed-length alphanumeric pattern"}
	}
	if len(strings.TrimSpace(declaredName)) < 3 {
		return nil, kycErrors.ErrValidation{Field: "name", Message: "must be at least 3 characters"}
	}

	res, err := fastshot.NewClient(s.conf.BaseUrl).
		Config().SetTimeout(s.conf.RequestTimeout).
		Header().Add("x-api-key", s.conf.ApiKey).
		Build().POST("/v1/tax/verify").
		Body().AsJSON(map[string]interface{}{
		"id_number": strings.ToUpper(taxID),
		"name":      declaredName,
	}).
		Send()
	if err != nil {
		return nil, kycErrors.ErrProviderUnreachable{Err: err}
	}
	if res.Status().IsError() {
		body, _ := res.Body().AsString()
		return nil, kycErrors.ErrProviderUnreachable{Err: fmt.Errorf("HTTP error %d: %s", res.Status().Code(), body)}
	}

	var data taxIdResponse
	if err := res.Body().AsJSON(&data); err != nil {
		return nil, kycErrors.ErrProviderResponse{Err: err}
	}
	if data.Status == nil {
		return nil, kycErrors.ErrProviderResponse{Err: fmt.Errorf("missing status in tax verification response")}
	}

	return &types.TaxIdResult{
		Verified: strings.EqualFold(*data.Status, "valid") && data.NameMatch,
	}, nil
}

// VerifyBankAccount implements the VerificationProvider interface
func (s *ProviderService) VerifyBankAccount(ctx context.Context, accountNumber, ifscCode, beneficiaryName, phone string) (*types.BankVerifyResult, error) {
	if accountNumber == "" {
		return nil, kycErrors.ErrValidation{Field: "accountNumber", Message: "is required"}
	}
	if !utils.IsValidIfscCode(ifscCode) {
		return nil, kycErrors.ErrValidation{Field: "ifscCode", Message: "must match the bank code pattern"}
	}
	if !utils.IsValidPhoneNumber(phone) {
		return nil, kycErrors.ErrValidation{Field: "phone", Message: "must be exactly 10 digits"}
	}

	res, err := fastshot.NewClient(s.conf.BaseUrl).
		Config().SetTimeout(s.conf.RequestTimeout).
		Header().Add("x-api-key", s.conf.ApiKey).
		Build().POST("/v1/bank/verify").
		Body().AsJSON(map[string]interface{}{
		"account_number": accountNumber,
		"ifsc":           strings.ToUpper(ifscCode),
		"name":           beneficiaryName,
		"phone":          phone,
	}).
		Send()
	if err != nil {
		return nil, kycErrors.ErrProviderUnreachable{Err: err}
	}
	if res.Status().IsError() {
		body, _ := res.Body().AsString()
		return nil, kycErrors.ErrProviderUnreachable{Err: fmt.Errorf("HTTP error %d: %s", res.Status().Code(), body)}
	}

	var data bankResponse
	if err := res.Body().AsJSON(&data); err != nil {
		return nil, kycErrors.ErrProviderResponse{Err: err}
	}
	if data.AccountExists == nil {
		return nil, kycErrors.ErrProviderResponse{Err: fmt.Errorf("missing account_exists in bank verification response")}
	}

	normalized := data.NameAtBank
	if normalized == "" {
		normalized = beneficiaryName
	}
	return &types.BankVerifyResult{
		Verified:                  *data.AccountExists,
		NormalizedBeneficiaryName: normalized,
	}, nil
}
