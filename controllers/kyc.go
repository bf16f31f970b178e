package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/slpe/agentpay/services/kyc"
	"github.com/slpe/agentpay/storage"
	"github.com/slpe/agentpay/types"
	u "github.com/slpe/agentpay/utils"
	"github.com/slpe/agentpay/utils/logger"
)

// KycController exposes the identity verification workflow
type KycController struct {
	workflow *kyc.WorkflowService
}

// NewKycController creates a KYC controller with injected provider gateway
func NewKycController(provider types.VerificationProvider) *KycController {
	return &KycController{
		workflow: kyc.NewWorkflowService(storage.GetClient(), provider),
	}
}

// SendIdentityOtp controller requests an identity OTP challenge
func (ctrl *KycController) SendIdentityOtp(ctx *gin.Context) {
	subject, ok := subjectID(ctx)
	if !ok {
		return
	}

	identifier := ctx.Query("identifier")
	challenge, err := ctrl.workflow.RequestIdentityOtp(ctx, subject, identifier)
	if err != nil {
		logger.Errorf("Failed to request identity OTP for subject %s: %v", subject, err)
		translateError(ctx, "Failed to send OTP", err)
		return
	}

	u.APIResponse(ctx, http.StatusOK, "success", "OTP sent successfully", challenge)
}

// VerifyIdentityOtp controller completes the identity stage
func (ctrl *KycController) VerifyIdentityOtp(ctx *gin.Context) {
	subject, ok := subjectID(ctx)
	if !ok {
		return
	}

	var payload types.VerifyOtpPayload
	if err := ctx.ShouldBindJSON(&payload); err != nil {
		u.APIResponse(ctx, http.StatusBadRequest, "error",
			"Failed to validate payload", u.GetErrorData(err))
		return
	}

	status, err := ctrl.workflow.ConfirmIdentityOtp(ctx, subject, payload.RefID, payload.Otp, payload.Identifier)
	if err != nil {
		logger.Errorf("Failed to verify identity OTP for subject %s: %v", subject, err)
		translateError(ctx, "Failed to verify OTP", err)
		return
	}

	u.APIResponse(ctx, http.StatusOK, "success", "Identity verified successfully", status)
}

// VerifyTaxId controller runs the tax-ID stage
func (ctrl *KycController) VerifyTaxId(ctx *gin.Context) {
	subject, ok := subjectID(ctx)
	if !ok {
		return
	}

	var payload types.VerifyTaxIdPayload
	if err := ctx.ShouldBindJSON(&payload); err != nil {
		u.APIResponse(ctx, http.StatusBadRequest, "error",
			"Failed to validate payload", u.GetErrorData(err))
		return
	}

	status, err := ctrl.workflow.VerifyTaxId(ctx, subject, payload.TaxID, payload.Name)
	if err != nil {
		logger.Errorf("Failed to verify tax ID for subject %s: %v", subject, err)
		translateError(ctx, "Failed to verify tax ID", err)
		return
	}

	if !status.Verified {
		u.APIResponse(ctx, http.StatusOK, "success", "Tax ID could not be verified", status)
		return
	}
	u.APIResponse(ctx, http.StatusOK, "success", "Tax ID verified successfully", status)
}

// GetKycStatus controller returns the derived workflow summary
func (ctrl *KycController) GetKycStatus(ctx *gin.Context) {
	subject, ok := subjectID(ctx)
	if !ok {
		return
	}

	status, err := ctrl.workflow.Status(ctx, subject)
	if err != nil {
		logger.Errorf("Failed to resolve KYC status for subject %s: %v", subject, err)
		translateError(ctx, "Failed to fetch KYC status", err)
		return
	}

	u.APIResponse(ctx, http.StatusOK, "success", "OK", status)
}

// GetKycHistory controller returns the audit trail of verification attempts
// for a record type
func (ctrl *KycController) GetKycHistory(ctx *gin.Context) {
	subject, ok := subjectID(ctx)
	if !ok {
		return
	}

	recordType := types.KycRecordType(ctx.DefaultQuery("type", string(types.KycRecordTypeIdentity)))
	if recordType != types.KycRecordTypeIdentity && recordType != types.KycRecordTypeTaxId {
		u.APIResponse(ctx, http.StatusBadRequest, "error", "Failed to validate payload", []types.ErrorData{{
			Field:   "type",
			Message: "must be identity or tax_id",
		}})
		return
	}

	history, err := ctrl.workflow.Store().History(ctx, subject, recordType)
	if err != nil {
		logger.Errorf("Failed to fetch KYC history for subject %s: %v", subject, err)
		translateError(ctx, "Failed to fetch KYC history", err)
		return
	}

	u.APIResponse(ctx, http.StatusOK, "success", "OK", history)
}
