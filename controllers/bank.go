package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/slpe/agentpay/models"
	"github.com/slpe/agentpay/services/bank"
	"github.com/slpe/agentpay/storage"
	"github.com/slpe/agentpay/types"
	u "github.com/slpe/agentpay/utils"
	"github.com/slpe/agentpay/utils/logger"
)

// BankController exposes the payout bank account ledger
type BankController struct {
	ledger *bank.LedgerService
}

// NewBankController creates a bank controller with injected provider gateway
func NewBankController(provider types.VerificationProvider) *BankController {
	return &BankController{
		ledger: bank.NewLedgerService(storage.GetClient(), provider),
	}
}

func toBankAccountResponse(account models.BankAccount) types.BankAccountResponse {
	return types.BankAccountResponse{
		ID:              account.ID,
		AccountNumber:   account.AccountNumber,
		IfscCode:        account.IfscCode,
		BeneficiaryName: account.BeneficiaryName,
		Phone:           account.Phone,
		Verified:        account.Verified,
		IsPrimary:       account.IsPrimary,
		CreatedAt:       account.CreatedAt,
		UpdatedAt:       account.UpdatedAt,
	}
}

// AddBankAccount controller links a new payout bank account
func (ctrl *BankController) AddBankAccount(ctx *gin.Context) {
	subject, ok := subjectID(ctx)
	if !ok {
		return
	}

	var payload types.AddBankAccountPayload
	if err := ctx.ShouldBindJSON(&payload); err != nil {
		u.APIResponse(ctx, http.StatusBadRequest, "error",
			"Failed to validate payload", u.GetErrorData(err))
		return
	}

	account, err := ctrl.ledger.Add(ctx, subject, payload)
	if err != nil {
		logger.Errorf("Failed to add bank account for subject %s: %v", subject, err)
		translateError(ctx, "Failed to add bank account", err)
		return
	}

	u.APIResponse(ctx, http.StatusCreated, "success", "Bank account added successfully", toBankAccountResponse(*account))
}

// ListBankAccounts controller returns the subject's accounts together with
// the resolved primary
func (ctrl *BankController) ListBankAccounts(ctx *gin.Context) {
	subject, ok := subjectID(ctx)
	if !ok {
		return
	}

	accounts, err := ctrl.ledger.List(ctx, subject)
	if err != nil {
		logger.Errorf("Failed to list bank accounts for subject %s: %v", subject, err)
		translateError(ctx, "Failed to fetch bank accounts", err)
		return
	}

	responses := make([]types.BankAccountResponse, 0, len(accounts))
	for _, account := range accounts {
		responses = append(responses, toBankAccountResponse(account))
	}

	var primary interface{}
	if resolved := bank.ResolvePrimary(accounts); len(resolved) > 0 {
		primary = toBankAccountResponse(resolved[0])
	}

	u.APIResponse(ctx, http.StatusOK, "success", "OK", gin.H{
		"accounts": responses,
		"primary":  primary,
	})
}

// DeleteBankAccount controller removes a bank account owned by the subject
func (ctrl *BankController) DeleteBankAccount(ctx *gin.Context) {
	subject, ok := subjectID(ctx)
	if !ok {
		return
	}

	if err := ctrl.ledger.Delete(ctx, subject, ctx.Param("id")); err != nil {
		logger.Errorf("Failed to delete bank account for subject %s: %v", subject, err)
		translateError(ctx, "Failed to delete bank account", err)
		return
	}

	u.APIResponse(ctx, http.StatusOK, "success", "Bank account deleted successfully", nil)
}

// SetPrimaryBankAccount controller switches the explicit primary account
func (ctrl *BankController) SetPrimaryBankAccount(ctx *gin.Context) {
	subject, ok := subjectID(ctx)
	if !ok {
		return
	}

	if err := ctrl.ledger.SetPrimary(ctx, subject, ctx.Param("id")); err != nil {
		logger.Errorf("Failed to set primary bank account for subject %s: %v", subject, err)
		translateError(ctx, "Failed to set primary bank account", err)
		return
	}

	u.APIResponse(ctx, http.StatusOK, "success", "Primary bank account updated", nil)
}
