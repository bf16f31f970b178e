package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/slpe/agentpay/services/catalog"
	"github.com/slpe/agentpay/services/settlement"
	"github.com/slpe/agentpay/storage"
	"github.com/slpe/agentpay/types"
	u "github.com/slpe/agentpay/utils"
	"github.com/slpe/agentpay/utils/logger"
)

// SettlementController exposes the payment-mode catalog and the settlement
// calculator
type SettlementController struct {
	catalog    *catalog.CatalogService
	calculator *settlement.Calculator
	rateTable  *settlement.RateTable
}

// NewSettlementController creates a settlement controller. The rate table is
// loaded once and shared; a load failure is fatal at boot.
func NewSettlementController() *SettlementController {
	table, err := settlement.LoadRateTable()
	if err != nil {
		logger.Fatalf("Failed to load rate tables: %v", err)
	}
	return &SettlementController{
		catalog:    catalog.NewCatalogService(storage.GetClient()),
		calculator: settlement.NewCalculator(),
		rateTable:  table,
	}
}

// GetPaymentModes controller fetches the payment mode catalog
func (ctrl *SettlementController) GetPaymentModes(ctx *gin.Context) {
	modes, err := ctrl.catalog.List(ctx)
	if err != nil {
		logger.Errorf("Failed to fetch payment modes: %v", err)
		translateError(ctx, "Failed to fetch payment modes", err)
		return
	}

	responses := make([]types.PaymentModeResponse, 0, len(modes))
	for _, mode := range modes {
		responses = append(responses, types.PaymentModeResponse{
			ID:                   mode.ID,
			Name:                 mode.Name,
			Category:             types.PaymentModeCategory(mode.Category),
			LiveForPayin:         mode.LiveForPayin,
			MaxTransactionAmount: mode.MaxTransactionAmount,
		})
	}

	u.APIResponse(ctx, http.StatusOK, "success", "OK", responses)
}

// GetSettlementQuote controller computes the settlement breakdown for a
// mode/tier/amount/percentage combination
func (ctrl *SettlementController) GetSettlementQuote(ctx *gin.Context) {
	var payload types.QuotePayload
	if err := ctx.ShouldBindJSON(&payload); err != nil {
		u.APIResponse(ctx, http.StatusBadRequest, "error",
			"Failed to validate payload", u.GetErrorData(err))
		return
	}

	mode, err := ctrl.catalog.FindByName(ctx, payload.Mode)
	if err != nil {
		translateError(ctx, "Failed to resolve payment mode", err)
		return
	}
	if !mode.LiveForPayin {
		u.APIResponse(ctx, http.StatusBadRequest, "error", "Failed to compute quote", []types.ErrorData{{
			Field:   "mode",
			Message: "payment mode is not live for payin",
		}})
		return
	}

	if mode.MaxTransactionAmount.IsPositive() && payload.BaseAmount.GreaterThan(mode.MaxTransactionAmount) {
		translateError(ctx, "Failed to compute quote", settlement.ErrOutOfRange{
			Min: ctrl.calculator.MinAmount(),
			Max: mode.MaxTransactionAmount,
		})
		return
	}

	minPercentage, err := ctrl.rateTable.ResolveRate(payload.Mode, payload.Tier)
	if err != nil {
		translateError(ctx, "Failed to resolve rate", err)
		return
	}

	if limit, err := ctrl.rateTable.ResolveLimit(payload.Mode, payload.Tier); err == nil {
		if payload.BaseAmount.GreaterThan(limit) {
			translateError(ctx, "Failed to compute quote", settlement.ErrOutOfRange{
				Min: ctrl.calculator.MinAmount(),
				Max: limit,
			})
			return
		}
	}

	quote, err := ctrl.calculator.Quote(payload.BaseAmount, payload.Percentage, minPercentage)
	if err != nil {
		translateError(ctx, "Failed to compute quote", err)
		return
	}

	u.APIResponse(ctx, http.StatusOK, "success", "OK", types.QuoteResponse{
		Quote:   *quote,
		Presets: ctrl.calculator.Presets(minPercentage),
	})
}
