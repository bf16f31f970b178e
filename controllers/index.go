package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	kycErrors "github.com/slpe/agentpay/services/kyc/errors"
	"github.com/slpe/agentpay/services/settlement"
	"github.com/slpe/agentpay/types"
	u "github.com/slpe/agentpay/utils"
)

// subjectID returns the authenticated subject from the request context
func subjectID(ctx *gin.Context) (string, bool) {
	id := ctx.GetString("subject_id")
	if id == "" {
		u.APIResponse(ctx, http.StatusUnauthorized, "error", "Invalid or missing credential", nil)
		return "", false
	}
	return id, true
}

// translateError maps the typed error taxonomy to HTTP responses. Nothing is
// swallowed; every failure surfaces as a consistent envelope.
func translateError(ctx *gin.Context, message string, err error) {
	var (
		validation   kycErrors.ErrValidation
		precondition kycErrors.ErrPreconditionFailed
		invalidTxn   kycErrors.ErrInvalidTransaction
		unreachable  kycErrors.ErrProviderUnreachable
		badResponse  kycErrors.ErrProviderResponse
		notFound     kycErrors.ErrNotFound
		outOfRange   settlement.ErrOutOfRange
		rateNotFound settlement.ErrRateNotFound
	)

	switch {
	case errors.As(err, &validation):
		u.APIResponse(ctx, http.StatusBadRequest, "error", message, []types.ErrorData{{
			Field:   validation.Field,
			Message: validation.Message,
		}})
	case errors.As(err, &precondition):
		u.APIResponse(ctx, http.StatusPreconditionFailed, "error", err.Error(), nil)
	case errors.As(err, &invalidTxn):
		u.APIResponse(ctx, http.StatusBadRequest, "error", err.Error(), nil)
	case errors.As(err, &outOfRange):
		u.APIResponse(ctx, http.StatusBadRequest, "error", err.Error(), nil)
	case errors.As(err, &notFound), errors.As(err, &rateNotFound):
		u.APIResponse(ctx, http.StatusNotFound, "error", err.Error(), nil)
	case errors.As(err, &unreachable), errors.As(err, &badResponse):
		u.APIResponse(ctx, http.StatusBadGateway, "error", message, err.Error())
	default:
		u.APIResponse(ctx, http.StatusInternalServerError, "error", message, nil)
	}
}
