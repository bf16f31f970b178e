package utils

import (
	"regexp"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/slpe/agentpay/types"
)

var (
	identifierRegex = regexp.MustCompile(`^[0-9]{12}$`)
	taxIdRegex      = regexp.MustCompile(`^[A-Z]{5}[0-9]{4}[A-Z]{1}$`)
	ifscRegex       = regexp.MustCompile(`^[A-Z]{4}0[A-Z0-9]{6}$`)
	phoneRegex      = regexp.MustCompile(`^[0-9]{10}$`)
)

// APIResponse writes the uniform response envelope
func APIResponse(ctx *gin.Context, httpCode int, status string, message string, data interface{}) {
	ctx.JSON(httpCode, types.Response{
		Status:  status,
		Message: message,
		Data:    data,
	})
}

// GetErrorData returns a list of error data from a binding error
func GetErrorData(err error) []types.ErrorData {
	var errorData []types.ErrorData
	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		for _, fe := range validationErrors {
			errorData = append(errorData, types.ErrorData{
				Field:   fe.Field(),
				Message: getErrorMsg(fe),
			})
		}
	} else {
		errorData = append(errorData, types.ErrorData{
			Field:   "",
			Message: err.Error(),
		})
	}
	return errorData
}

// getErrorMsg returns a human readable message for a validation failure
func getErrorMsg(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required"
	case "min":
		return "Must be at least " + fe.Param() + " characters"
	case "max":
		return "Must be at most " + fe.Param() + " characters"
	case "len":
		return "Must be exactly " + fe.Param() + " characters"
	default:
		return "Invalid value"
	}
}

// IsValidIdentifier reports whether the government identity number has the
// required 12-digit shape
func IsValidIdentifier(identifier string) bool {
	return identifierRegex.MatchString(identifier)
}

// IsValidTaxId reports whether the tax identifier matches the fixed-length
// alphanumeric pattern
func IsValidTaxId(taxID string) bool {
	return taxIdRegex.MatchString(strings.ToUpper(taxID))
}

// IsValidIfscCode reports whether the bank code matches the
// 4-letters + literal zero + 6-alphanumerics pattern
func IsValidIfscCode(ifsc string) bool {
	return ifscRegex.MatchString(strings.ToUpper(ifsc))
}

// IsValidPhoneNumber reports whether the phone number is exactly 10 digits
func IsValidPhoneNumber(phone string) bool {
	return phoneRegex.MatchString(phone)
}

// MaskIdentifier reduces an identifier to "XXXX" plus its last 4 digits.
// Every boundary that surfaces an identifier applies this rule; the full
// value is only ever seen by the verification provider.
func MaskIdentifier(value string) string {
	if len(value) <= 4 {
		return "XXXX" + value
	}
	return "XXXX" + value[len(value)-4:]
}
