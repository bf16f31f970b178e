package controllers

import (
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/jarcoal/httpmock"
	"github.com/slpe/agentpay/models"
	"github.com/slpe/agentpay/types"
	"github.com/slpe/agentpay/utils/test"
	"github.com/stretchr/testify/assert"
)

const providerBaseUrl = "https://api.verification.test"

func mockIdentityOtpSend(refID string) {
	httpmock.RegisterResponder("POST", providerBaseUrl+"/v1/identity/otp",
		func(r *http.Request) (*http.Response, error) {
			return httpmock.NewJsonResponse(200, map[string]interface{}{
				"ref_id": refID,
			})
		},
	)
}

func mockIdentityOtpVerify(name, dateOfBirth string) {
	httpmock.RegisterResponder("POST", providerBaseUrl+"/v1/identity/otp/verify",
		func(r *http.Request) (*http.Response, error) {
			return httpmock.NewJsonResponse(200, map[string]interface{}{
				"status":        "VALID",
				"name":          name,
				"date_of_birth": dateOfBirth,
				"gender":        "F",
				"address":       "12 Main Road",
			})
		},
	)
}

func mockTaxIdVerify(status string, nameMatch bool) {
	httpmock.RegisterResponder("POST", providerBaseUrl+"/v1/tax/verify",
		func(r *http.Request) (*http.Response, error) {
			return httpmock.NewJsonResponse(200, map[string]interface{}{
				"status":     status,
				"name_match": nameMatch,
			})
		},
	)
}

func TestKycController(t *testing.T) {
	httpmock.Activate()
	defer httpmock.DeactivateAndReset()

	router := setupTestRouter(t)

	t.Run("SendIdentityOtp returns the challenge refId", func(t *testing.T) {
		headers := authHeaders(t, uuid.NewString())
		mockIdentityOtpSend("otp-ref-100")

		res, err := test.PerformRequest(t, "GET", "/v1/kyc/identity/send-otp?identifier=123456789012", nil, headers, router)
		assert.NoError(t, err)
		assert.Equal(t, http.StatusOK, res.Code)

		response := parseResponse(t, res.Body.Bytes())
		assert.Equal(t, "success", response.Status)
		assert.Equal(t, "OTP sent successfully", response.Message)

		var challenge types.OtpChallenge
		decodeData(t, response.Data, &challenge)
		assert.Equal(t, "otp-ref-100", challenge.RefID)
	})

	t.Run("SendIdentityOtp rejects a malformed identifier", func(t *testing.T) {
		headers := authHeaders(t, uuid.NewString())

		res, err := test.PerformRequest(t, "GET", "/v1/kyc/identity/send-otp?identifier=1234", nil, headers, router)
		assert.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, res.Code)

		response := parseResponse(t, res.Body.Bytes())
		assert.Equal(t, "error", response.Status)

		var fields []types.ErrorData
		decodeData(t, response.Data, &fields)
		assert.Len(t, fields, 1)
		assert.Equal(t, "identifier", fields[0].Field)
	})

	t.Run("VerifyIdentityOtp completes the identity stage", func(t *testing.T) {
		subject := uuid.NewString()
		headers := authHeaders(t, subject)
		mockIdentityOtpSend("otp-ref-200")
		mockIdentityOtpVerify("Asha Rao", "1990-01-01")

		res, err := test.PerformRequest(t, "GET", "/v1/kyc/identity/send-otp?identifier=123456789012", nil, headers, router)
		assert.NoError(t, err)
		assert.Equal(t, http.StatusOK, res.Code)

		payload := types.VerifyOtpPayload{RefID: "otp-ref-200", Otp: "123456", Identifier: "123456789012"}
		res, err = test.PerformRequest(t, "POST", "/v1/kyc/identity/verify-otp", payload, headers, router)
		assert.NoError(t, err)
		assert.Equal(t, http.StatusOK, res.Code)

		response := parseResponse(t, res.Body.Bytes())
		assert.Equal(t, "Identity verified successfully", response.Message)

		var status types.KycStatus
		decodeData(t, response.Data, &status)
		assert.True(t, status.Verified)
		assert.Equal(t, "Asha Rao", status.Name)
		assert.Equal(t, "XXXX9012", status.MaskedIdentifier)

		// replaying the same refId is rejected
		res, err = test.PerformRequest(t, "POST", "/v1/kyc/identity/verify-otp", payload, headers, router)
		assert.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, res.Code)
	})

	t.Run("VerifyIdentityOtp validates the payload shape", func(t *testing.T) {
		headers := authHeaders(t, uuid.NewString())

		res, err := test.PerformRequest(t, "POST", "/v1/kyc/identity/verify-otp", map[string]interface{}{
			"otp": "123456",
		}, headers, router)
		assert.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, res.Code)

		response := parseResponse(t, res.Body.Bytes())
		assert.Equal(t, "Failed to validate payload", response.Message)
	})

	t.Run("VerifyTaxId requires a verified identity first", func(t *testing.T) {
		headers := authHeaders(t, uuid.NewString())
		mockTaxIdVerify("valid", true)

		payload := types.VerifyTaxIdPayload{TaxID: "ABCDE1234F", Name: "Asha Rao"}
		res, err := test.PerformRequest(t, "POST", "/v1/kyc/tax-id/verify", payload, headers, router)
		assert.NoError(t, err)
		assert.Equal(t, http.StatusPreconditionFailed, res.Code)
	})

	t.Run("full onboarding advances status and keeps history", func(t *testing.T) {
		subject := uuid.NewString()
		headers := authHeaders(t, subject)
		mockIdentityOtpSend("otp-ref-300")
		mockIdentityOtpVerify("Asha Rao", "1990-01-01")
		mockTaxIdVerify("valid", true)

		res, err := test.PerformRequest(t, "GET", "/v1/kyc/status", nil, headers, router)
		assert.NoError(t, err)
		assert.Equal(t, http.StatusOK, res.Code)

		var status types.SubjectStatus
		decodeData(t, parseResponse(t, res.Body.Bytes()).Data, &status)
		assert.Equal(t, types.StageUnverified, status.Stage)

		_, err = test.PerformRequest(t, "GET", "/v1/kyc/identity/send-otp?identifier=123456789012", nil, headers, router)
		assert.NoError(t, err)

		payload := types.VerifyOtpPayload{RefID: "otp-ref-300", Otp: "123456", Identifier: "123456789012"}
		res, err = test.PerformRequest(t, "POST", "/v1/kyc/identity/verify-otp", payload, headers, router)
		assert.NoError(t, err)
		assert.Equal(t, http.StatusOK, res.Code)

		taxPayload := types.VerifyTaxIdPayload{TaxID: "ABCDE1234F", Name: "Asha Rao"}
		res, err = test.PerformRequest(t, "POST", "/v1/kyc/tax-id/verify", taxPayload, headers, router)
		assert.NoError(t, err)
		assert.Equal(t, http.StatusOK, res.Code)

		res, err = test.PerformRequest(t, "GET", "/v1/kyc/status", nil, headers, router)
		assert.NoError(t, err)
		decodeData(t, parseResponse(t, res.Body.Bytes()).Data, &status)
		assert.Equal(t, types.StageTaxIdVerified, status.Stage)
		assert.True(t, status.IdentityVerified)
		assert.True(t, status.TaxIdVerified)
		assert.Equal(t, "Asha Rao", status.CapturedName)

		res, err = test.PerformRequest(t, "GET", "/v1/kyc/history?type=tax_id", nil, headers, router)
		assert.NoError(t, err)
		assert.Equal(t, http.StatusOK, res.Code)

		var history []models.KycRecord
		decodeData(t, parseResponse(t, res.Body.Bytes()).Data, &history)
		assert.Len(t, history, 1)
		assert.True(t, history[0].Verified)
	})

	t.Run("GetKycHistory rejects an unknown record type", func(t *testing.T) {
		headers := authHeaders(t, uuid.NewString())

		res, err := test.PerformRequest(t, "GET", "/v1/kyc/history?type=passport", nil, headers, router)
		assert.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, res.Code)
	})
}
