package routers

import (
	"github.com/gin-gonic/gin"
	"github.com/slpe/agentpay/config"
	"github.com/slpe/agentpay/controllers"
	"github.com/slpe/agentpay/routers/middleware"
	"github.com/slpe/agentpay/services/kyc/provider"
)

// Routes function registers all routes
func Routes() *gin.Engine {
	conf := config.ServerConfig()
	if !conf.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	route := gin.New()
	route.Use(gin.Logger())
	route.Use(gin.Recovery())
	route.Use(middleware.CORSMiddleware())
	route.Use(middleware.RateLimitMiddleware())

	gateway := provider.NewProviderService()
	kycCtrl := controllers.NewKycController(gateway)
	bankCtrl := controllers.NewBankController(gateway)
	settlementCtrl := controllers.NewSettlementController()

	v1 := route.Group("/v1", middleware.JWTMiddleware)

	v1.GET("kyc/identity/send-otp", kycCtrl.SendIdentityOtp)
	v1.POST("kyc/identity/verify-otp", kycCtrl.VerifyIdentityOtp)
	v1.POST("kyc/tax-id/verify", kycCtrl.VerifyTaxId)
	v1.GET("kyc/status", kycCtrl.GetKycStatus)
	v1.GET("kyc/history", kycCtrl.GetKycHistory)

	v1.POST("bank/accounts", bankCtrl.AddBankAccount)
	v1.GET("bank/accounts", bankCtrl.ListBankAccounts)
	v1.DELETE("bank/accounts/:id", bankCtrl.DeleteBankAccount)
	v1.PATCH("bank/accounts/:id/primary", bankCtrl.SetPrimaryBankAccount)

	v1.GET("payment-modes", settlementCtrl.GetPaymentModes)
	v1.POST("settlement/quote", settlementCtrl.GetSettlementQuote)

	return route
}
