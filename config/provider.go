package config

import (
	"time"

	"github.com/spf13/viper"
)

// ProviderConfiguration type defines the verification provider settings
type ProviderConfiguration struct {
	BaseUrl        string
	ApiKey         string
	ApiSecret      string
	RequestTimeout time.Duration
	OtpValidity    time.Duration
	CatalogUrl     string
}

// ProviderConfig sets the verification provider configuration
func ProviderConfig() *ProviderConfiguration {
	viper.SetDefault("PROVIDER_BASE_URL", "https://api.verification.test")
	viper.SetDefault("PROVIDER_REQUEST_TIMEOUT", 30)
	viper.SetDefault("PROVIDER_OTP_VALIDITY", 600)
	viper.SetDefault("PROVIDER_CATALOG_URL", "")

	return &ProviderConfiguration{
		BaseUrl:        viper.GetString("PROVIDER_BASE_URL"),
		ApiKey:         viper.GetString("PROVIDER_API_KEY"),
		ApiSecret:      viper.GetString("PROVIDER_API_SECRET"),
		RequestTimeout: time.Duration(viper.GetInt("PROVIDER_REQUEST_TIMEOUT")) * time.Second,
		OtpValidity:    time.Duration(viper.GetInt("PROVIDER_OTP_VALIDITY")) * time.Second,
		CatalogUrl:     viper.GetString("PROVIDER_CATALOG_URL"),
	}
}
