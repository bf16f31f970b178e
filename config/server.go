package config

import (
	"github.com/spf13/viper"
)

// ServerConfiguration type defines the server configurations
type ServerConfiguration struct {
	Debug              bool
	Host               string
	Port               string
	Timezone           string
	ServerURL          string
	Environment        string
	SentryDSN          string
	AllowedHosts       string
	RateLimitPerSecond int
}

// ServerConfig sets the server configuration
func ServerConfig() *ServerConfiguration {
	viper.SetDefault("DEBUG", true)
	viper.SetDefault("SERVER_HOST", "127.0.0.1")
	viper.SetDefault("SERVER_PORT", "8000")
	viper.SetDefault("SERVER_TIMEZONE", "Asia/Kolkata")
	viper.SetDefault("SERVER_URL", "http://localhost:8000")
	viper.SetDefault("ENVIRONMENT", "local")
	viper.SetDefault("ALLOWED_HOSTS", "*")
	viper.SetDefault("RATE_LIMIT_PER_SECOND", 20)

	return &ServerConfiguration{
		Debug:              viper.GetBool("DEBUG"),
		Host:               viper.GetString("SERVER_HOST"),
		Port:               viper.GetString("SERVER_PORT"),
		Timezone:           viper.GetString("SERVER_TIMEZONE"),
		ServerURL:          viper.GetString("SERVER_URL"),
		Environment:        viper.GetString("ENVIRONMENT"),
		SentryDSN:          viper.GetString("SENTRY_DSN"),
		AllowedHosts:       viper.GetString("ALLOWED_HOSTS"),
		RateLimitPerSecond: viper.GetInt("RATE_LIMIT_PER_SECOND"),
	}
}
