package config

import (
	"github.com/spf13/viper"
)

// DatabaseConfiguration type defines the database configurations
type DatabaseConfiguration struct {
	Driver string
	Dsn    string
}

// DBConfig returns the database DSN
func DBConfig() string {
	viper.SetDefault("DATABASE_DRIVER", "sqlite")
	viper.SetDefault("DATABASE_DSN", "agentpay.db")

	return viper.GetString("DATABASE_DSN")
}
