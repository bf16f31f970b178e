package config

import (
	"fmt"
	"os"

	"github.com/spf13/viper"
)

type Configuration struct {
	Server     ServerConfiguration
	Database   DatabaseConfiguration
	Auth       AuthConfiguration
	Provider   ProviderConfiguration
	Settlement SettlementConfiguration
}

// SetupConfig reads the .env configuration file into viper. Values already
// present in the environment take precedence over the file.
func SetupConfig() error {
	var configuration *Configuration

	viper.AddConfigPath("../../../..")
	viper.AddConfigPath("../../..")
	viper.AddConfigPath("../..")
	viper.AddConfigPath("..")
	viper.AddConfigPath(".")

	envFilePath := os.Getenv("ENV_FILE_PATH")
	if envFilePath == "" {
		envFilePath = ".env"
	}

	viper.SetConfigName(envFilePath)
	viper.SetConfigType("env")

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		fmt.Printf("Error to reading config file, %s", err)
		return err
	}

	err := viper.Unmarshal(&configuration)
	if err != nil {
		fmt.Printf("error to decode, %v", err)
		return err
	}

	return nil
}

func init() {
	initAuthDefaults()

	if err := SetupConfig(); err != nil {
		fmt.Printf("config SetupConfig() error: %s\n", err)
	}
}
