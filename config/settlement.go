package config

import (
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// SettlementConfiguration type defines the settlement calculator settings.
// The transfer fee is a step function of the base amount: amounts below
// FeeSlabOneLimit pay FeeSlabOne, amounts up to and including FeeSlabTwoLimit
// pay FeeSlabTwo, and anything above pays FeeSlabThree.
type SettlementConfiguration struct {
	MinAmount           decimal.Decimal
	MaxAmount           decimal.Decimal
	FeeSlabOneLimit     decimal.Decimal
	FeeSlabTwoLimit     decimal.Decimal
	FeeSlabOne          decimal.Decimal
	FeeSlabTwo          decimal.Decimal
	FeeSlabThree        decimal.Decimal
	PreferredPercentage decimal.Decimal
}

// SettlementConfig sets the settlement configuration
func SettlementConfig() *SettlementConfiguration {
	viper.SetDefault("SETTLEMENT_MIN_AMOUNT", 1000)
	viper.SetDefault("SETTLEMENT_MAX_AMOUNT", 100000)
	viper.SetDefault("SETTLEMENT_FEE_SLAB_ONE_LIMIT", 25000)
	viper.SetDefault("SETTLEMENT_FEE_SLAB_TWO_LIMIT", 50000)
	viper.SetDefault("SETTLEMENT_FEE_SLAB_ONE", 10)
	viper.SetDefault("SETTLEMENT_FEE_SLAB_TWO", 15)
	viper.SetDefault("SETTLEMENT_FEE_SLAB_THREE", 20)
	viper.SetDefault("SETTLEMENT_PREFERRED_PERCENTAGE", 2)

	return &SettlementConfiguration{
		MinAmount:           decimal.NewFromFloat(viper.GetFloat64("SETTLEMENT_MIN_AMOUNT")),
		MaxAmount:           decimal.NewFromFloat(viper.GetFloat64("SETTLEMENT_MAX_AMOUNT")),
		FeeSlabOneLimit:     decimal.NewFromFloat(viper.GetFloat64("SETTLEMENT_FEE_SLAB_ONE_LIMIT")),
		FeeSlabTwoLimit:     decimal.NewFromFloat(viper.GetFloat64("SETTLEMENT_FEE_SLAB_TWO_LIMIT")),
		FeeSlabOne:          decimal.NewFromFloat(viper.GetFloat64("SETTLEMENT_FEE_SLAB_ONE")),
		FeeSlabTwo:          decimal.NewFromFloat(viper.GetFloat64("SETTLEMENT_FEE_SLAB_TWO")),
		FeeSlabThree:        decimal.NewFromFloat(viper.GetFloat64("SETTLEMENT_FEE_SLAB_THREE")),
		PreferredPercentage: decimal.NewFromFloat(viper.GetFloat64("SETTLEMENT_PREFERRED_PERCENTAGE")),
	}
}
