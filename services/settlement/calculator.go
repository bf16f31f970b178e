package settlement

import (
	"github.com/shopspring/decimal"
	"github.com/slpe/agentpay/config"
	"github.com/slpe/agentpay/types"
)

// Preset labels offered on top of the rate floor
const (
	PresetMinimum   = "Minimum"
	PresetPreferred = "Preferred"
	PresetPremium   = "Premium"
)

var oneHundred = decimal.NewFromInt(100)

// Calculator computes settlement quotes. It is a pure function layer: no
// side effects, no network calls, and its reference data never changes after
// load, so a single instance is shared across all requests.
type Calculator struct {
	conf *config.SettlementConfiguration
}

// NewCalculator creates a settlement calculator
func NewCalculator() *Calculator {
	return &Calculator{conf: config.SettlementConfig()}
}

// MinAmount returns the lower bound of the accepted amount window
func (c *Calculator) MinAmount() decimal.Decimal {
	return c.conf.MinAmount
}

// MaxAmount returns the upper bound of the accepted amount window
func (c *Calculator) MaxAmount() decimal.Decimal {
	return c.conf.MaxAmount
}

// TransferFee applies the configured step function to the base amount
func (c *Calculator) TransferFee(baseAmount decimal.Decimal) decimal.Decimal {
	switch {
	case baseAmount.LessThan(c.conf.FeeSlabOneLimit):
		return c.conf.FeeSlabOne
	case baseAmount.LessThanOrEqual(c.conf.FeeSlabTwoLimit):
		return c.conf.FeeSlabTwo
	default:
		return c.conf.FeeSlabThree
	}
}

// Quote computes the settlement breakdown for a base amount. A percentage
// below the floor is clamped up to it rather than rejected. The returned
// components always sum exactly to the base amount.
func (c *Calculator) Quote(baseAmount, percentage, minPercentage decimal.Decimal) (*types.SettlementQuote, error) {
	if baseAmount.LessThan(c.conf.MinAmount) || baseAmount.GreaterThan(c.conf.MaxAmount) {
		return nil, ErrOutOfRange{Min: c.conf.MinAmount, Max: c.conf.MaxAmount}
	}

	applied := percentage
	if applied.LessThan(minPercentage) {
		applied = minPercentage
	}

	serviceCharge := baseAmount.Mul(applied).Div(oneHundred).Round(2)
	transferFee := c.TransferFee(baseAmount)
	settlementAmount := baseAmount.Sub(serviceCharge).Sub(transferFee)

	return &types.SettlementQuote{
		BaseAmount:        baseAmount,
		PercentageApplied: applied,
		ServiceCharge:     serviceCharge,
		TransferFee:       transferFee,
		SettlementAmount:  settlementAmount,
	}, nil
}

// Presets returns the percentage shortcuts offered for a rate floor:
// Minimum is the floor itself, Preferred is the fixed preferred percentage
// when it clears the floor, Premium is the floor plus one.
func (c *Calculator) Presets(minPercentage decimal.Decimal) []types.RatePreset {
	presets := []types.RatePreset{
		{Label: PresetMinimum, Percentage: minPercentage},
	}
	if c.conf.PreferredPercentage.GreaterThanOrEqual(minPercentage) {
		presets = append(presets, types.RatePreset{Label: PresetPreferred, Percentage: c.conf.PreferredPercentage})
	}
	presets = append(presets, types.RatePreset{Label: PresetPremium, Percentage: minPercentage.Add(decimal.NewFromInt(1))})
	return presets
}
