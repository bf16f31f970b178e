package settlement

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestCalculator(t *testing.T) {
	calc := NewCalculator()

	t.Run("Quote computes the reference travel scenario", func(t *testing.T) {
		quote, err := calc.Quote(
			decimal.NewFromInt(10000),
			decimal.NewFromFloat(1.88),
			decimal.NewFromFloat(1.88),
		)
		assert.NoError(t, err)
		assert.True(t, quote.ServiceCharge.Equal(decimal.NewFromFloat(188.00)), "service charge was %s", quote.ServiceCharge)
		assert.True(t, quote.TransferFee.Equal(decimal.NewFromInt(10)), "transfer fee was %s", quote.TransferFee)
		assert.True(t, quote.SettlementAmount.Equal(decimal.NewFromFloat(9802.00)), "settlement was %s", quote.SettlementAmount)
	})

	t.Run("Components always sum to the base amount", func(t *testing.T) {
		amounts := []int64{1000, 9999, 24999, 25000, 50000, 50001, 100000}
		percentages := []float64{1.1, 1.88, 2.0, 3.33}

		for _, amount := range amounts {
			for _, pct := range percentages {
				quote, err := calc.Quote(
					decimal.NewFromInt(amount),
					decimal.NewFromFloat(pct),
					decimal.NewFromFloat(1.1),
				)
				assert.NoError(t, err)

				total := quote.ServiceCharge.Add(quote.TransferFee).Add(quote.SettlementAmount)
				assert.True(t, total.Equal(quote.BaseAmount),
					"amount %d pct %v: %s + %s + %s != %s",
					amount, pct, quote.ServiceCharge, quote.TransferFee, quote.SettlementAmount, quote.BaseAmount)
				assert.True(t, quote.SettlementAmount.LessThanOrEqual(quote.BaseAmount))
			}
		}
	})

	t.Run("Transfer fee steps at the slab boundaries", func(t *testing.T) {
		cases := map[int64]int64{
			24999: 10,
			25000: 15,
			50000: 15,
			50001: 20,
		}
		for amount, fee := range cases {
			got := calc.TransferFee(decimal.NewFromInt(amount))
			assert.True(t, got.Equal(decimal.NewFromInt(fee)), "amount %d: fee was %s", amount, got)
		}
	})

	t.Run("Percentage below the floor clamps up, never errors", func(t *testing.T) {
		min := decimal.NewFromFloat(1.88)
		quote, err := calc.Quote(decimal.NewFromInt(10000), min.Sub(decimal.NewFromFloat(0.5)), min)
		assert.NoError(t, err)
		assert.True(t, quote.PercentageApplied.Equal(min))
		assert.True(t, quote.ServiceCharge.Equal(decimal.NewFromFloat(188.00)))
	})

	t.Run("Amounts outside the window fail", func(t *testing.T) {
		_, err := calc.Quote(decimal.NewFromInt(999), decimal.NewFromInt(2), decimal.NewFromInt(1))
		assert.Error(t, err)
		assert.IsType(t, ErrOutOfRange{}, err)

		_, err = calc.Quote(decimal.NewFromInt(100001), decimal.NewFromInt(2), decimal.NewFromInt(1))
		assert.Error(t, err)
		assert.IsType(t, ErrOutOfRange{}, err)
	})

	t.Run("Presets offer minimum, preferred and premium", func(t *testing.T) {
		presets := calc.Presets(decimal.NewFromFloat(1.88))
		assert.Len(t, presets, 3)
		assert.Equal(t, PresetMinimum, presets[0].Label)
		assert.True(t, presets[0].Percentage.Equal(decimal.NewFromFloat(1.88)))
		assert.Equal(t, PresetPreferred, presets[1].Label)
		assert.True(t, presets[1].Percentage.Equal(decimal.NewFromInt(2)))
		assert.Equal(t, PresetPremium, presets[2].Label)
		assert.True(t, presets[2].Percentage.Equal(decimal.NewFromFloat(2.88)))
	})

	t.Run("Preferred preset is omitted below the floor", func(t *testing.T) {
		presets := calc.Presets(decimal.NewFromFloat(2.12))
		assert.Len(t, presets, 2)
		for _, preset := range presets {
			assert.NotEqual(t, PresetPreferred, preset.Label)
		}
	})
}
