package settlement

import (
	"fmt"

	"github.com/shopspring/decimal"
)

type (
	// ErrOutOfRange means the base amount falls outside the configured window
	ErrOutOfRange struct{ Min, Max decimal.Decimal }
	// ErrRateNotFound means the rate table has no entry for the mode/tier pair
	ErrRateNotFound struct {
		Mode string
		Tier int
	}
)

func (e ErrOutOfRange) Error() string {
	return fmt.Sprintf("amount must be between %s and %s", e.Min.String(), e.Max.String())
}

func (e ErrRateNotFound) Error() string {
	return fmt.Sprintf("no rate configured for mode %q at tier %d", e.Mode, e.Tier)
}
