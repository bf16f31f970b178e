package settlement

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/shopspring/decimal"
	"github.com/xeipuuv/gojsonschema"
)

//go:embed ratetables.json
var rateTablesJSON []byte

//go:embed ratetables_schema.json
var rateTablesSchemaJSON []byte

type rateEntry struct {
	Tier          int             `json:"tier"`
	MinPercentage decimal.Decimal `json:"min_percentage"`
}

type limitEntry struct {
	Tier      int             `json:"tier"`
	MaxAmount decimal.Decimal `json:"max_amount"`
}

type modeTable struct {
	Name   string       `json:"name"`
	Rates  []rateEntry  `json:"rates"`
	Limits []limitEntry `json:"limits"`
}

type rateTablesFile struct {
	Modes []modeTable `json:"modes"`
}

type tierKey struct {
	mode string
	tier int
}

// RateTable is the read-only reference data mapping (mode, tier) to the
// minimum service-charge percentage and the per-transaction amount limit.
// It is loaded once from the embedded tables and safely shared across all
// concurrent calculations.
type RateTable struct {
	rates  map[tierKey]decimal.Decimal
	limits map[tierKey]decimal.Decimal
}

var (
	loadOnce    sync.Once
	loadedTable *RateTable
	loadErr     error
)

// validateRateTables checks a rate-table payload against the embedded JSON
// schema before it is trusted by the money-math path
func validateRateTables(data []byte) error {
	schemaLoader := gojsonschema.NewBytesLoader(rateTablesSchemaJSON)
	documentLoader := gojsonschema.NewBytesLoader(data)
	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return fmt.Errorf("failed to validate schema: %w", err)
	}
	if !result.Valid() {
		var errs []string
		for _, e := range result.Errors() {
			errs = append(errs, e.String())
		}
		return fmt.Errorf("schema validation failed: %v", errs)
	}
	return nil
}

// LoadRateTable validates and parses the embedded rate and limit tables.
// Mode names are normalized on load; a duplicate normalized name keeps the
// first entry.
func LoadRateTable() (*RateTable, error) {
	loadOnce.Do(func() {
		if err := validateRateTables(rateTablesJSON); err != nil {
			loadErr = fmt.Errorf("rate tables rejected: %w", err)
			return
		}

		var file rateTablesFile
		if err := json.Unmarshal(rateTablesJSON, &file); err != nil {
			loadErr = fmt.Errorf("failed to parse rate tables: %w", err)
			return
		}

		table := &RateTable{
			rates:  make(map[tierKey]decimal.Decimal),
			limits: make(map[tierKey]decimal.Decimal),
		}
		for _, mode := range file.Modes {
			name := NormalizeModeName(mode.Name)
			for _, entry := range mode.Rates {
				key := tierKey{mode: name, tier: entry.Tier}
				if _, ok := table.rates[key]; !ok {
					table.rates[key] = entry.MinPercentage
				}
			}
			for _, entry := range mode.Limits {
				key := tierKey{mode: name, tier: entry.Tier}
				if _, ok := table.limits[key]; !ok {
					table.limits[key] = entry.MaxAmount
				}
			}
		}
		loadedTable = table
	})
	return loadedTable, loadErr
}

// ResolveRate returns the minimum percentage for a mode/tier pair
func (t *RateTable) ResolveRate(modeName string, tier int) (decimal.Decimal, error) {
	rate, ok := t.rates[tierKey{mode: NormalizeModeName(modeName), tier: tier}]
	if !ok {
		return decimal.Zero, ErrRateNotFound{Mode: modeName, Tier: tier}
	}
	return rate, nil
}

// ResolveLimit returns the per-transaction amount limit for a mode/tier pair
func (t *RateTable) ResolveLimit(modeName string, tier int) (decimal.Decimal, error) {
	limit, ok := t.limits[tierKey{mode: NormalizeModeName(modeName), tier: tier}]
	if !ok {
		return decimal.Zero, ErrRateNotFound{Mode: modeName, Tier: tier}
	}
	return limit, nil
}
