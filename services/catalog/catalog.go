package catalog

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"

	fastshot "github.com/opus-domini/fast-shot"
	"github.com/shopspring/decimal"
	"github.com/slpe/agentpay/config"
	"github.com/slpe/agentpay/models"
	kycErrors "github.com/slpe/agentpay/services/kyc/errors"
	"github.com/slpe/agentpay/services/settlement"
	"github.com/slpe/agentpay/utils"
	"github.com/slpe/agentpay/utils/logger"
	"github.com/xeipuuv/gojsonschema"
	"gorm.io/gorm"
)

//go:embed modes.json
var seedModesJSON []byte

//go:embed modes_schema.json
var modesSchemaJSON []byte

type modeEntry struct {
	Name                 string          `json:"name"`
	Category             string          `json:"category"`
	LiveForPayin         bool            `json:"live_for_payin"`
	MaxTransactionAmount decimal.Decimal `json:"max_transaction_amount"`
}

type modesFile struct {
	Modes []modeEntry `json:"modes"`
}

// validateModesPayload checks a catalog payload against the embedded JSON
// schema so a malformed entry never reaches the table, whether it came from
// the seed file or from upstream
func validateModesPayload(data []byte) error {
	schemaLoader := gojsonschema.NewBytesLoader(modesSchemaJSON)
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

// CatalogService maintains the payment-mode catalog. The catalog is seeded
// from the embedded reference data and may be refreshed from the upstream
// catalog endpoint; refreshes are tagged with a generation counter so a slow
// superseded refresh can never clobber a newer one.
type CatalogService struct {
	db         *gorm.DB
	conf       *config.ProviderConfiguration
	generation utils.Generation
}

// NewCatalogService creates a payment-mode catalog on the given database
func NewCatalogService(db *gorm.DB) *CatalogService {
	return &CatalogService{
		db:   db,
		conf: config.ProviderConfig(),
	}
}

// Seed loads the embedded catalog into an empty payment_modes table
func (s *CatalogService) Seed(ctx context.Context) error {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.PaymentMode{}).Count(&count).Error; err != nil {
		return kycErrors.ErrDatabase{Err: err}
	}
	if count > 0 {
		return nil
	}

	if err := validateModesPayload(seedModesJSON); err != nil {
		return fmt.Errorf("embedded catalog rejected: %w", err)
	}

	var file modesFile
	if err := json.Unmarshal(seedModesJSON, &file); err != nil {
		return fmt.Errorf("failed to parse embedded catalog: %w", err)
	}
	return s.apply(ctx, file.Modes)
}

// List returns the catalog, live entries first
func (s *CatalogService) List(ctx context.Context) ([]models.PaymentMode, error) {
	var modes []models.PaymentMode
	err := s.db.WithContext(ctx).
		Order("live_for_payin DESC, name ASC").
		Find(&modes).Error
	if err != nil {
		return nil, kycErrors.ErrDatabase{Err: err}
	}
	return modes, nil
}

// FindByName resolves a catalog entry by normalized name, first match wins
func (s *CatalogService) FindByName(ctx context.Context, name string) (*models.PaymentMode, error) {
	var mode models.PaymentMode
	err := s.db.WithContext(ctx).
		Where("normalized_name = ?", settlement.NormalizeModeName(name)).
		Order("created_at ASC").
		First(&mode).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, kycErrors.ErrNotFound{Resource: "payment mode"}
		}
		return nil, kycErrors.ErrDatabase{Err: err}
	}
	return &mode, nil
}

// Refresh re-fetches the catalog from the upstream endpoint. The fetch is
// tagged with the current generation before the network call; if another
// refresh started meanwhile the stale result is discarded silently.
func (s *CatalogService) Refresh(ctx context.Context) error {
	if s.conf.CatalogUrl == "" {
		return nil
	}

	tag := s.generation.Next()

	res, err := fastshot.NewClient(s.conf.CatalogUrl).
		Config().SetTimeout(s.conf.RequestTimeout).
		Header().Add("x-api-key", s.conf.ApiKey).
		Build().GET("/v1/payment-modes").
		Send()
	if err != nil {
		return kycErrors.ErrProviderUnreachable{Err: err}
	}
	if res.Status().IsError() {
		return kycErrors.ErrProviderUnreachable{Err: fmt.Errorf("HTTP error %d", res.Status().Code())}
	}

	body, err := res.Body().AsString()
	if err != nil {
		return kycErrors.ErrProviderResponse{Err: err}
	}
	if err := validateModesPayload([]byte(body)); err != nil {
		return kycErrors.ErrProviderResponse{Err: err}
	}

	var file modesFile
	if err := json.Unmarshal([]byte(body), &file); err != nil {
		return kycErrors.ErrProviderResponse{Err: err}
	}

	if !s.generation.IsCurrent(tag) {
		logger.Warnf("catalog refresh discarded: generation %d superseded", tag)
		return nil
	}

	return s.apply(ctx, file.Modes)
}

func (s *CatalogService) apply(ctx context.Context, entries []modeEntry) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, entry := range entries {
			normalized := settlement.NormalizeModeName(entry.Name)

			var existing models.PaymentMode
			err := tx.Where("normalized_name = ?", normalized).First(&existing).Error
			if err == gorm.ErrRecordNotFound {
				mode := &models.PaymentMode{
					Name:                 entry.Name,
					NormalizedName:       normalized,
					Category:             entry.Category,
					LiveForPayin:         entry.LiveForPayin,
					MaxTransactionAmount: entry.MaxTransactionAmount,
				}
				if err := tx.Create(mode).Error; err != nil {
					return kycErrors.ErrDatabase{Err: err}
				}
				continue
			}
			if err != nil {
				return kycErrors.ErrDatabase{Err: err}
			}

			updates := map[string]interface{}{
				"category":               entry.Category,
				"live_for_payin":         entry.LiveForPayin,
				"max_transaction_amount": entry.MaxTransactionAmount,
			}
			if err := tx.Model(&existing).Updates(updates).Error; err != nil {
				return kycErrors.ErrDatabase{Err: err}
			}
		}
		return nil
	})
}
