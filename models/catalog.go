package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// PaymentMode is a catalog entry describing a payable product. NormalizedName
// is the lookup key used against the rate and transaction-limit tables.
type PaymentMode struct {
	ID                   string          `json:"id" gorm:"primaryKey"`
	Name                 string          `json:"name" gorm:"not null"`
	NormalizedName       string          `json:"normalized_name" gorm:"index;not null"`
	Category             string          `json:"category" gorm:"default:other"` // education, travel, insurance, other
	LiveForPayin         bool            `json:"live_for_payin" gorm:"default:false"`
	MaxTransactionAmount decimal.Decimal `json:"max_transaction_amount" gorm:"type:decimal(12,2)"`
	CreatedAt            time.Time       `json:"created_at"`
	UpdatedAt            time.Time       `json:"updated_at"`
}

func (m *PaymentMode) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}
