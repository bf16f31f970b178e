package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BankAccount is a payout destination owned exclusively by its subject.
// BeneficiaryName is sourced from the subject's verified identity record,
// never from free input.
type BankAccount struct {
	ID              string    `json:"id" gorm:"primaryKey"`
	SubjectID       string    `json:"subject_id" gorm:"index;not null"`
	AccountNumber   string    `json:"account_number" gorm:"not null"`
	IfscCode        string    `json:"ifsc_code" gorm:"not null"`
	BeneficiaryName string    `json:"beneficiary_name" gorm:"not null"`
	Phone           string    `json:"phone"`
	Verified        bool      `json:"verified" gorm:"default:false"`
	IsPrimary       bool      `json:"is_primary" gorm:"default:false"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func (a *BankAccount) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}
