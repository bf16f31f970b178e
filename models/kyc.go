package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// KycRecord is one verification attempt outcome. Records are append-only:
// a subject accumulates multiple records of the same type over time and the
// current status for a type is the verified record with the latest UpdatedAt.
// MaskedIdentifier holds only the last 4 digits; the full identifier is never
// persisted.
type KycRecord struct {
	ID               string    `json:"id" gorm:"primaryKey"`
	SubjectID        string    `json:"subject_id" gorm:"index;not null"`
	RecordType       string    `json:"record_type" gorm:"index;not null"` // identity, tax_id
	Verified         bool      `json:"verified" gorm:"default:false"`
	MaskedIdentifier string    `json:"masked_identifier"`
	Name             string    `json:"name"`
	DateOfBirth      string    `json:"date_of_birth"`
	Gender           string    `json:"gender"`
	Address          string    `json:"address"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

func (r *KycRecord) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}

// OtpTransaction is the ephemeral correlation token for an identity OTP
// challenge. A RefID is single use: Consumed flips to true exactly once, on
// the terminal verify call, whether that call succeeds or fails.
type OtpTransaction struct {
	RefID           string    `json:"ref_id" gorm:"primaryKey"`
	SubjectID       string    `json:"subject_id" gorm:"index;not null"`
	IdentifierValue string    `json:"-" gorm:"not null"`
	Consumed        bool      `json:"consumed" gorm:"default:false"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}
