package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Subject is a user or managed customer going through payout onboarding.
// Tier is an ordinal rank indexing the rate and limit tables; a lower
// number means higher privilege.
type Subject struct {
	ID        string    `json:"id" gorm:"primaryKey"`
	Tier      int       `json:"tier" gorm:"not null;default:7"`
	Phone     string    `json:"phone"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (s *Subject) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}
