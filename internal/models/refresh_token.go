package models

import (
	"time"

	"github.com/google/uuid"
)

type RefreshToken struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	OrganizationID string    `gorm:"size:50;not null;index" json:"-"`
	UserID         uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	TokenHash      string    `gorm:"uniqueIndex;not null;size:64" json:"-"`
	ExpiresAt      time.Time `gorm:"not null" json:"expires_at"`
	Revoked        bool      `gorm:"default:false" json:"revoked"`
	CreatedAt      time.Time `json:"created_at"`
	User           User      `gorm:"foreignKey:UserID" json:"-"`
}
