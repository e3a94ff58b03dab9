package models

import (
	"time"

	"github.com/google/uuid"
)

// User is an account belonging to one organization. Email is stored
// lowercased and is globally unique.
type User struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	OrganizationID string    `gorm:"size:50;not null;index" json:"organization_id"`
	Email          string    `gorm:"not null;size:255;uniqueIndex" json:"email"`
	Password       string    `gorm:"not null" json:"-"`
	Name           string    `gorm:"size:100;not null" json:"name"`
	Surname        string    `gorm:"size:100" json:"surname"`
	Role           string    `gorm:"size:20;default:'user'" json:"role"`
	Image          string    `gorm:"size:255" json:"image"`
	// Deactivated is cleared again on the next successful login.
	Deactivated bool      `gorm:"default:false" json:"deactivated"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
