package models

import (
	"time"

	"github.com/google/uuid"
)

// Appointment is an agenda slot booked by one user. The slot key
// (subject name, start time, attention date) is unique per owner, not per
// organization: two members of the same organization may hold identical
// slots. The unique index backs the service-level conflict check so that
// concurrent creates cannot both land.
type Appointment struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID         uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_appointments_slot" json:"user_id"`
	OrganizationID string    `gorm:"size:50;not null;index" json:"organization_id"`
	SubjectName    string    `gorm:"size:100;not null;uniqueIndex:idx_appointments_slot" json:"subject_name"`
	SubjectSurname string    `gorm:"size:100;not null" json:"subject_surname"`
	Description    string    `gorm:"type:text;not null" json:"description"`
	ContactEmail   string    `gorm:"size:255;not null" json:"contact_email"`
	AttentionDate  time.Time `gorm:"not null;index;uniqueIndex:idx_appointments_slot" json:"attention_date"`
	StartTime      string    `gorm:"size:5;not null;uniqueIndex:idx_appointments_slot" json:"start_time"`
	EndTime        string    `gorm:"size:5;not null" json:"end_time"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
