package dto

import (
	"time"

	"github.com/agendalab/agenda-backend/internal/models"
	"github.com/google/uuid"
)

type CreateAppointmentRequest struct {
	SubjectName    string `json:"subject_name"`
	SubjectSurname string `json:"subject_surname"`
	Description    string `json:"description"`
	ContactEmail   string `json:"contact_email"`
	AttentionDate  string `json:"attention_date"`
	StartTime      string `json:"start_time"`
	EndTime        string `json:"end_time"`
}

// UpdateAppointmentRequest covers the caller-mutable fields only; owner and
// organization are never patchable.
type UpdateAppointmentRequest struct {
	SubjectName    *string `json:"subject_name"`
	SubjectSurname *string `json:"subject_surname"`
	Description    *string `json:"description"`
	ContactEmail   *string `json:"contact_email"`
	AttentionDate  *string `json:"attention_date"`
	StartTime      *string `json:"start_time"`
	EndTime        *string `json:"end_time"`
}

// AppointmentResponse renders the attention date with calendar-day
// granularity, matching the stored value.
type AppointmentResponse struct {
	ID             uuid.UUID `json:"id"`
	UserID         uuid.UUID `json:"user_id"`
	OrganizationID string    `json:"organization_id"`
	SubjectName    string    `json:"subject_name"`
	SubjectSurname string    `json:"subject_surname"`
	Description    string    `json:"description"`
	ContactEmail   string    `json:"contact_email"`
	AttentionDate  string    `json:"attention_date"`
	StartTime      string    `json:"start_time"`
	EndTime        string    `json:"end_time"`
	CreatedAt      time.Time `json:"created_at"`
}

func NewAppointmentResponse(a *models.Appointment) AppointmentResponse {
	return AppointmentResponse{
		ID:             a.ID,
		UserID:         a.UserID,
		OrganizationID: a.OrganizationID,
		SubjectName:    a.SubjectName,
		SubjectSurname: a.SubjectSurname,
		Description:    a.Description,
		ContactEmail:   a.ContactEmail,
		AttentionDate:  a.AttentionDate.Format("2006-01-02"),
		StartTime:      a.StartTime,
		EndTime:        a.EndTime,
		CreatedAt:      a.CreatedAt,
	}
}

type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
	Total        int64                 `json:"total"`
	Limit        int                   `json:"limit"`
	Offset       int                   `json:"offset"`
}

type UpdateAppointmentResponse struct {
	Previous AppointmentResponse `json:"previous"`
	Updated  AppointmentResponse `json:"updated"`
}

type DeleteAppointmentResponse struct {
	Message string              `json:"message"`
	Deleted AppointmentResponse `json:"deleted"`
}
