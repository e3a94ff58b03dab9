package services

import (
	"errors"
	"time"

	"github.com/agendalab/agenda-backend/internal/dto"
	"github.com/agendalab/agenda-backend/internal/models"
	"github.com/agendalab/agenda-backend/internal/organization"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrMissingFields       = errors.New("required appointment fields are missing")
	ErrInvalidDate         = errors.New("attention date must be YYYY-MM-DD or RFC 3339")
	ErrSlotTaken           = errors.New("slot already assigned for this user")
	ErrAppointmentNotFound = errors.New("appointment not found")
	ErrNotOwner            = errors.New("you do not own this appointment")
	ErrNoAppointments      = errors.New("no appointments found for this organization")
)

// AgendaService enforces the two rules every appointment mutation passes
// through: slot uniqueness on create (scoped to the owner, not the
// organization) and ownership on update/delete. Listing and reads are
// organization-scoped.
type AgendaService struct {
	db *gorm.DB
}

func NewAgendaService(db *gorm.DB) *AgendaService {
	return &AgendaService{db: db}
}

// Create validates the candidate, stamps the owner's organization onto it and
// rejects a slot the owner already holds. The slot key is (subject name,
// start time, attention date) per owner; an identical slot under a different
// owner in the same organization is not a conflict.
func (s *AgendaService) Create(userID uuid.UUID, req dto.CreateAppointmentRequest) (*models.Appointment, error) {
	if req.SubjectName == "" || req.SubjectSurname == "" || req.Description == "" ||
		req.ContactEmail == "" || req.AttentionDate == "" || req.StartTime == "" || req.EndTime == "" {
		return nil, ErrMissingFields
	}

	var owner models.User
	if err := s.db.First(&owner, "id = ? AND deactivated = ?", userID, false).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	attentionDate, err := parseAttentionDate(req.AttentionDate)
	if err != nil {
		return nil, ErrInvalidDate
	}

	var existing models.Appointment
	err = s.db.Where(
		"user_id = ? AND subject_name = ? AND start_time = ? AND attention_date = ?",
		userID, req.SubjectName, req.StartTime, attentionDate,
	).First(&existing).Error
	if err == nil {
		return nil, ErrSlotTaken
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	appointment := models.Appointment{
		ID:             uuid.New(),
		UserID:         userID,
		OrganizationID: owner.OrganizationID,
		SubjectName:    req.SubjectName,
		SubjectSurname: req.SubjectSurname,
		Description:    req.Description,
		ContactEmail:   req.ContactEmail,
		AttentionDate:  attentionDate,
		StartTime:      req.StartTime,
		EndTime:        req.EndTime,
	}

	if err := s.db.Create(&appointment).Error; err != nil {
		// The composite unique index closes the check-then-insert race.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrSlotTaken
		}
		return nil, err
	}

	return &appointment, nil
}

// AuthorizeMutation looks up an appointment and verifies the acting user owns
// it. Organization membership grants no override.
func (s *AgendaService) AuthorizeMutation(appointmentID, userID uuid.UUID) (*models.Appointment, error) {
	var appointment models.Appointment
	if err := s.db.First(&appointment, "id = ?", appointmentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAppointmentNotFound
		}
		return nil, err
	}

	if appointment.UserID.String() != userID.String() {
		return nil, ErrNotOwner
	}

	return &appointment, nil
}

// Update applies the allow-listed patch fields and returns both the previous
// and the updated record.
func (s *AgendaService) Update(appointmentID, userID uuid.UUID, req dto.UpdateAppointmentRequest) (previous, updated *models.Appointment, err error) {
	appointment, err := s.AuthorizeMutation(appointmentID, userID)
	if err != nil {
		return nil, nil, err
	}

	before := *appointment

	if req.SubjectName != nil {
		if *req.SubjectName == "" {
			return nil, nil, ErrMissingFields
		}
		appointment.SubjectName = *req.SubjectName
	}
	if req.SubjectSurname != nil {
		appointment.SubjectSurname = *req.SubjectSurname
	}
	if req.Description != nil {
		appointment.Description = *req.Description
	}
	if req.ContactEmail != nil {
		appointment.ContactEmail = *req.ContactEmail
	}
	if req.AttentionDate != nil {
		attentionDate, parseErr := parseAttentionDate(*req.AttentionDate)
		if parseErr != nil {
			return nil, nil, ErrInvalidDate
		}
		appointment.AttentionDate = attentionDate
	}
	if req.StartTime != nil {
		if *req.StartTime == "" {
			return nil, nil, ErrMissingFields
		}
		appointment.StartTime = *req.StartTime
	}
	if req.EndTime != nil {
		appointment.EndTime = *req.EndTime
	}

	if err := s.db.Save(appointment).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, nil, ErrSlotTaken
		}
		return nil, nil, err
	}

	return &before, appointment, nil
}

// Delete removes the appointment and returns the removed record for the
// caller to confirm.
func (s *AgendaService) Delete(appointmentID, userID uuid.UUID) (*models.Appointment, error) {
	appointment, err := s.AuthorizeMutation(appointmentID, userID)
	if err != nil {
		return nil, err
	}

	if err := s.db.Delete(appointment).Error; err != nil {
		return nil, err
	}

	return appointment, nil
}

// Get returns one appointment if it belongs to the caller's organization.
// Appointments of other organizations are indistinguishable from absent ones.
func (s *AgendaService) Get(appointmentID uuid.UUID, orgID string) (*models.Appointment, error) {
	var appointment models.Appointment
	err := s.db.Scopes(organization.Scope(orgID)).First(&appointment, "id = ?", appointmentID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAppointmentNotFound
		}
		return nil, err
	}
	return &appointment, nil
}

// List returns every appointment of the caller's organization. Zero matches
// reports ErrNoAppointments rather than an empty collection; the HTTP layer
// keeps that contract.
func (s *AgendaService) List(userID uuid.UUID, limit, offset int) ([]models.Appointment, int64, error) {
	var owner models.User
	if err := s.db.First(&owner, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, 0, ErrUserNotFound
		}
		return nil, 0, err
	}

	if limit <= 0 || limit > 100 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	var total int64
	if err := s.db.Model(&models.Appointment{}).
		Scopes(organization.Scope(owner.OrganizationID)).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return nil, 0, ErrNoAppointments
	}

	var appointments []models.Appointment
	err := s.db.Scopes(organization.Scope(owner.OrganizationID)).
		Order("attention_date ASC, start_time ASC").
		Limit(limit).
		Offset(offset).
		Find(&appointments).Error
	if err != nil {
		return nil, 0, err
	}

	return appointments, total, nil
}

// parseAttentionDate accepts a plain calendar date or an RFC 3339 timestamp
// and normalizes both to midnight UTC. The slot key compares at calendar-day
// granularity, so the stored value, the conflict pre-check and the unique
// index must not carry a time component.
func parseAttentionDate(value string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		t, err = time.Parse(time.RFC3339, value)
		if err != nil {
			return time.Time{}, err
		}
	}
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
}
