package handlers

import (
	"errors"
	"strconv"

	"github.com/agendalab/agenda-backend/internal/dto"
	"github.com/agendalab/agenda-backend/internal/models"
	"github.com/agendalab/agenda-backend/internal/organization"
	"github.com/agendalab/agenda-backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type AgendaHandler struct {
	service *services.AgendaService
}

func NewAgendaHandler(service *services.AgendaService) *AgendaHandler {
	return &AgendaHandler{service: service}
}

func (h *AgendaHandler) Create(c *fiber.Ctx) error {
	userID, err := organization.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	var req dto.CreateAppointmentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	appointment, err := h.service.Create(userID, req)
	if err != nil {
		if errors.Is(err, services.ErrMissingFields) || errors.Is(err, services.ErrInvalidDate) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		if errors.Is(err, services.ErrUserNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		if errors.Is(err, services.ErrSlotTaken) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to create appointment",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(dto.NewAppointmentResponse(appointment))
}

func (h *AgendaHandler) List(c *fiber.Ctx) error {
	userID, err := organization.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	limit, _ := strconv.Atoi(c.Query("limit", "50"))
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	offset, _ := strconv.Atoi(c.Query("offset", "0"))
	if offset < 0 {
		offset = 0
	}

	appointments, total, err := h.service.List(userID, limit, offset)
	if err != nil {
		if errors.Is(err, services.ErrNoAppointments) || errors.Is(err, services.ErrUserNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to fetch appointments",
		})
	}

	return c.JSON(dto.AppointmentListResponse{
		Appointments: toResponses(appointments),
		Total:        total,
		Limit:        limit,
		Offset:       offset,
	})
}

func (h *AgendaHandler) Get(c *fiber.Ctx) error {
	_, err := organization.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	appointmentID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid appointment ID",
		})
	}

	appointment, err := h.service.Get(appointmentID, organization.GetOrgID(c))
	if err != nil {
		if errors.Is(err, services.ErrAppointmentNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to fetch appointment",
		})
	}

	return c.JSON(dto.NewAppointmentResponse(appointment))
}

func (h *AgendaHandler) Update(c *fiber.Ctx) error {
	userID, err := organization.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	appointmentID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid appointment ID",
		})
	}

	var req dto.UpdateAppointmentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	previous, updated, err := h.service.Update(appointmentID, userID, req)
	if err != nil {
		if errors.Is(err, services.ErrAppointmentNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		if errors.Is(err, services.ErrNotOwner) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		if errors.Is(err, services.ErrMissingFields) || errors.Is(err, services.ErrInvalidDate) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		if errors.Is(err, services.ErrSlotTaken) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to update appointment",
		})
	}

	return c.JSON(dto.UpdateAppointmentResponse{
		Previous: dto.NewAppointmentResponse(previous),
		Updated:  dto.NewAppointmentResponse(updated),
	})
}

func (h *AgendaHandler) Delete(c *fiber.Ctx) error {
	userID, err := organization.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	appointmentID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid appointment ID",
		})
	}

	deleted, err := h.service.Delete(appointmentID, userID)
	if err != nil {
		if errors.Is(err, services.ErrAppointmentNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		if errors.Is(err, services.ErrNotOwner) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to delete appointment",
		})
	}

	return c.JSON(dto.DeleteAppointmentResponse{
		Message: "Appointment deleted successfully",
		Deleted: dto.NewAppointmentResponse(deleted),
	})
}

func toResponses(appointments []models.Appointment) []dto.AppointmentResponse {
	out := make([]dto.AppointmentResponse, 0, len(appointments))
	for i := range appointments {
		out = append(out, dto.NewAppointmentResponse(&appointments[i]))
	}
	return out
}
