package handlers

import (
	"time"

	"github.com/agendalab/agenda-backend/internal/database"
	"github.com/agendalab/agenda-backend/internal/dto"
	"github.com/agendalab/agenda-backend/internal/organization"
	"github.com/gofiber/fiber/v2"
)

type HealthHandler struct {
	registry *organization.Registry
}

func NewHealthHandler(registry *organization.Registry) *HealthHandler {
	return &HealthHandler{registry: registry}
}

func (h *HealthHandler) Check(c *fiber.Ctx) error {
	dbStatus := "ok"
	if err := database.Ping(); err != nil {
		dbStatus = "unhealthy: " + err.Error()
	}

	return c.JSON(dto.HealthResponse{
		Status:    "ok",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		DB:        dbStatus,
		OrgCount:  len(h.registry.All()),
	})
}
