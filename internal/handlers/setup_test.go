package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/agendalab/agenda-backend/internal/config"
	"github.com/agendalab/agenda-backend/internal/dto"
	"github.com/agendalab/agenda-backend/internal/handlers"
	"github.com/agendalab/agenda-backend/internal/models"
	"github.com/agendalab/agenda-backend/internal/organization"
	"github.com/agendalab/agenda-backend/internal/routes"
	"github.com/agendalab/agenda-backend/internal/services"
	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type testEnv struct {
	app  *fiber.App
	db   *gorm.DB
	auth *services.AuthService
}

func setup(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Appointment{}, &models.RefreshToken{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	cfg := &config.Config{
		JWTSecret:        "test-secret",
		JWTAccessExpiry:  15 * time.Minute,
		JWTRefreshExpiry: 168 * time.Hour,
		AvatarDir:        t.TempDir(),
	}

	registry := organization.NewRegistry()
	registry.Register(&organization.Org{ID: "org-1", Name: "Org One"})
	registry.Register(&organization.Org{ID: "org-2", Name: "Org Two"})

	authService := services.NewAuthService(db, cfg, registry)
	userService := services.NewUserService(db)
	agendaService := services.NewAgendaService(db)

	app := fiber.New()
	routes.Setup(app, cfg,
		handlers.NewAuthHandler(authService),
		handlers.NewUserHandler(userService, cfg),
		handlers.NewAgendaHandler(agendaService),
		handlers.NewHealthHandler(registry),
	)

	return &testEnv{app: app, db: db, auth: authService}
}

func (e *testEnv) request(t *testing.T, method, path, token string, body interface{}) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(b)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := e.app.Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	return resp
}

func (e *testEnv) register(t *testing.T, email, org string) *dto.AuthResponse {
	t.Helper()
	resp, err := e.auth.Register(&dto.RegisterRequest{
		Name:         "Test",
		Surname:      "User",
		Email:        email,
		Password:     "supersecret1",
		Organization: org,
	})
	if err != nil {
		t.Fatalf("register %s: %v", email, err)
	}
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var out T
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return out
}

func createBody() map[string]string {
	return map[string]string{
		"subject_name":    "Perez",
		"subject_surname": "Gonzalez",
		"description":     "control mensual",
		"contact_email":   "perez@example.com",
		"attention_date":  "2024-05-01",
		"start_time":      "09:00",
		"end_time":        "09:30",
	}
}
