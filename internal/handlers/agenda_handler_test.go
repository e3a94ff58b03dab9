package handlers_test

import (
	"net/http"
	"testing"

	"github.com/agendalab/agenda-backend/internal/dto"
)

// The full booking scenario: U1 books a slot, re-booking the identical slot
// as U1 conflicts, booking it as U2 of the same organization succeeds.
func TestCreateConflictScenario(t *testing.T) {
	env := setup(t)
	u1 := env.register(t, "u1@test.com", "org-1")
	u2 := env.register(t, "u2@test.com", "org-1")

	resp := env.request(t, http.MethodPost, "/api/agenda/create", u1.AccessToken, createBody())
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("first create: status = %d, want 201", resp.StatusCode)
	}
	created := decode[dto.AppointmentResponse](t, resp)
	if created.OrganizationID != "org-1" {
		t.Fatalf("organization = %q, want org-1", created.OrganizationID)
	}

	resp = env.request(t, http.MethodPost, "/api/agenda/create", u1.AccessToken, createBody())
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("duplicate as u1: status = %d, want 409", resp.StatusCode)
	}

	resp = env.request(t, http.MethodPost, "/api/agenda/create", u2.AccessToken, createBody())
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("same slot as u2: status = %d, want 201", resp.StatusCode)
	}
}

func TestCreateValidationAndAuth(t *testing.T) {
	env := setup(t)
	u1 := env.register(t, "u1@test.com", "org-1")

	resp := env.request(t, http.MethodPost, "/api/agenda/create", "", createBody())
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("no token: status = %d, want 401", resp.StatusCode)
	}

	body := createBody()
	body["description"] = ""
	resp = env.request(t, http.MethodPost, "/api/agenda/create", u1.AccessToken, body)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("missing field: status = %d, want 400", resp.StatusCode)
	}
}

// Organization stamping ignores any client-supplied organization value.
func TestCreateIgnoresClientOrganization(t *testing.T) {
	env := setup(t)
	u1 := env.register(t, "u1@test.com", "org-1")

	body := map[string]string{
		"subject_name":    "Perez",
		"subject_surname": "Gonzalez",
		"description":     "control mensual",
		"contact_email":   "perez@example.com",
		"attention_date":  "2024-05-01",
		"start_time":      "09:00",
		"end_time":        "09:30",
		"organization_id": "org-2",
	}
	resp := env.request(t, http.MethodPost, "/api/agenda/create", u1.AccessToken, body)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("status = %d, want 201", resp.StatusCode)
	}
	created := decode[dto.AppointmentResponse](t, resp)
	if created.OrganizationID != "org-1" {
		t.Fatalf("organization = %q, want the owner's org-1", created.OrganizationID)
	}
}

func TestUpdateOwnershipStatuses(t *testing.T) {
	env := setup(t)
	u1 := env.register(t, "u1@test.com", "org-1")
	u2 := env.register(t, "u2@test.com", "org-1")

	resp := env.request(t, http.MethodPost, "/api/agenda/create", u1.AccessToken, createBody())
	created := decode[dto.AppointmentResponse](t, resp)

	patch := map[string]string{"description": "control anual"}

	resp = env.request(t, http.MethodPut, "/api/agenda/update/"+created.ID.String(), u2.AccessToken, patch)
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("non-owner: status = %d, want 403", resp.StatusCode)
	}

	resp = env.request(t, http.MethodPut, "/api/agenda/update/00000000-0000-0000-0000-000000000000", u1.AccessToken, patch)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("missing id: status = %d, want 404", resp.StatusCode)
	}

	resp = env.request(t, http.MethodPut, "/api/agenda/update/"+created.ID.String(), u1.AccessToken, patch)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("owner: status = %d, want 200", resp.StatusCode)
	}
	updated := decode[dto.UpdateAppointmentResponse](t, resp)
	if updated.Previous.Description != "control mensual" || updated.Updated.Description != "control anual" {
		t.Fatalf("previous/updated mismatch: %+v", updated)
	}
}

// Owner and organization in an update body are dropped by the allow-list.
func TestUpdateCannotMoveOwnership(t *testing.T) {
	env := setup(t)
	u1 := env.register(t, "u1@test.com", "org-1")

	resp := env.request(t, http.MethodPost, "/api/agenda/create", u1.AccessToken, createBody())
	created := decode[dto.AppointmentResponse](t, resp)

	patch := map[string]string{
		"user_id":         "00000000-0000-0000-0000-000000000099",
		"organization_id": "org-2",
		"description":     "still mine",
	}
	resp = env.request(t, http.MethodPut, "/api/agenda/update/"+created.ID.String(), u1.AccessToken, patch)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	updated := decode[dto.UpdateAppointmentResponse](t, resp)
	if updated.Updated.UserID != created.UserID || updated.Updated.OrganizationID != "org-1" {
		t.Fatalf("identity fields moved: %+v", updated.Updated)
	}
}

func TestDeleteReturnsDeletedRecord(t *testing.T) {
	env := setup(t)
	u1 := env.register(t, "u1@test.com", "org-1")
	u2 := env.register(t, "u2@test.com", "org-1")

	resp := env.request(t, http.MethodPost, "/api/agenda/create", u1.AccessToken, createBody())
	created := decode[dto.AppointmentResponse](t, resp)

	resp = env.request(t, http.MethodDelete, "/api/agenda/delete/"+created.ID.String(), u2.AccessToken, nil)
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("non-owner: status = %d, want 403", resp.StatusCode)
	}

	resp = env.request(t, http.MethodDelete, "/api/agenda/delete/"+created.ID.String(), u1.AccessToken, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("owner: status = %d, want 200", resp.StatusCode)
	}
	deleted := decode[dto.DeleteAppointmentResponse](t, resp)
	if deleted.Deleted.ID != created.ID {
		t.Fatalf("deleted id = %s, want %s", deleted.Deleted.ID, created.ID)
	}

	resp = env.request(t, http.MethodDelete, "/api/agenda/delete/"+created.ID.String(), u1.AccessToken, nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("double delete: status = %d, want 404", resp.StatusCode)
	}
}

func TestListOrganizationScopeAndEmpty404(t *testing.T) {
	env := setup(t)
	u1 := env.register(t, "u1@test.com", "org-1")
	outsider := env.register(t, "u3@test.com", "org-2")

	// Zero records answers 404, never an empty array.
	resp := env.request(t, http.MethodGet, "/api/agenda/list", u1.AccessToken, nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("empty list: status = %d, want 404", resp.StatusCode)
	}

	env.request(t, http.MethodPost, "/api/agenda/create", u1.AccessToken, createBody())

	resp = env.request(t, http.MethodGet, "/api/agenda/list", u1.AccessToken, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("list: status = %d, want 200", resp.StatusCode)
	}
	list := decode[dto.AppointmentListResponse](t, resp)
	if list.Total != 1 || len(list.Appointments) != 1 {
		t.Fatalf("total = %d, len = %d, want 1/1", list.Total, len(list.Appointments))
	}
	if list.Appointments[0].AttentionDate != "2024-05-01" {
		t.Fatalf("attention_date = %q, want calendar day", list.Appointments[0].AttentionDate)
	}

	// Out-of-range paging values are clamped, and the response echoes the
	// values actually applied.
	resp = env.request(t, http.MethodGet, "/api/agenda/list?limit=200&offset=-5", u1.AccessToken, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("clamped list: status = %d, want 200", resp.StatusCode)
	}
	clamped := decode[dto.AppointmentListResponse](t, resp)
	if clamped.Limit != 50 || clamped.Offset != 0 {
		t.Fatalf("limit/offset = %d/%d, want 50/0", clamped.Limit, clamped.Offset)
	}

	// The other organization still sees nothing.
	resp = env.request(t, http.MethodGet, "/api/agenda/list", outsider.AccessToken, nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("outsider list: status = %d, want 404", resp.StatusCode)
	}
}

func TestGetScopedToOrganization(t *testing.T) {
	env := setup(t)
	u1 := env.register(t, "u1@test.com", "org-1")
	orgMate := env.register(t, "u2@test.com", "org-1")
	outsider := env.register(t, "u3@test.com", "org-2")

	resp := env.request(t, http.MethodPost, "/api/agenda/create", u1.AccessToken, createBody())
	created := decode[dto.AppointmentResponse](t, resp)

	resp = env.request(t, http.MethodGet, "/api/agenda/"+created.ID.String(), orgMate.AccessToken, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("org mate read: status = %d, want 200", resp.StatusCode)
	}

	resp = env.request(t, http.MethodGet, "/api/agenda/"+created.ID.String(), outsider.AccessToken, nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("outsider read: status = %d, want 404", resp.StatusCode)
	}
}
