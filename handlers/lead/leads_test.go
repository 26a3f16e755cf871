package lead

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gofiber/fiber/v2"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	conn, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to open sqlmock: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 conn,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open gorm: %v", err)
	}

	return db, mock
}

func newTestApp(t *testing.T) (*fiber.App, sqlmock.Sqlmock) {
	t.Helper()

	db, mock := newMockDB(t)
	handler := NewLeadHandler(db)

	app := fiber.New()
	app.Post("/api/leads", handler.CreateLead)
	app.Get("/api/leads", handler.ListLeads)
	app.Put("/api/leads/:id", handler.UpdateLeadStatus)

	return app, mock
}

func postJSON(t *testing.T, app *fiber.App, path string, body interface{}) int {
	t.Helper()

	payload, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("failed to marshal body: %v", err)
	}

	req := httptest.NewRequest("POST", path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	return resp.StatusCode
}

func TestCreateLeadRejectsMissingName(t *testing.T) {
	app, mock := newTestApp(t)

	status := postJSON(t, app, "/api/leads", map[string]string{
		"email": "jordan@example.com",
	})

	if status != fiber.StatusUnprocessableEntity {
		t.Errorf("status = %d, want %d", status, fiber.StatusUnprocessableEntity)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("no queries should run for an invalid payload: %v", err)
	}
}

func TestCreateLeadRejectsBadEmail(t *testing.T) {
	app, mock := newTestApp(t)

	status := postJSON(t, app, "/api/leads", map[string]string{
		"name":  "Jordan Smith",
		"email": "not-an-email",
	})

	if status != fiber.StatusUnprocessableEntity {
		t.Errorf("status = %d, want %d", status, fiber.StatusUnprocessableEntity)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("no queries should run for an invalid payload: %v", err)
	}
}

func TestListLeadsRejectsUnknownStatusFilter(t *testing.T) {
	app, mock := newTestApp(t)

	req := httptest.NewRequest("GET", "/api/leads?status=open", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != fiber.StatusBadRequest {
		t.Errorf("status = %d, want %d", resp.StatusCode, fiber.StatusBadRequest)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("no queries should run for an invalid filter: %v", err)
	}
}

func TestUpdateLeadStatusRejectsUnknownStatus(t *testing.T) {
	app, mock := newTestApp(t)

	payload, _ := json.Marshal(map[string]string{"status": "won"})
	req := httptest.NewRequest("PUT", "/api/leads/64f1a2b3c4d5e6f708192a3b", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != fiber.StatusUnprocessableEntity {
		t.Errorf("status = %d, want %d", resp.StatusCode, fiber.StatusUnprocessableEntity)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("no queries should run for an invalid payload: %v", err)
	}
}
