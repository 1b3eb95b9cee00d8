package routes

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"careconnect-backend/internal/adapters/http/middleware"
	"careconnect-backend/internal/adapters/persistence/models"
	"careconnect-backend/internal/config"
	"careconnect-backend/internal/pkg/password"

	"github.com/gofiber/fiber/v2"
	"github.com/joho/godotenv"
)

// TestAPIIntegration exercises the register/login/book flow against a
// live MySQL database. Requires the DEV_DB_* environment configured.
func TestAPIIntegration(t *testing.T) {
	if os.Getenv("RUN_API_INTEGRATION") != "true" {
		t.Skip("set RUN_API_INTEGRATION=true to run this integration test")
	}

	loadDotEnv()
	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}

	db, err := config.ConnectDatabase(cfg)
	if err != nil {
		t.Fatalf("connect database: %v", err)
	}
	defer config.CloseDatabase()

	if err := models.AutoMigrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	app := fiber.New(fiber.Config{ErrorHandler: middleware.CustomErrorHandler})
	Setup(app, db, cfg)

	// Seed a doctor to book against.
	hash, err := password.Hash(fmt.Sprintf("Doc!%d", time.Now().UnixNano()))
	if err != nil {
		t.Fatal(err)
	}
	doctor := models.User{
		Email:          fmt.Sprintf("doctor_%d@example.com", time.Now().UnixNano()),
		Password:       hash,
		Name:           "Integration Doctor",
		Role:           "DOCTOR",
		Specialization: "Cardiology",
		IsActive:       true,
	}
	if err := db.Create(&doctor).Error; err != nil {
		t.Fatalf("seed doctor: %v", err)
	}
	t.Cleanup(func() {
		db.Unscoped().Where("doctor_id = ?", doctor.ID).Delete(&models.Appointment{})
		db.Unscoped().Delete(&doctor)
	})

	email := fmt.Sprintf("patient_%d@example.com", time.Now().UnixNano())
	pass := fmt.Sprintf("Pass1!%d", time.Now().UnixNano())

	// Register a patient with a profile.
	resp := postJSON(t, app, "/api/auth/register", "", map[string]any{
		"email":       email,
		"password":    pass,
		"name":        "Integration Patient",
		"role":        "PATIENT",
		"dateOfBirth": "1990-04-01",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("register status = %d: %s", resp.StatusCode, readBody(t, resp))
	}
	resp.Body.Close()
	t.Cleanup(func() {
		var user models.User
		if db.Where("email = ?", email).First(&user).Error == nil {
			db.Unscoped().Where("user_id = ?", user.ID).Delete(&models.RefreshToken{})
			db.Unscoped().Where("user_id = ?", user.ID).Delete(&models.Patient{})
			db.Unscoped().Delete(&user)
		}
	})

	// Registering the same email again must fail, not duplicate.
	resp = postJSON(t, app, "/api/auth/register", "", map[string]any{
		"email":       email,
		"password":    pass,
		"name":        "Integration Patient",
		"role":        "PATIENT",
		"dateOfBirth": "1990-04-01",
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("duplicate register status = %d, want 400", resp.StatusCode)
	}
	resp.Body.Close()

	// Login and pick up the access token.
	resp = postJSON(t, app, "/api/auth/login", "", map[string]any{
		"email":    email,
		"password": pass,
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login status = %d: %s", resp.StatusCode, readBody(t, resp))
	}
	var loginOut struct {
		Data struct {
			AccessToken string `json:"access_token"`
		} `json:"data"`
	}
	decodeBody(t, resp, &loginOut)
	if loginOut.Data.AccessToken == "" {
		t.Fatal("login response missing access token")
	}
	token := loginOut.Data.AccessToken

	// Booking against a doctor that does not exist is a 404.
	when := time.Now().Add(48 * time.Hour).UTC().Format(time.RFC3339)
	resp = postJSON(t, app, "/api/appointments/", token, map[string]any{
		"doctorId": doctor.ID + 1_000_000,
		"dateTime": when,
	})
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("unknown-doctor booking status = %d, want 404", resp.StatusCode)
	}
	resp.Body.Close()

	// Book an appointment with the seeded doctor.
	resp = postJSON(t, app, "/api/appointments/", token, map[string]any{
		"doctorId": doctor.ID,
		"dateTime": when,
		"notes":    "integration booking",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("book status = %d: %s", resp.StatusCode, readBody(t, resp))
	}
	var bookOut struct {
		Data struct {
			ID       uint   `json:"id"`
			DoctorID uint   `json:"doctor_id"`
			Status   string `json:"status"`
		} `json:"data"`
	}
	decodeBody(t, resp, &bookOut)
	if bookOut.Data.DoctorID != doctor.ID || bookOut.Data.Status != models.ApptStatusScheduled {
		t.Fatalf("book response = %+v", bookOut.Data)
	}

	// The new appointment shows up in the patient's listing.
	req := httptest.NewRequest(http.MethodGet, "/api/appointments/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err = app.Test(req, int((30 * time.Second).Milliseconds()))
	if err != nil {
		t.Fatalf("list request failed: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("list status = %d: %s", resp.StatusCode, readBody(t, resp))
	}
	var listOut struct {
		Data []struct {
			ID uint `json:"id"`
		} `json:"data"`
	}
	decodeBody(t, resp, &listOut)
	found := false
	for _, a := range listOut.Data {
		if a.ID == bookOut.Data.ID {
			found = true
		}
	}
	if !found {
		t.Fatalf("appointment %d missing from listing", bookOut.Data.ID)
	}

	// Deletion guard: with the appointment still SCHEDULED the admin
	// cannot delete the doctor and both rows survive.
	adminPass := fmt.Sprintf("Adm1n!%d", time.Now().UnixNano())
	adminHash, err := password.Hash(adminPass)
	if err != nil {
		t.Fatal(err)
	}
	admin := models.User{
		Email:    fmt.Sprintf("admin_%d@example.com", time.Now().UnixNano()),
		Password: adminHash,
		Name:     "Integration Admin",
		Role:     "ADMIN",
		IsActive: true,
	}
	if err := db.Create(&admin).Error; err != nil {
		t.Fatalf("seed admin: %v", err)
	}
	t.Cleanup(func() {
		db.Unscoped().Where("user_id = ?", admin.ID).Delete(&models.RefreshToken{})
		db.Unscoped().Delete(&admin)
	})

	resp = postJSON(t, app, "/api/auth/login", "", map[string]any{
		"email":    admin.Email,
		"password": adminPass,
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("admin login status = %d: %s", resp.StatusCode, readBody(t, resp))
	}
	var adminLogin struct {
		Data struct {
			AccessToken string `json:"access_token"`
		} `json:"data"`
	}
	decodeBody(t, resp, &adminLogin)
	adminToken := adminLogin.Data.AccessToken

	deletePath := fmt.Sprintf("/api/admin/doctors/%d", doctor.ID)
	resp = doAuthed(t, app, http.MethodDelete, deletePath, adminToken)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("delete with scheduled appointment status = %d, want 400", resp.StatusCode)
	}
	resp.Body.Close()

	var remaining int64
	db.Model(&models.User{}).Where("id = ?", doctor.ID).Count(&remaining)
	if remaining != 1 {
		t.Fatal("doctor row removed despite scheduled appointment")
	}
	db.Model(&models.Appointment{}).Where("id = ?", bookOut.Data.ID).Count(&remaining)
	if remaining != 1 {
		t.Fatal("appointment row removed despite blocked delete")
	}

	// With the appointment COMPLETED the delete succeeds and removes
	// the doctor and every one of its appointment rows.
	if err := db.Model(&models.Appointment{}).Where("id = ?", bookOut.Data.ID).
		Update("status", models.ApptStatusCompleted).Error; err != nil {
		t.Fatalf("complete appointment: %v", err)
	}

	resp = doAuthed(t, app, http.MethodDelete, deletePath, adminToken)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("delete after completion status = %d: %s", resp.StatusCode, readBody(t, resp))
	}
	resp.Body.Close()

	db.Unscoped().Model(&models.User{}).Where("id = ?", doctor.ID).Count(&remaining)
	if remaining != 0 {
		t.Fatal("doctor row still present after delete")
	}
	db.Unscoped().Model(&models.Appointment{}).Where("doctor_id = ?", doctor.ID).Count(&remaining)
	if remaining != 0 {
		t.Fatal("appointment rows still present after doctor delete")
	}

	t.Logf("registered %s, booked appointment %d, deletion guard and cascade verified", email, bookOut.Data.ID)
}

func doAuthed(t *testing.T, app *fiber.App, method, path, token string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req, int((30 * time.Second).Milliseconds()))
	if err != nil {
		t.Fatalf("%s %s failed: %v", method, path, err)
	}
	return resp
}

func postJSON(t *testing.T, app *fiber.App, path, token string, payload map[string]any) *http.Response {
	t.Helper()
	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, int((30 * time.Second).Milliseconds()))
	if err != nil {
		t.Fatalf("POST %s failed: %v", path, err)
	}
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return string(b)
}

func loadDotEnv() {
	for _, path := range []string{".env", "../.env", "../../.env", "../../../.env", "../../../../.env"} {
		_ = godotenv.Overload(path)
	}
}
