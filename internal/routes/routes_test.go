package routes

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/BruksfildServices01/clinic-scheduler/internal/config"
	"github.com/BruksfildServices01/clinic-scheduler/internal/infra/lock"
	"github.com/BruksfildServices01/clinic-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
	"github.com/BruksfildServices01/clinic-scheduler/internal/timezone"
)

const secret = "routes-test-secret"

type env struct {
	t       *testing.T
	r       *gin.Engine
	repo    *repository.MemoryRepository
	doctor  models.User
	patient models.User
	admin   models.User
}

func newEnv(t *testing.T) *env {
	t.Helper()
	gin.SetMode(gin.TestMode)

	repo := repository.NewMemoryRepository()
	e := &env{t: t, r: gin.New(), repo: repo}

	e.doctor = repo.AddUser(models.User{
		Name: "Dr. Mehta", Email: "mehta@clinic.test", Role: models.RoleDoctor,
		Doctor: &models.DoctorProfile{Specialization: models.SpecPhysician, IsApproved: true},
	})
	e.patient = repo.AddUser(models.User{Name: "Ana", Email: "ana@clinic.test", Role: models.RolePatient})
	e.admin = repo.AddUser(models.User{Name: "Root", Role: models.RoleAdmin})

	RegisterRoutes(e.r, Deps{
		Config: &config.Config{JWTSecret: secret, LockWait: time.Second},
		Repo:   repo,
		Locker: lock.NewKeyedMutex(),
		Clock:  timezone.FixedClock{T: time.Date(2025, time.October, 20, 9, 0, 0, 0, time.UTC)},
		Logger: zerolog.Nop(),
	})
	return e
}

func (e *env) token(u models.User) string {
	e.t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  u.ID,
		"role": string(u.Role),
		"exp":  time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte(secret))
	if err != nil {
		e.t.Fatalf("sign: %v", err)
	}
	return s
}

func (e *env) do(as models.User, method, path string, body any) *httptest.ResponseRecorder {
	e.t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			e.t.Fatalf("encode: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+e.token(as))

	w := httptest.NewRecorder()
	e.r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), v); err != nil {
		t.Fatalf("decode %q: %v", w.Body.String(), err)
	}
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Code string `json:"error_code"`
	}
	decode(t, w, &body)
	return body.Code
}

func TestBookingFlow(t *testing.T) {
	e := newEnv(t)

	w := e.do(e.patient, http.MethodPost, "/api/patients/appointments", gin.H{
		"doctorId": e.doctor.ID, "date": "2025-10-21", "timeSlot": "10:00 AM",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("book: expected 201, got %d %s", w.Code, w.Body.String())
	}
	var created struct {
		ID     uint   `json:"_id"`
		Status string `json:"status"`
	}
	decode(t, w, &created)
	if created.Status != "pending" {
		t.Fatalf("expected pending, got %s", created.Status)
	}

	w = e.do(e.patient, http.MethodPost, "/api/patients/appointments", gin.H{
		"doctorId": e.doctor.ID, "date": "2025-10-21", "timeSlot": "10:30 AM",
	})
	if w.Code != http.StatusConflict || errorCode(t, w) != "duplicate_daily_booking" {
		t.Fatalf("expected 409 duplicate_daily_booking, got %d %s", w.Code, w.Body.String())
	}

	path := fmt.Sprintf("/api/doctors/myappointments/%d", created.ID)
	w = e.do(e.doctor, http.MethodPut, path, gin.H{"status": "accepted"})
	if w.Code != http.StatusOK {
		t.Fatalf("accept: expected 200, got %d %s", w.Code, w.Body.String())
	}

	w = e.do(e.patient, http.MethodPut, fmt.Sprintf("/api/patients/appointments/%d/cancel", created.ID), nil)
	if w.Code != http.StatusOK {
		t.Fatalf("cancel: expected 200, got %d %s", w.Code, w.Body.String())
	}

	w = e.do(e.doctor, http.MethodPut, path, gin.H{"status": "completed"})
	if w.Code != http.StatusBadRequest || errorCode(t, w) != "invalid_status_transition" {
		t.Fatalf("expected invalid_status_transition, got %d %s", w.Code, w.Body.String())
	}
}

func TestBookingErrors(t *testing.T) {
	e := newEnv(t)

	tests := []struct {
		name   string
		body   gin.H
		status int
		code   string
	}{
		{"missing fields", gin.H{"doctorId": e.doctor.ID}, http.StatusBadRequest, "invalid_input"},
		{"bad date", gin.H{"doctorId": e.doctor.ID, "date": "soon", "timeSlot": "10:00 AM"}, http.StatusBadRequest, "invalid_date"},
		{"past date", gin.H{"doctorId": e.doctor.ID, "date": "2025-10-15", "timeSlot": "10:00 AM"}, http.StatusBadRequest, "past_date_booking"},
		{"lunch", gin.H{"doctorId": e.doctor.ID, "date": "2025-10-21", "timeSlot": "12:00 PM"}, http.StatusBadRequest, "during_lunch_break"},
		{"closing", gin.H{"doctorId": e.doctor.ID, "date": "2025-10-21", "timeSlot": "5:00 PM"}, http.StatusBadRequest, "outside_working_hours"},
		{"no doctor", gin.H{"doctorId": 999, "date": "2025-10-21", "timeSlot": "10:00 AM"}, http.StatusBadRequest, "doctor_unavailable"},
	}

	for _, tt := range tests {
		w := e.do(e.patient, http.MethodPost, "/api/patients/appointments", tt.body)
		if w.Code != tt.status || errorCode(t, w) != tt.code {
			t.Errorf("%s: expected %d %s, got %d %s", tt.name, tt.status, tt.code, w.Code, w.Body.String())
		}
	}
}

func TestAvailabilityAndSlots(t *testing.T) {
	e := newEnv(t)

	w := e.do(e.patient, http.MethodGet, fmt.Sprintf("/api/patients/doctors/%d/availability?date=2025-10-21", e.doctor.ID), nil)
	if w.Code != http.StatusOK {
		t.Fatalf("availability: expected 200, got %d %s", w.Code, w.Body.String())
	}
	var av struct {
		WorkingHours models.WorkingHours `json:"workingHours"`
	}
	decode(t, w, &av)
	if av.WorkingHours != models.ClinicHours() {
		t.Fatalf("unexpected hours: %+v", av.WorkingHours)
	}

	w = e.do(e.patient, http.MethodGet, fmt.Sprintf("/api/patients/doctors/%d/availability?date=2025-10-25", e.doctor.ID), nil)
	if w.Code != http.StatusNotFound || errorCode(t, w) != "day_unavailable" {
		t.Fatalf("expected 404 day_unavailable, got %d %s", w.Code, w.Body.String())
	}

	w = e.do(e.patient, http.MethodGet, fmt.Sprintf("/api/patients/doctors/%d/time-slots?date=2025-10-21", e.doctor.ID), nil)
	var slots []struct {
		Time      string `json:"time"`
		Available bool   `json:"available"`
	}
	decode(t, w, &slots)
	if len(slots) != 10 || slots[0].Time != "10:00 AM" || slots[9].Time != "4:30 PM" {
		t.Fatalf("unexpected slots: %+v", slots)
	}

	w = e.do(e.patient, http.MethodGet, fmt.Sprintf("/api/patients/doctors/%d/time-slots?date=2025-10-01", e.doctor.ID), nil)
	if w.Code != http.StatusBadRequest || errorCode(t, w) != "past_date_slots" {
		t.Fatalf("expected 400 past_date_slots, got %d %s", w.Code, w.Body.String())
	}

	w = e.do(e.patient, http.MethodGet, "/api/patients/doctors/abc/time-slots?date=2025-10-21", nil)
	if w.Code != http.StatusBadRequest || errorCode(t, w) != "invalid_id" {
		t.Fatalf("expected invalid_id, got %d %s", w.Code, w.Body.String())
	}
}

func TestDoctorSchedule(t *testing.T) {
	e := newEnv(t)

	w := e.do(e.doctor, http.MethodGet, "/api/doctors/weekly-availability", nil)
	var weekly struct {
		Data []struct {
			Day       string `json:"day"`
			IsEnabled bool   `json:"isEnabled"`
		} `json:"data"`
		Total int `json:"total"`
	}
	decode(t, w, &weekly)
	if weekly.Total != 7 || weekly.Data[0].Day != "sunday" || weekly.Data[0].IsEnabled {
		t.Fatalf("unexpected weekly schedule: %+v", weekly)
	}

	w = e.do(e.doctor, http.MethodPut, "/api/doctors/weekly-availability/funday", gin.H{"isEnabled": true})
	if w.Code != http.StatusBadRequest || errorCode(t, w) != "invalid_day" {
		t.Fatalf("expected invalid_day, got %d %s", w.Code, w.Body.String())
	}

	w = e.do(e.doctor, http.MethodPut, "/api/doctors/availability/2025-10-22", gin.H{"isEnabled": false})
	if w.Code != http.StatusOK {
		t.Fatalf("set override: expected 200, got %d %s", w.Code, w.Body.String())
	}

	w = e.do(e.patient, http.MethodGet, fmt.Sprintf("/api/patients/doctors/%d/time-slots?date=2025-10-22", e.doctor.ID), nil)
	if w.Body.String() != "[]" {
		t.Fatalf("closed date should have no slots, got %s", w.Body.String())
	}

	w = e.do(e.doctor, http.MethodDelete, "/api/doctors/availability/2025-10-22", nil)
	if w.Code != http.StatusNoContent {
		t.Fatalf("delete override: expected 204, got %d", w.Code)
	}
	w = e.do(e.doctor, http.MethodDelete, "/api/doctors/availability/2025-10-22", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("second delete: expected 404, got %d", w.Code)
	}
}

func TestRoleGuards(t *testing.T) {
	e := newEnv(t)

	if w := e.do(e.doctor, http.MethodPost, "/api/patients/appointments", gin.H{}); w.Code != http.StatusForbidden {
		t.Fatalf("doctor booking: expected 403, got %d", w.Code)
	}
	if w := e.do(e.patient, http.MethodGet, "/api/appointments", nil); w.Code != http.StatusForbidden {
		t.Fatalf("patient on admin route: expected 403, got %d", w.Code)
	}

	w := e.do(e.admin, http.MethodGet, "/api/appointments", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("admin list: expected 200, got %d", w.Code)
	}

	w = e.do(e.admin, http.MethodPost, fmt.Sprintf("/api/admin/doctors/%d/schedule/init", e.doctor.ID), nil)
	if w.Code != http.StatusOK {
		t.Fatalf("schedule init: expected 200, got %d %s", w.Code, w.Body.String())
	}
}

func TestAdminDelete(t *testing.T) {
	e := newEnv(t)

	w := e.do(e.patient, http.MethodPost, "/api/patients/appointments", gin.H{
		"doctorId": e.doctor.ID, "date": "2025-10-21", "timeSlot": "3:00 PM",
	})
	var created struct {
		ID uint `json:"_id"`
	}
	decode(t, w, &created)

	path := fmt.Sprintf("/api/appointments/%d", created.ID)
	if w := e.do(e.admin, http.MethodDelete, path, nil); w.Code != http.StatusNoContent {
		t.Fatalf("delete: expected 204, got %d", w.Code)
	}
	if w := e.do(e.admin, http.MethodGet, path, nil); w.Code != http.StatusNotFound {
		t.Fatalf("get deleted: expected 404, got %d", w.Code)
	}
}

func TestMe(t *testing.T) {
	e := newEnv(t)

	w := e.do(e.doctor, http.MethodGet, "/api/me", nil)
	var body struct {
		User struct {
			Name           string `json:"name"`
			Specialization string `json:"specialization"`
		} `json:"user"`
	}
	decode(t, w, &body)
	if body.User.Name != "Dr. Mehta" || body.User.Specialization != "Physician" {
		t.Fatalf("unexpected /me: %s", w.Body.String())
	}
}
