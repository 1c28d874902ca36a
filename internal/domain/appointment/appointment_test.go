package appointment

import (
	"errors"
	"testing"
	"time"

	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

var now = time.Date(2025, time.October, 20, 9, 0, 0, 0, time.UTC)

func TestCanTransition(t *testing.T) {
	all := []Status{StatusPending, StatusAccepted, StatusRejected, StatusCompleted, StatusCancelled}
	allowed := map[[2]Status]bool{
		{StatusPending, StatusAccepted}:   true,
		{StatusPending, StatusRejected}:   true,
		{StatusPending, StatusCancelled}:  true,
		{StatusAccepted, StatusCompleted}: true,
		{StatusAccepted, StatusCancelled}: true,
	}

	for _, from := range all {
		for _, to := range all {
			err := CanTransition(from, to)
			if allowed[[2]Status{from, to}] {
				if err != nil {
					t.Errorf("%s -> %s should be allowed, got %v", from, to, err)
				}
				continue
			}
			if !errors.Is(err, ErrInvalidStatusTransition) {
				t.Errorf("%s -> %s should fail with ErrInvalidStatusTransition, got %v", from, to, err)
			}
		}
	}
}

func TestTerminal(t *testing.T) {
	for _, s := range []Status{StatusRejected, StatusCompleted, StatusCancelled} {
		if !s.Terminal() {
			t.Errorf("%s should be terminal", s)
		}
	}
	for _, s := range []Status{StatusPending, StatusAccepted} {
		if s.Terminal() {
			t.Errorf("%s should not be terminal", s)
		}
	}
}

func TestCancelAccepted(t *testing.T) {
	ap := &models.Appointment{Status: string(StatusAccepted)}
	if err := Cancel(ap, now); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ap.Status != string(StatusCancelled) || ap.CancelledAt == nil || !ap.CancelledAt.Equal(now) {
		t.Fatalf("unexpected appointment state: %+v", ap)
	}
}

func TestCancelCompletedFails(t *testing.T) {
	ap := &models.Appointment{Status: string(StatusCompleted)}
	err := Cancel(ap, now)
	if !errors.Is(err, ErrInvalidStatusTransition) {
		t.Fatalf("expected ErrInvalidStatusTransition, got %v", err)
	}
	if !httperr.IsBusiness(err, "invalid_status_transition") {
		t.Fatalf("expected business code invalid_status_transition, got %v", err)
	}
	if ap.Status != string(StatusCompleted) || ap.CancelledAt != nil {
		t.Fatalf("failed transition must not mutate: %+v", ap)
	}
}

func TestAcceptThenComplete(t *testing.T) {
	ap := &models.Appointment{Status: string(InitialStatus())}
	if err := Accept(ap, now); err != nil {
		t.Fatalf("accept: %v", err)
	}
	if ap.AcceptedAt == nil {
		t.Fatal("AcceptedAt not set")
	}
	if err := Complete(ap, now.Add(time.Hour)); err != nil {
		t.Fatalf("complete: %v", err)
	}
	if ap.Status != string(StatusCompleted) || ap.CompletedAt == nil {
		t.Fatalf("unexpected appointment state: %+v", ap)
	}
	if err := Reject(ap, now); !errors.Is(err, ErrInvalidStatusTransition) {
		t.Fatalf("reject after complete: expected ErrInvalidStatusTransition, got %v", err)
	}
}

func TestAuthorize(t *testing.T) {
	ap := &models.Appointment{DoctorID: 10, PatientID: 20}

	admin := Actor{UserID: 1, Role: models.RoleAdmin}
	owner := Actor{UserID: 10, Role: models.RoleDoctor}
	otherDoc := Actor{UserID: 11, Role: models.RoleDoctor}
	patient := Actor{UserID: 20, Role: models.RolePatient}
	otherPatient := Actor{UserID: 21, Role: models.RolePatient}

	tests := []struct {
		name  string
		actor Actor
		to    Status
		ok    bool
	}{
		{"admin cancel", admin, StatusCancelled, true},
		{"admin accept", admin, StatusAccepted, true},
		{"owner accept", owner, StatusAccepted, true},
		{"owner reject", owner, StatusRejected, true},
		{"owner complete", owner, StatusCompleted, true},
		{"owner cancel", owner, StatusCancelled, false},
		{"other doctor accept", otherDoc, StatusAccepted, false},
		{"patient cancel", patient, StatusCancelled, true},
		{"patient accept", patient, StatusAccepted, false},
		{"other patient cancel", otherPatient, StatusCancelled, false},
		{"unknown role", Actor{UserID: 20, Role: "guest"}, StatusCancelled, false},
	}

	for _, tt := range tests {
		err := Authorize(tt.actor, ap, tt.to)
		if tt.ok && err != nil {
			t.Errorf("%s: unexpected error %v", tt.name, err)
		}
		if !tt.ok && !errors.Is(err, ErrNotAuthorized) {
			t.Errorf("%s: expected ErrNotAuthorized, got %v", tt.name, err)
		}
	}
}

func TestParseStatus(t *testing.T) {
	if s, err := ParseStatus("accepted"); err != nil || s != StatusAccepted {
		t.Fatalf("ParseStatus(accepted) = %q, %v", s, err)
	}
	if _, err := ParseStatus("scheduled"); !errors.Is(err, ErrInvalidStatus) {
		t.Fatalf("expected ErrInvalidStatus, got %v", err)
	}
}
