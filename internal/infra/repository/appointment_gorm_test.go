package repository

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"

	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/appointment"
)

func TestMapUniqueViolation(t *testing.T) {
	tests := []struct {
		name string
		in   error
		want error
	}{
		{"doctor slot", &pgconn.PgError{Code: "23505", ConstraintName: IndexDoctorSlot}, domain.ErrSlotAlreadyBooked},
		{"patient day", fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505", ConstraintName: IndexPatientDay}), domain.ErrDuplicateDailyBooking},
	}

	for _, tt := range tests {
		if got := mapUniqueViolation(tt.in); !errors.Is(got, tt.want) {
			t.Errorf("%s: got %v, want %v", tt.name, got, tt.want)
		}
	}

	other := &pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"}
	if got := mapUniqueViolation(other); got != error(other) {
		t.Errorf("unrelated constraint must pass through, got %v", got)
	}

	fk := &pgconn.PgError{Code: "23503"}
	if got := mapUniqueViolation(fk); got != error(fk) {
		t.Errorf("non-unique errors must pass through, got %v", got)
	}

	if mapUniqueViolation(nil) != nil {
		t.Error("nil must stay nil")
	}
}
