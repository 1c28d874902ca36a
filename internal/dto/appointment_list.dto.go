package dto

import (
	"time"

	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
	"github.com/BruksfildServices01/clinic-scheduler/internal/timezone"
)

type AppointmentListDTO struct {
	ID       uint   `json:"_id"`
	Date     string `json:"date"`
	TimeSlot string `json:"timeSlot"`
	Duration int    `json:"duration"`
	Status   string `json:"status"`
	Notes    string `json:"notes,omitempty"`

	PatientID      uint   `json:"patientId"`
	PatientName    string `json:"patientName,omitempty"`
	DoctorID       uint   `json:"doctorId"`
	DoctorName     string `json:"doctorName,omitempty"`
	Specialization string `json:"specialization,omitempty"`

	AcceptedAt  *time.Time `json:"acceptedAt,omitempty"`
	CancelledAt *time.Time `json:"cancelledAt,omitempty"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
}

func FromAppointment(ap *models.Appointment) AppointmentListDTO {
	out := AppointmentListDTO{
		ID:          ap.ID,
		Date:        timezone.FormatDate(ap.Date),
		TimeSlot:    ap.TimeSlot,
		Duration:    ap.Duration,
		Status:      ap.Status,
		Notes:       ap.Notes,
		PatientID:   ap.PatientID,
		PatientName: ap.Patient.Name,
		DoctorID:    ap.DoctorID,
		DoctorName:  ap.Doctor.Name,
		AcceptedAt:  ap.AcceptedAt,
		CancelledAt: ap.CancelledAt,
		CompletedAt: ap.CompletedAt,
		CreatedAt:   ap.CreatedAt,
	}
	if ap.Doctor.Doctor != nil {
		out.Specialization = string(ap.Doctor.Doctor.Specialization)
	}
	return out
}

func FromAppointments(apps []models.Appointment) []AppointmentListDTO {
	out := make([]AppointmentListDTO, 0, len(apps))
	for i := range apps {
		out = append(out, FromAppointment(&apps[i]))
	}
	return out
}

type BookAppointmentRequest struct {
	DoctorID uint   `json:"doctorId" binding:"required"`
	Date     string `json:"date" binding:"required"`
	TimeSlot string `json:"timeSlot" binding:"required"`
	Notes    string `json:"notes" binding:"max=255"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}
