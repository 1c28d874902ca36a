package models

import "time"

const SlotDurationMinutes = 30

type Appointment struct {
	ID uint `gorm:"primaryKey" json:"_id"`

	PatientID uint `gorm:"not null;index" json:"patientId"`
	Patient   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"patient"`

	DoctorID uint `gorm:"not null;index" json:"doctorId"`
	Doctor   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"doctor"`

	// Date is the calendar day of the visit, without time of day.
	Date     time.Time `gorm:"type:date;not null;index" json:"date"`
	TimeSlot string    `gorm:"size:10;not null" json:"timeSlot"`
	Duration int       `gorm:"not null;default:30" json:"duration"`

	Status string `gorm:"size:20;not null;default:'pending'" json:"status"`

	Notes       string     `gorm:"size:255" json:"notes,omitempty"`
	AcceptedAt  *time.Time `json:"acceptedAt,omitempty"`
	CancelledAt *time.Time `json:"cancelledAt,omitempty"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
