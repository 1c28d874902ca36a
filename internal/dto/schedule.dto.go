package dto

import (
	"time"

	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
	"github.com/BruksfildServices01/clinic-scheduler/internal/timezone"
)

type DoctorDTO struct {
	ID             uint   `json:"_id"`
	Name           string `json:"name"`
	Email          string `json:"email"`
	Specialization string `json:"specialization"`
	Bio            string `json:"bio,omitempty"`
}

func FromDoctors(users []models.User) []DoctorDTO {
	out := make([]DoctorDTO, 0, len(users))
	for _, u := range users {
		d := DoctorDTO{ID: u.ID, Name: u.Name, Email: u.Email, Bio: u.Bio}
		if u.Doctor != nil {
			d.Specialization = string(u.Doctor.Specialization)
		}
		out = append(out, d)
	}
	return out
}

type WeeklyDayDTO struct {
	Day          string              `json:"day"`
	IsEnabled    bool                `json:"isEnabled"`
	WorkingHours models.WorkingHours `json:"workingHours"`
}

// FromWeekly keys each row by its weekday name; the caller provides the
// naming so this package stays free of domain imports.
func FromWeekly(rows []models.WeeklyAvailability, name func(time.Weekday) string) []WeeklyDayDTO {
	out := make([]WeeklyDayDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, WeeklyDayDTO{
			Day:          name(time.Weekday(r.Weekday)),
			IsEnabled:    r.IsEnabled,
			WorkingHours: r.WorkingHours,
		})
	}
	return out
}

type DateOverrideDTO struct {
	Date         string              `json:"date"`
	IsEnabled    bool                `json:"isEnabled"`
	WorkingHours models.WorkingHours `json:"workingHours"`
}

func FromOverrides(rows []models.DateOverride) []DateOverrideDTO {
	out := make([]DateOverrideDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, DateOverrideDTO{
			Date:         timezone.FormatDate(r.Date),
			IsEnabled:    r.IsEnabled,
			WorkingHours: r.WorkingHours,
		})
	}
	return out
}

type ToggleRequest struct {
	IsEnabled *bool `json:"isEnabled" binding:"required"`
}

type AvailabilityDTO struct {
	Date         string              `json:"date"`
	Available    bool                `json:"available"`
	Source       string              `json:"source"`
	WorkingHours models.WorkingHours `json:"workingHours"`
}
