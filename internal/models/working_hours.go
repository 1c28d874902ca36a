package models

import "time"

// WorkingHours holds "HH:MM" 24-hour boundaries for one working day.
type WorkingHours struct {
	StartTime  string `gorm:"size:5;not null;default:'10:00'" json:"startTime"`
	EndTime    string `gorm:"size:5;not null;default:'17:00'" json:"endTime"`
	LunchStart string `gorm:"size:5;not null;default:'12:00'" json:"lunchStart"`
	LunchEnd   string `gorm:"size:5;not null;default:'14:00'" json:"lunchEnd"`
}

// ClinicHours is the clinic-wide default window.
func ClinicHours() WorkingHours {
	return WorkingHours{
		StartTime:  "10:00",
		EndTime:    "17:00",
		LunchStart: "12:00",
		LunchEnd:   "14:00",
	}
}

type WeeklyAvailability struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	DoctorID uint `gorm:"not null;uniqueIndex:ux_weekly_doctor_day" json:"doctorId"`

	// time.Weekday: 0 = Sunday ... 6 = Saturday
	Weekday int `gorm:"not null;uniqueIndex:ux_weekly_doctor_day" json:"weekday"`

	IsEnabled    bool         `gorm:"not null" json:"isEnabled"`
	WorkingHours WorkingHours `gorm:"embedded" json:"workingHours"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// DefaultEnabled reports whether a weekday is open when the doctor has not
// configured it: Monday to Friday.
func DefaultEnabled(day time.Weekday) bool {
	return day != time.Saturday && day != time.Sunday
}

// DefaultWeeklyRows returns the seven default schedule rows for a doctor.
func DefaultWeeklyRows(doctorID uint) []WeeklyAvailability {
	rows := make([]WeeklyAvailability, 0, 7)
	for d := time.Sunday; d <= time.Saturday; d++ {
		rows = append(rows, WeeklyAvailability{
			DoctorID:     doctorID,
			Weekday:      int(d),
			IsEnabled:    DefaultEnabled(d),
			WorkingHours: ClinicHours(),
		})
	}
	return rows
}

// DateOverride replaces the weekly schedule for one calendar date.
type DateOverride struct {
	ID       uint      `gorm:"primaryKey" json:"id"`
	DoctorID uint      `gorm:"not null;uniqueIndex:ux_override_doctor_date" json:"doctorId"`
	Date     time.Time `gorm:"type:date;not null;uniqueIndex:ux_override_doctor_date" json:"date"`

	IsEnabled    bool         `gorm:"not null;default:true" json:"isEnabled"`
	WorkingHours WorkingHours `gorm:"embedded" json:"workingHours"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
