package availability

import (
	"errors"
	"strings"
	"time"

	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
	"github.com/BruksfildServices01/clinic-scheduler/internal/timezone"
)

var (
	ErrDoctorNotFound = errors.New("doctor not found")
	ErrNotADoctor     = errors.New("user is not a doctor")
	ErrInvalidDay     = errors.New("invalid weekday name")
)

// Source tells which rule produced a Window.
type Source string

const (
	SourceOverride Source = "override"
	SourceWeekly   Source = "weekly"
	SourceDefault  Source = "default"
	SourceClosed   Source = "closed"
)

// Window is the outcome of resolving a doctor's day. When Available is
// false the Hours field is zero and no slot can be offered.
type Window struct {
	Date      time.Time           `json:"date"`
	Available bool                `json:"available"`
	Source    Source              `json:"source"`
	Hours     models.WorkingHours `json:"workingHours"`
}

var weekdayNames = [...]string{"sunday", "monday", "tuesday", "wednesday", "thursday", "friday", "saturday"}

func WeekdayName(d time.Weekday) string {
	return weekdayNames[d]
}

func ParseWeekday(name string) (time.Weekday, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, n := range weekdayNames {
		if n == name {
			return time.Weekday(i), nil
		}
	}
	return 0, ErrInvalidDay
}

// Resolve determines the working window of a doctor on a civil date.
//
// Precedence: a date override decides the day on its own (enabled → its
// hours, disabled → closed); otherwise an enabled weekly entry; otherwise
// the clinic hours on Monday to Friday; weekends are closed.
func Resolve(doctor *models.User, date time.Time) (Window, error) {
	if doctor == nil {
		return Window{}, ErrDoctorNotFound
	}
	if !doctor.IsDoctor() {
		return Window{}, ErrNotADoctor
	}

	day := timezone.CivilDate(date)
	out := Window{Date: day}

	if o := findOverride(doctor.Doctor.Availability, day); o != nil {
		if !o.IsEnabled {
			out.Source = SourceClosed
			return out, nil
		}
		out.Available = true
		out.Source = SourceOverride
		out.Hours = o.WorkingHours
		return out, nil
	}

	weekday := day.Weekday()
	if w := findWeekly(doctor.Doctor.WeeklyAvailability, weekday); w != nil && w.IsEnabled {
		out.Available = true
		out.Source = SourceWeekly
		out.Hours = w.WorkingHours
		return out, nil
	}

	if models.DefaultEnabled(weekday) {
		out.Available = true
		out.Source = SourceDefault
		out.Hours = models.ClinicHours()
		return out, nil
	}

	out.Source = SourceClosed
	return out, nil
}

func findOverride(overrides []models.DateOverride, day time.Time) *models.DateOverride {
	for i := range overrides {
		if timezone.CivilDate(overrides[i].Date).Equal(day) {
			return &overrides[i]
		}
	}
	return nil
}

func findWeekly(rows []models.WeeklyAvailability, day time.Weekday) *models.WeeklyAvailability {
	for i := range rows {
		if rows[i].Weekday == int(day) {
			return &rows[i]
		}
	}
	return nil
}

// WeeklySchedule returns all seven days of a doctor's schedule, Sunday
// first, filling days that were never stored with their defaults.
func WeeklySchedule(doctor *models.User) ([]models.WeeklyAvailability, error) {
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}
	if !doctor.IsDoctor() {
		return nil, ErrNotADoctor
	}

	out := models.DefaultWeeklyRows(doctor.ID)
	for _, row := range doctor.Doctor.WeeklyAvailability {
		if row.Weekday >= 0 && row.Weekday < len(out) {
			out[row.Weekday] = row
		}
	}
	return out, nil
}

// MissingWeekdays lists the days that have no stored schedule row.
func MissingWeekdays(rows []models.WeeklyAvailability) []time.Weekday {
	seen := make(map[int]bool, len(rows))
	for _, r := range rows {
		seen[r.Weekday] = true
	}
	var missing []time.Weekday
	for d := time.Sunday; d <= time.Saturday; d++ {
		if !seen[int(d)] {
			missing = append(missing, d)
		}
	}
	return missing
}
