package repository

import (
	"sort"

	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
	"github.com/BruksfildServices01/clinic-scheduler/internal/timeofday"
)

// SortAppointments orders by date, then by slot time of day. Slot labels
// are 12-hour strings and do not sort lexically. Ties fall back to ID.
func SortAppointments(apps []models.Appointment) {
	sort.SliceStable(apps, func(i, j int) bool {
		if !apps[i].Date.Equal(apps[j].Date) {
			return apps[i].Date.Before(apps[j].Date)
		}
		mi, mj := slotMinutes(apps[i].TimeSlot), slotMinutes(apps[j].TimeSlot)
		if mi != mj {
			return mi < mj
		}
		return apps[i].ID < apps[j].ID
	})
}

func slotMinutes(label string) int {
	m, err := timeofday.Parse12HourToMinutes(label)
	if err != nil {
		return timeofday.MinutesPerDay
	}
	return m
}
