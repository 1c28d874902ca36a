// Package timeofday converts between clock strings and minute offsets
// since midnight. Two notations are used across the service: "HH:MM" in
// 24-hour form for stored working hours, and "H:MM AM/PM" for slot labels.
package timeofday

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	MinutesPerDay = 24 * 60

	layout24 = "15:04"
	layout12 = "3:04 PM"
)

var ErrMalformedTime = errors.New("malformed time")

// ToMinutes parses a 24-hour "HH:MM" string.
func ToMinutes(hhmm string) (int, error) {
	t, err := time.Parse(layout24, strings.TrimSpace(hhmm))
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrMalformedTime, hhmm)
	}
	return t.Hour()*60 + t.Minute(), nil
}

// To12Hour formats minutes since midnight as a slot label, e.g. 630 -> "10:30 AM".
// Values outside a single day wrap around.
func To12Hour(minutes int) string {
	minutes = ((minutes % MinutesPerDay) + MinutesPerDay) % MinutesPerDay

	hours := minutes / 60
	mins := minutes % 60

	display := hours
	switch {
	case hours == 0:
		display = 12
	case hours > 12:
		display = hours - 12
	}

	meridiem := "AM"
	if hours >= 12 {
		meridiem = "PM"
	}

	return fmt.Sprintf("%d:%02d %s", display, mins, meridiem)
}

// Parse12HourToMinutes is the inverse of To12Hour. The meridiem is
// case-insensitive; "12:00 AM" is midnight and "12:00 PM" is noon.
func Parse12HourToMinutes(label string) (int, error) {
	t, err := time.Parse(layout12, strings.ToUpper(strings.TrimSpace(label)))
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrMalformedTime, label)
	}
	return t.Hour()*60 + t.Minute(), nil
}

// To24Hour formats minutes since midnight as "HH:MM".
func To24Hour(minutes int) string {
	minutes = ((minutes % MinutesPerDay) + MinutesPerDay) % MinutesPerDay
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// NormalizeLabel returns the canonical form of a slot label so that
// "09:00 am" and "9:00 AM" address the same slot.
func NormalizeLabel(label string) (string, error) {
	m, err := Parse12HourToMinutes(label)
	if err != nil {
		return "", err
	}
	return To12Hour(m), nil
}
