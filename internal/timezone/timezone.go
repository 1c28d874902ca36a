package timezone

import "time"

const DefaultTimezone = "UTC"

func IsValid(tz string) bool {
	if tz == "" {
		return false
	}
	_, err := time.LoadLocation(tz)
	return err == nil
}

func Location(tz string) *time.Location {
	if IsValid(tz) {
		if loc, err := time.LoadLocation(tz); err == nil {
			return loc
		}
	}

	loc, _ := time.LoadLocation(DefaultTimezone)
	return loc
}

// Clock is the source of "now" for every date and time-of-day comparison.
// Location is the clinic's zone, used to read request dates.
type Clock interface {
	Now() time.Time
	Location() *time.Location
}

// ClinicClock reports wall time in the clinic's location.
type ClinicClock struct {
	loc *time.Location
}

func NewClinicClock(tz string) ClinicClock {
	return ClinicClock{loc: Location(tz)}
}

func (c ClinicClock) Now() time.Time {
	return time.Now().In(c.loc)
}

func (c ClinicClock) Location() *time.Location {
	return c.loc
}

// CivilDate truncates t to its calendar day. The result is midnight UTC
// carrying t's own year, month and day, so two civil dates compare equal
// regardless of the location they were read in.
func CivilDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// FixedClock always reports the same instant. Its location is the
// instant's own.
type FixedClock struct {
	T time.Time
}

func (c FixedClock) Now() time.Time {
	return c.T
}

func (c FixedClock) Location() *time.Location {
	return c.T.Location()
}

// MinuteOfDay returns minutes elapsed since local midnight.
func MinuteOfDay(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}

// FormatDate renders a civil date the way the API returns it.
func FormatDate(d time.Time) string {
	return d.Format("2006-01-02")
}
