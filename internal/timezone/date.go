package timezone

import (
	"errors"
	"regexp"
	"strings"
	"time"
)

var ErrInvalidDate = errors.New("invalid date")

var (
	isoPrefix  = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}`)
	slashDMY   = regexp.MustCompile(`^\d{2}/\d{2}/\d{4}$`)
	dashDMY    = regexp.MustCompile(`^\d{2}-\d{2}-\d{4}$`)
	timestamps = []string{time.RFC3339Nano, time.RFC3339, "2006-01-02T15:04:05", "2006-01-02T15:04"}
)

// Layouts tried when none of the explicit formats match.
var fallbackLayouts = []string{
	time.RFC1123Z,
	time.RFC1123,
	time.RFC850,
	time.RFC822Z,
	time.RFC822,
	time.ANSIC,
	time.UnixDate,
	"Mon Jan 2 2006",
	"Mon Jan 02 2006",
	"Jan 2, 2006",
	"January 2, 2006",
	"2 Jan 2006",
	"2 January 2006",
	"2006/01/02",
}

// ParseDate reads a request date and truncates it to a civil date.
//
// Accepted, in order: ISO "YYYY-MM-DD" optionally followed by a time part,
// "DD/MM/YYYY", "DD-MM-YYYY", then a list of common textual layouts.
// Inputs carrying an instant (ISO timestamps with offset, RFC1123, ...) are
// first moved into loc so the calendar day is the clinic's.
//
// "01/02/2025" is always read day-first.
func ParseDate(input string, loc *time.Location) (time.Time, error) {
	s := strings.TrimSpace(input)
	if s == "" {
		return time.Time{}, ErrInvalidDate
	}
	if loc == nil {
		loc = time.UTC
	}

	if isoPrefix.MatchString(s) {
		for _, layout := range timestamps {
			if t, err := time.ParseInLocation(layout, s, loc); err == nil {
				return CivilDate(t.In(loc)), nil
			}
		}
		if t, err := time.Parse("2006-01-02", s[:10]); err == nil && (len(s) == 10 || s[10] == 'T' || s[10] == ' ') {
			return CivilDate(t), nil
		}
		return time.Time{}, ErrInvalidDate
	}

	if slashDMY.MatchString(s) {
		return parseCivil("02/01/2006", s)
	}

	if dashDMY.MatchString(s) {
		return parseCivil("02-01-2006", s)
	}

	for _, layout := range fallbackLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return CivilDate(t.In(loc)), nil
		}
	}

	return time.Time{}, ErrInvalidDate
}

func parseCivil(layout, s string) (time.Time, error) {
	t, err := time.Parse(layout, s)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return CivilDate(t), nil
}
