package availability

import (
	"errors"
	"time"

	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
	"github.com/BruksfildServices01/clinic-scheduler/internal/timeofday"
	"github.com/BruksfildServices01/clinic-scheduler/internal/timezone"
)

var (
	ErrOutsideWorkingHours = errors.New("slot outside working hours")
	ErrDuringLunchBreak    = errors.New("slot during lunch break")
	ErrOffGrid             = errors.New("slot not on the grid")
)

// bounds is a WorkingHours window converted to minutes since midnight.
type bounds struct {
	start, end, lunchStart, lunchEnd int
}

func toBounds(wh models.WorkingHours) (bounds, error) {
	var (
		b   bounds
		err error
	)
	if b.start, err = timeofday.ToMinutes(wh.StartTime); err != nil {
		return b, err
	}
	if b.end, err = timeofday.ToMinutes(wh.EndTime); err != nil {
		return b, err
	}
	if b.lunchStart, err = timeofday.ToMinutes(wh.LunchStart); err != nil {
		return b, err
	}
	if b.lunchEnd, err = timeofday.ToMinutes(wh.LunchEnd); err != nil {
		return b, err
	}
	return b, nil
}

// GenerateSlots lists the bookable slot labels of a working day: the
// morning segment [start, lunchStart) followed by the afternoon segment
// [lunchEnd, end), stepping SlotDurationMinutes. A slot must fit entirely
// inside its segment, so a trailing partial slot is dropped.
func GenerateSlots(wh models.WorkingHours) ([]string, error) {
	b, err := toBounds(wh)
	if err != nil {
		return nil, err
	}

	slots := make([]string, 0, max(b.end-b.start, 0)/models.SlotDurationMinutes+1)
	slots = appendSegment(slots, b.start, min(b.lunchStart, b.end))
	slots = appendSegment(slots, max(b.lunchEnd, b.start), b.end)
	return slots, nil
}

func appendSegment(dst []string, from, to int) []string {
	for m := from; m+models.SlotDurationMinutes <= to; m += models.SlotDurationMinutes {
		dst = append(dst, timeofday.To12Hour(m))
	}
	return dst
}

// CheckSlot validates a slot start against a resolved window.
// The working window is half-open [start, end) as is the lunch break.
// A start that is not one GenerateSlots would produce for the window is
// ErrOffGrid, so an accepted slot never overlaps a neighbour.
func CheckSlot(w Window, slotMinutes int) error {
	if !w.Available {
		return ErrOutsideWorkingHours
	}

	b, err := toBounds(w.Hours)
	if err != nil {
		return err
	}

	if slotMinutes < b.start || slotMinutes >= b.end {
		return ErrOutsideWorkingHours
	}
	if slotMinutes >= b.lunchStart && slotMinutes < b.lunchEnd {
		return ErrDuringLunchBreak
	}

	from, to := b.start, min(b.lunchStart, b.end)
	if slotMinutes >= b.lunchEnd {
		from, to = max(b.lunchEnd, b.start), b.end
	}
	if (slotMinutes-from)%models.SlotDurationMinutes != 0 || slotMinutes+models.SlotDurationMinutes > to {
		return ErrOffGrid
	}
	return nil
}

// Slot is one entry of a day's grid as returned to clients.
type Slot struct {
	Time      string `json:"time"`
	Available bool   `json:"available"`
}

// NoCutoff disables the elapsed-time filter of BuildGrid.
const NoCutoff = -1

// BuildGrid marks each generated label against the set of taken labels and
// against cutoff: a slot starting at or before the cutoff minute has
// already passed. With keepAll false the unavailable entries are dropped.
func BuildGrid(labels []string, taken map[string]bool, cutoff int, keepAll bool) []Slot {
	out := make([]Slot, 0, len(labels))
	for _, label := range labels {
		free := !taken[label]
		if free && cutoff != NoCutoff {
			if m, err := timeofday.Parse12HourToMinutes(label); err == nil && m <= cutoff {
				free = false
			}
		}
		if !free && !keepAll {
			continue
		}
		out = append(out, Slot{Time: label, Available: free})
	}
	return out
}

// Cutoff returns the BuildGrid cutoff for a civil date given the current
// clinic time: every slot of a past day has elapsed, none of a future day.
func Cutoff(day, now time.Time) int {
	today := timezone.CivilDate(now)
	switch {
	case day.Before(today):
		return timeofday.MinutesPerDay
	case day.Equal(today):
		return timezone.MinuteOfDay(now)
	}
	return NoCutoff
}
