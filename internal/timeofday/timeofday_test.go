package timeofday

import (
	"errors"
	"testing"
)

func TestToMinutes(t *testing.T) {
	cases := map[string]int{
		"00:00": 0,
		"10:00": 600,
		"12:30": 750,
		"17:00": 1020,
		"23:59": 1439,
		"9:05":  545,
	}
	for in, want := range cases {
		got, err := ToMinutes(in)
		if err != nil {
			t.Fatalf("ToMinutes(%q) error: %v", in, err)
		}
		if got != want {
			t.Errorf("ToMinutes(%q) = %d, want %d", in, got, want)
		}
	}
}

func TestToMinutes_Malformed(t *testing.T) {
	for _, in := range []string{"", "abc", "24:00", "12:60", "1200", "-1:00", "ab:cd"} {
		if _, err := ToMinutes(in); !errors.Is(err, ErrMalformedTime) {
			t.Errorf("ToMinutes(%q) expected ErrMalformedTime, got %v", in, err)
		}
	}
}

func TestTo12Hour(t *testing.T) {
	cases := map[int]string{
		0:    "12:00 AM",
		30:   "12:30 AM",
		540:  "9:00 AM",
		630:  "10:30 AM",
		720:  "12:00 PM",
		750:  "12:30 PM",
		780:  "1:00 PM",
		990:  "4:30 PM",
		1439: "11:59 PM",
	}
	for in, want := range cases {
		if got := To12Hour(in); got != want {
			t.Errorf("To12Hour(%d) = %q, want %q", in, got, want)
		}
	}
}

func TestParse12HourToMinutes(t *testing.T) {
	cases := map[string]int{
		"12:00 AM": 0,
		"12:00 PM": 720,
		"10:30 AM": 630,
		"4:30 PM":  990,
		"04:30 pm": 990,
		" 9:00 am": 540,
	}
	for in, want := range cases {
		got, err := Parse12HourToMinutes(in)
		if err != nil {
			t.Fatalf("Parse12HourToMinutes(%q) error: %v", in, err)
		}
		if got != want {
			t.Errorf("Parse12HourToMinutes(%q) = %d, want %d", in, got, want)
		}
	}
}

func TestParse12HourToMinutes_Malformed(t *testing.T) {
	for _, in := range []string{"", "10:30", "13:00 PM", "10:75 AM", "ten AM", "10:30 XM"} {
		if _, err := Parse12HourToMinutes(in); !errors.Is(err, ErrMalformedTime) {
			t.Errorf("Parse12HourToMinutes(%q) expected ErrMalformedTime, got %v", in, err)
		}
	}
}

func TestRoundTripWholeDay(t *testing.T) {
	for m := 0; m < MinutesPerDay; m++ {
		label := To12Hour(m)
		got, err := Parse12HourToMinutes(label)
		if err != nil {
			t.Fatalf("round trip %d (%q): %v", m, label, err)
		}
		if got != m {
			t.Fatalf("round trip %d via %q returned %d", m, label, got)
		}
	}
}

func TestNormalizeLabel(t *testing.T) {
	got, err := NormalizeLabel("09:00 am")
	if err != nil {
		t.Fatalf("NormalizeLabel error: %v", err)
	}
	if got != "9:00 AM" {
		t.Fatalf("expected 9:00 AM, got %q", got)
	}
}

func TestTo24Hour(t *testing.T) {
	if got := To24Hour(605); got != "10:05" {
		t.Fatalf("expected 10:05, got %q", got)
	}
}
