package scheduling

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// SlotDurationMinutes is the fixed per-appointment service duration.
// Every booking occupies exactly this many minutes of a doctor's calendar;
// it is a process-wide constant, not configurable per doctor.
const SlotDurationMinutes = 20

var ErrInvalidTimeFormat = errors.New("time must be HH:MM in 24-hour format")

// TimeRange is a half-open interval [Start, End) within one calendar day,
// measured in minutes since midnight. Ranges never carry the date: dates
// are opaque grouping keys in this system and no arithmetic crosses them.
// A slot starting late enough to spill past midnight still belongs to the
// day it starts on.
type TimeRange struct {
	Start int
	End   int
}

// ParseTimeRange builds the interval [t, t+SlotDurationMinutes) from a
// wall-clock "HH:MM" string.
func ParseTimeRange(value string) (TimeRange, error) {
	hh, mm, ok := strings.Cut(value, ":")
	if !ok {
		return TimeRange{}, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, value)
	}

	hour, err := parseClockField(hh)
	if err != nil || hour > 23 {
		return TimeRange{}, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, value)
	}
	minute, err := parseClockField(mm)
	if err != nil || minute > 59 {
		return TimeRange{}, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, value)
	}

	start := hour*60 + minute
	return TimeRange{Start: start, End: start + SlotDurationMinutes}, nil
}

func parseClockField(s string) (int, error) {
	if s == "" || len(s) > 2 {
		return 0, ErrInvalidTimeFormat
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, ErrInvalidTimeFormat
		}
	}
	return strconv.Atoi(s)
}

// Overlaps reports whether two half-open intervals intersect. Back-to-back
// slots (one ending exactly when the other starts) do not overlap, so the
// minimum gap between bookings is exactly the slot duration.
func (t TimeRange) Overlaps(other TimeRange) bool {
	return t.Start < other.End && other.Start < t.End
}
