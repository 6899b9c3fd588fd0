package core

import (
	"strconv"
	"strings"
)

const minutesPerDay = 24 * 60

// ComputeHours converts a time-in/time-out pair of 24-hour clock times into
// decimal hours worked, rounded half-up to one decimal place. When time-out
// reads earlier than time-in the shift is taken to cross midnight and a full
// day is added before subtracting; a shift is assumed never to exceed 24
// hours. A negative duration after that correction cannot normally occur but
// is still rejected so a bad span never reaches storage.
func ComputeHours(timeIn, timeOut string) (Hours, error) {
	in, err := parseClockMinutes(timeIn)
	if err != nil {
		return Hours{}, err
	}
	out, err := parseClockMinutes(timeOut)
	if err != nil {
		return Hours{}, err
	}
	if out < in {
		out += minutesPerDay // overnight shift
	}
	span := out - in
	if span < 0 {
		return Hours{}, ErrInvalidTimeRange
	}
	// tenths = round(span/60 * 10), half-up.
	return Hours{Tenths: (int64(span) + 3) / 6}, nil
}

// parseClockMinutes parses "HH:MM" (a trailing ":SS" is tolerated and
// ignored) into minutes since midnight.
func parseClockMinutes(s string) (int, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 2 && len(parts) != 3 {
		return 0, ErrInvalidClockTime
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, ErrInvalidClockTime
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, ErrInvalidClockTime
	}
	return hour*60 + minute, nil
}
