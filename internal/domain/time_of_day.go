package domain

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

const minutesPerDay = 24 * 60

// TimeOfDay is a wall-clock time without a date component.
type TimeOfDay struct {
	Hour   int
	Minute int
}

// ParseTimeOfDay parses an "HH:MM" string. Single-digit hours are accepted.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	s = strings.TrimSpace(s)
	hh, mm, found := strings.Cut(s, ":")
	if !found || len(mm) != 2 || hh == "" || len(hh) > 2 {
		return TimeOfDay{}, fmt.Errorf("%w: time %q must be HH:MM", ErrInvalidInput, s)
	}
	hour, err := strconv.Atoi(hh)
	if err != nil || hour < 0 || hour > 23 {
		return TimeOfDay{}, fmt.Errorf("%w: hour in %q out of range", ErrInvalidInput, s)
	}
	minute, err := strconv.Atoi(mm)
	if err != nil || minute < 0 || minute > 59 {
		return TimeOfDay{}, fmt.Errorf("%w: minute in %q out of range", ErrInvalidInput, s)
	}
	return TimeOfDay{Hour: hour, Minute: minute}, nil
}

// String formats the time as zero-padded HH:MM.
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// MinutesAfterMidnight returns the offset of t from 00:00.
func (t TimeOfDay) MinutesAfterMidnight() int {
	return t.Hour*60 + t.Minute
}

// SleepDuration returns the hours elapsed between falling asleep and waking,
// rounded to 2 decimals. A wake time at or before the start time is taken to
// fall on the following day. ok is false when either time is missing, so
// callers never record a false zero.
func SleepDuration(start, wake *TimeOfDay) (hours float64, ok bool) {
	if start == nil || wake == nil {
		return 0, false
	}
	minutes := wake.MinutesAfterMidnight() - start.MinutesAfterMidnight()
	if minutes <= 0 {
		minutes += minutesPerDay
	}
	return math.Round(float64(minutes)/60*100) / 100, true
}

// SleepDurationFromStrings is SleepDuration over raw "HH:MM" cells. Empty or
// unparseable input yields ok=false.
func SleepDurationFromStrings(start, wake string) (float64, bool) {
	s, err := ParseTimeOfDay(start)
	if err != nil {
		return 0, false
	}
	w, err := ParseTimeOfDay(wake)
	if err != nil {
		return 0, false
	}
	return SleepDuration(&s, &w)
}
