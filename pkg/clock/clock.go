// Package clock converts between "HH:MM" clock-face strings and minutes since midnight.
package clock

import (
	"fmt"
	"strconv"
)

// MinutesPerDay is the number of minutes on a clock face
const MinutesPerDay = 24 * 60

// TimeToMinutes converts "HH:MM" to minutes since midnight.
// Returns 0 for input that is not HH:MM.
func TimeToMinutes(t string) int {
	m, err := ParseTime(t)
	if err != nil {
		return 0
	}
	return m
}

// ParseTime strictly parses "HH:MM" in the range 00:00-23:59
func ParseTime(t string) (int, error) {
	if len(t) != 5 || t[2] != ':' {
		return 0, fmt.Errorf("time must be in HH:MM format, got %q", t)
	}
	hours, err := strconv.Atoi(t[0:2])
	if err != nil || !isDigits(t[0:2]) {
		return 0, fmt.Errorf("invalid hour in %q", t)
	}
	mins, err := strconv.Atoi(t[3:5])
	if err != nil || !isDigits(t[3:5]) {
		return 0, fmt.Errorf("invalid minute in %q", t)
	}
	if hours > 23 || mins > 59 {
		return 0, fmt.Errorf("time out of range: %q", t)
	}
	return hours*60 + mins, nil
}

// MinutesToTime converts minutes since midnight to "HH:MM" format
func MinutesToTime(m int) string {
	if m < 0 {
		m = 0
	}
	if m >= MinutesPerDay {
		m = MinutesPerDay - 1
	}
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}

// CrossesMidnight reports whether end is earlier on the clock face than start.
// Equal times do not cross.
func CrossesMidnight(start, end string) bool {
	return TimeToMinutes(end) < TimeToMinutes(start)
}

// Overlaps is the half-open overlap test on minute offsets
func Overlaps(aStart, aEnd, bStart, bEnd int) bool {
	return aStart < bEnd && aEnd > bStart
}

// DurationHours returns the length of start-end in hours, adding a day when end is before start
func DurationHours(start, end string) float64 {
	diff := float64(TimeToMinutes(end)-TimeToMinutes(start)) / 60
	if diff < 0 {
		diff += 24
	}
	return diff
}

// Hour returns the hour component of an "HH:MM" string
func Hour(t string) int {
	return TimeToMinutes(t) / 60
}

func isDigits(s string) bool {
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
