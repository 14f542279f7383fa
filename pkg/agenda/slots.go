// Package agenda implements the local time-slot model used to render a
// practitioner's daily schedule: conversions between local wall-clock labels
// and UTC instants, generation of the fixed slot grid, and classification of
// each slot against the day's appointments. Everything here is pure and
// recomputed from its inputs on every call.
package agenda

import (
	"fmt"
	"time"
)

// Default daily display window and slot granularity.
const (
	DayStart    = "08:00"
	DayEnd      = "20:00"
	SlotMinutes = 15
)

const minutesPerDay = 24 * 60

// MinutesToHHMM renders a non-negative minute count as a zero-padded "HH:MM"
// label. It is the inverse of HHMMToMinutes for values in [0, 1439].
func MinutesToHHMM(total int) string {
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}

// HHMMToMinutes parses a zero-padded 24-hour "HH:MM" label into minutes since
// local midnight.
func HHMMToMinutes(s string) (int, error) {
	var h, m int
	if _, err := fmt.Sscanf(s, "%2d:%2d", &h, &m); err != nil {
		return 0, fmt.Errorf("invalid time label %q: %w", s, err)
	}
	if len(s) != 5 || s[2] != ':' || h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, fmt.Errorf("invalid time label %q", s)
	}
	return h*60 + m, nil
}

// GenerateSlots returns every "HH:MM" label from start to end inclusive,
// stepping by step minutes. When the window is not an exact multiple of the
// step, the last label is the greatest one <= end. The sequence is
// recomputed from scratch on every call.
func GenerateSlots(start, end string, step int) ([]string, error) {
	if step <= 0 {
		return nil, fmt.Errorf("slot step must be positive, got %d", step)
	}
	from, err := HHMMToMinutes(start)
	if err != nil {
		return nil, err
	}
	to, err := HHMMToMinutes(end)
	if err != nil {
		return nil, err
	}

	var out []string
	for t := from; t <= to; t += step {
		out = append(out, MinutesToHHMM(t))
	}
	return out, nil
}

// AddMinutes adds a minute offset to a local "HH:MM" label, wrapping modulo
// 24 hours. Crossing midnight wraps silently; a range that spans days is not
// representable here and must be rejected upstream.
func AddMinutes(hhmm string, minutes int) (string, error) {
	t, err := HHMMToMinutes(hhmm)
	if err != nil {
		return "", err
	}
	t = (t + minutes) % minutesPerDay
	if t < 0 {
		t += minutesPerDay
	}
	return MinutesToHHMM(t), nil
}

// LocalToUTC interprets a "YYYY-MM-DD" date and "HH:MM" time as wall-clock
// time in the process's local zone and returns the corresponding UTC instant.
// The same labels produce different instants in different zones; the backend
// treats all instants as zone-agnostic absolute points.
func LocalToUTC(date, hhmm string) (time.Time, error) {
	t, err := time.ParseInLocation("2006-01-02 15:04", date+" "+hhmm, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid local date/time %q %q: %w", date, hhmm, err)
	}
	return t.UTC(), nil
}

// ToLocalHHMM renders an instant as a local "HH:MM" label.
func ToLocalHHMM(t time.Time) string {
	return t.Local().Format("15:04")
}

// FormatLocalTime renders an instant as a local time for display.
func FormatLocalTime(t time.Time) string {
	return t.Local().Format("15:04")
}

// FormatLocalDateTime renders an instant as a local date and time for display,
// e.g. "15/12/2025 10:30".
func FormatLocalDateTime(t time.Time) string {
	return t.Local().Format("02/01/2006 15:04")
}
