// Package dates implements the calendar-date arithmetic used by the
// compliance engine. All stored dates are timezone-naive calendar dates;
// normalizing to midnight UTC before subtracting keeps day counts exact
// across daylight-saving transitions.
package dates

import "time"

const (
	// ISO is the storage and API wire format for calendar dates.
	ISO = "2006-01-02"
	// NZ is the day-first display format used in reminder messages.
	NZ = "02/01/2006"
)

// Normalize truncates t to midnight UTC, keeping its calendar day.
func Normalize(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// DaysUntil returns the whole calendar days from 'from' until 'to'.
// Negative when 'to' is in the past. Both arguments are normalized first,
// so the division is exact (ceil semantics over date-only values).
func DaysUntil(from, to time.Time) int {
	return int(Normalize(to).Sub(Normalize(from)) / (24 * time.Hour))
}

// Parse parses an ISO calendar date into a midnight-UTC instant.
func Parse(s string) (time.Time, error) {
	return time.ParseInLocation(ISO, s, time.UTC)
}

// FormatISO renders t as an ISO calendar date.
func FormatISO(t time.Time) string {
	return t.Format(ISO)
}

// FormatNZ renders t in the day-first format reminders display.
func FormatNZ(t time.Time) string {
	return t.Format(NZ)
}
