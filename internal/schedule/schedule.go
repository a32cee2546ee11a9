package schedule

import (
	"fmt"
	"time"

	"appointment-booking-api/internal/model"
)

// Pure decision logic for slot creation and booking admissibility. No I/O:
// callers fetch existing rows first and pass them in, and the storage layer
// holds the constraints that backstop concurrent callers.

const (
	dateLayout  = "2006-01-02"
	clockLayout = "15:04"
)

// NormalizeDate parses a calendar date and returns its canonical
// "YYYY-MM-DD" form. Dates are civil days with no timezone attached;
// normalizing once at the boundary keeps client and storage forms identical.
func NormalizeDate(s string) (string, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return "", Errf(KindInvalidRange, fmt.Sprintf("invalid date %q, want YYYY-MM-DD", s))
	}
	return t.Format(dateLayout), nil
}

// NormalizeClock parses a 24-hour wall-clock time and returns its canonical
// "HH:MM" form. Seconds are tolerated ("09:00:00" from SQL TIME columns)
// and truncated.
func NormalizeClock(s string) (string, error) {
	for _, layout := range []string{clockLayout, "15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format(clockLayout), nil
		}
	}
	return "", Errf(KindInvalidRange, fmt.Sprintf("invalid time %q, want HH:mm", s))
}

// ClockMinutes converts a canonical "HH:MM" clock to minutes since midnight.
func ClockMinutes(s string) (int, error) {
	t, err := time.Parse(clockLayout, s)
	if err != nil {
		return 0, Errf(KindInvalidRange, fmt.Sprintf("invalid time %q, want HH:mm", s))
	}
	return t.Hour()*60 + t.Minute(), nil
}

// Overlaps reports whether the half-open intervals [s1,e1) and [s2,e2)
// intersect. Touching endpoints (e1 == s2) do not overlap.
func Overlaps(s1, e1, s2, e2 int) bool {
	return s1 < e2 && s2 < e1
}

// ValidateSlot decides whether a candidate slot (date, start, end) may be
// created given every existing slot on the same date. Existing slots are
// checked regardless of status: a booked slot still occupies its interval.
func ValidateSlot(date, start, end string, existing []model.Slot) error {
	if date == "" || start == "" || end == "" {
		return Errf(KindMissingField, "All fields are required.")
	}
	s, err := ClockMinutes(start)
	if err != nil {
		return err
	}
	e, err := ClockMinutes(end)
	if err != nil {
		return err
	}
	if s >= e {
		return Errf(KindInvalidRange, "End time must be after start time.")
	}
	for _, slot := range existing {
		if slot.Date != date {
			continue
		}
		es, err := ClockMinutes(slot.Start)
		if err != nil {
			return err
		}
		ee, err := ClockMinutes(slot.End)
		if err != nil {
			return err
		}
		if Overlaps(s, e, es, ee) {
			return Errf(KindOverlap, "Appointment slot overlaps with an existing slot.")
		}
	}
	return nil
}

// ValidateBooking rejects a booking whose exact (date, start, end) window is
// already taken. Exact-match rather than interval overlap: appointments
// derive from slots that were already validated as non-overlapping.
func ValidateBooking(date, start, end string, existing []model.Appointment) error {
	if date == "" || start == "" || end == "" {
		return Errf(KindMissingField, "All fields are required.")
	}
	for _, a := range existing {
		if a.Date == date && a.Start == start && a.End == end {
			return Errf(KindAlreadyBooked, "This time slot is already booked.")
		}
	}
	return nil
}
