package schedule

import "errors"

// Kind classifies a scheduling failure. Handlers map kinds to HTTP status
// codes and the code is echoed to clients alongside the message, so values
// are stable API surface.
type Kind string

const (
	KindMissingField   Kind = "missing_field"
	KindInvalidRange   Kind = "invalid_range"
	KindOverlap        Kind = "overlap"
	KindAlreadyBooked  Kind = "already_booked"
	KindNotFound       Kind = "not_found"
	KindPartialBooking Kind = "partial_booking_failure"
	KindTimeout        Kind = "timeout"
	KindInternal       Kind = "internal_error"
)

type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string { return e.Message }

func Errf(k Kind, msg string) *Error {
	return &Error{Kind: k, Message: msg}
}

// KindOf extracts the failure kind, defaulting to KindInternal for errors
// that did not originate in the scheduling core.
func KindOf(err error) Kind {
	var se *Error
	if errors.As(err, &se) {
		return se.Kind
	}
	return KindInternal
}
