package availability

import "fmt"

// InvalidTimeInputError reports a malformed wall-clock input or a wall-clock
// time that does not exist in the given zone on the given date (DST spring
// forward). The engine rejects such input instead of silently shifting it.
type InvalidTimeInputError struct {
	Date   string
	Clock  string
	Zone   string
	Reason string
}

func (e InvalidTimeInputError) Error() string {
	return fmt.Sprintf("invalid time input %q %q in zone %q: %s", e.Date, e.Clock, e.Zone, e.Reason)
}

// NotFoundError reports an unknown professional, service or appointment.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Resource, e.ID)
}

// UnavailableError wraps an infrastructure failure (storage unreachable).
// Unlike the business-rule errors it is safe to retry.
type UnavailableError struct {
	Op  string
	Err error
}

func (e UnavailableError) Error() string {
	return fmt.Sprintf("%s unavailable: %v", e.Op, e.Err)
}

func (e UnavailableError) Unwrap() error {
	return e.Err
}
