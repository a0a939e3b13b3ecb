package booking

import (
	"fmt"
	"time"
)

// SlotNoLongerAvailableError reports a lost booking race or a stale slot:
// between slot generation and commit, the interval was taken or removed.
// The caller must re-fetch availability; the engine never substitutes a
// different slot.
type SlotNoLongerAvailableError struct {
	ProfessionalID string
	Start          time.Time
	End            time.Time
}

func (e SlotNoLongerAvailableError) Error() string {
	return fmt.Sprintf("slot %s to %s for professional %s is no longer available",
		e.Start.Format(time.RFC3339), e.End.Format(time.RFC3339), e.ProfessionalID)
}

// AppointmentStateError reports a status transition the ledger does not
// allow, such as completing a cancelled appointment.
type AppointmentStateError struct {
	AppointmentID string
	Status        string
}

func (e AppointmentStateError) Error() string {
	return fmt.Sprintf("appointment %s is %s and cannot change state", e.AppointmentID, e.Status)
}

// BookingTimeoutError reports that the per-professional critical section
// could not be entered within the configured bound. Safe to retry.
type BookingTimeoutError struct {
	ProfessionalID string
	Waited         time.Duration
}

func (e BookingTimeoutError) Error() string {
	return fmt.Sprintf("timed out after %s waiting for booking lock on professional %s", e.Waited, e.ProfessionalID)
}
