package calendar

import "fmt"

// ScheduleConflictError reports that a new or updated schedule window
// overlaps an existing window on the same weekday.
type ScheduleConflictError struct {
	ProfessionalID string
	ConflictingID  string
}

func (e ScheduleConflictError) Error() string {
	return fmt.Sprintf("schedule window overlaps existing window %s for professional %s", e.ConflictingID, e.ProfessionalID)
}
