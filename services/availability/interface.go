package availability

import (
	"context"
	"time"

	appointmentRepo "clinicbook/database/repository/appointment"
	professionalRepo "clinicbook/database/repository/professional"
	scheduleRepo "clinicbook/database/repository/schedule"
	"clinicbook/models"
)

// AvailabilityRequest identifies one availability query. Date is the target
// day in the professional's timezone; ViewerZone controls only how the
// resulting slots are rendered (defaults to the professional's zone).
type AvailabilityRequest struct {
	ProfessionalID string
	Date           string // "2006-01-02"
	ServiceID      string
	ViewerZone     string
}

// Engine computes the bookable candidate set for a professional and day.
// Reads are lock-free and tolerate staleness; the booking transaction is the
// final authority on occupancy.
type Engine interface {
	// GetAvailableSlots derives the ordered, deduplicated candidate slots by
	// intersecting the weekly schedule with breaks and the appointment
	// ledger. Re-running with an unchanged snapshot reproduces the same set.
	GetAvailableSlots(ctx context.Context, req AvailabilityRequest) ([]models.AvailableSlot, error)
	// SlotWithinSchedule reports whether [start, end) lies fully inside a
	// schedule window for the service and intersects no break. Used by the
	// booking transaction for its commit-time re-validation.
	SlotWithinSchedule(ctx context.Context, professionalID, serviceID string, start, end time.Time) (bool, error)
}

// DefaultEngine is the production implementation backed by the mongo repos.
type DefaultEngine struct {
	Professionals professionalRepo.ProfessionalRepository
	Schedules     scheduleRepo.ScheduleRepository
	Appointments  appointmentRepo.AppointmentRepository
}
