package booking

import (
	"context"
	"time"

	appointmentRepo "clinicbook/database/repository/appointment"
	professionalRepo "clinicbook/database/repository/professional"
	"clinicbook/models"
	"clinicbook/services/availability"
	"clinicbook/services/notification"
	"clinicbook/services/plan"
)

// BookRequest asks to commit one slot. Start is the absolute UTC instant of
// a previously displayed candidate; the end is derived from the service
// duration.
type BookRequest struct {
	ProfessionalID string
	ServiceID      string
	PatientID      string
	Start          time.Time
	Actor          models.Actor
}

// Service commits and cancels appointments against the ledger. Book
// re-validates at commit time under a professional-scoped exclusion, so two
// concurrent calls for the same slot cannot both succeed.
type Service interface {
	Book(ctx context.Context, req BookRequest) (*models.Appointment, error)
	Cancel(ctx context.Context, appointmentID string, actor models.Actor) error
	Complete(ctx context.Context, appointmentID string, actor models.Actor) error
}

// DefaultService is the production implementation.
type DefaultService struct {
	Professionals professionalRepo.ProfessionalRepository
	Appointments  appointmentRepo.AppointmentRepository
	Availability  availability.Engine
	Gate          plan.PolicyGate
	Locks         LockArena
	Notifier      notification.Emitter
}
