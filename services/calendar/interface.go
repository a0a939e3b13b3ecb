package calendar

import (
	"context"
	"time"

	appointmentRepo "clinicbook/database/repository/appointment"
	professionalRepo "clinicbook/database/repository/professional"
	scheduleRepo "clinicbook/database/repository/schedule"
	"clinicbook/models"
	"clinicbook/services/plan"
)

// Service manages the professional-authored side of the calendar: recurring
// schedule windows and one-off breaks. Every mutation passes the plan
// gate's read-only check; reads are open to any member of the account.
type Service interface {
	CreateSchedule(ctx context.Context, actor models.Actor, s *models.Schedule) error
	UpdateSchedule(ctx context.Context, actor models.Actor, s *models.Schedule) error
	DeleteSchedule(ctx context.Context, actor models.Actor, professionalID, scheduleID string) error
	ListSchedules(ctx context.Context, actor models.Actor, professionalID string) ([]models.Schedule, error)

	CreateBreak(ctx context.Context, actor models.Actor, b *models.Break) error
	DeleteBreak(ctx context.Context, actor models.Actor, professionalID, breakID string) error
	ListBreaks(ctx context.Context, actor models.Actor, professionalID string) ([]models.Break, error)

	ListAppointments(ctx context.Context, actor models.Actor, professionalID string, from, to time.Time) ([]models.Appointment, error)
}

// DefaultService is the production implementation.
type DefaultService struct {
	Professionals professionalRepo.ProfessionalRepository
	Schedules     scheduleRepo.ScheduleRepository
	Appointments  appointmentRepo.AppointmentRepository
	Gate          plan.PolicyGate
}
