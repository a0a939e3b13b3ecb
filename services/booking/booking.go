package booking

import (
	"context"
	"errors"
	"time"

	appointmentRepo "clinicbook/database/repository/appointment"
	"clinicbook/models"
	"clinicbook/services/availability"
	"clinicbook/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// reminderLead is how far before the appointment start the reminder event
// fires.
const reminderLead = 24 * time.Hour

// Book validates a requested slot against current occupancy and plan quotas,
// then commits it. Validation order inside the critical section: plan cap,
// schedule/break re-check, then the transactional insert that re-checks
// appointment overlap. Nothing is inserted on any failure.
func (s *DefaultService) Book(ctx context.Context, req BookRequest) (*models.Appointment, error) {
	logger := utils.GetLogger()

	prof, err := s.Professionals.GetByID(ctx, req.ProfessionalID)
	if err != nil {
		return nil, availability.UnavailableError{Op: "load professional", Err: err}
	}
	if prof == nil {
		return nil, availability.NotFoundError{Resource: "professional", ID: req.ProfessionalID}
	}
	svc, ok := prof.ServiceByID(req.ServiceID)
	if !ok {
		return nil, availability.NotFoundError{Resource: "service", ID: req.ServiceID}
	}

	// Team members book on the professional's behalf and must hold write
	// access; patients book for themselves.
	if req.Actor.Role != models.RolePatient {
		if err := s.Gate.AuthorizeMutation(ctx, req.ProfessionalID, req.Actor.ID); err != nil {
			return nil, err
		}
	}

	start := req.Start.UTC()
	end := start.Add(time.Duration(svc.DurationMin) * time.Minute)

	release, err := s.Locks.Acquire(ctx, req.ProfessionalID)
	if err != nil {
		return nil, err
	}
	defer release()

	// Plan cap and overlap are evaluated inside the same critical section so
	// no competing booking can slip between the check and the insert.
	if err := s.Gate.AuthorizeBooking(ctx, req.ProfessionalID, start); err != nil {
		return nil, err
	}

	free, err := s.Availability.SlotWithinSchedule(ctx, req.ProfessionalID, req.ServiceID, start, end)
	if err != nil {
		return nil, err
	}
	if !free {
		return nil, SlotNoLongerAvailableError{ProfessionalID: req.ProfessionalID, Start: start, End: end}
	}

	appt := &models.Appointment{
		ID:             uuid.New().String(),
		ProfessionalID: req.ProfessionalID,
		PatientID:      req.PatientID,
		ServiceID:      req.ServiceID,
		Start:          start,
		End:            end,
		Status:         models.AppointmentBooked,
		CreatedAt:      time.Now().UTC(),
	}

	if err := s.Appointments.InsertIfFree(ctx, appt); err != nil {
		if errors.Is(err, appointmentRepo.ErrOverlap) {
			return nil, SlotNoLongerAvailableError{ProfessionalID: req.ProfessionalID, Start: start, End: end}
		}
		return nil, availability.UnavailableError{Op: "insert appointment", Err: err}
	}

	logger.Info("appointment booked",
		zap.String("appointmentID", appt.ID),
		zap.String("professionalID", appt.ProfessionalID),
		zap.Time("start", appt.Start),
	)

	// Fire-and-forget: delivery failure never rolls back the booking.
	if s.Notifier != nil {
		s.Notifier.Emit(ctx, bookingEvent(models.EventBookingConfirmed, appt))
		if remindAt := start.Add(-reminderLead); remindAt.After(time.Now()) {
			s.Notifier.EmitAt(ctx, bookingEvent(models.EventBookingReminder, appt), remindAt)
		}
	}

	return appt, nil
}

// Cancel flips an appointment to cancelled. The row is kept; the interval is
// freed for subsequent availability reads and the monthly plan count.
// Cancelling an already-cancelled appointment is a no-op.
func (s *DefaultService) Cancel(ctx context.Context, appointmentID string, actor models.Actor) error {
	appt, err := s.Appointments.GetByID(ctx, appointmentID)
	if err != nil {
		return availability.UnavailableError{Op: "load appointment", Err: err}
	}
	if appt == nil {
		return availability.NotFoundError{Resource: "appointment", ID: appointmentID}
	}

	if actor.Role == models.RolePatient {
		// A patient may only touch their own appointment; anything else is
		// indistinguishable from an unknown ID.
		if appt.PatientID != actor.ID {
			return availability.NotFoundError{Resource: "appointment", ID: appointmentID}
		}
	} else {
		if err := s.Gate.AuthorizeMutation(ctx, appt.ProfessionalID, actor.ID); err != nil {
			return err
		}
	}

	if appt.Status == models.AppointmentCancelled {
		return nil
	}

	if err := s.Appointments.Cancel(ctx, appointmentID, actor.ID, time.Now().UTC()); err != nil {
		return availability.UnavailableError{Op: "cancel appointment", Err: err}
	}

	utils.GetLogger().Info("appointment cancelled",
		zap.String("appointmentID", appointmentID),
		zap.String("actorID", actor.ID),
	)

	if s.Notifier != nil {
		s.Notifier.Emit(ctx, bookingEvent(models.EventBookingCancelled, appt))
	}
	return nil
}

// Complete marks a kept appointment as completed after the visit. Either
// party may do it: the patient for their own appointment, or a team member
// with write access. The interval stays occupied; completion is bookkeeping,
// not a cancellation.
func (s *DefaultService) Complete(ctx context.Context, appointmentID string, actor models.Actor) error {
	appt, err := s.Appointments.GetByID(ctx, appointmentID)
	if err != nil {
		return availability.UnavailableError{Op: "load appointment", Err: err}
	}
	if appt == nil {
		return availability.NotFoundError{Resource: "appointment", ID: appointmentID}
	}

	if actor.Role == models.RolePatient {
		if appt.PatientID != actor.ID {
			return availability.NotFoundError{Resource: "appointment", ID: appointmentID}
		}
	} else {
		if err := s.Gate.AuthorizeMutation(ctx, appt.ProfessionalID, actor.ID); err != nil {
			return err
		}
	}

	if appt.Status == models.AppointmentCompleted {
		return nil
	}
	if appt.Status == models.AppointmentCancelled {
		return AppointmentStateError{AppointmentID: appointmentID, Status: appt.Status}
	}

	if err := s.Appointments.SetStatus(ctx, appointmentID, models.AppointmentCompleted); err != nil {
		return availability.UnavailableError{Op: "complete appointment", Err: err}
	}

	utils.GetLogger().Info("appointment completed",
		zap.String("appointmentID", appointmentID),
		zap.String("actorID", actor.ID),
	)
	return nil
}

func bookingEvent(kind string, appt *models.Appointment) models.BookingEvent {
	return models.BookingEvent{
		Kind:           kind,
		AppointmentID:  appt.ID,
		ProfessionalID: appt.ProfessionalID,
		PatientID:      appt.PatientID,
		ServiceID:      appt.ServiceID,
		Start:          appt.Start,
		End:            appt.End,
		EmittedAt:      time.Now().UTC(),
	}
}
