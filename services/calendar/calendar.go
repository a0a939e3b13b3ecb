package calendar

import (
	"context"
	"time"

	"clinicbook/models"
	"clinicbook/services/availability"
	"clinicbook/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CreateSchedule validates and stores a new weekly window. Windows on the
// same weekday for the same professional must not overlap.
func (s *DefaultService) CreateSchedule(ctx context.Context, actor models.Actor, sched *models.Schedule) error {
	if err := s.Gate.AuthorizeMutation(ctx, sched.ProfessionalID, actor.ID); err != nil {
		return err
	}
	if err := validateWindow(sched); err != nil {
		return err
	}
	if err := s.checkWindowConflict(ctx, sched, ""); err != nil {
		return err
	}

	sched.ID = uuid.New().String()
	if err := s.Schedules.CreateSchedule(ctx, sched); err != nil {
		return availability.UnavailableError{Op: "create schedule", Err: err}
	}
	utils.GetLogger().Info("schedule window created",
		zap.String("scheduleID", sched.ID),
		zap.String("professionalID", sched.ProfessionalID),
		zap.Int("weekday", int(sched.Weekday)),
	)
	return nil
}

func (s *DefaultService) UpdateSchedule(ctx context.Context, actor models.Actor, sched *models.Schedule) error {
	if err := s.Gate.AuthorizeMutation(ctx, sched.ProfessionalID, actor.ID); err != nil {
		return err
	}
	if err := validateWindow(sched); err != nil {
		return err
	}
	if err := s.checkWindowConflict(ctx, sched, sched.ID); err != nil {
		return err
	}
	if err := s.Schedules.UpdateSchedule(ctx, sched); err != nil {
		return availability.UnavailableError{Op: "update schedule", Err: err}
	}
	return nil
}

func (s *DefaultService) DeleteSchedule(ctx context.Context, actor models.Actor, professionalID, scheduleID string) error {
	if err := s.Gate.AuthorizeMutation(ctx, professionalID, actor.ID); err != nil {
		return err
	}
	if err := s.Schedules.DeleteSchedule(ctx, professionalID, scheduleID); err != nil {
		return availability.UnavailableError{Op: "delete schedule", Err: err}
	}
	return nil
}

func (s *DefaultService) ListSchedules(ctx context.Context, actor models.Actor, professionalID string) ([]models.Schedule, error) {
	if err := s.authorizeRead(ctx, professionalID, actor); err != nil {
		return nil, err
	}
	schedules, err := s.Schedules.ListSchedules(ctx, professionalID)
	if err != nil {
		return nil, availability.UnavailableError{Op: "list schedules", Err: err}
	}
	return schedules, nil
}

// CreateBreak stores a one-off closed interval. Bounds are absolute UTC and
// may span several days.
func (s *DefaultService) CreateBreak(ctx context.Context, actor models.Actor, b *models.Break) error {
	if err := s.Gate.AuthorizeMutation(ctx, b.ProfessionalID, actor.ID); err != nil {
		return err
	}
	if !b.End.After(b.Start) {
		return availability.InvalidTimeInputError{Reason: "break end must be after start"}
	}

	b.ID = uuid.New().String()
	b.Start = b.Start.UTC()
	b.End = b.End.UTC()
	if err := s.Schedules.CreateBreak(ctx, b); err != nil {
		return availability.UnavailableError{Op: "create break", Err: err}
	}
	return nil
}

func (s *DefaultService) DeleteBreak(ctx context.Context, actor models.Actor, professionalID, breakID string) error {
	if err := s.Gate.AuthorizeMutation(ctx, professionalID, actor.ID); err != nil {
		return err
	}
	if err := s.Schedules.DeleteBreak(ctx, professionalID, breakID); err != nil {
		return availability.UnavailableError{Op: "delete break", Err: err}
	}
	return nil
}

func (s *DefaultService) ListBreaks(ctx context.Context, actor models.Actor, professionalID string) ([]models.Break, error) {
	if err := s.authorizeRead(ctx, professionalID, actor); err != nil {
		return nil, err
	}
	breaks, err := s.Schedules.ListBreaks(ctx, professionalID)
	if err != nil {
		return nil, availability.UnavailableError{Op: "list breaks", Err: err}
	}
	return breaks, nil
}

func (s *DefaultService) ListAppointments(ctx context.Context, actor models.Actor, professionalID string, from, to time.Time) ([]models.Appointment, error) {
	if err := s.authorizeRead(ctx, professionalID, actor); err != nil {
		return nil, err
	}
	appts, err := s.Appointments.ListByProfessional(ctx, professionalID, from.UTC(), to.UTC())
	if err != nil {
		return nil, availability.UnavailableError{Op: "list appointments", Err: err}
	}
	return appts, nil
}

// authorizeRead allows the owner and any team member, including read-only
// ones; viewing is never plan-gated.
func (s *DefaultService) authorizeRead(ctx context.Context, professionalID string, actor models.Actor) error {
	prof, err := s.Professionals.GetByID(ctx, professionalID)
	if err != nil {
		return availability.UnavailableError{Op: "load professional", Err: err}
	}
	if prof == nil {
		return availability.NotFoundError{Resource: "professional", ID: professionalID}
	}
	if actor.ID == prof.ID {
		return nil
	}
	if _, ok := prof.MemberByID(actor.ID); ok {
		return nil
	}
	return availability.NotFoundError{Resource: "professional", ID: professionalID}
}

// checkWindowConflict rejects a window overlapping another window on the
// same weekday. excludeID skips the window being updated.
func (s *DefaultService) checkWindowConflict(ctx context.Context, sched *models.Schedule, excludeID string) error {
	existing, err := s.Schedules.ListSchedulesForWeekday(ctx, sched.ProfessionalID, sched.Weekday)
	if err != nil {
		return availability.UnavailableError{Op: "list schedules", Err: err}
	}

	start, _ := clockMinutes(sched.Start)
	end, _ := clockMinutes(sched.End)
	for _, other := range existing {
		if other.ID == excludeID {
			continue
		}
		oStart, _ := clockMinutes(other.Start)
		oEnd, _ := clockMinutes(other.End)
		if start < oEnd && oStart < end {
			return ScheduleConflictError{ProfessionalID: sched.ProfessionalID, ConflictingID: other.ID}
		}
	}
	return nil
}

func validateWindow(sched *models.Schedule) error {
	if sched.Weekday < time.Sunday || sched.Weekday > time.Saturday {
		return availability.InvalidTimeInputError{Reason: "weekday out of range"}
	}
	start, err := clockMinutes(sched.Start)
	if err != nil {
		return availability.InvalidTimeInputError{Clock: sched.Start, Reason: "malformed time"}
	}
	end, err := clockMinutes(sched.End)
	if err != nil {
		return availability.InvalidTimeInputError{Clock: sched.End, Reason: "malformed time"}
	}
	if end <= start {
		return availability.InvalidTimeInputError{Clock: sched.End, Reason: "window end must be after start"}
	}
	return nil
}

// clockMinutes parses a "15:04" wall-clock string into minutes from
// midnight. DST awareness is not needed here: windows are compared within a
// single weekday, conversion to instants happens per date in the engine.
func clockMinutes(clock string) (int, error) {
	t, err := time.Parse("15:04", clock)
	if err != nil {
		return 0, err
	}
	return t.Hour()*60 + t.Minute(), nil
}
