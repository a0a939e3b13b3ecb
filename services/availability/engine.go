package availability

import (
	"context"
	"time"

	"clinicbook/models"
	"clinicbook/utils"

	"go.uber.org/zap"
)

// GetAvailableSlots derives the candidate slots for one professional, date
// and service. The computation is deterministic for a given snapshot of
// schedule/break/appointment state.
func (e *DefaultEngine) GetAvailableSlots(ctx context.Context, req AvailabilityRequest) ([]models.AvailableSlot, error) {
	logger := utils.GetLogger()

	prof, err := e.Professionals.GetByID(ctx, req.ProfessionalID)
	if err != nil {
		return nil, UnavailableError{Op: "load professional", Err: err}
	}
	if prof == nil {
		return nil, NotFoundError{Resource: "professional", ID: req.ProfessionalID}
	}
	svc, ok := prof.ServiceByID(req.ServiceID)
	if !ok {
		return nil, NotFoundError{Resource: "service", ID: req.ServiceID}
	}

	windows, err := e.resolveWindows(ctx, prof, req.Date, req.ServiceID)
	if err != nil {
		return nil, err
	}
	if len(windows) == 0 {
		return []models.AvailableSlot{}, nil
	}

	// Query range spans the resolved windows; breaks and appointments
	// outside it cannot affect the result.
	from, to := windows[0].Start, windows[0].End
	for _, w := range windows[1:] {
		if w.Start.Before(from) {
			from = w.Start
		}
		if w.End.After(to) {
			to = w.End
		}
	}

	occupancy, err := e.loadOccupancy(ctx, req.ProfessionalID, from, to)
	if err != nil {
		return nil, err
	}

	free := Subtract(windows, occupancy)
	duration := time.Duration(svc.DurationMin) * time.Minute
	step := time.Duration(svc.Step()) * time.Minute
	candidates := Slots(free, duration, step)

	viewerZone := req.ViewerZone
	if viewerZone == "" {
		viewerZone = prof.Timezone
	}

	out := make([]models.AvailableSlot, 0, len(candidates))
	for _, c := range candidates {
		date, startLocal, err := ToLocal(c.Start, viewerZone)
		if err != nil {
			return nil, err
		}
		_, endLocal, _ := ToLocal(c.End, viewerZone)
		out = append(out, models.AvailableSlot{
			Start:      c.Start,
			End:        c.End,
			Date:       date,
			StartLocal: startLocal,
			EndLocal:   endLocal,
		})
	}

	logger.Debug("computed availability",
		zap.String("professionalID", req.ProfessionalID),
		zap.String("date", req.Date),
		zap.String("serviceID", req.ServiceID),
		zap.Int("windows", len(windows)),
		zap.Int("slots", len(out)),
	)
	return out, nil
}

// SlotWithinSchedule re-checks a requested slot against the current schedule
// windows and break store. Appointment overlap is deliberately left to the
// ledger transaction, which re-checks it atomically at insert time.
func (e *DefaultEngine) SlotWithinSchedule(ctx context.Context, professionalID, serviceID string, start, end time.Time) (bool, error) {
	prof, err := e.Professionals.GetByID(ctx, professionalID)
	if err != nil {
		return false, UnavailableError{Op: "load professional", Err: err}
	}
	if prof == nil {
		return false, NotFoundError{Resource: "professional", ID: professionalID}
	}

	loc, err := time.LoadLocation(prof.Timezone)
	if err != nil {
		return false, InvalidTimeInputError{Zone: prof.Timezone, Reason: "unknown timezone"}
	}
	date := start.In(loc).Format(dateLayout)

	windows, err := e.resolveWindows(ctx, prof, date, serviceID)
	if err != nil {
		return false, err
	}

	slot := Interval{Start: start, End: end}
	inside := false
	for _, w := range Coalesce(windows) {
		if w.Contains(slot) {
			inside = true
			break
		}
	}
	if !inside {
		return false, nil
	}

	breaks, err := e.Schedules.ListBreaksInRange(ctx, professionalID, start, end)
	if err != nil {
		return false, UnavailableError{Op: "load breaks", Err: err}
	}
	return len(breaks) == 0, nil
}

// resolveWindows converts the weekday's schedule windows for a service to
// absolute UTC intervals on the given date.
func (e *DefaultEngine) resolveWindows(ctx context.Context, prof *models.Professional, date, serviceID string) ([]Interval, error) {
	loc, err := time.LoadLocation(prof.Timezone)
	if err != nil {
		return nil, InvalidTimeInputError{Date: date, Zone: prof.Timezone, Reason: "unknown timezone"}
	}
	day, err := time.ParseInLocation(dateLayout, date, loc)
	if err != nil {
		return nil, InvalidTimeInputError{Date: date, Zone: prof.Timezone, Reason: "malformed date"}
	}

	schedules, err := e.Schedules.ListSchedulesForWeekday(ctx, prof.ID, day.Weekday())
	if err != nil {
		return nil, UnavailableError{Op: "load schedules", Err: err}
	}

	var windows []Interval
	for _, s := range schedules {
		if !s.AllowsService(serviceID) {
			continue
		}
		start, err := ToAbsolute(date, s.Start, prof.Timezone)
		if err != nil {
			return nil, err
		}
		end, err := ToAbsolute(date, s.End, prof.Timezone)
		if err != nil {
			return nil, err
		}
		iv := Interval{Start: start, End: end}
		if iv.Empty() {
			continue
		}
		windows = append(windows, iv)
	}
	return Coalesce(windows), nil
}

// loadOccupancy returns the coalesced union of breaks and non-cancelled
// appointments overlapping [from, to).
func (e *DefaultEngine) loadOccupancy(ctx context.Context, professionalID string, from, to time.Time) ([]Interval, error) {
	breaks, err := e.Schedules.ListBreaksInRange(ctx, professionalID, from, to)
	if err != nil {
		return nil, UnavailableError{Op: "load breaks", Err: err}
	}
	appts, err := e.Appointments.ListActiveInRange(ctx, professionalID, from, to)
	if err != nil {
		return nil, UnavailableError{Op: "load appointments", Err: err}
	}

	occupancy := make([]Interval, 0, len(breaks)+len(appts))
	for _, b := range breaks {
		occupancy = append(occupancy, Interval{Start: b.Start, End: b.End})
	}
	for _, a := range appts {
		occupancy = append(occupancy, Interval{Start: a.Start, End: a.End})
	}
	return Coalesce(occupancy), nil
}
