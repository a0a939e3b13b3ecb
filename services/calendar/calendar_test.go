package calendar

import (
	"context"
	"testing"
	"time"

	"clinicbook/models"
	"clinicbook/services/availability"
	"clinicbook/services/plan"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProfessionalRepo struct {
	prof *models.Professional
}

func (r *fakeProfessionalRepo) GetByID(_ context.Context, id string) (*models.Professional, error) {
	if r.prof != nil && r.prof.ID == id {
		return r.prof, nil
	}
	return nil, nil
}
func (r *fakeProfessionalRepo) Create(context.Context, *models.Professional) error { return nil }
func (r *fakeProfessionalRepo) Update(context.Context, *models.Professional) error { return nil }
func (r *fakeProfessionalRepo) UpdateSubscription(context.Context, string, string, string) error {
	return nil
}

type fakeScheduleRepo struct {
	schedules []models.Schedule
	breaks    []models.Break
}

func (r *fakeScheduleRepo) CreateSchedule(_ context.Context, s *models.Schedule) error {
	r.schedules = append(r.schedules, *s)
	return nil
}
func (r *fakeScheduleRepo) UpdateSchedule(_ context.Context, s *models.Schedule) error {
	for i := range r.schedules {
		if r.schedules[i].ID == s.ID {
			r.schedules[i] = *s
		}
	}
	return nil
}
func (r *fakeScheduleRepo) DeleteSchedule(_ context.Context, professionalID, scheduleID string) error {
	out := r.schedules[:0]
	for _, s := range r.schedules {
		if !(s.ProfessionalID == professionalID && s.ID == scheduleID) {
			out = append(out, s)
		}
	}
	r.schedules = out
	return nil
}
func (r *fakeScheduleRepo) ListSchedules(_ context.Context, professionalID string) ([]models.Schedule, error) {
	var out []models.Schedule
	for _, s := range r.schedules {
		if s.ProfessionalID == professionalID {
			out = append(out, s)
		}
	}
	return out, nil
}
func (r *fakeScheduleRepo) ListSchedulesForWeekday(_ context.Context, professionalID string, weekday time.Weekday) ([]models.Schedule, error) {
	var out []models.Schedule
	for _, s := range r.schedules {
		if s.ProfessionalID == professionalID && s.Weekday == weekday {
			out = append(out, s)
		}
	}
	return out, nil
}
func (r *fakeScheduleRepo) CreateBreak(_ context.Context, b *models.Break) error {
	r.breaks = append(r.breaks, *b)
	return nil
}
func (r *fakeScheduleRepo) DeleteBreak(_ context.Context, professionalID, breakID string) error {
	out := r.breaks[:0]
	for _, b := range r.breaks {
		if !(b.ProfessionalID == professionalID && b.ID == breakID) {
			out = append(out, b)
		}
	}
	r.breaks = out
	return nil
}
func (r *fakeScheduleRepo) ListBreaks(_ context.Context, professionalID string) ([]models.Break, error) {
	var out []models.Break
	for _, b := range r.breaks {
		if b.ProfessionalID == professionalID {
			out = append(out, b)
		}
	}
	return out, nil
}
func (r *fakeScheduleRepo) ListBreaksInRange(_ context.Context, professionalID string, from, to time.Time) ([]models.Break, error) {
	var out []models.Break
	for _, b := range r.breaks {
		if b.ProfessionalID == professionalID && b.Start.Before(to) && b.End.After(from) {
			out = append(out, b)
		}
	}
	return out, nil
}

type fakeAppointmentRepo struct {
	appointments []models.Appointment
}

func (r *fakeAppointmentRepo) GetByID(context.Context, string) (*models.Appointment, error) {
	return nil, nil
}
func (r *fakeAppointmentRepo) ListActiveInRange(context.Context, string, time.Time, time.Time) ([]models.Appointment, error) {
	return nil, nil
}
func (r *fakeAppointmentRepo) ListByProfessional(_ context.Context, professionalID string, from, to time.Time) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, a := range r.appointments {
		if a.ProfessionalID == professionalID && a.Start.Before(to) && a.End.After(from) {
			out = append(out, a)
		}
	}
	return out, nil
}
func (r *fakeAppointmentRepo) CountActiveInRange(context.Context, string, time.Time, time.Time) (int64, error) {
	return 0, nil
}
func (r *fakeAppointmentRepo) InsertIfFree(context.Context, *models.Appointment) error { return nil }
func (r *fakeAppointmentRepo) Cancel(context.Context, string, string, time.Time) error { return nil }
func (r *fakeAppointmentRepo) SetStatus(context.Context, string, string) error         { return nil }

func newTestCalendar(prof *models.Professional) (*DefaultService, *fakeScheduleRepo) {
	profRepo := &fakeProfessionalRepo{prof: prof}
	schedRepo := &fakeScheduleRepo{}
	return &DefaultService{
		Professionals: profRepo,
		Schedules:     schedRepo,
		Appointments:  &fakeAppointmentRepo{},
		Gate: &plan.DefaultPolicyGate{
			Professionals: profRepo,
			Appointments:  &fakeAppointmentRepo{},
		},
	}, schedRepo
}

func calendarProf() *models.Professional {
	return &models.Professional{
		ID:       "prof-1",
		Timezone: "America/Toronto",
		PlanTier: models.PlanFree,
		TeamMembers: []models.TeamMember{
			{MemberID: "sec-1", Role: models.RoleSecretary, JoinedAt: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)},
			{MemberID: "sec-2", Role: models.RoleSecretary, JoinedAt: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)},
		},
	}
}

var owner = models.Actor{ID: "prof-1", Role: models.RoleProfessional}

func TestCreateScheduleStoresWindow(t *testing.T) {
	svc, repo := newTestCalendar(calendarProf())

	sched := &models.Schedule{
		ProfessionalID: "prof-1",
		Weekday:        time.Monday,
		Start:          "09:00",
		End:            "12:00",
	}
	require.NoError(t, svc.CreateSchedule(context.Background(), owner, sched))
	assert.NotEmpty(t, sched.ID)
	assert.Len(t, repo.schedules, 1)
}

func TestCreateScheduleRejectsInvertedWindow(t *testing.T) {
	svc, _ := newTestCalendar(calendarProf())

	err := svc.CreateSchedule(context.Background(), owner, &models.Schedule{
		ProfessionalID: "prof-1",
		Weekday:        time.Monday,
		Start:          "12:00",
		End:            "09:00",
	})
	var invalid availability.InvalidTimeInputError
	assert.ErrorAs(t, err, &invalid)
}

func TestCreateScheduleRejectsMalformedClock(t *testing.T) {
	svc, _ := newTestCalendar(calendarProf())

	err := svc.CreateSchedule(context.Background(), owner, &models.Schedule{
		ProfessionalID: "prof-1",
		Weekday:        time.Monday,
		Start:          "9 o'clock",
		End:            "12:00",
	})
	var invalid availability.InvalidTimeInputError
	assert.ErrorAs(t, err, &invalid)
}

func TestCreateScheduleRejectsSameWeekdayOverlap(t *testing.T) {
	svc, _ := newTestCalendar(calendarProf())

	require.NoError(t, svc.CreateSchedule(context.Background(), owner, &models.Schedule{
		ProfessionalID: "prof-1",
		Weekday:        time.Monday,
		Start:          "09:00",
		End:            "12:00",
	}))

	err := svc.CreateSchedule(context.Background(), owner, &models.Schedule{
		ProfessionalID: "prof-1",
		Weekday:        time.Monday,
		Start:          "11:00",
		End:            "14:00",
	})
	var conflict ScheduleConflictError
	assert.ErrorAs(t, err, &conflict)
}

func TestCreateScheduleAllowsSplitShifts(t *testing.T) {
	svc, repo := newTestCalendar(calendarProf())

	require.NoError(t, svc.CreateSchedule(context.Background(), owner, &models.Schedule{
		ProfessionalID: "prof-1", Weekday: time.Monday, Start: "09:00", End: "12:00",
	}))
	require.NoError(t, svc.CreateSchedule(context.Background(), owner, &models.Schedule{
		ProfessionalID: "prof-1", Weekday: time.Monday, Start: "14:00", End: "17:00",
	}))
	// Same clock range on another weekday never conflicts.
	require.NoError(t, svc.CreateSchedule(context.Background(), owner, &models.Schedule{
		ProfessionalID: "prof-1", Weekday: time.Tuesday, Start: "09:00", End: "12:00",
	}))
	assert.Len(t, repo.schedules, 3)
}

func TestUpdateScheduleExcludesItselfFromConflictCheck(t *testing.T) {
	svc, repo := newTestCalendar(calendarProf())

	sched := &models.Schedule{
		ProfessionalID: "prof-1",
		Weekday:        time.Monday,
		Start:          "09:00",
		End:            "12:00",
	}
	require.NoError(t, svc.CreateSchedule(context.Background(), owner, sched))

	sched.End = "13:00"
	require.NoError(t, svc.UpdateSchedule(context.Background(), owner, sched))
	assert.Equal(t, "13:00", repo.schedules[0].End)
}

func TestReadOnlyMemberCannotMutateSchedules(t *testing.T) {
	svc, _ := newTestCalendar(calendarProf())

	// sec-2 joined second; on the free tier only the first member writes.
	err := svc.CreateSchedule(context.Background(), models.Actor{ID: "sec-2", Role: models.RoleSecretary}, &models.Schedule{
		ProfessionalID: "prof-1",
		Weekday:        time.Monday,
		Start:          "09:00",
		End:            "12:00",
	})
	var readOnly plan.ReadOnlyRestrictionError
	assert.ErrorAs(t, err, &readOnly)
}

func TestReadOnlyMemberCanStillList(t *testing.T) {
	svc, _ := newTestCalendar(calendarProf())

	require.NoError(t, svc.CreateSchedule(context.Background(), owner, &models.Schedule{
		ProfessionalID: "prof-1",
		Weekday:        time.Monday,
		Start:          "09:00",
		End:            "12:00",
	}))

	schedules, err := svc.ListSchedules(context.Background(), models.Actor{ID: "sec-2", Role: models.RoleSecretary}, "prof-1")
	require.NoError(t, err)
	assert.Len(t, schedules, 1)
}

func TestListSchedulesHiddenFromOutsiders(t *testing.T) {
	svc, _ := newTestCalendar(calendarProf())

	_, err := svc.ListSchedules(context.Background(), models.Actor{ID: "stranger", Role: models.RolePatient}, "prof-1")
	var notFound availability.NotFoundError
	assert.ErrorAs(t, err, &notFound)
}

func TestCreateBreakNormalizesToUTC(t *testing.T) {
	svc, repo := newTestCalendar(calendarProf())

	loc, err := time.LoadLocation("America/Toronto")
	require.NoError(t, err)
	b := &models.Break{
		ProfessionalID: "prof-1",
		Start:          time.Date(2026, 3, 2, 10, 0, 0, 0, loc),
		End:            time.Date(2026, 3, 2, 10, 30, 0, 0, loc),
		Reason:         "coffee",
	}
	require.NoError(t, svc.CreateBreak(context.Background(), owner, b))
	require.Len(t, repo.breaks, 1)
	assert.Equal(t, time.UTC, repo.breaks[0].Start.Location())
	assert.Equal(t, time.Date(2026, 3, 2, 15, 0, 0, 0, time.UTC), repo.breaks[0].Start)
}

func TestCreateBreakRejectsInvertedInterval(t *testing.T) {
	svc, _ := newTestCalendar(calendarProf())

	err := svc.CreateBreak(context.Background(), owner, &models.Break{
		ProfessionalID: "prof-1",
		Start:          time.Date(2026, 3, 2, 11, 0, 0, 0, time.UTC),
		End:            time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC),
	})
	var invalid availability.InvalidTimeInputError
	assert.ErrorAs(t, err, &invalid)
}

func TestDeleteBreakRemovesIt(t *testing.T) {
	svc, repo := newTestCalendar(calendarProf())

	b := &models.Break{
		ProfessionalID: "prof-1",
		Start:          time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC),
		End:            time.Date(2026, 3, 2, 10, 30, 0, 0, time.UTC),
	}
	require.NoError(t, svc.CreateBreak(context.Background(), owner, b))
	require.NoError(t, svc.DeleteBreak(context.Background(), owner, "prof-1", b.ID))
	assert.Empty(t, repo.breaks)
}

func TestListAppointmentsRequiresMembership(t *testing.T) {
	svc, _ := newTestCalendar(calendarProf())
	svc.Appointments = &fakeAppointmentRepo{appointments: []models.Appointment{{
		ID:             "appt-1",
		ProfessionalID: "prof-1",
		Start:          time.Date(2026, 3, 2, 14, 0, 0, 0, time.UTC),
		End:            time.Date(2026, 3, 2, 14, 30, 0, 0, time.UTC),
		Status:         models.AppointmentBooked,
	}}}

	from := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)

	appts, err := svc.ListAppointments(context.Background(), owner, "prof-1", from, to)
	require.NoError(t, err)
	assert.Len(t, appts, 1)

	_, err = svc.ListAppointments(context.Background(), models.Actor{ID: "stranger"}, "prof-1", from, to)
	var notFound availability.NotFoundError
	assert.ErrorAs(t, err, &notFound)
}
