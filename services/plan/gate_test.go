package plan

import (
	"context"
	"testing"
	"time"

	"clinicbook/models"
	"clinicbook/services/availability"

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
func (r *fakeProfessionalRepo) UpdateSubscription(_ context.Context, _, tier, status string) error {
	r.prof.PlanTier = tier
	r.prof.SubscriptionStatus = status
	return nil
}

// fakeLedger only implements the counting the gate needs; appointments are
// represented by their start instants.
type fakeLedger struct {
	starts []time.Time
}

func (r *fakeLedger) GetByID(context.Context, string) (*models.Appointment, error) {
	return nil, nil
}
func (r *fakeLedger) ListActiveInRange(context.Context, string, time.Time, time.Time) ([]models.Appointment, error) {
	return nil, nil
}
func (r *fakeLedger) ListByProfessional(context.Context, string, time.Time, time.Time) ([]models.Appointment, error) {
	return nil, nil
}
func (r *fakeLedger) CountActiveInRange(_ context.Context, _ string, from, to time.Time) (int64, error) {
	var n int64
	for _, s := range r.starts {
		if !s.Before(from) && s.Before(to) {
			n++
		}
	}
	return n, nil
}
func (r *fakeLedger) InsertIfFree(context.Context, *models.Appointment) error { return nil }
func (r *fakeLedger) Cancel(context.Context, string, string, time.Time) error { return nil }
func (r *fakeLedger) SetStatus(context.Context, string, string) error         { return nil }

func freeTierProf() *models.Professional {
	return &models.Professional{
		ID:       "prof-1",
		Timezone: "America/Toronto",
		PlanTier: models.PlanFree,
	}
}

// marchStarts returns n appointment starts spread inside March 2026, Toronto
// time.
func marchStarts(n int) []time.Time {
	loc, _ := time.LoadLocation("America/Toronto")
	out := make([]time.Time, 0, n)
	day := 1
	hour := 8
	for i := 0; i < n; i++ {
		out = append(out, time.Date(2026, 3, day, hour, 0, 0, 0, loc).UTC())
		hour++
		if hour == 18 {
			hour = 8
			day++
		}
	}
	return out
}

func TestAuthorizeBookingUnderCap(t *testing.T) {
	gate := &DefaultPolicyGate{
		Professionals: &fakeProfessionalRepo{prof: freeTierProf()},
		Appointments:  &fakeLedger{starts: marchStarts(FreeTierMonthlyCap - 1)},
	}

	at := time.Date(2026, 3, 15, 14, 0, 0, 0, time.UTC)
	assert.NoError(t, gate.AuthorizeBooking(context.Background(), "prof-1", at))
}

func TestAuthorizeBookingAtCap(t *testing.T) {
	gate := &DefaultPolicyGate{
		Professionals: &fakeProfessionalRepo{prof: freeTierProf()},
		Appointments:  &fakeLedger{starts: marchStarts(FreeTierMonthlyCap)},
	}

	at := time.Date(2026, 3, 15, 14, 0, 0, 0, time.UTC)
	err := gate.AuthorizeBooking(context.Background(), "prof-1", at)

	var limit PlanLimitExceededError
	require.ErrorAs(t, err, &limit)
	assert.Equal(t, int64(FreeTierMonthlyCap), limit.Count)
}

func TestAuthorizeBookingCapIsPerCalendarMonth(t *testing.T) {
	// A full March does not block an April booking.
	gate := &DefaultPolicyGate{
		Professionals: &fakeProfessionalRepo{prof: freeTierProf()},
		Appointments:  &fakeLedger{starts: marchStarts(FreeTierMonthlyCap)},
	}

	at := time.Date(2026, 4, 2, 14, 0, 0, 0, time.UTC)
	assert.NoError(t, gate.AuthorizeBooking(context.Background(), "prof-1", at))
}

func TestAuthorizeBookingPaidTierUncapped(t *testing.T) {
	prof := freeTierProf()
	prof.PlanTier = models.PlanPlus
	prof.SubscriptionStatus = models.SubscriptionActive

	gate := &DefaultPolicyGate{
		Professionals: &fakeProfessionalRepo{prof: prof},
		Appointments:  &fakeLedger{starts: marchStarts(FreeTierMonthlyCap + 50)},
	}

	at := time.Date(2026, 3, 15, 14, 0, 0, 0, time.UTC)
	assert.NoError(t, gate.AuthorizeBooking(context.Background(), "prof-1", at))
}

func TestAuthorizeBookingLapsedSubscriptionIsCapped(t *testing.T) {
	prof := freeTierProf()
	prof.PlanTier = models.PlanPlus
	prof.SubscriptionStatus = models.SubscriptionPastDue

	gate := &DefaultPolicyGate{
		Professionals: &fakeProfessionalRepo{prof: prof},
		Appointments:  &fakeLedger{starts: marchStarts(FreeTierMonthlyCap)},
	}

	at := time.Date(2026, 3, 15, 14, 0, 0, 0, time.UTC)
	var limit PlanLimitExceededError
	assert.ErrorAs(t, gate.AuthorizeBooking(context.Background(), "prof-1", at), &limit)
}

func TestAuthorizeBookingUnknownProfessional(t *testing.T) {
	gate := &DefaultPolicyGate{
		Professionals: &fakeProfessionalRepo{},
		Appointments:  &fakeLedger{},
	}

	err := gate.AuthorizeBooking(context.Background(), "prof-nope", time.Now())
	var notFound availability.NotFoundError
	assert.ErrorAs(t, err, &notFound)
}

func TestAuthorizeMutationOwnerAlwaysAllowed(t *testing.T) {
	prof := freeTierProf()
	gate := &DefaultPolicyGate{
		Professionals: &fakeProfessionalRepo{prof: prof},
		Appointments:  &fakeLedger{},
	}
	assert.NoError(t, gate.AuthorizeMutation(context.Background(), "prof-1", "prof-1"))
}

func TestAuthorizeMutationOwnerWritableOnCancelledSubscription(t *testing.T) {
	// A cancelled subscription drops the account to free-tier limits: the
	// cap returns and overflow members lose write access. The owner is not a
	// team member and keeps write access to their own calendar.
	prof := freeTierProf()
	prof.PlanTier = models.PlanPlus
	prof.SubscriptionStatus = models.SubscriptionCancelled
	prof.TeamMembers = []models.TeamMember{
		{MemberID: "sec-1", Role: models.RoleSecretary, JoinedAt: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)},
		{MemberID: "sec-2", Role: models.RoleSecretary, JoinedAt: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)},
	}
	gate := &DefaultPolicyGate{
		Professionals: &fakeProfessionalRepo{prof: prof},
		Appointments:  &fakeLedger{},
	}

	assert.NoError(t, gate.AuthorizeMutation(context.Background(), "prof-1", "prof-1"))
	assert.NoError(t, gate.AuthorizeMutation(context.Background(), "prof-1", "sec-1"))

	var readOnly ReadOnlyRestrictionError
	assert.ErrorAs(t, gate.AuthorizeMutation(context.Background(), "prof-1", "sec-2"), &readOnly)
}

func TestAuthorizeMutationUnknownActorDenied(t *testing.T) {
	gate := &DefaultPolicyGate{
		Professionals: &fakeProfessionalRepo{prof: freeTierProf()},
		Appointments:  &fakeLedger{},
	}

	err := gate.AuthorizeMutation(context.Background(), "prof-1", "stranger")
	var readOnly ReadOnlyRestrictionError
	assert.ErrorAs(t, err, &readOnly)
}

func TestAuthorizeMutationFirstMemberKeepsWrite(t *testing.T) {
	prof := freeTierProf()
	prof.TeamMembers = []models.TeamMember{
		{MemberID: "sec-1", Role: models.RoleSecretary, JoinedAt: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)},
		{MemberID: "sec-2", Role: models.RoleSecretary, JoinedAt: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)},
	}
	gate := &DefaultPolicyGate{
		Professionals: &fakeProfessionalRepo{prof: prof},
		Appointments:  &fakeLedger{},
	}

	assert.NoError(t, gate.AuthorizeMutation(context.Background(), "prof-1", "sec-1"))
}

func TestAuthorizeMutationExcessMemberReadOnlyOnFreeTier(t *testing.T) {
	prof := freeTierProf()
	prof.TeamMembers = []models.TeamMember{
		{MemberID: "sec-1", Role: models.RoleSecretary, JoinedAt: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)},
		{MemberID: "sec-2", Role: models.RoleSecretary, JoinedAt: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)},
	}
	gate := &DefaultPolicyGate{
		Professionals: &fakeProfessionalRepo{prof: prof},
		Appointments:  &fakeLedger{},
	}

	err := gate.AuthorizeMutation(context.Background(), "prof-1", "sec-2")
	var readOnly ReadOnlyRestrictionError
	require.ErrorAs(t, err, &readOnly)
	assert.Equal(t, "sec-2", readOnly.ActorID)
}

func TestAuthorizeMutationAllMembersWriteOnActivePaidTier(t *testing.T) {
	prof := freeTierProf()
	prof.PlanTier = models.PlanPlus
	prof.SubscriptionStatus = models.SubscriptionActive
	prof.TeamMembers = []models.TeamMember{
		{MemberID: "sec-1", Role: models.RoleSecretary, JoinedAt: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)},
		{MemberID: "sec-2", Role: models.RoleSecretary, JoinedAt: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)},
	}
	gate := &DefaultPolicyGate{
		Professionals: &fakeProfessionalRepo{prof: prof},
		Appointments:  &fakeLedger{},
	}

	assert.NoError(t, gate.AuthorizeMutation(context.Background(), "prof-1", "sec-2"))
}

func TestAuthorizeMutationDowngradeFlipsNewestMembers(t *testing.T) {
	// The member set that loses write access after a downgrade is decided by
	// join order, not map iteration.
	prof := freeTierProf()
	prof.PlanTier = models.PlanPlus
	prof.SubscriptionStatus = models.SubscriptionCancelled
	prof.TeamMembers = []models.TeamMember{
		{MemberID: "sec-new", Role: models.RoleSecretary, JoinedAt: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)},
		{MemberID: "sec-old", Role: models.RoleSecretary, JoinedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
	}
	gate := &DefaultPolicyGate{
		Professionals: &fakeProfessionalRepo{prof: prof},
		Appointments:  &fakeLedger{},
	}

	assert.NoError(t, gate.AuthorizeMutation(context.Background(), "prof-1", "sec-old"))

	var readOnly ReadOnlyRestrictionError
	assert.ErrorAs(t, gate.AuthorizeMutation(context.Background(), "prof-1", "sec-new"), &readOnly)
}

func TestAuthorizeMutationExplicitReadOnlyFlag(t *testing.T) {
	prof := freeTierProf()
	prof.PlanTier = models.PlanPlus
	prof.SubscriptionStatus = models.SubscriptionActive
	prof.TeamMembers = []models.TeamMember{
		{MemberID: "sec-1", Role: models.RoleSecretary, ReadOnly: true, JoinedAt: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)},
	}
	gate := &DefaultPolicyGate{
		Professionals: &fakeProfessionalRepo{prof: prof},
		Appointments:  &fakeLedger{},
	}

	var readOnly ReadOnlyRestrictionError
	assert.ErrorAs(t, gate.AuthorizeMutation(context.Background(), "prof-1", "sec-1"), &readOnly)
}
