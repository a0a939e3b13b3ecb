package plan

import (
	"context"
	"sort"
	"time"

	appointmentRepo "clinicbook/database/repository/appointment"
	professionalRepo "clinicbook/database/repository/professional"
	"clinicbook/models"
	"clinicbook/services/availability"
)

const (
	// FreeTierMonthlyCap is the number of non-cancelled appointments a
	// free-tier account may hold per calendar month.
	FreeTierMonthlyCap = 100
	// FreeTierExtraMembers is how many team members besides the owning
	// professional keep write access on the free tier (one secretary).
	FreeTierExtraMembers = 1
)

// PolicyGate decides whether an account may accept a new booking and whether
// an actor may mutate calendar data. It is a pure predicate over current
// state: no persistence of its own, re-evaluated on every mutating call.
type PolicyGate interface {
	AuthorizeBooking(ctx context.Context, professionalID string, at time.Time) error
	AuthorizeMutation(ctx context.Context, professionalID, actorID string) error
}

// DefaultPolicyGate is the production implementation.
type DefaultPolicyGate struct {
	Professionals professionalRepo.ProfessionalRepository
	Appointments  appointmentRepo.AppointmentRepository
}

// AuthorizeBooking enforces the monthly appointment cap. The window is the
// calendar month containing the requested start, in the professional's
// timezone; cancelled appointments do not count.
func (g *DefaultPolicyGate) AuthorizeBooking(ctx context.Context, professionalID string, at time.Time) error {
	prof, err := g.Professionals.GetByID(ctx, professionalID)
	if err != nil {
		return availability.UnavailableError{Op: "load professional", Err: err}
	}
	if prof == nil {
		return availability.NotFoundError{Resource: "professional", ID: professionalID}
	}

	if !capped(prof) {
		return nil
	}

	loc, err := time.LoadLocation(prof.Timezone)
	if err != nil {
		return availability.InvalidTimeInputError{Zone: prof.Timezone, Reason: "unknown timezone"}
	}
	local := at.In(loc)
	monthStart := time.Date(local.Year(), local.Month(), 1, 0, 0, 0, 0, loc)
	monthEnd := monthStart.AddDate(0, 1, 0)

	count, err := g.Appointments.CountActiveInRange(ctx, professionalID, monthStart.UTC(), monthEnd.UTC())
	if err != nil {
		return availability.UnavailableError{Op: "count appointments", Err: err}
	}
	if count >= FreeTierMonthlyCap {
		return PlanLimitExceededError{ProfessionalID: professionalID, Cap: FreeTierMonthlyCap, Count: count}
	}
	return nil
}

// AuthorizeMutation enforces the read-only restriction on team members that
// exceed the plan's included member count. The owning professional always
// retains write access to their own calendar.
func (g *DefaultPolicyGate) AuthorizeMutation(ctx context.Context, professionalID, actorID string) error {
	prof, err := g.Professionals.GetByID(ctx, professionalID)
	if err != nil {
		return availability.UnavailableError{Op: "load professional", Err: err}
	}
	if prof == nil {
		return availability.NotFoundError{Resource: "professional", ID: professionalID}
	}

	if actorID == prof.ID {
		return nil
	}

	member, ok := prof.MemberByID(actorID)
	if !ok {
		return ReadOnlyRestrictionError{ActorID: actorID, ProfessionalID: professionalID}
	}
	if member.ReadOnly {
		return ReadOnlyRestrictionError{ActorID: actorID, ProfessionalID: professionalID}
	}

	if capped(prof) && memberRank(prof, actorID) >= FreeTierExtraMembers {
		return ReadOnlyRestrictionError{ActorID: actorID, ProfessionalID: professionalID}
	}
	return nil
}

// capped reports whether free-tier limits apply. A paid tier only lifts them
// while the billing collaborator reports the subscription as active.
func capped(prof *models.Professional) bool {
	if prof.PlanTier == models.PlanFree {
		return true
	}
	return prof.SubscriptionStatus != models.SubscriptionActive
}

// memberRank orders team members by join time so that a downgrade flips the
// same members to read-only on every evaluation.
func memberRank(prof *models.Professional, memberID string) int {
	members := make([]models.TeamMember, len(prof.TeamMembers))
	copy(members, prof.TeamMembers)
	sort.Slice(members, func(i, j int) bool {
		if members[i].JoinedAt.Equal(members[j].JoinedAt) {
			return members[i].MemberID < members[j].MemberID
		}
		return members[i].JoinedAt.Before(members[j].JoinedAt)
	})
	for i, m := range members {
		if m.MemberID == memberID {
			return i
		}
	}
	return len(members)
}
