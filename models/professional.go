package models

import "time"

// Plan tiers. The free tier carries a monthly appointment cap and a
// team-size allowance; paid tiers are uncapped.
const (
	PlanFree = "free"
	PlanPlus = "plus"
)

// Subscription statuses as reported by the billing collaborator.
const (
	SubscriptionActive    = "active"
	SubscriptionPastDue   = "past_due"
	SubscriptionCancelled = "cancelled"
)

// Team member roles.
const (
	RoleProfessional = "professional"
	RoleSecretary    = "secretary"
	RolePatient      = "patient"
)

// Actor is the acting identity as established by the auth collaborator's
// session token. The engine never trusts a client-supplied role.
type Actor struct {
	ID   string
	Role string // "professional", "secretary" or "patient"
}

// Professional is the account that owns schedules, breaks, services and
// appointments. Plan and subscription fields are written by the billing
// collaborator and only read here.
type Professional struct {
	ID                 string       `bson:"id" json:"id"`
	DisplayName        string       `bson:"display_name" json:"displayName"`
	Email              string       `bson:"email" json:"email"`
	Timezone           string       `bson:"timezone" json:"timezone"` // IANA name, e.g. "America/Toronto"
	TimeFormat         string       `bson:"time_format,omitempty" json:"timeFormat,omitempty"`
	PlanTier           string       `bson:"plan_tier" json:"planTier"`
	SubscriptionStatus string       `bson:"subscription_status" json:"subscriptionStatus"`
	TeamMembers        []TeamMember `bson:"team_members,omitempty" json:"teamMembers,omitempty"`
	Services           []Service    `bson:"services,omitempty" json:"services,omitempty"`
	CreatedAt          time.Time    `bson:"created_at" json:"createdAt"`
	UpdatedAt          time.Time    `bson:"updated_at,omitempty" json:"updatedAt,omitempty"`
}

// TeamMember is an identity allowed to act on the professional's calendar.
// Members beyond the plan's allowance are read-only; JoinedAt decides which
// members keep write access after a downgrade.
type TeamMember struct {
	MemberID string    `bson:"member_id" json:"memberId"`
	Role     string    `bson:"role" json:"role"` // "professional" or "secretary"
	ReadOnly bool      `bson:"read_only,omitempty" json:"readOnly,omitempty"`
	JoinedAt time.Time `bson:"joined_at" json:"joinedAt"`
}

// ServiceByID returns the embedded service with the given ID, if any.
func (p *Professional) ServiceByID(serviceID string) (*Service, bool) {
	for i := range p.Services {
		if p.Services[i].ID == serviceID {
			return &p.Services[i], true
		}
	}
	return nil, false
}

// MemberByID returns the team member record for an actor, if any.
func (p *Professional) MemberByID(memberID string) (*TeamMember, bool) {
	for i := range p.TeamMembers {
		if p.TeamMembers[i].MemberID == memberID {
			return &p.TeamMembers[i], true
		}
	}
	return nil, false
}
