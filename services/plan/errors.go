package plan

import "fmt"

// PlanLimitExceededError reports that the professional's plan tier has
// exhausted its monthly appointment allowance. Terminal for the request;
// never retried automatically.
type PlanLimitExceededError struct {
	ProfessionalID string
	Cap            int
	Count          int64
}

func (e PlanLimitExceededError) Error() string {
	return fmt.Sprintf("plan limit exceeded for professional %s: %d of %d appointments this month", e.ProfessionalID, e.Count, e.Cap)
}

// ReadOnlyRestrictionError reports that the acting member may view but not
// mutate calendar data under the current plan.
type ReadOnlyRestrictionError struct {
	ActorID        string
	ProfessionalID string
}

func (e ReadOnlyRestrictionError) Error() string {
	return fmt.Sprintf("actor %s is read-only on professional %s", e.ActorID, e.ProfessionalID)
}
