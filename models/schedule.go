package models

import "time"

// Schedule is one recurring weekly availability window. Start and End are
// wall-clock "15:04" strings in the professional's timezone; conversion to
// absolute instants happens per target date in the availability engine.
// A professional may hold several windows on the same weekday (split shifts)
// as long as they do not overlap.
type Schedule struct {
	ID             string       `bson:"id" json:"id"`
	ProfessionalID string       `bson:"professional_id" json:"professionalId"`
	Weekday        time.Weekday `bson:"weekday" json:"weekday"`
	Start          string       `bson:"start" json:"start"` // e.g. "09:00"
	End            string       `bson:"end" json:"end"`     // e.g. "12:00"
	ServiceIDs     []string     `bson:"service_ids,omitempty" json:"serviceIds,omitempty"`
	CreatedAt      time.Time    `bson:"created_at" json:"createdAt"`
	UpdatedAt      time.Time    `bson:"updated_at,omitempty" json:"updatedAt,omitempty"`
}

// AllowsService reports whether the window accepts the given service.
// An empty filter means every service is allowed.
func (s Schedule) AllowsService(serviceID string) bool {
	if len(s.ServiceIDs) == 0 {
		return true
	}
	for _, id := range s.ServiceIDs {
		if id == serviceID {
			return true
		}
	}
	return false
}

// Break is a one-off exception that removes availability even where a
// schedule window would otherwise allow it. Bounds are absolute UTC instants
// and may span several days (vacation, sick leave).
type Break struct {
	ID             string    `bson:"id" json:"id"`
	ProfessionalID string    `bson:"professional_id" json:"professionalId"`
	Start          time.Time `bson:"start" json:"start"`
	End            time.Time `bson:"end" json:"end"`
	Reason         string    `bson:"reason,omitempty" json:"reason,omitempty"`
	CreatedAt      time.Time `bson:"created_at" json:"createdAt"`
}
