package models

// Service is a bookable offering. Duration sizes the candidate slots the
// generator emits; StepMin is the increment between consecutive slot starts
// (defaults to the duration when zero).
type Service struct {
	ID          string `bson:"id" json:"id"`
	Name        string `bson:"name" json:"name"`
	DurationMin int    `bson:"duration_min" json:"durationMin"`
	StepMin     int    `bson:"step_min,omitempty" json:"stepMin,omitempty"`
}

// Step returns the slot start increment in minutes.
func (s Service) Step() int {
	if s.StepMin > 0 {
		return s.StepMin
	}
	return s.DurationMin
}
