package models

import "time"

// Appointment statuses. Appointments are never physically deleted by the
// engine; cancellation flips the status and frees the interval.
const (
	AppointmentBooked    = "booked"
	AppointmentCancelled = "cancelled"
	AppointmentCompleted = "completed"
)

// Appointment is the durable record of an occupied interval. Start and End
// are absolute UTC instants. Invariant: for one professional, non-cancelled
// appointments are pairwise disjoint.
type Appointment struct {
	ID             string    `bson:"id" json:"id"`
	ProfessionalID string    `bson:"professional_id" json:"professionalId"`
	PatientID      string    `bson:"patient_id" json:"patientId"`
	ServiceID      string    `bson:"service_id" json:"serviceId"`
	Start          time.Time `bson:"start" json:"start"`
	End            time.Time `bson:"end" json:"end"`
	Status         string    `bson:"status" json:"status"`
	CreatedAt      time.Time `bson:"created_at" json:"createdAt"`
	CancelledAt    time.Time `bson:"cancelled_at,omitempty" json:"cancelledAt,omitempty"`
	CancelledBy    string    `bson:"cancelled_by,omitempty" json:"cancelledBy,omitempty"`
}

// Active reports whether the appointment still occupies its interval.
func (a Appointment) Active() bool {
	return a.Status != AppointmentCancelled
}

// Patient is the booking party. The engine only treats it as a foreign key.
type Patient struct {
	ID        string    `bson:"id" json:"id"`
	Name      string    `bson:"name" json:"name"`
	Email     string    `bson:"email" json:"email"`
	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
}
