package models

import "time"

// AvailableSlot is one bookable candidate returned by the availability
// engine. Start/End are the authoritative UTC instants; the *Local fields
// are rendered in the requesting viewer's timezone for display only.
type AvailableSlot struct {
	Start      time.Time `json:"start"`
	End        time.Time `json:"end"`
	Date       string    `json:"date"`       // viewer-local "2006-01-02"
	StartLocal string    `json:"startLocal"` // viewer-local "15:04"
	EndLocal   string    `json:"endLocal"`
}

// BookingEvent is the fire-and-forget payload emitted to the notification
// collaborator after a booking mutation commits. Delivery failures never
// affect the committed appointment.
type BookingEvent struct {
	Kind           string    `json:"kind"` // "booking.confirmed" or "booking.cancelled"
	AppointmentID  string    `json:"appointmentId"`
	ProfessionalID string    `json:"professionalId"`
	PatientID      string    `json:"patientId"`
	ServiceID      string    `json:"serviceId"`
	Start          time.Time `json:"start"`
	End            time.Time `json:"end"`
	EmittedAt      time.Time `json:"emittedAt"`
}

const (
	EventBookingConfirmed = "booking.confirmed"
	EventBookingCancelled = "booking.cancelled"
	EventBookingReminder  = "booking.reminder"
)
