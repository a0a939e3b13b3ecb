package handlers

import "github.com/gin-gonic/gin"

// HandlerBundle aggregates the wired handler funcs so route registration
// stays decoupled from service construction.
type HandlerBundle struct {
	// Availability (public read side).
	GetAvailableSlotsHandler gin.HandlerFunc

	// Booking.
	BookAppointmentHandler     gin.HandlerFunc
	CancelAppointmentHandler   gin.HandlerFunc
	CompleteAppointmentHandler gin.HandlerFunc

	// Calendar management.
	CreateScheduleHandler   gin.HandlerFunc
	UpdateScheduleHandler   gin.HandlerFunc
	DeleteScheduleHandler   gin.HandlerFunc
	ListSchedulesHandler    gin.HandlerFunc
	CreateBreakHandler      gin.HandlerFunc
	DeleteBreakHandler      gin.HandlerFunc
	ListBreaksHandler       gin.HandlerFunc
	ListAppointmentsHandler gin.HandlerFunc
}
