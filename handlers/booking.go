package handlers

import (
	"net/http"
	"time"

	"clinicbook/models"
	"clinicbook/services/booking"
	"clinicbook/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BookingHandler serves the commit side of the engine.
type BookingHandler struct {
	Service booking.Service
	Logger  *zap.Logger
}

func NewBookingHandler(svc booking.Service, logger *zap.Logger) *BookingHandler {
	return &BookingHandler{Service: svc, Logger: logger}
}

// BookAppointmentHandler commits a previously displayed slot. The start must
// be the exact RFC 3339 instant the availability endpoint returned.
func (h *BookingHandler) BookAppointmentHandler(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "unauthorized", "no session identity")
		return
	}

	var input struct {
		ProfessionalID string    `json:"professionalId" binding:"required"`
		ServiceID      string    `json:"serviceId" binding:"required"`
		PatientID      string    `json:"patientId"`
		Start          time.Time `json:"start" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	// Patients always book for themselves.
	patientID := input.PatientID
	if actor.Role == models.RolePatient || patientID == "" {
		patientID = actor.ID
	}

	appt, err := h.Service.Book(c.Request.Context(), booking.BookRequest{
		ProfessionalID: input.ProfessionalID,
		ServiceID:      input.ServiceID,
		PatientID:      patientID,
		Start:          input.Start,
		Actor:          actor,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	h.Logger.Info("booking confirmed over HTTP",
		zap.String("appointmentID", appt.ID),
		zap.String("actorID", actor.ID),
	)
	c.JSON(http.StatusCreated, gin.H{"appointment": appt})
}

// CancelAppointmentHandler cancels an appointment. Patients may cancel only
// their own; team members need write access on the calendar.
func (h *BookingHandler) CancelAppointmentHandler(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "unauthorized", "no session identity")
		return
	}

	appointmentID := c.Param("id")
	if err := h.Service.Cancel(c.Request.Context(), appointmentID, actor); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "cancelled", "appointmentId": appointmentID})
}

// CompleteAppointmentHandler marks an appointment as completed after the
// visit. Same actor rules as cancellation.
func (h *BookingHandler) CompleteAppointmentHandler(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "unauthorized", "no session identity")
		return
	}

	appointmentID := c.Param("id")
	if err := h.Service.Complete(c.Request.Context(), appointmentID, actor); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "completed", "appointmentId": appointmentID})
}
