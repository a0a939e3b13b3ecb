package handlers

import (
	"errors"
	"net/http"

	"clinicbook/models"
	"clinicbook/services/availability"
	"clinicbook/services/booking"
	"clinicbook/services/calendar"
	"clinicbook/services/plan"
	"clinicbook/utils"

	"github.com/gin-gonic/gin"
)

// respondError translates service-layer errors into HTTP responses. Every
// handler funnels failures through here so status codes stay consistent.
func respondError(c *gin.Context, err error) {
	var invalidTime availability.InvalidTimeInputError
	var notFound availability.NotFoundError
	var unavailable availability.UnavailableError
	var slotGone booking.SlotNoLongerAvailableError
	var badState booking.AppointmentStateError
	var lockTimeout booking.BookingTimeoutError
	var planLimit plan.PlanLimitExceededError
	var readOnly plan.ReadOnlyRestrictionError
	var schedConflict calendar.ScheduleConflictError

	switch {
	case errors.As(err, &invalidTime):
		utils.JSONError(c, http.StatusUnprocessableEntity, "invalid time input", invalidTime.Error())
	case errors.As(err, &slotGone):
		utils.JSONError(c, http.StatusConflict, "slot no longer available", slotGone.Error())
	case errors.As(err, &badState):
		utils.JSONError(c, http.StatusConflict, "invalid appointment state", badState.Error())
	case errors.As(err, &schedConflict):
		utils.JSONError(c, http.StatusConflict, "schedule conflict", schedConflict.Error())
	case errors.As(err, &planLimit):
		utils.JSONError(c, http.StatusPaymentRequired, "plan limit exceeded", planLimit.Error())
	case errors.As(err, &readOnly):
		utils.JSONError(c, http.StatusForbidden, "read-only access", readOnly.Error())
	case errors.As(err, &notFound):
		utils.JSONError(c, http.StatusNotFound, "not found", notFound.Error())
	case errors.As(err, &lockTimeout):
		utils.JSONError(c, http.StatusServiceUnavailable, "booking timed out", lockTimeout.Error())
	case errors.As(err, &unavailable):
		utils.JSONError(c, http.StatusServiceUnavailable, "service unavailable", unavailable.Error())
	default:
		utils.JSONError(c, http.StatusInternalServerError, "internal error", err.Error())
	}
}

// actorFromContext reads the identity stashed by the session middleware.
func actorFromContext(c *gin.Context) (models.Actor, bool) {
	actorID := c.GetString("actorID")
	if actorID == "" {
		return models.Actor{}, false
	}
	return models.Actor{ID: actorID, Role: c.GetString("actorRole")}, true
}
