package handlers

import (
	"net/http"

	"clinicbook/services/availability"
	"clinicbook/utils"

	"github.com/gin-gonic/gin"
)

// AvailabilityHandler serves the read side of the engine.
type AvailabilityHandler struct {
	Engine availability.Engine
}

func NewAvailabilityHandler(engine availability.Engine) *AvailabilityHandler {
	return &AvailabilityHandler{Engine: engine}
}

// GetAvailableSlotsHandler returns bookable candidates for a professional,
// date and service. The optional "tz" query renders slots in the viewer's
// timezone instead of the professional's.
func (h *AvailabilityHandler) GetAvailableSlotsHandler(c *gin.Context) {
	professionalID := c.Param("id")
	date := c.Query("date")
	serviceID := c.Query("serviceId")
	if date == "" || serviceID == "" {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", "date and serviceId query parameters are required")
		return
	}

	slots, err := h.Engine.GetAvailableSlots(c.Request.Context(), availability.AvailabilityRequest{
		ProfessionalID: professionalID,
		Date:           date,
		ServiceID:      serviceID,
		ViewerZone:     c.Query("tz"),
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"professionalId": professionalID,
		"date":           date,
		"serviceId":      serviceID,
		"slots":          slots,
	})
}
