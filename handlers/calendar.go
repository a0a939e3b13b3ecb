package handlers

import (
	"net/http"
	"time"

	"clinicbook/models"
	"clinicbook/services/calendar"
	"clinicbook/utils"

	"github.com/gin-gonic/gin"
)

// CalendarHandler serves schedule-window and break management for
// professionals and their team members.
type CalendarHandler struct {
	Service calendar.Service
}

func NewCalendarHandler(svc calendar.Service) *CalendarHandler {
	return &CalendarHandler{Service: svc}
}

type scheduleInput struct {
	Weekday    int      `json:"weekday"`
	Start      string   `json:"start" binding:"required"`
	End        string   `json:"end" binding:"required"`
	ServiceIDs []string `json:"serviceIds"`
}

func (h *CalendarHandler) CreateScheduleHandler(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "unauthorized", "no session identity")
		return
	}

	var input scheduleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	sched := &models.Schedule{
		ProfessionalID: c.Param("id"),
		Weekday:        time.Weekday(input.Weekday),
		Start:          input.Start,
		End:            input.End,
		ServiceIDs:     input.ServiceIDs,
		CreatedAt:      time.Now().UTC(),
	}
	if err := h.Service.CreateSchedule(c.Request.Context(), actor, sched); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"schedule": sched})
}

func (h *CalendarHandler) UpdateScheduleHandler(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "unauthorized", "no session identity")
		return
	}

	var input scheduleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	sched := &models.Schedule{
		ID:             c.Param("scheduleID"),
		ProfessionalID: c.Param("id"),
		Weekday:        time.Weekday(input.Weekday),
		Start:          input.Start,
		End:            input.End,
		ServiceIDs:     input.ServiceIDs,
		UpdatedAt:      time.Now().UTC(),
	}
	if err := h.Service.UpdateSchedule(c.Request.Context(), actor, sched); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"schedule": sched})
}

func (h *CalendarHandler) DeleteScheduleHandler(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "unauthorized", "no session identity")
		return
	}
	if err := h.Service.DeleteSchedule(c.Request.Context(), actor, c.Param("id"), c.Param("scheduleID")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

func (h *CalendarHandler) ListSchedulesHandler(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "unauthorized", "no session identity")
		return
	}
	schedules, err := h.Service.ListSchedules(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"schedules": schedules})
}

func (h *CalendarHandler) CreateBreakHandler(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "unauthorized", "no session identity")
		return
	}

	var input struct {
		Start  time.Time `json:"start" binding:"required"`
		End    time.Time `json:"end" binding:"required"`
		Reason string    `json:"reason"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	b := &models.Break{
		ProfessionalID: c.Param("id"),
		Start:          input.Start,
		End:            input.End,
		Reason:         input.Reason,
		CreatedAt:      time.Now().UTC(),
	}
	if err := h.Service.CreateBreak(c.Request.Context(), actor, b); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"break": b})
}

func (h *CalendarHandler) DeleteBreakHandler(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "unauthorized", "no session identity")
		return
	}
	if err := h.Service.DeleteBreak(c.Request.Context(), actor, c.Param("id"), c.Param("breakID")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

func (h *CalendarHandler) ListBreaksHandler(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "unauthorized", "no session identity")
		return
	}
	breaks, err := h.Service.ListBreaks(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"breaks": breaks})
}

// ListAppointmentsHandler returns the professional's appointments in a
// window. Defaults to the next 30 days when no bounds are given.
func (h *CalendarHandler) ListAppointmentsHandler(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "unauthorized", "no session identity")
		return
	}

	from := time.Now().UTC()
	to := from.AddDate(0, 0, 30)
	if v := c.Query("from"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, "invalid input", "from must be RFC 3339")
			return
		}
		from = t
	}
	if v := c.Query("to"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, "invalid input", "to must be RFC 3339")
			return
		}
		to = t
	}

	appts, err := h.Service.ListAppointments(c.Request.Context(), actor, c.Param("id"), from, to)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"appointments": appts})
}
