package routes

import (
	"net/http"
	"time"

	"clinicbook/handlers"
	"clinicbook/middleware"
	"clinicbook/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterAvailabilityRoutes registers the public read side. Availability is
// viewable without a session so booking pages can render for anonymous
// visitors.
func RegisterAvailabilityRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/professionals")
	{
		api.GET("/:id/availability", hb.GetAvailableSlotsHandler)
	}
}

// RegisterBookingRoutes registers the commit side. All booking mutations
// require a session.
func RegisterBookingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/appointments")
	{
		api.Use(middleware.SessionAuthMiddleware())
		api.POST("", hb.BookAppointmentHandler)
		api.DELETE("/:id", hb.CancelAppointmentHandler)
		api.POST("/:id/complete", hb.CompleteAppointmentHandler)
	}
}

// RegisterCalendarRoutes registers schedule and break management plus the
// professional's appointment listing.
func RegisterCalendarRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/professionals/:id")
	{
		api.Use(middleware.SessionAuthMiddleware())
		api.GET("/schedules", hb.ListSchedulesHandler)
		api.POST("/schedules", hb.CreateScheduleHandler)
		api.PUT("/schedules/:scheduleID", hb.UpdateScheduleHandler)
		api.DELETE("/schedules/:scheduleID", hb.DeleteScheduleHandler)

		api.GET("/breaks", hb.ListBreaksHandler)
		api.POST("/breaks", hb.CreateBreakHandler)
		api.DELETE("/breaks/:breakID", hb.DeleteBreakHandler)

		api.GET("/appointments", hb.ListAppointmentsHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint backed by the
// periodic dependency monitor.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "dependencies": utils.GetHealthStatus()})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterHealthRoute(r)
	RegisterAvailabilityRoutes(r, hb)
	RegisterBookingRoutes(r, hb)
	RegisterCalendarRoutes(r, hb)
}
