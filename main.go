package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"clinicbook/config"
	"clinicbook/cron"
	"clinicbook/database"
	appointmentRepo "clinicbook/database/repository/appointment"
	professionalRepo "clinicbook/database/repository/professional"
	scheduleRepo "clinicbook/database/repository/schedule"
	"clinicbook/handlers"
	"clinicbook/middleware"
	"clinicbook/routes"
	"clinicbook/services/availability"
	"clinicbook/services/booking"
	"clinicbook/services/calendar"
	"clinicbook/services/notification"
	"clinicbook/services/plan"
	"clinicbook/utils"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitLockClient()

	queueClient := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	})
	defer queueClient.Close()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	profRepo := professionalRepo.NewMongoProfessionalRepo()
	schedRepo := scheduleRepo.NewMongoScheduleRepo()
	apptRepo := appointmentRepo.NewMongoAppointmentRepo()

	// services.
	policyGate := &plan.DefaultPolicyGate{
		Professionals: profRepo,
		Appointments:  apptRepo,
	}

	availabilityEngine := &availability.DefaultEngine{
		Professionals: profRepo,
		Schedules:     schedRepo,
		Appointments:  apptRepo,
	}

	lockArena := &booking.RedisLockArena{
		Client: utils.GetLockClient(),
		TTL:    time.Duration(config.AppConfig.BookingLockTTLMS) * time.Millisecond,
		Wait:   time.Duration(config.AppConfig.BookingLockWaitMS) * time.Millisecond,
	}

	emitter := &notification.AsynqEmitter{Client: queueClient}

	bookingService := &booking.DefaultService{
		Professionals: profRepo,
		Appointments:  apptRepo,
		Availability:  availabilityEngine,
		Gate:          policyGate,
		Locks:         lockArena,
		Notifier:      emitter,
	}

	calendarService := &calendar.DefaultService{
		Professionals: profRepo,
		Schedules:     schedRepo,
		Appointments:  apptRepo,
		Gate:          policyGate,
	}

	// Background worker draining booking events to the webhook.
	cron.InitEventWorker(&notification.WebhookDeliverer{
		WebhookURL: config.AppConfig.NotifyWebhookURL,
	})

	utils.StartHealthMonitor(utils.GetLockClient(), database.MongoClient)

	availabilityHandler := handlers.NewAvailabilityHandler(availabilityEngine)
	bookingHandler := handlers.NewBookingHandler(bookingService, logger)
	calendarHandler := handlers.NewCalendarHandler(calendarService)

	handlerBundle := &handlers.HandlerBundle{
		GetAvailableSlotsHandler: availabilityHandler.GetAvailableSlotsHandler,

		BookAppointmentHandler:     bookingHandler.BookAppointmentHandler,
		CancelAppointmentHandler:   bookingHandler.CancelAppointmentHandler,
		CompleteAppointmentHandler: bookingHandler.CompleteAppointmentHandler,

		CreateScheduleHandler:   calendarHandler.CreateScheduleHandler,
		UpdateScheduleHandler:   calendarHandler.UpdateScheduleHandler,
		DeleteScheduleHandler:   calendarHandler.DeleteScheduleHandler,
		ListSchedulesHandler:    calendarHandler.ListSchedulesHandler,
		CreateBreakHandler:      calendarHandler.CreateBreakHandler,
		DeleteBreakHandler:      calendarHandler.DeleteBreakHandler,
		ListBreaksHandler:       calendarHandler.ListBreaksHandler,
		ListAppointmentsHandler: calendarHandler.ListAppointmentsHandler,
	}

	routes.RegisterRoutes(router, handlerBundle)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
