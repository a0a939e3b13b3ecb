package cron

import (
	"context"
	"encoding/json"
	"log"

	"clinicbook/config"
	"clinicbook/models"
	"clinicbook/services/notification"
	"clinicbook/services/tasks"

	"github.com/hibiken/asynq"
)

// InitEventWorker runs the background worker that drains booking events to
// the notification collaborator. Delivery errors are returned to asynq so it
// retries with backoff; they never touch the booking path.
func InitEventWorker(deliverer notification.Deliverer) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeBookingEvent, handleBookingEvent(deliverer))

	go func() {
		log.Println("[EventWorker] starting async worker...")
		if err := srv.Run(mux); err != nil {
			log.Printf("[EventWorker] worker stopped: %v", err)
		}
	}()
}

func handleBookingEvent(deliverer notification.Deliverer) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var ev models.BookingEvent
		if err := json.Unmarshal(task.Payload(), &ev); err != nil {
			log.Printf("[EventWorker] invalid payload: %v", err)
			return err
		}
		if err := deliverer.Deliver(ctx, ev); err != nil {
			log.Printf("[EventWorker] failed to deliver %s for appointment %s: %v", ev.Kind, ev.AppointmentID, err)
			return err
		}
		return nil
	}
}
