package tasks

import (
	"encoding/json"
	"time"

	"clinicbook/models"

	"github.com/hibiken/asynq"
)

const TypeBookingEvent = "booking:event"

// NewBookingEventTask wraps a booking event for the background queue.
// fireAt in the past or zero means "deliver as soon as possible".
func NewBookingEventTask(ev models.BookingEvent, fireAt time.Time) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(ev)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeBookingEvent, b)
	var opts []asynq.Option
	if !fireAt.IsZero() && fireAt.After(time.Now()) {
		opts = append(opts, asynq.ProcessAt(fireAt))
	}
	return task, opts, nil
}
