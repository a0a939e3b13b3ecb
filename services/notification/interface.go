package notification

import (
	"context"
	"time"

	"clinicbook/models"
)

// Emitter publishes booking events toward the notification collaborator.
// Emission is best-effort and non-blocking: failures are logged, never
// returned, and never affect the committed booking.
type Emitter interface {
	Emit(ctx context.Context, ev models.BookingEvent)
	EmitAt(ctx context.Context, ev models.BookingEvent, at time.Time)
}

// Deliverer pushes a single event to the external notification service.
// Called by the background worker, which owns the retry policy.
type Deliverer interface {
	Deliver(ctx context.Context, ev models.BookingEvent) error
}
