package notification

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"clinicbook/models"
	"clinicbook/services/tasks"
	"clinicbook/utils"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// AsynqEmitter enqueues booking events onto the redis-backed queue.
type AsynqEmitter struct {
	Client *asynq.Client
}

func (e *AsynqEmitter) Emit(ctx context.Context, ev models.BookingEvent) {
	e.EmitAt(ctx, ev, time.Time{})
}

func (e *AsynqEmitter) EmitAt(ctx context.Context, ev models.BookingEvent, at time.Time) {
	logger := utils.GetLogger()

	task, opts, err := tasks.NewBookingEventTask(ev, at)
	if err != nil {
		logger.Error("failed to build booking event task", zap.Error(err), zap.String("kind", ev.Kind))
		return
	}
	if _, err := e.Client.EnqueueContext(ctx, task, opts...); err != nil {
		logger.Error("failed to enqueue booking event",
			zap.Error(err),
			zap.String("kind", ev.Kind),
			zap.String("appointmentID", ev.AppointmentID),
		)
	}
}

// WebhookDeliverer posts events to the notification collaborator's webhook.
// An empty URL disables delivery, which keeps local development quiet.
type WebhookDeliverer struct {
	WebhookURL string
	HTTPClient *http.Client
}

func (d *WebhookDeliverer) Deliver(ctx context.Context, ev models.BookingEvent) error {
	if d.WebhookURL == "" {
		utils.GetLogger().Debug("notification webhook not configured, dropping event",
			zap.String("kind", ev.Kind), zap.String("appointmentID", ev.AppointmentID))
		return nil
	}

	body, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("failed to marshal booking event: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.WebhookURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	client := d.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("webhook delivery failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("webhook delivery failed with status %d", resp.StatusCode)
	}
	return nil
}
