package queue

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/xavierca1/ligue-csr/internal/logger"
)

// ReminderNotifier delivers a reminder to the CSR (email today).
type ReminderNotifier interface {
	SendReminder(ctx context.Context, payload ReminderPayload) error
}

// Acknowledger is the subset of amqp.Delivery the worker settles messages with.
type Acknowledger interface {
	Ack(multiple bool) error
	Nack(multiple, requeue bool) error
}

type Worker struct {
	Channel  *amqp.Channel
	Notifier ReminderNotifier
	Logger   logger.Logger
}

func NewWorker(ch *amqp.Channel, notifier ReminderNotifier, log logger.Logger) *Worker {
	return &Worker{Channel: ch, Notifier: notifier, Logger: log}
}

// Start consumes the reminder queue until ctx is cancelled or the channel closes.
func (w *Worker) Start(ctx context.Context, queueName string) error {
	msgs, err := w.Channel.Consume(
		queueName,
		"",
		false, // manual ack
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return fmt.Errorf("failed to register RabbitMQ consumer: %w", err)
	}

	w.Logger.Info("reminder worker waiting for messages", map[string]interface{}{"queue": queueName})

	for {
		select {
		case <-ctx.Done():
			return nil
		case d, ok := <-msgs:
			if !ok {
				return nil
			}
			w.Handle(ctx, d.Body, d)
		}
	}
}

// Handle processes one delivery. Bad payloads and notifier failures are
// rejected without requeue so they end up in the DLQ.
func (w *Worker) Handle(ctx context.Context, body []byte, ack Acknowledger) {
	var payload ReminderPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		w.Logger.Error("invalid reminder payload", map[string]interface{}{"error": err.Error()})
		ack.Nack(false, false)
		return
	}

	if err := w.Notifier.SendReminder(ctx, payload); err != nil {
		w.Logger.Error("failed to deliver reminder", map[string]interface{}{
			"lead_id": payload.LeadID,
			"error":   err.Error(),
		})
		ack.Nack(false, false)
		return
	}

	w.Logger.Debug("reminder delivered", map[string]interface{}{"lead_id": payload.LeadID, "csr": payload.AssignedCSR})
	ack.Ack(false)
}
