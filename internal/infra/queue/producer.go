package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	EventLeadCreated       = "lead.created"
	EventFollowUpCompleted = "followup.completed"
)

type LeadEventPayload struct {
	Event         string    `json:"event"`
	LeadID        string    `json:"lead_id"`
	LeadName      string    `json:"lead_name"`
	CompanyName   string    `json:"company_name"`
	Status        string    `json:"status"`
	AssignedCSR   string    `json:"assigned_csr"`
	FollowUpIndex *int      `json:"follow_up_index,omitempty"`
	OccurredAt    time.Time `json:"occurred_at"`
}

// ReminderPayload asks the notifier to remind a CSR about a due follow-up or callback.
type ReminderPayload struct {
	LeadID        string    `json:"lead_id"`
	LeadName      string    `json:"lead_name"`
	CompanyName   string    `json:"company_name"`
	AssignedCSR   string    `json:"assigned_csr"`
	DueDate       time.Time `json:"due_date"`
	IsCallback    bool      `json:"is_callback"`
	FollowUpIndex *int      `json:"follow_up_index,omitempty"`
	Overdue       bool      `json:"overdue"`
}

// Publisher is the subset of *amqp.Channel the producer needs.
type Publisher interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

type RabbitMQProducer struct {
	Ch Publisher
}

func NewProducer(ch Publisher) *RabbitMQProducer {
	return &RabbitMQProducer{Ch: ch}
}

func (p *RabbitMQProducer) PublishLeadEvent(ctx context.Context, payload LeadEventPayload) error {
	return p.publish(ctx, LeadEventKey, payload)
}

func (p *RabbitMQProducer) PublishReminder(ctx context.Context, payload ReminderPayload) error {
	return p.publish(ctx, ReminderKey, payload)
}

func (p *RabbitMQProducer) publish(ctx context.Context, key string, payload interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode payload: %w", err)
	}

	err = p.Ch.PublishWithContext(ctx,
		ExchangeName,
		key,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now(),
		},
	)
	if err != nil {
		return fmt.Errorf("failed to publish to RabbitMQ: %w", err)
	}
	return nil
}
