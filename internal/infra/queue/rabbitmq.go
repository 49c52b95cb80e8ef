package queue

import (
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	ExchangeName = "ex.csr"
	DLXName      = "ex.csr.dlx"

	ReminderQueue = "q.followup_reminders"
	ReminderDLQ   = "q.followup_reminders.dlq"
	ReminderKey   = "k.followup.reminder"

	LeadEventsQueue = "q.lead_events"
	LeadEventKey    = "k.lead.event"
)

type RabbitMQ struct {
	Conn *amqp.Connection
	Ch   *amqp.Channel
}

func NewRabbitMQ(url string) (*RabbitMQ, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	if err := setupTopology(ch); err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare topology: %w", err)
	}

	return &RabbitMQ{Conn: conn, Ch: ch}, nil
}

func (r *RabbitMQ) Close() {
	if r.Ch != nil {
		r.Ch.Close()
	}
	if r.Conn != nil {
		r.Conn.Close()
	}
}

func setupTopology(ch *amqp.Channel) error {
	if err := ch.ExchangeDeclare(DLXName, "direct", true, false, false, false, nil); err != nil {
		return err
	}
	if _, err := ch.QueueDeclare(ReminderDLQ, true, false, false, false, nil); err != nil {
		return err
	}
	if err := ch.QueueBind(ReminderDLQ, ReminderKey, DLXName, false, nil); err != nil {
		return err
	}

	if err := ch.ExchangeDeclare(ExchangeName, "direct", true, false, false, false, nil); err != nil {
		return err
	}

	// rejected reminders land in the DLQ
	args := amqp.Table{
		"x-dead-letter-exchange":    DLXName,
		"x-dead-letter-routing-key": ReminderKey,
	}
	if _, err := ch.QueueDeclare(ReminderQueue, true, false, false, false, args); err != nil {
		return err
	}
	if err := ch.QueueBind(ReminderQueue, ReminderKey, ExchangeName, false, nil); err != nil {
		return err
	}

	if _, err := ch.QueueDeclare(LeadEventsQueue, true, false, false, false, nil); err != nil {
		return err
	}
	return ch.QueueBind(LeadEventsQueue, LeadEventKey, ExchangeName, false, nil)
}
