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
	EventLeadStatusChanged = "lead.status_changed"
	EventLeadDeleted       = "lead.deleted"
)

// LeadEventPayload notifica a camada externa (automação de marketing,
// sincronização com outros sistemas) sobre o ciclo de vida dos leads.
type LeadEventPayload struct {
	Event     string    `json:"event"`
	LeadID    string    `json:"lead_id"`
	Name      string    `json:"name,omitempty"`
	Email     string    `json:"email,omitempty"`
	Status    string    `json:"status,omitempty"`
	OldStatus string    `json:"old_status,omitempty"`
	At        time.Time `json:"at"`
}

type RabbitMQProducer struct {
	Conn *amqp.Connection
	Ch   *amqp.Channel
}

func NewProducer(conn *amqp.Connection, ch *amqp.Channel) *RabbitMQProducer {
	return &RabbitMQProducer{
		Conn: conn,
		Ch:   ch,
	}
}

func (p *RabbitMQProducer) PublishLeadEvent(ctx context.Context, payload LeadEventPayload) error {
	if payload.At.IsZero() {
		payload.At = time.Now()
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("erro ao converter payload: %v", err)
	}

	err = p.Ch.PublishWithContext(ctx,
		ExchangeName,
		RoutingKey,
		false, // Mandatory
		false, // Immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent, // Mensagem salva no disco
		},
	)

	if err != nil {
		return fmt.Errorf("falha ao publicar no RabbitMQ: %v", err)
	}

	return nil
}
