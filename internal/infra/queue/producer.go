package queue

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Tipos de evento que geram notificação.
const (
	EventSyncCompleted  = "sync_completed"
	EventCouponCreated  = "coupon_created"
	EventAdminBroadcast = "admin_broadcast"
)

// NotificationEvent é o payload publicado na fila. O fan-out por
// usuário acontece no consumer, não aqui.
type NotificationEvent struct {
	Type       string `json:"type"`
	Title      string `json:"title"`
	Body       string `json:"body"`
	TargetRole string `json:"target_role"` // vazio = todos os aprovados
	CreatedBy  string `json:"created_by"`
	EmailTo    string `json:"email_to,omitempty"` // espelho por email, opcional
}

type RabbitMQProducer struct {
	Conn *amqp.Connection
	Ch   *amqp.Channel
}

func NewProducer(conn *amqp.Connection, ch *amqp.Channel) *RabbitMQProducer {
	return &RabbitMQProducer{Conn: conn, Ch: ch}
}

func (p *RabbitMQProducer) PublishNotification(ctx context.Context, event NotificationEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("erro ao converter payload: %w", err)
	}

	err = p.Ch.PublishWithContext(ctx,
		ExchangeName,
		RoutingKey,
		false, // Mandatory
		false, // Immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
		},
	)
	if err != nil {
		return fmt.Errorf("falha ao publicar no RabbitMQ: %w", err)
	}
	return nil
}
