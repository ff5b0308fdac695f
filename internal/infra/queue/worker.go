package queue

import (
	"context"
	"encoding/json"

	amqp "github.com/rabbitmq/amqp091-go"
	log "github.com/sirupsen/logrus"

	"github.com/hudlab/hudlab-ops/internal/entity"
)

// NotificationStore é o contrato do worker com o banco.
type NotificationStore interface {
	Broadcast(ctx context.Context, n *entity.Notification, userIDs []string) error
}

// RecipientResolver resolve os destinatários de um papel.
type RecipientResolver interface {
	ListIDsByRole(ctx context.Context, role string) ([]string, error)
}

// MailSender espelha a notificação por email quando o evento pede.
type MailSender interface {
	SendNotification(to, title, body string) error
}

type Worker struct {
	Channel    *amqp.Channel
	Store      NotificationStore
	Recipients RecipientResolver
	Mail       MailSender // pode ser nil (SMTP não configurado)
}

func NewWorker(ch *amqp.Channel, store NotificationStore, recipients RecipientResolver, mail MailSender) *Worker {
	return &Worker{Channel: ch, Store: store, Recipients: recipients, Mail: mail}
}

func (w *Worker) Start(queueName string) {
	msgs, err := w.Channel.Consume(
		queueName,
		"",    // consumer
		false, // auto-ack (manual é mais seguro)
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,   // args
	)
	if err != nil {
		log.Fatalf("❌ Falha ao registrar consumidor RabbitMQ: %s", err)
	}

	forever := make(chan bool)

	go func() {
		for d := range msgs {
			var event NotificationEvent
			if err := json.Unmarshal(d.Body, &event); err != nil {
				log.WithError(err).Error("[WORKER] JSON inválido, descartando")
				// Mensagem podre (malformada). Rejeita sem requeue para não travar a fila.
				d.Nack(false, false)
				continue
			}

			if err := w.processEvent(context.Background(), event); err != nil {
				log.WithError(err).WithField("type", event.Type).Error("[WORKER] falha no fan-out")
				d.Nack(false, false) // vai pra DLQ
			} else {
				d.Ack(false)
			}
		}
	}()

	log.Infof(" [*] Worker de notificações aguardando na fila '%s'", queueName)
	<-forever
}

func (w *Worker) processEvent(ctx context.Context, event NotificationEvent) error {
	userIDs, err := w.Recipients.ListIDsByRole(ctx, event.TargetRole)
	if err != nil {
		return err
	}

	var targetRole *string
	if event.TargetRole != "" {
		targetRole = &event.TargetRole
	}

	n := &entity.Notification{
		Title:      event.Title,
		Body:       event.Body,
		TargetRole: targetRole,
		CreatedBy:  event.CreatedBy,
	}
	if err := w.Store.Broadcast(ctx, n, userIDs); err != nil {
		return err
	}

	log.WithFields(log.Fields{
		"type":       event.Type,
		"recipients": len(userIDs),
	}).Info("🔔 Notificação distribuída")

	// Email é melhor esforço: falha de SMTP não deve mandar a
	// mensagem pra DLQ depois do fan-out já ter acontecido.
	if w.Mail != nil && event.EmailTo != "" {
		if err := w.Mail.SendNotification(event.EmailTo, event.Title, event.Body); err != nil {
			log.WithError(err).Warn("[WORKER] espelho por email falhou")
		}
	}

	return nil
}
