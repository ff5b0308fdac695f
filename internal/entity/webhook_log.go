package entity

import "time"

const (
	WebhookStatusProcessing = "processing"
	WebhookStatusProcessed  = "processed"
	WebhookStatusFailed     = "failed"

	// WebhookMaxRetries limita reprocessamentos manuais por linha de log.
	WebhookMaxRetries = 5
)

// WebhookLog registra cada entrega de webhook da Nuvemshop
// (tabela nuvemshop_webhook_logs). Linhas nunca são deletadas;
// o subsistema de retry só muda status e retry_count.
type WebhookLog struct {
	ID           string     `json:"id"`
	Event        string     `json:"event"`
	ResourceID   string     `json:"resource_id"`
	Payload      string     `json:"payload"`
	Status       string     `json:"status"`
	RetryCount   int        `json:"retry_count"`
	ErrorMessage *string    `json:"error_message"`
	ReceivedAt   time.Time  `json:"received_at"`
	ProcessedAt  *time.Time `json:"processed_at"`
	DurationMs   *int64     `json:"duration_ms"`
}
