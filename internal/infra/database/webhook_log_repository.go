package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/hudlab/hudlab-ops/internal/entity"
)

type WebhookLogRepository struct {
	DB *sql.DB
}

func NewWebhookLogRepository(db *sql.DB) *WebhookLogRepository {
	return &WebhookLogRepository{DB: db}
}

const webhookLogColumns = `
	id, event, resource_id, payload, status, retry_count,
	error_message, received_at, processed_at, duration_ms`

func (r *WebhookLogRepository) Create(ctx context.Context, event, resourceID, payload string) (*entity.WebhookLog, error) {
	query := `
		INSERT INTO nuvemshop_webhook_logs (id, event, resource_id, payload, status, retry_count, received_at)
		VALUES ($1, $2, $3, $4, 'processing', 0, NOW())
		RETURNING ` + webhookLogColumns

	return r.scanOne(r.DB.QueryRowContext(ctx, query, uuid.New().String(), event, resourceID, payload))
}

func (r *WebhookLogRepository) MarkProcessed(ctx context.Context, id string, durationMs int64) error {
	query := `
		UPDATE nuvemshop_webhook_logs
		SET status = 'processed', error_message = NULL, processed_at = NOW(), duration_ms = $2
		WHERE id = $1
	`
	_, err := r.DB.ExecContext(ctx, query, id, durationMs)
	return err
}

func (r *WebhookLogRepository) MarkFailed(ctx context.Context, id string, errMsg string, durationMs int64) error {
	query := `
		UPDATE nuvemshop_webhook_logs
		SET status = 'failed', error_message = $2, processed_at = NOW(), duration_ms = $3
		WHERE id = $1
	`
	_, err := r.DB.ExecContext(ctx, query, id, errMsg, durationMs)
	return err
}

// ClaimForRetry faz a transição failed→processing num único UPDATE
// condicional: só reivindica se a linha está failed e ainda tem budget
// de retry. Duas retentativas simultâneas da mesma linha — só uma ganha;
// a outra recebe o motivo da recusa.
func (r *WebhookLogRepository) ClaimForRetry(ctx context.Context, id string) (*entity.WebhookLog, error) {
	query := `
		UPDATE nuvemshop_webhook_logs
		SET status = 'processing', retry_count = retry_count + 1
		WHERE id = $1 AND status = 'failed' AND retry_count < $2
		RETURNING ` + webhookLogColumns

	l, err := r.scanOne(r.DB.QueryRowContext(ctx, query, id, entity.WebhookMaxRetries))
	if errors.Is(err, entity.ErrNotFound) {
		// Distinguir "não existe / não elegível" de "estourou o cap"
		existing, ferr := r.FindByID(ctx, id)
		if ferr != nil {
			return nil, ferr
		}
		if existing.Status == entity.WebhookStatusFailed && existing.RetryCount >= entity.WebhookMaxRetries {
			return nil, entity.ErrRetryExhausted
		}
		return nil, entity.ErrRetryNotEligible
	}
	return l, err
}

func (r *WebhookLogRepository) FindByID(ctx context.Context, id string) (*entity.WebhookLog, error) {
	query := `SELECT ` + webhookLogColumns + ` FROM nuvemshop_webhook_logs WHERE id = $1`
	return r.scanOne(r.DB.QueryRowContext(ctx, query, id))
}

// ListFailed seleciona candidatos pro retry em lote, mais antigos primeiro.
func (r *WebhookLogRepository) ListFailed(ctx context.Context, event, resourceID string, limit int) ([]entity.WebhookLog, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	query := `
		SELECT ` + webhookLogColumns + `
		FROM nuvemshop_webhook_logs
		WHERE status = 'failed'
		  AND retry_count < $3
		  AND ($1 = '' OR event = $1)
		  AND ($2 = '' OR resource_id = $2)
		ORDER BY received_at ASC
		LIMIT $4
	`
	rows, err := r.DB.QueryContext(ctx, query, event, resourceID, entity.WebhookMaxRetries, limit)
	if err != nil {
		return nil, fmt.Errorf("falha ao listar webhooks failed: %w", err)
	}
	defer rows.Close()
	return r.scanMany(rows)
}

func (r *WebhookLogRepository) List(ctx context.Context, status string, limit int) ([]entity.WebhookLog, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	query := `
		SELECT ` + webhookLogColumns + `
		FROM nuvemshop_webhook_logs
		WHERE ($1 = '' OR status = $1)
		ORDER BY received_at DESC
		LIMIT $2
	`
	rows, err := r.DB.QueryContext(ctx, query, status, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return r.scanMany(rows)
}

func (r *WebhookLogRepository) scanOne(row *sql.Row) (*entity.WebhookLog, error) {
	var l entity.WebhookLog
	err := row.Scan(&l.ID, &l.Event, &l.ResourceID, &l.Payload, &l.Status, &l.RetryCount,
		&l.ErrorMessage, &l.ReceivedAt, &l.ProcessedAt, &l.DurationMs)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, entity.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *WebhookLogRepository) scanMany(rows *sql.Rows) ([]entity.WebhookLog, error) {
	var logs []entity.WebhookLog
	for rows.Next() {
		var l entity.WebhookLog
		if err := rows.Scan(&l.ID, &l.Event, &l.ResourceID, &l.Payload, &l.Status, &l.RetryCount,
			&l.ErrorMessage, &l.ReceivedAt, &l.ProcessedAt, &l.DurationMs); err != nil {
			return nil, err
		}
		logs = append(logs, l)
	}
	return logs, rows.Err()
}
