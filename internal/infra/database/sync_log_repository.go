package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/hudlab/hudlab-ops/internal/entity"
)

type SyncLogRepository struct {
	DB *sql.DB
}

func NewSyncLogRepository(db *sql.DB) *SyncLogRepository {
	return &SyncLogRepository{DB: db}
}

// StartRun cria a linha "running" do sync de forma atômica: o INSERT
// só acontece se não existir outra linha running. Guard e transição
// são o MESMO statement — sem read-then-write, sem corrida.
func (r *SyncLogRepository) StartRun(ctx context.Context, triggeredBy string) (*entity.SyncLog, error) {
	query := `
		INSERT INTO deals_sync_log (id, status, triggered_by, records_processed, started_at)
		SELECT $1, 'running', $2, 0, NOW()
		WHERE NOT EXISTS (
			SELECT 1 FROM deals_sync_log WHERE status = 'running'
		)
		RETURNING id, status, triggered_by, records_processed, error_message, started_at, finished_at
	`

	var l entity.SyncLog
	err := r.DB.QueryRowContext(ctx, query, uuid.New().String(), triggeredBy).Scan(
		&l.ID, &l.Status, &l.TriggeredBy, &l.RecordsProcessed, &l.ErrorMessage, &l.StartedAt, &l.FinishedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, entity.ErrSyncAlreadyRunning
	}
	if isUniqueViolation(err) {
		// dois triggers passaram pelo NOT EXISTS ao mesmo tempo; o índice
		// parcial idx_sync_log_single_running rejeita o perdedor
		return nil, entity.ErrSyncAlreadyRunning
	}
	if err != nil {
		return nil, fmt.Errorf("falha ao iniciar sync log: %w", err)
	}
	return &l, nil
}

func (r *SyncLogRepository) Complete(ctx context.Context, id string, processed int) error {
	query := `
		UPDATE deals_sync_log
		SET status = 'completed', records_processed = $2, finished_at = NOW()
		WHERE id = $1
	`
	_, err := r.DB.ExecContext(ctx, query, id, processed)
	return err
}

func (r *SyncLogRepository) Fail(ctx context.Context, id string, processed int, errMsg string) error {
	query := `
		UPDATE deals_sync_log
		SET status = 'failed', records_processed = $2, error_message = $3, finished_at = NOW()
		WHERE id = $1
	`
	_, err := r.DB.ExecContext(ctx, query, id, processed, errMsg)
	return err
}

// Latest devolve a execução mais recente, pro polling da UI.
func (r *SyncLogRepository) Latest(ctx context.Context) (*entity.SyncLog, error) {
	query := `
		SELECT id, status, triggered_by, records_processed, error_message, started_at, finished_at
		FROM deals_sync_log
		ORDER BY started_at DESC
		LIMIT 1
	`

	var l entity.SyncLog
	err := r.DB.QueryRowContext(ctx, query).Scan(
		&l.ID, &l.Status, &l.TriggeredBy, &l.RecordsProcessed, &l.ErrorMessage, &l.StartedAt, &l.FinishedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, entity.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &l, nil
}
