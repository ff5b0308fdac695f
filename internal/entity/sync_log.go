package entity

import "time"

const (
	SyncStatusRunning   = "running"
	SyncStatusCompleted = "completed"
	SyncStatusFailed    = "failed"
)

// SyncLog é uma linha por execução de sync (tabela deals_sync_log).
// A UI faz polling na linha mais recente para mostrar progresso.
type SyncLog struct {
	ID               string     `json:"id"`
	Status           string     `json:"status"`
	TriggeredBy      string     `json:"triggered_by"`
	RecordsProcessed int        `json:"records_processed"`
	ErrorMessage     *string    `json:"error_message"`
	StartedAt        time.Time  `json:"started_at"`
	FinishedAt       *time.Time `json:"finished_at"`
}
