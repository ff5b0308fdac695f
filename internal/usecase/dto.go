package usecase

import "github.com/hudlab/hudlab-ops/internal/entity"

type SyncDealsInput struct {
	// FullBackfill ignora a janela e puxa o histórico inteiro.
	FullBackfill bool   `json:"full_backfill"`
	WindowDays   int    `json:"window_days"`
	TriggeredBy  string `json:"-"`
}

type SyncDealsOutput struct {
	LogID     string `json:"log_id"`
	Processed int    `json:"processed"`
	Skipped   int    `json:"skipped"`
	ElapsedMs int64  `json:"elapsed_ms"`
}

type IngestStoreWebhookInput struct {
	Event      string `json:"event"`
	ResourceID string `json:"resource_id"`
	Payload    string `json:"-"`
}

type RetryBatchInput struct {
	Event      string `json:"event"`
	ResourceID string `json:"resource_id"`
	Limit      int    `json:"limit"`
}

type RetryBatchItem struct {
	LogID string `json:"log_id"`
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

type RetryBatchOutput struct {
	Attempted int              `json:"attempted"`
	Succeeded int              `json:"succeeded"`
	Failed    int              `json:"failed"`
	Items     []RetryBatchItem `json:"items"`
}

type GenerateCouponInput struct {
	Percentage int     `json:"percentage" validate:"required,gt=0"`
	ValidDays  int     `json:"validDays" validate:"required,gt=0,lte=365"`
	MaxUses    int     `json:"maxUses" validate:"required,gt=0"`
	Brand      string  `json:"brand" validate:"required,min=2,max=80"`
	Franchise  *string `json:"franchise"`
	CreatedBy  string  `json:"-"`
}

type GenerateCouponOutput struct {
	Coupon *entity.Coupon `json:"coupon"`
}
