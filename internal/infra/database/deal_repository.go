package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/hudlab/hudlab-ops/internal/entity"
)

type DealRepository struct {
	DB *sql.DB
}

func NewDealRepository(db *sql.DB) *DealRepository {
	return &DealRepository{DB: db}
}

// Upsert grava o deal chaveado pelo deal_id externo.
// Rodar o mesmo sync duas vezes com dados iguais não muda nada —
// é isso que torna webhook at-least-once e retry manual inofensivos.
func (r *DealRepository) Upsert(ctx context.Context, d *entity.Deal) error {
	query := `
		INSERT INTO deals_cache (
			id, deal_id, title, value_cents, currency, status, stage_id,
			closing_date, created_date, contact_id, organization_id,
			state, pairs_sold, salesperson, designer, utm_source, utm_medium,
			sync_status, last_synced_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, NOW())
		ON CONFLICT (deal_id) DO UPDATE SET
			title = EXCLUDED.title,
			value_cents = EXCLUDED.value_cents,
			currency = EXCLUDED.currency,
			status = EXCLUDED.status,
			stage_id = EXCLUDED.stage_id,
			closing_date = EXCLUDED.closing_date,
			created_date = EXCLUDED.created_date,
			contact_id = EXCLUDED.contact_id,
			organization_id = EXCLUDED.organization_id,
			state = EXCLUDED.state,
			pairs_sold = EXCLUDED.pairs_sold,
			salesperson = EXCLUDED.salesperson,
			designer = EXCLUDED.designer,
			utm_source = EXCLUDED.utm_source,
			utm_medium = EXCLUDED.utm_medium,
			sync_status = EXCLUDED.sync_status,
			last_synced_at = NOW()
	`

	_, err := r.DB.ExecContext(ctx, query,
		uuid.New().String(),
		d.DealID,
		d.Title,
		d.ValueCents,
		d.Currency,
		string(d.Status),
		d.StageID,
		d.ClosingDate,
		d.CreatedDate,
		d.ContactID,
		d.OrganizationID,
		d.State,
		d.PairsSold,
		d.Salesperson,
		d.Designer,
		d.UtmSource,
		d.UtmMedium,
		d.SyncStatus,
	)
	if err != nil {
		return fmt.Errorf("falha ao upsert deal %s: %w", d.DealID, err)
	}
	return nil
}

// ListFilter restringe a listagem do cache para o dashboard.
type ListFilter struct {
	Status      string
	Salesperson string
	Designer    string
	Since       string // closing_date >= YYYY-MM-DD
	Until       string // closing_date <= YYYY-MM-DD
	Limit       int
	Offset      int
}

func (r *DealRepository) List(ctx context.Context, f ListFilter) ([]entity.Deal, error) {
	query := `
		SELECT id, deal_id, title, value_cents, currency, status, stage_id,
		       closing_date, created_date, contact_id, organization_id,
		       state, pairs_sold, salesperson, designer, utm_source, utm_medium,
		       sync_status, last_synced_at
		FROM deals_cache
		WHERE ($1 = '' OR status = $1)
		  AND ($2 = '' OR salesperson = $2)
		  AND ($3 = '' OR designer = $3)
		  AND ($4 = '' OR closing_date >= NULLIF($4, '')::date)
		  AND ($5 = '' OR closing_date <= NULLIF($5, '')::date)
		ORDER BY closing_date DESC NULLS LAST
		LIMIT $6 OFFSET $7
	`

	limit := f.Limit
	if limit <= 0 || limit > 500 {
		limit = 100
	}

	rows, err := r.DB.QueryContext(ctx, query,
		f.Status, f.Salesperson, f.Designer, f.Since, f.Until, limit, f.Offset)
	if err != nil {
		return nil, fmt.Errorf("falha ao listar deals: %w", err)
	}
	defer rows.Close()

	var deals []entity.Deal
	for rows.Next() {
		var d entity.Deal
		var status string
		if err := rows.Scan(
			&d.ID, &d.DealID, &d.Title, &d.ValueCents, &d.Currency, &status, &d.StageID,
			&d.ClosingDate, &d.CreatedDate, &d.ContactID, &d.OrganizationID,
			&d.State, &d.PairsSold, &d.Salesperson, &d.Designer, &d.UtmSource, &d.UtmMedium,
			&d.SyncStatus, &d.LastSyncedAt,
		); err != nil {
			return nil, err
		}
		d.Status = entity.DealStatus(status)
		deals = append(deals, d)
	}
	return deals, rows.Err()
}

// Stats agrega o cache inteiro numa passada só.
func (r *DealRepository) Stats(ctx context.Context) (*entity.DealStats, error) {
	query := `
		SELECT COUNT(*),
		       COALESCE(SUM(value_cents), 0),
		       COUNT(*) FILTER (WHERE status = 'won'),
		       COALESCE(SUM(value_cents) FILTER (WHERE status = 'won'), 0),
		       COUNT(*) FILTER (WHERE status = 'lost'),
		       COUNT(*) FILTER (WHERE status = 'open')
		FROM deals_cache
	`

	var s entity.DealStats
	err := r.DB.QueryRowContext(ctx, query).Scan(
		&s.TotalDeals, &s.TotalValueCents, &s.WonDeals, &s.WonValueCents, &s.LostDeals, &s.OpenDeals)
	if err != nil {
		return nil, fmt.Errorf("falha ao agregar deals: %w", err)
	}
	return &s, nil
}
