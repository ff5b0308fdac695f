package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/hudlab/hudlab-ops/internal/entity"
	"github.com/lib/pq"
)

type OrderRepository struct {
	DB *sql.DB
}

func NewOrderRepository(db *sql.DB) *OrderRepository {
	return &OrderRepository{DB: db}
}

// Upsert chaveado pelo order_id remoto — mesma mecânica do cache de deals.
func (r *OrderRepository) Upsert(ctx context.Context, o *entity.OrderCache) error {
	query := `
		INSERT INTO nuvemshop_orders_cache (
			id, order_id, store_id, status, total_cents, currency, coupon_codes, placed_at, synced_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW())
		ON CONFLICT (order_id) DO UPDATE SET
			status = EXCLUDED.status,
			total_cents = EXCLUDED.total_cents,
			currency = EXCLUDED.currency,
			coupon_codes = EXCLUDED.coupon_codes,
			placed_at = EXCLUDED.placed_at,
			synced_at = NOW()
	`

	_, err := r.DB.ExecContext(ctx, query,
		uuid.New().String(), o.OrderID, o.StoreID, o.Status, o.TotalCents,
		o.Currency, pq.Array(o.CouponCodes), o.PlacedAt)
	if err != nil {
		return fmt.Errorf("falha ao upsert pedido %s: %w", o.OrderID, err)
	}
	return nil
}
