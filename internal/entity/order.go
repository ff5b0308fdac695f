package entity

import "time"

// OrderCache espelha pedidos da Nuvemshop localmente
// (tabela nuvemshop_orders_cache). Alimentada só pelo processador
// de webhooks; chave de upsert é o OrderID remoto, então entrega
// at-least-once e retry manual são inofensivos.
type OrderCache struct {
	ID          string    `json:"id"`
	OrderID     string    `json:"order_id"`
	StoreID     string    `json:"store_id"`
	Status      string    `json:"status"`
	TotalCents  int64     `json:"total_cents"`
	Currency    string    `json:"currency"`
	CouponCodes []string  `json:"coupon_codes"`
	PlacedAt    *string   `json:"placed_at"` // YYYY-MM-DD
	SyncedAt    time.Time `json:"synced_at"`
}
