package nuvemshop

// CreateCouponInput é o payload de POST /v1/{store_id}/coupons.
// O valor vai como string porque a API da Nuvemshop espera assim.
type CreateCouponInput struct {
	Code      string   `json:"code"`
	Type      string   `json:"type"` // "percentage"
	Value     string   `json:"value"`
	ValidFrom string   `json:"start_date"` // YYYY-MM-DD
	ValidTo   string   `json:"end_date"`
	MaxUses   int     `json:"max_uses"`
	Products  []int64 `json:"products,omitempty"`
}

type couponResponse struct {
	ID int64 `json:"id"`
}

// Order é o recorte que nos interessa de GET /v1/{store_id}/orders/{id}.
type Order struct {
	ID       int64  `json:"id"`
	StoreID  int64  `json:"store_id"`
	Status   string `json:"status"`
	Total    string `json:"total"` // decimal string
	Currency string `json:"currency"`
	Coupons  []struct {
		Code string `json:"code"`
	} `json:"coupon"`
	CreatedAt string `json:"created_at"`
}

type Product struct {
	ID        int64             `json:"id"`
	Published bool              `json:"published"`
	Brand     string            `json:"brand"`
	Name      map[string]string `json:"name"` // i18n, ex: {"pt": "..."}
}
