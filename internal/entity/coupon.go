package entity

import "time"

const (
	CouponMirrorPending = "pending"
	CouponMirrorCreated = "created"
	CouponMirrorError   = "error"

	// CouponMaxPercentage é o teto de desconto que um parceiro pode gerar.
	CouponMaxPercentage = 15
)

// Coupon é um cupom gerado localmente (tabela generated_coupons),
// espelhado na Nuvemshop de forma eventualmente consistente: a linha
// nasce com nuvemshop_status=pending e o espelho remoto atualiza
// nuvemshop_coupon_id/status/error depois.
type Coupon struct {
	ID         string  `json:"id"`
	Code       string  `json:"code"`
	Percentage int     `json:"percentage"`
	Brand      string  `json:"brand"`
	Franchise  *string `json:"franchise"`

	ValidFrom  time.Time `json:"valid_from"`
	ValidUntil time.Time `json:"valid_until"`
	MaxUses    int       `json:"max_uses"`
	Active     bool      `json:"active"`

	NuvemshopCouponID *string `json:"nuvemshop_coupon_id"`
	NuvemshopStatus   string  `json:"nuvemshop_status"`
	NuvemshopError    *string `json:"nuvemshop_error"`

	CreatedBy string    `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
}
