package entity

import "time"

// Registros financeiros de parceria, todos escopados por marca
// (e opcionalmente franquia). CRUD simples com visibilidade por papel.

type CommissionPayment struct {
	ID             string     `json:"id"`
	Brand          string     `json:"brand"`
	Franchise      *string    `json:"franchise"`
	AmountCents    int64      `json:"amount_cents"`
	ReferenceMonth string     `json:"reference_month"` // YYYY-MM
	Status         string     `json:"status"`
	PaidAt         *time.Time `json:"paid_at"`
	Notes          *string    `json:"notes"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

type PixKey struct {
	ID         string    `json:"id"`
	Brand      string    `json:"brand"`
	Franchise  *string   `json:"franchise"`
	KeyType    string    `json:"key_type"` // cpf, cnpj, email, phone, random
	KeyValue   string    `json:"key_value"`
	HolderName string    `json:"holder_name"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type PartnershipContract struct {
	ID                string     `json:"id"`
	Brand             string     `json:"brand"`
	Franchise         *string    `json:"franchise"`
	CommissionPercent int        `json:"commission_percent"`
	StartsAt          time.Time  `json:"starts_at"`
	EndsAt            *time.Time `json:"ends_at"`
	Terms             *string    `json:"terms"`
	Active            bool       `json:"active"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

type AffiliateLink struct {
	ID        string    `json:"id"`
	Brand     string    `json:"brand"`
	URL       string    `json:"url"`
	UtmSource string    `json:"utm_source"`
	UtmMedium string    `json:"utm_medium"`
	CreatedBy string    `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
}
