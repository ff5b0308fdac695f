package entity

import (
	"strings"
	"time"
)

// DealStatus é o conjunto fechado de desfechos de um deal.
// O CRM manda isso de forma inconsistente ("1", "won", "Won"...);
// a normalização acontece UMA vez, na ingestão. Depois disso
// ninguém mais reinterpreta string crua.
type DealStatus string

const (
	DealStatusOpen DealStatus = "open"
	DealStatusWon  DealStatus = "won"
	DealStatusLost DealStatus = "lost"
)

// NormalizeDealStatus converte a representação do ActiveCampaign
// (numérica ou textual, qualquer caixa) para o enum local.
// Valor desconhecido cai em "open" — nunca erro.
func NormalizeDealStatus(raw string) DealStatus {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "1", "won":
		return DealStatusWon
	case "2", "lost":
		return DealStatusLost
	default:
		return DealStatusOpen
	}
}

// Deal é a linha cacheada de um deal do CRM (tabela deals_cache).
// Chave de upsert: DealID (id externo do ActiveCampaign).
// Valores monetários SEMPRE em centavos (int64) — a conversão da
// string decimal do CRM acontece na ingestão e em nenhum outro lugar.
type Deal struct {
	ID     string `json:"id"`
	DealID string `json:"deal_id"`

	Title      string     `json:"title"`
	ValueCents int64      `json:"value_cents"`
	Currency   string     `json:"currency"`
	Status     DealStatus `json:"status"`
	StageID    string     `json:"stage_id"`

	// Datas normalizadas para YYYY-MM-DD; nil quando o CRM manda lixo.
	ClosingDate *string `json:"closing_date"`
	CreatedDate *string `json:"created_date"`

	ContactID      string `json:"contact_id"`
	OrganizationID string `json:"organization_id"`

	// Campos customizados do CRM, desnormalizados em colunas.
	State       *string `json:"state"`
	PairsSold   *int    `json:"pairs_sold"`
	Salesperson *string `json:"salesperson"`
	Designer    *string `json:"designer"`
	UtmSource   *string `json:"utm_source"`
	UtmMedium   *string `json:"utm_medium"`

	SyncStatus   string    `json:"sync_status"`
	LastSyncedAt time.Time `json:"last_synced_at"`
}

// DealStats agrega o cache para os widgets do dashboard.
type DealStats struct {
	TotalDeals      int   `json:"total_deals"`
	TotalValueCents int64 `json:"total_value_cents"`
	WonDeals        int   `json:"won_deals"`
	WonValueCents   int64 `json:"won_value_cents"`
	LostDeals       int   `json:"lost_deals"`
	OpenDeals       int   `json:"open_deals"`
}

// DealStage espelha um estágio do pipeline do CRM (somente leitura).
type DealStage struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Order int    `json:"order"`
}
