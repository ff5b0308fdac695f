package usecase

import (
	"github.com/hudlab/hudlab-ops/internal/entity"
	"github.com/hudlab/hudlab-ops/internal/infra/integration/activecampaign"
)

// TransformDeal converte um deal cru do CRM + seus campos customizados
// na linha do cache. Toda normalização (data, centavos, status) acontece
// aqui e só aqui — sync agendado e webhook passam pelo mesmo funil.
func TransformDeal(d *activecampaign.Deal, fields map[string]string) *entity.Deal {
	return &entity.Deal{
		DealID:         d.ID,
		Title:          d.Title,
		ValueCents:     ParseMoneyCents(d.Value),
		Currency:       d.Currency,
		Status:         entity.NormalizeDealStatus(d.Status),
		StageID:        d.Stage,
		ClosingDate:    NormalizeDate(fields[activecampaign.FieldClosingDate]),
		CreatedDate:    NormalizeDate(d.CreatedDate),
		ContactID:      d.Contact,
		OrganizationID: d.Organization,
		State:          StrOrNil(fields[activecampaign.FieldState]),
		PairsSold:      ParseIntOrNil(fields[activecampaign.FieldPairsSold]),
		Salesperson:    StrOrNil(fields[activecampaign.FieldSalesperson]),
		Designer:       StrOrNil(fields[activecampaign.FieldDesigner]),
		UtmSource:      StrOrNil(fields[activecampaign.FieldUtmSource]),
		UtmMedium:      StrOrNil(fields[activecampaign.FieldUtmMedium]),
		SyncStatus:     "synced",
	}
}

// GroupCustomFields indexa o retorno em lote do dealCustomFieldData
/// por deal e por campo: fields[dealID][fieldID] = valor.
func GroupCustomFields(data []activecampaign.CustomFieldDatum) map[string]map[string]string {
	grouped := make(map[string]map[string]string)
	for _, d := range data {
		if grouped[d.DealID] == nil {
			grouped[d.DealID] = make(map[string]string)
		}
		grouped[d.DealID][d.FieldID] = d.Value
	}
	return grouped
}
