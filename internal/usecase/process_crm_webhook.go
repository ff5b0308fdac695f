package usecase

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
)

// ProcessCRMWebhookUseCase trata o push do ActiveCampaign: busca o
// estado ATUAL do deal no CRM (o payload do webhook é só um aviso)
// e passa pelo mesmo transform/upsert do sync agendado.
type ProcessCRMWebhookUseCase struct {
	CRM      CRMClient
	DealRepo DealRepositoryInterface
}

func NewProcessCRMWebhookUseCase(crm CRMClient, dealRepo DealRepositoryInterface) *ProcessCRMWebhookUseCase {
	return &ProcessCRMWebhookUseCase{CRM: crm, DealRepo: dealRepo}
}

// Execute devolve o tempo de processamento (a resposta do endpoint
// expõe isso pro operador). Sem retry automático nesse caminho —
// o próximo sync agendado corrige qualquer perda.
func (uc *ProcessCRMWebhookUseCase) Execute(ctx context.Context, dealID string) (time.Duration, error) {
	started := time.Now()

	deal, err := uc.CRM.GetDeal(ctx, dealID)
	if err != nil {
		return 0, fmt.Errorf("falha ao buscar deal %s no CRM: %w", dealID, err)
	}

	data, err := uc.CRM.ListDealCustomFieldData(ctx, []string{dealID})
	if err != nil {
		return 0, fmt.Errorf("falha ao buscar campos do deal %s: %w", dealID, err)
	}

	row := TransformDeal(deal, GroupCustomFields(data)[dealID])
	if err := uc.DealRepo.Upsert(ctx, row); err != nil {
		return 0, err
	}

	elapsed := time.Since(started)
	log.WithFields(log.Fields{
		"deal_id": dealID,
		"status":  row.Status,
		"elapsed": elapsed.Round(time.Millisecond).String(),
	}).Info("deal atualizado via webhook")

	return elapsed, nil
}
