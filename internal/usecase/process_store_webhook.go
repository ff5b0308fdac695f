package usecase

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/hudlab/hudlab-ops/internal/entity"
)

// StoreWebhookUseCase processa webhooks da Nuvemshop com log
// idempotente: toda entrega vira uma linha em nuvemshop_webhook_logs,
// e o reprocessamento manual (retry_webhook.go) reaproveita o mesmo
// processResource.
type StoreWebhookUseCase struct {
	Store     StoreClient
	LogRepo   WebhookLogRepositoryInterface
	OrderRepo OrderRepositoryInterface
}

func NewStoreWebhookUseCase(
	store StoreClient,
	logRepo WebhookLogRepositoryInterface,
	orderRepo OrderRepositoryInterface,
) *StoreWebhookUseCase {
	return &StoreWebhookUseCase{Store: store, LogRepo: logRepo, OrderRepo: orderRepo}
}

// Ingest registra a entrega (status processing), busca o recurso
// autoritativo na Nuvemshop e faz o upsert. O payload cru fica no log
// pra diagnóstico e pro retry.
func (uc *StoreWebhookUseCase) Ingest(ctx context.Context, input IngestStoreWebhookInput) (*entity.WebhookLog, error) {
	wlog, err := uc.LogRepo.Create(ctx, input.Event, input.ResourceID, input.Payload)
	if err != nil {
		return nil, &TechnicalError{Code: "WEBHOOK_LOG_ERROR", Message: err.Error()}
	}

	started := time.Now()
	if err := uc.processResource(ctx, input.Event, input.ResourceID); err != nil {
		duration := time.Since(started).Milliseconds()
		if merr := uc.LogRepo.MarkFailed(ctx, wlog.ID, err.Error(), duration); merr != nil {
			log.WithError(merr).Error("não consegui marcar webhook como failed")
		}
		return wlog, err
	}

	duration := time.Since(started).Milliseconds()
	if err := uc.LogRepo.MarkProcessed(ctx, wlog.ID, duration); err != nil {
		log.WithError(err).Error("não consegui marcar webhook como processed")
	}

	log.WithFields(log.Fields{
		"event":       input.Event,
		"resource_id": input.ResourceID,
		"duration_ms": duration,
	}).Info("webhook nuvemshop processado")

	return wlog, nil
}

// processResource busca o estado atual do recurso e espelha localmente.
// Upsert chaveado por id externo: reprocessar é sempre seguro.
func (uc *StoreWebhookUseCase) processResource(ctx context.Context, event, resourceID string) error {
	switch {
	case strings.HasPrefix(event, "order/"):
		order, err := uc.Store.GetOrder(ctx, resourceID)
		if err != nil {
			return fmt.Errorf("falha ao buscar pedido %s: %w", resourceID, err)
		}

		codes := make([]string, 0, len(order.Coupons))
		for _, c := range order.Coupons {
			codes = append(codes, c.Code)
		}

		return uc.OrderRepo.Upsert(ctx, &entity.OrderCache{
			OrderID:     strconv.FormatInt(order.ID, 10),
			StoreID:     strconv.FormatInt(order.StoreID, 10),
			Status:      order.Status,
			TotalCents:  ParseMoneyCents(order.Total),
			Currency:    order.Currency,
			CouponCodes: codes,
			PlacedAt:    NormalizeDate(order.CreatedAt),
		})

	case strings.HasPrefix(event, "product/"):
		// Só valida que o recurso existe; não mantemos cache de produto.
		if _, err := uc.Store.GetProduct(ctx, resourceID); err != nil {
			return fmt.Errorf("falha ao buscar produto %s: %w", resourceID, err)
		}
		return nil

	default:
		// Evento que não tratamos: marca processado e segue. Registrar
		// failed aqui só encheria a fila de retry com ruído.
		log.WithField("event", event).Debug("evento nuvemshop ignorado")
		return nil
	}
}
