package usecase

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/hudlab/hudlab-ops/internal/entity"
)

// Pausa entre itens do retry em lote, pra não estourar o rate limit
// da Nuvemshop reprocessando dezenas de entregas de uma vez.
const retryBatchDelay = 500 * time.Millisecond

// Retry reprocessa UMA entrega que falhou. A transição
// failed→processing (com incremento do retry_count e checagem do cap)
// é um único UPDATE condicional no repositório: duas retentativas
// simultâneas da mesma linha, só uma reivindica.
func (uc *StoreWebhookUseCase) Retry(ctx context.Context, logID string) (*entity.WebhookLog, error) {
	wlog, err := uc.LogRepo.ClaimForRetry(ctx, logID)
	if err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{
		"log_id":      wlog.ID,
		"event":       wlog.Event,
		"retry_count": wlog.RetryCount,
	}).Info("🔁 Reprocessando webhook")

	started := time.Now()
	if perr := uc.processResource(ctx, wlog.Event, wlog.ResourceID); perr != nil {
		duration := time.Since(started).Milliseconds()
		if merr := uc.LogRepo.MarkFailed(ctx, wlog.ID, perr.Error(), duration); merr != nil {
			log.WithError(merr).Error("não consegui devolver webhook pra failed")
		}
		return wlog, perr
	}

	duration := time.Since(started).Milliseconds()
	if err := uc.LogRepo.MarkProcessed(ctx, wlog.ID, duration); err != nil {
		log.WithError(err).Error("não consegui marcar retry como processed")
	}
	return wlog, nil
}

// RetryBatch seleciona até N entregas failed (com filtros opcionais)
// e reprocessa sequencialmente com pausa fixa entre itens, agregando
// o resultado por item.
func (uc *StoreWebhookUseCase) RetryBatch(ctx context.Context, input RetryBatchInput) (*RetryBatchOutput, error) {
	candidates, err := uc.LogRepo.ListFailed(ctx, input.Event, input.ResourceID, input.Limit)
	if err != nil {
		return nil, &TechnicalError{Code: "RETRY_LIST_ERROR", Message: err.Error()}
	}

	out := &RetryBatchOutput{Items: make([]RetryBatchItem, 0, len(candidates))}
	for i, candidate := range candidates {
		if i > 0 {
			select {
			case <-ctx.Done():
				return out, ctx.Err()
			case <-time.After(retryBatchDelay):
			}
		}

		out.Attempted++
		item := RetryBatchItem{LogID: candidate.ID}

		if _, rerr := uc.Retry(ctx, candidate.ID); rerr != nil {
			item.Error = rerr.Error()
			out.Failed++
		} else {
			item.OK = true
			out.Succeeded++
		}
		out.Items = append(out.Items, item)
	}

	return out, nil
}
