package handlers

import (
	"net/http"

	"github.com/hudlab/hudlab-ops/internal/infra/http/middleware"
	"github.com/hudlab/hudlab-ops/internal/usecase"
)

// RetryHandler expõe o reprocessamento manual de webhooks que falharam.
type RetryHandler struct {
	UC *usecase.StoreWebhookUseCase
}

func NewRetryHandler(uc *usecase.StoreWebhookUseCase) *RetryHandler {
	return &RetryHandler{UC: uc}
}

// HandleSingle reprocessa uma entrega. A 6ª tentativa (cap de 5) leva
// 400 sem mexer no retry_count — o claim atômico garante isso.
func (h *RetryHandler) HandleSingle(w http.ResponseWriter, r *http.Request) {
	var input struct {
		LogID string `json:"log_id"`
	}
	if !decodeBody(w, r, &input) {
		return
	}
	if input.LogID == "" {
		respondError(w, http.StatusBadRequest, "log_id é obrigatório")
		return
	}

	middleware.RecordWebhookRetry()

	wlog, err := h.UC.Retry(r.Context(), input.LogID)
	if err != nil && wlog == nil {
		// nem chegou a reivindicar a linha (cap, estado errado, 404)
		respondUsecaseError(w, err)
		return
	}
	if err != nil {
		// reivindicou mas o reprocessamento falhou de novo
		respondData(w, http.StatusOK, map[string]interface{}{
			"log_id":      wlog.ID,
			"ok":          false,
			"retry_count": wlog.RetryCount,
			"error":       err.Error(),
		})
		return
	}

	respondData(w, http.StatusOK, map[string]interface{}{
		"log_id":      wlog.ID,
		"ok":          true,
		"retry_count": wlog.RetryCount,
	})
}

// HandleBatch reprocessa até N entregas failed com filtros opcionais.
func (h *RetryHandler) HandleBatch(w http.ResponseWriter, r *http.Request) {
	var input usecase.RetryBatchInput
	if r.ContentLength != 0 {
		if !decodeBody(w, r, &input) {
			return
		}
	}

	out, err := h.UC.RetryBatch(r.Context(), input)
	if err != nil {
		respondUsecaseError(w, err)
		return
	}
	respondData(w, http.StatusOK, out)
}
