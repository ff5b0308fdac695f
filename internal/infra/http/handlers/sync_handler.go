package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/hudlab/hudlab-ops/internal/entity"
	"github.com/hudlab/hudlab-ops/internal/infra/cache"
	"github.com/hudlab/hudlab-ops/internal/infra/database"
	"github.com/hudlab/hudlab-ops/internal/infra/http/middleware"
	"github.com/hudlab/hudlab-ops/internal/usecase"
)

// Syncs longos demais são abortados aqui mesmo — o trigger externo
// (cron) tem timeout de cliente parecido e não adianta seguir rodando.
const syncTimeout = 10 * time.Minute

type SyncHandler struct {
	SyncUC      *usecase.SyncDealsUseCase
	SyncLogRepo *database.SyncLogRepository
	Cache       *cache.Store
}

func NewSyncHandler(syncUC *usecase.SyncDealsUseCase, syncLogRepo *database.SyncLogRepository, store *cache.Store) *SyncHandler {
	return &SyncHandler{SyncUC: syncUC, SyncLogRepo: syncLogRepo, Cache: store}
}

// HandleTrigger roda o sync dentro do request, como o cron externo
// espera. Segundo trigger com sync em andamento leva 409.
func (h *SyncHandler) HandleTrigger(w http.ResponseWriter, r *http.Request) {
	var input usecase.SyncDealsInput
	// corpo vazio é válido: usa janela default
	if r.Body != nil && r.ContentLength != 0 {
		if !decodeBody(w, r, &input) {
			return
		}
	}
	if profile := middleware.ProfileFromContext(r.Context()); profile != nil {
		input.TriggeredBy = profile.Email
	}

	ctx, cancel := context.WithTimeout(r.Context(), syncTimeout)
	defer cancel()

	out, err := h.SyncUC.Execute(ctx, input)
	if err != nil {
		middleware.RecordSyncRun(entity.SyncStatusFailed)
		respondUsecaseError(w, err)
		return
	}

	middleware.RecordSyncRun(entity.SyncStatusCompleted)
	middleware.RecordDealsUpserted(out.Processed)
	// stats do dashboard acabaram de mudar
	h.Cache.Invalidate("deals:stats")

	respondData(w, http.StatusOK, out)
}

// HandleStatus devolve a execução mais recente pro polling da UI.
func (h *SyncHandler) HandleStatus(w http.ResponseWriter, r *http.Request) {
	latest, err := h.SyncLogRepo.Latest(r.Context())
	if errors.Is(err, entity.ErrNotFound) {
		respondData(w, http.StatusOK, nil)
		return
	}
	if err != nil {
		respondUsecaseError(w, err)
		return
	}
	respondData(w, http.StatusOK, latest)
}
