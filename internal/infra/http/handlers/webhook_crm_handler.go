package handlers

import (
	"crypto/subtle"
	"net/http"

	"github.com/hudlab/hudlab-ops/internal/infra/http/middleware"
	"github.com/hudlab/hudlab-ops/internal/usecase"
)

// CRMWebhookHandler recebe o push do ActiveCampaign quando um deal muda.
// Não tem retry automático nesse caminho: o sync agendado é o fallback.
type CRMWebhookHandler struct {
	UC     *usecase.ProcessCRMWebhookUseCase
	Secret string // vazio = validação desligada
}

func NewCRMWebhookHandler(uc *usecase.ProcessCRMWebhookUseCase, secret string) *CRMWebhookHandler {
	return &CRMWebhookHandler{UC: uc, Secret: secret}
}

func (h *CRMWebhookHandler) Handle(w http.ResponseWriter, r *http.Request) {
	// O AC não assina o corpo; o acordo é um segredo na query string.
	if h.Secret != "" {
		got := r.URL.Query().Get("secret")
		if subtle.ConstantTimeCompare([]byte(got), []byte(h.Secret)) != 1 {
			middleware.RecordWebhook("activecampaign", "forbidden")
			respondError(w, http.StatusForbidden, "Forbidden")
			return
		}
	}

	var payload struct {
		DealID string `json:"deal_id"`
		Deal   struct {
			ID string `json:"id"`
		} `json:"deal"`
	}
	if !decodeBody(w, r, &payload) {
		return
	}

	dealID := payload.DealID
	if dealID == "" {
		dealID = payload.Deal.ID
	}
	if dealID == "" {
		respondError(w, http.StatusBadRequest, "deal_id ausente no payload")
		return
	}

	elapsed, err := h.UC.Execute(r.Context(), dealID)
	if err != nil {
		middleware.RecordWebhook("activecampaign", "failed")
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	middleware.RecordWebhook("activecampaign", "processed")
	respondData(w, http.StatusOK, map[string]interface{}{
		"deal_id":    dealID,
		"elapsed_ms": elapsed.Milliseconds(),
	})
}
