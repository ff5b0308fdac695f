package handlers

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"github.com/hudlab/hudlab-ops/internal/infra/database"
	"github.com/hudlab/hudlab-ops/internal/infra/http/middleware"
	"github.com/hudlab/hudlab-ops/internal/usecase"
)

// StoreWebhookHandler recebe os pushes da Nuvemshop. Toda entrega vira
// linha de log (idempotência + retry manual); a assinatura HMAC é
// verificada antes de qualquer coisa tocar o banco.
type StoreWebhookHandler struct {
	UC      *usecase.StoreWebhookUseCase
	LogRepo *database.WebhookLogRepository
	Secret  string
}

func NewStoreWebhookHandler(uc *usecase.StoreWebhookUseCase, logRepo *database.WebhookLogRepository, secret string) *StoreWebhookHandler {
	return &StoreWebhookHandler{UC: uc, LogRepo: logRepo, Secret: secret}
}

func (h *StoreWebhookHandler) Handle(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
	if err != nil {
		respondError(w, http.StatusBadRequest, "corpo ilegível")
		return
	}

	if h.Secret != "" && !h.validSignature(body, r.Header.Get("X-Linkedstore-Hmac-Sha256")) {
		middleware.RecordWebhook("nuvemshop", "forbidden")
		respondError(w, http.StatusForbidden, "Forbidden")
		return
	}

	var payload struct {
		StoreID int64  `json:"store_id"`
		Event   string `json:"event"`
		ID      int64  `json:"id"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		respondError(w, http.StatusBadRequest, "JSON inválido")
		return
	}
	if payload.Event == "" || payload.ID == 0 {
		respondError(w, http.StatusBadRequest, "event/id ausentes no payload")
		return
	}

	wlog, err := h.UC.Ingest(r.Context(), usecase.IngestStoreWebhookInput{
		Event:      payload.Event,
		ResourceID: strconv.FormatInt(payload.ID, 10),
		Payload:    string(body),
	})
	if err != nil {
		middleware.RecordWebhook("nuvemshop", "failed")
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	middleware.RecordWebhook("nuvemshop", "processed")
	respondData(w, http.StatusOK, wlog)
}

// HandleListLogs expõe o log pra tela de operação.
func (h *StoreWebhookHandler) HandleListLogs(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	logs, err := h.LogRepo.List(r.Context(), r.URL.Query().Get("status"), limit)
	if err != nil {
		respondUsecaseError(w, err)
		return
	}
	respondData(w, http.StatusOK, logs)
}

func (h *StoreWebhookHandler) validSignature(body []byte, header string) bool {
	mac := hmac.New(sha256.New, []byte(h.Secret))
	mac.Write(body)
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(header))
}
