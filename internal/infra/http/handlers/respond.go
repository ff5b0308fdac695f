package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/hudlab/hudlab-ops/internal/entity"
	"github.com/hudlab/hudlab-ops/internal/usecase"
)

// Envelope padrão da API: { "data": ... } ou { "error": "..." }.

func respondData(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]interface{}{"data": data})
}

func respondError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

// respondUsecaseError traduz a taxonomia de erros pra HTTP num lugar só.
func respondUsecaseError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, entity.ErrNotFound):
		respondError(w, http.StatusNotFound, "Not Found")
	case errors.Is(err, entity.ErrSyncAlreadyRunning),
		errors.Is(err, entity.ErrCouponConflict):
		respondError(w, http.StatusConflict, err.Error())
	case errors.Is(err, entity.ErrRetryExhausted),
		errors.Is(err, entity.ErrRetryNotEligible):
		respondError(w, http.StatusBadRequest, err.Error())
	case usecase.IsDomainError(err):
		respondError(w, http.StatusBadRequest, err.Error())
	default:
		respondError(w, http.StatusInternalServerError, err.Error())
	}
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		respondError(w, http.StatusBadRequest, "JSON inválido")
		return false
	}
	return true
}
