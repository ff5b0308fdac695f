package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hudlab/hudlab-ops/internal/entity"
	"github.com/hudlab/hudlab-ops/internal/infra/database"
	"github.com/hudlab/hudlab-ops/internal/infra/http/middleware"
)

type PixKeyHandler struct {
	Repo *database.PixKeyRepository
}

func NewPixKeyHandler(repo *database.PixKeyRepository) *PixKeyHandler {
	return &PixKeyHandler{Repo: repo}
}

type pixKeyInput struct {
	Brand      string  `json:"brand" validate:"required"`
	Franchise  *string `json:"franchise"`
	KeyType    string  `json:"key_type" validate:"required,oneof=cpf cnpj email phone random"`
	KeyValue   string  `json:"key_value" validate:"required"`
	HolderName string  `json:"holder_name" validate:"required"`
}

func (h *PixKeyHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	keys, err := h.Repo.ListByBrand(r.Context(), brandScope(r))
	if err != nil {
		respondUsecaseError(w, err)
		return
	}
	if keys == nil {
		keys = []entity.PixKey{}
	}
	respondData(w, http.StatusOK, keys)
}

func (h *PixKeyHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var input pixKeyInput
	if !decodeBody(w, r, &input) {
		return
	}
	if err := validate.Struct(input); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	profile := middleware.ProfileFromContext(r.Context())
	if !profile.CanSeeBrand(input.Brand) {
		respondError(w, http.StatusForbidden, "Insufficient permissions")
		return
	}

	key := &entity.PixKey{
		Brand:      input.Brand,
		Franchise:  input.Franchise,
		KeyType:    input.KeyType,
		KeyValue:   input.KeyValue,
		HolderName: input.HolderName,
	}
	if err := h.Repo.Create(r.Context(), key); err != nil {
		respondUsecaseError(w, err)
		return
	}
	respondData(w, http.StatusCreated, key)
}

func (h *PixKeyHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	existing, err := h.Repo.FindByID(r.Context(), id)
	if err != nil {
		respondUsecaseError(w, err)
		return
	}
	profile := middleware.ProfileFromContext(r.Context())
	if !profile.CanSeeBrand(existing.Brand) {
		respondError(w, http.StatusForbidden, "Insufficient permissions")
		return
	}

	var input pixKeyInput
	if !decodeBody(w, r, &input) {
		return
	}
	if err := validate.Struct(input); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	existing.KeyType = input.KeyType
	existing.KeyValue = input.KeyValue
	existing.HolderName = input.HolderName

	if err := h.Repo.Update(r.Context(), existing); err != nil {
		respondUsecaseError(w, err)
		return
	}
	respondData(w, http.StatusOK, existing)
}

func (h *PixKeyHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	existing, err := h.Repo.FindByID(r.Context(), id)
	if err != nil {
		respondUsecaseError(w, err)
		return
	}
	profile := middleware.ProfileFromContext(r.Context())
	if !profile.CanSeeBrand(existing.Brand) {
		respondError(w, http.StatusForbidden, "Insufficient permissions")
		return
	}

	if err := h.Repo.Delete(r.Context(), id); err != nil {
		respondUsecaseError(w, err)
		return
	}
	respondData(w, http.StatusOK, map[string]string{"id": id, "status": "deleted"})
}
