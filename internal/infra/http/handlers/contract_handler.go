package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/hudlab/hudlab-ops/internal/entity"
	"github.com/hudlab/hudlab-ops/internal/infra/database"
	"github.com/hudlab/hudlab-ops/internal/infra/http/middleware"
)

type ContractHandler struct {
	Repo *database.ContractRepository
}

func NewContractHandler(repo *database.ContractRepository) *ContractHandler {
	return &ContractHandler{Repo: repo}
}

type contractInput struct {
	Brand             string     `json:"brand" validate:"required"`
	Franchise         *string    `json:"franchise"`
	CommissionPercent int        `json:"commission_percent" validate:"required,gt=0,lte=100"`
	StartsAt          time.Time  `json:"starts_at" validate:"required"`
	EndsAt            *time.Time `json:"ends_at"`
	Terms             *string    `json:"terms"`
	Active            bool       `json:"active"`
}

func (h *ContractHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	contracts, err := h.Repo.ListByBrand(r.Context(), brandScope(r))
	if err != nil {
		respondUsecaseError(w, err)
		return
	}
	if contracts == nil {
		contracts = []entity.PartnershipContract{}
	}
	respondData(w, http.StatusOK, contracts)
}

func (h *ContractHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var input contractInput
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

	contract := &entity.PartnershipContract{
		Brand:             input.Brand,
		Franchise:         input.Franchise,
		CommissionPercent: input.CommissionPercent,
		StartsAt:          input.StartsAt,
		EndsAt:            input.EndsAt,
		Terms:             input.Terms,
		Active:            input.Active,
	}
	if err := h.Repo.Create(r.Context(), contract); err != nil {
		respondUsecaseError(w, err)
		return
	}
	respondData(w, http.StatusCreated, contract)
}

func (h *ContractHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
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

	var input contractInput
	if !decodeBody(w, r, &input) {
		return
	}
	if err := validate.Struct(input); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	existing.CommissionPercent = input.CommissionPercent
	existing.StartsAt = input.StartsAt
	existing.EndsAt = input.EndsAt
	existing.Terms = input.Terms
	existing.Active = input.Active

	if err := h.Repo.Update(r.Context(), existing); err != nil {
		respondUsecaseError(w, err)
		return
	}
	respondData(w, http.StatusOK, existing)
}

func (h *ContractHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
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
