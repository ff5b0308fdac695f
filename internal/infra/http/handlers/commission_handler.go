package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hudlab/hudlab-ops/internal/entity"
	"github.com/hudlab/hudlab-ops/internal/infra/database"
	"github.com/hudlab/hudlab-ops/internal/infra/http/middleware"
)

type CommissionHandler struct {
	Repo *database.CommissionRepository
}

func NewCommissionHandler(repo *database.CommissionRepository) *CommissionHandler {
	return &CommissionHandler{Repo: repo}
}

type commissionInput struct {
	Brand          string  `json:"brand" validate:"required"`
	Franchise      *string `json:"franchise"`
	AmountCents    int64   `json:"amount_cents" validate:"required,gt=0"`
	ReferenceMonth string  `json:"reference_month" validate:"required,len=7"` // YYYY-MM
	Status         string  `json:"status" validate:"required,oneof=pending paid cancelled"`
	Notes          *string `json:"notes"`
}

func (h *CommissionHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	payments, err := h.Repo.ListByBrand(r.Context(), brandScope(r))
	if err != nil {
		respondUsecaseError(w, err)
		return
	}
	if payments == nil {
		payments = []entity.CommissionPayment{}
	}
	respondData(w, http.StatusOK, payments)
}

func (h *CommissionHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var input commissionInput
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

	payment := &entity.CommissionPayment{
		Brand:          input.Brand,
		Franchise:      input.Franchise,
		AmountCents:    input.AmountCents,
		ReferenceMonth: input.ReferenceMonth,
		Status:         input.Status,
		Notes:          input.Notes,
	}
	if err := h.Repo.Create(r.Context(), payment); err != nil {
		respondUsecaseError(w, err)
		return
	}
	respondData(w, http.StatusCreated, payment)
}

func (h *CommissionHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
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

	var input commissionInput
	if !decodeBody(w, r, &input) {
		return
	}
	if err := validate.Struct(input); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	existing.AmountCents = input.AmountCents
	existing.ReferenceMonth = input.ReferenceMonth
	existing.Status = input.Status
	existing.Notes = input.Notes

	if err := h.Repo.Update(r.Context(), existing); err != nil {
		respondUsecaseError(w, err)
		return
	}
	respondData(w, http.StatusOK, existing)
}

func (h *CommissionHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
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
