package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hudlab/hudlab-ops/internal/entity"
	"github.com/hudlab/hudlab-ops/internal/infra/database"
	"github.com/hudlab/hudlab-ops/internal/infra/http/middleware"
)

type AffiliateHandler struct {
	Repo *database.AffiliateRepository
}

func NewAffiliateHandler(repo *database.AffiliateRepository) *AffiliateHandler {
	return &AffiliateHandler{Repo: repo}
}

type affiliateInput struct {
	Brand     string `json:"brand" validate:"required"`
	URL       string `json:"url" validate:"required,url"`
	UtmSource string `json:"utm_source" validate:"required"`
	UtmMedium string `json:"utm_medium" validate:"required"`
}

func (h *AffiliateHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	links, err := h.Repo.ListByBrand(r.Context(), brandScope(r))
	if err != nil {
		respondUsecaseError(w, err)
		return
	}
	if links == nil {
		links = []entity.AffiliateLink{}
	}
	respondData(w, http.StatusOK, links)
}

func (h *AffiliateHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var input affiliateInput
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

	link := &entity.AffiliateLink{
		Brand:     input.Brand,
		URL:       input.URL,
		UtmSource: input.UtmSource,
		UtmMedium: input.UtmMedium,
		CreatedBy: profile.ID,
	}
	if err := h.Repo.Create(r.Context(), link); err != nil {
		respondUsecaseError(w, err)
		return
	}
	respondData(w, http.StatusCreated, link)
}

func (h *AffiliateHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.Repo.Delete(r.Context(), id); err != nil {
		respondUsecaseError(w, err)
		return
	}
	respondData(w, http.StatusOK, map[string]string{"id": id, "status": "deleted"})
}
