package handlers

import (
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/hudlab/hudlab-ops/internal/entity"
	"github.com/hudlab/hudlab-ops/internal/infra/database"
	"github.com/hudlab/hudlab-ops/internal/infra/http/middleware"
	"github.com/hudlab/hudlab-ops/internal/usecase"
)

var validate = validator.New()

type CouponHandler struct {
	UC         *usecase.GenerateCouponUseCase
	CouponRepo *database.CouponRepository
}

func NewCouponHandler(uc *usecase.GenerateCouponUseCase, couponRepo *database.CouponRepository) *CouponHandler {
	return &CouponHandler{UC: uc, CouponRepo: couponRepo}
}

// HandleGenerate cria o cupom local e espelha na Nuvemshop.
// 201 com a linha local mesmo que o espelho remoto tenha falhado
// (o estado fica nas colunas nuvemshop_*).
func (h *CouponHandler) HandleGenerate(w http.ResponseWriter, r *http.Request) {
	var input usecase.GenerateCouponInput
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
	input.CreatedBy = profile.ID

	out, err := h.UC.Execute(r.Context(), input)
	if err != nil {
		respondUsecaseError(w, err)
		return
	}

	if out.Coupon.NuvemshopStatus == entity.CouponMirrorError {
		middleware.RecordCouponMirrorError()
	}
	respondData(w, http.StatusCreated, out.Coupon)
}

func (h *CouponHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	brand := brandScope(r)

	coupons, err := h.CouponRepo.List(r.Context(), brand)
	if err != nil {
		respondUsecaseError(w, err)
		return
	}
	if coupons == nil {
		coupons = []entity.Coupon{}
	}
	respondData(w, http.StatusOK, coupons)
}

// brandScope resolve o filtro de marca respeitando o perfil:
// partners-media sempre enxerga só a marca atribuída, seja qual for
// o query param que mandou.
func brandScope(r *http.Request) string {
	profile := middleware.ProfileFromContext(r.Context())
	if profile != nil && profile.Role == entity.RolePartnersMedia {
		if profile.AssignedBrand != nil {
			return *profile.AssignedBrand
		}
		return "-" // sem marca atribuída: não enxerga nada
	}
	return r.URL.Query().Get("brand")
}
