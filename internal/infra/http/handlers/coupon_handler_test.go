package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hudlab/hudlab-ops/internal/entity"
	"github.com/hudlab/hudlab-ops/internal/infra/http/middleware"
	"github.com/hudlab/hudlab-ops/internal/infra/integration/nuvemshop"
	"github.com/hudlab/hudlab-ops/internal/usecase"
)

type stubCouponRepo struct {
	created *entity.Coupon
}

func (s *stubCouponRepo) Create(ctx context.Context, c *entity.Coupon) error {
	s.created = c
	return nil
}
func (s *stubCouponRepo) HasActiveForBrand(ctx context.Context, brand string, franchise *string) (bool, error) {
	return false, nil
}
func (s *stubCouponRepo) MarkMirrorCreated(ctx context.Context, id, remoteID string) error { return nil }
func (s *stubCouponRepo) MarkMirrorError(ctx context.Context, id, errMsg string) error     { return nil }
func (s *stubCouponRepo) FindByID(ctx context.Context, id string) (*entity.Coupon, error) {
	if s.created != nil {
		return s.created, nil
	}
	return nil, entity.ErrNotFound
}

type mirrorStore struct {
	stubStore
}

func (s *mirrorStore) ListPublishedProducts(ctx context.Context) ([]nuvemshop.Product, error) {
	return []nuvemshop.Product{{ID: 1, Published: true, Brand: "Acme"}}, nil
}
func (s *mirrorStore) CreateCoupon(ctx context.Context, input nuvemshop.CreateCouponInput) (string, error) {
	return "ns-1", nil
}

func adminRequest(body string) *http.Request {
	req := httptest.NewRequest("POST", "/api/partners/coupons/generate", strings.NewReader(body))
	profile := &entity.UserProfile{ID: "admin-1", Role: entity.RoleAdmin, Approved: true}
	return req.WithContext(middleware.WithProfile(req.Context(), profile))
}

func TestCouponHandlerGenerate(t *testing.T) {
	newHandler := func(repo *stubCouponRepo) *CouponHandler {
		uc := usecase.NewGenerateCouponUseCase(repo, &mirrorStore{}, nil)
		return NewCouponHandler(uc, nil)
	}

	t.Run("acima do teto e 400 sem linha local", func(t *testing.T) {
		repo := &stubCouponRepo{}
		h := newHandler(repo)

		w := httptest.NewRecorder()
		h.HandleGenerate(w, adminRequest(`{"percentage":20,"validDays":30,"maxUses":100,"brand":"Acme"}`))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Nil(t, repo.created)
	})

	t.Run("campos obrigatorios faltando e 400", func(t *testing.T) {
		h := newHandler(&stubCouponRepo{})

		w := httptest.NewRecorder()
		h.HandleGenerate(w, adminRequest(`{"percentage":10}`))

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("partners-media fora da marca atribuida e 403", func(t *testing.T) {
		repo := &stubCouponRepo{}
		h := newHandler(repo)

		req := httptest.NewRequest("POST", "/api/partners/coupons/generate",
			strings.NewReader(`{"percentage":10,"validDays":30,"maxUses":100,"brand":"Outra"}`))
		brand := "Acme"
		profile := &entity.UserProfile{
			ID: "p-1", Role: entity.RolePartnersMedia, Approved: true, AssignedBrand: &brand,
		}
		req = req.WithContext(middleware.WithProfile(req.Context(), profile))

		w := httptest.NewRecorder()
		h.HandleGenerate(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Nil(t, repo.created)
	})

	t.Run("geracao valida e 201 com o cupom espelhado", func(t *testing.T) {
		repo := &stubCouponRepo{}
		h := newHandler(repo)

		w := httptest.NewRecorder()
		h.HandleGenerate(w, adminRequest(`{"percentage":10,"validDays":30,"maxUses":100,"brand":"Acme"}`))

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.NotNil(t, repo.created)
		assert.Equal(t, "admin-1", repo.created.CreatedBy)
		assert.Equal(t, 10, repo.created.Percentage)
	})
}
