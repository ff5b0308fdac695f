package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/hudlab/hudlab-ops/internal/entity"
	"github.com/hudlab/hudlab-ops/internal/infra/integration/nuvemshop"
)

func validCouponInput() GenerateCouponInput {
	return GenerateCouponInput{
		Percentage: 10,
		ValidDays:  30,
		MaxUses:    100,
		Brand:      "Acme Shoes",
		CreatedBy:  "user-1",
	}
}

func TestGenerateCoupon(t *testing.T) {
	t.Run("acima do teto de 15% nem cria linha local", func(t *testing.T) {
		couponRepo := new(MockCouponRepository)
		store := new(MockStoreClient)

		input := validCouponInput()
		input.Percentage = 20

		uc := NewGenerateCouponUseCase(couponRepo, store, nil)
		_, err := uc.Execute(context.Background(), input)

		assert.Error(t, err)
		assert.True(t, IsDomainError(err))
		couponRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("percentual zero ou negativo tambem e recusado", func(t *testing.T) {
		couponRepo := new(MockCouponRepository)
		store := new(MockStoreClient)
		uc := NewGenerateCouponUseCase(couponRepo, store, nil)

		for _, pct := range []int{0, -5} {
			input := validCouponInput()
			input.Percentage = pct
			_, err := uc.Execute(context.Background(), input)
			assert.Error(t, err)
		}
		couponRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("cupom ativo pra marca vira conflito", func(t *testing.T) {
		couponRepo := new(MockCouponRepository)
		store := new(MockStoreClient)

		couponRepo.On("HasActiveForBrand", mock.Anything, "Acme Shoes", (*string)(nil)).Return(true, nil)

		uc := NewGenerateCouponUseCase(couponRepo, store, nil)
		_, err := uc.Execute(context.Background(), validCouponInput())

		assert.ErrorIs(t, err, entity.ErrCouponConflict)
		couponRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("caminho feliz: cria local e espelha na nuvemshop", func(t *testing.T) {
		couponRepo := new(MockCouponRepository)
		store := new(MockStoreClient)

		couponRepo.On("HasActiveForBrand", mock.Anything, "Acme Shoes", (*string)(nil)).Return(false, nil)

		var created *entity.Coupon
		couponRepo.On("Create", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
			created = args.Get(1).(*entity.Coupon)
		}).Return(nil)

		store.On("ListPublishedProducts", mock.Anything).Return([]nuvemshop.Product{
			{ID: 11, Published: true, Brand: "acme shoes"}, // casa sem case-sensitivity
			{ID: 12, Published: true, Brand: "Outra Marca"},
		}, nil)

		var mirrored nuvemshop.CreateCouponInput
		store.On("CreateCoupon", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
			mirrored = args.Get(1).(nuvemshop.CreateCouponInput)
		}).Return("ns-777", nil)

		couponRepo.On("MarkMirrorCreated", mock.Anything, mock.Anything, "ns-777").Return(nil)

		remoteID := "ns-777"
		couponRepo.On("FindByID", mock.Anything, mock.Anything).Return(&entity.Coupon{
			NuvemshopStatus:   entity.CouponMirrorCreated,
			NuvemshopCouponID: &remoteID,
		}, nil)

		uc := NewGenerateCouponUseCase(couponRepo, store, nil)
		out, err := uc.Execute(context.Background(), validCouponInput())

		assert.NoError(t, err)
		assert.Equal(t, entity.CouponMirrorCreated, out.Coupon.NuvemshopStatus)

		// código derivado da marca: maiúsculas, só alfanumérico, sufixo curto
		assert.True(t, strings.HasPrefix(created.Code, "ACMESHOE-"), "código foi %q", created.Code)
		assert.Equal(t, 10, created.Percentage)

		// espelho escopado só aos produtos publicados da marca
		assert.Equal(t, []int64{11}, mirrored.Products)
		assert.Equal(t, "percentage", mirrored.Type)
	})

	t.Run("falha do espelho NAO desfaz a linha local", func(t *testing.T) {
		couponRepo := new(MockCouponRepository)
		store := new(MockStoreClient)

		couponRepo.On("HasActiveForBrand", mock.Anything, mock.Anything, mock.Anything).Return(false, nil)
		couponRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
		store.On("ListPublishedProducts", mock.Anything).Return(nil, errors.New("503"))
		couponRepo.On("MarkMirrorError", mock.Anything, mock.Anything, mock.Anything).Return(nil)

		errMsg := "falha ao listar produtos: 503"
		couponRepo.On("FindByID", mock.Anything, mock.Anything).Return(&entity.Coupon{
			NuvemshopStatus: entity.CouponMirrorError,
			NuvemshopError:  &errMsg,
		}, nil)

		uc := NewGenerateCouponUseCase(couponRepo, store, nil)
		out, err := uc.Execute(context.Background(), validCouponInput())

		assert.NoError(t, err) // 201 pro chamador mesmo assim
		assert.Equal(t, entity.CouponMirrorError, out.Coupon.NuvemshopStatus)
		couponRepo.AssertCalled(t, "MarkMirrorError", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("marca sem produto publicado vira erro de espelho", func(t *testing.T) {
		couponRepo := new(MockCouponRepository)
		store := new(MockStoreClient)

		couponRepo.On("HasActiveForBrand", mock.Anything, mock.Anything, mock.Anything).Return(false, nil)
		couponRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
		store.On("ListPublishedProducts", mock.Anything).Return([]nuvemshop.Product{
			{ID: 50, Brand: "Outra Marca"},
		}, nil)
		couponRepo.On("MarkMirrorError", mock.Anything, mock.Anything, mock.Anything).Return(nil)
		couponRepo.On("FindByID", mock.Anything, mock.Anything).Return(&entity.Coupon{
			NuvemshopStatus: entity.CouponMirrorError,
		}, nil)

		uc := NewGenerateCouponUseCase(couponRepo, store, nil)
		out, err := uc.Execute(context.Background(), validCouponInput())

		assert.NoError(t, err)
		assert.Equal(t, entity.CouponMirrorError, out.Coupon.NuvemshopStatus)
		store.AssertNotCalled(t, "CreateCoupon", mock.Anything, mock.Anything)
	})
}

func TestBuildCouponCode(t *testing.T) {
	code := buildCouponCode("Acme Shoes & Cia")
	parts := strings.Split(code, "-")
	assert.Len(t, parts, 2)
	assert.Equal(t, "ACMESHOE", parts[0]) // 8 chars, só alfanumérico
	assert.Len(t, parts[1], 4)

	// marca sem nenhum caractere aproveitável cai no fallback
	assert.True(t, strings.HasPrefix(buildCouponCode("!!!"), "HUDLAB-"))
}
