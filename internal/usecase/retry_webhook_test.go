package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/hudlab/hudlab-ops/internal/entity"
	"github.com/hudlab/hudlab-ops/internal/infra/integration/nuvemshop"
)

func TestRetry(t *testing.T) {
	t.Run("retry com sucesso reprocessa e marca processed", func(t *testing.T) {
		store := new(MockStoreClient)
		logRepo := new(MockWebhookLogRepository)
		orderRepo := new(MockOrderRepository)

		logRepo.On("ClaimForRetry", mock.Anything, "wh-1").Return(
			&entity.WebhookLog{ID: "wh-1", Event: "order/paid", ResourceID: "900", RetryCount: 1}, nil)
		store.On("GetOrder", mock.Anything, "900").Return(
			&nuvemshop.Order{ID: 900, Total: "150.00", Currency: "BRL"}, nil)
		orderRepo.On("Upsert", mock.Anything, mock.Anything).Return(nil)
		logRepo.On("MarkProcessed", mock.Anything, "wh-1", mock.Anything).Return(nil)

		uc := NewStoreWebhookUseCase(store, logRepo, orderRepo)
		wlog, err := uc.Retry(context.Background(), "wh-1")

		assert.NoError(t, err)
		assert.Equal(t, 1, wlog.RetryCount)
		logRepo.AssertCalled(t, "MarkProcessed", mock.Anything, "wh-1", mock.Anything)
	})

	t.Run("cap de tentativas esgotado: claim recusa e nada e reprocessado", func(t *testing.T) {
		store := new(MockStoreClient)
		logRepo := new(MockWebhookLogRepository)
		orderRepo := new(MockOrderRepository)

		logRepo.On("ClaimForRetry", mock.Anything, "wh-2").Return(nil, entity.ErrRetryExhausted)

		uc := NewStoreWebhookUseCase(store, logRepo, orderRepo)
		wlog, err := uc.Retry(context.Background(), "wh-2")

		assert.Nil(t, wlog)
		assert.ErrorIs(t, err, entity.ErrRetryExhausted)
		store.AssertNotCalled(t, "GetOrder", mock.Anything, mock.Anything)
		logRepo.AssertNotCalled(t, "MarkFailed", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("linha que nao esta failed nao e elegivel", func(t *testing.T) {
		store := new(MockStoreClient)
		logRepo := new(MockWebhookLogRepository)
		orderRepo := new(MockOrderRepository)

		logRepo.On("ClaimForRetry", mock.Anything, "wh-3").Return(nil, entity.ErrRetryNotEligible)

		uc := NewStoreWebhookUseCase(store, logRepo, orderRepo)
		wlog, err := uc.Retry(context.Background(), "wh-3")

		assert.Nil(t, wlog)
		assert.ErrorIs(t, err, entity.ErrRetryNotEligible)
	})

	t.Run("reprocessamento falha de novo: volta pra failed", func(t *testing.T) {
		store := new(MockStoreClient)
		logRepo := new(MockWebhookLogRepository)
		orderRepo := new(MockOrderRepository)

		logRepo.On("ClaimForRetry", mock.Anything, "wh-4").Return(
			&entity.WebhookLog{ID: "wh-4", Event: "order/paid", ResourceID: "901", RetryCount: 3}, nil)
		store.On("GetOrder", mock.Anything, "901").Return(nil, errors.New("502 bad gateway"))
		logRepo.On("MarkFailed", mock.Anything, "wh-4", mock.Anything, mock.Anything).Return(nil)

		uc := NewStoreWebhookUseCase(store, logRepo, orderRepo)
		wlog, err := uc.Retry(context.Background(), "wh-4")

		assert.Error(t, err)
		assert.NotNil(t, wlog) // claim aconteceu, o chamador sabe o retry_count
		assert.Equal(t, 3, wlog.RetryCount)
		logRepo.AssertCalled(t, "MarkFailed", mock.Anything, "wh-4", mock.Anything, mock.Anything)
	})
}

func TestRetryBatch(t *testing.T) {
	t.Run("agrega sucesso e falha por item", func(t *testing.T) {
		store := new(MockStoreClient)
		logRepo := new(MockWebhookLogRepository)
		orderRepo := new(MockOrderRepository)

		logRepo.On("ListFailed", mock.Anything, "order/paid", "", 10).Return(
			[]entity.WebhookLog{
				{ID: "wh-a", Event: "order/paid", ResourceID: "1"},
				{ID: "wh-b", Event: "order/paid", ResourceID: "2"},
			}, nil)

		logRepo.On("ClaimForRetry", mock.Anything, "wh-a").Return(
			&entity.WebhookLog{ID: "wh-a", Event: "order/paid", ResourceID: "1", RetryCount: 1}, nil)
		logRepo.On("ClaimForRetry", mock.Anything, "wh-b").Return(
			&entity.WebhookLog{ID: "wh-b", Event: "order/paid", ResourceID: "2", RetryCount: 5}, nil)

		store.On("GetOrder", mock.Anything, "1").Return(
			&nuvemshop.Order{ID: 1, Total: "10.00"}, nil)
		store.On("GetOrder", mock.Anything, "2").Return(nil, errors.New("timeout"))

		orderRepo.On("Upsert", mock.Anything, mock.Anything).Return(nil)
		logRepo.On("MarkProcessed", mock.Anything, "wh-a", mock.Anything).Return(nil)
		logRepo.On("MarkFailed", mock.Anything, "wh-b", mock.Anything, mock.Anything).Return(nil)

		uc := NewStoreWebhookUseCase(store, logRepo, orderRepo)
		out, err := uc.RetryBatch(context.Background(), RetryBatchInput{Event: "order/paid", Limit: 10})

		assert.NoError(t, err)
		assert.Equal(t, 2, out.Attempted)
		assert.Equal(t, 1, out.Succeeded)
		assert.Equal(t, 1, out.Failed)
		assert.Len(t, out.Items, 2)
		assert.True(t, out.Items[0].OK)
		assert.False(t, out.Items[1].OK)
	})

	t.Run("lote vazio nao erra", func(t *testing.T) {
		store := new(MockStoreClient)
		logRepo := new(MockWebhookLogRepository)
		orderRepo := new(MockOrderRepository)

		logRepo.On("ListFailed", mock.Anything, "", "", 0).Return([]entity.WebhookLog{}, nil)

		uc := NewStoreWebhookUseCase(store, logRepo, orderRepo)
		out, err := uc.RetryBatch(context.Background(), RetryBatchInput{})

		assert.NoError(t, err)
		assert.Equal(t, 0, out.Attempted)
		assert.Empty(t, out.Items)
	})
}

func TestIngest(t *testing.T) {
	t.Run("pedido vira upsert no cache com centavos", func(t *testing.T) {
		store := new(MockStoreClient)
		logRepo := new(MockWebhookLogRepository)
		orderRepo := new(MockOrderRepository)

		logRepo.On("Create", mock.Anything, "order/paid", "55", `{"id":55}`).Return(
			&entity.WebhookLog{ID: "wh-9", Event: "order/paid", ResourceID: "55"}, nil)
		store.On("GetOrder", mock.Anything, "55").Return(&nuvemshop.Order{
			ID:       55,
			Total:    "99.90",
			Currency: "BRL",
			Coupons:  []struct{ Code string `json:"code"` }{{Code: "ACME-1234"}},
		}, nil)

		var saved *entity.OrderCache
		orderRepo.On("Upsert", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
			saved = args.Get(1).(*entity.OrderCache)
		}).Return(nil)
		logRepo.On("MarkProcessed", mock.Anything, "wh-9", mock.Anything).Return(nil)

		uc := NewStoreWebhookUseCase(store, logRepo, orderRepo)
		wlog, err := uc.Ingest(context.Background(), IngestStoreWebhookInput{
			Event: "order/paid", ResourceID: "55", Payload: `{"id":55}`,
		})

		assert.NoError(t, err)
		assert.Equal(t, "wh-9", wlog.ID)
		assert.Equal(t, int64(9990), saved.TotalCents)
		assert.Equal(t, []string{"ACME-1234"}, saved.CouponCodes)
	})

	t.Run("evento desconhecido e ignorado sem falhar", func(t *testing.T) {
		store := new(MockStoreClient)
		logRepo := new(MockWebhookLogRepository)
		orderRepo := new(MockOrderRepository)

		logRepo.On("Create", mock.Anything, "category/created", "7", mock.Anything).Return(
			&entity.WebhookLog{ID: "wh-10", Event: "category/created", ResourceID: "7"}, nil)
		logRepo.On("MarkProcessed", mock.Anything, "wh-10", mock.Anything).Return(nil)

		uc := NewStoreWebhookUseCase(store, logRepo, orderRepo)
		_, err := uc.Ingest(context.Background(), IngestStoreWebhookInput{
			Event: "category/created", ResourceID: "7",
		})

		assert.NoError(t, err)
		store.AssertNotCalled(t, "GetOrder", mock.Anything, mock.Anything)
		orderRepo.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
	})
}
