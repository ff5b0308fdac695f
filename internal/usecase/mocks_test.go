package usecase

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/hudlab/hudlab-ops/internal/entity"
	"github.com/hudlab/hudlab-ops/internal/infra/integration/activecampaign"
	"github.com/hudlab/hudlab-ops/internal/infra/integration/nuvemshop"
	"github.com/hudlab/hudlab-ops/internal/infra/queue"
)

// Mocks compartilhados pelos testes do pacote.

type MockCRMClient struct {
	mock.Mock
}

func (m *MockCRMClient) ListDeals(ctx context.Context, limit, offset int) ([]activecampaign.Deal, int, error) {
	args := m.Called(ctx, limit, offset)
	return args.Get(0).([]activecampaign.Deal), args.Int(1), args.Error(2)
}

func (m *MockCRMClient) GetDeal(ctx context.Context, dealID string) (*activecampaign.Deal, error) {
	args := m.Called(ctx, dealID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*activecampaign.Deal), args.Error(1)
}

func (m *MockCRMClient) ListDealCustomFieldData(ctx context.Context, dealIDs []string) ([]activecampaign.CustomFieldDatum, error) {
	args := m.Called(ctx, dealIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]activecampaign.CustomFieldDatum), args.Error(1)
}

type MockDealRepository struct {
	mock.Mock
}

func (m *MockDealRepository) Upsert(ctx context.Context, d *entity.Deal) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}

type MockSyncLogRepository struct {
	mock.Mock
}

func (m *MockSyncLogRepository) StartRun(ctx context.Context, triggeredBy string) (*entity.SyncLog, error) {
	args := m.Called(ctx, triggeredBy)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.SyncLog), args.Error(1)
}

func (m *MockSyncLogRepository) Complete(ctx context.Context, id string, processed int) error {
	args := m.Called(ctx, id, processed)
	return args.Error(0)
}

func (m *MockSyncLogRepository) Fail(ctx context.Context, id string, processed int, errMsg string) error {
	args := m.Called(ctx, id, processed, errMsg)
	return args.Error(0)
}

type MockWebhookLogRepository struct {
	mock.Mock
}

func (m *MockWebhookLogRepository) Create(ctx context.Context, event, resourceID, payload string) (*entity.WebhookLog, error) {
	args := m.Called(ctx, event, resourceID, payload)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.WebhookLog), args.Error(1)
}

func (m *MockWebhookLogRepository) MarkProcessed(ctx context.Context, id string, durationMs int64) error {
	args := m.Called(ctx, id, durationMs)
	return args.Error(0)
}

func (m *MockWebhookLogRepository) MarkFailed(ctx context.Context, id string, errMsg string, durationMs int64) error {
	args := m.Called(ctx, id, errMsg, durationMs)
	return args.Error(0)
}

func (m *MockWebhookLogRepository) ClaimForRetry(ctx context.Context, id string) (*entity.WebhookLog, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.WebhookLog), args.Error(1)
}

func (m *MockWebhookLogRepository) ListFailed(ctx context.Context, event, resourceID string, limit int) ([]entity.WebhookLog, error) {
	args := m.Called(ctx, event, resourceID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.WebhookLog), args.Error(1)
}

type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) Upsert(ctx context.Context, o *entity.OrderCache) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

type MockCouponRepository struct {
	mock.Mock
}

func (m *MockCouponRepository) Create(ctx context.Context, c *entity.Coupon) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCouponRepository) HasActiveForBrand(ctx context.Context, brand string, franchise *string) (bool, error) {
	args := m.Called(ctx, brand, franchise)
	return args.Bool(0), args.Error(1)
}

func (m *MockCouponRepository) MarkMirrorCreated(ctx context.Context, id, remoteID string) error {
	args := m.Called(ctx, id, remoteID)
	return args.Error(0)
}

func (m *MockCouponRepository) MarkMirrorError(ctx context.Context, id, errMsg string) error {
	args := m.Called(ctx, id, errMsg)
	return args.Error(0)
}

func (m *MockCouponRepository) FindByID(ctx context.Context, id string) (*entity.Coupon, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Coupon), args.Error(1)
}

type MockStoreClient struct {
	mock.Mock
}

func (m *MockStoreClient) CreateCoupon(ctx context.Context, input nuvemshop.CreateCouponInput) (string, error) {
	args := m.Called(ctx, input)
	return args.String(0), args.Error(1)
}

func (m *MockStoreClient) GetOrder(ctx context.Context, orderID string) (*nuvemshop.Order, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*nuvemshop.Order), args.Error(1)
}

func (m *MockStoreClient) GetProduct(ctx context.Context, productID string) (*nuvemshop.Product, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*nuvemshop.Product), args.Error(1)
}

func (m *MockStoreClient) ListPublishedProducts(ctx context.Context) ([]nuvemshop.Product, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]nuvemshop.Product), args.Error(1)
}

type MockProducer struct {
	mock.Mock
}

func (m *MockProducer) PublishNotification(ctx context.Context, event queue.NotificationEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}
