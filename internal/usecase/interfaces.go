package usecase

import (
	"context"

	"github.com/hudlab/hudlab-ops/internal/entity"
	"github.com/hudlab/hudlab-ops/internal/infra/integration/activecampaign"
	"github.com/hudlab/hudlab-ops/internal/infra/integration/nuvemshop"
	"github.com/hudlab/hudlab-ops/internal/infra/queue"
)

type DealRepositoryInterface interface {
	Upsert(ctx context.Context, d *entity.Deal) error
}

type SyncLogRepositoryInterface interface {
	StartRun(ctx context.Context, triggeredBy string) (*entity.SyncLog, error)
	Complete(ctx context.Context, id string, processed int) error
	Fail(ctx context.Context, id string, processed int, errMsg string) error
}

type WebhookLogRepositoryInterface interface {
	Create(ctx context.Context, event, resourceID, payload string) (*entity.WebhookLog, error)
	MarkProcessed(ctx context.Context, id string, durationMs int64) error
	MarkFailed(ctx context.Context, id string, errMsg string, durationMs int64) error
	ClaimForRetry(ctx context.Context, id string) (*entity.WebhookLog, error)
	ListFailed(ctx context.Context, event, resourceID string, limit int) ([]entity.WebhookLog, error)
}

type OrderRepositoryInterface interface {
	Upsert(ctx context.Context, o *entity.OrderCache) error
}

type CouponRepositoryInterface interface {
	Create(ctx context.Context, c *entity.Coupon) error
	HasActiveForBrand(ctx context.Context, brand string, franchise *string) (bool, error)
	MarkMirrorCreated(ctx context.Context, id, remoteID string) error
	MarkMirrorError(ctx context.Context, id, errMsg string) error
	FindByID(ctx context.Context, id string) (*entity.Coupon, error)
}

// CRMClient é o recorte do client do ActiveCampaign que os usecases usam.
type CRMClient interface {
	ListDeals(ctx context.Context, limit, offset int) ([]activecampaign.Deal, int, error)
	GetDeal(ctx context.Context, dealID string) (*activecampaign.Deal, error)
	ListDealCustomFieldData(ctx context.Context, dealIDs []string) ([]activecampaign.CustomFieldDatum, error)
}

// StoreClient é o recorte do client da Nuvemshop.
type StoreClient interface {
	CreateCoupon(ctx context.Context, input nuvemshop.CreateCouponInput) (string, error)
	GetOrder(ctx context.Context, orderID string) (*nuvemshop.Order, error)
	GetProduct(ctx context.Context, productID string) (*nuvemshop.Product, error)
	ListPublishedProducts(ctx context.Context) ([]nuvemshop.Product, error)
}

type NotificationPublisherInterface interface {
	PublishNotification(ctx context.Context, event queue.NotificationEvent) error
}
