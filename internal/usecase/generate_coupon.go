package usecase

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/hudlab/hudlab-ops/internal/entity"
	"github.com/hudlab/hudlab-ops/internal/infra/integration/nuvemshop"
	"github.com/hudlab/hudlab-ops/internal/infra/queue"
)

type GenerateCouponUseCase struct {
	CouponRepo CouponRepositoryInterface
	Store      StoreClient
	Producer   NotificationPublisherInterface
}

func NewGenerateCouponUseCase(
	couponRepo CouponRepositoryInterface,
	store StoreClient,
	producer NotificationPublisherInterface,
) *GenerateCouponUseCase {
	return &GenerateCouponUseCase{CouponRepo: couponRepo, Store: store, Producer: producer}
}

// Execute gera o cupom local e espelha na Nuvemshop.
// O espelho é eventualmente consistente: falha remota NÃO desfaz a
// linha local — ela fica com nuvemshop_status=error e o operador
// resolve pelo painel.
func (uc *GenerateCouponUseCase) Execute(ctx context.Context, input GenerateCouponInput) (*GenerateCouponOutput, error) {
	// Teto de desconto: acima disso nem linha local é criada.
	if input.Percentage <= 0 || input.Percentage > entity.CouponMaxPercentage {
		return nil, &DomainError{
			Code:    "COUPON_PERCENTAGE",
			Message: fmt.Sprintf("percentual deve estar entre 1 e %d", entity.CouponMaxPercentage),
		}
	}

	// Um cupom ativo por marca (por marca+franquia quando tem franquia).
	exists, err := uc.CouponRepo.HasActiveForBrand(ctx, input.Brand, input.Franchise)
	if err != nil {
		return nil, &TechnicalError{Code: "COUPON_LOOKUP_ERROR", Message: err.Error()}
	}
	if exists {
		return nil, entity.ErrCouponConflict
	}

	now := time.Now()
	coupon := &entity.Coupon{
		ID:              uuid.New().String(),
		Code:            buildCouponCode(input.Brand),
		Percentage:      input.Percentage,
		Brand:           input.Brand,
		Franchise:       input.Franchise,
		ValidFrom:       now,
		ValidUntil:      now.AddDate(0, 0, input.ValidDays),
		MaxUses:         input.MaxUses,
		Active:          true,
		NuvemshopStatus: entity.CouponMirrorPending,
		CreatedBy:       input.CreatedBy,
	}

	if err := uc.CouponRepo.Create(ctx, coupon); err != nil {
		return nil, err
	}

	uc.mirrorToStore(ctx, coupon)

	if uc.Producer != nil {
		event := queue.NotificationEvent{
			Type:       queue.EventCouponCreated,
			Title:      "Novo cupom gerado",
			Body:       fmt.Sprintf("Cupom %s (%d%%) criado para %s", coupon.Code, coupon.Percentage, coupon.Brand),
			TargetRole: entity.RoleAdmin,
		}
		if err := uc.Producer.PublishNotification(ctx, event); err != nil {
			log.WithError(err).Warn("falha ao publicar notificação de cupom")
		}
	}

	// Relê pra devolver o estado do espelho já atualizado.
	fresh, err := uc.CouponRepo.FindByID(ctx, coupon.ID)
	if err != nil {
		return &GenerateCouponOutput{Coupon: coupon}, nil
	}
	return &GenerateCouponOutput{Coupon: fresh}, nil
}

// mirrorToStore cria o cupom remoto escopado aos produtos publicados
// da marca. Nunca retorna erro: o resultado vai pras colunas
// nuvemshop_* da linha local.
func (uc *GenerateCouponUseCase) mirrorToStore(ctx context.Context, coupon *entity.Coupon) {
	products, err := uc.Store.ListPublishedProducts(ctx)
	if err != nil {
		uc.markMirrorError(ctx, coupon.ID, "falha ao listar produtos: "+err.Error())
		return
	}

	var productIDs []int64
	for _, p := range products {
		if strings.EqualFold(p.Brand, coupon.Brand) {
			productIDs = append(productIDs, p.ID)
		}
	}
	if len(productIDs) == 0 {
		uc.markMirrorError(ctx, coupon.ID, "nenhum produto publicado para a marca "+coupon.Brand)
		return
	}

	remoteID, err := uc.Store.CreateCoupon(ctx, nuvemshop.CreateCouponInput{
		Code:      coupon.Code,
		Type:      "percentage",
		Value:     strconv.Itoa(coupon.Percentage),
		ValidFrom: coupon.ValidFrom.Format("2006-01-02"),
		ValidTo:   coupon.ValidUntil.Format("2006-01-02"),
		MaxUses:   coupon.MaxUses,
		Products:  productIDs,
	})
	if err != nil {
		uc.markMirrorError(ctx, coupon.ID, err.Error())
		return
	}

	if err := uc.CouponRepo.MarkMirrorCreated(ctx, coupon.ID, remoteID); err != nil {
		log.WithError(err).Error("cupom criado na nuvemshop mas falhou o espelho local")
	}
}

func (uc *GenerateCouponUseCase) markMirrorError(ctx context.Context, id, msg string) {
	log.WithField("coupon_id", id).Warn("espelho nuvemshop falhou: " + msg)
	if err := uc.CouponRepo.MarkMirrorError(ctx, id, msg); err != nil {
		log.WithError(err).Error("não consegui gravar o erro do espelho")
	}
}

// buildCouponCode deriva o código da marca: maiúsculas, só
// alfanumérico, sufixo aleatório curto pra evitar colisão.
// Ex: "Acme Shoes" → "ACMESHOE-3F7A".
func buildCouponCode(brand string) string {
	var b strings.Builder
	for _, r := range strings.ToUpper(brand) {
		if (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	base := b.String()
	if len(base) > 8 {
		base = base[:8]
	}
	if base == "" {
		base = "HUDLAB"
	}

	suffix := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", "")[:4])
	return base + "-" + suffix
}
