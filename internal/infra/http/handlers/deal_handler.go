package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/hudlab/hudlab-ops/internal/entity"
	"github.com/hudlab/hudlab-ops/internal/infra/cache"
	"github.com/hudlab/hudlab-ops/internal/infra/database"
	"github.com/hudlab/hudlab-ops/internal/infra/integration/activecampaign"
)

// StageLister é o recorte do client do CRM que a tela de stages usa.
type StageLister interface {
	ListDealStages(ctx context.Context) ([]activecampaign.DealStage, error)
}

type DealHandler struct {
	DealRepo *database.DealRepository
	Stages   StageLister
	Cache    *cache.Store
}

func NewDealHandler(dealRepo *database.DealRepository, stages StageLister, store *cache.Store) *DealHandler {
	return &DealHandler{DealRepo: dealRepo, Stages: stages, Cache: store}
}

func (h *DealHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit, _ := strconv.Atoi(q.Get("limit"))
	offset, _ := strconv.Atoi(q.Get("offset"))

	deals, err := h.DealRepo.List(r.Context(), database.ListFilter{
		Status:      q.Get("status"),
		Salesperson: q.Get("salesperson"),
		Designer:    q.Get("designer"),
		Since:       q.Get("since"),
		Until:       q.Get("until"),
		Limit:       limit,
		Offset:      offset,
	})
	if err != nil {
		respondUsecaseError(w, err)
		return
	}
	if deals == nil {
		deals = []entity.Deal{}
	}
	respondData(w, http.StatusOK, deals)
}

// HandleStats serve os agregados do dashboard pelo cache SWR:
// widget recarregando a cada troca de aba não vira query no Postgres.
func (h *DealHandler) HandleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Cache.GetOrLoad(r.Context(), "deals:stats", cache.TTLShort, func(ctx context.Context) (interface{}, error) {
		return h.DealRepo.Stats(ctx)
	})
	if err != nil {
		respondUsecaseError(w, err)
		return
	}
	respondData(w, http.StatusOK, stats)
}

// HandleStages lista os estágios do pipeline direto do CRM, com TTL
// longo — pipeline muda raramente e a chamada é cara. O DTO do AC
// (order como string) vira entity.DealStage antes de cachear.
func (h *DealHandler) HandleStages(w http.ResponseWriter, r *http.Request) {
	stages, err := h.Cache.GetOrLoad(r.Context(), "deals:stages", cache.TTLLong, func(ctx context.Context) (interface{}, error) {
		raw, err := h.Stages.ListDealStages(ctx)
		if err != nil {
			return nil, err
		}
		stages := make([]entity.DealStage, 0, len(raw))
		for _, s := range raw {
			order, _ := strconv.Atoi(s.Order)
			stages = append(stages, entity.DealStage{ID: s.ID, Title: s.Title, Order: order})
		}
		return stages, nil
	})
	if err != nil {
		respondUsecaseError(w, err)
		return
	}
	respondData(w, http.StatusOK, stages)
}
