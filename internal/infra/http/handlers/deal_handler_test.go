package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hudlab/hudlab-ops/internal/infra/cache"
	"github.com/hudlab/hudlab-ops/internal/infra/integration/activecampaign"
)

type stubStageLister struct {
	calls int
}

func (s *stubStageLister) ListDealStages(ctx context.Context) ([]activecampaign.DealStage, error) {
	s.calls++
	return []activecampaign.DealStage{
		{ID: "1", Title: "Proposta", Order: "2"},
		{ID: "2", Title: "Fechado", Order: "5"},
	}, nil
}

func TestDealHandlerStages(t *testing.T) {
	t.Run("converte o DTO do CRM em estagio de dominio com order numerico", func(t *testing.T) {
		h := NewDealHandler(nil, &stubStageLister{}, cache.New())

		w := httptest.NewRecorder()
		h.HandleStages(w, httptest.NewRequest("GET", "/api/deals/stages", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"title":"Proposta"`)
		assert.Contains(t, w.Body.String(), `"order":2`) // int, não a string "2" do AC
	})

	t.Run("segundo acesso dentro do TTL vem do cache", func(t *testing.T) {
		lister := &stubStageLister{}
		h := NewDealHandler(nil, lister, cache.New())

		for i := 0; i < 2; i++ {
			w := httptest.NewRecorder()
			h.HandleStages(w, httptest.NewRequest("GET", "/api/deals/stages", nil))
			assert.Equal(t, http.StatusOK, w.Code)
		}

		assert.Equal(t, 1, lister.calls)
	})
}
