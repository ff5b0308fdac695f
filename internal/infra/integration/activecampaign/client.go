package activecampaign

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	log "github.com/sirupsen/logrus"
)

// PageSize é o limite por página aceito pelo AC sem degradar.
const PageSize = 100

type Client struct {
	baseURL  string
	apiToken string
	http     *http.Client
}

func NewClient(baseURL, apiToken string) *Client {
	return &Client{
		baseURL:  baseURL,
		apiToken: apiToken,
		http:     &http.Client{Timeout: 30 * time.Second},
	}
}

// APIError carrega status e corpo da resposta do AC para o operador
// conseguir diagnosticar falha de terceiro sem ir no painel deles.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("activecampaign respondeu %d: %s", e.StatusCode, e.Body)
}

// ListDeals pagina /api/3/deals. Retorna a página e o total reportado
// pelo meta, para o chamador saber quantas páginas faltam.
func (c *Client) ListDeals(ctx context.Context, limit, offset int) ([]Deal, int, error) {
	q := url.Values{}
	q.Set("limit", strconv.Itoa(limit))
	q.Set("offset", strconv.Itoa(offset))
	q.Set("orders[cdate]", "DESC")

	var out listDealsResponse
	if err := c.get(ctx, "/api/3/deals?"+q.Encode(), &out); err != nil {
		return nil, 0, err
	}

	total, err := strconv.Atoi(out.Meta.Total)
	if err != nil {
		// meta.total às vezes vem vazio em contas antigas; segue só com a página
		total = len(out.Deals)
	}
	return out.Deals, total, nil
}

func (c *Client) GetDeal(ctx context.Context, dealID string) (*Deal, error) {
	var out getDealResponse
	if err := c.get(ctx, "/api/3/deals/"+url.PathEscape(dealID), &out); err != nil {
		return nil, err
	}
	return &out.Deal, nil
}

// ListDealCustomFieldData busca em lote os campos customizados dos deals
// informados (uma chamada por página de deals, não uma por deal).
func (c *Client) ListDealCustomFieldData(ctx context.Context, dealIDs []string) ([]CustomFieldDatum, error) {
	q := url.Values{}
	for _, id := range dealIDs {
		q.Add("filters[dealId][]", id)
	}
	q.Set("limit", strconv.Itoa(len(dealIDs)*8))

	var out listCustomFieldDataResponse
	if err := c.get(ctx, "/api/3/dealCustomFieldData?"+q.Encode(), &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

func (c *Client) ListDealStages(ctx context.Context) ([]DealStage, error) {
	var out listStagesResponse
	if err := c.get(ctx, "/api/3/dealStages?limit=100", &out); err != nil {
		return nil, err
	}
	return out.Stages, nil
}

func (c *Client) get(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Api-Token", c.apiToken)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("erro na conexão com activecampaign: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		log.WithFields(log.Fields{"status": resp.StatusCode, "path": path}).
			Warn("activecampaign rejeitou a chamada")
		return &APIError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("erro ao decodificar resposta do activecampaign: %w", err)
	}
	return nil
}
