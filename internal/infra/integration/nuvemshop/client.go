package nuvemshop

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

type Client struct {
	baseURL string
	storeID string
	token   string
	http    *http.Client
}

func NewClient(baseURL, storeID, token string) *Client {
	return &Client{
		baseURL: baseURL,
		storeID: storeID,
		token:   token,
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("nuvemshop respondeu %d: %s", e.StatusCode, e.Body)
}

// CreateCoupon cria o cupom remoto e devolve o id da Nuvemshop.
func (c *Client) CreateCoupon(ctx context.Context, input CreateCouponInput) (string, error) {
	jsonBody, err := json.Marshal(input)
	if err != nil {
		return "", fmt.Errorf("erro ao marshal coupon: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		fmt.Sprintf("%s/v1/%s/coupons", c.baseURL, c.storeID), bytes.NewBuffer(jsonBody))
	if err != nil {
		return "", err
	}
	c.setHeaders(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("erro na conexão com nuvemshop: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", &APIError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	var out couponResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("erro ao decodificar resposta da nuvemshop: %w", err)
	}
	return strconv.FormatInt(out.ID, 10), nil
}

func (c *Client) GetOrder(ctx context.Context, orderID string) (*Order, error) {
	var out Order
	if err := c.get(ctx, "/orders/"+url.PathEscape(orderID), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetProduct(ctx context.Context, productID string) (*Product, error) {
	var out Product
	if err := c.get(ctx, "/products/"+url.PathEscape(productID), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListPublishedProducts pagina /products filtrando publicados.
// Usado pra escopar cupom aos produtos da marca.
func (c *Client) ListPublishedProducts(ctx context.Context) ([]Product, error) {
	var all []Product
	page := 1
	for {
		var batch []Product
		path := fmt.Sprintf("/products?published=true&per_page=200&page=%d", page)
		if err := c.get(ctx, path, &batch); err != nil {
			// Nuvemshop devolve 404 quando a página passa do fim
			var apiErr *APIError
			if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound {
				break
			}
			return nil, err
		}
		all = append(all, batch...)
		if len(batch) < 200 {
			break
		}
		page++
	}
	return all, nil
}

func (c *Client) get(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		fmt.Sprintf("%s/v1/%s%s", c.baseURL, c.storeID, path), nil)
	if err != nil {
		return err
	}
	c.setHeaders(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("erro na conexão com nuvemshop: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &APIError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("erro ao decodificar resposta da nuvemshop: %w", err)
	}
	return nil
}

// setHeaders centraliza os headers obrigatórios da Nuvemshop.
func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Authentication", "bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "HudLabOps/1.0")
}
