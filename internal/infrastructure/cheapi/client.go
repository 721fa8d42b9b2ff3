// Package cheapi implements the HTTP client for the remote Che Súper
// services: the product catalog plus the comparison and optimization
// endpoints. Failures surface once as domain.ErrBackendFailure; the engine
// deliberately does not retry.
package cheapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/chesuper/engine/internal/domain"
	"golang.org/x/time/rate"
)

// Client handles communication with the Che Súper backend API
type Client struct {
	httpClient  *http.Client
	baseURL     string
	rateLimiter *rate.Limiter
	debug       bool
}

// NewClient creates a backend API client. perMinute caps the outbound
// request rate; zero or negative disables the cap.
func NewClient(baseURL string, timeout time.Duration, perMinute int) *Client {
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	limit := rate.Inf
	burst := 1
	if perMinute > 0 {
		limit = rate.Limit(float64(perMinute) / 60.0)
		burst = perMinute
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL:     baseURL,
		rateLimiter: rate.NewLimiter(limit, burst),
	}
}

// SetDebug enables request/response logging
func (c *Client) SetDebug(debug bool) {
	c.debug = debug
}

// SearchProducts fetches one filtered, paginated catalog page
func (c *Client) SearchProducts(ctx context.Context, query domain.ProductQuery) (*domain.ProductPage, error) {
	params := url.Values{}
	if query.Page > 0 {
		params.Add("page", strconv.Itoa(query.Page))
	}
	if query.Query != "" {
		params.Add("q", query.Query)
	}
	if query.Categoria != "" {
		params.Add("categoria", query.Categoria)
	}
	if query.MinSupermercados > 0 {
		params.Add("min_supermercados", strconv.Itoa(query.MinSupermercados))
	}
	if query.Limit > 0 {
		params.Add("limit", strconv.Itoa(query.Limit))
	}

	if c.debug {
		log.Printf("[CHEAPI] SearchProducts: %s", params.Encode())
	}

	var page domain.ProductPage
	if err := c.getJSON(ctx, "/api/productos", params, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// Categories fetches the category name listing
func (c *Client) Categories(ctx context.Context) ([]string, error) {
	var categories []string
	if err := c.getJSON(ctx, "/api/categorias", nil, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

// Compare posts the cart for a per-store price comparison
func (c *Client) Compare(ctx context.Context, req domain.ComparisonRequest) (*domain.ComparisonResult, error) {
	if c.debug {
		log.Printf("[CHEAPI] Compare: %d items, use_promos=%v", len(req.Items), req.UsePromos)
	}

	var result domain.ComparisonResult
	if err := c.postJSON(ctx, "/api/comparar", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Optimize posts the cart for an optimized multi-store purchase plan
func (c *Client) Optimize(ctx context.Context, req domain.ComparisonRequest) (*domain.OptimizationResult, error) {
	if c.debug {
		log.Printf("[CHEAPI] Optimize: %d items, use_promos=%v", len(req.Items), req.UsePromos)
	}

	var result domain.OptimizationResult
	if err := c.postJSON(ctx, "/api/optimizar", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// getJSON executes a rate-limited GET and decodes the JSON body into out
func (c *Client) getJSON(ctx context.Context, path string, params url.Values, out interface{}) error {
	reqURL := c.baseURL + path
	if len(params) > 0 {
		reqURL += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	return c.do(req, out)
}

// postJSON executes a rate-limited POST with a JSON body and decodes the
// JSON response into out
func (c *Client) postJSON(ctx context.Context, path string, body interface{}, out interface{}) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to encode request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out interface{}) error {
	if err := c.rateLimiter.Wait(req.Context()); err != nil {
		return fmt.Errorf("rate limiter error: %w", err)
	}

	req.Header.Set("User-Agent", "CheSuper/1.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Printf("[CHEAPI] %s %s failed: %v", req.Method, req.URL.Path, err)
		return fmt.Errorf("%w: %v", domain.ErrBackendFailure, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		log.Printf("[CHEAPI] %s %s - status %d, body: %s", req.Method, req.URL.Path, resp.StatusCode, string(body))
		return fmt.Errorf("%w: status %d", domain.ErrBackendFailure, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		log.Printf("[CHEAPI] %s %s - JSON decode error: %v", req.Method, req.URL.Path, err)
		return fmt.Errorf("%w: failed to decode response: %v", domain.ErrBackendFailure, err)
	}
	return nil
}
