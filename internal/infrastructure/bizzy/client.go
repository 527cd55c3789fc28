// Package bizzy implements the CompanyDataProvider port against the Bizzy
// REST API (bearer-token authenticated, JSON).
package bizzy

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	backoff "github.com/cenkalti/backoff/v4"

	"github.com/incassopro/incasso-api/internal/application/ports"
	"github.com/incassopro/incasso-api/internal/domain"
	"github.com/incassopro/incasso-api/pkg/config"
)

// Compile-time check that Client implements the provider port.
var _ ports.CompanyDataProvider = (*Client)(nil)

// Client calls the Bizzy company-data API. Transient failures (network
// errors, 5xx) are retried with capped exponential backoff; client errors
// are not. Responses over maxBodySize are rejected.
type Client struct {
	baseURL    string
	apiKey     string
	maxRetries uint64
	httpClient *http.Client
}

const maxBodySize = 4 << 20

// NewClient builds the adapter from configuration. A missing API key makes
// every call fail with a descriptive error instead of panicking; startup
// rejects that configuration before a client is ever used.
func NewClient(cfg config.BizzyConfig) *Client {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		baseURL:    cfg.BaseURL,
		apiKey:     cfg.APIKey,
		maxRetries: uint64(cfg.MaxRetries),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Details fetches identity and address data for a 10-digit VAT local part.
func (c *Client) Details(ctx context.Context, vatDigits string) (*ports.CompanyDetails, error) {
	var resp detailsResponse
	if err := c.getJSON(ctx, fmt.Sprintf("/v1/companies/BE/%s", vatDigits), &resp); err != nil {
		return nil, err
	}
	return resp.toPort(), nil
}

// Financials fetches the per-fiscal-year statements.
func (c *Client) Financials(ctx context.Context, vatDigits string) ([]ports.FinancialStatement, error) {
	var resp financialsResponse
	if err := c.getJSON(ctx, fmt.Sprintf("/v1/companies/BE/%s/financials", vatDigits), &resp); err != nil {
		return nil, err
	}
	out := make([]ports.FinancialStatement, 0, len(resp.Data))
	for i := range resp.Data {
		out = append(out, resp.Data[i].toPort())
	}
	return out, nil
}

// getJSON performs one authenticated GET, decoding the body into out.
// 404 maps to domain.ErrNotFound, other non-2xx to domain.ErrProviderFailure;
// only 5xx and transport errors are retried.
func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	if c.apiKey == "" {
		return fmt.Errorf("bizzy: BIZZY_API_KEY not configured")
	}

	op := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
		if err != nil {
			return backoff.Permanent(fmt.Errorf("bizzy: build request: %w", err))
		}
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
		req.Header.Set("Accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return fmt.Errorf("%w: %v", domain.ErrProviderFailure, err)
		}
		defer resp.Body.Close()

		switch {
		case resp.StatusCode == http.StatusOK:
			body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
			if err != nil {
				return fmt.Errorf("%w: read body: %v", domain.ErrProviderFailure, err)
			}
			if err := json.Unmarshal(body, out); err != nil {
				return backoff.Permanent(fmt.Errorf("%w: decode response: %v", domain.ErrProviderFailure, err))
			}
			return nil
		case resp.StatusCode == http.StatusNotFound:
			return backoff.Permanent(fmt.Errorf("%w: %s", domain.ErrNotFound, path))
		case resp.StatusCode >= 500:
			return fmt.Errorf("%w: status %d", domain.ErrProviderFailure, resp.StatusCode)
		default:
			return backoff.Permanent(fmt.Errorf("%w: status %d", domain.ErrProviderFailure, resp.StatusCode))
		}
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = 200 * time.Millisecond
	bo.MaxInterval = 2 * time.Second
	return backoff.Retry(op, backoff.WithContext(backoff.WithMaxRetries(bo, c.maxRetries), ctx))
}
