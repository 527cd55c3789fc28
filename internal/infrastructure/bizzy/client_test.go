package bizzy

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/incassopro/incasso-api/internal/domain"
	"github.com/incassopro/incasso-api/pkg/config"
)

const detailsBody = `{
	"identifier": {"name": "Acme BVBA", "countryCode": "BE", "value": "0473416418"},
	"data": {
		"address": {"street": "Kerkstraat", "streetNumber": "12", "box": "//", "postalCode": "9000", "locality": "Gent"},
		"foundedDate": "1998-04-01",
		"revenueEstimation": "2M_5M",
		"employeeEstimation": "10_49"
	}
}`

const financialsBody = `{
	"identifier": {"name": "Acme BVBA", "countryCode": "BE", "value": "0473416418"},
	"data": [
		{
			"startDate": "2023-01-01",
			"endDate": "2023-12-31",
			"healthIndicator": 72.5,
			"commonScore": "B1",
			"creditLimit": 15000,
			"profitability": {"ebitda": 120000, "netProfit": 45000},
			"solvency": {"equity": 500000, "totalAssets": 1000000, "debt": 300000},
			"liquidity": {"currentRatio": 1.4, "quickRatio": 1.2, "cash": 80000}
		},
		{
			"startDate": "2022-01-01",
			"endDate": "2022-12-31",
			"liquidity": {"quickRatio": 0.9}
		}
	]
}`

func testClient(serverURL string) *Client {
	return NewClient(config.BizzyConfig{
		APIKey:         "test-key",
		BaseURL:        serverURL,
		TimeoutSeconds: 2,
		MaxRetries:     2,
	})
}

func TestClient_Details(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/companies/BE/0473416418", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(detailsBody))
	}))
	defer srv.Close()

	details, err := testClient(srv.URL).Details(context.Background(), "0473416418")
	require.NoError(t, err)
	assert.Equal(t, "Acme BVBA", details.Name)
	assert.Equal(t, "Kerkstraat", details.Street)
	assert.Equal(t, "//", details.Box)
	assert.Equal(t, "1998-04-01", details.FoundedDate)
	assert.Equal(t, "2M_5M", details.RevenueEstimation)
}

func TestClient_Financials(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/companies/BE/0473416418/financials", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(financialsBody))
	}))
	defer srv.Close()

	statements, err := testClient(srv.URL).Financials(context.Background(), "0473416418")
	require.NoError(t, err)
	require.Len(t, statements, 2)

	first := statements[0]
	assert.Equal(t, "2023-01-01", first.StartDate)
	assert.Equal(t, "B1", first.CommonScore)
	assert.Equal(t, "72.5", first.HealthIndicator.Decimal.String())
	assert.Equal(t, "1.2", first.QuickRatio.Decimal.String())
	assert.Equal(t, "500000", first.Equity.Decimal.String())

	second := statements[1]
	assert.True(t, second.QuickRatio.Valid)
	assert.False(t, second.Cash.Valid, "absent metrics stay null")
	assert.False(t, second.Equity.Valid)
}

func TestClient_NotFoundIsPermanent(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).Details(context.Background(), "0000000000")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls), "404 must not be retried")
}

func TestClient_RetriesServerErrors(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(detailsBody))
	}))
	defer srv.Close()

	details, err := testClient(srv.URL).Details(context.Background(), "0473416418")
	require.NoError(t, err)
	assert.Equal(t, "Acme BVBA", details.Name)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestClient_ExhaustedRetries(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).Details(context.Background(), "0473416418")
	assert.ErrorIs(t, err, domain.ErrProviderFailure)
}

func TestClient_MissingAPIKey(t *testing.T) {
	client := NewClient(config.BizzyConfig{BaseURL: "http://localhost:0"})
	_, err := client.Details(context.Background(), "0473416418")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "BIZZY_API_KEY")
}
