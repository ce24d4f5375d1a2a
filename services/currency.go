package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/shopspring/decimal"
)

// ─── Currency Rates Client ────────────────────────────────────────────────────

// RatesClient converts monetary amounts between currencies via a hosted
// exchange-rate API. Rate tables are cached per base currency so a batch
// of expense rows costs at most one call.
type RatesClient struct {
	baseURL    string
	httpClient *http.Client
	cache      *cache.Cache
}

var ratesClient *RatesClient

func InitRates() {
	baseURL := os.Getenv("RATES_API_URL")
	if baseURL == "" {
		baseURL = "https://open.er-api.com/v6"
	}

	ratesClient = &RatesClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		cache: cache.New(6*time.Hour, 1*time.Hour),
	}

	log.Println("✅ Currency rates initialized:", baseURL)
}

func GetRatesClient() *RatesClient {
	return ratesClient
}

type ratesResponse struct {
	Result string             `json:"result"`
	Rates  map[string]float64 `json:"rates"`
}

// Convert converts amount from one ISO 4217 currency to another.
func (c *RatesClient) Convert(ctx context.Context, amount decimal.Decimal, from, to string) (decimal.Decimal, error) {
	from = strings.ToUpper(strings.TrimSpace(from))
	to = strings.ToUpper(strings.TrimSpace(to))
	if from == "" || to == "" {
		return decimal.Zero, fmt.Errorf("%w: source and target currency are required", ErrInvalidInput)
	}
	if from == to {
		return amount, nil
	}

	rates, err := c.rates(ctx, from)
	if err != nil {
		return decimal.Zero, err
	}

	rate, ok := rates[to]
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: no rate for currency %q", ErrExternalService, to)
	}

	return amount.Mul(decimal.NewFromFloat(rate)), nil
}

func (c *RatesClient) rates(ctx context.Context, base string) (map[string]float64, error) {
	if cached, ok := c.cache.Get(base); ok {
		if rates, ok := cached.(map[string]float64); ok {
			return rates, nil
		}
	}

	endpoint := fmt.Sprintf("%s/latest/%s", c.baseURL, base)
	req, err := http.NewRequestWithContext(ctx, "GET", endpoint, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: rates request failed: %v", ErrExternalService, err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: rates API error (%d): %s", ErrExternalService, resp.StatusCode, string(body))
	}

	var result ratesResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("%w: failed to parse rates response: %v", ErrExternalService, err)
	}
	if result.Result != "success" || len(result.Rates) == 0 {
		return nil, fmt.Errorf("%w: rates API returned no rates", ErrExternalService)
	}

	c.cache.Set(base, result.Rates, cache.DefaultExpiration)
	return result.Rates, nil
}
