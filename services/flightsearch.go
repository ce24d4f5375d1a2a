package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"
)

// ─── Flight Price Search ──────────────────────────────────────────────────────

// SearchClient queries a SerpAPI-compatible web search endpoint with the
// composed flight query and returns the first usable free-text snippet.
// There is no structured flight data here: the snippet is reformatted by a
// generation call before display.
type SearchClient struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

var searchClient *SearchClient

func InitSearch() {
	baseURL := os.Getenv("SEARCH_API_URL")
	if baseURL == "" {
		baseURL = "https://serpapi.com"
	}

	searchClient = &SearchClient{
		apiKey:  os.Getenv("SEARCH_API_KEY"),
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}

	if searchClient.apiKey != "" {
		log.Println("✅ Flight price search initialized")
	} else {
		log.Println("⚠️  SEARCH_API_KEY not set — flight prices will use fallback estimates")
	}
}

func GetSearchClient() *SearchClient {
	return searchClient
}

type serpResponse struct {
	AnswerBox struct {
		Snippet string `json:"snippet"`
		Answer  string `json:"answer"`
	} `json:"answer_box"`
	OrganicResults []struct {
		Snippet string `json:"snippet"`
	} `json:"organic_results"`
}

// FetchFlightPrices runs the query and returns a single raw snippet.
func (c *SearchClient) FetchFlightPrices(ctx context.Context, query string) (string, error) {
	if c.apiKey == "" {
		return "", fmt.Errorf("%w: search API key not configured", ErrExternalService)
	}

	endpoint := fmt.Sprintf("%s/search.json?engine=google&q=%s&api_key=%s",
		c.baseURL, url.QueryEscape(query), url.QueryEscape(c.apiKey))

	req, err := http.NewRequestWithContext(ctx, "GET", endpoint, nil)
	if err != nil {
		return "", err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: flight search failed: %v", ErrExternalService, err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: search API error (%d): %s", ErrExternalService, resp.StatusCode, string(body))
	}

	var result serpResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("%w: failed to parse search response: %v", ErrExternalService, err)
	}

	if s := strings.TrimSpace(result.AnswerBox.Answer); s != "" {
		return s, nil
	}
	if s := strings.TrimSpace(result.AnswerBox.Snippet); s != "" {
		return s, nil
	}
	for _, r := range result.OrganicResults {
		if s := strings.TrimSpace(r.Snippet); s != "" {
			return s, nil
		}
	}

	return "", fmt.Errorf("%w: search returned no usable snippet", ErrExternalService)
}

// ─── Fallback (when the search API is not configured or fails) ───────────────

// FlightPricesFallback produces a plausible price estimate snippet without
// an API key. Clearly labeled as estimated data downstream.
func FlightPricesFallback(origin, destination string) string {
	base := map[string]float64{
		"new york-paris":  420,
		"paris-new york":  420,
		"new york-tokyo":  780,
		"tokyo-new york":  780,
		"london-paris":    90,
		"paris-london":    90,
		"london-new york": 380,
		"new york-london": 380,
		"paris-tokyo":     650,
		"tokyo-paris":     650,
	}

	key := strings.ToLower(strings.TrimSpace(origin)) + "-" + strings.ToLower(strings.TrimSpace(destination))
	price, ok := base[key]
	if !ok {
		price = 450
	}

	return fmt.Sprintf(
		"Estimated round-trip fares from %s to %s start around $%.0f on budget carriers, "+
			"with full-service airlines from $%.0f. Prices vary by season and booking lead time.",
		origin, destination, price, price*1.4)
}
