package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

// ─── Text Generation Client ───────────────────────────────────────────────────

// AIClient talks to the HuggingFace inference API. One client serves every
// generation concern: itinerary text, flight-snippet summaries, expense
// classification and interest suggestions.
type AIClient struct {
	apiKey     string
	model      string
	httpClient *http.Client
}

var aiClient *AIClient

func InitAI() {
	model := os.Getenv("HF_MODEL")
	if model == "" {
		model = "mistralai/Mistral-7B-Instruct-v0.3"
	}

	aiClient = &AIClient{
		apiKey: os.Getenv("HUGGINGFACE_API_KEY"),
		model:  model,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}

	if aiClient.apiKey != "" {
		fmt.Println("✅ AI (HuggingFace) initialized with model:", model)
	} else {
		fmt.Println("⚠️  HUGGINGFACE_API_KEY not set — generation will use fallback text")
	}
}

func GetAIClient() *AIClient {
	return aiClient
}

var _ ExpenseClassifier = (*AIClient)(nil)

type hfRequest struct {
	Inputs     string       `json:"inputs"`
	Parameters hfParameters `json:"parameters"`
}

type hfParameters struct {
	MaxNewTokens   int     `json:"max_new_tokens"`
	Temperature    float64 `json:"temperature"`
	ReturnFullText bool    `json:"return_full_text"`
}

type hfResponse []struct {
	GeneratedText string `json:"generated_text"`
}

// Generate runs one completion for the given prompt.
func (c *AIClient) Generate(ctx context.Context, prompt string, maxNewTokens int, temperature float64) (string, error) {
	if c.apiKey == "" {
		return "", fmt.Errorf("%w: huggingface API key not configured", ErrExternalService)
	}

	reqBody := hfRequest{
		Inputs: prompt,
		Parameters: hfParameters{
			MaxNewTokens:   maxNewTokens,
			Temperature:    temperature,
			ReturnFullText: false,
		},
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf("https://api-inference.huggingface.co/models/%s", c.model)
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(jsonBody))
	if err != nil {
		return "", err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrExternalService, err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode == 503 {
		return "", fmt.Errorf("%w: model is loading, retry in a few seconds", ErrExternalService)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: huggingface API error (%d): %s", ErrExternalService, resp.StatusCode, string(body))
	}

	var hfResp hfResponse
	if err := json.Unmarshal(body, &hfResp); err != nil {
		return "", fmt.Errorf("%w: failed to parse AI response: %v", ErrExternalService, err)
	}

	if len(hfResp) == 0 || hfResp[0].GeneratedText == "" {
		return "", fmt.Errorf("%w: empty response from AI", ErrExternalService)
	}

	return hfResp[0].GeneratedText, nil
}

// GenerateItinerary produces the free-text itinerary for a trip. The
// prompt instructs the block schema that ExtractActivities parses.
func (c *AIClient) GenerateItinerary(ctx context.Context, trip TripRequest) (string, error) {
	return c.Generate(ctx, ComposeItineraryPrompt(trip), 800, 0.6)
}

// SummarizeFlights reformats a raw search snippet into a short summary.
// On failure the caller falls back to showing the snippet unchanged.
func (c *AIClient) SummarizeFlights(ctx context.Context, trip TripRequest, snippet string) (string, error) {
	return c.Generate(ctx, ComposeFlightSummaryPrompt(trip, snippet), 150, 0.4)
}

// ClassifyExpense asks for exactly one category word for an expense
// description. Low temperature keeps the answer parseable.
func (c *AIClient) ClassifyExpense(ctx context.Context, description string) (string, error) {
	return c.Generate(ctx, ComposeExpensePrompt(description), 10, 0.1)
}

// SuggestInterests returns raw interest-suggestion text for a destination,
// one name per line.
func (c *AIClient) SuggestInterests(ctx context.Context, destination string) (string, error) {
	return c.Generate(ctx, ComposeInterestPrompt(destination), 200, 0.5)
}

// FallbackItinerary provides basic itinerary text when generation fails.
// It follows the same block schema the generator is instructed to use, so
// the extractor and enricher work on it unchanged.
func FallbackItinerary(trip TripRequest) string {
	interests := trip.Interests
	if len(interests) == 0 {
		interests = []string{"City Highlights Walking Tour", "Local Food Tasting", "Museums"}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "A %d-night trip to %s. Live itinerary generation was unavailable; here are starting points based on your interests.\n\n",
		trip.Nights(), trip.Destination)
	for _, interest := range interests {
		fmt.Fprintf(&b, "Activity: %s\n", interest)
		fmt.Fprintf(&b, "Location: %s\n\n", trip.Destination)
	}
	return b.String()
}
