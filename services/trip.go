package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ─── Trip request ─────────────────────────────────────────────────────────────

// BudgetTier is the coarse spending level selected by the traveler.
type BudgetTier string

const (
	BudgetLow    BudgetTier = "Low"
	BudgetMedium BudgetTier = "Medium"
	BudgetHigh   BudgetTier = "High"
)

// ParseBudgetTier maps free-form user input onto a tier, defaulting to Medium.
func ParseBudgetTier(s string) BudgetTier {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "low":
		return BudgetLow
	case "high":
		return BudgetHigh
	default:
		return BudgetMedium
	}
}

// TripRequest holds the validated trip parameters for one planning request.
// Build it with NewTripRequest and treat it as immutable afterwards.
type TripRequest struct {
	Origin      string     `json:"origin"`
	Destination string     `json:"destination"`
	StartDate   time.Time  `json:"start_date"`
	EndDate     time.Time  `json:"end_date"`
	Budget      BudgetTier `json:"budget"`
	Interests   []string   `json:"interests"`
}

// NewTripRequest validates raw user input and returns an immutable request.
// Dates use YYYY-MM-DD.
func NewTripRequest(origin, destination, startDate, endDate, budget string, interests []string) (TripRequest, error) {
	origin = strings.TrimSpace(origin)
	destination = strings.TrimSpace(destination)

	if origin == "" || destination == "" {
		return TripRequest{}, fmt.Errorf("%w: origin and destination are required", ErrInvalidInput)
	}

	start, err := time.Parse("2006-01-02", startDate)
	if err != nil {
		return TripRequest{}, fmt.Errorf("%w: invalid start date %q, use YYYY-MM-DD", ErrInvalidInput, startDate)
	}
	end, err := time.Parse("2006-01-02", endDate)
	if err != nil {
		return TripRequest{}, fmt.Errorf("%w: invalid end date %q, use YYYY-MM-DD", ErrInvalidInput, endDate)
	}
	if end.Before(start) {
		return TripRequest{}, fmt.Errorf("%w: end date must not be before start date", ErrInvalidInput)
	}

	cleaned := make([]string, 0, len(interests))
	for _, tag := range interests {
		if t := strings.TrimSpace(tag); t != "" {
			cleaned = append(cleaned, t)
		}
	}

	return TripRequest{
		Origin:      origin,
		Destination: destination,
		StartDate:   start,
		EndDate:     end,
		Budget:      ParseBudgetTier(budget),
		Interests:   cleaned,
	}, nil
}

// Nights returns the number of nights between start and end date.
func (t TripRequest) Nights() int {
	return int(t.EndDate.Sub(t.StartDate).Hours() / 24)
}

// ─── Extracted records ────────────────────────────────────────────────────────

// ActivityRecord is one itinerary activity extracted from generated text.
// Lat/Lon are nil when the source text did not supply usable coordinates;
// the enricher may fill them in later via geocoding.
type ActivityRecord struct {
	Name    string   `json:"name"`
	Context string   `json:"context,omitempty"` // city/country, e.g. "Paris, France"
	Lat     *float64 `json:"lat,omitempty"`
	Lon     *float64 `json:"lon,omitempty"`
}

// HasCoordinates reports whether both coordinates are set.
func (a ActivityRecord) HasCoordinates() bool {
	return a.Lat != nil && a.Lon != nil
}

// ReceiptRecord holds the fields extracted from one OCR'd receipt image.
// Amount and Date stay unset when no pattern matched; that is not an error.
type ReceiptRecord struct {
	RawText  string           `json:"raw_text"`
	Amount   *decimal.Decimal `json:"amount,omitempty"`
	Date     string           `json:"date,omitempty"` // DD/MM/YYYY as printed on the receipt
	Category string           `json:"category"`       // one of ExpenseCategories or "Unknown"
}

// ExpenseRow is one row of an uploaded expense spreadsheet. Category is
// attached in place by the classifier; everything else is immutable.
type ExpenseRow struct {
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Category    string          `json:"category"`
}

// ExpenseCategories is the fixed category set used by receipt extraction
// and expense classification.
var ExpenseCategories = []string{"food", "transport", "accommodation", "entertainment", "miscellaneous"}

// CategoryUnknown is assigned when no keyword matches and when a
// classification call fails.
const CategoryUnknown = "Unknown"
