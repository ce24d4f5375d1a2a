package services

import (
	"context"
	"log"
	"strings"
)

// The normalizer is the only pipeline stage allowed to make outbound calls
// (geocoding, classification). It must tolerate partial failure: one bad
// record never aborts the batch.

// GeoPoint is a WGS 84 coordinate pair.
type GeoPoint struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Geocoder resolves a free-text place query to coordinates. An
// implementation returns ErrExternalService on call failure and (nil, nil)
// on a clean no-result.
type Geocoder interface {
	Geocode(ctx context.Context, query string) (*GeoPoint, error)
}

// ExpenseClassifier assigns one of ExpenseCategories to an expense
// description.
type ExpenseClassifier interface {
	ClassifyExpense(ctx context.Context, description string) (string, error)
}

// placePrefixes are boilerplate lead-ins the generator puts in front of
// place names. Order matters and only the first match is stripped; stacked
// prefixes stay ("Visit the Eiffel Tower" -> "the Eiffel Tower").
var placePrefixes = []string{"Visit", "Explore", "Rest", "the", "Last-minute Shopping in"}

// CleanPlaceName strips at most one leading boilerplate prefix,
// case-insensitively, before the name is used as a geocoding query or
// display label.
func CleanPlaceName(name string) string {
	trimmed := strings.TrimSpace(name)
	lower := strings.ToLower(trimmed)
	for _, prefix := range placePrefixes {
		p := strings.ToLower(prefix) + " "
		if strings.HasPrefix(lower, p) {
			return strings.TrimSpace(trimmed[len(p):])
		}
	}
	return trimmed
}

// EnrichActivities cleans place names, drops duplicate activities, and
// fills in missing coordinates with one geocoding lookup per record,
// keyed "{place}, {context}". Lookups that fail or return nothing leave
// the record coordinate-less with a logged warning; the record is still
// returned.
func EnrichActivities(ctx context.Context, geo Geocoder, records []ActivityRecord, tripContext string) []ActivityRecord {
	out := make([]ActivityRecord, 0, len(records))
	seen := make(map[string]bool, len(records))
	for _, rec := range records {
		rec.Name = CleanPlaceName(rec.Name)

		// generators repeat activities across days; keep the first occurrence
		key := strings.ToLower(rec.Name)
		if seen[key] {
			continue
		}
		seen[key] = true

		if !rec.HasCoordinates() && geo != nil {
			query := rec.Name
			if c := strings.TrimSpace(coalesce(rec.Context, tripContext)); c != "" {
				query = rec.Name + ", " + c
			}
			point, err := geo.Geocode(ctx, query)
			switch {
			case err != nil:
				log.Printf("⚠️  Geocoding %q failed: %v — keeping record without coordinates", query, err)
			case point == nil:
				log.Printf("⚠️  Geocoding %q returned no result", query)
			default:
				lat, lon := point.Lat, point.Lon
				rec.Lat = &lat
				rec.Lon = &lon
			}
		}
		out = append(out, rec)
	}
	return out
}

// ClassifyExpenses attaches a category to every row with one classification
// call each. A failed call marks the row "Unknown" and keeps it; the
// answer is normalized against the fixed category set.
func ClassifyExpenses(ctx context.Context, cls ExpenseClassifier, rows []ExpenseRow) []ExpenseRow {
	out := make([]ExpenseRow, 0, len(rows))
	for _, row := range rows {
		row.Category = CategoryUnknown
		if cls != nil {
			answer, err := cls.ClassifyExpense(ctx, row.Description)
			if err != nil {
				log.Printf("⚠️  Classification of %q failed: %v — marking Unknown", row.Description, err)
			} else if cat := matchCategory(answer); cat != "" {
				row.Category = cat
			}
		}
		out = append(out, row)
	}
	return out
}

// matchCategory maps a free-text generator answer onto the fixed category
// set, or "" when nothing matches.
func matchCategory(answer string) string {
	lower := strings.ToLower(answer)
	for _, cat := range ExpenseCategories {
		if strings.Contains(lower, cat) {
			return cat
		}
	}
	return ""
}

func coalesce(a, b string) string {
	if strings.TrimSpace(a) != "" {
		return a
	}
	return b
}
