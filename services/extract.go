package services

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Extraction turns the free text coming back from the generation and OCR
// services into typed records. All functions here are pure and
// deterministic: the upstream services are not, so this is the layer the
// tests pin down against canned fixtures.

var (
	activityLineRe    = regexp.MustCompile(`(?i)^activity:\s*(.+)$`)
	locationLineRe    = regexp.MustCompile(`(?i)^location:\s*(.+)$`)
	coordinatesLineRe = regexp.MustCompile(`(?i)^coordinates:\s*(-?\d+(?:\.\d+)?)\s*,\s*(-?\d+(?:\.\d+)?)\s*$`)

	amountRe = regexp.MustCompile(`\d+\.\d{2}`)
	dateRe   = regexp.MustCompile(`\d{2}/\d{2}/\d{4}`)
)

// ExtractActivities scans generated itinerary text for the instructed
// Activity/Location/Coordinates block schema. A block with a name but no
// usable coordinates still yields a record, with coordinates unset, so the
// enricher can try geocoding it. Text with no conforming blocks yields an
// empty slice, never an error: callers treat that as a miss and fall back.
func ExtractActivities(raw string) []ActivityRecord {
	records := []ActivityRecord{}
	var current *ActivityRecord

	flush := func() {
		if current != nil && current.Name != "" {
			records = append(records, *current)
		}
		current = nil
	}

	for _, line := range strings.Split(raw, "\n") {
		line = trimDecoration(line)

		if m := activityLineRe.FindStringSubmatch(line); m != nil {
			flush()
			name := strings.TrimSpace(m[1])
			if name != "" {
				current = &ActivityRecord{Name: name}
			}
			continue
		}
		if current == nil {
			continue
		}
		if m := locationLineRe.FindStringSubmatch(line); m != nil {
			current.Context = strings.TrimSpace(m[1])
			continue
		}
		if m := coordinatesLineRe.FindStringSubmatch(line); m != nil {
			lat, err1 := strconv.ParseFloat(m[1], 64)
			lon, err2 := strconv.ParseFloat(m[2], 64)
			if err1 == nil && err2 == nil && validCoordinates(lat, lon) {
				current.Lat = &lat
				current.Lon = &lon
			}
			// out-of-range or unparsable coordinates are treated as absent
			continue
		}
	}
	flush()

	return records
}

// trimDecoration removes list markers and markdown emphasis the generator
// tends to wrap around schema lines ("- **Activity:** ...").
func trimDecoration(line string) string {
	line = strings.TrimSpace(line)
	line = strings.TrimLeft(line, "-*•> \t")
	line = strings.ReplaceAll(line, "**", "")
	return strings.TrimSpace(line)
}

func validCoordinates(lat, lon float64) bool {
	return lat >= -90 && lat <= 90 && lon >= -180 && lon <= 180
}

// ExtractReceipt applies three independent pattern searches over OCR text:
// a monetary amount with exactly two fraction digits, a DD/MM/YYYY date,
// and a case-insensitive category keyword. A missing amount or date leaves
// the field unset; a missing keyword defaults the category to "Unknown".
func ExtractReceipt(raw string) ReceiptRecord {
	rec := ReceiptRecord{RawText: raw, Category: CategoryUnknown}

	if m := amountRe.FindString(raw); m != "" {
		if amt, err := decimal.NewFromString(m); err == nil {
			rec.Amount = &amt
		}
	}
	rec.Date = dateRe.FindString(raw)

	lower := strings.ToLower(raw)
	for _, cat := range ExpenseCategories {
		if strings.Contains(lower, cat) {
			rec.Category = cat
			break
		}
	}
	return rec
}

// ExtractFlightSummary is the flight-price counterpart of the extractors
// above. The search snippet carries no block structure worth parsing, so
// the text passes through unchanged for downstream formatting.
func ExtractFlightSummary(raw string) string {
	return strings.TrimSpace(raw)
}
