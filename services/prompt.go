package services

import (
	"fmt"
	"strings"
)

// Prompt composition. Everything here is a pure function of the trip
// request: same inputs, same prompt, so the downstream extraction is
// reproducible against canned fixtures.

// ComposeFlightQuery builds the free-text query sent to the flight price
// search endpoint.
func ComposeFlightQuery(trip TripRequest) (string, error) {
	if trip.Origin == "" || trip.Destination == "" || trip.StartDate.IsZero() {
		return "", fmt.Errorf("%w: origin, destination and departure date are required", ErrInvalidInput)
	}
	return fmt.Sprintf("flights from %s to %s on %s",
		trip.Origin, trip.Destination, trip.StartDate.Format("2006-01-02")), nil
}

// ComposeItineraryPrompt builds the generation prompt for an itinerary.
// The schema instruction at the end is what makes the extractor work: the
// generator is told to emit one Activity/Location/Coordinates block per
// activity, and ExtractActivities scans for exactly that shape.
func ComposeItineraryPrompt(trip TripRequest) string {
	interests := strings.Join(trip.Interests, ", ")
	if interests == "" {
		interests = "general activities"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "[INST] You are a travel planner. Create a day-by-day itinerary for a trip from %s to %s, %s to %s.\n",
		trip.Origin, trip.Destination,
		trip.StartDate.Format("2006-01-02"), trip.EndDate.Format("2006-01-02"))
	fmt.Fprintf(&b, "Traveler interests: %s. Budget: %s.\n\n", interests, trip.Budget)
	b.WriteString("List every suggested activity exactly in this format, one block per activity:\n")
	b.WriteString("Activity: <activity name>\n")
	b.WriteString("Location: <city, country>\n")
	b.WriteString("Coordinates: <latitude>, <longitude>\n\n")
	b.WriteString("Do not use any other format for activities. [/INST]")
	return b.String()
}

// ComposeFlightSummaryPrompt asks the generator to reformat a raw search
// snippet into a short readable flight-price summary.
func ComposeFlightSummaryPrompt(trip TripRequest, snippet string) string {
	return fmt.Sprintf(
		"[INST] Summarize these flight price search results for a traveler going from %s to %s on %s. "+
			"Keep it under 80 words and mention the cheapest option first.\n\n%s [/INST]",
		trip.Origin, trip.Destination, trip.StartDate.Format("2006-01-02"), snippet)
}

// ComposeExpensePrompt builds the single-row classification prompt. The
// generator must answer with exactly one category word so the response can
// be matched against the fixed set.
func ComposeExpensePrompt(description string) string {
	return fmt.Sprintf(
		"[INST] Classify this travel expense into exactly one category from: %s. "+
			"Answer with the category word only.\n\nExpense: %s [/INST]",
		strings.Join(ExpenseCategories, ", "), description)
}

// ComposeInterestPrompt asks the generator for interest suggestions for a
// destination, one per line.
func ComposeInterestPrompt(destination string) string {
	return fmt.Sprintf(
		"[INST] List the top 10 attractions or activities for a tourist visiting %s. "+
			"Answer with one name per line, no numbering, no commentary. [/INST]",
		destination)
}
