package services_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tripweaver/services"
)

func parisTrip(t *testing.T) services.TripRequest {
	t.Helper()
	trip, err := services.NewTripRequest(
		"New York", "Paris", "2026-09-10", "2026-09-15", "Medium",
		[]string{"Museums", "Local Food"})
	require.NoError(t, err)
	return trip
}

func TestComposeFlightQuery(t *testing.T) {
	trip := parisTrip(t)

	query, err := services.ComposeFlightQuery(trip)

	require.NoError(t, err)
	assert.Equal(t, "flights from New York to Paris on 2026-09-10", query)
}

func TestComposeFlightQuery_MissingFields(t *testing.T) {
	trip := parisTrip(t)
	trip.Destination = ""

	_, err := services.ComposeFlightQuery(trip)

	assert.ErrorIs(t, err, services.ErrInvalidInput)
}

func TestComposeFlightQuery_ZeroDate(t *testing.T) {
	trip := parisTrip(t)
	trip.StartDate = time.Time{}

	_, err := services.ComposeFlightQuery(trip)

	assert.ErrorIs(t, err, services.ErrInvalidInput)
}

func TestComposeItineraryPrompt_ContainsSchemaInstruction(t *testing.T) {
	prompt := services.ComposeItineraryPrompt(parisTrip(t))

	// The schema instruction is what makes extraction work downstream.
	assert.Contains(t, prompt, "Activity: <activity name>")
	assert.Contains(t, prompt, "Location: <city, country>")
	assert.Contains(t, prompt, "Coordinates: <latitude>, <longitude>")

	assert.Contains(t, prompt, "New York")
	assert.Contains(t, prompt, "Paris")
	assert.Contains(t, prompt, "Museums, Local Food")
	assert.Contains(t, prompt, "Medium")
}

func TestComposeItineraryPrompt_EmptyInterestsFallback(t *testing.T) {
	trip := parisTrip(t)
	trip.Interests = nil

	prompt := services.ComposeItineraryPrompt(trip)

	assert.Contains(t, prompt, "general activities")
}

func TestComposeItineraryPrompt_Deterministic(t *testing.T) {
	trip := parisTrip(t)

	assert.Equal(t,
		services.ComposeItineraryPrompt(trip),
		services.ComposeItineraryPrompt(trip))
}

func TestComposeExpensePrompt_ListsAllCategories(t *testing.T) {
	prompt := services.ComposeExpensePrompt("Taxi to airport")

	for _, cat := range services.ExpenseCategories {
		assert.Contains(t, prompt, cat)
	}
	assert.Contains(t, prompt, "Taxi to airport")
}
