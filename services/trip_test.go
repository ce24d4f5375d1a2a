package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tripweaver/services"
)

func TestNewTripRequest_Valid(t *testing.T) {
	trip, err := services.NewTripRequest(
		"New York", "Tokyo", "2026-03-01", "2026-03-08", "high",
		[]string{" Akihabara ", "", "Ginza"})

	require.NoError(t, err)
	assert.Equal(t, services.BudgetHigh, trip.Budget)
	assert.Equal(t, []string{"Akihabara", "Ginza"}, trip.Interests) // trimmed, empties dropped
	assert.Equal(t, 7, trip.Nights())
}

func TestNewTripRequest_MissingOrigin(t *testing.T) {
	_, err := services.NewTripRequest("  ", "Paris", "2026-03-01", "2026-03-08", "", nil)

	assert.ErrorIs(t, err, services.ErrInvalidInput)
}

func TestNewTripRequest_BadDateFormat(t *testing.T) {
	_, err := services.NewTripRequest("New York", "Paris", "03/01/2026", "2026-03-08", "", nil)

	assert.ErrorIs(t, err, services.ErrInvalidInput)
}

func TestNewTripRequest_EndBeforeStart(t *testing.T) {
	_, err := services.NewTripRequest("New York", "Paris", "2026-03-08", "2026-03-01", "", nil)

	assert.ErrorIs(t, err, services.ErrInvalidInput)
}

func TestNewTripRequest_SameDayTrip(t *testing.T) {
	trip, err := services.NewTripRequest("London", "Paris", "2026-03-01", "2026-03-01", "low", nil)

	// start == end is a valid day trip
	require.NoError(t, err)
	assert.Equal(t, 0, trip.Nights())
}

func TestParseBudgetTier_DefaultsMedium(t *testing.T) {
	assert.Equal(t, services.BudgetMedium, services.ParseBudgetTier(""))
	assert.Equal(t, services.BudgetMedium, services.ParseBudgetTier("whatever"))
	assert.Equal(t, services.BudgetLow, services.ParseBudgetTier(" LOW "))
}
