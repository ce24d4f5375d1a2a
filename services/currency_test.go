package services_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tripweaver/services"
)

func TestRatesClient_SameCurrencyShortCircuits(t *testing.T) {
	services.InitRates()
	rc := services.GetRatesClient()
	require.NotNil(t, rc)

	amount := decimal.NewFromFloat(19.70)
	got, err := rc.Convert(context.Background(), amount, "usd", "USD")

	// no rate lookup needed, so no network either
	require.NoError(t, err)
	assert.True(t, amount.Equal(got))
}

func TestRatesClient_MissingCurrencyIsInvalidInput(t *testing.T) {
	services.InitRates()
	rc := services.GetRatesClient()

	_, err := rc.Convert(context.Background(), decimal.NewFromInt(10), "", "EUR")

	assert.ErrorIs(t, err, services.ErrInvalidInput)
}
