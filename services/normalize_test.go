package services_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tripweaver/services"
)

// mockGeocoder is a hand-written test double: set the one function field
// your test needs.
type mockGeocoder struct {
	geocode func(ctx context.Context, query string) (*services.GeoPoint, error)
}

func (m *mockGeocoder) Geocode(ctx context.Context, query string) (*services.GeoPoint, error) {
	return m.geocode(ctx, query)
}

var _ services.Geocoder = (*mockGeocoder)(nil)

type mockClassifier struct {
	classify func(ctx context.Context, description string) (string, error)
}

func (m *mockClassifier) ClassifyExpense(ctx context.Context, description string) (string, error) {
	return m.classify(ctx, description)
}

var _ services.ExpenseClassifier = (*mockClassifier)(nil)

// ---- CleanPlaceName --------------------------------------------------------

func TestCleanPlaceName_StripsExactlyOnePrefix(t *testing.T) {
	// "Visit" is stripped; the following "the" stays. No stacked stripping.
	assert.Equal(t, "the Eiffel Tower", services.CleanPlaceName("Visit the Eiffel Tower"))
}

func TestCleanPlaceName_CaseInsensitive(t *testing.T) {
	assert.Equal(t, "Montmartre", services.CleanPlaceName("explore Montmartre"))
}

func TestCleanPlaceName_LongPrefix(t *testing.T) {
	assert.Equal(t, "Ginza", services.CleanPlaceName("Last-minute Shopping in Ginza"))
}

func TestCleanPlaceName_NoPrefixUnchanged(t *testing.T) {
	assert.Equal(t, "Louvre Museum", services.CleanPlaceName("Louvre Museum"))
}

func TestCleanPlaceName_PrefixMustBeWholeWord(t *testing.T) {
	// "Restaurant Row" starts with the letters of "Rest" but not the word.
	assert.Equal(t, "Restaurant Row", services.CleanPlaceName("Restaurant Row"))
}

// ---- EnrichActivities ------------------------------------------------------

func TestEnrichActivities_FillsMissingCoordinates(t *testing.T) {
	var gotQuery string
	geo := &mockGeocoder{
		geocode: func(_ context.Context, query string) (*services.GeoPoint, error) {
			gotQuery = query
			return &services.GeoPoint{Lat: 48.8584, Lon: 2.2945}, nil
		},
	}

	records := []services.ActivityRecord{{Name: "Visit the Eiffel Tower", Context: "Paris, France"}}
	out := services.EnrichActivities(context.Background(), geo, records, "Paris")

	require.Len(t, out, 1)
	// The lookup uses the cleaned name plus the record's own context.
	assert.Equal(t, "the Eiffel Tower, Paris, France", gotQuery)
	require.True(t, out[0].HasCoordinates())
	assert.InDelta(t, 48.8584, *out[0].Lat, 1e-9)
}

func TestEnrichActivities_ExistingCoordinatesUntouched(t *testing.T) {
	lat, lon := 35.6586, 139.7454
	geo := &mockGeocoder{
		geocode: func(_ context.Context, _ string) (*services.GeoPoint, error) {
			t.Fatal("geocoder must not be called when coordinates are present")
			return nil, nil
		},
	}

	records := []services.ActivityRecord{{Name: "Tokyo Tower", Lat: &lat, Lon: &lon}}
	out := services.EnrichActivities(context.Background(), geo, records, "Tokyo")

	require.Len(t, out, 1)
	assert.Equal(t, lat, *out[0].Lat)
}

func TestEnrichActivities_OneFailureDoesNotDropOthers(t *testing.T) {
	calls := 0
	geo := &mockGeocoder{
		geocode: func(_ context.Context, query string) (*services.GeoPoint, error) {
			calls++
			if calls == 2 {
				return nil, fmt.Errorf("%w: timeout", services.ErrExternalService)
			}
			return &services.GeoPoint{Lat: 1, Lon: 1}, nil
		},
	}

	records := []services.ActivityRecord{
		{Name: "First"}, {Name: "Second"}, {Name: "Third"},
	}
	out := services.EnrichActivities(context.Background(), geo, records, "Paris")

	// All K records come back; only the failed one is coordinate-less.
	require.Len(t, out, 3)
	assert.True(t, out[0].HasCoordinates())
	assert.False(t, out[1].HasCoordinates())
	assert.True(t, out[2].HasCoordinates())
}

func TestEnrichActivities_NoResultLeavesRecord(t *testing.T) {
	geo := &mockGeocoder{
		geocode: func(_ context.Context, _ string) (*services.GeoPoint, error) {
			return nil, nil // clean no-result
		},
	}

	out := services.EnrichActivities(context.Background(), geo,
		[]services.ActivityRecord{{Name: "Atlantis"}}, "")

	require.Len(t, out, 1)
	assert.False(t, out[0].HasCoordinates())
}

func TestEnrichActivities_DeduplicatesByCleanedName(t *testing.T) {
	geo := &mockGeocoder{
		geocode: func(_ context.Context, _ string) (*services.GeoPoint, error) {
			return &services.GeoPoint{Lat: 1, Lon: 1}, nil
		},
	}

	records := []services.ActivityRecord{
		{Name: "Visit Louvre Museum"},
		{Name: "louvre museum"}, // same place after cleanup, different casing
		{Name: "Montmartre"},
	}
	out := services.EnrichActivities(context.Background(), geo, records, "Paris")

	require.Len(t, out, 2)
	assert.Equal(t, "Louvre Museum", out[0].Name)
	assert.Equal(t, "Montmartre", out[1].Name)
}

func TestEnrichActivities_NilGeocoder(t *testing.T) {
	out := services.EnrichActivities(context.Background(), nil,
		[]services.ActivityRecord{{Name: "Visit Odaiba"}}, "Tokyo")

	require.Len(t, out, 1)
	assert.Equal(t, "Odaiba", out[0].Name) // names still cleaned
	assert.False(t, out[0].HasCoordinates())
}

// ---- ClassifyExpenses ------------------------------------------------------

func TestClassifyExpenses_MapsAnswerOntoCategorySet(t *testing.T) {
	cls := &mockClassifier{
		classify: func(_ context.Context, _ string) (string, error) {
			return "Transport.", nil // generators rarely answer with the bare word
		},
	}

	rows := []services.ExpenseRow{{Description: "Taxi to airport", Amount: decimal.NewFromInt(30)}}
	out := services.ClassifyExpenses(context.Background(), cls, rows)

	require.Len(t, out, 1)
	assert.Equal(t, "transport", out[0].Category)
}

func TestClassifyExpenses_FailureMarksUnknownAndKeepsRow(t *testing.T) {
	cls := &mockClassifier{
		classify: func(_ context.Context, desc string) (string, error) {
			if desc == "Mystery charge" {
				return "", fmt.Errorf("%w: call failed", services.ErrExternalService)
			}
			return "food", nil
		},
	}

	rows := []services.ExpenseRow{
		{Description: "Dinner", Amount: decimal.NewFromInt(40)},
		{Description: "Mystery charge", Amount: decimal.NewFromInt(12)},
	}
	out := services.ClassifyExpenses(context.Background(), cls, rows)

	require.Len(t, out, 2)
	assert.Equal(t, "food", out[0].Category)
	assert.Equal(t, services.CategoryUnknown, out[1].Category)
}

func TestClassifyExpenses_UnrecognizedAnswerMarksUnknown(t *testing.T) {
	cls := &mockClassifier{
		classify: func(_ context.Context, _ string) (string, error) {
			return "souvenirs", nil // not in the fixed set
		},
	}

	out := services.ClassifyExpenses(context.Background(), cls,
		[]services.ExpenseRow{{Description: "Postcards", Amount: decimal.NewFromInt(5)}})

	require.Len(t, out, 1)
	assert.Equal(t, services.CategoryUnknown, out[0].Category)
}

// ---- Round-trip ------------------------------------------------------------

func TestPipelineRoundTrip_Deterministic(t *testing.T) {
	trip := parisTrip(t)
	geo := &mockGeocoder{
		geocode: func(_ context.Context, query string) (*services.GeoPoint, error) {
			// deterministic canned geocoder keyed on query length
			return &services.GeoPoint{Lat: float64(len(query)), Lon: 2}, nil
		},
	}

	run := func() []services.ActivityRecord {
		// prompt composition feeds the (substituted) generator; the fixture
		// stands in for its response
		_ = services.ComposeItineraryPrompt(trip)
		records := services.ExtractActivities(itineraryFixture)
		return services.EnrichActivities(context.Background(), geo, records, trip.Destination)
	}

	assert.Equal(t, run(), run())
}
