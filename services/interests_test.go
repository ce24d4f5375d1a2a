package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tripweaver/services"
)

func TestStaticInterestSuggester_KnownDestination(t *testing.T) {
	interests, err := services.StaticInterestSuggester{}.SuggestedInterests(context.Background(), "  PARIS ")

	require.NoError(t, err)
	assert.Contains(t, interests, "Eiffel Tower")
	assert.Len(t, interests, 10)
}

func TestStaticInterestSuggester_UnknownDestinationGetsGenericList(t *testing.T) {
	interests, err := services.StaticInterestSuggester{}.SuggestedInterests(context.Background(), "Ulaanbaatar")

	require.NoError(t, err)
	assert.Contains(t, interests, "Local Food")
	assert.Len(t, interests, 10)
}

func TestStaticInterestSuggester_ReturnsCopy(t *testing.T) {
	first, _ := services.StaticInterestSuggester{}.SuggestedInterests(context.Background(), "Tokyo")
	first[0] = "mutated"

	second, _ := services.StaticInterestSuggester{}.SuggestedInterests(context.Background(), "Tokyo")

	assert.Equal(t, "Shinjuku Gyoen", second[0])
}

type mockInterestGenerator struct {
	suggest func(ctx context.Context, destination string) (string, error)
}

func (m *mockInterestGenerator) SuggestInterests(ctx context.Context, destination string) (string, error) {
	return m.suggest(ctx, destination)
}

var _ services.InterestGenerator = (*mockInterestGenerator)(nil)

func TestAIInterestSuggester_ParsesOnePerLine(t *testing.T) {
	gen := &mockInterestGenerator{
		suggest: func(_ context.Context, _ string) (string, error) {
			// numbered and bulleted despite the prompt asking for neither
			return "1. Eiffel Tower\n- Louvre Museum\n\n2) Montmartre\n", nil
		},
	}

	interests, err := services.AIInterestSuggester{AI: gen}.SuggestedInterests(context.Background(), "Paris")

	require.NoError(t, err)
	assert.Equal(t, []string{"Eiffel Tower", "Louvre Museum", "Montmartre"}, interests)
}

func TestAIInterestSuggester_CapsAtTen(t *testing.T) {
	gen := &mockInterestGenerator{
		suggest: func(_ context.Context, _ string) (string, error) {
			return "a\nb\nc\nd\ne\nf\ng\nh\ni\nj\nk\nl\n", nil
		},
	}

	interests, err := services.AIInterestSuggester{AI: gen}.SuggestedInterests(context.Background(), "Paris")

	require.NoError(t, err)
	assert.Len(t, interests, 10)
}
