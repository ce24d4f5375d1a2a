package services

import (
	"context"
	"strings"
)

// ─── Interest Suggestion ──────────────────────────────────────────────────────

// InterestSuggester proposes interest tags for a destination. Two
// strategies exist behind this interface: a curated per-destination table
// and a generation call; the handler prefers the generator and falls back
// to the table when the call fails.
type InterestSuggester interface {
	SuggestedInterests(ctx context.Context, destination string) ([]string, error)
}

// StaticInterestSuggester serves a curated table of top attractions per
// destination, with a generic list for destinations not in the table.
type StaticInterestSuggester struct{}

var _ InterestSuggester = StaticInterestSuggester{}

var destinationInterests = map[string][]string{
	"new york": {
		"Statue of Liberty", "Central Park", "Broadway Shows", "Times Square", "Brooklyn Bridge",
		"Museum of Modern Art", "Empire State Building", "High Line", "Fifth Avenue", "Rockefeller Center",
	},
	"paris": {
		"Eiffel Tower", "Louvre Museum", "Notre-Dame Cathedral", "Champs-Élysées", "Montmartre",
		"Versailles", "Seine River Cruise", "Disneyland Paris", "Arc de Triomphe", "Latin Quarter",
	},
	"tokyo": {
		"Shinjuku Gyoen", "Tokyo Tower", "Akihabara", "Meiji Shrine", "Senso-ji Temple",
		"Odaiba", "Ginza", "Tsukiji Market", "Harajuku", "Roppongi",
	},
}

var genericInterests = []string{
	"Beach", "Hiking", "Museums", "Local Food", "Shopping",
	"Parks", "Cultural Sites", "Water Sports", "Music Events", "Nightlife",
}

// SuggestedInterests never fails; unknown destinations get the generic list.
func (StaticInterestSuggester) SuggestedInterests(_ context.Context, destination string) ([]string, error) {
	if interests, ok := destinationInterests[strings.ToLower(strings.TrimSpace(destination))]; ok {
		return append([]string(nil), interests...), nil
	}
	return append([]string(nil), genericInterests...), nil
}

// InterestGenerator is the slice of the AI client the suggester needs.
type InterestGenerator interface {
	SuggestInterests(ctx context.Context, destination string) (string, error)
}

// AIInterestSuggester asks the text-generation API for suggestions and
// parses the one-name-per-line answer.
type AIInterestSuggester struct {
	AI InterestGenerator
}

var _ InterestSuggester = AIInterestSuggester{}

func (s AIInterestSuggester) SuggestedInterests(ctx context.Context, destination string) ([]string, error) {
	raw, err := s.AI.SuggestInterests(ctx, destination)
	if err != nil {
		return nil, err
	}

	interests := make([]string, 0, 10)
	for _, line := range strings.Split(raw, "\n") {
		line = trimDecoration(line)
		// tolerate numbered lists despite the prompt asking for none
		line = strings.TrimLeft(line, "0123456789.) ")
		if line != "" {
			interests = append(interests, line)
		}
		if len(interests) == 10 {
			break
		}
	}
	return interests, nil
}
