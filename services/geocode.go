package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/patrickmn/go-cache"
)

// ─── Geocoding Client ─────────────────────────────────────────────────────────

// NominatimClient geocodes free-text place queries against an
// OpenStreetMap Nominatim endpoint. Geocoding is the one call issued in a
// per-record loop, so it gets the tightest timeout and a single retry, and
// results are cached in-process to keep repeat lookups off the wire.
type NominatimClient struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
	cache      *cache.Cache
}

var geocoderClient *NominatimClient

func InitGeocoder() {
	baseURL := os.Getenv("GEOCODER_URL")
	if baseURL == "" {
		baseURL = "https://nominatim.openstreetmap.org"
	}

	geocoderClient = &NominatimClient{
		baseURL:   baseURL,
		userAgent: "tripweaver/1.0",
		httpClient: &http.Client{
			Timeout: 5 * time.Second,
		},
		cache: cache.New(24*time.Hour, 1*time.Hour),
	}

	log.Println("✅ Geocoder initialized:", baseURL)
}

func GetGeocoder() *NominatimClient {
	return geocoderClient
}

var _ Geocoder = (*NominatimClient)(nil)

type nominatimResult struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

// Geocode resolves a query like "Eiffel Tower, Paris" to coordinates.
// Returns (nil, nil) when the service answers cleanly with no result.
func (c *NominatimClient) Geocode(ctx context.Context, query string) (*GeoPoint, error) {
	if cached, ok := c.cache.Get(query); ok {
		if point, ok := cached.(*GeoPoint); ok {
			return point, nil
		}
	}

	var point *GeoPoint
	var err error
	for attempt := 0; attempt < 2; attempt++ {
		point, err = c.lookup(ctx, query)
		if err == nil {
			break
		}
		if ctx.Err() != nil {
			break
		}
	}
	if err != nil {
		return nil, err
	}

	c.cache.Set(query, point, cache.DefaultExpiration)
	return point, nil
}

func (c *NominatimClient) lookup(ctx context.Context, query string) (*GeoPoint, error) {
	endpoint := fmt.Sprintf("%s/search?q=%s&format=json&limit=1",
		c.baseURL, url.QueryEscape(query))

	req, err := http.NewRequestWithContext(ctx, "GET", endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: geocoding request failed: %v", ErrExternalService, err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: geocoder returned %d: %s", ErrExternalService, resp.StatusCode, string(body))
	}

	var results []nominatimResult
	if err := json.Unmarshal(body, &results); err != nil {
		return nil, fmt.Errorf("%w: failed to parse geocoder response: %v", ErrExternalService, err)
	}
	if len(results) == 0 {
		return nil, nil
	}

	lat, err1 := strconv.ParseFloat(results[0].Lat, 64)
	lon, err2 := strconv.ParseFloat(results[0].Lon, 64)
	if err1 != nil || err2 != nil || !validCoordinates(lat, lon) {
		return nil, nil
	}

	return &GeoPoint{Lat: lat, Lon: lon}, nil
}
