package infra

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// Geocoder resolves coordinates to a human-readable address via a
// Nominatim-compatible /reverse endpoint. Lookups are best-effort: bounded
// by a 3s timeout, routed through the circuit breaker, and cached in Redis
// so repeated check-ins from the same spot don't re-query the service.
//
// Callers must treat an error as "no address available", never as a reason
// to drop the attendance record.

const (
	geocodeTimeout  = 3 * time.Second
	geocodeCacheTTL = 24 * time.Hour
)

type Geocoder struct {
	baseURL    string
	httpClient *http.Client
	breaker    *Breaker
	rdb        *redis.Client
}

func NewGeocoder(baseURL string, breaker *Breaker, rdb *redis.Client) *Geocoder {
	return &Geocoder{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: geocodeTimeout},
		breaker:    breaker,
		rdb:        rdb,
	}
}

// Breaker exposes the circuit breaker for the health endpoint.
func (g *Geocoder) Breaker() *Breaker { return g.breaker }

// nominatimReverse is the subset of the /reverse response we use.
type nominatimReverse struct {
	DisplayName string `json:"display_name"`
}

// ReverseGeocode returns the address for (lat, lon), or an error when the
// service is unreachable, rate-limited, or the breaker is open.
func (g *Geocoder) ReverseGeocode(ctx context.Context, lat, lon float64) (string, error) {
	// ~11m cache granularity — plenty for a store-front check-in
	cacheKey := fmt.Sprintf("geocode:%.4f,%.4f", lat, lon)

	if cached, err := g.rdb.Get(ctx, cacheKey).Result(); err == nil {
		return cached, nil
	}

	var address string
	err := g.breaker.Execute(func() error {
		var execErr error
		address, execErr = g.fetch(ctx, lat, lon)
		return execErr
	})
	if err != nil {
		return "", err
	}

	if err := g.rdb.Set(ctx, cacheKey, address, geocodeCacheTTL).Err(); err != nil {
		log.Warn().Err(err).Msg("geocoder: failed to cache address")
	}
	return address, nil
}

func (g *Geocoder) fetch(ctx context.Context, lat, lon float64) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, geocodeTimeout)
	defer cancel()

	q := url.Values{}
	q.Set("format", "jsonv2")
	q.Set("lat", fmt.Sprintf("%f", lat))
	q.Set("lon", fmt.Sprintf("%f", lon))
	q.Set("accept-language", "ko")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+"/reverse?"+q.Encode(), nil)
	if err != nil {
		return "", fmt.Errorf("geocoder: create request: %w", err)
	}
	// Nominatim usage policy requires an identifying UA
	req.Header.Set("User-Agent", "restaurant-management-system/1.0")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("geocoder: unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("geocoder: returned %d", resp.StatusCode)
	}

	var result nominatimReverse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("geocoder: decode response: %w", err)
	}
	if result.DisplayName == "" {
		return "", fmt.Errorf("geocoder: no address for %.4f,%.4f", lat, lon)
	}
	return result.DisplayName, nil
}
