package providers

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/i474232898/weather-now/internal/weather"
)

// DefaultWeatherstackURL is the plain-HTTP endpoint the free weatherstack plan serves.
const DefaultWeatherstackURL = "http://api.weatherstack.com"

// WeatherstackProvider implements weather.Fetcher for the weatherstack
// current-conditions API.
type WeatherstackProvider struct {
	name    string
	baseURL string
	client  *http.Client
}

// NewWeatherstackProvider creates a provider. An empty baseURL selects
// DefaultWeatherstackURL.
func NewWeatherstackProvider(client *http.Client, baseURL string) *WeatherstackProvider {
	if baseURL == "" {
		baseURL = DefaultWeatherstackURL
	}
	return &WeatherstackProvider{
		name:    "weatherstack",
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  client,
	}
}

// FetchCurrentConditions issues one GET for the coordinate and decodes the
// reply into weather.Conditions.
func (p *WeatherstackProvider) FetchCurrentConditions(ctx context.Context, latitude, longitude float64, apiKey string) (weather.Conditions, error) {
	if apiKey == "" {
		return weather.Conditions{}, weather.ErrMissingAPIKey
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.currentURL(latitude, longitude, apiKey), nil)
	if err != nil {
		return weather.Conditions{}, fmt.Errorf("build %s request: %w", p.name, err)
	}

	body, err := doRequest(p.client, req)
	if err != nil {
		return weather.Conditions{}, fmt.Errorf("%s current conditions: %w", p.name, err)
	}

	conditions, err := DecodeConditions(body)
	if err != nil {
		return weather.Conditions{}, fmt.Errorf("%s current conditions: %w", p.name, err)
	}
	return conditions, nil
}

// currentURL embeds the key and coordinates as-is. They are not query
// escaped, so a key containing '&' or '#' changes the request.
func (p *WeatherstackProvider) currentURL(latitude, longitude float64, apiKey string) string {
	return fmt.Sprintf("%s/current?access_key=%s&query=%s,%s",
		p.baseURL, apiKey, formatCoordinate(latitude), formatCoordinate(longitude))
}
