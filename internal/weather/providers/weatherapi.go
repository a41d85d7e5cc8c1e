package providers

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/sony/gobreaker"

	"github.com/i474232898/balloon-playback/internal/common"
	"github.com/i474232898/balloon-playback/internal/weather"
)

// WeatherAPIProvider implements the weather.Provider interface for WeatherAPI.com.
type WeatherAPIProvider struct {
	name    string
	apiKey  string
	baseURL string
	httpCfg common.HTTPClientConfig
	circuit *gobreaker.CircuitBreaker
}

func NewWeatherAPIProvider(client *http.Client, apiKey string) *WeatherAPIProvider {
	return &WeatherAPIProvider{
		name:    "weatherapi",
		apiKey:  apiKey,
		baseURL: "https://api.weatherapi.com/v1/current.json",
		httpCfg: defaultHTTPConfig(client),
		circuit: newBreaker("weatherapi"),
	}
}

// WithBaseURL points the provider at another endpoint.
func (p *WeatherAPIProvider) WithBaseURL(u string) *WeatherAPIProvider {
	p.baseURL = u
	return p
}

func (p *WeatherAPIProvider) Name() string {
	return p.name
}

func (p *WeatherAPIProvider) Wind(ctx context.Context, pt weather.Point) (weather.WindSample, error) {
	if p.apiKey == "" {
		return weather.WindSample{}, fmt.Errorf("weatherapi api key is not configured")
	}

	values := url.Values{}
	values.Set("key", p.apiKey)
	// WeatherAPI uses "q" for location; it accepts "lat,lon".
	values.Set("q", fmt.Sprintf("%f,%f", pt.Lat, pt.Lon))

	var payload struct {
		Current *struct {
			WindKph    *float64 `json:"wind_kph"`
			WindDegree *float64 `json:"wind_degree"`
		} `json:"current"`
	}

	u := fmt.Sprintf("%s?%s", p.baseURL, values.Encode())
	if err := getJSON(ctx, p.httpCfg, p.circuit, u, &payload); err != nil {
		return weather.WindSample{}, err
	}

	cur := payload.Current
	if cur == nil || cur.WindKph == nil || cur.WindDegree == nil {
		return weather.WindSample{}, fmt.Errorf("%w: current wind fields missing", errMalformed)
	}

	// Convert wind from kph to m/s.
	return weather.WindSample{
		SpeedMS:      *cur.WindKph / 3.6,
		DirectionDeg: *cur.WindDegree,
		ProviderName: p.name,
	}, nil
}
