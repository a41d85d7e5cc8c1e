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

// OpenMeteoProvider implements the weather.Provider interface for Open-Meteo.
// It needs no API key.
type OpenMeteoProvider struct {
	name    string
	baseURL string
	httpCfg common.HTTPClientConfig
	circuit *gobreaker.CircuitBreaker
}

func NewOpenMeteoProvider(client *http.Client) *OpenMeteoProvider {
	return &OpenMeteoProvider{
		name:    "openmeteo",
		baseURL: "https://api.open-meteo.com/v1/forecast",
		httpCfg: defaultHTTPConfig(client),
		circuit: newBreaker("openmeteo"),
	}
}

// WithBaseURL points the provider at another endpoint.
func (p *OpenMeteoProvider) WithBaseURL(u string) *OpenMeteoProvider {
	p.baseURL = u
	return p
}

func (p *OpenMeteoProvider) Name() string {
	return p.name
}

func (p *OpenMeteoProvider) Wind(ctx context.Context, pt weather.Point) (weather.WindSample, error) {
	values := url.Values{}
	values.Set("latitude", fmt.Sprintf("%f", pt.Lat))
	values.Set("longitude", fmt.Sprintf("%f", pt.Lon))
	values.Set("current_weather", "true")
	values.Set("windspeed_unit", "ms")

	var payload struct {
		CurrentWeather *struct {
			WindSpeed     *float64 `json:"windspeed"`
			WindDirection *float64 `json:"winddirection"`
		} `json:"current_weather"`
	}

	u := fmt.Sprintf("%s?%s", p.baseURL, values.Encode())
	if err := getJSON(ctx, p.httpCfg, p.circuit, u, &payload); err != nil {
		return weather.WindSample{}, err
	}

	cw := payload.CurrentWeather
	if cw == nil || cw.WindSpeed == nil || cw.WindDirection == nil {
		return weather.WindSample{}, fmt.Errorf("%w: current_weather wind fields missing", errMalformed)
	}

	return weather.WindSample{
		SpeedMS:      *cw.WindSpeed,
		DirectionDeg: *cw.WindDirection,
		ProviderName: p.name,
	}, nil
}
