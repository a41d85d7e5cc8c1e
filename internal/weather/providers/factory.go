package providers

import (
	"fmt"
	"net/http"

	"github.com/i474232898/balloon-playback/internal/weather"
)

// Names accepted by New.
const (
	OpenMeteo   = "openmeteo"
	WeatherAPI  = "weatherapi"
	OpenWeather = "openweather"
)

// Keys carries the API keys of the keyed providers.
type Keys struct {
	OpenWeather string
	WeatherAPI  string
}

// New returns the provider registered under name.
func New(name string, client *http.Client, keys Keys) (weather.Provider, error) {
	switch name {
	case "", OpenMeteo:
		return NewOpenMeteoProvider(client), nil
	case WeatherAPI:
		if keys.WeatherAPI == "" {
			return nil, fmt.Errorf("provider %q requires WEATHERAPI_API_KEY", name)
		}
		return NewWeatherAPIProvider(client, keys.WeatherAPI), nil
	case OpenWeather:
		if keys.OpenWeather == "" {
			return nil, fmt.Errorf("provider %q requires OPENWEATHER_API_KEY", name)
		}
		return NewOpenWeatherProvider(client, keys.OpenWeather), nil
	default:
		return nil, fmt.Errorf("unknown wind provider %q", name)
	}
}
