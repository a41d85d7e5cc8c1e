package weather

import (
	"context"
)

// Provider abstracts a point wind lookup (e.g. Open-Meteo, WeatherAPI, OpenWeatherMap).
type Provider interface {
	Name() string
	Wind(ctx context.Context, p Point) (WindSample, error)
}
