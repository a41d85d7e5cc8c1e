package config

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type AppConfig struct {
	Port        string        `validate:"required,numeric"`
	HTTPTimeout time.Duration `validate:"gt=0"`

	// Snapshot source. The hour label is formatted into the %s of the template.
	SnapshotURLTemplate string `validate:"required,startswith=http"`
	SnapshotHours       int    `validate:"min=1,max=24"`

	// Wind enrichment.
	WindEnabled       bool
	WindProvider      string `validate:"oneof=openmeteo weatherapi openweather"`
	WindConcurrency   int    `validate:"min=1,max=64"`
	OpenWeatherAPIKey string
	WeatherAPIKey     string

	// AutoplayInterval advances the selected hour periodically (0 = off).
	AutoplayInterval time.Duration `validate:"gte=0"`

	LogLevel  string `validate:"oneof=trace debug info warn error"`
	LogFormat string `validate:"oneof=console json"`

	// DotEnvErr is why no .env file was loaded, nil when one was. The
	// caller logs it once its logger exists.
	DotEnvErr error `validate:"-"`
}

var validate = validator.New()

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	envErr := godotenv.Load()
	cfg, err := fromViper(newViper())
	if err != nil {
		return nil, err
	}
	cfg.DotEnvErr = envErr
	return cfg, nil
}

func newViper() *viper.Viper {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("PORT", "8080")
	v.SetDefault("HTTP_TIMEOUT", "30s")
	v.SetDefault("SNAPSHOT_URL_TEMPLATE", "https://a.windbornesystems.com/treasure/%s.json")
	v.SetDefault("SNAPSHOT_HOURS", 24)
	v.SetDefault("WIND_ENABLED", false)
	v.SetDefault("WIND_PROVIDER", "openmeteo")
	v.SetDefault("WIND_CONCURRENCY", 8)
	v.SetDefault("OPENWEATHER_API_KEY", "")
	v.SetDefault("WEATHERAPI_API_KEY", "")
	v.SetDefault("AUTOPLAY_INTERVAL", "0s")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "console")

	return v
}

func fromViper(v *viper.Viper) (*AppConfig, error) {
	cfg := &AppConfig{
		Port:                v.GetString("PORT"),
		SnapshotURLTemplate: v.GetString("SNAPSHOT_URL_TEMPLATE"),
		SnapshotHours:       v.GetInt("SNAPSHOT_HOURS"),
		WindEnabled:         v.GetBool("WIND_ENABLED"),
		WindProvider:        v.GetString("WIND_PROVIDER"),
		WindConcurrency:     v.GetInt("WIND_CONCURRENCY"),
		OpenWeatherAPIKey:   v.GetString("OPENWEATHER_API_KEY"),
		WeatherAPIKey:       v.GetString("WEATHERAPI_API_KEY"),
		LogLevel:            v.GetString("LOG_LEVEL"),
		LogFormat:           v.GetString("LOG_FORMAT"),
	}

	var err error
	if cfg.HTTPTimeout, err = time.ParseDuration(v.GetString("HTTP_TIMEOUT")); err != nil {
		return nil, fmt.Errorf("invalid HTTP_TIMEOUT: %w", err)
	}
	if cfg.AutoplayInterval, err = time.ParseDuration(v.GetString("AUTOPLAY_INTERVAL")); err != nil {
		return nil, fmt.Errorf("invalid AUTOPLAY_INTERVAL: %w", err)
	}

	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	switch {
	case cfg.WindEnabled && cfg.WindProvider == "weatherapi" && cfg.WeatherAPIKey == "":
		return nil, fmt.Errorf("WIND_PROVIDER=weatherapi requires WEATHERAPI_API_KEY")
	case cfg.WindEnabled && cfg.WindProvider == "openweather" && cfg.OpenWeatherAPIKey == "":
		return nil, fmt.Errorf("WIND_PROVIDER=openweather requires OPENWEATHER_API_KEY")
	}

	return cfg, nil
}
