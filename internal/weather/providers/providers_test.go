package providers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync/atomic"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i474232898/balloon-playback/internal/common"

	"github.com/i474232898/balloon-playback/internal/weather"
)

func jsonServer(t *testing.T, status int, body string, check func(r *http.Request)) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if check != nil {
			check(r)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestOpenMeteoProvider_Wind(t *testing.T) {
	srv := jsonServer(t, http.StatusOK,
		`{"current_weather": {"temperature": -40.1, "windspeed": 12.5, "winddirection": 250, "time": "2026-10-19T12:00"}}`,
		func(r *http.Request) {
			q := r.URL.Query()
			assert.Equal(t, "10.000000", q.Get("latitude"))
			assert.Equal(t, "20.000000", q.Get("longitude"))
			assert.Equal(t, "ms", q.Get("windspeed_unit"))
		})

	p := NewOpenMeteoProvider(srv.Client()).WithBaseURL(srv.URL)
	got, err := p.Wind(context.Background(), weather.Point{Lat: 10, Lon: 20})
	require.NoError(t, err)

	assert.Equal(t, weather.WindSample{SpeedMS: 12.5, DirectionDeg: 250, ProviderName: "openmeteo"}, got)
}

func TestOpenMeteoProvider_Malformed(t *testing.T) {
	for name, body := range map[string]string{
		"missing object":    `{"hourly": {}}`,
		"missing direction": `{"current_weather": {"windspeed": 3}}`,
		"not json":          `<html></html>`,
	} {
		t.Run(name, func(t *testing.T) {
			srv := jsonServer(t, http.StatusOK, body, nil)
			_, err := NewOpenMeteoProvider(srv.Client()).WithBaseURL(srv.URL).Wind(context.Background(), weather.Point{})
			assert.ErrorIs(t, err, errMalformed)
		})
	}
}

func TestOpenMeteoProvider_HTTPError(t *testing.T) {
	srv := jsonServer(t, http.StatusBadRequest, `{"error": true}`, nil)
	_, err := NewOpenMeteoProvider(srv.Client()).WithBaseURL(srv.URL).Wind(context.Background(), weather.Point{})
	assert.Error(t, err)
}

func TestWeatherAPIProvider_Wind(t *testing.T) {
	srv := jsonServer(t, http.StatusOK,
		`{"current": {"wind_kph": 36.0, "wind_degree": 90}}`,
		func(r *http.Request) {
			assert.Equal(t, "secret", r.URL.Query().Get("key"))
			assert.Equal(t, "10.000000,20.000000", r.URL.Query().Get("q"))
		})

	p := NewWeatherAPIProvider(srv.Client(), "secret").WithBaseURL(srv.URL)
	got, err := p.Wind(context.Background(), weather.Point{Lat: 10, Lon: 20})
	require.NoError(t, err)

	assert.InDelta(t, 10.0, got.SpeedMS, 1e-9)
	assert.Equal(t, 90.0, got.DirectionDeg)
	assert.Equal(t, "weatherapi", got.ProviderName)
}

func TestWeatherAPIProvider_RequiresKey(t *testing.T) {
	_, err := NewWeatherAPIProvider(http.DefaultClient, "").Wind(context.Background(), weather.Point{})
	assert.ErrorContains(t, err, "api key")
}

func TestOpenWeatherProvider_Wind(t *testing.T) {
	srv := jsonServer(t, http.StatusOK,
		`{"wind": {"speed": 7.2, "deg": 315, "gust": 9}}`,
		func(r *http.Request) {
			assert.Equal(t, "k", r.URL.Query().Get("appid"))
			assert.Equal(t, "-33.500000", r.URL.Query().Get("lat"))
		})

	p := NewOpenWeatherProvider(srv.Client(), "k").WithBaseURL(srv.URL)
	got, err := p.Wind(context.Background(), weather.Point{Lat: -33.5, Lon: 151})
	require.NoError(t, err)
	assert.Equal(t, weather.WindSample{SpeedMS: 7.2, DirectionDeg: 315, ProviderName: "openweathermap"}, got)

	srv = jsonServer(t, http.StatusOK, `{"main": {"temp": 3}}`, nil)
	_, err = NewOpenWeatherProvider(srv.Client(), "k").WithBaseURL(srv.URL).Wind(context.Background(), weather.Point{})
	assert.ErrorIs(t, err, errMalformed)
}

func TestNew(t *testing.T) {
	p, err := New("", http.DefaultClient, Keys{})
	require.NoError(t, err)
	assert.Equal(t, "openmeteo", p.Name())

	_, err = New(WeatherAPI, http.DefaultClient, Keys{})
	assert.Error(t, err)

	p, err = New(OpenWeather, http.DefaultClient, Keys{OpenWeather: "k"})
	require.NoError(t, err)
	assert.Equal(t, "openweathermap", p.Name())

	_, err = New("darksky", http.DefaultClient, Keys{})
	assert.Error(t, err)
}

func TestOpenMeteoProvider_FailuresDoNotStarveBatch(t *testing.T) {
	for _, status := range []int{http.StatusBadRequest, http.StatusBadGateway} {
		t.Run(strconv.Itoa(status), func(t *testing.T) {
			var calls atomic.Int32
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				calls.Add(1)
				lat, _ := strconv.ParseFloat(r.URL.Query().Get("latitude"), 64)
				w.Header().Set("Content-Type", "application/json")
				if lat < 6 {
					w.WriteHeader(status)
					w.Write([]byte(`{"error": true}`))
					return
				}
				w.Write([]byte(`{"current_weather": {"windspeed": 7, "winddirection": 90}}`))
			}))
			t.Cleanup(srv.Close)

			p := NewOpenMeteoProvider(srv.Client()).WithBaseURL(srv.URL)
			e := weather.NewEnricher(p, 1, zerolog.Nop())

			failing := make([]weather.Point, 6)
			for i := range failing {
				failing[i] = weather.Point{Lat: float64(i)}
			}
			healthy := make([]weather.Point, 6)
			for i := range healthy {
				healthy[i] = weather.Point{Lat: float64(10 + i)}
			}

			for _, s := range e.LookupAll(context.Background(), failing) {
				assert.Nil(t, s)
			}
			got := e.LookupAll(context.Background(), healthy)

			assert.Equal(t, int32(12), calls.Load(), "every position gets one lookup")
			for i, s := range got {
				require.NotNil(t, s, "healthy balloon %d has no wind", i)
				assert.Equal(t, 7.0, s.SpeedMS)
			}
		})
	}
}

func TestBreakerSuccess(t *testing.T) {
	assert.True(t, breakerSuccess(nil))
	assert.True(t, breakerSuccess(fmt.Errorf("%w: 404", common.ErrUnexpected)))
	assert.True(t, breakerSuccess(context.Canceled))
	assert.False(t, breakerSuccess(fmt.Errorf("%w: 503", common.ErrServerError)))
	assert.False(t, breakerSuccess(common.ErrRateLimited))
	assert.False(t, breakerSuccess(errors.New("connection refused")))
}
