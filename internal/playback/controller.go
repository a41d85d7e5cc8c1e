package playback

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/i474232898/balloon-playback/internal/balloon"
	"github.com/i474232898/balloon-playback/internal/common"
	"github.com/i474232898/balloon-playback/internal/weather"
)

var (
	// ErrHourOutOfRange is returned for an index outside the series. Nothing is drawn.
	ErrHourOutOfRange = errors.New("hour index out of range")
	// ErrStaleSelection is returned when a newer selection started before this one finished.
	ErrStaleSelection = errors.New("selection superseded")
)

// State is the playback state exposed to the control surface.
type State struct {
	Hour       int               `json:"hour"`
	Min        int               `json:"min"`
	Max        int               `json:"max"`
	Label      string            `json:"label"`
	SourceHour string            `json:"sourceHour"`
	Generation uint64            `json:"generation"`
	Applied    uint64            `json:"applied"`
	Markers    int               `json:"markers"`
	Enriched   bool              `json:"enriched"`
	Wind       *weather.HourWind `json:"wind,omitempty"`
}

// Controller maps the selected hour to what is drawn on the surface.
//
// Every SelectHour call opens a new generation and cancels the one before it.
// Only the newest generation may replace the marker set, so a slow selection
// can never overwrite a newer one.
type Controller struct {
	series   balloon.Series
	tracks   balloon.Tracks
	surface  Surface
	enricher Enricher
	log      zerolog.Logger

	historyOnce sync.Once

	mu         sync.Mutex
	hour       int
	generation uint64
	applied    uint64
	markers    int
	wind       *weather.HourWind
	cancel     context.CancelFunc
}

// NewController creates a controller positioned on the most recent hour.
// A nil enricher disables wind lookups.
func NewController(series balloon.Series, tracks balloon.Tracks, surface Surface, enricher Enricher, log zerolog.Logger) *Controller {
	return &Controller{
		series:   series,
		tracks:   tracks,
		surface:  surface,
		enricher: enricher,
		log:      log.With().Str("component", "playback").Logger(),
		hour:     series.Last(),
	}
}

// Start draws the static layers, frames the view and selects the last hour.
func (c *Controller) Start(ctx context.Context) error {
	c.RenderFullHistory()
	c.FitToAllTracks()
	return c.SelectHour(ctx, c.series.Last())
}

// Len returns the number of selectable hours.
func (c *Controller) Len() int {
	return len(c.series)
}

// RenderFullHistory draws one path per track. Later calls do nothing.
func (c *Controller) RenderFullHistory() {
	c.historyOnce.Do(func() {
		for _, t := range c.tracks {
			points := make([]LatLon, 0, len(t.Points))
			for _, p := range t.Points {
				points = append(points, LatLon{Lat: p.Lat, Lon: p.Lon})
			}
			c.surface.AddPath(Path{
				ID:     t.ID,
				Color:  t.ID.Color(),
				Points: points,
			})
		}
		c.log.Debug().Int("paths", len(c.tracks)).Msg("full history drawn")
	})
}

// FitToAllTracks frames the view on every point of every track.
func (c *Controller) FitToAllTracks() balloon.Bounds {
	b := c.tracks.Bounds()
	c.surface.FitBounds(b)
	return b
}

// SelectHour draws the markers for series index h.
//
// With an enricher, all wind lookups for the hour run as one batch and the
// markers are applied together once the batch is done. ErrStaleSelection
// means a later call took over and nothing was applied.
func (c *Controller) SelectHour(ctx context.Context, h int) error {
	if !c.series.Valid(h) {
		return fmt.Errorf("%w: %d not in [0, %d]", ErrHourOutOfRange, h, c.series.Last())
	}

	c.mu.Lock()
	if c.cancel != nil {
		c.cancel()
	}
	c.generation++
	gen := c.generation
	c.hour = h
	selCtx, cancel := context.WithCancel(ctx)
	c.cancel = cancel
	c.mu.Unlock()
	defer cancel()

	snap := c.series[h]
	markers := make([]Marker, 0, snap.Len())
	for i, obs := range snap.Observations {
		id := balloon.BalloonID(i)
		markers = append(markers, Marker{
			ID:    id,
			Lat:   obs.Lat,
			Lon:   obs.Lon,
			Alt:   obs.Alt,
			Color: id.Color(),
		})
	}

	var summary *weather.HourWind
	if c.enricher != nil && len(markers) > 0 {
		points := make([]weather.Point, len(markers))
		for i, m := range markers {
			points[i] = weather.Point{Lat: m.Lat, Lon: m.Lon}
		}
		samples := c.enricher.LookupAll(selCtx, points)
		for i := range markers {
			if i < len(samples) {
				markers[i].Wind = samples[i]
			}
		}
		s := weather.Summarize(samples)
		summary = &s
	}

	for i := range markers {
		markers[i].Label = markerLabel(markers[i])
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if gen != c.generation {
		c.log.Debug().Uint64("generation", gen).Int("hour", h).Msg("discarding superseded selection")
		return ErrStaleSelection
	}
	if !c.surface.ReplaceMarkers(gen, markers) {
		return ErrStaleSelection
	}
	c.applied = gen
	c.markers = len(markers)
	c.wind = summary

	c.log.Debug().
		Uint64("generation", gen).
		Int("hour", h).
		Str("source_hour", snap.Hour).
		Int("markers", len(markers)).
		Msg("hour rendered")
	return nil
}

// Step moves the selection by delta, wrapping around the series.
func (c *Controller) Step(ctx context.Context, delta int) error {
	n := len(c.series)
	if n == 0 {
		return ErrHourOutOfRange
	}
	c.mu.Lock()
	next := ((c.hour+delta)%n + n) % n
	c.mu.Unlock()
	return c.SelectHour(ctx, next)
}

// State returns a copy of the current playback state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	st := State{
		Hour:       c.hour,
		Min:        0,
		Max:        c.series.Last(),
		Label:      fmt.Sprintf("Hour: %d", c.hour),
		Generation: c.generation,
		Applied:    c.applied,
		Markers:    c.markers,
		Enriched:   c.enricher != nil,
	}
	if c.series.Valid(c.hour) {
		st.SourceHour = c.series[c.hour].Hour
	}
	if c.wind != nil {
		w := *c.wind
		st.Wind = &w
	}
	return st
}

func markerLabel(m Marker) string {
	lines := []string{
		"Balloon " + m.ID.String(),
		"Lat: " + common.Coord(m.Lat),
		"Lon: " + common.Coord(m.Lon),
	}
	if m.Wind != nil {
		lines = append(lines, m.Wind.Label())
	}
	return strings.Join(lines, "\n")
}
