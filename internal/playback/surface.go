package playback

import (
	"context"

	"github.com/i474232898/balloon-playback/internal/balloon"
	"github.com/i474232898/balloon-playback/internal/weather"
)

// Path is the persistent overlay drawn for one track.
type Path struct {
	ID     balloon.BalloonID `json:"id"`
	Color  string            `json:"color"`
	Points []LatLon          `json:"points"`
}

// LatLon is a path vertex.
type LatLon struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Marker is the transient overlay for one observation of the selected hour.
type Marker struct {
	ID    balloon.BalloonID   `json:"id"`
	Lat   float64             `json:"lat"`
	Lon   float64             `json:"lon"`
	Alt   float64             `json:"alt"`
	Color string              `json:"color"`
	Label string              `json:"label"`
	Wind  *weather.WindSample `json:"wind,omitempty"`
}

// Surface is where the controller draws.
//
// ReplaceMarkers swaps the whole marker set in one step. Implementations must
// refuse a generation older than one already applied and report false.
type Surface interface {
	AddPath(p Path)
	ReplaceMarkers(generation uint64, markers []Marker) bool
	FitBounds(b balloon.Bounds)
}

// Enricher looks wind up for a batch of positions. Results line up with the
// input; a nil entry means no data for that position.
type Enricher interface {
	LookupAll(ctx context.Context, points []weather.Point) []*weather.WindSample
}
