package render

import (
	"errors"
	"sync"

	"github.com/wroge/wgs84"

	"github.com/i474232898/balloon-playback/internal/balloon"
	"github.com/i474232898/balloon-playback/internal/playback"
)

var (
	// ErrNotFound is returned when the requested layer has not been drawn yet.
	ErrNotFound = errors.New("nothing rendered")
)

// ProjectedPath is a path in EPSG:3857 meters, as tile renderers expect.
type ProjectedPath struct {
	ID     balloon.BalloonID `json:"id"`
	Color  string            `json:"color"`
	Coords [][2]float64      `json:"coords"`
}

// MemorySurface is a concurrency-safe in-memory render surface.
type MemorySurface struct {
	mu sync.RWMutex

	paths     []playback.Path
	projected []ProjectedPath

	markers    []playback.Marker
	generation uint64

	view   balloon.Bounds
	framed bool

	toMercator func(a, b, c float64) (float64, float64, float64)
}

// NewMemorySurface creates an empty surface.
func NewMemorySurface() *MemorySurface {
	return &MemorySurface{
		toMercator: wgs84.EPSG().Transform(4326, 3857),
	}
}

// AddPath stores a persistent path overlay.
func (s *MemorySurface) AddPath(p playback.Path) {
	proj := ProjectedPath{
		ID:     p.ID,
		Color:  p.Color,
		Coords: make([][2]float64, 0, len(p.Points)),
	}
	for _, pt := range p.Points {
		x, y, _ := s.toMercator(pt.Lon, pt.Lat, 0)
		proj.Coords = append(proj.Coords, [2]float64{x, y})
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.paths = append(s.paths, p)
	s.projected = append(s.projected, proj)
}

// ReplaceMarkers swaps the marker layer unless generation is older than the
// one currently shown.
func (s *MemorySurface) ReplaceMarkers(generation uint64, markers []playback.Marker) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if generation < s.generation {
		return false
	}

	s.markers = append(make([]playback.Marker, 0, len(markers)), markers...)
	s.generation = generation
	return true
}

// FitBounds records the framed view.
func (s *MemorySurface) FitBounds(b balloon.Bounds) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.view = b
	s.framed = true
}

// Paths returns a copy of the path overlays.
func (s *MemorySurface) Paths() []playback.Path {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return append([]playback.Path(nil), s.paths...)
}

// ProjectedPaths returns a copy of the paths in EPSG:3857.
func (s *MemorySurface) ProjectedPaths() []ProjectedPath {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return append([]ProjectedPath(nil), s.projected...)
}

// Markers returns the current marker layer and the generation that drew it.
func (s *MemorySurface) Markers() ([]playback.Marker, uint64) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return append([]playback.Marker(nil), s.markers...), s.generation
}

// View returns the framed bounds.
func (s *MemorySurface) View() (balloon.Bounds, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.framed {
		return balloon.Bounds{}, ErrNotFound
	}
	return s.view, nil
}
