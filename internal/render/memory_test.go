package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i474232898/balloon-playback/internal/balloon"
	"github.com/i474232898/balloon-playback/internal/playback"
)

func TestMemorySurface_ReplaceMarkersRejectsOlderGeneration(t *testing.T) {
	s := NewMemorySurface()

	assert.True(t, s.ReplaceMarkers(2, []playback.Marker{{ID: 0}, {ID: 1}}))
	assert.False(t, s.ReplaceMarkers(1, []playback.Marker{{ID: 9}}))

	markers, gen := s.Markers()
	assert.Equal(t, uint64(2), gen)
	require.Len(t, markers, 2)
	assert.Equal(t, balloon.BalloonID(1), markers[1].ID)

	// Same generation re-applied replaces, never appends.
	assert.True(t, s.ReplaceMarkers(2, []playback.Marker{{ID: 5}}))
	markers, _ = s.Markers()
	assert.Len(t, markers, 1)
}

func TestMemorySurface_MarkersAreCopies(t *testing.T) {
	s := NewMemorySurface()
	in := []playback.Marker{{ID: 0, Label: "a"}}
	s.ReplaceMarkers(1, in)
	in[0].Label = "mutated"

	out, _ := s.Markers()
	assert.Equal(t, "a", out[0].Label)
	out[0].Label = "again"

	out2, _ := s.Markers()
	assert.Equal(t, "a", out2[0].Label)
}

func TestMemorySurface_ProjectedPaths(t *testing.T) {
	s := NewMemorySurface()
	s.AddPath(playback.Path{
		ID:     3,
		Color:  "hsl(141, 100%, 50%)",
		Points: []playback.LatLon{{Lat: 0, Lon: 0}, {Lat: 0, Lon: 180}},
	})

	paths := s.Paths()
	require.Len(t, paths, 1)
	assert.Equal(t, balloon.BalloonID(3), paths[0].ID)

	proj := s.ProjectedPaths()
	require.Len(t, proj, 1)
	require.Len(t, proj[0].Coords, 2)
	assert.InDelta(t, 0, proj[0].Coords[0][0], 1e-6)
	assert.InDelta(t, 0, proj[0].Coords[0][1], 1e-6)
	// Half the Web Mercator world width.
	assert.InDelta(t, 20037508.34, proj[0].Coords[1][0], 1)
}

func TestMemorySurface_View(t *testing.T) {
	s := NewMemorySurface()
	_, err := s.View()
	assert.ErrorIs(t, err, ErrNotFound)

	b := balloon.Bounds{South: -1, West: -2, North: 3, East: 4}
	s.FitBounds(b)
	got, err := s.View()
	require.NoError(t, err)
	assert.Equal(t, b, got)
}
