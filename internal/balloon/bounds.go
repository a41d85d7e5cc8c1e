package balloon

import (
	geom "github.com/peterstace/simplefeatures/geom"
)

// Bounds is a lat/lon bounding box. Empty is set when no point contributed.
type Bounds struct {
	South float64 `json:"south"`
	West  float64 `json:"west"`
	North float64 `json:"north"`
	East  float64 `json:"east"`
	Empty bool    `json:"empty"`
}

// Contains reports whether the point lies inside the box, edges included.
func (b Bounds) Contains(lat, lon float64) bool {
	if b.Empty {
		return false
	}
	return lat >= b.South && lat <= b.North && lon >= b.West && lon <= b.East
}

// Envelope returns the smallest envelope (x = lon, y = lat) holding every
// point of every track.
func (ts Tracks) Envelope() geom.Envelope {
	var env geom.Envelope
	for _, t := range ts {
		for _, p := range t.Points {
			// Non-finite coordinates cannot be framed and are left out.
			ext, err := env.ExtendToIncludeXY(geom.XY{X: p.Lon, Y: p.Lat})
			if err != nil {
				continue
			}
			env = ext
		}
	}
	return env
}

// Bounds returns the exact bounding box of all track points, no margin.
func (ts Tracks) Bounds() Bounds {
	minXY, maxXY, ok := ts.Envelope().MinMaxXYs()
	if !ok {
		return Bounds{Empty: true}
	}
	return Bounds{
		South: minXY.Y,
		West:  minXY.X,
		North: maxXY.Y,
		East:  maxXY.X,
	}
}
