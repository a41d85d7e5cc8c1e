package weather

import (
	"fmt"
	"math"
)

// Point is a lat/lon position to look wind up for.
type Point struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// WindSample is the point-in-time wind at one position.
type WindSample struct {
	SpeedMS      float64 `json:"speedMs"`
	DirectionDeg float64 `json:"directionDeg"`
	ProviderName string  `json:"provider,omitempty"`
}

// Label renders the sample the way marker labels show it.
func (w WindSample) Label() string {
	return fmt.Sprintf("Wind: %.1f m/s @ %.0f°", w.SpeedMS, normalizeDegrees(w.DirectionDeg))
}

func normalizeDegrees(d float64) float64 {
	d = math.Mod(d, 360)
	if d < 0 {
		d += 360
	}
	return d
}
