package balloon

import "fmt"

const hueStep = 47

// Hue returns the deterministic hue (0..359) for a balloon slot.
func (id BalloonID) Hue() int {
	h := (int(id) * hueStep) % 360
	if h < 0 {
		h += 360
	}
	return h
}

// Color returns the CSS color shared by a slot's path and markers.
func (id BalloonID) Color() string {
	return fmt.Sprintf("hsl(%d, 100%%, 50%%)", id.Hue())
}
