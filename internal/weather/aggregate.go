package weather

import "math"

// HourWind summarizes the wind samples of one rendered hour.
type HourWind struct {
	Samples          int     `json:"samples"`
	Missing          int     `json:"missing"`
	MeanSpeedMS      float64 `json:"meanSpeedMs"`
	MeanDirectionDeg float64 `json:"meanDirectionDeg"`
}

// Summarize averages the present samples. Speed is the arithmetic mean;
// direction is the circular mean, so 350° and 10° average to 0°, not 180°.
func Summarize(samples []*WindSample) HourWind {
	var (
		summary  HourWind
		sumSpeed float64
		sumSin   float64
		sumCos   float64
	)

	for _, s := range samples {
		if s == nil {
			summary.Missing++
			continue
		}
		summary.Samples++
		sumSpeed += s.SpeedMS

		rad := s.DirectionDeg * math.Pi / 180
		sumSin += math.Sin(rad)
		sumCos += math.Cos(rad)
	}

	if summary.Samples == 0 {
		return summary
	}

	n := float64(summary.Samples)
	summary.MeanSpeedMS = sumSpeed / n
	summary.MeanDirectionDeg = normalizeDegrees(math.Atan2(sumSin, sumCos) * 180 / math.Pi)
	return summary
}
