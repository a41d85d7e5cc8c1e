package common

import (
	"fmt"
	"strconv"
)

// HourLabels returns the zero-padded labels "00", "01", ... for n hours.
func HourLabels(n int) []string {
	labels := make([]string, 0, n)
	for i := 0; i < n; i++ {
		labels = append(labels, fmt.Sprintf("%02d", i))
	}
	return labels
}

// Coord formats a coordinate with two decimals.
func Coord(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
