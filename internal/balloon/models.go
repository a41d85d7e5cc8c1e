package balloon

import "fmt"

// Observation is a single balloon fix as reported upstream.
type Observation struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
	Alt float64 `json:"alt"`
}

// BalloonID is the position of an observation within its hourly snapshot.
//
// It is NOT a durable identifier. The upstream documents carry no balloon
// identity, so the same BalloonID in two different hours is only assumed to be
// the same balloon. When the fleet size changes between hours that assumption
// breaks and a track may splice together unrelated balloons.
type BalloonID int

// String renders the id the way labels show it.
func (id BalloonID) String() string {
	return fmt.Sprintf("#%d", int(id))
}

// HourlySnapshot is the fleet state for one hour, ordered by position.
type HourlySnapshot struct {
	// Hour is the source label ("00".."23") the snapshot was retrieved from.
	Hour         string        `json:"hour"`
	Observations []Observation `json:"observations"`
}

// Len returns the number of observations in the snapshot.
func (s HourlySnapshot) Len() int {
	return len(s.Observations)
}

// Series is the ordered list of successfully retrieved snapshots.
//
// Series index i is NOT hour-of-day i: a skipped hour shifts every later
// snapshot down by one. Use HourlySnapshot.Hour when the source hour matters.
type Series []HourlySnapshot

// Valid reports whether h is a selectable index of the series.
func (s Series) Valid(h int) bool {
	return h >= 0 && h < len(s)
}

// Last returns the index of the most recent snapshot, or -1 when empty.
func (s Series) Last() int {
	return len(s) - 1
}

// Hours returns the source hour labels in series order.
func (s Series) Hours() []string {
	hours := make([]string, 0, len(s))
	for _, snap := range s {
		hours = append(hours, snap.Hour)
	}
	return hours
}
