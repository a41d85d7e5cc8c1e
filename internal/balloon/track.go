package balloon

// TrackPoint is one observation attributed to a track.
type TrackPoint struct {
	Observation
	// SeriesIndex is the snapshot the point came from.
	SeriesIndex int `json:"seriesIndex"`
}

// Track is the positional history of one balloon slot.
type Track struct {
	ID     BalloonID    `json:"id"`
	Points []TrackPoint `json:"points"`
}

// Len returns the number of points in the track.
func (t Track) Len() int {
	return len(t.Points)
}

// Tracks holds one track per BalloonID, indexed by the id itself.
type Tracks []Track

// AssembleTracks groups observations by their position in each snapshot.
//
// Position j of every snapshot is appended to track j in series order. A
// snapshot that is shorter than an earlier one leaves the missing slots
// without a point for that hour; a longer one starts new tracks mid-series.
func AssembleTracks(series Series) Tracks {
	var tracks Tracks
	for i, snap := range series {
		for j, obs := range snap.Observations {
			for len(tracks) <= j {
				tracks = append(tracks, Track{ID: BalloonID(len(tracks))})
			}
			tracks[j].Points = append(tracks[j].Points, TrackPoint{
				Observation: obs,
				SeriesIndex: i,
			})
		}
	}
	return tracks
}

// PointCount returns the total number of points over all tracks.
func (ts Tracks) PointCount() int {
	n := 0
	for _, t := range ts {
		n += len(t.Points)
	}
	return n
}
