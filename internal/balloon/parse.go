package balloon

import (
	"encoding/json"
	"errors"
	"fmt"
)

var (
	// ErrInvalidSnapshot is returned when a document is not a list of [lat, lon, alt] triples.
	ErrInvalidSnapshot = errors.New("invalid snapshot document")
)

// ParseSnapshot decodes one hourly document.
//
// The document must be a JSON array whose entries are arrays of exactly three
// numbers. An empty array is a valid snapshot with no observations.
func ParseSnapshot(hour string, data []byte) (HourlySnapshot, error) {
	var entries []json.RawMessage
	if err := json.Unmarshal(data, &entries); err != nil {
		return HourlySnapshot{}, fmt.Errorf("%w: %v", ErrInvalidSnapshot, err)
	}
	// "null" decodes into a nil slice without error.
	if entries == nil {
		return HourlySnapshot{}, fmt.Errorf("%w: not an array", ErrInvalidSnapshot)
	}

	obs := make([]Observation, 0, len(entries))
	for i, raw := range entries {
		var triple []*float64
		if err := json.Unmarshal(raw, &triple); err != nil {
			return HourlySnapshot{}, fmt.Errorf("%w: entry %d: %v", ErrInvalidSnapshot, i, err)
		}
		if len(triple) != 3 {
			return HourlySnapshot{}, fmt.Errorf("%w: entry %d has %d values", ErrInvalidSnapshot, i, len(triple))
		}
		// null decodes into a nil pointer rather than failing.
		for k, v := range triple {
			if v == nil {
				return HourlySnapshot{}, fmt.Errorf("%w: entry %d value %d is null", ErrInvalidSnapshot, i, k)
			}
		}
		obs = append(obs, Observation{Lat: *triple[0], Lon: *triple[1], Alt: *triple[2]})
	}

	return HourlySnapshot{Hour: hour, Observations: obs}, nil
}
