package balloon

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/i474232898/balloon-playback/internal/common"
)

// MaxHours is the length of the rolling window.
const MaxHours = 24

// ErrNoSnapshots is returned when not a single hour could be retrieved.
var ErrNoSnapshots = errors.New("no snapshots retrievable")

// Source retrieves the raw document for one hour label.
type Source interface {
	Fetch(ctx context.Context, hour string) ([]byte, error)
}

// Fetcher walks the hourly documents and keeps the ones that parse.
type Fetcher struct {
	source Source
	hours  int
	log    zerolog.Logger
}

// NewFetcher creates a Fetcher over the first hours labels (clamped to 1..24).
func NewFetcher(source Source, hours int, log zerolog.Logger) *Fetcher {
	if hours <= 0 || hours > MaxHours {
		hours = MaxHours
	}
	return &Fetcher{
		source: source,
		hours:  hours,
		log:    log.With().Str("component", "fetcher").Logger(),
	}
}

// FetchSeries retrieves hours "00" onwards strictly one after another.
//
// Unreachable and corrupt hours are logged and left out, so later snapshots
// move down one index each. ErrNoSnapshots is the only error returned, apart
// from the context being done.
func (f *Fetcher) FetchSeries(ctx context.Context) (Series, error) {
	series := make(Series, 0, f.hours)

	for _, hour := range common.HourLabels(f.hours) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		data, err := f.source.Fetch(ctx, hour)
		if err != nil {
			f.log.Warn().Err(err).Str("hour", hour).Msg("skipping unreachable snapshot")
			continue
		}

		snap, err := ParseSnapshot(hour, data)
		if err != nil {
			f.log.Warn().Err(err).Str("hour", hour).Msg("skipping corrupted snapshot")
			continue
		}

		series = append(series, snap)
	}

	if len(series) == 0 {
		return nil, ErrNoSnapshots
	}

	f.log.Info().
		Int("attempted", f.hours).
		Int("retrieved", len(series)).
		Strs("hours", series.Hours()).
		Msg("snapshot series loaded")

	return series, nil
}
