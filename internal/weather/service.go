package weather

import (
	"context"
	"sync"

	"github.com/rs/zerolog"
)

// DefaultConcurrency bounds the lookups in flight for one batch.
const DefaultConcurrency = 8

// Enricher attaches wind data to positions, one provider call per position.
// Failures are logged and reported as a nil sample, never as an error.
type Enricher struct {
	provider    Provider
	concurrency int
	log         zerolog.Logger
}

// NewEnricher creates a new Enricher.
func NewEnricher(provider Provider, concurrency int, log zerolog.Logger) *Enricher {
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}
	return &Enricher{
		provider:    provider,
		concurrency: concurrency,
		log:         log.With().Str("component", "enricher").Logger(),
	}
}

// Lookup performs exactly one provider call for p. It returns nil on any failure.
func (e *Enricher) Lookup(ctx context.Context, p Point) *WindSample {
	if e == nil || e.provider == nil {
		return nil
	}

	sample, err := e.provider.Wind(ctx, p)
	if err != nil {
		// Cancellation is the normal fate of a superseded selection.
		if ctx.Err() != nil {
			e.log.Debug().Err(err).Msg("wind lookup cancelled")
			return nil
		}
		e.log.Warn().
			Err(err).
			Str("provider", e.provider.Name()).
			Float64("lat", p.Lat).
			Float64("lon", p.Lon).
			Msg("wind lookup failed")
		return nil
	}
	if sample.ProviderName == "" {
		sample.ProviderName = e.provider.Name()
	}
	return &sample
}

// LookupAll issues one lookup per point concurrently and waits for all of them.
// The result has the same length and order as points; failed lookups are nil.
func (e *Enricher) LookupAll(ctx context.Context, points []Point) []*WindSample {
	results := make([]*WindSample, len(points))
	if len(points) == 0 {
		return results
	}

	var (
		wg  sync.WaitGroup
		sem = make(chan struct{}, e.concurrency)
	)

	for i, p := range points {
		wg.Add(1)
		go func() {
			defer wg.Done()

			select {
			case sem <- struct{}{}:
			case <-ctx.Done():
				return
			}
			defer func() { <-sem }()

			// Each goroutine owns its own slot; no lock needed.
			results[i] = e.Lookup(ctx, p)
		}()
	}

	wg.Wait()
	return results
}
