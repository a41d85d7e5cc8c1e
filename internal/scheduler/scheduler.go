package scheduler

import (
	"context"
	"errors"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/rs/zerolog"
)

// Stepper advances playback by delta hours.
type Stepper interface {
	Step(ctx context.Context, delta int) error
}

// Scheduler periodically advances the selected hour (autoplay).
type Scheduler struct {
	scheduler *gocron.Scheduler
	stepper   Stepper
	interval  time.Duration
	log       zerolog.Logger
}

// New creates a new Scheduler. An interval of zero disables autoplay.
func New(stepper Stepper, interval time.Duration, log zerolog.Logger) *Scheduler {
	s := gocron.NewScheduler(time.UTC)
	s.SingletonModeAll()
	return &Scheduler{
		scheduler: s,
		stepper:   stepper,
		interval:  interval,
		log:       log.With().Str("component", "autoplay").Logger(),
	}
}

// Start schedules the step job and starts the underlying scheduler.
func (s *Scheduler) Start() error {
	if s.interval <= 0 {
		s.log.Info().Msg("autoplay disabled")
		return nil
	}

	_, err := s.scheduler.Every(s.interval).WaitForSchedule().Do(s.tick)
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	s.log.Info().Dur("interval", s.interval).Msg("autoplay started")
	return nil
}

func (s *Scheduler) tick() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	err := s.stepper.Step(ctx, 1)
	if err != nil && !errors.Is(err, context.Canceled) {
		s.log.Warn().Err(err).Msg("autoplay step failed")
	}
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
