// Package cleanup runs the sensor data retention sweep. Raw readings are
// high volume and only the recent window feeds the dashboards, so anything
// past the retention period is deleted on a fixed interval.
package cleanup

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
)

// Pruner deletes readings older than the cutoff and reports how many rows
// went. The sensor repository satisfies it.
type Pruner interface {
	PruneBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

type Service struct {
	pruner    Pruner
	interval  time.Duration
	retention time.Duration
	stopChan  chan struct{}
}

func NewService(pruner Pruner, interval, retention time.Duration) *Service {
	return &Service{
		pruner:    pruner,
		interval:  interval,
		retention: retention,
		stopChan:  make(chan struct{}),
	}
}

// Start blocks, sweeping once immediately and then on every interval until
// Stop is called. Run it in its own goroutine.
func (s *Service) Start() {
	log.Info().
		Dur("interval", s.interval).
		Dur("retention", s.retention).
		Msg("starting sensor retention sweep")

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.sweep()

	for {
		select {
		case <-ticker.C:
			s.sweep()
		case <-s.stopChan:
			log.Info().Msg("stopping sensor retention sweep")
			return
		}
	}
}

func (s *Service) Stop() {
	close(s.stopChan)
}

func (s *Service) sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	removed, err := s.pruner.PruneBefore(ctx, time.Now().UTC().Add(-s.retention))
	if err != nil {
		log.Error().Err(err).Msg("sensor retention sweep failed")
		return
	}
	if removed > 0 {
		log.Info().Int64("rows", removed).Msg("pruned expired sensor readings")
	}
}
