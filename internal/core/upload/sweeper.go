package upload

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

// Purger is implemented by providers that can delete old uploads
type Purger interface {
	PurgeOlderThan(cutoff time.Time) (int, error)
}

// Sweeper periodically removes uploads older than maxAge
type Sweeper struct {
	cron   *cron.Cron
	purger Purger
	maxAge time.Duration
	now    func() time.Time
}

// NewSweeper creates a new retention sweeper
func NewSweeper(purger Purger, maxAge time.Duration) *Sweeper {
	return &Sweeper{
		cron:   cron.New(),
		purger: purger,
		maxAge: maxAge,
		now:    time.Now,
	}
}

// Schedule registers the sweep on a cron spec such as "@hourly"
func (s *Sweeper) Schedule(spec string) error {
	_, err := s.cron.AddFunc(spec, func() {
		if _, err := s.Sweep(); err != nil {
			log.Error().Err(err).Msg("upload sweep failed")
		}
	})
	if err != nil {
		return fmt.Errorf("failed to add cron job: %w", err)
	}
	return nil
}

// Sweep deletes expired uploads once
func (s *Sweeper) Sweep() (int, error) {
	cutoff := s.now().Add(-s.maxAge)
	removed, err := s.purger.PurgeOlderThan(cutoff)
	if err != nil {
		return removed, err
	}

	if removed > 0 {
		log.Info().Int("removed", removed).Time("cutoff", cutoff).Msg("expired uploads purged")
	}
	return removed, nil
}

// Start starts the scheduler
func (s *Sweeper) Start() {
	s.cron.Start()
}

// Stop stops the scheduler and waits for a running sweep
func (s *Sweeper) Stop() {
	<-s.cron.Stop().Done()
}
