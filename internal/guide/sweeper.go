package guide

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

var sweepLogger zerolog.Logger

func SetLogger(l zerolog.Logger) {
	sweepLogger = l
}

// Sweep removes unapproved drafts whose last update is older than ttl
// and returns how many were dropped. Approved drafts are never swept;
// they only leave the store through Remove.
func (s *MemoryStore) Sweep(ttl time.Duration) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := time.Now().Add(-ttl)
	swept := 0
	for title, draft := range s.byTitle {
		if draft.Approved || draft.Updated.After(cutoff) {
			continue
		}
		delete(s.byID, draft.ID)
		delete(s.byTitle, title)
		swept++
	}
	return swept
}

// StartSweeper schedules a periodic Sweep. A zero ttl matches the
// original behavior of never expiring drafts; no job is scheduled and
// nil is returned.
func StartSweeper(s *MemoryStore, ttl, interval time.Duration) *cron.Cron {
	if ttl <= 0 {
		return nil
	}
	if interval <= 0 {
		interval = ttl
	}

	c := cron.New()
	_, err := c.AddFunc(fmt.Sprintf("@every %s", interval), func() {
		if n := s.Sweep(ttl); n > 0 {
			sweepLogger.Info().Int("swept", n).Dur("ttl", ttl).Msg("Expired idle drafts")
		}
	})
	if err != nil {
		sweepLogger.Error().Err(err).Msg("Failed to schedule draft sweeper")
		return nil
	}
	c.Start()
	return c
}
