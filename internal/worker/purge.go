// Package worker runs the background retention purge: posts that were never
// published and have aged past the retention window are hard-deleted.
package worker

import (
	"context"
	"time"

	"github.com/inkwell/inkwell-backend/internal/repository"
	"github.com/inkwell/inkwell-backend/pkg/logger"
)

// Purger periodically hard-deletes expired unpublished posts. Soft-deleted
// published posts are never purged; their slugs stay reserved forever.
type Purger struct {
	repo      repository.BlogRepository
	interval  time.Duration
	retention time.Duration
}

// NewPurger creates a Purger. Zero durations fall back to a daily sweep
// with a 30-day retention window.
func NewPurger(repo repository.BlogRepository, interval, retention time.Duration) *Purger {
	if interval <= 0 {
		interval = 24 * time.Hour
	}
	if retention <= 0 {
		retention = 30 * 24 * time.Hour
	}
	return &Purger{repo: repo, interval: interval, retention: retention}
}

// Start runs the purge loop until the context is cancelled.
// One sweep runs immediately on startup.
func (p *Purger) Start(ctx context.Context) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	logger.GetLogger().Info().
		Dur("interval", p.interval).
		Dur("retention", p.retention).
		Msg("retention purge started")

	p.RunOnce()

	for {
		select {
		case <-ctx.Done():
			logger.GetLogger().Info().Msg("retention purge stopped")
			return
		case <-ticker.C:
			p.RunOnce()
		}
	}
}

// RunOnce performs a single purge sweep
func (p *Purger) RunOnce() {
	cutoff := time.Now().Add(-p.retention)
	deleted, err := p.repo.PurgeUnpublishedBefore(cutoff)
	if err != nil {
		logger.GetLogger().Error().Err(err).Msg("retention purge failed")
		return
	}
	if deleted > 0 {
		logger.GetLogger().Info().
			Int64("deleted", deleted).
			Time("cutoff", cutoff).
			Msg("purged expired unpublished blogs")
	}
}
