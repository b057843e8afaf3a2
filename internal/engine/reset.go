package engine

import (
	"context"
	"database/sql"
	"time"

	"dailyquest/internal/storage"
)

type ResetResult struct {
	Reset         bool
	NewCheckpoint time.Time
}

// CheckAndReset classifies whether the 17:00 boundary has been crossed since
// the player's stored checkpoint and, if so, applies the daily reset: today's
// tasks are deleted and the daily counters zeroed. Lifetime XP, gold, elite
// status and inventory are never touched.
//
// A player with no checkpoint yet gets one established now, without
// resetting. The reset statement is guarded on the old checkpoint still
// preceding today's cutoff, so repeated or concurrent checks fire the reset
// at most once per boundary crossing.
func (s *Service) CheckAndReset(ctx context.Context, playerID int64, now time.Time) (*ResetResult, error) {
	// Checkpoints are stored in UTC and truncated to whole seconds: the
	// driver serializes them as text, and a fractional-second value would
	// order lexicographically before a whole-second cutoff in the same
	// second.
	now = now.UTC().Truncate(time.Second)

	p, err := s.requirePlayer(ctx, playerID)
	if err != nil {
		return nil, err
	}

	if p.ResetCheckpoint == nil {
		if _, err := s.players.EstablishCheckpoint(ctx, playerID, now); err != nil {
			return nil, err
		}
		return &ResetResult{Reset: false, NewCheckpoint: now}, nil
	}

	if !s.clock.HasCrossedBoundary(*p.ResetCheckpoint, now) {
		return &ResetResult{Reset: false, NewCheckpoint: *p.ResetCheckpoint}, nil
	}

	cutoff := s.clock.CutoffFor(now).UTC()
	reset := false
	err = storage.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		var err error
		reset, err = s.players.ResetDaily(ctx, tx, playerID, now, cutoff)
		if err != nil || !reset {
			return err
		}
		return s.tasks.DeleteByPlayer(ctx, tx, playerID)
	})
	if err != nil {
		return nil, err
	}
	if !reset {
		// Another checker won the race and already advanced the checkpoint.
		return &ResetResult{Reset: false, NewCheckpoint: now}, nil
	}
	return &ResetResult{Reset: true, NewCheckpoint: now}, nil
}
