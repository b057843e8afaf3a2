package engine

import "context"

type EliteResult struct {
	Awarded bool
	// Holders is the system-wide elite count after the attempt.
	Holders int
}

// TryAwardElite grants one of the EliteSlots first-to-finish positions. The
// holder count check and the set run as one serialized statement in the
// store, so concurrent qualifiers racing for the last slot cannot both win
// and the holder count can never exceed EliteSlots. Already-elite players and
// full slots are quiet no-ops, not errors.
func (s *Service) TryAwardElite(ctx context.Context, playerID int64) (*EliteResult, error) {
	p, err := s.requirePlayer(ctx, playerID)
	if err != nil {
		return nil, err
	}

	if p.EliteAwardedAt == nil {
		awarded, err := s.players.AwardElite(ctx, playerID, s.now(), EliteSlots)
		if err != nil {
			return nil, err
		}
		if awarded {
			holders, err := s.players.CountElite(ctx)
			if err != nil {
				return nil, err
			}
			return &EliteResult{Awarded: true, Holders: holders}, nil
		}
	}

	holders, err := s.players.CountElite(ctx)
	if err != nil {
		return nil, err
	}
	return &EliteResult{Awarded: false, Holders: holders}, nil
}
