package engine

import (
	"context"
	"database/sql"

	"dailyquest/internal/storage"
)

type CompleteResult struct {
	TaskID       int64
	Player       *storage.Player
	AlreadyDone  bool // repeat completion, nothing changed
	Capped       bool // task marked done but reward withheld (daily cap)
	EliteAwarded bool // this completion won an elite slot
}

// CompleteTask marks a task done and grants the reward. Completing an already
// done task is a no-op returning current state. Past the daily cap the task
// is still marked done (the click must stick) but no reward is granted.
//
// The mark and the reward commit in one transaction; the reward itself is a
// guarded increment, so two racing completions cannot double-grant. The elite
// follow-up runs only after that commit, so a failed allocation never blocks
// the reward.
func (s *Service) CompleteTask(ctx context.Context, playerID, taskID int64) (*CompleteResult, error) {
	if _, err := s.requireTask(ctx, playerID, taskID); err != nil {
		return nil, err
	}

	now := s.now()
	var marked, capped bool
	err := storage.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		var err error
		marked, err = s.tasks.MarkDone(ctx, tx, taskID, playerID, now)
		if err != nil || !marked {
			return err
		}
		rewarded, err := s.players.ApplyTaskReward(ctx, tx, playerID, TaskRewardGold, TaskRewardXP, DailyTaskCap)
		if err != nil {
			return err
		}
		capped = !rewarded
		return nil
	})
	if err != nil {
		return nil, err
	}

	p, err := s.requirePlayer(ctx, playerID)
	if err != nil {
		return nil, err
	}
	if !marked {
		return &CompleteResult{TaskID: taskID, Player: p, AlreadyDone: true}, nil
	}

	res := &CompleteResult{TaskID: taskID, Player: p, Capped: capped}
	if p.TasksDoneToday == DailyTaskCap {
		total, open, err := s.tasks.DailyCounts(ctx, playerID)
		if err == nil && total == DailyTaskCap && open == 0 {
			// Reward is already committed; an allocator failure is not
			// allowed to surface here.
			if elite, err := s.TryAwardElite(ctx, playerID); err == nil && elite.Awarded {
				res.EliteAwarded = true
				res.Player, _ = s.players.Get(ctx, playerID)
			}
		}
	}
	return res, nil
}
