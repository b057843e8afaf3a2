package engine

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"dailyquest/internal/storage"
)

// Signup creates a player with StartingGold and zeroed progression.
func (s *Service) Signup(ctx context.Context, name string) (*storage.Player, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.New("player name is required")
	}
	existing, err := s.players.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("player %q already exists", name)
	}
	return s.players.Create(ctx, name, StartingGold)
}

// AddTask appends a task to the player's list. The order index controls
// user-facing ordering only and has no gameplay effect.
func (s *Service) AddTask(ctx context.Context, playerID int64, title string, sortOrder int) (*storage.Task, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, errors.New("task title is required")
	}
	if _, err := s.requirePlayer(ctx, playerID); err != nil {
		return nil, err
	}
	id, err := s.tasks.Insert(ctx, playerID, title, sortOrder)
	if err != nil {
		return nil, err
	}
	return s.tasks.Get(ctx, id)
}

// ReorderTask moves a task to a new order index.
func (s *Service) ReorderTask(ctx context.Context, playerID, taskID int64, sortOrder int) error {
	if _, err := s.requireTask(ctx, playerID, taskID); err != nil {
		return err
	}
	return s.tasks.UpdateOrder(ctx, taskID, playerID, sortOrder)
}

func (s *Service) requirePlayer(ctx context.Context, playerID int64) (*storage.Player, error) {
	p, err := s.players.Get(ctx, playerID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, fmt.Errorf("player %d not found", playerID)
	}
	return p, nil
}

func (s *Service) requireTask(ctx context.Context, playerID, taskID int64) (*storage.Task, error) {
	t, err := s.tasks.Get(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, fmt.Errorf("task %d not found", taskID)
	}
	if t.PlayerID != playerID {
		return nil, fmt.Errorf("task %d does not belong to player %d", taskID, playerID)
	}
	return t, nil
}
