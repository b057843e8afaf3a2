package engine

import (
	"database/sql"
	"time"

	"dailyquest/internal/storage"
)

// Service is the game progression and combat engine. All mutations of
// contended player fields go through guarded single-statement updates in the
// storage layer, so concurrent callers (duplicate clicks, multiple tabs)
// cannot produce lost updates.
type Service struct {
	db        *sql.DB
	clock     *BoundaryClock
	players   *storage.PlayerRepo
	tasks     *storage.TaskRepo
	items     *storage.ItemRepo
	inventory *storage.InventoryRepo
}

func NewService(db *sql.DB) (*Service, error) {
	clock, err := NewBoundaryClock(DefaultResetZone, DailyResetHour)
	if err != nil {
		return nil, err
	}
	return &Service{
		db:        db,
		clock:     clock,
		players:   storage.NewPlayerRepo(db),
		tasks:     storage.NewTaskRepo(db),
		items:     storage.NewItemRepo(db),
		inventory: storage.NewInventoryRepo(db),
	}, nil
}

func (s *Service) Clock() *BoundaryClock                 { return s.clock }
func (s *Service) PlayerRepo() *storage.PlayerRepo       { return s.players }
func (s *Service) TaskRepo() *storage.TaskRepo           { return s.tasks }
func (s *Service) ItemRepo() *storage.ItemRepo           { return s.items }
func (s *Service) InventoryRepo() *storage.InventoryRepo { return s.inventory }

func (s *Service) now() time.Time {
	return time.Now().UTC()
}
