package storage

import "time"

type Player struct {
	ID                int64
	Name              string
	SignupName        string
	Gold              int
	LifetimeXP        int
	DailyLevel        int
	TasksDoneToday    int
	ImmunityExpiresAt *time.Time
	EliteAwardedAt    *time.Time
	ResetCheckpoint   *time.Time
	CreatedAt         time.Time
}

type Task struct {
	ID          int64
	PlayerID    int64
	Title       string
	SortOrder   int
	IsDone      bool
	CreatedAt   time.Time
	CompletedAt *time.Time
}

type Item struct {
	ID     int64
	Name   string
	Type   string
	Cost   int
	Effect string
}

type InventoryEntry struct {
	ID        int64
	PlayerID  int64
	ItemID    int64
	Quantity  int
	ExpiresAt *time.Time
}
