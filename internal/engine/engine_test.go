package engine

import (
	"context"
	"database/sql"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"dailyquest/internal/storage"
)

func newTestService(t *testing.T) (*Service, *sql.DB) {
	t.Helper()
	ctx := context.Background()

	dir := t.TempDir()
	db, err := storage.Open(ctx, filepath.Join(dir, "test.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() {
		_ = db.Close()
	})

	svc, err := NewService(db)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	if err := svc.SeedCatalog(ctx); err != nil {
		t.Fatalf("seed catalog: %v", err)
	}
	return svc, db
}

func newTestPlayer(t *testing.T, svc *Service, name string) *storage.Player {
	t.Helper()
	p, err := svc.Signup(context.Background(), name)
	if err != nil {
		t.Fatalf("signup %s: %v", name, err)
	}
	return p
}

func addTasks(t *testing.T, svc *Service, playerID int64, n int) []int64 {
	t.Helper()
	ctx := context.Background()
	ids := make([]int64, 0, n)
	for i := 0; i < n; i++ {
		task, err := svc.AddTask(ctx, playerID, "task", i)
		if err != nil {
			t.Fatalf("add task #%d: %v", i+1, err)
		}
		ids = append(ids, task.ID)
	}
	return ids
}

func giveItem(t *testing.T, svc *Service, db *sql.DB, playerID int64, itemName string, expiresAt *time.Time) int64 {
	t.Helper()
	ctx := context.Background()
	item, err := svc.ItemRepo().GetByName(ctx, itemName)
	if err != nil {
		t.Fatalf("get item %s: %v", itemName, err)
	}
	if item == nil {
		t.Fatalf("item %s not seeded", itemName)
	}
	if err := svc.InventoryRepo().Add(ctx, db, playerID, item.ID, 1, expiresAt); err != nil {
		t.Fatalf("give item %s: %v", itemName, err)
	}
	entries, err := svc.InventoryRepo().ListByPlayer(ctx, playerID)
	if err != nil {
		t.Fatalf("list inventory: %v", err)
	}
	for _, e := range entries {
		if e.ItemID == item.ID {
			return e.ID
		}
	}
	t.Fatalf("inventory entry for %s not found", itemName)
	return 0
}

func TestSignupStartsWithFixedGoldAndZeroProgress(t *testing.T) {
	svc, _ := newTestService(t)

	p := newTestPlayer(t, svc, "ada")
	if p.Gold != StartingGold {
		t.Fatalf("gold=%d, want %d", p.Gold, StartingGold)
	}
	if p.LifetimeXP != 0 || p.DailyLevel != 0 || p.TasksDoneToday != 0 {
		t.Fatalf("expected zeroed progression, got xp=%d level=%d done=%d", p.LifetimeXP, p.DailyLevel, p.TasksDoneToday)
	}
	if p.EliteAwardedAt != nil || p.ImmunityExpiresAt != nil {
		t.Fatalf("expected no elite/immunity at signup")
	}
}

func TestReorderTaskChangesListing(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	p := newTestPlayer(t, svc, "ada")
	ids := addTasks(t, svc, p.ID, 3) // order indexes 0, 1, 2

	if err := svc.ReorderTask(ctx, p.ID, ids[2], -1); err != nil {
		t.Fatalf("reorder: %v", err)
	}
	tasks, err := svc.TaskRepo().ListByPlayer(ctx, p.ID)
	if err != nil {
		t.Fatalf("list tasks: %v", err)
	}
	if len(tasks) != 3 {
		t.Fatalf("len=%d, want 3", len(tasks))
	}
	if tasks[0].ID != ids[2] || tasks[1].ID != ids[0] || tasks[2].ID != ids[1] {
		t.Fatalf("order after move: %d %d %d, want %d %d %d",
			tasks[0].ID, tasks[1].ID, tasks[2].ID, ids[2], ids[0], ids[1])
	}

	// Only the owner may move a task.
	other := newTestPlayer(t, svc, "bea")
	if err := svc.ReorderTask(ctx, other.ID, ids[0], 9); err == nil {
		t.Fatalf("expected ownership error moving another player's task")
	}
}

func TestCompleteTaskRewardAndInvariant(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	p := newTestPlayer(t, svc, "ada")
	ids := addTasks(t, svc, p.ID, 3)

	res, err := svc.CompleteTask(ctx, p.ID, ids[0])
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if res.Capped || res.AlreadyDone {
		t.Fatalf("unexpected capped/already-done on first completion")
	}
	if res.Player.Gold != StartingGold+TaskRewardGold {
		t.Fatalf("gold=%d, want %d", res.Player.Gold, StartingGold+TaskRewardGold)
	}
	if res.Player.LifetimeXP != TaskRewardXP {
		t.Fatalf("xp=%d, want %d", res.Player.LifetimeXP, TaskRewardXP)
	}
	if res.Player.TasksDoneToday != 1 || res.Player.DailyLevel != 1 {
		t.Fatalf("counters done=%d level=%d, want 1/1", res.Player.TasksDoneToday, res.Player.DailyLevel)
	}

	res2, err := svc.CompleteTask(ctx, p.ID, ids[1])
	if err != nil {
		t.Fatalf("complete 2nd: %v", err)
	}
	if res2.Player.DailyLevel != res2.Player.TasksDoneToday {
		t.Fatalf("daily level %d != tasks done %d", res2.Player.DailyLevel, res2.Player.TasksDoneToday)
	}
}

func TestCompleteTaskIdempotent(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	p := newTestPlayer(t, svc, "ada")
	ids := addTasks(t, svc, p.ID, 1)

	first, err := svc.CompleteTask(ctx, p.ID, ids[0])
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	second, err := svc.CompleteTask(ctx, p.ID, ids[0])
	if err != nil {
		t.Fatalf("repeat complete: %v", err)
	}
	if !second.AlreadyDone {
		t.Fatalf("expected AlreadyDone on repeat")
	}
	if second.Player.Gold != first.Player.Gold || second.Player.LifetimeXP != first.Player.LifetimeXP {
		t.Fatalf("repeat completion changed state: gold %d→%d xp %d→%d",
			first.Player.Gold, second.Player.Gold, first.Player.LifetimeXP, second.Player.LifetimeXP)
	}
	if second.Player.TasksDoneToday != first.Player.TasksDoneToday {
		t.Fatalf("repeat completion advanced counter")
	}
}

func TestDailyCapWithholdsRewardButMarksDone(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	p := newTestPlayer(t, svc, "ada")
	ids := addTasks(t, svc, p.ID, DailyTaskCap+1)

	for i := 0; i < DailyTaskCap; i++ {
		res, err := svc.CompleteTask(ctx, p.ID, ids[i])
		if err != nil {
			t.Fatalf("complete #%d: %v", i+1, err)
		}
		if res.Capped {
			t.Fatalf("unexpected cap at completion #%d", i+1)
		}
	}

	before, err := svc.PlayerRepo().Get(ctx, p.ID)
	if err != nil {
		t.Fatalf("get player: %v", err)
	}
	if before.TasksDoneToday != DailyTaskCap || before.DailyLevel != DailyTaskCap {
		t.Fatalf("counters done=%d level=%d, want %d", before.TasksDoneToday, before.DailyLevel, DailyTaskCap)
	}

	res, err := svc.CompleteTask(ctx, p.ID, ids[DailyTaskCap])
	if err != nil {
		t.Fatalf("complete 11th: %v", err)
	}
	if !res.Capped {
		t.Fatalf("expected Capped on 11th completion")
	}
	if res.Player.Gold != before.Gold || res.Player.LifetimeXP != before.LifetimeXP {
		t.Fatalf("capped completion granted reward: gold %d→%d xp %d→%d",
			before.Gold, res.Player.Gold, before.LifetimeXP, res.Player.LifetimeXP)
	}
	if res.Player.TasksDoneToday != DailyTaskCap || res.Player.DailyLevel != DailyTaskCap {
		t.Fatalf("counters moved past cap: done=%d level=%d", res.Player.TasksDoneToday, res.Player.DailyLevel)
	}

	task, err := svc.TaskRepo().Get(ctx, ids[DailyTaskCap])
	if err != nil {
		t.Fatalf("get 11th task: %v", err)
	}
	if !task.IsDone {
		t.Fatalf("11th task should still be marked done")
	}
}

func TestConcurrentCompletionsLoseNoRewards(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	p := newTestPlayer(t, svc, "ada")
	ids := addTasks(t, svc, p.ID, 6)

	// Every task is completed by two racing callers: one marks it, the
	// duplicate must land as already-done without a second reward.
	var wg sync.WaitGroup
	for _, id := range ids {
		for j := 0; j < 2; j++ {
			wg.Add(1)
			go func(taskID int64) {
				defer wg.Done()
				_, _ = svc.CompleteTask(ctx, p.ID, taskID)
			}(id)
		}
	}
	wg.Wait()

	got, err := svc.PlayerRepo().Get(ctx, p.ID)
	if err != nil {
		t.Fatalf("get player: %v", err)
	}
	if got.TasksDoneToday != len(ids) || got.DailyLevel != len(ids) {
		t.Fatalf("counters done=%d level=%d, want %d", got.TasksDoneToday, got.DailyLevel, len(ids))
	}
	if got.Gold != StartingGold+len(ids)*TaskRewardGold {
		t.Fatalf("gold=%d, want %d", got.Gold, StartingGold+len(ids)*TaskRewardGold)
	}
	if got.LifetimeXP != len(ids)*TaskRewardXP {
		t.Fatalf("xp=%d, want %d", got.LifetimeXP, len(ids)*TaskRewardXP)
	}
}

func TestFinishingAllTenTasksAwardsElite(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	p := newTestPlayer(t, svc, "ada")
	ids := addTasks(t, svc, p.ID, DailyTaskCap)

	var last *CompleteResult
	for i, id := range ids {
		res, err := svc.CompleteTask(ctx, p.ID, id)
		if err != nil {
			t.Fatalf("complete #%d: %v", i+1, err)
		}
		if i < len(ids)-1 && res.EliteAwarded {
			t.Fatalf("elite awarded before the final task")
		}
		last = res
	}
	if !last.EliteAwarded {
		t.Fatalf("expected elite award on the 10th completion")
	}
	if last.Player.EliteAwardedAt == nil {
		t.Fatalf("elite_awarded_at not set")
	}
}

func TestEliteSlotsNeverExceedCapUnderConcurrency(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	const contenders = 8
	players := make([]*storage.Player, contenders)
	for i := range players {
		players[i] = newTestPlayer(t, svc, "player"+string(rune('a'+i)))
	}

	var wg sync.WaitGroup
	awarded := make([]bool, contenders*3)
	for round := 0; round < 3; round++ {
		for i := range players {
			wg.Add(1)
			go func(slot int, id int64) {
				defer wg.Done()
				res, err := svc.TryAwardElite(ctx, id)
				if err == nil && res.Awarded {
					awarded[slot] = true
				}
			}(round*contenders+i, players[i].ID)
		}
	}
	wg.Wait()

	wins := 0
	for _, ok := range awarded {
		if ok {
			wins++
		}
	}
	if wins != EliteSlots {
		t.Fatalf("awards=%d, want exactly %d", wins, EliteSlots)
	}
	holders, err := svc.PlayerRepo().CountElite(ctx)
	if err != nil {
		t.Fatalf("count elite: %v", err)
	}
	if holders != EliteSlots {
		t.Fatalf("holders=%d, want %d", holders, EliteSlots)
	}
}

func TestTryAwardEliteIsPermanentAndIdempotent(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	p := newTestPlayer(t, svc, "ada")
	first, err := svc.TryAwardElite(ctx, p.ID)
	if err != nil {
		t.Fatalf("award: %v", err)
	}
	if !first.Awarded {
		t.Fatalf("expected first attempt to win a slot")
	}

	again, err := svc.TryAwardElite(ctx, p.ID)
	if err != nil {
		t.Fatalf("repeat award: %v", err)
	}
	if again.Awarded {
		t.Fatalf("repeat attempt should be a no-op")
	}
	if again.Holders != 1 {
		t.Fatalf("holders=%d, want 1", again.Holders)
	}
}
