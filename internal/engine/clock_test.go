package engine

import (
	"context"
	"testing"
	"time"
)

func berlin(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("Europe/Berlin")
	if err != nil {
		t.Fatalf("load zone: %v", err)
	}
	return loc
}

func TestCutoffTracksDSTTransitions(t *testing.T) {
	clock, err := NewBoundaryClock("Europe/Berlin", DailyResetHour)
	if err != nil {
		t.Fatalf("new clock: %v", err)
	}
	loc := berlin(t)

	// 2025-03-29 is the last CET day (UTC+1); clocks spring forward on the
	// 30th (UTC+2). A fixed UTC offset would get one of these wrong.
	winter := time.Date(2025, time.March, 29, 12, 0, 0, 0, loc)
	if got := clock.CutoffFor(winter).UTC().Hour(); got != 16 {
		t.Fatalf("CET cutoff at %d:00 UTC, want 16:00", got)
	}
	summer := time.Date(2025, time.March, 30, 12, 0, 0, 0, loc)
	if got := clock.CutoffFor(summer).UTC().Hour(); got != 15 {
		t.Fatalf("CEST cutoff at %d:00 UTC, want 15:00", got)
	}
}

func TestNextCutoffRollsToTomorrowAfterTheHour(t *testing.T) {
	clock, err := NewBoundaryClock("Europe/Berlin", DailyResetHour)
	if err != nil {
		t.Fatalf("new clock: %v", err)
	}
	loc := berlin(t)

	morning := time.Date(2025, time.July, 15, 10, 0, 0, 0, loc)
	if got := clock.NextCutoff(morning); !got.Equal(time.Date(2025, time.July, 15, 17, 0, 0, 0, loc)) {
		t.Fatalf("morning next cutoff=%v, want today 17:00", got)
	}
	evening := time.Date(2025, time.July, 15, 17, 0, 0, 0, loc)
	if got := clock.NextCutoff(evening); !got.Equal(time.Date(2025, time.July, 16, 17, 0, 0, 0, loc)) {
		t.Fatalf("evening next cutoff=%v, want tomorrow 17:00", got)
	}
}

func TestHasCrossedBoundary(t *testing.T) {
	clock, err := NewBoundaryClock("Europe/Berlin", DailyResetHour)
	if err != nil {
		t.Fatalf("new clock: %v", err)
	}
	loc := berlin(t)

	before := time.Date(2025, time.July, 15, 16, 59, 0, 0, loc)
	at := time.Date(2025, time.July, 15, 17, 0, 0, 0, loc)
	after := time.Date(2025, time.July, 15, 18, 30, 0, 0, loc)

	if !clock.HasCrossedBoundary(before, at) {
		t.Fatalf("16:59 → 17:00 should cross")
	}
	if !clock.HasCrossedBoundary(before, after) {
		t.Fatalf("16:59 → 18:30 should cross")
	}
	if clock.HasCrossedBoundary(before, before) {
		t.Fatalf("16:59 → 16:59 should not cross")
	}
	if clock.HasCrossedBoundary(at, after) {
		t.Fatalf("17:00 → 18:30 should not cross again")
	}
	// A checkpoint from yesterday evening crosses today's cutoff.
	yesterday := time.Date(2025, time.July, 14, 20, 0, 0, 0, loc)
	if !clock.HasCrossedBoundary(yesterday, at) {
		t.Fatalf("yesterday 20:00 → today 17:00 should cross")
	}
}

func TestCheckAndResetEstablishesCheckpointFirst(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	loc := berlin(t)

	p := newTestPlayer(t, svc, "ada")
	now := time.Date(2025, time.July, 15, 10, 0, 0, 0, loc)

	res, err := svc.CheckAndReset(ctx, p.ID, now)
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if res.Reset {
		t.Fatalf("first check must not reset")
	}
	stored, err := svc.PlayerRepo().Get(ctx, p.ID)
	if err != nil {
		t.Fatalf("get player: %v", err)
	}
	if stored.ResetCheckpoint == nil {
		t.Fatalf("expected checkpoint to be established")
	}
}

func TestCheckAndResetStoresWholeSecondCheckpoints(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	loc := berlin(t)

	p := newTestPlayer(t, svc, "ada")
	morning := time.Date(2025, time.July, 15, 10, 0, 0, 987654321, loc)
	if _, err := svc.CheckAndReset(ctx, p.ID, morning); err != nil {
		t.Fatalf("establish: %v", err)
	}

	// Fractional seconds in the caller's clock must not leak into the
	// stored checkpoint the reset guard compares against.
	evening := time.Date(2025, time.July, 15, 18, 0, 0, 123456789, loc)
	res, err := svc.CheckAndReset(ctx, p.ID, evening)
	if err != nil {
		t.Fatalf("reset check: %v", err)
	}
	if !res.Reset {
		t.Fatalf("expected reset after crossing 17:00")
	}

	stored, err := svc.PlayerRepo().Get(ctx, p.ID)
	if err != nil {
		t.Fatalf("get player: %v", err)
	}
	if stored.ResetCheckpoint == nil {
		t.Fatalf("checkpoint missing after reset")
	}
	if stored.ResetCheckpoint.Nanosecond() != 0 {
		t.Fatalf("checkpoint carries fractional seconds: %v", stored.ResetCheckpoint)
	}
}

func TestCheckAndResetFiresOncePerBoundary(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	loc := berlin(t)

	p := newTestPlayer(t, svc, "ada")
	ids := addTasks(t, svc, p.ID, 2)
	for _, id := range ids {
		if _, err := svc.CompleteTask(ctx, p.ID, id); err != nil {
			t.Fatalf("complete: %v", err)
		}
	}

	morning := time.Date(2025, time.July, 15, 10, 0, 0, 0, loc)
	if _, err := svc.CheckAndReset(ctx, p.ID, morning); err != nil {
		t.Fatalf("establish: %v", err)
	}

	before, err := svc.PlayerRepo().Get(ctx, p.ID)
	if err != nil {
		t.Fatalf("get player: %v", err)
	}

	evening := time.Date(2025, time.July, 15, 18, 0, 0, 0, loc)
	res, err := svc.CheckAndReset(ctx, p.ID, evening)
	if err != nil {
		t.Fatalf("reset check: %v", err)
	}
	if !res.Reset {
		t.Fatalf("expected reset after crossing 17:00")
	}

	after, err := svc.PlayerRepo().Get(ctx, p.ID)
	if err != nil {
		t.Fatalf("get player after reset: %v", err)
	}
	if after.DailyLevel != 0 || after.TasksDoneToday != 0 {
		t.Fatalf("daily fields not zeroed: level=%d done=%d", after.DailyLevel, after.TasksDoneToday)
	}
	if after.Gold != before.Gold || after.LifetimeXP != before.LifetimeXP {
		t.Fatalf("reset touched lifetime totals: gold %d→%d xp %d→%d",
			before.Gold, after.Gold, before.LifetimeXP, after.LifetimeXP)
	}
	tasks, err := svc.TaskRepo().ListByPlayer(ctx, p.ID)
	if err != nil {
		t.Fatalf("list tasks: %v", err)
	}
	if len(tasks) != 0 {
		t.Fatalf("tasks not cleared, %d left", len(tasks))
	}

	// Repeated checks after the checkpoint advanced must not fire again.
	later := time.Date(2025, time.July, 15, 20, 0, 0, 0, loc)
	res2, err := svc.CheckAndReset(ctx, p.ID, later)
	if err != nil {
		t.Fatalf("second check: %v", err)
	}
	if res2.Reset {
		t.Fatalf("reset fired twice for one boundary")
	}

	// The next calendar boundary fires again.
	nextDay := time.Date(2025, time.July, 16, 17, 30, 0, 0, loc)
	res3, err := svc.CheckAndReset(ctx, p.ID, nextDay)
	if err != nil {
		t.Fatalf("next-day check: %v", err)
	}
	if !res3.Reset {
		t.Fatalf("expected reset on the next boundary")
	}
}
