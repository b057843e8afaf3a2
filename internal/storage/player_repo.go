package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

type PlayerRepo struct {
	db *sql.DB
}

func NewPlayerRepo(db *sql.DB) *PlayerRepo {
	return &PlayerRepo{db: db}
}

const playerColumns = `id, name, signup_name, gold, lifetime_xp, daily_level, tasks_done_today,
	immunity_expires_at, elite_awarded_at, reset_checkpoint, created_at`

func (r *PlayerRepo) Create(ctx context.Context, name string, startingGold int) (*Player, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO players (name, signup_name, gold) VALUES (?, ?, ?)
	`, name, name, startingGold)
	if err != nil {
		return nil, fmt.Errorf("player insert: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("player last insert id: %w", err)
	}
	return r.Get(ctx, id)
}

func (r *PlayerRepo) Get(ctx context.Context, id int64) (*Player, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+playerColumns+` FROM players WHERE id = ?`, id)
	return scanPlayer(row)
}

func (r *PlayerRepo) GetByName(ctx context.Context, name string) (*Player, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+playerColumns+` FROM players WHERE name = ?`, name)
	return scanPlayer(row)
}

// ListByLifetimeXP returns all players ordered for the leaderboard.
func (r *PlayerRepo) ListByLifetimeXP(ctx context.Context) ([]Player, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+playerColumns+`
		FROM players
		ORDER BY lifetime_xp DESC, name ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("player list: %w", err)
	}
	defer rows.Close()

	var out []Player
	for rows.Next() {
		p, err := scanPlayer(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("player list rows: %w", err)
	}
	return out, nil
}

// ApplyTaskReward grants the per-task reward and advances the daily counters
// in one guarded statement. The guard on tasks_done_today enforces the daily
// cap; it reports false when the cap was already reached and no reward was
// granted.
func (r *PlayerRepo) ApplyTaskReward(ctx context.Context, e Execer, id int64, gold, xp, cap int) (bool, error) {
	res, err := e.ExecContext(ctx, `
		UPDATE players
		SET gold = gold + ?,
			lifetime_xp = lifetime_xp + ?,
			tasks_done_today = tasks_done_today + 1,
			daily_level = MIN(tasks_done_today + 1, ?)
		WHERE id = ? AND tasks_done_today < ?
	`, gold, xp, cap, id, cap)
	if err != nil {
		return false, fmt.Errorf("player apply reward: %w", err)
	}
	return rowsChanged(res, "player apply reward")
}

// AwardElite sets elite_awarded_at for the player if they do not already hold
// it and fewer than slots players system-wide do. The holder count and the
// set run as a single statement, so two racing qualifiers cannot both take
// the last slot.
func (r *PlayerRepo) AwardElite(ctx context.Context, id int64, at time.Time, slots int) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE players
		SET elite_awarded_at = ?
		WHERE id = ?
			AND elite_awarded_at IS NULL
			AND (SELECT COUNT(*) FROM players WHERE elite_awarded_at IS NOT NULL) < ?
	`, at, id, slots)
	if err != nil {
		return false, fmt.Errorf("player award elite: %w", err)
	}
	return rowsChanged(res, "player award elite")
}

// CountElite returns how many players currently hold elite status.
func (r *PlayerRepo) CountElite(ctx context.Context) (int, error) {
	row := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM players WHERE elite_awarded_at IS NOT NULL`)
	var n int
	if err := row.Scan(&n); err != nil {
		return 0, fmt.Errorf("player count elite: %w", err)
	}
	return n, nil
}

// ApplyDamage subtracts damage from lifetime_xp with a floor of zero, guarded
// by the immunity timestamp. It reports false when the player is currently
// immune (attack blocked, nothing changed).
func (r *PlayerRepo) ApplyDamage(ctx context.Context, id int64, damage int, now time.Time) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE players
		SET lifetime_xp = MAX(0, lifetime_xp - ?)
		WHERE id = ? AND (immunity_expires_at IS NULL OR immunity_expires_at <= ?)
	`, damage, id, now)
	if err != nil {
		return false, fmt.Errorf("player apply damage: %w", err)
	}
	return rowsChanged(res, "player apply damage")
}

func (r *PlayerRepo) SetImmunity(ctx context.Context, e Execer, id int64, until time.Time) error {
	if _, err := e.ExecContext(ctx, `UPDATE players SET immunity_expires_at = ? WHERE id = ?`, until, id); err != nil {
		return fmt.Errorf("player set immunity: %w", err)
	}
	return nil
}

// SpendGold deducts amount if the balance covers it; reports false otherwise.
func (r *PlayerRepo) SpendGold(ctx context.Context, e Execer, id int64, amount int) (bool, error) {
	res, err := e.ExecContext(ctx, `
		UPDATE players SET gold = gold - ? WHERE id = ? AND gold >= ?
	`, amount, id, amount)
	if err != nil {
		return false, fmt.Errorf("player spend gold: %w", err)
	}
	return rowsChanged(res, "player spend gold")
}

// ResetDaily zeroes the per-day fields and stores the new reset checkpoint.
// Lifetime totals, gold, elite status and inventory are untouched. The guard
// on the stored checkpoint still preceding the cutoff makes the reset fire at
// most once per boundary under concurrent checks.
func (r *PlayerRepo) ResetDaily(ctx context.Context, e Execer, id int64, checkpoint, cutoff time.Time) (bool, error) {
	res, err := e.ExecContext(ctx, `
		UPDATE players
		SET daily_level = 0, tasks_done_today = 0, reset_checkpoint = ?
		WHERE id = ? AND reset_checkpoint < ?
	`, checkpoint, id, cutoff)
	if err != nil {
		return false, fmt.Errorf("player reset daily: %w", err)
	}
	return rowsChanged(res, "player reset daily")
}

// EstablishCheckpoint sets the reset checkpoint only when none exists yet.
func (r *PlayerRepo) EstablishCheckpoint(ctx context.Context, id int64, at time.Time) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE players SET reset_checkpoint = ? WHERE id = ? AND reset_checkpoint IS NULL
	`, at, id)
	if err != nil {
		return false, fmt.Errorf("player establish checkpoint: %w", err)
	}
	return rowsChanged(res, "player establish checkpoint")
}

func (r *PlayerRepo) Rename(ctx context.Context, e Execer, id int64, name string) error {
	if _, err := e.ExecContext(ctx, `UPDATE players SET name = ? WHERE id = ?`, name, id); err != nil {
		return fmt.Errorf("player rename: %w", err)
	}
	return nil
}

func rowsChanged(res sql.Result, op string) (bool, error) {
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%s rows affected: %w", op, err)
	}
	return n > 0, nil
}

func scanPlayer(row scanner) (*Player, error) {
	var (
		p         Player
		immunity  sql.NullTime
		elite     sql.NullTime
		reset     sql.NullTime
		createdAt time.Time
	)
	if err := row.Scan(
		&p.ID, &p.Name, &p.SignupName, &p.Gold, &p.LifetimeXP, &p.DailyLevel, &p.TasksDoneToday,
		&immunity, &elite, &reset, &createdAt,
	); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("player scan: %w", err)
	}
	if immunity.Valid {
		v := immunity.Time
		p.ImmunityExpiresAt = &v
	}
	if elite.Valid {
		v := elite.Time
		p.EliteAwardedAt = &v
	}
	if reset.Valid {
		v := reset.Time
		p.ResetCheckpoint = &v
	}
	p.CreatedAt = createdAt
	return &p, nil
}
