package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

type TaskRepo struct {
	db *sql.DB
}

func NewTaskRepo(db *sql.DB) *TaskRepo {
	return &TaskRepo{db: db}
}

func (r *TaskRepo) Insert(ctx context.Context, playerID int64, title string, sortOrder int) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO tasks (player_id, title, sort_order) VALUES (?, ?, ?)
	`, playerID, title, sortOrder)
	if err != nil {
		return 0, fmt.Errorf("task insert: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("task last insert id: %w", err)
	}
	return id, nil
}

func (r *TaskRepo) Get(ctx context.Context, id int64) (*Task, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, player_id, title, sort_order, is_done, created_at, completed_at
		FROM tasks
		WHERE id = ?
	`, id)
	return scanTask(row)
}

func (r *TaskRepo) ListByPlayer(ctx context.Context, playerID int64) ([]Task, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, player_id, title, sort_order, is_done, created_at, completed_at
		FROM tasks
		WHERE player_id = ?
		ORDER BY sort_order ASC, id ASC
	`, playerID)
	if err != nil {
		return nil, fmt.Errorf("task list: %w", err)
	}
	defer rows.Close()

	var out []Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("task list rows: %w", err)
	}
	return out, nil
}

// MarkDone flips the one-way completion flag. It reports false when the task
// was already done, which makes repeat completions a no-op.
func (r *TaskRepo) MarkDone(ctx context.Context, e Execer, id, playerID int64, completedAt time.Time) (bool, error) {
	res, err := e.ExecContext(ctx, `
		UPDATE tasks SET is_done = 1, completed_at = ?
		WHERE id = ? AND player_id = ? AND is_done = 0
	`, completedAt, id, playerID)
	if err != nil {
		return false, fmt.Errorf("task mark done: %w", err)
	}
	return rowsChanged(res, "task mark done")
}

// DailyCounts returns the player's total task count and how many of them are
// still open.
func (r *TaskRepo) DailyCounts(ctx context.Context, playerID int64) (total, open int, err error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*), COALESCE(SUM(CASE WHEN is_done = 0 THEN 1 ELSE 0 END), 0)
		FROM tasks
		WHERE player_id = ?
	`, playerID)
	if err := row.Scan(&total, &open); err != nil {
		return 0, 0, fmt.Errorf("task daily counts: %w", err)
	}
	return total, open, nil
}

func (r *TaskRepo) UpdateOrder(ctx context.Context, id, playerID int64, sortOrder int) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE tasks SET sort_order = ? WHERE id = ? AND player_id = ?
	`, sortOrder, id, playerID)
	if err != nil {
		return fmt.Errorf("task update order: %w", err)
	}
	return nil
}

func (r *TaskRepo) DeleteByPlayer(ctx context.Context, e Execer, playerID int64) error {
	if _, err := e.ExecContext(ctx, `DELETE FROM tasks WHERE player_id = ?`, playerID); err != nil {
		return fmt.Errorf("task delete by player: %w", err)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTask(row scanner) (*Task, error) {
	var (
		t           Task
		isDone      int
		completedAt sql.NullTime
	)
	if err := row.Scan(&t.ID, &t.PlayerID, &t.Title, &t.SortOrder, &isDone, &t.CreatedAt, &completedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("task scan: %w", err)
	}
	t.IsDone = isDone != 0
	if completedAt.Valid {
		v := completedAt.Time
		t.CompletedAt = &v
	}
	return &t, nil
}
