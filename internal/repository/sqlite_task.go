package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/preplock/internal/db"
	"github.com/alexanderramin/preplock/internal/domain"
)

type SQLiteTaskRepo struct {
	db db.DBTX
}

func NewSQLiteTaskRepo(conn db.DBTX) *SQLiteTaskRepo {
	return &SQLiteTaskRepo{db: conn}
}

const taskColumns = `id, owner_id, roadmap_id, day_number, title, description, topics, duration,
	priority, type, scheduled_date, completed, completed_at, created_at, updated_at`

func (r *SQLiteTaskRepo) Create(ctx context.Context, t *domain.Task) error {
	topics, err := encodeStrings(t.Topics)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx,
		`INSERT INTO tasks (`+taskColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.ID, t.OwnerID, t.RoadmapID, t.DayNumber,
		t.Title, t.Description, topics, t.Duration,
		string(t.Priority), string(t.Type),
		formatDate(t.ScheduledDate),
		boolToInt(t.Completed),
		nullableTimestamp(t.CompletedAt),
		formatTimestamp(t.CreatedAt),
		formatTimestamp(t.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting task: %w", err)
	}
	return nil
}

func (r *SQLiteTaskRepo) GetByID(ctx context.Context, ownerID, id string) (*domain.Task, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+taskColumns+` FROM tasks WHERE id = ? AND owner_id = ?`, id, ownerID)
	t, err := scanTask(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &domain.TaskNotFoundError{ID: id}
	}
	return t, err
}

func (r *SQLiteTaskRepo) ListByRoadmap(ctx context.Context, ownerID, roadmapID string) ([]*domain.Task, error) {
	return r.list(ctx,
		`SELECT `+taskColumns+` FROM tasks WHERE owner_id = ? AND roadmap_id = ?
		ORDER BY day_number, created_at, id`, ownerID, roadmapID)
}

func (r *SQLiteTaskRepo) ListByDay(ctx context.Context, roadmapID string, dayNumber int) ([]*domain.Task, error) {
	return r.list(ctx,
		`SELECT `+taskColumns+` FROM tasks WHERE roadmap_id = ? AND day_number = ?
		ORDER BY created_at, id`, roadmapID, dayNumber)
}

func (r *SQLiteTaskRepo) Complete(ctx context.Context, ownerID, id string, now time.Time) (bool, error) {
	ts := formatTimestamp(now)
	res, err := r.db.ExecContext(ctx,
		`UPDATE tasks SET completed = 1, completed_at = ?, updated_at = ?
		WHERE id = ? AND owner_id = ? AND completed = 0`, ts, ts, id, ownerID)
	if err != nil {
		return false, fmt.Errorf("completing task: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("checking task update: %w", err)
	}
	if n > 0 {
		return true, nil
	}
	// Nothing changed: either already complete or not ours.
	if _, err := r.GetByID(ctx, ownerID, id); err != nil {
		return false, err
	}
	return false, nil
}

func (r *SQLiteTaskRepo) CompleteForDay(ctx context.Context, roadmapID string, dayNumber int, now time.Time) (int, error) {
	ts := formatTimestamp(now)
	res, err := r.db.ExecContext(ctx,
		`UPDATE tasks SET completed = 1, completed_at = ?, updated_at = ?
		WHERE roadmap_id = ? AND day_number = ? AND completed = 0`, ts, ts, roadmapID, dayNumber)
	if err != nil {
		return 0, fmt.Errorf("completing tasks for day %d: %w", dayNumber, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("checking task cascade: %w", err)
	}
	return int(n), nil
}

func (r *SQLiteTaskRepo) list(ctx context.Context, query string, args ...any) ([]*domain.Task, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing tasks: %w", err)
	}
	defer rows.Close()

	var tasks []*domain.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating tasks: %w", err)
	}
	return tasks, nil
}

func scanTask(row rowScanner) (*domain.Task, error) {
	var t domain.Task
	var topics, priority, taskType, scheduled, createdAt, updatedAt string
	var completed int
	var completedAt sql.NullString
	err := row.Scan(
		&t.ID, &t.OwnerID, &t.RoadmapID, &t.DayNumber,
		&t.Title, &t.Description, &topics, &t.Duration,
		&priority, &taskType, &scheduled,
		&completed, &completedAt,
		&createdAt, &updatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning task: %w", err)
	}
	t.Priority = domain.Priority(priority)
	t.Type = domain.TaskType(taskType)
	t.Completed = intToBool(completed)

	if t.Topics, err = decodeStrings(topics, "topics"); err != nil {
		return nil, err
	}
	if t.ScheduledDate, err = parseDate(scheduled, "scheduled_date"); err != nil {
		return nil, err
	}
	if t.CompletedAt, err = parseNullableTimestamp(completedAt, "completed_at"); err != nil {
		return nil, err
	}
	if t.CreatedAt, err = parseTimestamp(createdAt, "created_at"); err != nil {
		return nil, err
	}
	if t.UpdatedAt, err = parseTimestamp(updatedAt, "updated_at"); err != nil {
		return nil, err
	}
	return &t, nil
}
