package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/preplock/internal/db"
	"github.com/alexanderramin/preplock/internal/domain"
)

type SQLiteRoadmapRepo struct {
	db db.DBTX
}

func NewSQLiteRoadmapRepo(conn db.DBTX) *SQLiteRoadmapRepo {
	return &SQLiteRoadmapRepo{db: conn}
}

const roadmapColumns = `id, owner_id, source_id, title, exam_date, start_date, total_days,
	progress_completed, progress_total, progress_percentage, status, version, created_at, updated_at`

const dayColumns = `day_number, date, kind, topics, subtopics, focus, duration_label, hours,
	priority, completed, completed_at, notes`

func (r *SQLiteRoadmapRepo) Create(ctx context.Context, rm *domain.Roadmap) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO roadmaps (`+roadmapColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rm.ID, rm.OwnerID, rm.SourceID, rm.Title,
		formatDate(rm.ExamDate),
		formatDate(rm.StartDate),
		rm.TotalDays,
		rm.Progress.Completed, rm.Progress.Total, rm.Progress.Percentage,
		string(rm.Status),
		rm.Version,
		formatTimestamp(rm.CreatedAt),
		formatTimestamp(rm.UpdatedAt),
	)
	if isUniqueViolation(err, "roadmaps.owner_id") {
		return &domain.DuplicateActiveRoadmapError{OwnerID: rm.OwnerID, SourceID: rm.SourceID}
	}
	if err != nil {
		return fmt.Errorf("inserting roadmap: %w", err)
	}
	for i := range rm.Days {
		if err := r.insertDay(ctx, rm.ID, &rm.Days[i]); err != nil {
			return err
		}
	}
	return nil
}

func (r *SQLiteRoadmapRepo) insertDay(ctx context.Context, roadmapID string, d *domain.Day) error {
	topics, err := encodeStrings(d.Topics)
	if err != nil {
		return err
	}
	subs, err := encodeStrings(d.Subtopics)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx,
		`INSERT INTO roadmap_days (roadmap_id, `+dayColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		roadmapID, d.Number,
		formatDate(d.Date),
		string(d.Kind),
		topics, subs,
		d.Focus, d.DurationLabel, d.Hours,
		string(d.Priority),
		boolToInt(d.Completed),
		nullableTimestamp(d.CompletedAt),
		d.Notes,
	)
	if err != nil {
		return fmt.Errorf("inserting day %d: %w", d.Number, err)
	}
	return nil
}

func (r *SQLiteRoadmapRepo) GetByID(ctx context.Context, ownerID, id string) (*domain.Roadmap, error) {
	return r.getOne(ctx, id,
		`SELECT `+roadmapColumns+` FROM roadmaps WHERE id = ? AND owner_id = ?`, id, ownerID)
}

func (r *SQLiteRoadmapRepo) GetLatestBySource(ctx context.Context, ownerID, sourceID string) (*domain.Roadmap, error) {
	return r.getOne(ctx, "",
		`SELECT `+roadmapColumns+` FROM roadmaps WHERE owner_id = ? AND source_id = ?
		ORDER BY status = 'active' DESC, created_at DESC, id DESC LIMIT 1`, ownerID, sourceID)
}

func (r *SQLiteRoadmapRepo) GetActiveBySource(ctx context.Context, ownerID, sourceID string) (*domain.Roadmap, error) {
	return r.getOne(ctx, "",
		`SELECT `+roadmapColumns+` FROM roadmaps WHERE owner_id = ? AND source_id = ? AND status = 'active'`,
		ownerID, sourceID)
}

func (r *SQLiteRoadmapRepo) GetActive(ctx context.Context, ownerID string) (*domain.Roadmap, error) {
	return r.getOne(ctx, "",
		`SELECT `+roadmapColumns+` FROM roadmaps WHERE owner_id = ? AND status = 'active'
		ORDER BY created_at DESC, id DESC LIMIT 1`, ownerID)
}

func (r *SQLiteRoadmapRepo) ListByOwner(ctx context.Context, ownerID string) ([]*domain.Roadmap, error) {
	return r.list(ctx,
		`SELECT `+roadmapColumns+` FROM roadmaps WHERE owner_id = ? ORDER BY created_at DESC, id DESC`, ownerID)
}

func (r *SQLiteRoadmapRepo) ListActive(ctx context.Context, ownerID string) ([]*domain.Roadmap, error) {
	return r.list(ctx,
		`SELECT `+roadmapColumns+` FROM roadmaps WHERE owner_id = ? AND status = 'active' ORDER BY created_at, id`, ownerID)
}

func (r *SQLiteRoadmapRepo) SaveProgress(ctx context.Context, rm *domain.Roadmap) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE roadmaps SET progress_completed = ?, progress_total = ?, progress_percentage = ?,
			status = ?, version = version + 1, updated_at = ?
		WHERE id = ? AND owner_id = ? AND version = ?`,
		rm.Progress.Completed, rm.Progress.Total, rm.Progress.Percentage,
		string(rm.Status),
		formatTimestamp(rm.UpdatedAt),
		rm.ID, rm.OwnerID, rm.Version,
	)
	if err != nil {
		return fmt.Errorf("updating roadmap progress: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking roadmap update: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("saving roadmap %s at version %d: %w", rm.ID, rm.Version, domain.ErrConcurrentUpdate)
	}

	for i := range rm.Days {
		d := &rm.Days[i]
		// Only rows whose completion differs are touched.
		_, err := r.db.ExecContext(ctx,
			`UPDATE roadmap_days SET completed = ?, completed_at = ?
			WHERE roadmap_id = ? AND day_number = ? AND completed != ?`,
			boolToInt(d.Completed), nullableTimestamp(d.CompletedAt),
			rm.ID, d.Number, boolToInt(d.Completed),
		)
		if err != nil {
			return fmt.Errorf("updating day %d: %w", d.Number, err)
		}
	}
	rm.Version++
	return nil
}

// getOne loads a single roadmap with its days. id names the roadmap in the
// not-found error and may be empty for lookups by other keys.
func (r *SQLiteRoadmapRepo) DeleteBySource(ctx context.Context, ownerID, sourceID string) (int, error) {
	// Days cascade from roadmaps and tasks cascade from days.
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM roadmaps WHERE owner_id = ? AND source_id = ?`, ownerID, sourceID)
	if err != nil {
		return 0, fmt.Errorf("deleting roadmaps of source %s: %w", sourceID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("checking roadmap delete: %w", err)
	}
	return int(n), nil
}

func (r *SQLiteRoadmapRepo) getOne(ctx context.Context, id, query string, args ...any) (*domain.Roadmap, error) {
	rm, err := scanRoadmap(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &domain.RoadmapNotFoundError{ID: id}
	}
	if err != nil {
		return nil, err
	}
	if rm.Days, err = r.loadDays(ctx, rm.ID); err != nil {
		return nil, err
	}
	return rm, nil
}

func (r *SQLiteRoadmapRepo) list(ctx context.Context, query string, args ...any) ([]*domain.Roadmap, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing roadmaps: %w", err)
	}
	var roadmaps []*domain.Roadmap
	for rows.Next() {
		rm, err := scanRoadmap(rows)
		if err != nil {
			rows.Close()
			return nil, err
		}
		roadmaps = append(roadmaps, rm)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("iterating roadmaps: %w", err)
	}
	rows.Close()

	for _, rm := range roadmaps {
		if rm.Days, err = r.loadDays(ctx, rm.ID); err != nil {
			return nil, err
		}
	}
	return roadmaps, nil
}

func (r *SQLiteRoadmapRepo) loadDays(ctx context.Context, roadmapID string) ([]domain.Day, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+dayColumns+` FROM roadmap_days WHERE roadmap_id = ? ORDER BY day_number`, roadmapID)
	if err != nil {
		return nil, fmt.Errorf("listing days: %w", err)
	}
	defer rows.Close()

	var days []domain.Day
	for rows.Next() {
		d, err := scanDay(rows)
		if err != nil {
			return nil, err
		}
		days = append(days, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating days: %w", err)
	}
	return days, nil
}

func scanRoadmap(row rowScanner) (*domain.Roadmap, error) {
	var rm domain.Roadmap
	var examDate, startDate, status, createdAt, updatedAt string
	err := row.Scan(
		&rm.ID, &rm.OwnerID, &rm.SourceID, &rm.Title,
		&examDate, &startDate, &rm.TotalDays,
		&rm.Progress.Completed, &rm.Progress.Total, &rm.Progress.Percentage,
		&status, &rm.Version,
		&createdAt, &updatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning roadmap: %w", err)
	}
	rm.Status = domain.RoadmapStatus(status)

	if rm.ExamDate, err = parseDate(examDate, "exam_date"); err != nil {
		return nil, err
	}
	if rm.StartDate, err = parseDate(startDate, "start_date"); err != nil {
		return nil, err
	}
	if rm.CreatedAt, err = parseTimestamp(createdAt, "created_at"); err != nil {
		return nil, err
	}
	if rm.UpdatedAt, err = parseTimestamp(updatedAt, "updated_at"); err != nil {
		return nil, err
	}
	return &rm, nil
}

func scanDay(row rowScanner) (domain.Day, error) {
	var d domain.Day
	var date, kind, topics, subs, priority string
	var completed int
	var completedAt sql.NullString
	err := row.Scan(
		&d.Number, &date, &kind, &topics, &subs,
		&d.Focus, &d.DurationLabel, &d.Hours,
		&priority, &completed, &completedAt, &d.Notes,
	)
	if err != nil {
		return d, fmt.Errorf("scanning day row: %w", err)
	}
	d.Kind = domain.DayKind(kind)
	d.Priority = domain.Priority(priority)
	d.Completed = intToBool(completed)

	if d.Date, err = parseDate(date, "date"); err != nil {
		return d, err
	}
	if d.Topics, err = decodeStrings(topics, "topics"); err != nil {
		return d, err
	}
	if d.Subtopics, err = decodeStrings(subs, "subtopics"); err != nil {
		return d, err
	}
	if d.CompletedAt, err = parseNullableTimestamp(completedAt, "completed_at"); err != nil {
		return d, err
	}
	return d, nil
}
