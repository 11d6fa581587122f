package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/preplock/internal/db"
	"github.com/alexanderramin/preplock/internal/domain"
)

type SQLiteSourceRepo struct {
	db db.DBTX
}

func NewSQLiteSourceRepo(conn db.DBTX) *SQLiteSourceRepo {
	return &SQLiteSourceRepo{db: conn}
}

const sourceColumns = `id, owner_id, title, exam_date, raw_text, created_at, updated_at`

func (r *SQLiteSourceRepo) Create(ctx context.Context, s *domain.Source) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO sources (`+sourceColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		s.ID, s.OwnerID, s.Title,
		formatDate(s.ExamDate),
		s.RawText,
		formatTimestamp(s.CreatedAt),
		formatTimestamp(s.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting source: %w", err)
	}
	for i, t := range s.Topics {
		subs, err := encodeStrings(t.Subtopics)
		if err != nil {
			return err
		}
		_, err = r.db.ExecContext(ctx,
			`INSERT INTO source_topics (source_id, position, name, subtopics, priority, estimated_hours)
			VALUES (?, ?, ?, ?, ?, ?)`,
			s.ID, i, t.Name, subs, string(t.Priority), t.EstimatedHours,
		)
		if err != nil {
			return fmt.Errorf("inserting topic %q: %w", t.Name, err)
		}
	}
	return nil
}

func (r *SQLiteSourceRepo) GetByID(ctx context.Context, ownerID, id string) (*domain.Source, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+sourceColumns+` FROM sources WHERE id = ? AND owner_id = ?`, id, ownerID)
	s, err := scanSource(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &domain.SourceNotFoundError{ID: id}
	}
	if err != nil {
		return nil, err
	}
	if s.Topics, err = r.loadTopics(ctx, s.ID); err != nil {
		return nil, err
	}
	return s, nil
}

func (r *SQLiteSourceRepo) GetTopics(ctx context.Context, ownerID, id string) ([]domain.Topic, error) {
	s, err := r.GetByID(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	return s.Topics, nil
}

func (r *SQLiteSourceRepo) ListByOwner(ctx context.Context, ownerID string) ([]*domain.Source, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+sourceColumns+` FROM sources WHERE owner_id = ? ORDER BY created_at DESC, id`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("listing sources: %w", err)
	}
	var sources []*domain.Source
	for rows.Next() {
		s, err := scanSource(rows)
		if err != nil {
			rows.Close()
			return nil, err
		}
		sources = append(sources, s)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("iterating sources: %w", err)
	}
	rows.Close()

	// Topics are loaded after the cursor closes; a single-connection pool
	// cannot run a second query while rows are open.
	for _, s := range sources {
		if s.Topics, err = r.loadTopics(ctx, s.ID); err != nil {
			return nil, err
		}
	}
	return sources, nil
}

func (r *SQLiteSourceRepo) Delete(ctx context.Context, ownerID, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM sources WHERE id = ? AND owner_id = ?`, id, ownerID)
	if err != nil {
		return fmt.Errorf("deleting source: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking source delete: %w", err)
	}
	if n == 0 {
		return &domain.SourceNotFoundError{ID: id}
	}
	return nil
}

func (r *SQLiteSourceRepo) loadTopics(ctx context.Context, sourceID string) ([]domain.Topic, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT name, subtopics, priority, estimated_hours FROM source_topics
		WHERE source_id = ? ORDER BY position`, sourceID)
	if err != nil {
		return nil, fmt.Errorf("listing topics: %w", err)
	}
	defer rows.Close()

	topics := []domain.Topic{}
	for rows.Next() {
		var t domain.Topic
		var subs, priority string
		if err := rows.Scan(&t.Name, &subs, &priority, &t.EstimatedHours); err != nil {
			return nil, fmt.Errorf("scanning topic row: %w", err)
		}
		t.Priority = domain.Priority(priority)
		if t.Subtopics, err = decodeStrings(subs, "subtopics"); err != nil {
			return nil, err
		}
		topics = append(topics, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating topics: %w", err)
	}
	return topics, nil
}

func scanSource(row rowScanner) (*domain.Source, error) {
	var s domain.Source
	var examDate, createdAt, updatedAt string
	if err := row.Scan(&s.ID, &s.OwnerID, &s.Title, &examDate, &s.RawText, &createdAt, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning source: %w", err)
	}
	var err error
	if s.ExamDate, err = parseDate(examDate, "exam_date"); err != nil {
		return nil, err
	}
	if s.CreatedAt, err = parseTimestamp(createdAt, "created_at"); err != nil {
		return nil, err
	}
	if s.UpdatedAt, err = parseTimestamp(updatedAt, "updated_at"); err != nil {
		return nil, err
	}
	return &s, nil
}
