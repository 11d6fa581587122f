package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/alexanderramin/preplock/internal/db"
	"github.com/alexanderramin/preplock/internal/domain"
)

type SQLiteMockTestRepo struct {
	db db.DBTX
}

func NewSQLiteMockTestRepo(conn db.DBTX) *SQLiteMockTestRepo {
	return &SQLiteMockTestRepo{db: conn}
}

const (
	mockTestColumns = `id, owner_id, source_id, title, topics, duration_minutes, created_at`
	attemptColumns  = `id, owner_id, mock_test_id, answers, score, total_questions, percentage,
	topic_scores, weak_topics, time_spent_seconds, completed_at`
)

// Create inserts the test and its questions. Run it inside a UnitOfWork.
func (r *SQLiteMockTestRepo) Create(ctx context.Context, t *domain.MockTest) error {
	topics, err := encodeStrings(t.Topics)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx,
		`INSERT INTO mock_tests (`+mockTestColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		t.ID, t.OwnerID, t.SourceID, t.Title, topics, t.DurationMinutes, formatTimestamp(t.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting mock test: %w", err)
	}
	for i, q := range t.Questions {
		opts, err := encodeStrings(q.Options)
		if err != nil {
			return err
		}
		_, err = r.db.ExecContext(ctx,
			`INSERT INTO mock_test_questions (mock_test_id, position, topic, prompt, options, answer_index, explanation)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			t.ID, i, q.Topic, q.Prompt, opts, q.AnswerIndex, q.Explanation,
		)
		if err != nil {
			return fmt.Errorf("inserting question %d: %w", i, err)
		}
	}
	return nil
}

func (r *SQLiteMockTestRepo) GetByID(ctx context.Context, ownerID, id string) (*domain.MockTest, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+mockTestColumns+` FROM mock_tests WHERE id = ? AND owner_id = ?`, id, ownerID)
	t, err := scanMockTest(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &domain.MockTestNotFoundError{ID: id}
	}
	if err != nil {
		return nil, err
	}
	if t.Questions, err = r.loadQuestions(ctx, t.ID); err != nil {
		return nil, err
	}
	return t, nil
}

func (r *SQLiteMockTestRepo) ListByOwner(ctx context.Context, ownerID string) ([]*domain.MockTest, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+mockTestColumns+` FROM mock_tests WHERE owner_id = ? ORDER BY created_at DESC, id`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("listing mock tests: %w", err)
	}
	var tests []*domain.MockTest
	for rows.Next() {
		t, err := scanMockTest(rows)
		if err != nil {
			rows.Close()
			return nil, err
		}
		tests = append(tests, t)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("iterating mock tests: %w", err)
	}
	rows.Close()

	for _, t := range tests {
		if t.Questions, err = r.loadQuestions(ctx, t.ID); err != nil {
			return nil, err
		}
	}
	return tests, nil
}

func (r *SQLiteMockTestRepo) Delete(ctx context.Context, ownerID, id string) error {
	// Questions and attempts cascade.
	res, err := r.db.ExecContext(ctx, `DELETE FROM mock_tests WHERE id = ? AND owner_id = ?`, id, ownerID)
	if err != nil {
		return fmt.Errorf("deleting mock test: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking mock test delete: %w", err)
	}
	if n == 0 {
		return &domain.MockTestNotFoundError{ID: id}
	}
	return nil
}

type gradedAnswerRow struct {
	QuestionIndex int  `json:"question_index"`
	Selected      int  `json:"selected"`
	Correct       bool `json:"correct"`
	TimeTaken     int  `json:"time_taken"`
}

type topicScoreRow struct {
	Topic      string `json:"topic"`
	Correct    int    `json:"correct"`
	Total      int    `json:"total"`
	Percentage int    `json:"percentage"`
}

func (r *SQLiteMockTestRepo) CreateAttempt(ctx context.Context, a *domain.TestAttempt) error {
	answers := make([]gradedAnswerRow, len(a.Answers))
	for i, g := range a.Answers {
		answers[i] = gradedAnswerRow{QuestionIndex: g.QuestionIndex, Selected: g.Selected, Correct: g.Correct, TimeTaken: g.TimeTakenSeconds}
	}
	answersJSON, err := encodeJSON(answers, "answers")
	if err != nil {
		return err
	}
	scoresJSON, err := encodeJSON(toScoreRows(a.TopicScores), "topic_scores")
	if err != nil {
		return err
	}
	weakJSON, err := encodeJSON(toScoreRows(a.WeakTopics), "weak_topics")
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx,
		`INSERT INTO test_attempts (`+attemptColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		a.ID, a.OwnerID, a.MockTestID, answersJSON,
		a.Score, a.TotalQuestions, a.Percentage,
		scoresJSON, weakJSON, a.TimeSpentSeconds,
		formatTimestamp(a.CompletedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting test attempt: %w", err)
	}
	return nil
}

func (r *SQLiteMockTestRepo) ListAttempts(ctx context.Context, ownerID, mockTestID string) ([]*domain.TestAttempt, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+attemptColumns+` FROM test_attempts WHERE owner_id = ? AND mock_test_id = ?
		ORDER BY completed_at DESC, id`, ownerID, mockTestID)
	if err != nil {
		return nil, fmt.Errorf("listing test attempts: %w", err)
	}
	defer rows.Close()

	attempts := []*domain.TestAttempt{}
	for rows.Next() {
		a, err := scanAttempt(rows)
		if err != nil {
			return nil, err
		}
		attempts = append(attempts, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating test attempts: %w", err)
	}
	return attempts, nil
}

func (r *SQLiteMockTestRepo) loadQuestions(ctx context.Context, mockTestID string) ([]domain.TestQuestion, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT topic, prompt, options, answer_index, explanation
		FROM mock_test_questions WHERE mock_test_id = ? ORDER BY position`, mockTestID)
	if err != nil {
		return nil, fmt.Errorf("listing questions: %w", err)
	}
	defer rows.Close()

	questions := []domain.TestQuestion{}
	for rows.Next() {
		var q domain.TestQuestion
		var opts string
		if err := rows.Scan(&q.Topic, &q.Prompt, &opts, &q.AnswerIndex, &q.Explanation); err != nil {
			return nil, fmt.Errorf("scanning question row: %w", err)
		}
		if q.Options, err = decodeStrings(opts, "options"); err != nil {
			return nil, err
		}
		questions = append(questions, q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating questions: %w", err)
	}
	return questions, nil
}

func scanMockTest(row rowScanner) (*domain.MockTest, error) {
	var t domain.MockTest
	var topics, createdAt string
	if err := row.Scan(&t.ID, &t.OwnerID, &t.SourceID, &t.Title, &topics, &t.DurationMinutes, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning mock test: %w", err)
	}
	var err error
	if t.Topics, err = decodeStrings(topics, "topics"); err != nil {
		return nil, err
	}
	if t.CreatedAt, err = parseTimestamp(createdAt, "created_at"); err != nil {
		return nil, err
	}
	return &t, nil
}

func scanAttempt(row rowScanner) (*domain.TestAttempt, error) {
	var a domain.TestAttempt
	var answers, scores, weak, completedAt string
	if err := row.Scan(&a.ID, &a.OwnerID, &a.MockTestID, &answers,
		&a.Score, &a.TotalQuestions, &a.Percentage,
		&scores, &weak, &a.TimeSpentSeconds, &completedAt); err != nil {
		return nil, fmt.Errorf("scanning test attempt: %w", err)
	}

	var answerRows []gradedAnswerRow
	if err := json.Unmarshal([]byte(answers), &answerRows); err != nil {
		return nil, fmt.Errorf("decoding answers: %w", err)
	}
	a.Answers = make([]domain.GradedAnswer, len(answerRows))
	for i, g := range answerRows {
		a.Answers[i] = domain.GradedAnswer{QuestionIndex: g.QuestionIndex, Selected: g.Selected, Correct: g.Correct, TimeTakenSeconds: g.TimeTaken}
	}
	var err error
	if a.TopicScores, err = decodeScores(scores, "topic_scores"); err != nil {
		return nil, err
	}
	if a.WeakTopics, err = decodeScores(weak, "weak_topics"); err != nil {
		return nil, err
	}
	if a.CompletedAt, err = parseTimestamp(completedAt, "completed_at"); err != nil {
		return nil, err
	}
	return &a, nil
}

func toScoreRows(scores []domain.TopicScore) []topicScoreRow {
	out := make([]topicScoreRow, len(scores))
	for i, s := range scores {
		out[i] = topicScoreRow(s)
	}
	return out
}

func decodeScores(s, field string) ([]domain.TopicScore, error) {
	var rows []topicScoreRow
	if s != "" {
		if err := json.Unmarshal([]byte(s), &rows); err != nil {
			return nil, fmt.Errorf("decoding %s: %w", field, err)
		}
	}
	out := make([]domain.TopicScore, len(rows))
	for i, r := range rows {
		out[i] = domain.TopicScore(r)
	}
	return out, nil
}

func encodeJSON(v any, field string) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("encoding %s: %w", field, err)
	}
	return string(b), nil
}
