package db

import (
	"database/sql"
	"fmt"
)

// Migrate applies the schema. Every statement is idempotent, so it runs
// in full on each open.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS sources (
		id         TEXT PRIMARY KEY,
		owner_id   TEXT NOT NULL,
		title      TEXT NOT NULL,
		exam_date  TEXT NOT NULL,
		raw_text   TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_sources_owner ON sources(owner_id, created_at)`,

	`CREATE TABLE IF NOT EXISTS source_topics (
		source_id       TEXT NOT NULL REFERENCES sources(id) ON DELETE CASCADE,
		position        INTEGER NOT NULL,
		name            TEXT NOT NULL,
		subtopics       TEXT NOT NULL DEFAULT '[]',
		priority        TEXT NOT NULL CHECK(priority IN ('high','medium','low')),
		estimated_hours REAL NOT NULL CHECK(estimated_hours > 0),
		PRIMARY KEY (source_id, position)
	)`,

	`CREATE TABLE IF NOT EXISTS roadmaps (
		id                  TEXT PRIMARY KEY,
		owner_id            TEXT NOT NULL,
		source_id           TEXT NOT NULL REFERENCES sources(id),
		title               TEXT NOT NULL,
		exam_date           TEXT NOT NULL,
		start_date          TEXT NOT NULL,
		total_days          INTEGER NOT NULL CHECK(total_days > 0),
		progress_completed  INTEGER NOT NULL DEFAULT 0,
		progress_total      INTEGER NOT NULL DEFAULT 0,
		progress_percentage INTEGER NOT NULL DEFAULT 0,
		status              TEXT NOT NULL DEFAULT 'active'
		                    CHECK(status IN ('active','completed','paused')),
		version             INTEGER NOT NULL DEFAULT 1,
		created_at          TEXT NOT NULL,
		updated_at          TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_roadmaps_owner ON roadmaps(owner_id, created_at)`,
	// At most one active roadmap per owner and source.
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_roadmaps_one_active
		ON roadmaps(owner_id, source_id) WHERE status = 'active'`,

	`CREATE TABLE IF NOT EXISTS roadmap_days (
		roadmap_id     TEXT NOT NULL REFERENCES roadmaps(id) ON DELETE CASCADE,
		day_number     INTEGER NOT NULL CHECK(day_number > 0),
		date           TEXT NOT NULL,
		kind           TEXT NOT NULL CHECK(kind IN ('study','buffer','revision')),
		topics         TEXT NOT NULL,
		subtopics      TEXT NOT NULL DEFAULT '[]',
		focus          TEXT NOT NULL DEFAULT '',
		duration_label TEXT NOT NULL DEFAULT '',
		hours          REAL NOT NULL DEFAULT 0,
		priority       TEXT NOT NULL CHECK(priority IN ('high','medium','low')),
		completed      INTEGER NOT NULL DEFAULT 0,
		completed_at   TEXT,
		notes          TEXT NOT NULL DEFAULT '',
		PRIMARY KEY (roadmap_id, day_number),
		CHECK ((completed = 1) = (completed_at IS NOT NULL))
	)`,

	`CREATE TABLE IF NOT EXISTS tasks (
		id             TEXT PRIMARY KEY,
		owner_id       TEXT NOT NULL,
		roadmap_id     TEXT NOT NULL,
		day_number     INTEGER NOT NULL,
		title          TEXT NOT NULL,
		description    TEXT NOT NULL DEFAULT '',
		topics         TEXT NOT NULL DEFAULT '[]',
		duration       TEXT NOT NULL DEFAULT '',
		priority       TEXT NOT NULL CHECK(priority IN ('high','medium','low')),
		type           TEXT NOT NULL CHECK(type IN ('study','practice','revision','mock-test')),
		scheduled_date TEXT NOT NULL,
		completed      INTEGER NOT NULL DEFAULT 0,
		completed_at   TEXT,
		created_at     TEXT NOT NULL,
		updated_at     TEXT NOT NULL,
		FOREIGN KEY (roadmap_id, day_number)
			REFERENCES roadmap_days(roadmap_id, day_number) ON DELETE CASCADE
	)`,
	`CREATE INDEX IF NOT EXISTS idx_tasks_roadmap_day ON tasks(roadmap_id, day_number)`,
	`CREATE INDEX IF NOT EXISTS idx_tasks_owner_date ON tasks(owner_id, scheduled_date)`,

	`CREATE TABLE IF NOT EXISTS flashcard_decks (
		id         TEXT PRIMARY KEY,
		owner_id   TEXT NOT NULL,
		source_id  TEXT NOT NULL REFERENCES sources(id) ON DELETE CASCADE,
		title      TEXT NOT NULL,
		created_at TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_flashcard_decks_owner ON flashcard_decks(owner_id, created_at)`,

	`CREATE TABLE IF NOT EXISTS flashcards (
		deck_id          TEXT NOT NULL REFERENCES flashcard_decks(id) ON DELETE CASCADE,
		position         INTEGER NOT NULL CHECK(position >= 0),
		topic            TEXT NOT NULL DEFAULT '',
		front            TEXT NOT NULL,
		back             TEXT NOT NULL,
		mastered         INTEGER NOT NULL DEFAULT 0,
		review_count     INTEGER NOT NULL DEFAULT 0 CHECK(review_count >= 0),
		last_reviewed_at TEXT,
		PRIMARY KEY (deck_id, position)
	)`,

	`CREATE TABLE IF NOT EXISTS mock_tests (
		id               TEXT PRIMARY KEY,
		owner_id         TEXT NOT NULL,
		source_id        TEXT NOT NULL REFERENCES sources(id) ON DELETE CASCADE,
		title            TEXT NOT NULL,
		topics           TEXT NOT NULL DEFAULT '[]',
		duration_minutes INTEGER NOT NULL CHECK(duration_minutes > 0),
		created_at       TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_mock_tests_owner ON mock_tests(owner_id, created_at)`,

	`CREATE TABLE IF NOT EXISTS mock_test_questions (
		mock_test_id TEXT NOT NULL REFERENCES mock_tests(id) ON DELETE CASCADE,
		position     INTEGER NOT NULL CHECK(position >= 0),
		topic        TEXT NOT NULL DEFAULT '',
		prompt       TEXT NOT NULL,
		options      TEXT NOT NULL,
		answer_index INTEGER NOT NULL CHECK(answer_index >= 0),
		explanation  TEXT NOT NULL DEFAULT '',
		PRIMARY KEY (mock_test_id, position)
	)`,

	// answers and topic scores are only ever read back whole, so they are
	// stored as JSON.
	`CREATE TABLE IF NOT EXISTS test_attempts (
		id                 TEXT PRIMARY KEY,
		owner_id           TEXT NOT NULL,
		mock_test_id       TEXT NOT NULL REFERENCES mock_tests(id) ON DELETE CASCADE,
		answers            TEXT NOT NULL,
		score              INTEGER NOT NULL,
		total_questions    INTEGER NOT NULL,
		percentage         INTEGER NOT NULL,
		topic_scores       TEXT NOT NULL DEFAULT '[]',
		weak_topics        TEXT NOT NULL DEFAULT '[]',
		time_spent_seconds INTEGER NOT NULL DEFAULT 0,
		completed_at       TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_test_attempts_test ON test_attempts(mock_test_id, completed_at)`,
}
