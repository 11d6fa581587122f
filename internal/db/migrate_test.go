package db_test

import (
	"path/filepath"
	"testing"

	"github.com/alexanderramin/preplock/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrate_CreatesTables(t *testing.T) {
	database, err := db.OpenDB(db.MemoryPath)
	require.NoError(t, err)
	defer database.Close()

	for _, table := range []string{
		"sources", "source_topics", "roadmaps", "roadmap_days", "tasks",
		"flashcard_decks", "flashcards", "mock_tests", "mock_test_questions", "test_attempts",
	} {
		var name string
		err := database.QueryRow(`SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?`, table).Scan(&name)
		require.NoError(t, err, "table %s", table)
		assert.Equal(t, table, name)
	}
}

func TestMigrate_Idempotent(t *testing.T) {
	database, err := db.OpenDB(db.MemoryPath)
	require.NoError(t, err)
	defer database.Close()

	require.NoError(t, db.Migrate(database))
	require.NoError(t, db.Migrate(database))
}

func TestOpenDB_ForeignKeysEnforced(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "preplock.db")
	database, err := db.OpenDB(path)
	require.NoError(t, err)
	defer database.Close()

	database.SetMaxOpenConns(4)
	for i := 0; i < 4; i++ {
		var on int
		require.NoError(t, database.QueryRow(`PRAGMA foreign_keys`).Scan(&on))
		assert.Equal(t, 1, on)
	}

	_, err = database.Exec(`INSERT INTO tasks (id, owner_id, roadmap_id, day_number, title, priority, type, scheduled_date, created_at, updated_at)
		VALUES ('t1', 'u1', 'missing', 1, 'x', 'high', 'study', '2025-01-01', 'now', 'now')`)
	require.Error(t, err, "task must reference an existing day")
}

func TestMigrate_OneActiveRoadmapPerSource(t *testing.T) {
	database, err := db.OpenDB(db.MemoryPath)
	require.NoError(t, err)
	defer database.Close()

	_, err = database.Exec(`INSERT INTO sources (id, owner_id, title, exam_date, created_at, updated_at)
		VALUES ('s1', 'u1', 'Physics', '2025-02-01', 'now', 'now')`)
	require.NoError(t, err)

	insert := `INSERT INTO roadmaps (id, owner_id, source_id, title, exam_date, start_date, total_days, status, created_at, updated_at)
		VALUES (?, 'u1', 's1', 'Plan', '2025-02-01', '2025-01-01', 31, ?, 'now', 'now')`
	_, err = database.Exec(insert, "r1", "active")
	require.NoError(t, err)
	_, err = database.Exec(insert, "r2", "completed")
	require.NoError(t, err, "non-active roadmaps are not constrained")
	_, err = database.Exec(insert, "r3", "active")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "UNIQUE constraint failed")
}

func TestMigrate_SourceDeleteCascadesToStudyMaterial(t *testing.T) {
	database, err := db.OpenDB(db.MemoryPath)
	require.NoError(t, err)
	defer database.Close()

	stmts := []string{
		`INSERT INTO sources (id, owner_id, title, exam_date, created_at, updated_at)
			VALUES ('s1', 'u1', 'Physics', '2025-02-01', 'now', 'now')`,
		`INSERT INTO flashcard_decks (id, owner_id, source_id, title, created_at) VALUES ('d1', 'u1', 's1', 'Deck', 'now')`,
		`INSERT INTO flashcards (deck_id, position, front, back) VALUES ('d1', 0, 'f', 'b')`,
		`INSERT INTO mock_tests (id, owner_id, source_id, title, duration_minutes, created_at) VALUES ('m1', 'u1', 's1', 'Test', 15, 'now')`,
		`INSERT INTO mock_test_questions (mock_test_id, position, prompt, options, answer_index) VALUES ('m1', 0, 'q', '["a","b"]', 0)`,
		`INSERT INTO test_attempts (id, owner_id, mock_test_id, answers, score, total_questions, percentage, completed_at)
			VALUES ('a1', 'u1', 'm1', '[]', 0, 0, 0, 'now')`,
		`DELETE FROM sources WHERE id = 's1'`,
	}
	for _, stmt := range stmts {
		_, err := database.Exec(stmt)
		require.NoError(t, err, stmt)
	}

	for _, table := range []string{"flashcard_decks", "flashcards", "mock_tests", "mock_test_questions", "test_attempts"} {
		var n int
		require.NoError(t, database.QueryRow(`SELECT COUNT(*) FROM `+table).Scan(&n))
		assert.Zero(t, n, table)
	}
}
