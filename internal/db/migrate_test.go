package db

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := OpenDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestMigrate_Idempotent(t *testing.T) {
	db := openTestDB(t)

	require.NoError(t, Migrate(db))
	require.NoError(t, Migrate(db))
}

func TestMigrate_CreatesTemplatesTable(t *testing.T) {
	db := openTestDB(t)

	var name string
	err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name='templates'`).Scan(&name)
	require.NoError(t, err)
	assert.Equal(t, "templates", name)

	err = db.QueryRow(`SELECT name FROM sqlite_master WHERE type='index' AND name='idx_templates_updated'`).Scan(&name)
	require.NoError(t, err)
}

func TestMigrate_TemplatesSourceCheckConstraint(t *testing.T) {
	db := openTestDB(t)

	_, err := db.Exec(`INSERT INTO templates (name, body, source, created_at, updated_at)
		VALUES ('a', '{}', 'png', '2025-01-01T00:00:00Z', '2025-01-01T00:00:00Z')`)
	assert.Error(t, err, "unknown source should be rejected by CHECK constraint")

	_, err = db.Exec(`INSERT INTO templates (name, body, source, created_at, updated_at)
		VALUES ('a', '{}', 'prefy', '2025-01-01T00:00:00Z', '2025-01-01T00:00:00Z')`)
	assert.NoError(t, err)
}

func TestMigrate_ForeignKeysEnabled(t *testing.T) {
	db := openTestDB(t)

	var fk int
	require.NoError(t, db.QueryRow(`PRAGMA foreign_keys`).Scan(&fk))
	assert.Equal(t, 1, fk)
}

func TestMigrate_WALModeRequested(t *testing.T) {
	// In-memory SQLite reports "memory"; WAL only applies to file databases.
	db := openTestDB(t)

	var mode string
	require.NoError(t, db.QueryRow(`PRAGMA journal_mode`).Scan(&mode))
	assert.Equal(t, "memory", mode)
}

func TestMigrate_UpgradeBackfillsCounts(t *testing.T) {
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	// Catalog created before the count columns were added.
	_, err = db.Exec(`CREATE TABLE templates (
		name       TEXT PRIMARY KEY,
		title      TEXT NOT NULL DEFAULT '',
		body       TEXT NOT NULL,
		source     TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO templates (name, title, body, created_at, updated_at) VALUES
		('food', 'Food', '{"levels":[],"categories":[{"entries":[{},{}]},{"entries":[{}]}]}', '2025-01-01T00:00:00Z', '2025-01-01T00:00:00Z')`)
	require.NoError(t, err)

	require.NoError(t, Migrate(db))

	var title string
	var cats, entries int
	err = db.QueryRow(`SELECT title, category_count, entry_count FROM templates WHERE name = 'food'`).Scan(&title, &cats, &entries)
	require.NoError(t, err)
	assert.Equal(t, "Food", title)
	assert.Equal(t, 2, cats)
	assert.Equal(t, 3, entries)
}
