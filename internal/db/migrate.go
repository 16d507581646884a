package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations. Every statement is safe to re-run.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// ALTER TABLE ADD COLUMN has no IF NOT EXISTS form.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	if err := backfillTemplateCounts(db); err != nil {
		return fmt.Errorf("backfilling template counts: %w", err)
	}
	return nil
}

// backfillTemplateCounts fills the summary columns of rows stored before
// they existed, reading the counts out of the JSON body.
func backfillTemplateCounts(db *sql.DB) error {
	_, err := db.Exec(`UPDATE templates SET
		category_count = COALESCE(json_array_length(body, '$.categories'), 0),
		entry_count = (
			SELECT COALESCE(SUM(json_array_length(c.value, '$.entries')), 0)
			FROM json_each(templates.body, '$.categories') AS c
		)
		WHERE category_count IS NULL OR entry_count IS NULL`)
	return err
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS templates (
		name        TEXT PRIMARY KEY,
		title       TEXT NOT NULL DEFAULT '',
		body        TEXT NOT NULL,
		source      TEXT NOT NULL DEFAULT ''
		            CHECK(source IN ('', 'json', 'yaml', 'prefy')),
		created_at  TEXT NOT NULL,
		updated_at  TEXT NOT NULL
	)`,

	`ALTER TABLE templates ADD COLUMN category_count INTEGER`,
	`ALTER TABLE templates ADD COLUMN entry_count INTEGER`,

	`CREATE INDEX IF NOT EXISTS idx_templates_updated ON templates(updated_at)`,
}
