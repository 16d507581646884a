package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/prefyhq/prefy/internal/db"
	"github.com/prefyhq/prefy/internal/domain"
)

// SQLiteTemplateRepo implements TemplateRepo using a SQLite database.
type SQLiteTemplateRepo struct {
	db db.DBTX
}

// NewSQLiteTemplateRepo creates a repo over a *sql.DB or a transaction.
func NewSQLiteTemplateRepo(conn db.DBTX) *SQLiteTemplateRepo {
	return &SQLiteTemplateRepo{db: conn}
}

const templateColumns = `name, title, body, source, category_count, entry_count, created_at, updated_at`

func (r *SQLiteTemplateRepo) Upsert(ctx context.Context, t *domain.Template) error {
	now := nowUTC()
	if t.CreatedAt.IsZero() {
		t.CreatedAt = now
	}
	t.UpdatedAt = now

	query := `INSERT INTO templates (` + templateColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			title = excluded.title,
			body = excluded.body,
			source = excluded.source,
			category_count = excluded.category_count,
			entry_count = excluded.entry_count,
			updated_at = excluded.updated_at`
	_, err := r.db.ExecContext(ctx, query,
		t.Name,
		t.Title,
		string(t.Body),
		string(t.Source),
		t.CategoryCount,
		t.EntryCount,
		formatTime(t.CreatedAt),
		formatTime(t.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("upserting template %q: %w", t.Name, err)
	}
	return nil
}

func (r *SQLiteTemplateRepo) GetByName(ctx context.Context, name string) (*domain.Template, error) {
	query := `SELECT ` + templateColumns + ` FROM templates WHERE name = ?`
	t, err := scanTemplate(r.db.QueryRowContext(ctx, query, name))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &domain.NotFoundError{Kind: "template", ID: name}
	}
	return t, err
}

func (r *SQLiteTemplateRepo) List(ctx context.Context) ([]*domain.Template, error) {
	query := `SELECT ` + templateColumns + ` FROM templates ORDER BY name`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing templates: %w", err)
	}
	defer rows.Close()

	var templates []*domain.Template
	for rows.Next() {
		t, err := scanTemplate(rows)
		if err != nil {
			return nil, err
		}
		templates = append(templates, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating templates: %w", err)
	}
	return templates, nil
}

func (r *SQLiteTemplateRepo) Delete(ctx context.Context, name string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM templates WHERE name = ?`, name)
	if err != nil {
		return false, fmt.Errorf("deleting template: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("deleting template: %w", err)
	}
	return n > 0, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTemplate(row rowScanner) (*domain.Template, error) {
	var t domain.Template
	var body, source, createdAtStr, updatedAtStr string
	var categoryCount, entryCount sql.NullInt64

	err := row.Scan(&t.Name, &t.Title, &body, &source, &categoryCount, &entryCount, &createdAtStr, &updatedAtStr)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning template: %w", err)
	}

	t.Body = []byte(body)
	t.Source = domain.TemplateSource(source)
	t.CategoryCount = parseNullableInt(categoryCount)
	t.EntryCount = parseNullableInt(entryCount)

	var parseErr error
	t.CreatedAt, parseErr = time.Parse(time.RFC3339, createdAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing created_at: %w", parseErr)
	}
	t.UpdatedAt, parseErr = time.Parse(time.RFC3339, updatedAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", parseErr)
	}
	return &t, nil
}
