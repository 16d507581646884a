package repository

import (
	"context"

	"github.com/prefyhq/prefy/internal/domain"
)

type TemplateRepo interface {
	// Upsert inserts the template or replaces the one with the same name,
	// keeping its original CreatedAt.
	Upsert(ctx context.Context, t *domain.Template) error
	GetByName(ctx context.Context, name string) (*domain.Template, error)
	List(ctx context.Context) ([]*domain.Template, error)
	// Delete removes the template, reporting whether it existed.
	Delete(ctx context.Context, name string) (bool, error)
}
