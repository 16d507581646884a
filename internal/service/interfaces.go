package service

import (
	"context"
	"time"

	"github.com/prefyhq/prefy/internal/codec"
	"github.com/prefyhq/prefy/internal/domain"
)

// TemplateService manages the starter-template catalog and builds new
// documents from it.
type TemplateService interface {
	List(ctx context.Context) ([]*domain.Template, error)
	// Get resolves a template by name (case-insensitive) or by its 1-based
	// position in List.
	Get(ctx context.Context, name string) (*domain.Template, error)
	Add(ctx context.Context, name, path string) (*AddTemplateResult, error)
	Remove(ctx context.Context, name string) (bool, error)
	// ImportDir adds every template file in dir in one transaction. If any
	// file cannot be read nothing is stored.
	ImportDir(ctx context.Context, dir string) (*ImportDirResult, error)
	// Load returns the named template as a document, looking in the catalog
	// first and the templates directory second.
	Load(ctx context.Context, name string) (*domain.Document, error)
	// Bootstrap is Load that never fails: any error is logged and the
	// default document returned instead.
	Bootstrap(ctx context.Context, name string) *domain.Document
}

// DocumentService reads and writes document files in any supported format.
type DocumentService interface {
	Load(ctx context.Context, path string) (*LoadResult, error)
	Save(ctx context.Context, path string, doc *domain.Document) error
	// Backup copies the file at path to a timestamped sibling and returns
	// the copy's path. A missing file is not backed up and returns "".
	Backup(ctx context.Context, path string) (string, error)
	// Export writes doc in format f. An empty out generates a timestamped
	// filename in the working directory.
	Export(ctx context.Context, doc *domain.Document, f codec.Format, out string) (string, error)
	// Convert reads a compact-text file and writes it as a JSON snapshot.
	Convert(ctx context.Context, in, out string) (*ConvertResult, error)
}

type AddTemplateResult struct {
	Template *domain.Template
	Warnings []codec.ParseWarning
}

type ImportDirResult struct {
	Imported []string
	Warnings map[string][]codec.ParseWarning
}

type LoadResult struct {
	Document *domain.Document
	Format   codec.Format
	Warnings []codec.ParseWarning
}

type ConvertResult struct {
	Out        string
	Categories int
	Entries    int
	Warnings   []codec.ParseWarning
}

// Clock returns the current time.
type Clock func() time.Time
