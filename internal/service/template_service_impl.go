package service

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/prefyhq/prefy/internal/codec"
	"github.com/prefyhq/prefy/internal/db"
	"github.com/prefyhq/prefy/internal/domain"
	"github.com/prefyhq/prefy/internal/repository"
	"github.com/rs/zerolog"
)

// templateExtensions lists the file types a template can be read from, in
// lookup order.
var templateExtensions = []string{".json", ".yaml", ".yml", ".prefy"}

type templateService struct {
	templates   repository.TemplateRepo
	uow         db.UnitOfWork
	templateDir string
	logger      zerolog.Logger
	observer    UseCaseObserver
}

func NewTemplateService(
	templates repository.TemplateRepo,
	uow db.UnitOfWork,
	templateDir string,
	logger zerolog.Logger,
	observers ...UseCaseObserver,
) TemplateService {
	return &templateService{
		templates:   templates,
		uow:         uow,
		templateDir: templateDir,
		logger:      logger,
		observer:    useCaseObserverOrNoop(observers),
	}
}

func (s *templateService) List(ctx context.Context) ([]*domain.Template, error) {
	list, err := s.templates.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing templates: %w", err)
	}
	return list, nil
}

func (s *templateService) Get(ctx context.Context, name string) (*domain.Template, error) {
	input := strings.TrimSpace(name)
	if input == "" {
		return nil, &domain.ValidationError{Field: "name", Message: "template name is required"}
	}

	t, err := s.templates.GetByName(ctx, input)
	if err == nil {
		return t, nil
	}
	var nf *domain.NotFoundError
	if !errors.As(err, &nf) {
		return nil, err
	}

	// Fall back to a case-insensitive match or the position shown by list.
	list, err := s.templates.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("resolving template %q: %w", input, err)
	}
	for _, t := range list {
		if strings.EqualFold(t.Name, input) {
			return t, nil
		}
	}
	if n, convErr := strconv.Atoi(input); convErr == nil && n >= 1 && n <= len(list) {
		return list[n-1], nil
	}
	return nil, &domain.NotFoundError{Kind: "template", ID: input}
}

func (s *templateService) Add(ctx context.Context, name, path string) (result *AddTemplateResult, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"template": name, "path": path}
	defer observe(ctx, s.observer, "add-template", startedAt, fields, &err)

	name = strings.TrimSpace(name)
	if name == "" {
		name = templateNameFromPath(path)
	}
	fields["template"] = name

	var t *domain.Template
	var warnings []codec.ParseWarning
	t, warnings, err = readTemplateFile(name, path)
	if err != nil {
		return nil, err
	}
	logWarnings(s.logger, path, warnings)
	fields["categories"] = t.CategoryCount
	fields["entries"] = t.EntryCount

	if err = s.templates.Upsert(ctx, t); err != nil {
		return nil, err
	}
	return &AddTemplateResult{Template: t, Warnings: warnings}, nil
}

func (s *templateService) Remove(ctx context.Context, name string) (bool, error) {
	t, err := s.Get(ctx, name)
	if err != nil {
		var nf *domain.NotFoundError
		if errors.As(err, &nf) {
			return false, nil
		}
		return false, err
	}
	return s.templates.Delete(ctx, t.Name)
}

func (s *templateService) ImportDir(ctx context.Context, dir string) (result *ImportDirResult, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"dir": dir}
	defer observe(ctx, s.observer, "import-templates", startedAt, fields, &err)

	var paths []string
	paths, err = templateFiles(dir)
	if err != nil {
		return nil, err
	}
	fields["files"] = len(paths)

	result = &ImportDirResult{Warnings: map[string][]codec.ParseWarning{}}
	var parsed []*domain.Template
	var errs []error
	seen := make(map[string]string, len(paths))
	for _, p := range paths {
		name := templateNameFromPath(p)
		if prev, dup := seen[name]; dup {
			errs = append(errs, fmt.Errorf("%s: template %q already defined by %s", filepath.Base(p), name, filepath.Base(prev)))
			continue
		}
		seen[name] = p

		t, warnings, readErr := readTemplateFile(name, p)
		if readErr != nil {
			errs = append(errs, fmt.Errorf("%s: %w", filepath.Base(p), readErr))
			continue
		}
		if len(warnings) > 0 {
			result.Warnings[name] = warnings
			logWarnings(s.logger, p, warnings)
		}
		parsed = append(parsed, t)
	}
	if len(errs) > 0 {
		err = formatImportErrors(errs)
		return nil, err
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txTemplates := repository.NewSQLiteTemplateRepo(tx)
		for _, t := range parsed {
			if err := txTemplates.Upsert(ctx, t); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	for _, t := range parsed {
		result.Imported = append(result.Imported, t.Name)
	}
	fields["imported"] = len(result.Imported)
	return result, nil
}

func (s *templateService) Load(ctx context.Context, name string) (*domain.Document, error) {
	t, err := s.Get(ctx, name)
	if err == nil {
		doc, decodeErr := codec.Deserialize(t.Body)
		if decodeErr != nil {
			return nil, fmt.Errorf("template %q: %w", t.Name, decodeErr)
		}
		return doc, nil
	}
	var nf *domain.NotFoundError
	if !errors.As(err, &nf) {
		return nil, err
	}

	path, ok := s.findTemplateFile(name)
	if !ok {
		return nil, err
	}
	doc, _, warnings, decodeErr := decodeFile(path)
	if decodeErr != nil {
		return nil, fmt.Errorf("template %q: %w", name, decodeErr)
	}
	logWarnings(s.logger, path, warnings)
	return doc, nil
}

func (s *templateService) Bootstrap(ctx context.Context, name string) *domain.Document {
	doc, err := s.Load(ctx, name)
	if err != nil {
		s.logger.Warn().Err(err).Str("template", name).Msg("falling back to the default document")
		return domain.NewDefaultDocument()
	}
	return doc
}

func (s *templateService) findTemplateFile(name string) (string, bool) {
	if s.templateDir == "" {
		return "", false
	}
	base := strings.TrimSpace(name)
	if base == "" || strings.ContainsAny(base, `/\`) {
		return "", false
	}
	for _, ext := range templateExtensions {
		p := filepath.Join(s.templateDir, base+ext)
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			return p, true
		}
	}
	return "", false
}

// readTemplateFile decodes a template file of any supported format and
// re-encodes it as the JSON body stored in the catalog.
func readTemplateFile(name, path string) (*domain.Template, []codec.ParseWarning, error) {
	doc, f, warnings, err := decodeFile(path)
	if err != nil {
		return nil, warnings, err
	}
	body, err := codec.Serialize(doc)
	if err != nil {
		return nil, warnings, err
	}

	title := doc.ExportTitle
	if title == domain.DefaultExportTitle {
		title = name
	}
	return &domain.Template{
		Name:          name,
		Title:         title,
		Body:          body,
		Source:        templateSource(f),
		CategoryCount: len(doc.Categories),
		EntryCount:    doc.EntryCount(),
	}, warnings, nil
}

// decodeFile reads a document file, choosing the format by extension.
func decodeFile(path string) (*domain.Document, codec.Format, []codec.ParseWarning, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", nil, fmt.Errorf("reading %s: %w", filepath.Base(path), err)
	}
	f := codec.FormatFromPath(path)
	doc, warnings, err := codec.Decode(f, data)
	if err != nil {
		return nil, f, warnings, err
	}
	return doc, f, warnings, nil
}

func templateSource(f codec.Format) domain.TemplateSource {
	switch f {
	case codec.FormatYAML:
		return domain.SourceYAML
	case codec.FormatPrefy:
		return domain.SourcePrefy
	default:
		return domain.SourceJSON
	}
}

func templateFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading template directory: %w", err)
	}
	var paths []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(e.Name()))
		for _, want := range templateExtensions {
			if ext == want {
				paths = append(paths, filepath.Join(dir, e.Name()))
				break
			}
		}
	}
	sort.Strings(paths)
	return paths, nil
}

func templateNameFromPath(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func formatImportErrors(errs []error) error {
	msg := fmt.Sprintf("template import failed (%d errors):", len(errs))
	for _, e := range errs {
		msg += "\n  - " + e.Error()
	}
	return fmt.Errorf("%s", msg)
}
