package service

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/prefyhq/prefy/internal/codec"
	"github.com/prefyhq/prefy/internal/domain"
	"github.com/rs/zerolog"
)

type documentService struct {
	logger   zerolog.Logger
	now      Clock
	observer UseCaseObserver
}

func NewDocumentService(logger zerolog.Logger, now Clock, observers ...UseCaseObserver) DocumentService {
	if now == nil {
		now = time.Now
	}
	return &documentService{
		logger:   logger,
		now:      now,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *documentService) Load(ctx context.Context, path string) (*LoadResult, error) {
	doc, f, warnings, err := decodeFile(path)
	if err != nil {
		return nil, err
	}
	logWarnings(s.logger, path, warnings)
	return &LoadResult{Document: doc, Format: f, Warnings: warnings}, nil
}

func (s *documentService) Save(ctx context.Context, path string, doc *domain.Document) error {
	f := codec.FormatFromPath(path)
	data, err := codec.Encode(f, doc, s.now())
	if err != nil {
		return err
	}
	return writeFileAtomic(path, data)
}

func (s *documentService) Backup(ctx context.Context, path string) (string, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("reading %s for backup: %w", filepath.Base(path), err)
	}

	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	name := codec.GenerateFilename(stem+"_backup", "", ext, s.now())
	if ext == "" {
		name = strings.TrimSuffix(name, ".")
	}
	backup := filepath.Join(filepath.Dir(path), name)
	if err := writeFileAtomic(backup, data); err != nil {
		return "", err
	}
	s.logger.Info().Str("path", path).Str("backup", backup).Msg("backed up document")
	return backup, nil
}

func (s *documentService) Export(ctx context.Context, doc *domain.Document, f codec.Format, out string) (path string, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"format": string(f)}
	defer observe(ctx, s.observer, "export", startedAt, fields, &err)

	now := s.now()
	data, err := codec.Encode(f, doc, now)
	if err != nil {
		return "", err
	}
	if out == "" {
		out = codec.GenerateFilename(exportPrefix(f), doc.Username, f.Extension(), now)
	}
	fields["path"] = out
	if err = writeFileAtomic(out, data); err != nil {
		return "", err
	}
	return out, nil
}

func (s *documentService) Convert(ctx context.Context, in, out string) (result *ConvertResult, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"in": in}
	defer observe(ctx, s.observer, "convert", startedAt, fields, &err)

	if codec.FormatFromPath(in) != codec.FormatPrefy {
		s.logger.Warn().Str("path", in).Msg("expected a .prefy extension")
	}
	data, err := os.ReadFile(in)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", filepath.Base(in), err)
	}
	doc, warnings, err := codec.Decode(codec.FormatPrefy, data)
	logWarnings(s.logger, in, warnings)
	if err != nil {
		return nil, err
	}

	if out == "" {
		out = strings.TrimSuffix(in, filepath.Ext(in)) + ".json"
	}
	body, err := codec.Serialize(doc)
	if err != nil {
		return nil, err
	}
	if err = writeFileAtomic(out, body); err != nil {
		return nil, err
	}

	result = &ConvertResult{
		Out:        out,
		Categories: len(doc.Categories),
		Entries:    doc.EntryCount(),
		Warnings:   warnings,
	}
	fields["out"] = out
	fields["categories"] = result.Categories
	fields["entries"] = result.Entries
	return result, nil
}

// exportPrefix names export files: snapshots are configs, renderings are lists.
func exportPrefix(f codec.Format) string {
	switch f {
	case codec.FormatJSON, codec.FormatYAML:
		return "Prefy_Config"
	default:
		return "Prefy"
	}
}

// writeFileAtomic writes through a temp file in the target directory so a
// failed write never leaves a truncated document behind.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("writing %s: %w", filepath.Base(path), err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("writing %s: %w", filepath.Base(path), err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("writing %s: %w", filepath.Base(path), err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", filepath.Base(path), err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("writing %s: %w", filepath.Base(path), err)
	}
	return nil
}
