package service

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/prefyhq/prefy/internal/codec"
	"github.com/prefyhq/prefy/internal/domain"
	"github.com/prefyhq/prefy/internal/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, 5, 1, 14, 30, 0, 0, time.UTC)

func newDocumentService() DocumentService {
	return NewDocumentService(zerolog.Nop(), func() time.Time { return fixedNow })
}

func sampleDoc() *domain.Document {
	return testutil.NewTestDocument(
		testutil.WithUsername("sam"),
		testutil.WithCategory(testutil.FoodCategory()),
	)
}

func TestDocumentService_SaveAndLoad(t *testing.T) {
	svc := newDocumentService()
	ctx := context.Background()

	for _, name := range []string{"doc.json", "doc.yaml"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "nested", name)
			doc := sampleDoc()
			require.NoError(t, svc.Save(ctx, path, doc))

			res, err := svc.Load(ctx, path)
			require.NoError(t, err)
			assert.Equal(t, doc, res.Document)
			assert.Empty(t, res.Warnings)
		})
	}
}

func TestDocumentService_SaveRejectsCompactText(t *testing.T) {
	svc := newDocumentService()
	path := filepath.Join(t.TempDir(), "doc.prefy")
	assert.Error(t, svc.Save(context.Background(), path, sampleDoc()))
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestDocumentService_LoadPrefy(t *testing.T) {
	svc := newDocumentService()
	path := writeFile(t, t.TempDir(), "list.prefy", travelPrefy)

	res, err := svc.Load(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, codec.FormatPrefy, res.Format)
	assert.Len(t, res.Document.Categories, 1)
	assert.Len(t, res.Warnings, 1)
}

func TestDocumentService_LoadKeepsErrorsTyped(t *testing.T) {
	svc := newDocumentService()
	path := writeFile(t, t.TempDir(), "bad.json", `{"levels": []}`)

	_, err := svc.Load(context.Background(), path)
	var fErr *domain.FormatError
	require.ErrorAs(t, err, &fErr)

	_, err = svc.Load(context.Background(), filepath.Join(t.TempDir(), "missing.json"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestDocumentService_Backup(t *testing.T) {
	svc := newDocumentService()
	dir := t.TempDir()
	path := writeFile(t, dir, "prefs.json", foodJSON)

	backup, err := svc.Backup(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "prefs_backup_2026-05-01_14-30-00.json"), backup)
	data, err := os.ReadFile(backup)
	require.NoError(t, err)
	assert.Equal(t, foodJSON, string(data))

	backup, err = svc.Backup(context.Background(), filepath.Join(dir, "missing.json"))
	require.NoError(t, err)
	assert.Empty(t, backup)
}

func TestDocumentService_Export(t *testing.T) {
	svc := newDocumentService()
	ctx := context.Background()
	dir := t.TempDir()

	out, err := svc.Export(ctx, sampleDoc(), codec.FormatMarkdown, filepath.Join(dir, "list.md"))
	require.NoError(t, err)
	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), "_Created by sam at 14:30 on May 1, 2026_")

	prevWD, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prevWD) })
	out, err = svc.Export(ctx, sampleDoc(), codec.FormatJSON, "")
	require.NoError(t, err)
	assert.Equal(t, "Prefy_Config_sam_2026-05-01_14-30-00.json", out)
	_, err = os.Stat(filepath.Join(dir, out))
	assert.NoError(t, err)

	out, err = svc.Export(ctx, sampleDoc(), codec.FormatMarkdown, "")
	require.NoError(t, err)
	assert.Equal(t, "Prefy_sam_2026-05-01_14-30-00.md", out)
}

func TestDocumentService_Convert(t *testing.T) {
	svc := newDocumentService()
	dir := t.TempDir()
	in := writeFile(t, dir, "travel.prefy", travelPrefy+"Food (Taste, Smell): Pizza, Sushi, Tacos\n")

	res, err := svc.Convert(context.Background(), in, "")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "travel.json"), res.Out)
	assert.Equal(t, 2, res.Categories)
	assert.Equal(t, 5, res.Entries)
	assert.Len(t, res.Warnings, 1)

	data, err := os.ReadFile(res.Out)
	require.NoError(t, err)
	doc, err := codec.Deserialize(data)
	require.NoError(t, err)
	assert.Equal(t, "cat_food_1", doc.Categories[1].ID)
}

func TestDocumentService_ConvertNothingValid(t *testing.T) {
	svc := newDocumentService()
	dir := t.TempDir()
	in := writeFile(t, dir, "empty.prefy", "# only comments\n")

	_, err := svc.Convert(context.Background(), in, "")
	var fErr *domain.FormatError
	require.ErrorAs(t, err, &fErr)
	_, statErr := os.Stat(filepath.Join(dir, "empty.json"))
	assert.True(t, os.IsNotExist(statErr))
}
