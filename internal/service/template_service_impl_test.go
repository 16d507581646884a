package service

import (
	"bytes"
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	"github.com/prefyhq/prefy/internal/db"
	"github.com/prefyhq/prefy/internal/domain"
	"github.com/prefyhq/prefy/internal/repository"
	"github.com/prefyhq/prefy/internal/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const foodJSON = `{
  "username": "",
  "exportTitle": "Food Night",
  "levels": [{"id": "none", "name": "None", "color": "#ffffff"}, {"id": "liked", "name": "Liked", "color": "#48bb78"}],
  "categories": [{"id": "cat_food", "name": "Food", "properties": ["Taste"],
    "entries": [{"id": "e1", "name": "Pizza", "levels": {"Taste": "liked"}}]}]
}`

const musicYAML = `levels:
  - {id: none, name: None, color: "#ffffff"}
categories:
  - id: cat_music
    name: Music
    properties: [{name: Volume, type: scale}]
    entries:
      - {id: e1, name: Jazz, levels: {Volume: 4}}
      - {id: e2, name: Rock, levels: {Volume: 9}}
`

const travelPrefy = "# travel\nTravel (Interest): Beach, Mountains\nbroken line\n"

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	return p
}

type templateFixture struct {
	svc  TemplateService
	repo *repository.SQLiteTemplateRepo
	dir  string
	logs *bytes.Buffer
}

func newTemplateFixture(t *testing.T, uow func(*sql.DB) db.UnitOfWork) templateFixture {
	t.Helper()
	database := testutil.NewTestDB(t)
	repo := repository.NewSQLiteTemplateRepo(database)
	var unit db.UnitOfWork = testutil.NewTestUoW(database)
	if uow != nil {
		unit = uow(database)
	}
	logs := &bytes.Buffer{}
	logger := zerolog.New(logs)
	dir := t.TempDir()
	return templateFixture{
		svc:  NewTemplateService(repo, unit, dir, logger),
		repo: repo,
		dir:  dir,
		logs: logs,
	}
}

func TestTemplateService_AddFromEachFormat(t *testing.T) {
	f := newTemplateFixture(t, nil)
	ctx := context.Background()
	src := t.TempDir()

	res, err := f.svc.Add(ctx, "", writeFile(t, src, "food.json", foodJSON))
	require.NoError(t, err)
	assert.Equal(t, "food", res.Template.Name)
	assert.Equal(t, "Food Night", res.Template.Title)
	assert.Equal(t, domain.SourceJSON, res.Template.Source)
	assert.Equal(t, 1, res.Template.CategoryCount)
	assert.Equal(t, 1, res.Template.EntryCount)

	res, err = f.svc.Add(ctx, "tunes", writeFile(t, src, "music.yaml", musicYAML))
	require.NoError(t, err)
	assert.Equal(t, "tunes", res.Template.Name)
	assert.Equal(t, "tunes", res.Template.Title)
	assert.Equal(t, domain.SourceYAML, res.Template.Source)
	assert.Equal(t, 2, res.Template.EntryCount)

	res, err = f.svc.Add(ctx, "", writeFile(t, src, "travel.prefy", travelPrefy))
	require.NoError(t, err)
	assert.Equal(t, domain.SourcePrefy, res.Template.Source)
	require.Len(t, res.Warnings, 1)
	assert.Equal(t, 3, res.Warnings[0].Line)
	assert.Contains(t, f.logs.String(), "broken line")

	list, err := f.svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "food", list[0].Name)
}

func TestTemplateService_AddRejectsInvalidFile(t *testing.T) {
	f := newTemplateFixture(t, nil)
	src := t.TempDir()

	_, err := f.svc.Add(context.Background(), "bad", writeFile(t, src, "bad.json", `{"categories": []}`))
	var fErr *domain.FormatError
	require.ErrorAs(t, err, &fErr)

	list, err := f.svc.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestTemplateService_GetResolvesNameCaseAndIndex(t *testing.T) {
	f := newTemplateFixture(t, nil)
	ctx := context.Background()
	for _, name := range []string{"food", "music"} {
		require.NoError(t, f.repo.Upsert(ctx, testutil.NewTestTemplate(name)))
	}

	tests := []struct {
		input string
		want  string
	}{
		{"food", "food"},
		{"MUSIC", "music"},
		{" music ", "music"},
		{"1", "food"},
		{"2", "music"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := f.svc.Get(ctx, tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Name)
		})
	}

	var nf *domain.NotFoundError
	_, err := f.svc.Get(ctx, "3")
	require.ErrorAs(t, err, &nf)
	var vErr *domain.ValidationError
	_, err = f.svc.Get(ctx, "  ")
	require.ErrorAs(t, err, &vErr)
}

func TestTemplateService_Remove(t *testing.T) {
	f := newTemplateFixture(t, nil)
	ctx := context.Background()
	require.NoError(t, f.repo.Upsert(ctx, testutil.NewTestTemplate("food")))

	removed, err := f.svc.Remove(ctx, "FOOD")
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = f.svc.Remove(ctx, "food")
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestTemplateService_ImportDir(t *testing.T) {
	f := newTemplateFixture(t, nil)
	ctx := context.Background()
	src := t.TempDir()
	writeFile(t, src, "food.json", foodJSON)
	writeFile(t, src, "music.yml", musicYAML)
	writeFile(t, src, "travel.prefy", travelPrefy)
	writeFile(t, src, "notes.txt", "ignored")
	require.NoError(t, os.Mkdir(filepath.Join(src, "nested.json"), 0o755))

	res, err := f.svc.ImportDir(ctx, src)
	require.NoError(t, err)
	assert.Equal(t, []string{"food", "music", "travel"}, res.Imported)
	assert.Len(t, res.Warnings["travel"], 1)

	list, err := f.svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 3)
}

func TestTemplateService_ImportDirIsAllOrNothingOnBadFile(t *testing.T) {
	f := newTemplateFixture(t, nil)
	ctx := context.Background()
	src := t.TempDir()
	writeFile(t, src, "a.json", foodJSON)
	writeFile(t, src, "b.json", `{not json`)
	writeFile(t, src, "c.prefy", "nothing valid here")

	_, err := f.svc.ImportDir(ctx, src)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "2 errors")
	assert.Contains(t, err.Error(), "b.json")
	assert.Contains(t, err.Error(), "c.prefy")

	list, err := f.svc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestTemplateService_ImportDirRejectsDuplicateNames(t *testing.T) {
	f := newTemplateFixture(t, nil)
	src := t.TempDir()
	writeFile(t, src, "food.json", foodJSON)
	writeFile(t, src, "food.yaml", musicYAML)

	_, err := f.svc.ImportDir(context.Background(), src)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already defined")
}

func TestTemplateService_ImportDirRollsBackOnWriteFailure(t *testing.T) {
	f := newTemplateFixture(t, func(database *sql.DB) db.UnitOfWork {
		return &testutil.FailingUoW{DB: database, FailOn: 2}
	})
	ctx := context.Background()
	src := t.TempDir()
	writeFile(t, src, "a.json", foodJSON)
	writeFile(t, src, "b.yaml", musicYAML)
	writeFile(t, src, "c.prefy", travelPrefy)

	_, err := f.svc.ImportDir(ctx, src)
	require.ErrorIs(t, err, testutil.ErrInjected)

	list, err := f.svc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list, "first upsert must be rolled back")
}

func TestTemplateService_LoadFromCatalog(t *testing.T) {
	f := newTemplateFixture(t, nil)
	ctx := context.Background()
	_, err := f.svc.Add(ctx, "food", writeFile(t, t.TempDir(), "food.json", foodJSON))
	require.NoError(t, err)

	doc, err := f.svc.Load(ctx, "food")
	require.NoError(t, err)
	assert.Equal(t, "Food Night", doc.ExportTitle)
	require.Len(t, doc.Categories, 1)
	assert.True(t, doc.Categories[0].Entries[0].Values["Taste"].Is("liked"))
}

func TestTemplateService_LoadFallsBackToTemplateDir(t *testing.T) {
	f := newTemplateFixture(t, nil)
	writeFile(t, f.dir, "general_interests.prefy", travelPrefy)

	doc, err := f.svc.Load(context.Background(), "general_interests")
	require.NoError(t, err)
	require.Len(t, doc.Categories, 1)
	assert.Equal(t, "Travel", doc.Categories[0].Name)
}

func TestTemplateService_LoadMissing(t *testing.T) {
	f := newTemplateFixture(t, nil)
	_, err := f.svc.Load(context.Background(), "../etc/passwd")
	var nf *domain.NotFoundError
	require.ErrorAs(t, err, &nf)
}

func TestTemplateService_BootstrapFallsBackToDefault(t *testing.T) {
	f := newTemplateFixture(t, nil)
	writeFile(t, f.dir, "broken.json", `{"levels": []}`)

	doc := f.svc.Bootstrap(context.Background(), "broken")
	require.NotNil(t, doc)
	assert.Equal(t, domain.DefaultLevels(), doc.Levels)
	assert.Empty(t, doc.Categories)
	assert.Contains(t, f.logs.String(), "falling back to the default document")

	doc = f.svc.Bootstrap(context.Background(), "missing")
	assert.Equal(t, domain.DefaultExportTitle, doc.ExportTitle)
}

func TestTemplateService_ObservesUseCases(t *testing.T) {
	database := testutil.NewTestDB(t)
	var events []UseCaseEvent
	obs := observerFunc(func(e UseCaseEvent) { events = append(events, e) })
	svc := NewTemplateService(repository.NewSQLiteTemplateRepo(database), testutil.NewTestUoW(database), "", zerolog.Nop(), obs)

	_, err := svc.Add(context.Background(), "food", writeFile(t, t.TempDir(), "food.json", foodJSON))
	require.NoError(t, err)
	_, err = svc.Add(context.Background(), "x", filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)

	require.Len(t, events, 2)
	assert.Equal(t, "add-template", events[0].Name)
	assert.True(t, events[0].Success)
	assert.Equal(t, 1, events[0].Fields["categories"])
	assert.False(t, events[1].Success)
	assert.Error(t, events[1].Err)
}

type observerFunc func(UseCaseEvent)

func (f observerFunc) ObserveUseCase(_ context.Context, e UseCaseEvent) { f(e) }
