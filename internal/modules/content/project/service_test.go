package project

import (
	"context"
	"testing"
	"time"

	"github.com/atelier-studio/core/internal/models"
	"github.com/atelier-studio/core/internal/modules/content"
	"github.com/atelier-studio/core/internal/modules/content/slugtracker"
	"github.com/atelier-studio/core/internal/pkg/pagination"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type recordingRevalidator struct {
	paths []string
}

func (r *recordingRevalidator) Dispatch(_ context.Context, paths ...string) {
	r.paths = append(r.paths, paths...)
}

func (r *recordingRevalidator) reset() { r.paths = nil }

func newTestService(t *testing.T) (*Service, *recordingRevalidator, *slugtracker.Service) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.ProjectModel{}, &models.SlugTrackerModel{}))

	reval := &recordingRevalidator{}
	tracker := slugtracker.NewService(db)
	return NewService(db, reval, tracker), reval, tracker
}

func TestCreateDerivesSlugFromTitle(t *testing.T) {
	svc, reval, _ := newTestService(t)

	m, err := svc.Create(context.Background(), CreateProjectDTO{Title: "My Great Case"})
	require.NoError(t, err)
	assert.Equal(t, "my-great-case", m.Slug)
	assert.NotEmpty(t, m.ID)
	assert.Equal(t, models.StatusDraft, m.Status)
	assert.Nil(t, m.PublishedAt)

	// draft create touches the home and list routes, never the detail route
	assert.Equal(t, []string{"/", "/projects"}, reval.paths)
}

func TestCreateExplicitSlugWins(t *testing.T) {
	svc, _, _ := newTestService(t)

	m, err := svc.Create(context.Background(), CreateProjectDTO{Title: "Whatever Title", Slug: "custom-slug"})
	require.NoError(t, err)
	assert.Equal(t, "custom-slug", m.Slug)
}

func TestCreateRejectsEmptySlug(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.Create(context.Background(), CreateProjectDTO{Title: "???"})
	assert.ErrorIs(t, err, content.ErrInvalidSlug)
}

func TestCreateDuplicateSlug(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.Create(context.Background(), CreateProjectDTO{Title: "Brand Refresh"})
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), CreateProjectDTO{Title: "Brand Refresh"})
	assert.ErrorIs(t, err, content.ErrDuplicateSlug)
}

func TestPublishStampsPublishedAtOnce(t *testing.T) {
	svc, reval, _ := newTestService(t)
	ctx := context.Background()

	m, err := svc.Create(ctx, CreateProjectDTO{Title: "Launch Film", Status: models.StatusPublished})
	require.NoError(t, err)
	require.NotNil(t, m.PublishedAt)
	first := *m.PublishedAt

	assert.Contains(t, reval.paths, "/projects/launch-film")

	// unpublish keeps the original timestamp
	draft := models.StatusDraft
	m, err = svc.Update(ctx, m.ID, UpdateProjectDTO{Status: &draft})
	require.NoError(t, err)
	require.NotNil(t, m.PublishedAt)
	assert.Equal(t, first.Unix(), m.PublishedAt.Unix())

	// republish preserves it too
	published := models.StatusPublished
	m, err = svc.Update(ctx, m.ID, UpdateProjectDTO{Status: &published})
	require.NoError(t, err)
	assert.Equal(t, first.Unix(), m.PublishedAt.Unix())
}

func TestUpdateMergesPartialPatch(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	m, err := svc.Create(ctx, CreateProjectDTO{
		Title:  "Identity System",
		Client: "Acme",
		Tags:   []string{"branding"},
		Status: models.StatusPublished,
	})
	require.NoError(t, err)
	stamped := m.PublishedAt

	title := "Identity System v2"
	m, err = svc.Update(ctx, m.ID, UpdateProjectDTO{Title: &title})
	require.NoError(t, err)

	assert.Equal(t, "Identity System v2", m.Title)
	// everything not in the patch is untouched, including the slug
	assert.Equal(t, "identity-system", m.Slug)
	assert.Equal(t, "Acme", m.Client)
	assert.Equal(t, models.StringSlice{"branding"}, m.Tags)
	assert.Equal(t, models.StatusPublished, m.Status)
	require.NotNil(t, m.PublishedAt)
	assert.Equal(t, stamped.Unix(), m.PublishedAt.Unix())
}

func TestUpdateRenameTracksOldSlug(t *testing.T) {
	svc, reval, tracker := newTestService(t)
	ctx := context.Background()

	m, err := svc.Create(ctx, CreateProjectDTO{Title: "Old Name", Status: models.StatusPublished})
	require.NoError(t, err)
	reval.reset()

	newSlug := "new-name"
	m, err = svc.Update(ctx, m.ID, UpdateProjectDTO{Slug: &newSlug})
	require.NoError(t, err)
	assert.Equal(t, "new-name", m.Slug)

	targetID, err := tracker.FindBySlug("old-name", content.KindProject)
	require.NoError(t, err)
	assert.Equal(t, m.ID, targetID)

	// both the new and the stale detail route get revalidated
	assert.Contains(t, reval.paths, "/projects/new-name")
	assert.Contains(t, reval.paths, "/projects/old-name")
}

func TestUpdateRenameToTakenSlug(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateProjectDTO{Title: "First"})
	require.NoError(t, err)
	second, err := svc.Create(ctx, CreateProjectDTO{Title: "Second"})
	require.NoError(t, err)

	taken := "first"
	_, err = svc.Update(ctx, second.ID, UpdateProjectDTO{Slug: &taken})
	assert.ErrorIs(t, err, content.ErrDuplicateSlug)
}

func TestUpdateNonexistent(t *testing.T) {
	svc, _, _ := newTestService(t)

	title := "x"
	_, err := svc.Update(context.Background(), "no-such-id", UpdateProjectDTO{Title: &title})
	assert.ErrorIs(t, err, content.ErrNotFound)
}

func TestDelete(t *testing.T) {
	svc, reval, tracker := newTestService(t)
	ctx := context.Background()

	m, err := svc.Create(ctx, CreateProjectDTO{Title: "Short Lived", Status: models.StatusPublished})
	require.NoError(t, err)
	reval.reset()

	require.NoError(t, svc.Delete(ctx, m.ID))

	_, err = svc.GetByID(m.ID)
	assert.ErrorIs(t, err, content.ErrNotFound)

	assert.Equal(t, []string{"/", "/projects", "/projects/short-lived"}, reval.paths)

	targetID, err := tracker.FindBySlug("short-lived", content.KindProject)
	require.NoError(t, err)
	assert.Empty(t, targetID)

	assert.ErrorIs(t, svc.Delete(ctx, m.ID), content.ErrNotFound)
}

func TestListFilters(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateProjectDTO{Title: "Alpha", Tags: []string{"web"}, Status: models.StatusPublished})
	require.NoError(t, err)
	time.Sleep(10 * time.Millisecond)
	_, err = svc.Create(ctx, CreateProjectDTO{Title: "Beta", Tags: []string{"film", "web"}})
	require.NoError(t, err)

	page := pagination.Query{Page: 1, Size: 10}

	published, p, err := svc.List(ListQuery{Status: models.StatusPublished}, page)
	require.NoError(t, err)
	require.Len(t, published, 1)
	assert.Equal(t, "Alpha", published[0].Title)
	assert.Equal(t, int64(1), p.Total)

	all, _, err := svc.List(ListQuery{}, page)
	require.NoError(t, err)
	require.Len(t, all, 2)
	// most recently updated first
	assert.Equal(t, "Beta", all[0].Title)

	tagged, _, err := svc.List(ListQuery{Tag: "film"}, page)
	require.NoError(t, err)
	require.Len(t, tagged, 1)
	assert.Equal(t, "Beta", tagged[0].Title)

	searched, _, err := svc.List(ListQuery{Search: "Alph"}, page)
	require.NoError(t, err)
	require.Len(t, searched, 1)
	assert.Equal(t, "Alpha", searched[0].Title)
}

func TestSlugExists(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	m, err := svc.Create(ctx, CreateProjectDTO{Title: "Exists"})
	require.NoError(t, err)

	taken, err := svc.SlugExists("exists", "")
	require.NoError(t, err)
	assert.True(t, taken)

	taken, err = svc.SlugExists("exists", m.ID)
	require.NoError(t, err)
	assert.False(t, taken)

	taken, err = svc.SlugExists("nope", "")
	require.NoError(t, err)
	assert.False(t, taken)
}
