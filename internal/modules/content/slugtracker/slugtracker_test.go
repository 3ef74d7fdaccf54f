package slugtracker

import (
	"testing"

	"github.com/atelier-studio/core/internal/models"
	"github.com/atelier-studio/core/internal/modules/content"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.SlugTrackerModel{}))
	return NewService(db)
}

func TestTrackAndFind(t *testing.T) {
	svc := newTestService(t)

	require.NoError(t, svc.Track("old-name", content.KindProject, "id-1"))

	target, err := svc.FindBySlug("old-name", content.KindProject)
	require.NoError(t, err)
	assert.Equal(t, "id-1", target)

	// same slug under the other kind is a separate namespace
	target, err = svc.FindBySlug("old-name", content.KindPost)
	require.NoError(t, err)
	assert.Empty(t, target)
}

func TestTrackUpdatesExistingEntry(t *testing.T) {
	svc := newTestService(t)

	require.NoError(t, svc.Track("renamed-twice", content.KindPost, "id-1"))
	require.NoError(t, svc.Track("renamed-twice", content.KindPost, "id-2"))

	target, err := svc.FindBySlug("renamed-twice", content.KindPost)
	require.NoError(t, err)
	assert.Equal(t, "id-2", target)
}

func TestDeleteByTargetID(t *testing.T) {
	svc := newTestService(t)

	require.NoError(t, svc.Track("a", content.KindProject, "id-1"))
	require.NoError(t, svc.Track("b", content.KindProject, "id-1"))
	require.NoError(t, svc.Track("c", content.KindProject, "id-2"))

	require.NoError(t, svc.DeleteByTargetID("id-1"))

	target, err := svc.FindBySlug("a", content.KindProject)
	require.NoError(t, err)
	assert.Empty(t, target)

	target, err = svc.FindBySlug("c", content.KindProject)
	require.NoError(t, err)
	assert.Equal(t, "id-2", target)
}
