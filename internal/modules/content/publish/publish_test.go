package publish

import (
	"testing"
	"time"

	"github.com/atelier-studio/core/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolvePublishedAt(t *testing.T) {
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	earlier := now.Add(-48 * time.Hour)
	explicit := now.Add(-time.Hour)

	t.Run("first publish stamps now", func(t *testing.T) {
		got := ResolvePublishedAt(models.StatusPublished, nil, nil, now)
		require.NotNil(t, got)
		assert.Equal(t, now, *got)
	})

	t.Run("draft edit leaves value unset", func(t *testing.T) {
		assert.Nil(t, ResolvePublishedAt(models.StatusDraft, nil, nil, now))
	})

	t.Run("republish preserves existing", func(t *testing.T) {
		got := ResolvePublishedAt(models.StatusPublished, nil, &earlier, now)
		require.NotNil(t, got)
		assert.Equal(t, earlier, *got)
	})

	t.Run("unpublish keeps existing", func(t *testing.T) {
		got := ResolvePublishedAt(models.StatusDraft, nil, &earlier, now)
		require.NotNil(t, got)
		assert.Equal(t, earlier, *got)
	})

	t.Run("explicit value always wins", func(t *testing.T) {
		got := ResolvePublishedAt(models.StatusPublished, &explicit, &earlier, now)
		require.NotNil(t, got)
		assert.Equal(t, explicit, *got)

		got = ResolvePublishedAt(models.StatusDraft, &explicit, &earlier, now)
		require.NotNil(t, got)
		assert.Equal(t, explicit, *got)
	})
}
