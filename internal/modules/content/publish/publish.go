// Package publish holds the draft/published transition rules.
package publish

import (
	"time"

	"github.com/atelier-studio/core/internal/models"
)

// ResolvePublishedAt computes the publishedAt value to persist for a write
// moving a record into next. The policy: an explicit caller value always
// wins; otherwise an existing value is preserved; otherwise the first
// transition to published stamps now. Un-publishing never clears the value.
func ResolvePublishedAt(next models.ContentStatus, explicit, existing *time.Time, now time.Time) *time.Time {
	if explicit != nil {
		return explicit
	}
	if existing != nil {
		return existing
	}
	if next == models.StatusPublished {
		t := now
		return &t
	}
	return nil
}
