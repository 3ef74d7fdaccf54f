// Package content defines the shared vocabulary of the two content kinds and
// the error taxonomy of the admin write pipeline.
package content

import (
	"context"
	"errors"

	"github.com/atelier-studio/core/internal/pkg/response"
	"github.com/gin-gonic/gin"
)

// Kind identifies a content collection.
type Kind string

const (
	KindProject Kind = "project"
	KindPost    Kind = "post"
)

// ParseKind maps route/request spellings onto a Kind.
func ParseKind(raw string) (Kind, bool) {
	switch raw {
	case "project", "projects":
		return KindProject, true
	case "post", "posts", "blog":
		return KindPost, true
	}
	return "", false
}

// ListPath is the public site route listing this kind.
func (k Kind) ListPath() string {
	if k == KindPost {
		return "/blog"
	}
	return "/projects"
}

// DetailPath is the public site route of a single record.
func (k Kind) DetailPath(slug string) string {
	return k.ListPath() + "/" + slug
}

var (
	// ErrNotFound means the referenced record id does not exist.
	ErrNotFound = errors.New("content record not found")
	// ErrDuplicateSlug means the slug is taken by another record of the same kind.
	ErrDuplicateSlug = errors.New("slug already exists")
	// ErrInvalidSlug means the title/explicit slug resolved to an empty slug.
	ErrInvalidSlug = errors.New("slug resolves to empty")
)

// Revalidator invalidates cached public routes after content writes.
type Revalidator interface {
	Dispatch(ctx context.Context, paths ...string)
}

// NopRevalidator is used when no cache layer is wired (tests, redis-less dev).
type NopRevalidator struct{}

func (NopRevalidator) Dispatch(context.Context, ...string) {}

// RespondError maps pipeline errors onto HTTP responses. Validation and
// duplicate-slug failures carry actionable messages; everything else is a
// generic failure.
func RespondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrInvalidSlug):
		response.UnprocessableEntity(c, "title or slug must contain at least one letter or digit")
	case errors.Is(err, ErrDuplicateSlug):
		response.Conflict(c, "slug already exists, pick a different one")
	case errors.Is(err, ErrNotFound):
		response.NotFound(c)
	default:
		response.InternalError(c, err)
	}
}
