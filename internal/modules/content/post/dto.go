package post

import (
	"time"

	"github.com/atelier-studio/core/internal/models"
	"github.com/atelier-studio/core/internal/modules/render"
)

// CreatePostDTO is the request body for creating a journal post.
type CreatePostDTO struct {
	Title       string               `json:"title" binding:"required"`
	Slug        string               `json:"slug"`
	CoverURL    string               `json:"coverUrl"`
	Gallery     []string             `json:"gallery"`
	Tags        []string             `json:"tags"`
	Excerpt     string               `json:"excerpt"`
	Body        string               `json:"body"`
	SEO         *models.SEOOverride  `json:"seo"`
	Status      models.ContentStatus `json:"status" binding:"omitempty,oneof=draft published"`
	PublishedAt *time.Time           `json:"publishedAt"`
}

// UpdatePostDTO carries a partial patch; nil pointers leave fields untouched.
type UpdatePostDTO struct {
	Title       *string               `json:"title"`
	Slug        *string               `json:"slug"`
	CoverURL    *string               `json:"coverUrl"`
	Gallery     *[]string             `json:"gallery"`
	Tags        *[]string             `json:"tags"`
	Excerpt     *string               `json:"excerpt"`
	Body        *string               `json:"body"`
	SEO         *models.SEOOverride   `json:"seo"`
	Status      *models.ContentStatus `json:"status" binding:"omitempty,oneof=draft published"`
	PublishedAt *time.Time            `json:"publishedAt"`
}

// PostDetail is the public read shape of a post: the stored record plus the
// rendered body.
type PostDetail struct {
	models.PostModel
	HTML           string           `json:"html"`
	Headings       []render.Heading `json:"headings,omitempty"`
	ReadingMinutes int              `json:"readingMinutes"`
}
