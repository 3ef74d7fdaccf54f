package project

import (
	"time"

	"github.com/atelier-studio/core/internal/models"
)

// CreateProjectDTO is the request body for creating a case study.
type CreateProjectDTO struct {
	Title       string               `json:"title" binding:"required"`
	Slug        string               `json:"slug"`
	Client      string               `json:"client"`
	CoverURL    string               `json:"coverUrl"`
	Gallery     []string             `json:"gallery"`
	Tags        []string             `json:"tags"`
	Role        []string             `json:"role"`
	Tools       []string             `json:"tools"`
	Timeline    *models.CaseTimeline `json:"timeline"`
	Excerpt     string               `json:"excerpt"`
	Problem     string               `json:"problem"`
	Approach    string               `json:"approach"`
	Solution    string               `json:"solution"`
	Results     *models.CaseResults  `json:"results"`
	Body        string               `json:"body"`
	SEO         *models.SEOOverride  `json:"seo"`
	Status      models.ContentStatus `json:"status" binding:"omitempty,oneof=draft published"`
	PublishedAt *time.Time           `json:"publishedAt"`
}

// UpdateProjectDTO carries a partial patch. Absent fields (nil pointers) are
// left untouched; present fields overwrite, including explicit empty values.
type UpdateProjectDTO struct {
	Title       *string               `json:"title"`
	Slug        *string               `json:"slug"`
	Client      *string               `json:"client"`
	CoverURL    *string               `json:"coverUrl"`
	Gallery     *[]string             `json:"gallery"`
	Tags        *[]string             `json:"tags"`
	Role        *[]string             `json:"role"`
	Tools       *[]string             `json:"tools"`
	Timeline    *models.CaseTimeline  `json:"timeline"`
	Excerpt     *string               `json:"excerpt"`
	Problem     *string               `json:"problem"`
	Approach    *string               `json:"approach"`
	Solution    *string               `json:"solution"`
	Results     *models.CaseResults   `json:"results"`
	Body        *string               `json:"body"`
	SEO         *models.SEOOverride   `json:"seo"`
	Status      *models.ContentStatus `json:"status" binding:"omitempty,oneof=draft published"`
	PublishedAt *time.Time            `json:"publishedAt"`
}
