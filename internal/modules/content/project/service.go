// Package project implements the case-study content pipeline: CRUD, the
// draft/published lifecycle, and the cache revalidation that follows writes.
package project

import (
	"context"
	"errors"
	"time"

	"github.com/atelier-studio/core/internal/models"
	"github.com/atelier-studio/core/internal/modules/content"
	"github.com/atelier-studio/core/internal/modules/content/publish"
	"github.com/atelier-studio/core/internal/modules/content/slugtracker"
	"github.com/atelier-studio/core/internal/pkg/pagination"
	"github.com/atelier-studio/core/internal/pkg/response"
	"github.com/atelier-studio/core/internal/pkg/slug"
	"gorm.io/gorm"
)

// Service provides project operations.
type Service struct {
	db      *gorm.DB
	reval   content.Revalidator
	tracker *slugtracker.Service
}

func NewService(db *gorm.DB, reval content.Revalidator, tracker *slugtracker.Service) *Service {
	if reval == nil {
		reval = content.NopRevalidator{}
	}
	return &Service{db: db, reval: reval, tracker: tracker}
}

// ListQuery narrows a project listing.
type ListQuery struct {
	Status models.ContentStatus
	Tag    string
	Search string
}

// List returns projects ordered by most recently updated.
func (s *Service) List(q ListQuery, page pagination.Query) ([]models.ProjectModel, response.Pagination, error) {
	tx := s.db.Model(&models.ProjectModel{})
	if q.Status != "" {
		tx = tx.Where("status = ?", q.Status)
	}
	tx = content.FilterTag(tx, q.Tag)
	tx = content.FilterSearch(tx, q.Search)
	tx = tx.Order("updated_at DESC")

	var projects []models.ProjectModel
	p, err := pagination.Paginate(tx, page, &projects)
	if err != nil {
		return nil, response.Pagination{}, err
	}
	return projects, p, nil
}

// GetByID returns a project regardless of status.
func (s *Service) GetByID(id string) (*models.ProjectModel, error) {
	var m models.ProjectModel
	err := s.db.Where("id = ?", id).First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, content.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// GetBySlug returns a project by slug. With publishedOnly set, drafts are
// invisible and read as not found.
func (s *Service) GetBySlug(slugStr string, publishedOnly bool) (*models.ProjectModel, error) {
	tx := s.db.Where("slug = ?", slugStr)
	if publishedOnly {
		tx = tx.Where("status = ?", models.StatusPublished)
	}
	var m models.ProjectModel
	err := tx.First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, content.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// SlugExists reports whether another project already holds the slug.
func (s *Service) SlugExists(slugStr, excludeID string) (bool, error) {
	tx := s.db.Model(&models.ProjectModel{}).Where("slug = ?", slugStr)
	if excludeID != "" {
		tx = tx.Where("id <> ?", excludeID)
	}
	var count int64
	if err := tx.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Create inserts a new project. The slug comes from the explicit value or the
// title; the unique index is the final arbiter on duplicates.
func (s *Service) Create(ctx context.Context, dto CreateProjectDTO) (*models.ProjectModel, error) {
	resolved := slug.Resolve(dto.Title, dto.Slug)
	if resolved == "" {
		return nil, content.ErrInvalidSlug
	}

	status := dto.Status
	if status == "" {
		status = models.StatusDraft
	}

	if taken, err := s.SlugExists(resolved, ""); err != nil {
		return nil, err
	} else if taken {
		return nil, content.ErrDuplicateSlug
	}

	m := models.ProjectModel{
		Slug:        resolved,
		Title:       dto.Title,
		Client:      dto.Client,
		CoverURL:    dto.CoverURL,
		Gallery:     dto.Gallery,
		Tags:        dto.Tags,
		Role:        dto.Role,
		Tools:       dto.Tools,
		Timeline:    dto.Timeline,
		Excerpt:     dto.Excerpt,
		Problem:     dto.Problem,
		Approach:    dto.Approach,
		Solution:    dto.Solution,
		Results:     dto.Results,
		Body:        dto.Body,
		SEO:         dto.SEO,
		Status:      status,
		PublishedAt: publish.ResolvePublishedAt(status, dto.PublishedAt, nil, time.Now()),
	}

	if err := s.db.Create(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, content.ErrDuplicateSlug
		}
		return nil, err
	}

	s.revalidate(ctx, &m, "")
	return &m, nil
}

// Update applies a partial patch. Absent fields stay as stored. An explicit
// slug renames the record (the old slug is tracked for redirects); sending
// slug as an empty string re-derives it from the title.
func (s *Service) Update(ctx context.Context, id string, dto UpdateProjectDTO) (*models.ProjectModel, error) {
	m, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	oldSlug := m.Slug

	if dto.Title != nil {
		m.Title = *dto.Title
	}
	if dto.Slug != nil {
		resolved := slug.Resolve(m.Title, *dto.Slug)
		if resolved == "" {
			return nil, content.ErrInvalidSlug
		}
		if resolved != m.Slug {
			if taken, err := s.SlugExists(resolved, m.ID); err != nil {
				return nil, err
			} else if taken {
				return nil, content.ErrDuplicateSlug
			}
			m.Slug = resolved
		}
	}
	if dto.Client != nil {
		m.Client = *dto.Client
	}
	if dto.CoverURL != nil {
		m.CoverURL = *dto.CoverURL
	}
	if dto.Gallery != nil {
		m.Gallery = *dto.Gallery
	}
	if dto.Tags != nil {
		m.Tags = *dto.Tags
	}
	if dto.Role != nil {
		m.Role = *dto.Role
	}
	if dto.Tools != nil {
		m.Tools = *dto.Tools
	}
	if dto.Timeline != nil {
		m.Timeline = dto.Timeline
	}
	if dto.Excerpt != nil {
		m.Excerpt = *dto.Excerpt
	}
	if dto.Problem != nil {
		m.Problem = *dto.Problem
	}
	if dto.Approach != nil {
		m.Approach = *dto.Approach
	}
	if dto.Solution != nil {
		m.Solution = *dto.Solution
	}
	if dto.Results != nil {
		m.Results = dto.Results
	}
	if dto.Body != nil {
		m.Body = *dto.Body
	}
	if dto.SEO != nil {
		m.SEO = dto.SEO
	}
	if dto.Status != nil {
		m.Status = *dto.Status
	}
	m.PublishedAt = publish.ResolvePublishedAt(m.Status, dto.PublishedAt, m.PublishedAt, time.Now())

	if err := s.db.Save(m).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, content.ErrDuplicateSlug
		}
		return nil, err
	}

	if m.Slug != oldSlug && s.tracker != nil {
		if err := s.tracker.Track(oldSlug, content.KindProject, m.ID); err != nil {
			return nil, err
		}
	}

	s.revalidate(ctx, m, oldSlug)
	return m, nil
}

// Delete removes a project and the public routes that referenced it.
func (s *Service) Delete(ctx context.Context, id string) error {
	m, err := s.GetByID(id)
	if err != nil {
		return err
	}
	if err := s.db.Delete(&models.ProjectModel{}, "id = ?", id).Error; err != nil {
		return err
	}
	if s.tracker != nil {
		if err := s.tracker.DeleteByTargetID(id); err != nil {
			return err
		}
	}
	s.reval.Dispatch(ctx, "/", content.KindProject.ListPath(), content.KindProject.DetailPath(m.Slug))
	return nil
}

func (s *Service) revalidate(ctx context.Context, m *models.ProjectModel, oldSlug string) {
	paths := []string{"/", content.KindProject.ListPath()}
	if m.Status == models.StatusPublished {
		paths = append(paths, content.KindProject.DetailPath(m.Slug))
	}
	if oldSlug != "" && oldSlug != m.Slug {
		paths = append(paths, content.KindProject.DetailPath(oldSlug))
	}
	s.reval.Dispatch(ctx, paths...)
}
