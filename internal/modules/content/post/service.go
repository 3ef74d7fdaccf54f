// Package post implements the journal content pipeline.
package post

import (
	"context"
	"errors"
	"time"

	"github.com/atelier-studio/core/internal/models"
	"github.com/atelier-studio/core/internal/modules/content"
	"github.com/atelier-studio/core/internal/modules/content/publish"
	"github.com/atelier-studio/core/internal/modules/content/slugtracker"
	"github.com/atelier-studio/core/internal/modules/render"
	"github.com/atelier-studio/core/internal/pkg/pagination"
	"github.com/atelier-studio/core/internal/pkg/response"
	"github.com/atelier-studio/core/internal/pkg/slug"
	"gorm.io/gorm"
)

// Service provides post operations.
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

// ListQuery narrows a post listing.
type ListQuery struct {
	Status models.ContentStatus
	Tag    string
	Search string
}

// List returns posts ordered by most recently updated.
func (s *Service) List(q ListQuery, page pagination.Query) ([]models.PostModel, response.Pagination, error) {
	tx := s.db.Model(&models.PostModel{})
	if q.Status != "" {
		tx = tx.Where("status = ?", q.Status)
	}
	tx = content.FilterTag(tx, q.Tag)
	tx = content.FilterSearch(tx, q.Search)
	tx = tx.Order("updated_at DESC")

	var posts []models.PostModel
	p, err := pagination.Paginate(tx, page, &posts)
	if err != nil {
		return nil, response.Pagination{}, err
	}
	return posts, p, nil
}

// GetByID returns a post regardless of status.
func (s *Service) GetByID(id string) (*models.PostModel, error) {
	var m models.PostModel
	err := s.db.Where("id = ?", id).First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, content.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// GetBySlug returns a post by slug, optionally restricted to published ones.
func (s *Service) GetBySlug(slugStr string, publishedOnly bool) (*models.PostModel, error) {
	tx := s.db.Where("slug = ?", slugStr)
	if publishedOnly {
		tx = tx.Where("status = ?", models.StatusPublished)
	}
	var m models.PostModel
	err := tx.First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, content.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// Detail renders the read shape of a post.
func (s *Service) Detail(slugStr string, publishedOnly bool) (*PostDetail, error) {
	m, err := s.GetBySlug(slugStr, publishedOnly)
	if err != nil {
		return nil, err
	}
	html, err := render.ToHTML(m.Body)
	if err != nil {
		return nil, err
	}
	return &PostDetail{
		PostModel:      *m,
		HTML:           html,
		Headings:       render.Headings(m.Body),
		ReadingMinutes: render.ReadingMinutes(m.Body),
	}, nil
}

// SlugExists reports whether another post already holds the slug.
func (s *Service) SlugExists(slugStr, excludeID string) (bool, error) {
	tx := s.db.Model(&models.PostModel{}).Where("slug = ?", slugStr)
	if excludeID != "" {
		tx = tx.Where("id <> ?", excludeID)
	}
	var count int64
	if err := tx.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Create inserts a new post.
func (s *Service) Create(ctx context.Context, dto CreatePostDTO) (*models.PostModel, error) {
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

	m := models.PostModel{
		Slug:        resolved,
		Title:       dto.Title,
		CoverURL:    dto.CoverURL,
		Gallery:     dto.Gallery,
		Tags:        dto.Tags,
		Excerpt:     dto.Excerpt,
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

// Update applies a partial patch; see the project service for the slug
// renaming rules, which are identical here.
func (s *Service) Update(ctx context.Context, id string, dto UpdatePostDTO) (*models.PostModel, error) {
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
	if dto.CoverURL != nil {
		m.CoverURL = *dto.CoverURL
	}
	if dto.Gallery != nil {
		m.Gallery = *dto.Gallery
	}
	if dto.Tags != nil {
		m.Tags = *dto.Tags
	}
	if dto.Excerpt != nil {
		m.Excerpt = *dto.Excerpt
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
		if err := s.tracker.Track(oldSlug, content.KindPost, m.ID); err != nil {
			return nil, err
		}
	}

	s.revalidate(ctx, m, oldSlug)
	return m, nil
}

// Delete removes a post and revalidates the routes that referenced it.
func (s *Service) Delete(ctx context.Context, id string) error {
	m, err := s.GetByID(id)
	if err != nil {
		return err
	}
	if err := s.db.Delete(&models.PostModel{}, "id = ?", id).Error; err != nil {
		return err
	}
	if s.tracker != nil {
		if err := s.tracker.DeleteByTargetID(id); err != nil {
			return err
		}
	}
	s.reval.Dispatch(ctx, "/", content.KindPost.ListPath(), content.KindPost.DetailPath(m.Slug))
	return nil
}

func (s *Service) revalidate(ctx context.Context, m *models.PostModel, oldSlug string) {
	paths := []string{"/", content.KindPost.ListPath()}
	if m.Status == models.StatusPublished {
		paths = append(paths, content.KindPost.DetailPath(m.Slug))
	}
	if oldSlug != "" && oldSlug != m.Slug {
		paths = append(paths, content.KindPost.DetailPath(oldSlug))
	}
	s.reval.Dispatch(ctx, paths...)
}
