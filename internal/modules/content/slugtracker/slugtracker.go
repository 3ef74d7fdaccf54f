// Package slugtracker remembers old slugs after renames so stale public
// links can redirect to the current record.
package slugtracker

import (
	"errors"

	"github.com/atelier-studio/core/internal/models"
	"github.com/atelier-studio/core/internal/modules/content"
	"github.com/atelier-studio/core/internal/pkg/response"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Service provides slug tracking operations.
type Service struct{ db *gorm.DB }

func NewService(db *gorm.DB) *Service { return &Service{db: db} }

// Track records that oldSlug for the given kind now points to targetID.
func (s *Service) Track(oldSlug string, kind content.Kind, targetID string) error {
	tracker := models.SlugTrackerModel{
		Slug:     oldSlug,
		Kind:     string(kind),
		TargetID: targetID,
	}
	return s.db.Where(models.SlugTrackerModel{Slug: oldSlug, Kind: string(kind)}).
		Assign(models.SlugTrackerModel{TargetID: targetID}).
		FirstOrCreate(&tracker).Error
}

// FindBySlug returns the current targetID for an old slug, or ("", nil).
func (s *Service) FindBySlug(oldSlug string, kind content.Kind) (string, error) {
	var tracker models.SlugTrackerModel
	err := s.db.Where("slug = ? AND kind = ?", oldSlug, string(kind)).First(&tracker).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return tracker.TargetID, nil
}

// DeleteByTargetID removes all tracker entries for a content record.
func (s *Service) DeleteByTargetID(targetID string) error {
	return s.db.Where("target_id = ?", targetID).Delete(&models.SlugTrackerModel{}).Error
}

type Handler struct{ svc *Service }

func NewHandler(svc *Service) *Handler { return &Handler{svc: svc} }

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/slug-tracker/redirect/:kind/:slug", h.redirect)
}

// GET /slug-tracker/redirect/:kind/:slug: public lookup for stale links.
func (h *Handler) redirect(c *gin.Context) {
	kind, ok := content.ParseKind(c.Param("kind"))
	if !ok {
		response.BadRequest(c, "invalid kind")
		return
	}
	oldSlug := c.Param("slug")

	targetID, err := h.svc.FindBySlug(oldSlug, kind)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if targetID == "" {
		response.NotFound(c)
		return
	}
	response.OK(c, gin.H{"target_id": targetID, "kind": kind, "slug": oldSlug})
}
