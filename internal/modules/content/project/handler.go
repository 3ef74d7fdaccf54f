package project

import (
	"github.com/atelier-studio/core/internal/middleware"
	"github.com/atelier-studio/core/internal/models"
	"github.com/atelier-studio/core/internal/modules/content"
	"github.com/atelier-studio/core/internal/pkg/pagination"
	"github.com/atelier-studio/core/internal/pkg/response"
	"github.com/gin-gonic/gin"
)

// Handler handles project HTTP endpoints.
type Handler struct{ svc *Service }

func NewHandler(svc *Service) *Handler { return &Handler{svc: svc} }

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	g := rg.Group("/projects")
	g.GET("", h.list)
	g.GET("/:slug", h.get)
	g.POST("", authMW, h.create)
	g.PUT("/:id", authMW, h.update)
	g.PATCH("/:id", authMW, h.update)
	g.DELETE("/:id", authMW, h.delete)
}

// GET /projects: list. Unauthenticated callers only see published records.
func (h *Handler) list(c *gin.Context) {
	q := ListQuery{
		Tag:    c.Query("tag"),
		Search: c.Query("q"),
	}
	if middleware.IsAuthenticated(c) {
		if status := c.Query("status"); status != "" {
			s := models.ContentStatus(status)
			if !s.Valid() {
				response.BadRequest(c, "invalid status")
				return
			}
			q.Status = s
		}
	} else {
		q.Status = models.StatusPublished
	}

	projects, p, err := h.svc.List(q, pagination.FromContext(c))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Paged(c, projects, p)
}

// GET /projects/:slug: detail. Drafts are only visible to admins.
func (h *Handler) get(c *gin.Context) {
	m, err := h.svc.GetBySlug(c.Param("slug"), !middleware.IsAuthenticated(c))
	if err != nil {
		content.RespondError(c, err)
		return
	}
	response.OK(c, m)
}

// POST /projects
func (h *Handler) create(c *gin.Context) {
	var dto CreateProjectDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	m, err := h.svc.Create(c.Request.Context(), dto)
	if err != nil {
		content.RespondError(c, err)
		return
	}
	response.Created(c, m)
}

// PUT|PATCH /projects/:id
func (h *Handler) update(c *gin.Context) {
	var dto UpdateProjectDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	m, err := h.svc.Update(c.Request.Context(), c.Param("id"), dto)
	if err != nil {
		content.RespondError(c, err)
		return
	}
	response.OK(c, m)
}

// DELETE /projects/:id
func (h *Handler) delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		content.RespondError(c, err)
		return
	}
	response.NoContent(c)
}
