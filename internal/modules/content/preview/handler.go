package preview

import (
	"github.com/atelier-studio/core/internal/modules/content"
	"github.com/atelier-studio/core/internal/modules/content/post"
	"github.com/atelier-studio/core/internal/modules/content/project"
	"github.com/atelier-studio/core/internal/pkg/response"
	"github.com/gin-gonic/gin"
)

// Handler exposes token minting (admin) and redemption (public).
type Handler struct {
	svc      *Service
	projects *project.Service
	posts    *post.Service
}

func NewHandler(svc *Service, projects *project.Service, posts *post.Service) *Handler {
	return &Handler{svc: svc, projects: projects, posts: posts}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	rg.POST("/preview-token", authMW, h.mint)
	rg.GET("/preview/:kind/:id", h.redeem)
}

type mintDTO struct {
	Type string `json:"type" binding:"required"`
	ID   string `json:"id" binding:"required"`
}

// POST /preview-token: mint a single-use link for an editor.
func (h *Handler) mint(c *gin.Context) {
	var dto mintDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	kind, ok := content.ParseKind(dto.Type)
	if !ok {
		response.BadRequest(c, "invalid type")
		return
	}
	if err := h.recordExists(kind, dto.ID); err != nil {
		content.RespondError(c, err)
		return
	}

	token, err := h.svc.Mint(c.Request.Context(), kind, dto.ID)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, gin.H{
		"token":     token,
		"expiresIn": int(TokenTTL.Seconds()),
	})
}

// GET /preview/:kind/:id?token=: redeem a token and read the record,
// published or not. The token must have been minted for exactly this record.
func (h *Handler) redeem(c *gin.Context) {
	kind, ok := content.ParseKind(c.Param("kind"))
	if !ok {
		response.BadRequest(c, "invalid kind")
		return
	}
	id := c.Param("id")

	claim, err := h.svc.Consume(c.Request.Context(), c.Query("token"))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if claim == nil || claim.Kind != kind || claim.ID != id {
		response.Forbidden(c, "preview token is invalid or expired")
		return
	}

	switch kind {
	case content.KindProject:
		m, err := h.projects.GetByID(id)
		if err != nil {
			content.RespondError(c, err)
			return
		}
		response.OK(c, m)
	default:
		m, err := h.posts.GetByID(id)
		if err != nil {
			content.RespondError(c, err)
			return
		}
		response.OK(c, m)
	}
}

func (h *Handler) recordExists(kind content.Kind, id string) error {
	if kind == content.KindProject {
		_, err := h.projects.GetByID(id)
		return err
	}
	_, err := h.posts.GetByID(id)
	return err
}
