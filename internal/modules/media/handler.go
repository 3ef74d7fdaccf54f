package media

import (
	"errors"
	"io"

	"github.com/atelier-studio/core/internal/pkg/pagination"
	"github.com/atelier-studio/core/internal/pkg/response"
	"github.com/gin-gonic/gin"
)

// Handler handles media library HTTP endpoints. Everything here is admin-only.
type Handler struct{ svc *Service }

func NewHandler(svc *Service) *Handler { return &Handler{svc: svc} }

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	g := rg.Group("/media", authMW)
	g.POST("/upload", h.upload)
	g.GET("", h.list)
	g.DELETE("/:id", h.delete)
}

// POST /media/upload: multipart upload, field name "file".
func (h *Handler) upload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, "missing 'file' field")
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		response.InternalError(c, err)
		return
	}
	defer f.Close()

	payload, err := io.ReadAll(f)
	if err != nil {
		response.InternalError(c, err)
		return
	}

	asset, err := h.svc.Upload(c.Request.Context(), fileHeader.Filename, payload, fileHeader.Header.Get("Content-Type"))
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	response.Created(c, asset)
}

// GET /media: newest first.
func (h *Handler) list(c *gin.Context) {
	assets, p, err := h.svc.List(pagination.FromContext(c))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Paged(c, assets, p)
}

// DELETE /media/:id
func (h *Handler) delete(c *gin.Context) {
	if err := h.svc.Delete(c.Param("id")); err != nil {
		if errors.Is(err, ErrNotFound) {
			response.NotFound(c)
			return
		}
		response.InternalError(c, err)
		return
	}
	response.NoContent(c)
}
