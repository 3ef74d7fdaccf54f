package content

import (
	"github.com/atelier-studio/core/internal/pkg/response"
	slugpkg "github.com/atelier-studio/core/internal/pkg/slug"
	"github.com/gin-gonic/gin"
)

// SlugChecker reports whether a slug is taken within one content kind.
type SlugChecker interface {
	SlugExists(slug, excludeID string) (bool, error)
}

// AdminHandler serves the editor-facing helpers that cut across kinds.
type AdminHandler struct {
	checkers map[Kind]SlugChecker
}

func NewAdminHandler(checkers map[Kind]SlugChecker) *AdminHandler {
	return &AdminHandler{checkers: checkers}
}

func (h *AdminHandler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	rg.GET("/admin/slug-check", authMW, h.slugCheck)
}

// GET /admin/slug-check?type=&slug=&exclude=: live availability check while
// the editor types. The normalized form is echoed back so the panel can show
// what will actually be stored.
func (h *AdminHandler) slugCheck(c *gin.Context) {
	kind, ok := ParseKind(c.Query("type"))
	if !ok {
		response.BadRequest(c, "invalid type")
		return
	}
	normalized := slugpkg.Normalize(c.Query("slug"))
	if normalized == "" {
		response.UnprocessableEntity(c, "slug resolves to empty")
		return
	}

	checker, ok := h.checkers[kind]
	if !ok {
		response.BadRequest(c, "invalid type")
		return
	}
	exists, err := checker.SlugExists(normalized, c.Query("exclude"))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, gin.H{"slug": normalized, "exists": exists})
}
