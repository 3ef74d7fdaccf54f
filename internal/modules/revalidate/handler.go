package revalidate

import (
	"net/http"
	"strings"

	"github.com/atelier-studio/core/internal/pkg/response"
	"github.com/gin-gonic/gin"
)

// Handler exposes the front end's revalidation endpoint and the admin-only
// deploy hook trigger.
type Handler struct {
	dispatcher    *Dispatcher
	deployHookURL string
	client        *http.Client
}

func NewHandler(dispatcher *Dispatcher, deployHookURL string) *Handler {
	return &Handler{
		dispatcher:    dispatcher,
		deployHookURL: strings.TrimSpace(deployHookURL),
		client:        dispatcher.client,
	}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	rg.POST("/revalidate", h.revalidate)
	rg.POST("/deploy", authMW, h.deploy)
}

type revalidateDTO struct {
	Paths []string `json:"paths"`
}

// POST /revalidate: invalidate a caller-supplied set of public paths.
func (h *Handler) revalidate(c *gin.Context) {
	var dto revalidateDTO
	if err := c.ShouldBindJSON(&dto); err != nil || len(dto.Paths) == 0 {
		response.BadRequest(c, "missing 'paths' array")
		return
	}
	h.dispatcher.Dispatch(c.Request.Context(), dto.Paths...)
	response.OK(c, gin.H{"ok": true})
}

// POST /deploy: trigger the configured build hook (full redeploy).
func (h *Handler) deploy(c *gin.Context) {
	if h.deployHookURL == "" {
		response.BadRequest(c, "deploy hook is not configured")
		return
	}
	resp, err := h.client.Post(h.deployHookURL, "application/json", nil)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	defer resp.Body.Close()
	response.OK(c, gin.H{"ok": resp.StatusCode >= 200 && resp.StatusCode < 300})
}
