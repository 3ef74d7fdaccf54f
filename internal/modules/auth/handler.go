package auth

import (
	"errors"

	"github.com/atelier-studio/core/internal/middleware"
	"github.com/atelier-studio/core/internal/pkg/response"
	"github.com/gin-gonic/gin"
)

// Handler handles authentication HTTP endpoints.
type Handler struct{ svc *Service }

func NewHandler(svc *Service) *Handler { return &Handler{svc: svc} }

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	g := rg.Group("/auth")
	g.POST("/login", h.login)
	g.POST("/bootstrap", h.bootstrap)
	g.POST("/logout", authMW, h.logout)
	g.GET("/me", authMW, h.me)
}

type loginDTO struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type bootstrapDTO struct {
	Name     string `json:"name"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

// POST /auth/login
func (h *Handler) login(c *gin.Context) {
	var dto loginDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	token, user, err := h.svc.Login(dto.Email, dto.Password, c.ClientIP(), c.Request.UserAgent())
	if err != nil {
		if errors.Is(err, ErrBadCredentials) {
			response.Unauthorized(c)
			return
		}
		response.InternalError(c, err)
		return
	}
	response.OK(c, gin.H{"token": token, "user": user})
}

// POST /auth/bootstrap: create the first admin account.
func (h *Handler) bootstrap(c *gin.Context) {
	var dto bootstrapDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	user, err := h.svc.Bootstrap(dto.Name, dto.Email, dto.Password)
	if err != nil {
		if errors.Is(err, ErrAlreadyBootstrapped) {
			response.Forbidden(c, err.Error())
			return
		}
		response.InternalError(c, err)
		return
	}
	response.Created(c, user)
}

// POST /auth/logout
func (h *Handler) logout(c *gin.Context) {
	if err := h.svc.Logout(middleware.CurrentUserID(c), middleware.CurrentSessionID(c)); err != nil {
		response.InternalError(c, err)
		return
	}
	response.NoContent(c)
}

// GET /auth/me
func (h *Handler) me(c *gin.Context) {
	user, err := h.svc.Me(middleware.CurrentUserID(c))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, user)
}
