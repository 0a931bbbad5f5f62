package user

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/folio-space/core/internal/middleware"
	"github.com/folio-space/core/internal/models"
	"github.com/folio-space/core/internal/pkg/response"
	"github.com/folio-space/core/internal/store"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW, adminMW gin.HandlerFunc) {
	rg.GET("/user", authMW, h.me)

	a := rg.Group("/users", authMW, adminMW)
	a.GET("", h.all)
	a.PATCH("/:id/role", h.setRole)
	a.PATCH("/:id/active", h.setActive)
}

func (h *Handler) me(c *gin.Context) {
	u, err := h.svc.Get(c.Request.Context(), middleware.CurrentUserID(c))
	if err != nil {
		h.replyError(c, err)
		return
	}
	response.OK(c, u)
}

func (h *Handler) all(c *gin.Context) {
	users, err := h.svc.All(c.Request.Context())
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, users)
}

func (h *Handler) setRole(c *gin.Context) {
	var dto struct {
		Role models.Role `json:"role" binding:"required,oneof=user admin"`
	}
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if err := h.svc.SetRole(c.Request.Context(), c.Param("id"), dto.Role); err != nil {
		h.replyError(c, err)
		return
	}
	response.NoContent(c)
}

func (h *Handler) setActive(c *gin.Context) {
	var dto struct {
		Active *bool `json:"active" binding:"required"`
	}
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if err := h.svc.SetActive(c.Request.Context(), c.Param("id"), *dto.Active); err != nil {
		h.replyError(c, err)
		return
	}
	response.NoContent(c)
}

func (h *Handler) replyError(c *gin.Context, err error) {
	if errors.Is(err, store.ErrNotFound) {
		response.NotFoundMsg(c, "user not found")
		return
	}
	response.InternalError(c, err)
}
