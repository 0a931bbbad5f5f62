package content

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/folio-space/core/internal/middleware"
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
	g := rg.Group("/content")

	g.GET("/published", h.published)
	g.GET("/:id", h.get)
	g.GET("/:id/render", h.render)

	a := g.Group("", authMW, adminMW)
	a.GET("", h.all)
	a.POST("", h.create)
	a.PATCH("/:id", h.update)
	a.DELETE("/:id", h.delete)
}

func (h *Handler) all(c *gin.Context) {
	items, err := h.svc.All(c.Request.Context())
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, items)
}

func (h *Handler) published(c *gin.Context) {
	items, err := h.svc.Published(c.Request.Context())
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, items)
}

func (h *Handler) get(c *gin.Context) {
	item, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.replyError(c, err)
		return
	}
	if !item.IsPublished && !middleware.IsAdmin(c) {
		response.NotFoundMsg(c, "content item not found")
		return
	}
	response.OK(c, item)
}

func (h *Handler) render(c *gin.Context) {
	item, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.replyError(c, err)
		return
	}
	if !item.IsPublished && !middleware.IsAdmin(c) {
		response.NotFoundMsg(c, "content item not found")
		return
	}
	html, err := RenderMarkdown(item.Text)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, gin.H{"id": item.ID, "html": html})
}

func (h *Handler) create(c *gin.Context) {
	var dto CreateContentDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	item, err := h.svc.Create(c.Request.Context(), &dto)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Created(c, item)
}

func (h *Handler) update(c *gin.Context) {
	var dto UpdateContentDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if err := h.svc.Update(c.Request.Context(), c.Param("id"), &dto); err != nil {
		h.replyError(c, err)
		return
	}
	response.NoContent(c)
}

func (h *Handler) delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, ErrDeletionIncomplete) {
			response.BadGateway(c, "deletion incomplete, retry the request")
			return
		}
		h.replyError(c, err)
		return
	}
	response.NoContent(c)
}

func (h *Handler) replyError(c *gin.Context, err error) {
	if errors.Is(err, store.ErrNotFound) {
		response.NotFoundMsg(c, "content item not found")
		return
	}
	response.InternalError(c, err)
}
