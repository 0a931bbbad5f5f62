package booking

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
	g := rg.Group("/bookings", authMW)

	g.POST("", h.create)
	g.GET("/mine", h.mine)

	a := g.Group("", adminMW)
	a.GET("", h.all)
	a.GET("/:id", h.get)
	a.PATCH("/:id/status", h.transition)
	a.DELETE("/:id", h.delete)
}

func (h *Handler) create(c *gin.Context) {
	var dto CreateBookingDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	b, err := h.svc.Create(c.Request.Context(), &dto, middleware.CurrentUserID(c))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Created(c, b)
}

func (h *Handler) mine(c *gin.Context) {
	out, err := h.svc.ByUser(c.Request.Context(), middleware.CurrentUserID(c))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, out)
}

func (h *Handler) all(c *gin.Context) {
	out, err := h.svc.All(c.Request.Context())
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, out)
}

func (h *Handler) get(c *gin.Context) {
	b, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.replyError(c, err)
		return
	}
	response.OK(c, b)
}

func (h *Handler) transition(c *gin.Context) {
	var dto TransitionDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	err := h.svc.Transition(c.Request.Context(), c.Param("id"), dto.Status, dto.Notes)
	if err != nil {
		if errors.Is(err, ErrInvalidTransition) {
			response.UnprocessableEntity(c, "this booking cannot be moved to that status")
			return
		}
		h.replyError(c, err)
		return
	}
	response.NoContent(c)
}

func (h *Handler) delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.replyError(c, err)
		return
	}
	response.NoContent(c)
}

func (h *Handler) replyError(c *gin.Context, err error) {
	if errors.Is(err, store.ErrNotFound) {
		response.NotFoundMsg(c, "booking not found")
		return
	}
	response.InternalError(c, err)
}
