package engagement

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/folio-space/core/internal/middleware"
	"github.com/folio-space/core/internal/pkg/response"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	g := rg.Group("/content", authMW)
	g.POST("/:id/like", h.toggleLike)
	g.POST("/:id/view", h.recordView)
}

func (h *Handler) toggleLike(c *gin.Context) {
	liked, err := h.svc.ToggleLike(c.Request.Context(), c.Param("id"), middleware.CurrentUserID(c))
	if err != nil {
		if errors.Is(err, ErrItemNotFound) {
			response.NotFoundMsg(c, "content item not found")
			return
		}
		response.InternalError(c, err)
		return
	}
	response.OK(c, gin.H{"liked": liked})
}

func (h *Handler) recordView(c *gin.Context) {
	err := h.svc.RecordView(c.Request.Context(), c.Param("id"), middleware.CurrentUserID(c))
	if err != nil {
		if errors.Is(err, ErrItemNotFound) {
			response.NotFoundMsg(c, "content item not found")
			return
		}
		response.InternalError(c, err)
		return
	}
	response.NoContent(c)
}
