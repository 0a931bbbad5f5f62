package comment

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
	g := rg.Group("/comments")
	g.GET("/ref/:contentId", h.listByContent)
	g.POST("/:contentId", authMW, h.create)
}

func (h *Handler) listByContent(c *gin.Context) {
	comments, err := h.svc.ListByContent(c.Request.Context(), c.Param("contentId"))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, comments)
}

func (h *Handler) create(c *gin.Context) {
	var dto CreateDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	cm, err := h.svc.Create(c.Request.Context(),
		c.Param("contentId"),
		middleware.CurrentUserID(c),
		middleware.CurrentUserName(c),
		dto.Text,
	)
	if err != nil {
		if errors.Is(err, ErrContentNotFound) {
			response.BadRequest(c, "content item does not exist")
			return
		}
		response.InternalError(c, err)
		return
	}
	response.Created(c, cm)
}
