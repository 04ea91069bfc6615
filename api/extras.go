package api

import (
	"net/http"

	"github.com/Domenick1991/hoteldesk/internal/domain"
	"github.com/Domenick1991/hoteldesk/internal/service/extras"
	"github.com/gin-gonic/gin"
)

type ExtraHandler struct {
	service extras.ExtraUseCase
}

func NewExtraHandler(service extras.ExtraUseCase) *ExtraHandler {
	return &ExtraHandler{service: service}
}

func (h *ExtraHandler) Register(router *gin.RouterGroup) {
	router.GET("", h.list)
	router.POST("", h.create)
	router.GET("/:id", h.get)
	router.PUT("/:id", h.update)
}

func (h *ExtraHandler) list(c *gin.Context) {
	list, err := h.service.List(c.Request.Context(), queryBool(c, "active"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *ExtraHandler) create(c *gin.Context) {
	req := domain.ExtraService{Active: true}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	svc, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, svc)
}

func (h *ExtraHandler) get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	svc, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, svc)
}

func (h *ExtraHandler) update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req domain.ExtraService
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	req.ID = id
	svc, err := h.service.Update(c.Request.Context(), &req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, svc)
}
