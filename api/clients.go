package api

import (
	"net/http"

	"github.com/Domenick1991/hoteldesk/internal/domain"
	"github.com/Domenick1991/hoteldesk/internal/service/clients"
	"github.com/gin-gonic/gin"
)

type ClientHandler struct {
	service clients.ClientUseCase
}

func NewClientHandler(service clients.ClientUseCase) *ClientHandler {
	return &ClientHandler{service: service}
}

func (h *ClientHandler) Register(router *gin.RouterGroup) {
	router.GET("", h.search)
	router.POST("", h.create)
	router.GET("/:id", h.detail)
	router.PUT("/:id", h.update)
	router.DELETE("/:id", h.delete)
}

func (h *ClientHandler) search(c *gin.Context) {
	list, err := h.service.Search(c.Request.Context(), c.Query("q"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *ClientHandler) create(c *gin.Context) {
	var req domain.Client
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	client, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, client)
}

func (h *ClientHandler) detail(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	d, err := h.service.Detail(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, d)
}

func (h *ClientHandler) update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req domain.Client
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	req.ID = id
	client, err := h.service.Update(c.Request.Context(), &req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, client)
}

func (h *ClientHandler) delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
