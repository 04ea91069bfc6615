package api

import (
	"net/http"

	"github.com/Domenick1991/hoteldesk/internal/domain"
	"github.com/Domenick1991/hoteldesk/internal/service/availability"
	"github.com/Domenick1991/hoteldesk/internal/service/rooms"
	"github.com/gin-gonic/gin"
)

type RoomHandler struct {
	service      rooms.RoomUseCase
	availability availability.AvailabilityUseCase
}

type roomStatusRequest struct {
	Status domain.RoomStatus `json:"status"`
}

func NewRoomHandler(service rooms.RoomUseCase, availability availability.AvailabilityUseCase) *RoomHandler {
	return &RoomHandler{service: service, availability: availability}
}

func (h *RoomHandler) Register(router *gin.RouterGroup) {
	router.GET("", h.list)
	router.POST("", h.create)
	router.GET("/available", h.search)
	router.GET("/:id", h.detail)
	router.PUT("/:id", h.update)
	router.PATCH("/:id/status", h.setStatus)
	router.DELETE("/:id", h.delete)
	router.GET("/:id/availability", h.check)
}

func (h *RoomHandler) list(c *gin.Context) {
	filter := domain.RoomFilter{
		Type:   domain.RoomType(c.Query("type")),
		Status: domain.RoomStatus(c.Query("status")),
	}
	list, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *RoomHandler) create(c *gin.Context) {
	var req domain.Room
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	room, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, room)
}

func (h *RoomHandler) detail(c *gin.Context) {
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

func (h *RoomHandler) update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req domain.Room
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	req.ID = id
	room, err := h.service.Update(c.Request.Context(), &req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, room)
}

func (h *RoomHandler) setStatus(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req roomStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	room, err := h.service.SetStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, room)
}

func (h *RoomHandler) delete(c *gin.Context) {
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

func (h *RoomHandler) check(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	start, end, ok := dateRange(c)
	if !ok {
		return
	}
	res, err := h.availability.Check(c.Request.Context(), id, start, end)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *RoomHandler) search(c *gin.Context) {
	start, end, ok := dateRange(c)
	if !ok {
		return
	}
	list, err := h.availability.Search(c.Request.Context(), start, end, domain.RoomType(c.Query("type")))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"rooms": list, "count": len(list)})
}
