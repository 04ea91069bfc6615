package api

import (
	"net/http"

	"github.com/Domenick1991/hoteldesk/internal/domain"
	"github.com/Domenick1991/hoteldesk/internal/service/reservation"
	"github.com/Domenick1991/hoteldesk/internal/service/stay"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type ReservationHandler struct {
	service reservation.ReservationUseCase
	stays   stay.StayUseCase
}

// reservationRequest takes dates as YYYY-MM-DD.
type reservationRequest struct {
	ClientID           int64                    `json:"client_id"`
	RoomID             int64                    `json:"room_id"`
	StartDate          string                   `json:"start_date"`
	EndDate            string                   `json:"end_date"`
	Adults             int                      `json:"adults"`
	Children           int                      `json:"children"`
	Status             domain.ReservationStatus `json:"status"`
	TotalPrice         *decimal.Decimal         `json:"total_price"`
	ClearPriceOverride bool                     `json:"clear_price_override"`
	Comment            *string                  `json:"comment"`
}

type warningResponse struct {
	Warning string `json:"warning"`
	Data    any    `json:"data"`
}

func NewReservationHandler(service reservation.ReservationUseCase, stays stay.StayUseCase) *ReservationHandler {
	return &ReservationHandler{service: service, stays: stays}
}

func (h *ReservationHandler) Register(router *gin.RouterGroup) {
	router.GET("", h.list)
	router.POST("", h.create)
	router.GET("/:id", h.detail)
	router.PUT("/:id", h.update)
	router.DELETE("/:id", h.delete)
	router.POST("/:id/confirm", h.confirm)
	router.POST("/:id/cancel", h.cancel)
	router.POST("/:id/check-in", h.checkIn)
	router.POST("/:id/services", h.addService)
	router.DELETE("/:id/services/:serviceID", h.removeService)
}

func (h *ReservationHandler) list(c *gin.Context) {
	startFrom, ok := queryDate(c, "start_from")
	if !ok {
		return
	}
	endTo, ok := queryDate(c, "end_to")
	if !ok {
		return
	}
	list, err := h.service.List(c.Request.Context(), domain.ReservationFilter{
		Search:    c.Query("q"),
		Status:    domain.ReservationStatus(c.Query("status")),
		StartFrom: startFrom,
		EndTo:     endTo,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *ReservationHandler) create(c *gin.Context) {
	var req reservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	start, err := parseDate(req.StartDate)
	if err != nil {
		badRequest(c, "start_date must be YYYY-MM-DD")
		return
	}
	end, err := parseDate(req.EndDate)
	if err != nil {
		badRequest(c, "end_date must be YYYY-MM-DD")
		return
	}
	input := reservation.CreateInput{
		ClientID:   req.ClientID,
		RoomID:     req.RoomID,
		StartDate:  start,
		EndDate:    end,
		Adults:     req.Adults,
		Children:   req.Children,
		Status:     req.Status,
		TotalPrice: req.TotalPrice,
	}
	if req.Comment != nil {
		input.Comment = *req.Comment
	}

	res, err := h.service.Create(c.Request.Context(), actorFrom(c), input)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, res)
}

func (h *ReservationHandler) detail(c *gin.Context) {
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

func (h *ReservationHandler) update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req reservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	start, err := parseDate(req.StartDate)
	if err != nil {
		badRequest(c, "start_date must be YYYY-MM-DD")
		return
	}
	end, err := parseDate(req.EndDate)
	if err != nil {
		badRequest(c, "end_date must be YYYY-MM-DD")
		return
	}

	res, err := h.service.Update(c.Request.Context(), actorFrom(c), id, reservation.UpdateInput{
		RoomID:             req.RoomID,
		StartDate:          start,
		EndDate:            end,
		Adults:             req.Adults,
		Children:           req.Children,
		TotalPrice:         req.TotalPrice,
		ClearPriceOverride: req.ClearPriceOverride,
		Comment:            req.Comment,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *ReservationHandler) delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), actorFrom(c), id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *ReservationHandler) confirm(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	res, err := h.service.Confirm(c.Request.Context(), actorFrom(c), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *ReservationHandler) cancel(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req reservation.CancelInput
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	result, err := h.service.Cancel(c.Request.Context(), actorFrom(c), id, req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *ReservationHandler) checkIn(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req stay.CheckInInput
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}
	}
	result, err := h.stays.CheckIn(c.Request.Context(), actorFrom(c), id, req)
	if err != nil {
		writeError(c, err)
		return
	}
	if result.Warning != "" {
		c.JSON(http.StatusOK, warningResponse{Warning: result.Warning, Data: result.Stay})
		return
	}
	c.JSON(http.StatusCreated, result.Stay)
}

func (h *ReservationHandler) addService(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req reservation.AddServiceInput
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	item, err := h.service.AddService(c.Request.Context(), actorFrom(c), id, req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

func (h *ReservationHandler) removeService(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	serviceID, ok := pathID(c, "serviceID")
	if !ok {
		return
	}
	if err := h.service.RemoveService(c.Request.Context(), actorFrom(c), id, serviceID); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
