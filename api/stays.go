package api

import (
	"net/http"

	"github.com/Domenick1991/hoteldesk/internal/domain"
	"github.com/Domenick1991/hoteldesk/internal/service/payment"
	"github.com/Domenick1991/hoteldesk/internal/service/stay"
	"github.com/gin-gonic/gin"
)

type StayHandler struct {
	service  stay.StayUseCase
	payments payment.PaymentUseCase
}

func NewStayHandler(service stay.StayUseCase, payments payment.PaymentUseCase) *StayHandler {
	return &StayHandler{service: service, payments: payments}
}

func (h *StayHandler) Register(router *gin.RouterGroup) {
	router.GET("", h.list)
	router.GET("/:id", h.detail)
	router.POST("/:id/check-out", h.checkOut)
	router.GET("/:id/balance", h.balance)
	router.POST("/:id/payments", h.recordPayment)
}

func (h *StayHandler) list(c *gin.Context) {
	list, err := h.service.List(c.Request.Context(), queryBool(c, "active"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *StayHandler) detail(c *gin.Context) {
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

func (h *StayHandler) checkOut(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req stay.CheckOutInput
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}
	}
	result, err := h.service.CheckOut(c.Request.Context(), actorFrom(c), id, req)
	if err != nil {
		writeError(c, err)
		return
	}
	if result.Warning != "" {
		c.JSON(http.StatusOK, warningResponse{Warning: result.Warning, Data: result.Stay})
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *StayHandler) balance(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	b, err := h.payments.RemainingBalance(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

func (h *StayHandler) recordPayment(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req payment.RecordInput
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	p, err := h.payments.Record(c.Request.Context(), actorFrom(c), id, req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

type PaymentHandler struct {
	service payment.PaymentUseCase
}

type paymentStatusRequest struct {
	Status domain.PaymentStatus `json:"status"`
}

func NewPaymentHandler(service payment.PaymentUseCase) *PaymentHandler {
	return &PaymentHandler{service: service}
}

func (h *PaymentHandler) Register(router *gin.RouterGroup) {
	router.GET("", h.list)
	router.GET("/:id", h.get)
	router.PATCH("/:id/status", h.updateStatus)
}

func (h *PaymentHandler) list(c *gin.Context) {
	res, err := h.service.List(c.Request.Context(), domain.PaymentFilter{
		Mode:   domain.PaymentMode(c.Query("mode")),
		Status: domain.PaymentStatus(c.Query("status")),
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *PaymentHandler) get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	p, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *PaymentHandler) updateStatus(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req paymentStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	p, err := h.service.UpdateStatus(c.Request.Context(), actorFrom(c), id, req.Status)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}
