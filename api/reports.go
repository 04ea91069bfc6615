package api

import (
	"net/http"

	"github.com/Domenick1991/hoteldesk/internal/service/reports"
	"github.com/gin-gonic/gin"
)

type ReportHandler struct {
	service reports.ReportUseCase
}

func NewReportHandler(service reports.ReportUseCase) *ReportHandler {
	return &ReportHandler{service: service}
}

func (h *ReportHandler) Register(router *gin.RouterGroup) {
	router.GET("/dashboard", h.dashboard)
	router.GET("/report", RequireRevenueAccess(), h.report)
}

func (h *ReportHandler) dashboard(c *gin.Context) {
	d, err := h.service.Dashboard(c.Request.Context(), actorFrom(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, d)
}

func (h *ReportHandler) report(c *gin.Context) {
	r, err := h.service.Report(c.Request.Context(), actorFrom(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, r)
}
