package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	portssvc "github.com/SscSPs/biz_books_app/internal/core/ports/services"
)

type reportingHandler struct {
	reportingService portssvc.ReportingSvcFacade
}

func newReportingHandler(rs portssvc.ReportingSvcFacade) *reportingHandler {
	return &reportingHandler{reportingService: rs}
}

// registerReportingRoutes registers the read-only reporting routes.
func registerReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingSvcFacade) {
	h := newReportingHandler(reportingService)

	reports := rg.Group("/reports")
	{
		reports.GET("/summary", h.getSummary)
		reports.GET("/payables-aging", h.getPayablesAging)
	}
}

// getSummary godoc
// @Summary Dashboard summary totals
// @Description Headline receivable/payable totals, overdue counts and available credit value as of now
// @Tags reports
// @Produce json
// @Success 200 {object} dto.DashboardSummaryResponse
// @Security BearerAuth
// @Router /reports/summary [get]
func (h *reportingHandler) getSummary(c *gin.Context) {
	summary, err := h.reportingService.DashboardSummary(c.Request.Context(), time.Now().UTC())
	if err != nil {
		writeLedgerError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// getPayablesAging godoc
// @Summary Payables aging report
// @Description Buckets open bills by days overdue
// @Tags reports
// @Produce json
// @Success 200 {object} dto.AgingReportResponse
// @Security BearerAuth
// @Router /reports/payables-aging [get]
func (h *reportingHandler) getPayablesAging(c *gin.Context) {
	report, err := h.reportingService.PayablesAging(c.Request.Context(), time.Now().UTC())
	if err != nil {
		writeLedgerError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}
