package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"pharmacare_backend/internal/services"
	"pharmacare_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// ReportHandler holds the report service.
type ReportHandler struct {
	reportService services.ReportService
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(rs services.ReportService) *ReportHandler {
	return &ReportHandler{reportService: rs}
}

// GetSalesReport aggregates billing over a date range. Both bounds
// default to today when omitted.
func (h *ReportHandler) GetSalesReport(c *gin.Context) {
	today := time.Now().Format("2006-01-02")
	from := c.DefaultQuery("from", today)
	to := c.DefaultQuery("to", today)

	report, err := h.reportService.SalesSummary(from, to)
	if err != nil {
		utils.LogError(err, "GetSalesReport: Error from reportService.SalesSummary")
		if errors.Is(err, services.ErrValidation) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid report dates.", err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to build sales report.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, report)
}

// GetStockReport summarizes the current inventory position.
func (h *ReportHandler) GetStockReport(c *gin.Context) {
	threshold, _ := strconv.Atoi(c.DefaultQuery("threshold", "0"))
	report, err := h.reportService.StockSummary(threshold)
	if err != nil {
		utils.LogError(err, "GetStockReport: Error from reportService.StockSummary")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to build stock report.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, report)
}
