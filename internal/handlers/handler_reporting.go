package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/bizbookshq/biz_books_app/internal/core/domain"
	portssvc "github.com/bizbookshq/biz_books_app/internal/core/ports/services"
	"github.com/bizbookshq/biz_books_app/internal/dto"
	"github.com/bizbookshq/biz_books_app/internal/middleware"
)

// reportingHandler handles HTTP requests for the reporting endpoints.
type reportingHandler struct {
	reportingService portssvc.ReportingSvcFacade
}

// newReportingHandler creates a new reportingHandler.
func newReportingHandler(rs portssvc.ReportingSvcFacade) *reportingHandler {
	return &reportingHandler{
		reportingService: rs,
	}
}

// registerReportingRoutes registers the reporting routes.
func registerReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingSvcFacade) {
	h := newReportingHandler(reportingService)

	reports := rg.Group("/reports")
	{
		reports.GET("/receivables-ageing", h.getReceivablesAgeing)
		reports.GET("/payables-ageing", h.getPayablesAgeing)
		reports.GET("/transactions-summary", h.getTransactionsSummary)
	}
}

// getReceivablesAgeing godoc
// @Summary Receivables ageing report
// @Description Buckets open sales invoice balances by days overdue as of now
// @Tags reports
// @Produce  json
// @Success 200 {object} dto.AgeingResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to build ageing report"
// @Security BearerAuth
// @Router /reports/receivables-ageing [get]
func (h *reportingHandler) getReceivablesAgeing(c *gin.Context) {
	h.ageing(c, h.reportingService.ReceivablesAgeing)
}

// getPayablesAgeing godoc
// @Summary Payables ageing report
// @Description Buckets open purchase bill balances by days overdue as of now
// @Tags reports
// @Produce  json
// @Success 200 {object} dto.AgeingResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to build ageing report"
// @Security BearerAuth
// @Router /reports/payables-ageing [get]
func (h *reportingHandler) getPayablesAgeing(c *gin.Context) {
	h.ageing(c, h.reportingService.PayablesAgeing)
}

type ageingFn func(ctx context.Context, userID string, now time.Time) (domain.AgeingReport, error)

func (h *reportingHandler) ageing(c *gin.Context, report ageingFn) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	now := time.Now().UTC()
	ageing, err := report(c.Request.Context(), userID, now)
	if err != nil {
		logger.Error("Failed to build ageing report", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build ageing report"})
		return
	}

	c.JSON(http.StatusOK, dto.AgeingResponse{AsOf: now, Ageing: ageing})
}

// getTransactionsSummary godoc
// @Summary Transactions summary
// @Description Aggregates the user's transactions of one type by status
// @Tags reports
// @Produce  json
// @Param   type query string false "Transaction type (default sales_invoice)"
// @Success 200 {object} dto.TransactionsSummaryResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to build summary"
// @Security BearerAuth
// @Router /reports/transactions-summary [get]
func (h *reportingHandler) getTransactionsSummary(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	txnType := domain.SalesInvoice
	if v := c.Query("type"); v != "" {
		txnType = domain.TransactionType(v)
	}

	summary, err := h.reportingService.TransactionsSummary(c.Request.Context(), userID, txnType)
	if err != nil {
		logger.Error("Failed to build transactions summary", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build summary"})
		return
	}

	c.JSON(http.StatusOK, dto.TransactionsSummaryResponse{Summary: summary})
}
