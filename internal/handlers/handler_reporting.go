package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rihlat/travel_finance_app/internal/apperrors"
	portssvc "github.com/rihlat/travel_finance_app/internal/core/ports/services"
	"github.com/rihlat/travel_finance_app/internal/dto"
	"github.com/rihlat/travel_finance_app/internal/middleware"
)

// reportingHandler handles HTTP requests related to financial reports
type reportingHandler struct {
	reportingService portssvc.ReportingSvcFacade
}

// newReportingHandler creates a new reportingHandler
func newReportingHandler(rs portssvc.ReportingSvcFacade) *reportingHandler {
	return &reportingHandler{
		reportingService: rs,
	}
}

// RegisterReportingRoutes registers routes related to financial reports
func RegisterReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingSvcFacade) {
	h := newReportingHandler(reportingService)

	reports := rg.Group("/reports")
	{
		reports.GET("/statement/:accountID", h.getAccountStatement)
		reports.GET("/debts", h.getDebtsReport)
	}
}

// getAccountStatement godoc
// @Summary Get an account statement
// @Description Retrieves one page of the account's entries with a running balance column
// @Tags reports
// @Produce  json
// @Param   accountID path string true "Account ID"
// @Param   from query string false "Inclusive start date (YYYY-MM-DD)"
// @Param   to query string false "Inclusive end date (YYYY-MM-DD)"
// @Param   cursor query string false "Continuation cursor from a previous page"
// @Param   limit query int false "Page size" default(50)
// @Success 200 {object} dto.StatementResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 500 {object} map[string]string "Failed to compute statement"
// @Security BearerAuth
// @Router /reports/statement/{accountID} [get]
func (h *reportingHandler) getAccountStatement(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountID := c.Param("accountID")

	var query dto.StatementQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		logger.Warn("Failed to bind query params for statement", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	logger = logger.With(slog.String("account_id", accountID))

	page, err := h.reportingService.ComputeAccountStatement(c.Request.Context(), accountID, query)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Account not found for statement")
			c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
		} else if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Invalid statement query", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to compute statement", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute statement"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToStatementResponse(page))
}

// getDebtsReport godoc
// @Summary Get the debts report
// @Description Sums outstanding receivables and payables per account, grouped by currency. Account read failures are listed in failedAccounts; the rest of the report stands.
// @Tags reports
// @Produce  json
// @Success 200 {object} dto.DebtsReportResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to compute debts report"
// @Security BearerAuth
// @Router /reports/debts [get]
func (h *reportingHandler) getDebtsReport(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	report, err := h.reportingService.ComputeDebtsReport(c.Request.Context())
	if err != nil {
		var partial *apperrors.PartialFailure
		if errors.As(err, &partial) && report != nil {
			// Degraded but usable; failed accounts ride along in the body.
			logger.Warn("Debts report computed with failures", slog.Int("failed_accounts", len(partial.Items)))
			c.JSON(http.StatusOK, dto.ToDebtsReportResponse(report))
			return
		}
		logger.Error("Failed to compute debts report", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute debts report"})
		return
	}

	c.JSON(http.StatusOK, dto.ToDebtsReportResponse(report))
}
