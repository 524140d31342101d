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

// counterHandler handles HTTP requests for voucher counters.
type counterHandler struct {
	counterService portssvc.CounterSvcFacade
}

func newCounterHandler(cs portssvc.CounterSvcFacade) *counterHandler {
	return &counterHandler{counterService: cs}
}

// RegisterCounterRoutes registers routes for counter reads.
func RegisterCounterRoutes(rg *gin.RouterGroup, counterService portssvc.CounterSvcFacade) {
	h := newCounterHandler(counterService)

	counters := rg.Group("/counters")
	{
		counters.GET("/:id", h.readCounter)
	}
}

// readCounter godoc
// @Summary Read a counter total
// @Description Sums the counter's shards; unknown counters read as zero
// @Tags counters
// @Produce  json
// @Param   id path string true "Counter ID, e.g. vouchers or vouchers:2026-08"
// @Success 200 {object} dto.CounterResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 503 {object} map[string]string "Counter store unavailable"
// @Security BearerAuth
// @Router /counters/{id} [get]
func (h *counterHandler) readCounter(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	counterID := c.Param("id")

	total, err := h.counterService.ReadCounter(c.Request.Context(), counterID)
	if err != nil {
		if errors.Is(err, apperrors.ErrStorageUnavailable) {
			logger.Error("Counter store unavailable", slog.String("error", err.Error()))
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Counter store unavailable"})
		} else {
			logger.Error("Failed to read counter", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read counter"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.CounterResponse{CounterID: counterID, Total: total})
}
