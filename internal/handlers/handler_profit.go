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

// profitHandler handles HTTP requests related to profit distributions.
type profitHandler struct {
	profitService portssvc.ProfitSvcFacade
}

func newProfitHandler(ps portssvc.ProfitSvcFacade) *profitHandler {
	return &profitHandler{profitService: ps}
}

// RegisterProfitRoutes registers routes related to profit distributions.
func RegisterProfitRoutes(rg *gin.RouterGroup, profitService portssvc.ProfitSvcFacade) {
	h := newProfitHandler(profitService)

	profits := rg.Group("/profits")
	{
		profits.POST("", h.saveDistribution)
		profits.GET("", h.listDistributions)
	}
}

// saveDistribution godoc
// @Summary Record a manual profit distribution
// @Description Persists an immutable distribution after checking that percentages and partner amounts add up
// @Tags profits
// @Accept  json
// @Produce  json
// @Param   distribution body dto.SaveDistributionRequest true "Distribution details"
// @Success 201 {object} dto.DistributionResponse
// @Failure 400 {object} map[string]string "Invalid input or mismatched sums"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to save distribution"
// @Security BearerAuth
// @Router /profits [post]
func (h *profitHandler) saveDistribution(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.SaveDistributionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for SaveDistribution", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("creator_user_id", userID))

	dist, err := h.profitService.SaveManualDistribution(c.Request.Context(), req, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error saving distribution", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to save distribution in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save distribution"})
		}
		return
	}

	logger.Info("Profit distribution recorded", slog.String("distribution_id", dist.DistributionID))
	c.JSON(http.StatusCreated, dto.ToDistributionResponse(dist))
}

// listDistributions godoc
// @Summary List profit distributions
// @Description Retrieves distributions newest first, optionally filtered by month
// @Tags profits
// @Produce  json
// @Param   monthID query string false "Month filter (YYYY-MM)"
// @Param   limit query int false "Page size" default(24)
// @Success 200 {array} dto.DistributionResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to list distributions"
// @Security BearerAuth
// @Router /profits [get]
func (h *profitHandler) listDistributions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListDistributionsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query params for ListDistributions", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	dists, err := h.profitService.ListDistributions(c.Request.Context(), params)
	if err != nil {
		logger.Error("Failed to list distributions from service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list distributions"})
		return
	}

	c.JSON(http.StatusOK, dto.ToListDistributionResponse(dists))
}
