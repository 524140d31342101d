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

// mappingHandler handles HTTP requests for the finance account mapping.
type mappingHandler struct {
	mappingService portssvc.MappingSvcFacade
}

func newMappingHandler(ms portssvc.MappingSvcFacade) *mappingHandler {
	return &mappingHandler{mappingService: ms}
}

// RegisterMappingRoutes registers routes for the finance account mapping.
func RegisterMappingRoutes(rg *gin.RouterGroup, mappingService portssvc.MappingSvcFacade) {
	h := newMappingHandler(mappingService)

	mapping := rg.Group("/mapping")
	{
		mapping.GET("", h.getMapping)
		mapping.PATCH("", h.upsertMapping)
	}
}

// getMapping godoc
// @Summary Get the finance account mapping
// @Description Retrieves the current mapping; unconfigured slots are empty
// @Tags mapping
// @Produce  json
// @Success 200 {object} dto.MappingResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to retrieve mapping"
// @Security BearerAuth
// @Router /mapping [get]
func (h *mappingHandler) getMapping(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	m, err := h.mappingService.GetMapping(c.Request.Context())
	if err != nil {
		logger.Error("Failed to get finance account mapping", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve mapping"})
		return
	}

	c.JSON(http.StatusOK, dto.ToMappingResponse(m))
}

// upsertMapping godoc
// @Summary Update the finance account mapping
// @Description Merges a partial update; absent fields stay untouched and category maps merge key by key
// @Tags mapping
// @Accept  json
// @Produce  json
// @Param   mapping body dto.UpsertMappingRequest true "Partial mapping update"
// @Success 200 {object} dto.MappingResponse
// @Failure 400 {object} map[string]string "Invalid input or unknown account reference"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to update mapping"
// @Security BearerAuth
// @Router /mapping [patch]
func (h *mappingHandler) upsertMapping(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.UpsertMappingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpsertMapping", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("updater_user_id", userID))

	merged, err := h.mappingService.UpsertMapping(c.Request.Context(), req, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error updating mapping", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to update mapping in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update mapping"})
		}
		return
	}

	logger.Info("Finance account mapping updated")
	c.JSON(http.StatusOK, dto.ToMappingResponse(merged))
}
