package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mpopesco/investfolio/internal/apperrors"
	portssvc "github.com/mpopesco/investfolio/internal/core/ports/services"
	"github.com/mpopesco/investfolio/internal/dto"
	"github.com/mpopesco/investfolio/internal/middleware"
)

// objectiveHandler handles HTTP requests related to the savings objective.
type objectiveHandler struct {
	objectiveService portssvc.ObjectiveSvcFacade
}

func newObjectiveHandler(os portssvc.ObjectiveSvcFacade) *objectiveHandler {
	return &objectiveHandler{objectiveService: os}
}

// registerObjectiveRoutes registers routes related to the savings objective.
func registerObjectiveRoutes(rg *gin.RouterGroup, objectiveService portssvc.ObjectiveSvcFacade) {
	h := newObjectiveHandler(objectiveService)

	objective := rg.Group("/objective")
	{
		objective.GET("", h.getObjective)
		objective.PUT("", h.setObjective)
		objective.GET("/progress", h.getProgress)
	}
}

// getObjective godoc
// @Summary Get the savings objective
// @Description Retrieves the current target amount and currency
// @Tags objective
// @Produce json
// @Success 200 {object} dto.ObjectiveResponse
// @Success 204 "No objective set"
// @Failure 500 {object} map[string]string "Failed to retrieve objective"
// @Security BearerAuth
// @Router /objective [get]
func (h *objectiveHandler) getObjective(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	objective, err := h.objectiveService.GetObjective(c.Request.Context())
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.Status(http.StatusNoContent)
			return
		}
		logger.Error("Failed to get objective from service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve objective"})
		return
	}

	c.JSON(http.StatusOK, dto.ToObjectiveResponse(objective))
}

// setObjective godoc
// @Summary Set the savings objective
// @Description Replaces the objective wholesale
// @Tags objective
// @Accept json
// @Produce json
// @Param objective body dto.SetObjectiveRequest true "Objective details"
// @Success 200 {object} dto.ObjectiveResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 500 {object} map[string]string "Failed to save objective"
// @Security BearerAuth
// @Router /objective [put]
func (h *objectiveHandler) setObjective(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.SetObjectiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for setObjective", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	objective, err := h.objectiveService.SetObjective(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error setting objective", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to set objective in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save objective"})
		}
		return
	}

	logger.Info("Objective updated",
		slog.String("currency", objective.Currency),
		slog.String("target", objective.TargetAmount.String()),
	)
	c.JSON(http.StatusOK, dto.ToObjectiveResponse(objective))
}

// getProgress godoc
// @Summary Get objective progress
// @Description Retrieves the objective with the portfolio's current value in the objective currency
// @Tags objective
// @Produce json
// @Success 200 {object} dto.ObjectiveProgressResponse
// @Failure 404 {object} map[string]string "No objective set"
// @Failure 500 {object} map[string]string "Failed to compute progress"
// @Security BearerAuth
// @Router /objective/progress [get]
func (h *objectiveHandler) getProgress(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	progress, err := h.objectiveService.GetProgress(c.Request.Context())
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "No objective set"})
			return
		}
		logger.Error("Failed to compute objective progress", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute progress"})
		return
	}

	c.JSON(http.StatusOK, dto.ToObjectiveProgressResponse(progress))
}
