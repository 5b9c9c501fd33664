package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	portssvc "github.com/mpopesco/investfolio/internal/core/ports/services"
	"github.com/mpopesco/investfolio/internal/dto"
)

// predictionHandler handles HTTP requests related to objective predictions.
type predictionHandler struct {
	predictionService portssvc.PredictionSvcFacade
}

func newPredictionHandler(ps portssvc.PredictionSvcFacade) *predictionHandler {
	return &predictionHandler{predictionService: ps}
}

// registerPredictionRoutes registers routes related to objective predictions.
func registerPredictionRoutes(rg *gin.RouterGroup, predictionService portssvc.PredictionSvcFacade) {
	h := newPredictionHandler(predictionService)

	prediction := rg.Group("/prediction")
	{
		prediction.GET("", h.getPrediction)
		prediction.POST("/trigger", h.triggerPrediction)
	}
}

// getPrediction godoc
// @Summary Get the current prediction state
// @Description Retrieves the last generated prediction text and whether a generation is in progress
// @Tags prediction
// @Produce json
// @Success 200 {object} dto.PredictionResponse
// @Security BearerAuth
// @Router /prediction [get]
func (h *predictionHandler) getPrediction(c *gin.Context) {
	prediction := h.predictionService.Get()
	c.JSON(http.StatusOK, dto.ToPredictionResponse(prediction))
}

// triggerPrediction godoc
// @Summary Trigger prediction generation
// @Description Starts a background prediction generation if one is not already running
// @Tags prediction
// @Success 202 "Trigger accepted"
// @Security BearerAuth
// @Router /prediction/trigger [post]
func (h *predictionHandler) triggerPrediction(c *gin.Context) {
	h.predictionService.Trigger(c.Request.Context())
	c.Status(http.StatusAccepted)
}
