package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	portssvc "github.com/mpopesco/investfolio/internal/core/ports/services"
	"github.com/mpopesco/investfolio/internal/dto"
	"github.com/mpopesco/investfolio/internal/middleware"
)

const rateRefreshTimeout = 30 * time.Second

// ratesHandler handles HTTP requests related to exchange rates.
type ratesHandler struct {
	ratesService portssvc.RatesSvcFacade
}

func newRatesHandler(rs portssvc.RatesSvcFacade) *ratesHandler {
	return &ratesHandler{ratesService: rs}
}

// registerRatesRoutes registers routes related to exchange rates.
func registerRatesRoutes(rg *gin.RouterGroup, ratesService portssvc.RatesSvcFacade) {
	h := newRatesHandler(ratesService)

	rates := rg.Group("/rates")
	{
		rates.GET("", h.getRates)
		rates.POST("/refresh", h.refreshRates)
	}
}

// getRates godoc
// @Summary Get the current conversion table
// @Description Retrieves the latest known exchange rates, expressed in RON per unit
// @Tags rates
// @Produce json
// @Success 200 {object} dto.RateTableResponse
// @Security BearerAuth
// @Router /rates [get]
func (h *ratesHandler) getRates(c *gin.Context) {
	table := h.ratesService.Current()
	c.JSON(http.StatusOK, dto.ToRateTableResponse(table))
}

// refreshRates godoc
// @Summary Refresh exchange rates
// @Description Triggers a fetch from the upstream rate feed; runs in the background
// @Tags rates
// @Success 202 "Refresh accepted"
// @Security BearerAuth
// @Router /rates/refresh [post]
func (h *ratesHandler) refreshRates(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	go func() {
		ctx, cancel := context.WithTimeout(context.WithoutCancel(c.Request.Context()), rateRefreshTimeout)
		defer cancel()
		if err := h.ratesService.Refresh(ctx); err != nil {
			logger.Warn("Background rate refresh failed", slog.String("error", err.Error()))
		}
	}()

	c.Status(http.StatusAccepted)
}
