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

// investmentHandler handles HTTP requests related to the investment ledger.
type investmentHandler struct {
	investmentService portssvc.InvestmentSvcFacade
}

func newInvestmentHandler(is portssvc.InvestmentSvcFacade) *investmentHandler {
	return &investmentHandler{investmentService: is}
}

// registerInvestmentRoutes registers routes related to the investment ledger.
func registerInvestmentRoutes(rg *gin.RouterGroup, investmentService portssvc.InvestmentSvcFacade) {
	h := newInvestmentHandler(investmentService)

	investments := rg.Group("/investments")
	{
		investments.GET("", h.listInvestments)
		investments.POST("", h.createInvestment)
		investments.DELETE("/:investmentID", h.deleteInvestment)
		investments.POST("/import", h.importInvestments)
	}
}

// listInvestments godoc
// @Summary List all investment records
// @Description Retrieves the whole ledger ordered newest-first
// @Tags investments
// @Produce json
// @Success 200 {array} dto.InvestmentResponse
// @Failure 500 {object} map[string]string "Failed to list investments"
// @Security BearerAuth
// @Router /investments [get]
func (h *investmentHandler) listInvestments(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	investments, err := h.investmentService.ListInvestments(c.Request.Context())
	if err != nil {
		logger.Error("Failed to list investments from service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list investments"})
		return
	}

	c.JSON(http.StatusOK, dto.ToListInvestmentResponse(investments))
}

// createInvestment godoc
// @Summary Record a purchase or sale
// @Description Appends a new record to the ledger; amount is derived from unitPrice*units when both are given
// @Tags investments
// @Accept json
// @Produce json
// @Param investment body dto.CreateInvestmentRequest true "Investment details"
// @Success 201 {object} dto.InvestmentResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 500 {object} map[string]string "Failed to create investment"
// @Security BearerAuth
// @Router /investments [post]
func (h *investmentHandler) createInvestment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateInvestmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createInvestment", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	created, err := h.investmentService.CreateInvestment(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error creating investment", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to create investment in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create investment"})
		}
		return
	}

	logger.Info("Investment created",
		slog.String("investment_id", created.InvestmentID),
		slog.String("fund", created.Fund),
		slog.Bool("is_sale", created.IsSale),
	)
	c.JSON(http.StatusCreated, dto.ToInvestmentResponse(created))
}

// deleteInvestment godoc
// @Summary Delete an investment record
// @Description Removes a record from the ledger by its identifier
// @Tags investments
// @Produce json
// @Param investmentID path string true "Investment ID"
// @Success 204 "No Content"
// @Failure 404 {object} map[string]string "Investment not found"
// @Failure 500 {object} map[string]string "Failed to delete investment"
// @Security BearerAuth
// @Router /investments/{investmentID} [delete]
func (h *investmentHandler) deleteInvestment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	investmentID := c.Param("investmentID")

	err := h.investmentService.DeleteInvestment(c.Request.Context(), investmentID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Investment not found for delete", slog.String("investment_id", investmentID))
			c.JSON(http.StatusNotFound, gin.H{"error": "Investment not found"})
		} else if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to delete investment in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete investment"})
		}
		return
	}

	logger.Info("Investment deleted", slog.String("investment_id", investmentID))
	c.Status(http.StatusNoContent)
}

// importInvestments godoc
// @Summary Import a full ledger
// @Description Destructively replaces the ledger; invalid entries are skipped and the imported count reported
// @Tags investments
// @Accept json
// @Produce json
// @Param investments body dto.ImportInvestmentsRequest true "Records to import"
// @Success 200 {object} dto.ImportInvestmentsResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 500 {object} map[string]string "Failed to import investments"
// @Security BearerAuth
// @Router /investments/import [post]
func (h *investmentHandler) importInvestments(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.ImportInvestmentsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for importInvestments", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	imported, err := h.investmentService.ReplaceAllInvestments(c.Request.Context(), req.Investments)
	if err != nil {
		logger.Error("Failed to import investments in service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to import investments"})
		return
	}

	logger.Info("Investments imported",
		slog.Int("imported", imported),
		slog.Int("provided", len(req.Investments)),
	)
	c.JSON(http.StatusOK, dto.ImportInvestmentsResponse{
		Imported: imported,
		Provided: len(req.Investments),
	})
}
