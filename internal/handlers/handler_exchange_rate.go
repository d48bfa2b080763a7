package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/currency_conversion_app/internal/core/ports/services"
	"github.com/SscSPs/currency_conversion_app/internal/dto"
	"github.com/SscSPs/currency_conversion_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// exchangeRateHandler handles HTTP requests related to exchange rates.
type exchangeRateHandler struct {
	exchangeRateService portssvc.ExchangeRateSvcFacade
}

func newExchangeRateHandler(ers portssvc.ExchangeRateSvcFacade) *exchangeRateHandler {
	return &exchangeRateHandler{exchangeRateService: ers}
}

// registerExchangeRateRoutes registers routes related to exchange rates
// under a tenant group.
func registerExchangeRateRoutes(rg *gin.RouterGroup, exchangeRateService portssvc.ExchangeRateSvcFacade) {
	h := newExchangeRateHandler(exchangeRateService)

	exchangeRates := rg.Group("/exchange-rates")
	{
		exchangeRates.POST("", h.createExchangeRate)
		exchangeRates.GET("", h.listExchangeRates)
	}
}

// createExchangeRate godoc
// @Summary Create a new exchange rate record
// @Description Stores a new exchange rate for a tenant, rate type and validity date
// @Tags exchange rates
// @Accept  json
// @Produce  json
// @Param   tenantID path string true "Tenant ID"
// @Param   rate body dto.CreateExchangeRateRequest true "Exchange rate details"
// @Success 201 {object} dto.ExchangeRateResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to create exchange rate"
// @Security BearerAuth
// @Router /tenants/{tenantID}/exchange-rates [post]
func (h *exchangeRateHandler) createExchangeRate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenantID := c.Param("tenantID")

	var req dto.CreateExchangeRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateExchangeRate", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Creator user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger.Info("Received request to create exchange rate",
		slog.String("from", req.FromCurrency),
		slog.String("to", req.ToCurrency),
		slog.String("rate_type", req.RateType),
		slog.Time("valid_from", req.ValidFrom),
	)

	createdRate, err := h.exchangeRateService.CreateExchangeRate(c.Request.Context(), tenantID, req, creatorUserID)
	if err != nil {
		logger.Warn("Failed to create exchange rate", slog.String("error", err.Error()))
		status := statusForError(err)
		if status == http.StatusInternalServerError {
			c.JSON(status, gin.H{"error": "Failed to create exchange rate"})
			return
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	logger.Info("Exchange rate created successfully", slog.String("rate_id", createdRate.ExchangeRateID))
	c.JSON(http.StatusCreated, dto.ToExchangeRateResponse(createdRate))
}

// listExchangeRates godoc
// @Summary List exchange rate records
// @Description Retrieves a tenant's stored exchange rates, optionally filtered by currency pair
// @Tags exchange rates
// @Produce  json
// @Param   tenantID path string true "Tenant ID"
// @Param   fromCurrency query string false "From currency code filter"
// @Param   toCurrency query string false "To currency code filter"
// @Param   limit query int false "Page size (default 100)"
// @Param   offset query int false "Page offset"
// @Success 200 {array} dto.ExchangeRateResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 500 {object} map[string]string "Failed to list exchange rates"
// @Security BearerAuth
// @Router /tenants/{tenantID}/exchange-rates [get]
func (h *exchangeRateHandler) listExchangeRates(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenantID := c.Param("tenantID")

	var req dto.ListExchangeRatesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		logger.Warn("Failed to bind query for ListExchangeRates", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	rates, err := h.exchangeRateService.ListExchangeRates(c.Request.Context(), tenantID, req)
	if err != nil {
		logger.Error("Failed to list exchange rates", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list exchange rates"})
		return
	}
	c.JSON(http.StatusOK, dto.ToListExchangeRateResponse(rates))
}
