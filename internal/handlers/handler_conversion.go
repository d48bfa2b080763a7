package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/currency_conversion_app/internal/core/ports/services"
	"github.com/SscSPs/currency_conversion_app/internal/dto"
	"github.com/SscSPs/currency_conversion_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// conversionHandler handles HTTP requests for currency conversions.
type conversionHandler struct {
	conversionService portssvc.ConversionSvcFacade
}

func newConversionHandler(cs portssvc.ConversionSvcFacade) *conversionHandler {
	return &conversionHandler{conversionService: cs}
}

// registerConversionRoutes registers conversion routes under a tenant group.
func registerConversionRoutes(rg *gin.RouterGroup, conversionService portssvc.ConversionSvcFacade) {
	h := newConversionHandler(conversionService)

	conversions := rg.Group("/conversions")
	{
		conversions.POST("", h.convert)
		conversions.POST("/bulk", h.convertBulk)
		conversions.POST("/fixed", h.convertFixed)
		conversions.POST("/fixed/bulk", h.convertFixedBulk)
	}
}

// convert godoc
// @Summary Convert an amount using a stored exchange rate
// @Description Looks up the applicable exchange rate for the tenant and converts the amount
// @Tags conversions
// @Accept  json
// @Produce  json
// @Param   tenantID path string true "Tenant ID"
// @Param   request body dto.ConversionRequest true "Conversion request"
// @Success 200 {object} dto.ConversionResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 404 {object} map[string]string "No applicable exchange rate"
// @Failure 409 {object} map[string]string "Ambiguous exchange rate records"
// @Security BearerAuth
// @Router /tenants/{tenantID}/conversions [post]
func (h *conversionHandler) convert(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenantID := c.Param("tenantID")

	var req dto.ConversionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for Convert", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	result, err := h.conversionService.Convert(c.Request.Context(), tenantID, req, nil)
	if err != nil {
		logger.Warn("Conversion failed", slog.String("error", err.Error()))
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, dto.ToConversionResponse(result))
}

// convertBulk godoc
// @Summary Convert a batch of amounts using stored exchange rates
// @Description Converts up to 1000 amounts against one rate snapshot; individual failures are reported per entry
// @Tags conversions
// @Accept  json
// @Produce  json
// @Param   tenantID path string true "Tenant ID"
// @Param   request body dto.BulkConversionRequest true "Bulk conversion request"
// @Success 200 {object} dto.BulkConversionResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 404 {object} map[string]string "No exchange rates available"
// @Security BearerAuth
// @Router /tenants/{tenantID}/conversions/bulk [post]
func (h *conversionHandler) convertBulk(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenantID := c.Param("tenantID")

	var req dto.BulkConversionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for ConvertBulk", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	logger.Info("Received bulk conversion request", slog.Int("count", len(req.Requests)))
	bulk, err := h.conversionService.ConvertBulk(c.Request.Context(), tenantID, req)
	if err != nil {
		logger.Warn("Bulk conversion failed", slog.String("error", err.Error()))
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, dto.ToBulkConversionResponse(bulk))
}

// convertFixed godoc
// @Summary Convert an amount with a caller-supplied rate
// @Tags conversions
// @Accept  json
// @Produce  json
// @Param   tenantID path string true "Tenant ID"
// @Param   request body dto.FixedConversionRequest true "Fixed-rate conversion request"
// @Success 200 {object} dto.ConversionResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Security BearerAuth
// @Router /tenants/{tenantID}/conversions/fixed [post]
func (h *conversionHandler) convertFixed(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.FixedConversionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for ConvertFixed", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	result, err := h.conversionService.ConvertFixed(c.Request.Context(), req)
	if err != nil {
		logger.Warn("Fixed conversion failed", slog.String("error", err.Error()))
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, dto.ToFixedConversionResponse(result))
}

// convertFixedBulk godoc
// @Summary Convert a batch of amounts with caller-supplied rates
// @Tags conversions
// @Accept  json
// @Produce  json
// @Param   tenantID path string true "Tenant ID"
// @Param   request body dto.BulkFixedConversionRequest true "Bulk fixed-rate conversion request"
// @Success 200 {object} dto.BulkConversionResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Security BearerAuth
// @Router /tenants/{tenantID}/conversions/fixed/bulk [post]
func (h *conversionHandler) convertFixedBulk(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.BulkFixedConversionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for ConvertFixedBulk", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	bulk, err := h.conversionService.ConvertFixedBulk(c.Request.Context(), req)
	if err != nil {
		logger.Warn("Bulk fixed conversion failed", slog.String("error", err.Error()))
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, dto.ToBulkFixedConversionResponse(bulk))
}
