package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/finance_tracker/internal/core/domain"
	portssvc "github.com/SscSPs/finance_tracker/internal/core/ports/services"
	"github.com/SscSPs/finance_tracker/internal/dto"
	"github.com/SscSPs/finance_tracker/internal/middleware"
	"github.com/gin-gonic/gin"
)

type conversionHandler struct {
	conversions portssvc.ConversionAuditSvc
}

func registerConversionRoutes(rg *gin.RouterGroup, conversions portssvc.ConversionAuditSvc) {
	h := &conversionHandler{conversions: conversions}
	rg.GET("/conversions", h.listConversions)
}

// listConversions godoc
// @Summary Look up the conversion audit trail
// @Description With transactionId and transactionType, returns the records of that transaction; otherwise pages through all records newest first
// @Tags conversions
// @Produce  json
// @Param   transactionId query string false "Transaction ID"
// @Param   transactionType query string false "income, expense, investment, goal or transfer"
// @Param   limit query int false "Page size (1-100)" default(20)
// @Param   nextToken query string false "Cursor from the previous page"
// @Success 200 {object} dto.ListConversionsResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid query"
// @Security BearerAuth
// @Router /conversions [get]
func (h *conversionHandler) listConversions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.ListConversionsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query for ListConversions", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	if params.TransactionID != "" {
		items, err := h.conversions.GetConversionsForTransaction(c.Request.Context(), userID, params.TransactionID, domain.TransactionType(params.TransactionType))
		if err != nil {
			respondError(c, err, "Failed to retrieve conversions")
			return
		}
		c.JSON(http.StatusOK, dto.ToListConversionsResponse(items, nil))
		return
	}

	items, next, err := h.conversions.ListConversions(c.Request.Context(), userID, params.Limit, params.NextToken)
	if err != nil {
		respondError(c, err, "Failed to list conversions")
		return
	}
	c.JSON(http.StatusOK, dto.ToListConversionsResponse(items, next))
}
