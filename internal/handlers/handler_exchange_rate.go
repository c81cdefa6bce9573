package handlers

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	portssvc "github.com/SscSPs/finance_tracker/internal/core/ports/services"
	"github.com/SscSPs/finance_tracker/internal/dto"
	"github.com/SscSPs/finance_tracker/internal/middleware"
	"github.com/gin-gonic/gin"
)

// exchangeRateHandler serves rate lookups and conversions.
type exchangeRateHandler struct {
	rates     portssvc.RateProviderSvc
	converter portssvc.CurrencyConverterSvc
}

func newExchangeRateHandler(rates portssvc.RateProviderSvc, converter portssvc.CurrencyConverterSvc) *exchangeRateHandler {
	return &exchangeRateHandler{rates: rates, converter: converter}
}

func registerExchangeRateRoutes(rg *gin.RouterGroup, rates portssvc.RateProviderSvc, converter portssvc.CurrencyConverterSvc) {
	h := newExchangeRateHandler(rates, converter)

	rg.GET("/rates", h.getRates)
	rg.GET("/exchange-rate/:from/:to", h.getExchangeRate)
	rg.POST("/convert", h.convert)
	rg.POST("/convert/batch", h.convertBatch)
}

// getRates godoc
// @Summary Get the current rate table
// @Description Returns the cached base-currency rate table, refreshing it when stale or when force is set
// @Tags exchange rates
// @Produce  json
// @Param   force query bool false "Bypass the cache"
// @Success 200 {object} dto.RateTableResponse
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 503 {object} dto.ErrorResponse "No rate table available"
// @Security BearerAuth
// @Router /rates [get]
func (h *exchangeRateHandler) getRates(c *gin.Context) {
	force, _ := strconv.ParseBool(c.Query("force"))

	table, err := h.rates.GetRates(c.Request.Context(), force)
	if err != nil {
		respondError(c, err, "Failed to retrieve exchange rates")
		return
	}
	c.JSON(http.StatusOK, dto.ToRateTableResponse(table))
}

// getExchangeRate godoc
// @Summary Get an exchange rate
// @Description Retrieves the rate from one currency to another, derived through the base currency
// @Tags exchange rates
// @Produce  json
// @Param   from path string true "From currency code"
// @Param   to path string true "To currency code"
// @Success 200 {object} dto.ExchangeRateResponse
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 422 {object} dto.ErrorResponse "Unsupported currency"
// @Failure 503 {object} dto.ErrorResponse "No rate table available"
// @Security BearerAuth
// @Router /exchange-rate/{from}/{to} [get]
func (h *exchangeRateHandler) getExchangeRate(c *gin.Context) {
	from := strings.ToUpper(c.Param("from"))
	to := strings.ToUpper(c.Param("to"))
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("from", from), slog.String("to", to))
	logger.Debug("Received request to get exchange rate")

	rate, err := h.converter.GetExchangeRate(c.Request.Context(), from, to)
	if err != nil {
		respondError(c, err, "Failed to retrieve exchange rate")
		return
	}
	c.JSON(http.StatusOK, dto.ExchangeRateResponse{FromCurrencyCode: from, ToCurrencyCode: to, Rate: rate})
}

// convert godoc
// @Summary Convert an amount
// @Tags exchange rates
// @Accept  json
// @Produce  json
// @Param   request body dto.ConvertRequest true "Amount and currencies"
// @Success 200 {object} dto.ConversionResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid input"
// @Failure 422 {object} dto.ErrorResponse "Unsupported currency"
// @Failure 503 {object} dto.ErrorResponse "No rate table available"
// @Security BearerAuth
// @Router /convert [post]
func (h *exchangeRateHandler) convert(c *gin.Context) {
	var req dto.ConvertRequest
	if !bindJSON(c, &req, "Convert") {
		return
	}

	res, err := h.converter.ConvertAmount(c.Request.Context(), req.Amount, req.From, req.To)
	if err != nil {
		respondError(c, err, "Failed to convert amount")
		return
	}
	c.JSON(http.StatusOK, dto.ToConversionResponse(res))
}

// convertBatch godoc
// @Summary Convert several amounts into one currency
// @Description Converts each item independently with a single rate table; items that cannot be converted come back as null
// @Tags exchange rates
// @Accept  json
// @Produce  json
// @Param   request body dto.ConvertBatchRequest true "Items and target currency"
// @Success 200 {object} dto.ConvertBatchResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid input"
// @Security BearerAuth
// @Router /convert/batch [post]
func (h *exchangeRateHandler) convertBatch(c *gin.Context) {
	var req dto.ConvertBatchRequest
	if !bindJSON(c, &req, "ConvertBatch") {
		return
	}

	results, err := h.converter.ConvertMultipleAmounts(c.Request.Context(), req.ToMoneyList(), req.TargetCurrency)
	if err != nil {
		// Same-currency items are still populated; report the gap in the log only.
		middleware.GetLoggerFromCtx(c.Request.Context()).Warn("Batch conversion without rate table", slog.String("error", err.Error()))
	}
	c.JSON(http.StatusOK, dto.ToConvertBatchResponse(results))
}
