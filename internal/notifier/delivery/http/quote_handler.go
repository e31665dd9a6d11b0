package http

import (
	"net/http"

	"golang-stock-notifier/internal/notifier/dto"
	"golang-stock-notifier/internal/notifier/service"
	"golang-stock-notifier/pkg/logger"

	"github.com/labstack/echo/v4"
)

// QuoteHandler handles HTTP requests for market quotes.
type QuoteHandler struct {
	quoteService service.QuoteService
	logger       *logger.Logger
}

// NewQuoteHandler creates a new QuoteHandler.
func NewQuoteHandler(quoteService service.QuoteService, logger *logger.Logger) *QuoteHandler {
	return &QuoteHandler{quoteService: quoteService, logger: logger}
}

// RegisterRoutes registers the quote routes to the Echo group.
func (h *QuoteHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/quote/:symbol", h.GetQuote)
	g.POST("/quotes", h.GetQuotes)
}

// GetQuote godoc
// @Summary Get a quote
// @Tags quotes
// @Produce  json
// @Param   symbol  path    string true    "Ticker symbol"
// @Success 200 {object} dto.Quote
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /quote/{symbol} [get]
func (h *QuoteHandler) GetQuote(c echo.Context) error {
	quote, err := h.quoteService.GetQuote(c.Request().Context(), c.Param("symbol"))
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(http.StatusOK, quote)
}

// GetQuotes godoc
// @Summary Get several quotes
// @Description Symbols without data are omitted from the result
// @Tags quotes
// @Accept  json
// @Produce  json
// @Param   request  body    dto.QuotesRequest   true    "Symbols"
// @Success 200 {object} dto.QuotesResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /quotes [post]
func (h *QuoteHandler) GetQuotes(c echo.Context) error {
	var req dto.QuotesRequest
	if err := c.Bind(&req); err != nil {
		return invalidPayload(c)
	}

	resp, err := h.quoteService.GetQuotes(c.Request().Context(), &req)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(http.StatusOK, resp)
}
