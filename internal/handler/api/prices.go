package api

import (
	"errors"
	"strings"

	models "Traxor/internal/domain/models"
	domrepo "Traxor/internal/domain/repository"
	xhttp "Traxor/pkg/http"

	"github.com/labstack/echo/v4"
)

type PricesEchoHandler struct {
	prices domrepo.PriceLookup
}

func NewPricesEchoHandler(prices domrepo.PriceLookup) *PricesEchoHandler {
	return &PricesEchoHandler{prices: prices}
}

func (h *PricesEchoHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/api/prices/:symbol", h.Quote)
}

// Quote answers with the default table when the live lookup fails; only a
// symbol with neither is a 404.
func (h *PricesEchoHandler) Quote(c echo.Context) error {
	req := &models.PriceRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	symbol := strings.ToUpper(req.Symbol)
	q, err := h.prices.Quote(c.Request().Context(), symbol)
	if errors.Is(err, models.ErrPriceUnavailable) {
		return xhttp.AppErrorResponse(c, xhttp.NotFoundErrorf("no price for %s", symbol).WithParam("symbol", symbol))
	}
	if err != nil {
		return xhttp.AppErrorResponse(c, err)
	}
	c.Response().Header().Set(echo.HeaderCacheControl, "public, max-age=30")
	return xhttp.SuccessResponse(c, q)
}
