package api

import (
	models "Traxor/internal/domain/models"
	xhttp "Traxor/pkg/http"

	"github.com/labstack/echo/v4"
)

type HealthHandler struct {
	mode models.Mode
}

func NewHealthHandler(mode models.Mode) *HealthHandler {
	return &HealthHandler{mode: mode}
}

func (h *HealthHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", h.Health)
}

func (h *HealthHandler) Health(c echo.Context) error {
	return xhttp.SuccessResponse(c, models.HealthResponse{Status: "ok", Mode: string(h.mode)})
}
