package api

import (
	"Traxor/internal/service/feed"
	xlogger "Traxor/pkg/logger"

	"github.com/labstack/echo/v4"
)

// FeedHandler upgrades clients onto the live signal feed.
type FeedHandler struct {
	logger *xlogger.Logger
	hub    *feed.Hub
}

func NewFeedHandler(logger *xlogger.Logger, hub *feed.Hub) *FeedHandler {
	return &FeedHandler{logger: logger, hub: hub}
}

func (h *FeedHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/ws/signals", h.Stream)
}

func (h *FeedHandler) Stream(c echo.Context) error {
	conn, err := feed.Upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		// Upgrade has already written the HTTP error.
		h.logger.Warn("feed upgrade failed", xlogger.Error(err))
		return nil
	}
	h.hub.ServeConn(conn)
	return nil
}
