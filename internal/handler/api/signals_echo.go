package api

import (
	"errors"
	"strings"

	models "Traxor/internal/domain/models"
	domrepo "Traxor/internal/domain/repository"
	domsvc "Traxor/internal/domain/service"
	xhttp "Traxor/pkg/http"
	xlogger "Traxor/pkg/logger"
	"Traxor/pkg/util"

	"github.com/labstack/echo/v4"
)

// SignalsEchoHandler serves signal submission and the session history.
type SignalsEchoHandler struct {
	logger   *xlogger.Logger
	svc      domsvc.SignalService
	resolver domsvc.SymbolResolver
	store    domrepo.SignalStore
}

func NewSignalsEchoHandler(
	logger *xlogger.Logger,
	svc domsvc.SignalService,
	resolver domsvc.SymbolResolver,
	store domrepo.SignalStore,
) *SignalsEchoHandler {
	return &SignalsEchoHandler{logger: logger, svc: svc, resolver: resolver, store: store}
}

func (h *SignalsEchoHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api")
	g.POST("/signals", h.Create)
	g.GET("/signals", h.List)
	g.GET("/signals/bookmarked", h.Bookmarked)
	g.GET("/signals/:id", h.Get)
	g.POST("/signals/:id/bookmark", h.ToggleBookmark)
	g.GET("/resolve", h.Resolve)
}

// Create always answers 200 for a valid query; upstream trouble shows up as
// mode=fallback in the body.
func (h *SignalsEchoHandler) Create(c echo.Context) error {
	req := &models.CreateSignalRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	query := strings.TrimSpace(req.Query)
	if query == "" {
		return xhttp.BadRequestResponse(c, []xhttp.ValidationError{{
			Code:    "ERR_REQUIRED",
			Field:   "query",
			Message: "query is required",
		}})
	}

	return xhttp.SuccessResponse(c, h.svc.Submit(c.Request().Context(), query))
}

// List returns the history newest first. ?limit=N keeps the first N rows;
// total still counts the whole history.
func (h *SignalsEchoHandler) List(c echo.Context) error {
	rows := h.store.List()
	total := int64(len(rows))
	if limit := util.ParseIntDefault(c.QueryParam("limit"), 0); limit > 0 && limit < len(rows) {
		rows = rows[:limit]
	}
	return xhttp.ListResponse(c, rows, total)
}

func (h *SignalsEchoHandler) Bookmarked(c echo.Context) error {
	rows := h.store.Bookmarked()
	return xhttp.ListResponse(c, rows, int64(len(rows)))
}

func (h *SignalsEchoHandler) Get(c echo.Context) error {
	req := &models.SignalIDRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	s, err := h.store.Get(req.ID)
	if err != nil {
		return h.storeError(c, req.ID, err)
	}
	return xhttp.SuccessResponse(c, s)
}

func (h *SignalsEchoHandler) ToggleBookmark(c echo.Context) error {
	req := &models.SignalIDRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	s, err := h.store.ToggleBookmark(req.ID)
	if err != nil {
		return h.storeError(c, req.ID, err)
	}
	return xhttp.SuccessResponse(c, s)
}

func (h *SignalsEchoHandler) Resolve(c echo.Context) error {
	req := &models.ResolveRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	return xhttp.SuccessResponse(c, models.ResolveResponse{
		Query: req.Query,
		Asset: h.resolver.Resolve(req.Query),
	})
}

func (h *SignalsEchoHandler) storeError(c echo.Context, id string, err error) error {
	if errors.Is(err, models.ErrNotFound) {
		return xhttp.AppErrorResponse(c, xhttp.NotFoundErrorf("signal %s not found", id).WithError(err))
	}
	h.logger.Error("signal store error", xlogger.String("id", id), xlogger.Error(err))
	return xhttp.AppErrorResponse(c, xhttp.InternalError("signal store error").WithError(err))
}
