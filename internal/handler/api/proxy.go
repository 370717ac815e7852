package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	models "Traxor/internal/domain/models"
	domrepo "Traxor/internal/domain/repository"
	"Traxor/internal/service/ratelimit"
	xlogger "Traxor/pkg/logger"

	"github.com/labstack/echo/v4"
)

// ProxyPath is the pass-through route. It sets its own CORS headers, so the
// global CORS middleware skips it.
const ProxyPath = "/api/chat/completions"

const maxProxyBody = 1 << 20

// ProxyError is the body of every response the proxy itself produces.
type ProxyError struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// ProxyHandler relays chat-completion calls with the server's credential.
type ProxyHandler struct {
	logger        *xlogger.Logger
	forwarder     domrepo.ChatForwarder
	limiter       *ratelimit.Limiter
	metrics       domrepo.Metrics
	credentialEnv string
}

func NewProxyHandler(
	logger *xlogger.Logger,
	forwarder domrepo.ChatForwarder,
	limiter *ratelimit.Limiter,
	metrics domrepo.Metrics,
	credentialEnv string,
) *ProxyHandler {
	return &ProxyHandler{
		logger:        logger.With(xlogger.String("component", "proxy")),
		forwarder:     forwarder,
		limiter:       limiter,
		metrics:       metrics,
		credentialEnv: credentialEnv,
	}
}

func (h *ProxyHandler) RegisterRoutes(e *echo.Echo) {
	e.Any(ProxyPath, h.Proxy)
}

// Proxy answers uncaught panics with the proxy's own error body rather than
// the API envelope.
func (h *ProxyHandler) Proxy(c echo.Context) (err error) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		if r == http.ErrAbortHandler {
			panic(r)
		}
		err = h.fail(c, http.StatusInternalServerError, "Proxy request failed", fmt.Sprint(r))
	}()
	return h.relay(c)
}

func (h *ProxyHandler) relay(c echo.Context) error {
	hdr := c.Response().Header()
	hdr.Set(echo.HeaderAccessControlAllowOrigin, "*")
	hdr.Set(echo.HeaderAccessControlAllowHeaders, echo.HeaderContentType)
	hdr.Set(echo.HeaderAccessControlAllowMethods, "POST, OPTIONS")
	hdr.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)

	switch c.Request().Method {
	case http.MethodOptions:
		return c.NoContent(http.StatusOK)
	case http.MethodPost:
	default:
		return h.fail(c, http.StatusMethodNotAllowed, "Method not allowed", "")
	}

	if h.limiter != nil && !h.limiter.Allow(c.RealIP()) {
		return h.fail(c, http.StatusTooManyRequests, "Too many requests", "retry later")
	}

	body, err := io.ReadAll(io.LimitReader(c.Request().Body, maxProxyBody))
	if err != nil {
		return h.fail(c, http.StatusInternalServerError, "Failed to read request body", err.Error())
	}
	var payload json.RawMessage
	if err := json.Unmarshal(body, &payload); err != nil {
		return h.fail(c, http.StatusInternalServerError, "Invalid JSON body", err.Error())
	}

	status, upstream, err := h.forwarder.Forward(c.Request().Context(), body)
	switch {
	case errors.Is(err, models.ErrNoCredential):
		return h.fail(c, http.StatusUnauthorized, "No authentication token available", "set "+h.credentialEnv+" on the server")
	case err != nil:
		return h.fail(c, http.StatusInternalServerError, "Proxy request failed", err.Error())
	}

	h.metrics.RecordProxyRequest(status)
	if status >= http.StatusInternalServerError {
		h.logger.Warn("upstream error passed through", xlogger.Int("status", status))
	}
	return c.Blob(status, echo.MIMEApplicationJSON, upstream)
}

func (h *ProxyHandler) fail(c echo.Context, status int, msg, details string) error {
	h.metrics.RecordProxyRequest(status)
	if status >= http.StatusInternalServerError {
		h.logger.Error(msg, xlogger.Int("status", status), xlogger.String("details", details))
	}
	return c.JSON(status, ProxyError{Error: msg, Details: details})
}
