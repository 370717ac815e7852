package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

// CORSConfig holds CORS configuration.
type CORSConfig struct {
	AllowOrigins []string
	AllowMethods []string
	AllowHeaders []string
	// PreflightStatus is written for OPTIONS requests. Zero means 204.
	PreflightStatus int
	// Skipper bypasses the middleware when it returns true.
	Skipper func(c echo.Context) bool
}

// CORS returns CORS middleware. A "*" entry in AllowOrigins is echoed as the
// literal "*" rather than reflecting the request origin.
func CORS(cfg CORSConfig) echo.MiddlewareFunc {
	methods := strings.Join(cfg.AllowMethods, ", ")
	headers := strings.Join(cfg.AllowHeaders, ", ")
	preflight := cfg.PreflightStatus
	if preflight == 0 {
		preflight = http.StatusNoContent
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if cfg.Skipper != nil && cfg.Skipper(c) {
				return next(c)
			}

			allowOrigin, ok := matchOrigin(cfg.AllowOrigins, c.Request().Header.Get(echo.HeaderOrigin))
			if !ok {
				return next(c)
			}

			h := c.Response().Header()
			h.Set(echo.HeaderAccessControlAllowOrigin, allowOrigin)
			if methods != "" {
				h.Set(echo.HeaderAccessControlAllowMethods, methods)
			}
			if headers != "" {
				h.Set(echo.HeaderAccessControlAllowHeaders, headers)
			}

			if c.Request().Method == http.MethodOptions {
				return c.NoContent(preflight)
			}

			return next(c)
		}
	}
}

func matchOrigin(allowed []string, origin string) (string, bool) {
	if len(allowed) == 0 {
		return "*", true
	}
	for _, o := range allowed {
		if o == "*" {
			return "*", true
		}
		if origin != "" && o == origin {
			return origin, true
		}
	}
	return "", false
}
