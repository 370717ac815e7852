package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func newEcho(mw echo.MiddlewareFunc) *echo.Echo {
	e := echo.New()
	e.Use(mw)
	e.Any("/x", func(c echo.Context) error { return c.String(http.StatusOK, "ok") })
	e.Any("/skip", func(c echo.Context) error { return c.String(http.StatusTeapot, "own") })
	return e
}

func TestCORSStarOriginAndPreflight(t *testing.T) {
	e := newEcho(CORS(CORSConfig{
		AllowOrigins:    []string{"*"},
		AllowMethods:    []string{http.MethodPost, http.MethodOptions},
		AllowHeaders:    []string{echo.HeaderContentType},
		PreflightStatus: http.StatusOK,
		Skipper:         func(c echo.Context) bool { return c.Path() == "/skip" },
	}))

	req := httptest.NewRequest(http.MethodOptions, "/x", nil)
	req.Header.Set(echo.HeaderOrigin, "https://app.example")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Body.String())
	assert.Equal(t, "*", rec.Header().Get(echo.HeaderAccessControlAllowOrigin))
	assert.Equal(t, "POST, OPTIONS", rec.Header().Get(echo.HeaderAccessControlAllowMethods))
	assert.Equal(t, "Content-Type", rec.Header().Get(echo.HeaderAccessControlAllowHeaders))

	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/x", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get(echo.HeaderAccessControlAllowOrigin))

	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodOptions, "/skip", nil))
	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.Empty(t, rec.Header().Get(echo.HeaderAccessControlAllowOrigin))
}

func TestCORSRejectsUnlistedOrigin(t *testing.T) {
	e := newEcho(CORS(CORSConfig{AllowOrigins: []string{"https://a.example"}}))

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set(echo.HeaderOrigin, "https://b.example")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Empty(t, rec.Header().Get(echo.HeaderAccessControlAllowOrigin))

	req.Header.Set(echo.HeaderOrigin, "https://a.example")
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, "https://a.example", rec.Header().Get(echo.HeaderAccessControlAllowOrigin))
}
