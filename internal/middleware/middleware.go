// File: internal/middleware/middleware.go
package middleware

import (
	"github.com/labstack/echo/v4"
)

// NoStore 令牌回應不可被快取 (RFC 6749 5.1)
func NoStore(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		h := c.Response().Header()
		h.Set(echo.HeaderCacheControl, "no-store")
		h.Set("Pragma", "no-cache")
		return next(c)
	}
}
