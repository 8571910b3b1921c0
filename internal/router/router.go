// File: internal/router/router.go
package router

import (
	"book-auth/internal/cache"
	"book-auth/internal/database"
	"book-auth/internal/handler"
	"book-auth/internal/handler/auth"
	"book-auth/internal/middleware"
	"book-auth/internal/upstream"
	"book-auth/internal/worker"

	"github.com/labstack/echo/v4"
)

// Setup 註冊所有路由
func Setup(e *echo.Echo, db database.DB, rdb cache.Cache, sessions auth.Sessions, up upstream.Client, wp worker.Pool) {
	api := e.Group("/api")

	// 健康檢查
	api.GET("/ping", handler.PingHandler(db, rdb))

	// 代理登入與稽核紀錄
	api.POST("/auth/login", auth.LoginHandler(db, sessions, up, wp), middleware.NoStore)
	api.GET("/auth/events", auth.ListLoginEventsHandler(db))
}
