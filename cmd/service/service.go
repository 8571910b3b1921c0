// @title        Book Auth API
// @version      1.0
// @description  代理登入並回傳 UserAuthResponse 的後端 API 文件
// @host         localhost:8080
// @BasePath     /api
package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"book-auth/internal/cache"
	"book-auth/internal/database"
	"book-auth/internal/router"
	"book-auth/internal/service"
	"book-auth/internal/upstream"
	"book-auth/internal/worker"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	_ "book-auth/docs" // 引入 swag 產出的 docs

	echoSwagger "github.com/swaggo/echo-swagger"
)

// CustomValidator wraps go-playground/validator for Echo
// swagger:ignore
type CustomValidator struct {
	validator *validator.Validate
}

// Validate calls the underlying validator
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

var (
	newPgxPool        = database.NewPgxPool
	newRedisClient    = cache.NewRedisClient
	runMigrationsFn   = database.RunMigrations
	newUpstreamClient = upstream.NewHTTPClient
	startServer       = func(e *echo.Echo, addr string) error { return e.Start(addr) }
	newWorkerPool     = worker.NewPool
	exitFunc          = os.Exit
)

func run() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	up, err := newUpstreamClient(cfg.UpstreamLoginURL, cfg.UpstreamRetryMax)
	if err != nil {
		return fmt.Errorf("上游設定錯誤: %v", err)
	}

	db, err := newPgxPool(context.Background(), cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("DB 連線失敗: %v", err)
	}
	defer db.Close()

	rdb, err := newRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		return fmt.Errorf("Redis 連線失敗: %v", err)
	}
	defer rdb.Close()

	if err := runMigrationsFn(cfg.DatabaseURL); err != nil {
		return fmt.Errorf("Migration 執行失敗: %v", err)
	}

	// 稽核寫入在背景執行，結束前會等待完成
	wp := newWorkerPool(cfg.WorkerCount)
	defer wp.Stop()

	sessions := service.NewSessionCache(rdb, cfg.SessionSecret, cfg.SessionTTL)

	e := echo.New()
	e.Validator = &CustomValidator{validator: validator.New()}
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	router.Setup(e, db, rdb, sessions, up, wp)

	e.GET("/swagger/*", echoSwagger.WrapHandler)
	return startServer(e, ":8080")
}

func main() {
	if err := run(); err != nil {
		log.Print(err)
		exitFunc(1)
	}
}
