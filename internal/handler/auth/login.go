// File: internal/handler/auth/login.go
package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"book-auth/internal/database"
	"book-auth/internal/dto"
	"book-auth/internal/model"
	"book-auth/internal/service"
	"book-auth/internal/store"
	"book-auth/internal/upstream"
	"book-auth/internal/worker"

	"github.com/labstack/echo/v4"
)

const auditTimeout = 5 * time.Second

// Sessions 登入結果快取，由 service.SessionCache 實作
type Sessions interface {
	Get(ctx context.Context, username, password string) (*dto.UserAuthResponse, error)
	Put(ctx context.Context, username, password string, p dto.UserAuthResponse) error
}

// 測試可覆寫
var recordLoginEvent = store.InsertLoginEvent

// LoginHandler 以帳密向上游登入，回傳 UserAuthResponse
// @Summary     登入使用者
// @Description 先查 session 快取，未命中時轉送帳密給上游身分提供者，回傳存取令牌與類型
// @Tags        auth
// @Accept      application/x-www-form-urlencoded
// @Produce     json
// @Param       username formData string true "使用者名稱"
// @Param       password formData string true "使用者密碼"
// @Success     200      {object} dto.UserAuthResponse
// @Failure     400      {object} dto.HTTPError
// @Failure     401      {object} dto.HTTPError
// @Failure     502      {object} dto.HTTPError
// @Router      /auth/login [post]
func LoginHandler(db database.DB, sessions Sessions, up upstream.Client, wp worker.Pool) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req dto.LoginRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, dto.HTTPError{Message: fmt.Sprintf("無效的表單資料: %v", err)})
		}
		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusBadRequest, dto.HTTPError{Message: err.Error()})
		}

		ctx := c.Request().Context()
		source := model.SourceCache
		payload, err := sessions.Get(ctx, req.Username, req.Password)
		if err != nil {
			// 快取故障不影響登入，改走上游
			if !errors.Is(err, service.ErrSessionMiss) {
				c.Logger().Warnf("session cache read failed: %v", err)
			}

			payload, err = up.Login(ctx, req.Username, req.Password)
			if err != nil {
				return upstreamError(c, err)
			}
			source = model.SourceUpstream

			if err := sessions.Put(ctx, req.Username, req.Password, *payload); err != nil {
				c.Logger().Warnf("session cache write failed: %v", err)
			}
		}

		submitLoginEvent(c, db, wp, &model.LoginEvent{
			Username:  req.Username,
			TokenType: payload.TokenType,
			Source:    source,
		})

		return c.JSON(http.StatusOK, payload)
	}
}

func upstreamError(c echo.Context, err error) error {
	var de *dto.DeserializationError
	switch {
	case errors.Is(err, upstream.ErrInvalidCredentials):
		return c.JSON(http.StatusUnauthorized, dto.HTTPError{Message: "invalid credentials"})
	case errors.As(err, &de):
		c.Logger().Errorf("upstream login: %v", err)
		return c.JSON(http.StatusBadGateway, dto.HTTPError{Message: "malformed upstream response"})
	default:
		c.Logger().Errorf("upstream login: %v", err)
		return c.JSON(http.StatusBadGateway, dto.HTTPError{Message: "upstream unavailable"})
	}
}

// submitLoginEvent 把稽核寫入丟給 worker pool，不阻擋回應內容
func submitLoginEvent(c echo.Context, db database.DB, wp worker.Pool, event *model.LoginEvent) {
	logger := c.Logger()
	wp.Submit(func() {
		ctx, cancel := context.WithTimeout(context.Background(), auditTimeout)
		defer cancel()
		if err := recordLoginEvent(ctx, db, event); err != nil {
			logger.Errorf("record login event: %v", err)
		}
	})
}
