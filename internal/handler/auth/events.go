// File: internal/handler/auth/events.go
package auth

import (
	"fmt"
	"net/http"

	"book-auth/internal/database"
	"book-auth/internal/dto"
	"book-auth/internal/store"

	"github.com/labstack/echo/v4"
)

const defaultEventLimit = 20

var listLoginEvents = store.ListLoginEvents

// ListLoginEventsHandler 列出使用者的代理登入紀錄
// @Summary     List login events
// @Description 依時間由新到舊列出登入稽核紀錄，不含存取令牌
// @Tags        auth
// @Produce     json
// @Param       username query string true  "使用者名稱"
// @Param       limit    query int    false "筆數 (1-100，預設 20)"
// @Success     200 {array}  dto.LoginEventResponse
// @Failure     400 {object} dto.HTTPError
// @Failure     500 {object} dto.HTTPError
// @Router      /auth/events [get]
func ListLoginEventsHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req dto.ListLoginEventsRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, dto.HTTPError{Message: fmt.Sprintf("無效的查詢參數: %v", err)})
		}
		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusBadRequest, dto.HTTPError{Message: err.Error()})
		}
		if req.Limit == 0 {
			req.Limit = defaultEventLimit
		}

		events, err := listLoginEvents(c.Request().Context(), db, req.Username, req.Limit)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, dto.HTTPError{Message: err.Error()})
		}

		resp := make([]dto.LoginEventResponse, 0, len(events))
		for _, e := range events {
			resp = append(resp, dto.LoginEventResponse{
				ID:        e.ID,
				Username:  e.Username,
				TokenType: e.TokenType,
				Source:    e.Source,
				CreatedAt: e.CreatedAt,
			})
		}
		return c.JSON(http.StatusOK, resp)
	}
}
