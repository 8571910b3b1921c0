package auth

import (
	"context"
	"errors"
	"net/http/httptest"
	"strings"

	"book-auth/internal/dto"
	"book-auth/internal/store"
	"book-auth/internal/worker"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type errBinder struct{}

func (errBinder) Bind(i any, c echo.Context) error { return errors.New("bind") }

// tagValidator 用真的 validator 檢查 struct tag
type tagValidator struct{ v *validator.Validate }

func (tv tagValidator) Validate(i any) error { return tv.v.Struct(i) }

func newEcho() *echo.Echo {
	e := echo.New()
	e.Validator = tagValidator{v: validator.New()}
	return e
}

func newCtx(e *echo.Echo, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

// fakeSessions 記錄 Put 的內容
type fakeSessions struct {
	getFn func(ctx context.Context, username, password string) (*dto.UserAuthResponse, error)
	putFn func(ctx context.Context, username, password string, p dto.UserAuthResponse) error
	put   []dto.UserAuthResponse
}

func (f *fakeSessions) Get(ctx context.Context, username, password string) (*dto.UserAuthResponse, error) {
	return f.getFn(ctx, username, password)
}

func (f *fakeSessions) Put(ctx context.Context, username, password string, p dto.UserAuthResponse) error {
	f.put = append(f.put, p)
	if f.putFn != nil {
		return f.putFn(ctx, username, password, p)
	}
	return nil
}

// inlinePool 立即執行工作
type inlinePool struct{ submitted int }

func (p *inlinePool) Submit(t worker.Task) { p.submitted++; t() }
func (p *inlinePool) Stop()                {}

func restoreGlobals() {
	recordLoginEvent = store.InsertLoginEvent
	listLoginEvents = store.ListLoginEvents
}
