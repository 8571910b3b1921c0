// File: internal/upstream/client.go
package upstream

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"book-auth/internal/dto"

	"github.com/hashicorp/go-retryablehttp"
)

const maxBodySize = 1 << 20

// ErrInvalidCredentials 上游拒絕帳密（401/403）
var ErrInvalidCredentials = errors.New("upstream rejected credentials")

// StatusError 上游回傳非預期的狀態碼
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status code %d: %s", e.StatusCode, e.Body)
}

// Client 向上游身分提供者登入並取得 UserAuthResponse
type Client interface {
	Login(ctx context.Context, username, password string) (*dto.UserAuthResponse, error)
}

type httpClient struct {
	loginURL   string
	httpClient *retryablehttp.Client
}

// NewHTTPClient loginURL 必須是絕對網址；retryMax 為 5xx 或連線失敗時的重試次數
func NewHTTPClient(loginURL string, retryMax int) (Client, error) {
	u, err := url.Parse(loginURL)
	if err != nil {
		return nil, fmt.Errorf("parse upstream login url: %w", err)
	}
	if !u.IsAbs() || u.Host == "" {
		return nil, fmt.Errorf("upstream login url must be absolute: %q", loginURL)
	}
	if retryMax < 0 {
		return nil, fmt.Errorf("invalid retry max: %d", retryMax)
	}
	return &httpClient{
		loginURL:   u.String(),
		httpClient: newRetryableHTTPClient(retryMax),
	}, nil
}

func newRetryableHTTPClient(retryMax int) *retryablehttp.Client {
	c := retryablehttp.NewClient()
	c.RetryMax = retryMax
	c.RetryWaitMin = 100 * time.Millisecond
	c.RetryWaitMax = 2 * time.Second
	// 重試用完時交回最後一個回應，由 Login 判斷狀態碼
	c.ErrorHandler = retryablehttp.PassthroughErrorHandler
	// 不輸出每個請求的 DEBUG log，錯誤由 handler 記錄
	c.Logger = nil
	return c
}

// Login 以 form 送出帳密，成功時解析回應為 UserAuthResponse。
// 回應格式錯誤時回傳 *dto.DeserializationError。
func (c *httpClient) Login(ctx context.Context, username, password string) (*dto.UserAuthResponse, error) {
	form := url.Values{}
	form.Set("username", username)
	form.Set("password", password)

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPost, c.loginURL, []byte(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusUnauthorized, http.StatusForbidden:
		return nil, ErrInvalidCredentials
	default:
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	p, err := dto.ParseUserAuthResponse(body)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
