// File: internal/upstream/fake.go
package upstream

import (
	"context"

	"book-auth/internal/dto"
)

// FakeClient 測試用；未設定 LoginFn 時 panic
type FakeClient struct {
	LoginFn func(ctx context.Context, username, password string) (*dto.UserAuthResponse, error)
}

func (f *FakeClient) Login(ctx context.Context, username, password string) (*dto.UserAuthResponse, error) {
	if f.LoginFn != nil {
		return f.LoginFn(ctx, username, password)
	}
	panic("unexpected Login")
}
