package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"book-auth/internal/database"
	"book-auth/internal/dto"
	"book-auth/internal/model"
	"book-auth/internal/service"
	"book-auth/internal/upstream"

	"github.com/stretchr/testify/require"
)

func miss(context.Context, string, string) (*dto.UserAuthResponse, error) {
	return nil, service.ErrSessionMiss
}

func TestLoginHandlerBadRequest(t *testing.T) {
	t.Cleanup(restoreGlobals)
	h := LoginHandler(&database.FakeDB{}, &fakeSessions{}, &upstream.FakeClient{}, &inlinePool{})

	// bind error
	e := newEcho()
	e.Binder = errBinder{}
	ctx, rec := newCtx(e, http.MethodPost, "/", "username=a&password=b")
	require.NoError(t, h(ctx))
	require.Equal(t, http.StatusBadRequest, rec.Code)

	// missing password
	ctx, rec = newCtx(newEcho(), http.MethodPost, "/", "username=a")
	require.NoError(t, h(ctx))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), "Password")
}

func TestLoginHandlerUpstream(t *testing.T) {
	t.Cleanup(restoreGlobals)
	var recorded *model.LoginEvent
	recordLoginEvent = func(_ context.Context, _ database.DB, e *model.LoginEvent) error {
		recorded = e
		return nil
	}

	sessions := &fakeSessions{getFn: miss}
	up := &upstream.FakeClient{LoginFn: func(_ context.Context, u, p string) (*dto.UserAuthResponse, error) {
		require.Equal(t, "alice", u)
		require.Equal(t, "pw", p)
		r := dto.NewUserAuthResponse("tok", "Bearer")
		return &r, nil
	}}
	wp := &inlinePool{}

	ctx, rec := newCtx(newEcho(), http.MethodPost, "/", "username=alice&password=pw")
	require.NoError(t, LoginHandler(&database.FakeDB{}, sessions, up, wp)(ctx))
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"access_token":"tok","token_type":"Bearer"}`, rec.Body.String())

	require.Equal(t, []dto.UserAuthResponse{dto.NewUserAuthResponse("tok", "Bearer")}, sessions.put)
	require.Equal(t, 1, wp.submitted)
	require.Equal(t, &model.LoginEvent{Username: "alice", TokenType: "Bearer", Source: model.SourceUpstream}, recorded)
}

func TestLoginHandlerCacheHit(t *testing.T) {
	t.Cleanup(restoreGlobals)
	var recorded *model.LoginEvent
	recordLoginEvent = func(_ context.Context, _ database.DB, e *model.LoginEvent) error {
		recorded = e
		return errors.New("db down") // 只記 log，不影響回應
	}

	sessions := &fakeSessions{getFn: func(context.Context, string, string) (*dto.UserAuthResponse, error) {
		r := dto.NewUserAuthResponse("cached", "Bearer")
		return &r, nil
	}}
	ctx, rec := newCtx(newEcho(), http.MethodPost, "/", "username=alice&password=pw")
	require.NoError(t, LoginHandler(&database.FakeDB{}, sessions, &upstream.FakeClient{}, &inlinePool{})(ctx))
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"access_token":"cached","token_type":"Bearer"}`, rec.Body.String())
	require.Empty(t, sessions.put)
	require.Equal(t, model.SourceCache, recorded.Source)
}

func TestLoginHandlerCacheFailures(t *testing.T) {
	t.Cleanup(restoreGlobals)
	recordLoginEvent = func(context.Context, database.DB, *model.LoginEvent) error { return nil }

	sessions := &fakeSessions{
		getFn: func(context.Context, string, string) (*dto.UserAuthResponse, error) {
			return nil, &dto.DeserializationError{Field: "access_token", Err: errors.New("corrupt")}
		},
		putFn: func(context.Context, string, string, dto.UserAuthResponse) error { return errors.New("readonly") },
	}
	up := &upstream.FakeClient{LoginFn: func(context.Context, string, string) (*dto.UserAuthResponse, error) {
		r := dto.NewUserAuthResponse("fresh", "Bearer")
		return &r, nil
	}}
	ctx, rec := newCtx(newEcho(), http.MethodPost, "/", "username=alice&password=pw")
	require.NoError(t, LoginHandler(&database.FakeDB{}, sessions, up, &inlinePool{})(ctx))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "fresh")
	require.Len(t, sessions.put, 1)
}

func TestLoginHandlerUpstreamErrors(t *testing.T) {
	t.Cleanup(restoreGlobals)
	recordLoginEvent = func(context.Context, database.DB, *model.LoginEvent) error {
		t.Fatal("no audit on failure")
		return nil
	}

	cases := []struct {
		err  error
		code int
		msg  string
	}{
		{upstream.ErrInvalidCredentials, http.StatusUnauthorized, "invalid credentials"},
		{&dto.DeserializationError{Field: "token_type", Err: errors.New("x")}, http.StatusBadGateway, "malformed upstream response"},
		{&upstream.StatusError{StatusCode: 503}, http.StatusBadGateway, "upstream unavailable"},
		{fmt.Errorf("execute request: %w", context.DeadlineExceeded), http.StatusBadGateway, "upstream unavailable"},
	}
	for _, tc := range cases {
		sessions := &fakeSessions{getFn: miss}
		up := &upstream.FakeClient{LoginFn: func(context.Context, string, string) (*dto.UserAuthResponse, error) {
			return nil, tc.err
		}}
		wp := &inlinePool{}
		ctx, rec := newCtx(newEcho(), http.MethodPost, "/", "username=alice&password=pw")
		require.NoError(t, LoginHandler(&database.FakeDB{}, sessions, up, wp)(ctx))
		require.Equal(t, tc.code, rec.Code, tc.msg)
		require.Contains(t, rec.Body.String(), tc.msg)
		require.Empty(t, sessions.put)
		require.Zero(t, wp.submitted)
	}
}
