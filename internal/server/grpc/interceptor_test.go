package grpc

import (
	"context"
	"testing"
	"time"

	"github.com/dmitrijs2005/dogbox/internal/api"
	"github.com/dmitrijs2005/dogbox/internal/common"
	"github.com/dmitrijs2005/dogbox/internal/server/auth"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

// helper to build server
func newTestServer(secret string) *GRPCServer {
	return NewGRPCServer("127.0.0.1:0", nopLogger{}, &fakeFiles{}, nil, secret)
}

func incomingWithToken(token string) context.Context {
	md := metadata.New(map[string]string{common.AccessTokenHeaderName: token})
	return metadata.NewIncomingContext(context.Background(), md)
}

func TestInterceptor_Ping_AllowsWithoutToken(t *testing.T) {
	s := newTestServer("secret")

	info := &grpc.UnaryServerInfo{FullMethod: api.PingFullMethodName}
	handlerCalled := false

	h := func(ctx context.Context, req interface{}) (interface{}, error) {
		handlerCalled = true
		return "ok", nil
	}

	resp, err := s.accessTokenInterceptor(context.Background(), nil, info, h)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !handlerCalled {
		t.Fatal("handler was not called")
	}
	if resp != "ok" {
		t.Fatalf("unexpected handler resp: %v", resp)
	}
}

func TestInterceptor_MissingToken(t *testing.T) {
	s := newTestServer("secret")

	for _, method := range []string{api.ListFilesFullMethodName, "/pkg.Service/OtherMethod"} {
		info := &grpc.UnaryServerInfo{FullMethod: method}

		h := func(ctx context.Context, req interface{}) (interface{}, error) {
			t.Fatal("handler should not be called when token missing")
			return nil, nil
		}

		_, err := s.accessTokenInterceptor(context.Background(), nil, info, h)
		if status.Code(err) != codes.Unauthenticated {
			t.Fatalf("%s: expected Unauthenticated, got %v", method, status.Code(err))
		}
		if status.Convert(err).Message() != "missing token" {
			t.Fatalf("expected 'missing token', got %q", status.Convert(err).Message())
		}
	}
}

func TestInterceptor_InvalidToken(t *testing.T) {
	s := newTestServer("secret")

	info := &grpc.UnaryServerInfo{FullMethod: api.CreateFileFullMethodName}

	h := func(ctx context.Context, req interface{}) (interface{}, error) {
		t.Fatal("handler should not be called for invalid token")
		return nil, nil
	}

	_, err := s.accessTokenInterceptor(incomingWithToken("not-a-valid-jwt"), nil, info, h)
	if status.Code(err) != codes.Unauthenticated {
		t.Fatalf("expected Unauthenticated, got %v", status.Code(err))
	}
	if status.Convert(err).Message() != "invalid token" {
		t.Fatalf("expected 'invalid token', got %q", status.Convert(err).Message())
	}
}

func TestInterceptor_ExpiredToken(t *testing.T) {
	secret := "secret"
	s := newTestServer(secret)

	token, err := auth.GenerateToken("u1", []byte(secret), -time.Minute)
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}

	info := &grpc.UnaryServerInfo{FullMethod: api.DeleteFileFullMethodName}
	h := func(ctx context.Context, req interface{}) (interface{}, error) {
		t.Fatal("handler should not be called for expired token")
		return nil, nil
	}

	_, err = s.accessTokenInterceptor(incomingWithToken(token), nil, info, h)
	if status.Code(err) != codes.Unauthenticated {
		t.Fatalf("expected Unauthenticated, got %v", status.Code(err))
	}
	if status.Convert(err).Message() != "token expired" {
		t.Fatalf("expected 'token expired', got %q", status.Convert(err).Message())
	}
}

func TestInterceptor_ValidToken_SetsUserID(t *testing.T) {
	secret := "super-secret"
	s := newTestServer(secret)

	userID := "user-123"
	token, err := auth.GenerateToken(userID, []byte(secret), time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}

	info := &grpc.UnaryServerInfo{FullMethod: api.ListFilesFullMethodName}

	var gotFromCtx string
	h := func(ctx context.Context, req interface{}) (interface{}, error) {
		gotFromCtx, err = userIDFromContext(ctx)
		return "ok", err
	}

	resp, err := s.accessTokenInterceptor(incomingWithToken(token), nil, info, h)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp != "ok" {
		t.Fatalf("unexpected handler resp: %v", resp)
	}
	if gotFromCtx != userID {
		t.Fatalf("user id not propagated in context: got %v want %v", gotFromCtx, userID)
	}
}

func TestUserIDFromContext_Missing(t *testing.T) {
	_, err := userIDFromContext(context.Background())
	if status.Code(err) != codes.Unauthenticated {
		t.Fatalf("expected Unauthenticated, got %v", status.Code(err))
	}
}
