package middleware

import (
	"testing"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"
)

const testSecret = "test-secret"

func signedToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func runAuth(t *testing.T, prepare func(ctx *fasthttp.RequestCtx)) (*fasthttp.RequestCtx, bool) {
	t.Helper()
	var reached bool
	handler := JWTAuth(testSecret, nil)(func(ctx *fasthttp.RequestCtx) {
		reached = true
	})

	var ctx fasthttp.RequestCtx
	prepare(&ctx)
	handler(&ctx)
	return &ctx, reached
}

func TestJWTAuth_SetsUserIDFromSub(t *testing.T) {
	token := signedToken(t, testSecret, jwt.MapClaims{"sub": "user-1"})

	ctx, reached := runAuth(t, func(ctx *fasthttp.RequestCtx) {
		ctx.Request.Header.Set("Authorization", "Bearer "+token)
	})

	assert.True(t, reached)
	assert.Equal(t, "user-1", string(ctx.Request.Header.Peek("X-User-ID")))
}

func TestJWTAuth_UserIDClaimFallback(t *testing.T) {
	token := signedToken(t, testSecret, jwt.MapClaims{"user_id": "user-2"})

	ctx, reached := runAuth(t, func(ctx *fasthttp.RequestCtx) {
		ctx.Request.Header.Set("Authorization", "Bearer "+token)
	})

	assert.True(t, reached)
	assert.Equal(t, "user-2", string(ctx.Request.Header.Peek("X-User-ID")))
}

func TestJWTAuth_StripsClientSuppliedUserID(t *testing.T) {
	// A verified token without identity claims must not let the client's
	// own X-User-ID header through.
	token := signedToken(t, testSecret, jwt.MapClaims{"scope": "none"})

	ctx, reached := runAuth(t, func(ctx *fasthttp.RequestCtx) {
		ctx.Request.Header.Set("Authorization", "Bearer "+token)
		ctx.Request.Header.Set("X-User-ID", "victim")
	})

	assert.True(t, reached)
	assert.Empty(t, string(ctx.Request.Header.Peek("X-User-ID")))
}

func TestJWTAuth_SpoofedHeaderReplacedBySub(t *testing.T) {
	token := signedToken(t, testSecret, jwt.MapClaims{"sub": "user-1"})

	ctx, _ := runAuth(t, func(ctx *fasthttp.RequestCtx) {
		ctx.Request.Header.Set("Authorization", "Bearer "+token)
		ctx.Request.Header.Set("X-User-ID", "victim")
	})

	assert.Equal(t, "user-1", string(ctx.Request.Header.Peek("X-User-ID")))
}

func TestJWTAuth_MissingToken(t *testing.T) {
	ctx, reached := runAuth(t, func(ctx *fasthttp.RequestCtx) {})

	assert.False(t, reached)
	assert.Equal(t, fasthttp.StatusUnauthorized, ctx.Response.StatusCode())
}

func TestJWTAuth_BadSignature(t *testing.T) {
	token := signedToken(t, "other-secret", jwt.MapClaims{"sub": "user-1"})

	ctx, reached := runAuth(t, func(ctx *fasthttp.RequestCtx) {
		ctx.Request.Header.Set("Authorization", "Bearer "+token)
	})

	assert.False(t, reached)
	assert.Equal(t, fasthttp.StatusUnauthorized, ctx.Response.StatusCode())
}
