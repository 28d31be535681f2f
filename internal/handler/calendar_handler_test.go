package handler_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"medibook/internal/auth"
	"medibook/internal/handler"
	"medibook/internal/router"
)

// stubCalendarAuthService records what the handler passed through the secured
// route so the JWT handoff can be asserted end to end.
type stubCalendarAuthService struct {
	gotUserID uint
	gotCode   string
}

func (s *stubCalendarAuthService) HandleCallback(ctx context.Context, userID uint, code string) (string, error) {
	s.gotUserID = userID
	s.gotCode = code
	return "provider-access-token", nil
}

func (s *stubCalendarAuthService) ResolveAccessToken(ctx context.Context, userID uint, provided string) (string, error) {
	return provided, nil
}

func newCallbackServer(secret string) (*echo.Echo, *stubCalendarAuthService) {
	stub := &stubCalendarAuthService{}
	e := echo.New()
	secured := e.Group("", router.JWTMiddleware(secret))
	secured.GET("/auth/google/callback", handler.NewCalendarHandler(stub).Callback)
	return e, stub
}

func TestCallbackThroughJWTMiddleware(t *testing.T) {
	jwtService := auth.NewJWTService("test-secret")
	token, err := jwtService.GenerateAccessToken(7, "doc@example.com")
	assert.NoError(t, err)

	t.Run("bearer token reaches the handler with its account id", func(t *testing.T) {
		e, stub := newCallbackServer("test-secret")

		req := httptest.NewRequest(http.MethodGet, "/auth/google/callback?code=auth-code", nil)
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, uint(7), stub.gotUserID)
		assert.Equal(t, "auth-code", stub.gotCode)
		assert.Contains(t, rec.Body.String(), "provider-access-token")
	})

	t.Run("token signed with another secret is rejected", func(t *testing.T) {
		e, stub := newCallbackServer("test-secret")
		forged, err := auth.NewJWTService("other-secret").GenerateAccessToken(7, "doc@example.com")
		assert.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/auth/google/callback?code=auth-code", nil)
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+forged)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Zero(t, stub.gotUserID)
	})

	t.Run("raw token without the bearer scheme never reaches the handler", func(t *testing.T) {
		e, stub := newCallbackServer("test-secret")

		req := httptest.NewRequest(http.MethodGet, "/auth/google/callback?code=auth-code", nil)
		req.Header.Set(echo.HeaderAuthorization, token)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		assert.NotEqual(t, http.StatusOK, rec.Code)
		assert.Zero(t, stub.gotUserID)
	})

	t.Run("missing header never reaches the handler", func(t *testing.T) {
		e, stub := newCallbackServer("test-secret")

		req := httptest.NewRequest(http.MethodGet, "/auth/google/callback?code=auth-code", nil)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		assert.NotEqual(t, http.StatusOK, rec.Code)
		assert.Zero(t, stub.gotUserID)
	})
}
