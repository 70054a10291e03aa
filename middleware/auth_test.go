package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DeepaShriSG/EcomBE/utils"
)

const testSecret = "test-secret"

func run(t *testing.T, mw echo.MiddlewareFunc, authHeader string) (*httptest.ResponseRecorder, bool) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	reached := false
	handler := mw(func(c echo.Context) error {
		reached = true
		return c.NoContent(http.StatusOK)
	})
	require.NoError(t, handler(c))
	return rec, reached
}

func TestAuthenticate(t *testing.T) {
	mw := Authenticate(testSecret)

	t.Run("missing token is 400", func(t *testing.T) {
		rec, reached := run(t, mw, "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.False(t, reached)
	})

	t.Run("malformed header is 400", func(t *testing.T) {
		rec, reached := run(t, mw, "Token abc")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.False(t, reached)
	})

	t.Run("garbage token is 401", func(t *testing.T) {
		rec, reached := run(t, mw, "Bearer not.a.token")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.False(t, reached)
	})

	t.Run("expired token is 401", func(t *testing.T) {
		token, err := utils.GenerateJWT(testSecret, -time.Minute, "Deepa", "d@e.f", "", "user")
		require.NoError(t, err)

		rec, reached := run(t, mw, "Bearer "+token)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Contains(t, rec.Body.String(), "expired")
		assert.False(t, reached)
	})

	t.Run("token signed with another secret is 401", func(t *testing.T) {
		token, err := utils.GenerateJWT("other", time.Hour, "Deepa", "d@e.f", "", "user")
		require.NoError(t, err)

		rec, reached := run(t, mw, "Bearer "+token)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.False(t, reached)
	})

	t.Run("valid token reaches the handler with claims set", func(t *testing.T) {
		token, err := utils.GenerateJWT(testSecret, time.Hour, "Deepa", "d@e.f", "", "user")
		require.NoError(t, err)

		e := echo.New()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		handler := mw(func(c echo.Context) error {
			claims, ok := ClaimsFrom(c)
			require.True(t, ok)
			assert.Equal(t, "d@e.f", claims.Email)
			return c.NoContent(http.StatusOK)
		})
		require.NoError(t, handler(c))
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestRequireAdmin(t *testing.T) {
	protected := func(claims *utils.Claims) (*httptest.ResponseRecorder, bool) {
		e := echo.New()
		req := httptest.NewRequest(http.MethodPost, "/products/create", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		if claims != nil {
			c.Set(ClaimsKey, claims)
		}

		reached := false
		handler := RequireAdmin(func(c echo.Context) error {
			reached = true
			return c.NoContent(http.StatusOK)
		})
		if err := handler(c); err != nil {
			t.Fatal(err)
		}
		return rec, reached
	}

	t.Run("admin passes", func(t *testing.T) {
		rec, reached := protected(&utils.Claims{Role: "admin"})
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.True(t, reached)
	})

	t.Run("non-admin is rejected with 403", func(t *testing.T) {
		rec, reached := protected(&utils.Claims{Role: "user"})
		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.False(t, reached)
	})

	t.Run("no claims is 400", func(t *testing.T) {
		rec, reached := protected(nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.False(t, reached)
	})
}
