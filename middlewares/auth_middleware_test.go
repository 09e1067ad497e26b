package middlewares

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "unit-test-secret"

func signToken(t *testing.T, claims Claims, secret string) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return tok
}

func freshClaims(exp time.Time) Claims {
	return Claims{
		Sub:  42,
		Role: "admin",
		Name: "Site Admin",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
}

func callAuth(token string) (echo.Context, error) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/admin/students", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	ctx := e.NewContext(req, rec)

	next := func(c echo.Context) error { return c.NoContent(http.StatusOK) }
	err := RequireAuth(testSecret)(next)(ctx)
	return ctx, err
}

func TestRequireAuthAcceptsValidToken(t *testing.T) {
	tok := signToken(t, freshClaims(time.Now().Add(time.Hour)), testSecret)

	ctx, err := callAuth(tok)
	require.NoError(t, err)

	assert.Equal(t, uint(42), ctx.Get("user_id"))
	assert.Equal(t, "admin", ctx.Get("role"))
	assert.Equal(t, "Site Admin", ctx.Get("name"))
}

func TestRequireAuthRejectsMissingHeader(t *testing.T) {
	_, err := callAuth("")

	he, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, he.Code)
}

func TestRequireAuthRejectsWrongSecret(t *testing.T) {
	tok := signToken(t, freshClaims(time.Now().Add(time.Hour)), "some-other-secret")

	_, err := callAuth(tok)

	he, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, he.Code)
}

func TestRequireAuthRejectsExpiredToken(t *testing.T) {
	tok := signToken(t, freshClaims(time.Now().Add(-time.Minute)), testSecret)

	_, err := callAuth(tok)

	he, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, he.Code)
}

func TestRequireAuthRejectsMalformedHeader(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Token abc123")
	rec := httptest.NewRecorder()
	ctx := e.NewContext(req, rec)

	next := func(c echo.Context) error { return c.NoContent(http.StatusOK) }
	err := RequireAuth(testSecret)(next)(ctx)

	he, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, he.Code)
}

func callRole(role string, allowed ...string) error {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	ctx := e.NewContext(req, rec)
	if role != "" {
		ctx.Set("role", role)
	}
	next := func(c echo.Context) error { return c.NoContent(http.StatusOK) }
	return RequireRole(allowed...)(next)(ctx)
}

func TestRequireRoleAllowsMatch(t *testing.T) {
	require.NoError(t, callRole("admin", "admin"))
	require.NoError(t, callRole("teacher", "teacher", "admin"))
	// role comparison is case-insensitive
	require.NoError(t, callRole("Admin", "admin"))
}

func TestRequireRoleForbidsMismatch(t *testing.T) {
	err := callRole("student", "teacher", "admin")

	he, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusForbidden, he.Code)
}

func TestRequireRoleForbidsWhenUnset(t *testing.T) {
	err := callRole("", "admin")

	he, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusForbidden, he.Code)
}
