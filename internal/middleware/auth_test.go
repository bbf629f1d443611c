package middleware

import (
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"github.com/localhub-app/localhub-backend/internal/auth"
)

func newTestApp(t *testing.T) (*fiber.App, *auth.TokenManager) {
	t.Helper()

	tm, err := auth.NewTokenManager("test-secret", auth.DefaultTokenTTL)
	require.NoError(t, err)

	app := fiber.New()
	app.Get("/users", Authenticate(tm), Authorize(auth.ActionUsersRead), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"role": Identity(c).Role})
	})
	app.Post("/users", Authenticate(tm), Authorize(auth.ActionUsersWrite), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusCreated)
	})
	return app, tm
}

func TestAuthenticateMissingToken(t *testing.T) {
	app, _ := newTestApp(t)

	req := httptest.NewRequest("GET", "/users", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAuthenticateMalformedHeader(t *testing.T) {
	app, _ := newTestApp(t)

	req := httptest.NewRequest("GET", "/users", nil)
	req.Header.Set("Authorization", "Token abc")
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAuthenticateInvalidToken(t *testing.T) {
	app, _ := newTestApp(t)

	req := httptest.NewRequest("GET", "/users", nil)
	req.Header.Set("Authorization", "Bearer not-a-real-token")
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	require.Contains(t, string(body), "Invalid token")
}

func TestAuthorizeViewerVsAdmin(t *testing.T) {
	app, tm := newTestApp(t)

	viewerToken, err := tm.Issue("1", auth.RoleViewer, "admin")
	require.NoError(t, err)
	adminToken, err := tm.Issue("2", auth.RoleAdmin, "admin")
	require.NoError(t, err)

	// Viewer may read but not write users.
	req := httptest.NewRequest("GET", "/users", nil)
	req.Header.Set("Authorization", "Bearer "+viewerToken)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	req = httptest.NewRequest("POST", "/users", nil)
	req.Header.Set("Authorization", "Bearer "+viewerToken)
	resp, err = app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	// Admin may do both.
	req = httptest.NewRequest("POST", "/users", nil)
	req.Header.Set("Authorization", "Bearer "+adminToken)
	resp, err = app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
}

func TestAuthorizeWithoutAuthenticate(t *testing.T) {
	app := fiber.New()
	app.Get("/guarded", Authorize(auth.ActionUsersRead), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/guarded", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}
