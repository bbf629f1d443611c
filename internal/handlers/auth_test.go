package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"github.com/localhub-app/localhub-backend/internal/auth"
	"github.com/localhub-app/localhub-backend/internal/models"
	"github.com/localhub-app/localhub-backend/internal/routes"
	"github.com/localhub-app/localhub-backend/internal/services"
	"github.com/localhub-app/localhub-backend/internal/storage"
)

// newTestApp builds the full route tree over a memory store, with OTP
// running in fallback-only mode.
func newTestApp(t *testing.T) (*fiber.App, *storage.MemoryStore, *auth.TokenManager) {
	t.Helper()

	store := storage.NewMemoryStore()
	tm, err := auth.NewTokenManager("test-secret", auth.DefaultTokenTTL)
	require.NoError(t, err)

	app := fiber.New()
	routes.SetupRoutes(app, store, tm, services.NewOTPService(store, nil, false), nil)
	return app, store, tm
}

func seedAdmin(t *testing.T, store *storage.MemoryStore, email, password, role string) *models.AdminUser {
	t.Helper()

	hash, err := auth.HashPassword(password)
	require.NoError(t, err)
	admin, err := store.CreateAdmin(&models.AdminUser{
		Email:    email,
		Password: hash,
		Name:     "Test Admin",
		Role:     role,
		IsActive: true,
	})
	require.NoError(t, err)
	return admin
}

func jsonRequest(t *testing.T, method, path string, body interface{}, token string) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}
	return req
}

func decodeBody(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

func decodeInto(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

func TestAdminLoginFlow(t *testing.T) {
	app, store, _ := newTestApp(t)
	seedAdmin(t, store, "admin@localhub.app", "secret123", "admin")

	resp, err := app.Test(jsonRequest(t, http.MethodPost, "/api/auth/login", fiber.Map{
		"email":    "admin@localhub.app",
		"password": "secret123",
	}, ""))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	token, ok := body["token"].(string)
	require.True(t, ok)
	require.NotEmpty(t, token)

	resp, err = app.Test(jsonRequest(t, http.MethodGet, "/api/auth/profile", nil, token))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	profile := decodeBody(t, resp)
	require.Equal(t, "admin@localhub.app", profile["email"])
	require.Equal(t, "admin", profile["role"])
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	app, store, _ := newTestApp(t)
	seedAdmin(t, store, "admin@localhub.app", "secret123", "admin")

	inactive := seedAdmin(t, store, "retired@localhub.app", "secret123", "admin")
	inactive.IsActive = false
	require.NoError(t, store.UpdateAdmin(inactive))

	tests := []struct {
		name  string
		email string
		pass  string
	}{
		{"unknown email", "nobody@localhub.app", "secret123"},
		{"wrong password", "admin@localhub.app", "not-the-password"},
		{"inactive account", "retired@localhub.app", "secret123"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := app.Test(jsonRequest(t, http.MethodPost, "/api/auth/login", fiber.Map{
				"email":    tt.email,
				"password": tt.pass,
			}, ""))
			require.NoError(t, err)
			require.Equal(t, http.StatusBadRequest, resp.StatusCode)
			require.Equal(t, "Invalid credentials", decodeBody(t, resp)["message"])
		})
	}
}

func TestOTPLoginCreatesUser(t *testing.T) {
	app, store, _ := newTestApp(t)
	phone := "+919876543210"

	resp, err := app.Test(jsonRequest(t, http.MethodPost, "/api/auth/send-otp", fiber.Map{
		"phoneNumber": phone,
	}, ""))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// The response must not leak the code; fetch it from storage.
	body := decodeBody(t, resp)
	require.NotContains(t, body, "code")
	require.NotContains(t, body, "otp")

	challenge, err := store.GetOTPChallenge(phone)
	require.NoError(t, err)

	resp, err = app.Test(jsonRequest(t, http.MethodPost, "/api/auth/verify-otp", fiber.Map{
		"phoneNumber": phone,
		"code":        challenge.Code,
	}, ""))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body = decodeBody(t, resp)
	require.Equal(t, true, body["verified"])
	require.NotEmpty(t, body["token"])

	user, err := store.GetUserByPhone(phone)
	require.NoError(t, err)
	require.True(t, user.IsVerified)
	require.NotNil(t, user.LastActive)

	// Codes are single use: replaying the same one must fail.
	resp, err = app.Test(jsonRequest(t, http.MethodPost, "/api/auth/verify-otp", fiber.Map{
		"phoneNumber": phone,
		"code":        challenge.Code,
	}, ""))
	require.NoError(t, err)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestVerifyOTPRejectsWrongCode(t *testing.T) {
	app, store, _ := newTestApp(t)
	phone := "+919876543210"

	resp, err := app.Test(jsonRequest(t, http.MethodPost, "/api/auth/send-otp", fiber.Map{
		"phoneNumber": phone,
	}, ""))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = app.Test(jsonRequest(t, http.MethodPost, "/api/auth/verify-otp", fiber.Map{
		"phoneNumber": phone,
		"code":        "000000",
	}, ""))
	require.NoError(t, err)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	require.Equal(t, "Invalid OTP", decodeBody(t, resp)["message"])

	_, err = store.GetUserByPhone(phone)
	require.ErrorIs(t, err, storage.ErrNotFound)
}

func TestChangePassword(t *testing.T) {
	app, store, _ := newTestApp(t)
	seedAdmin(t, store, "admin@localhub.app", "old-password", "admin")

	login := func(password string) *http.Response {
		resp, err := app.Test(jsonRequest(t, http.MethodPost, "/api/auth/login", fiber.Map{
			"email":    "admin@localhub.app",
			"password": password,
		}, ""))
		require.NoError(t, err)
		return resp
	}

	resp := login("old-password")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	token := decodeBody(t, resp)["token"].(string)

	resp, err := app.Test(jsonRequest(t, http.MethodPut, "/api/auth/change-password", fiber.Map{
		"currentPassword": "old-password",
		"newPassword":     "new-password",
	}, token))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	require.Equal(t, http.StatusBadRequest, login("old-password").StatusCode)
	require.Equal(t, http.StatusOK, login("new-password").StatusCode)
}

func TestChangePasswordRejectsShortPassword(t *testing.T) {
	app, store, tm := newTestApp(t)
	admin := seedAdmin(t, store, "admin@localhub.app", "old-password", "admin")

	token, err := tm.Issue(strconv.FormatUint(uint64(admin.ID), 10), auth.RoleAdmin, "admin")
	require.NoError(t, err)

	resp, err := app.Test(jsonRequest(t, http.MethodPut, "/api/auth/change-password", fiber.Map{
		"currentPassword": "old-password",
		"newPassword":     "short",
	}, token))
	require.NoError(t, err)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
