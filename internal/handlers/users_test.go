package handlers_test

import (
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"github.com/localhub-app/localhub-backend/internal/auth"
	"github.com/localhub-app/localhub-backend/internal/storage"
)

func TestUserCRUD(t *testing.T) {
	app, store, tm := newTestApp(t)
	token, err := tm.Issue("1", auth.RoleSuperadmin, "admin")
	require.NoError(t, err)

	// Create
	resp, err := app.Test(jsonRequest(t, http.MethodPost, "/api/users", fiber.Map{
		"name":     "Asha",
		"phone":    "9876543210",
		"district": "Ernakulam",
	}, token))
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	created := decodeBody(t, resp)
	require.Equal(t, "+919876543210", created["phone"])
	require.EqualValues(t, 1, created["ID"])

	// Duplicate phone
	resp, err = app.Test(jsonRequest(t, http.MethodPost, "/api/users", fiber.Map{
		"name":  "Asha Again",
		"phone": "+919876543210",
	}, token))
	require.NoError(t, err)
	require.Equal(t, http.StatusConflict, resp.StatusCode)

	// List
	resp, err = app.Test(jsonRequest(t, http.MethodGet, "/api/users", nil, token))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// Update
	resp, err = app.Test(jsonRequest(t, http.MethodPut, "/api/users/1", fiber.Map{
		"district": "Thrissur",
	}, token))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "Thrissur", decodeBody(t, resp)["district"])

	// Toggle status
	resp, err = app.Test(jsonRequest(t, http.MethodPatch, "/api/users/1/toggle-status", nil, token))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, false, decodeBody(t, resp)["is_active"])

	// Delete, then the record is gone
	resp, err = app.Test(jsonRequest(t, http.MethodDelete, "/api/users/1", nil, token))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	_, err = store.GetUser(1)
	require.ErrorIs(t, err, storage.ErrNotFound)

	resp, err = app.Test(jsonRequest(t, http.MethodGet, "/api/users/1", nil, token))
	require.NoError(t, err)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestUserRoutesEnforcePermissions(t *testing.T) {
	app, _, tm := newTestApp(t)

	viewer, err := tm.Issue("1", auth.RoleViewer, "admin")
	require.NoError(t, err)
	admin, err := tm.Issue("2", auth.RoleAdmin, "admin")
	require.NoError(t, err)

	// Viewers can read but not write or delete.
	resp, err := app.Test(jsonRequest(t, http.MethodGet, "/api/users", nil, viewer))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = app.Test(jsonRequest(t, http.MethodPost, "/api/users", fiber.Map{
		"phone": "9876543210",
	}, viewer))
	require.NoError(t, err)
	require.Equal(t, http.StatusForbidden, resp.StatusCode)

	// Admins can write but only superadmins delete.
	resp, err = app.Test(jsonRequest(t, http.MethodPost, "/api/users", fiber.Map{
		"phone": "9876543210",
	}, admin))
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, err = app.Test(jsonRequest(t, http.MethodDelete, "/api/users/1", nil, admin))
	require.NoError(t, err)
	require.Equal(t, http.StatusForbidden, resp.StatusCode)

	// No token at all.
	resp, err = app.Test(jsonRequest(t, http.MethodGet, "/api/users", nil, ""))
	require.NoError(t, err)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
