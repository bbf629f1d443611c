package handlers_test

import (
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"github.com/localhub-app/localhub-backend/internal/auth"
)

func TestSettingsTypedRoundTrip(t *testing.T) {
	app, _, tm := newTestApp(t)
	token, err := tm.Issue("1", auth.RoleAdmin, "admin")
	require.NoError(t, err)

	resp, err := app.Test(jsonRequest(t, http.MethodPut, "/api/settings/general", fiber.Map{
		"siteName":        "LocalHub",
		"maintenanceMode": true,
		"maxUploadMB":     25,
	}, token))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = app.Test(jsonRequest(t, http.MethodGet, "/api/settings", nil, token))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	general, ok := body["general"].(map[string]interface{})
	require.True(t, ok)
	require.Equal(t, "LocalHub", general["siteName"])
	require.Equal(t, true, general["maintenanceMode"])
	require.Equal(t, float64(25), general["maxUploadMB"])
}

func TestSettingsResetRestoresDefaults(t *testing.T) {
	app, _, tm := newTestApp(t)
	token, err := tm.Issue("1", auth.RoleAdmin, "admin")
	require.NoError(t, err)

	resp, err := app.Test(jsonRequest(t, http.MethodPut, "/api/settings/content", fiber.Map{
		"autoApprovePosts": true,
		"customKey":        "custom",
	}, token))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = app.Test(jsonRequest(t, http.MethodPost, "/api/settings/content/reset", nil, token))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = app.Test(jsonRequest(t, http.MethodGet, "/api/settings", nil, token))
	require.NoError(t, err)
	content := decodeBody(t, resp)["content"].(map[string]interface{})
	require.Equal(t, false, content["autoApprovePosts"])
	require.NotContains(t, content, "customKey")
}

func TestSettingsViewerCannotWrite(t *testing.T) {
	app, _, tm := newTestApp(t)
	viewer, err := tm.Issue("1", auth.RoleViewer, "admin")
	require.NoError(t, err)

	resp, err := app.Test(jsonRequest(t, http.MethodPut, "/api/settings/general", fiber.Map{
		"siteName": "Hijacked",
	}, viewer))
	require.NoError(t, err)
	require.Equal(t, http.StatusForbidden, resp.StatusCode)
}
