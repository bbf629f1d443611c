package handlers_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/localhub-app/localhub-backend/internal/auth"
	"github.com/localhub-app/localhub-backend/internal/models"
)

func TestDashboardStats(t *testing.T) {
	app, store, tm := newTestApp(t)
	token, err := tm.Issue("1", auth.RoleViewer, "admin")
	require.NoError(t, err)

	active, err := store.CreateUser(&models.User{Phone: "9876543210", Name: "Asha", IsActive: true})
	require.NoError(t, err)
	require.NoError(t, store.TouchUserActivity(active.ID))

	_, err = store.CreateUser(&models.User{Phone: "9876543211", Name: "Biju", IsActive: true})
	require.NoError(t, err)

	_, err = store.CreateBusiness(&models.Business{Name: "Spice Corner", Status: models.BusinessStatusPending})
	require.NoError(t, err)
	_, err = store.CreateBusiness(&models.Business{Name: "Tea Stall", Status: models.BusinessStatusActive})
	require.NoError(t, err)

	_, err = store.CreatePost(&models.Post{Title: "Opening offer", Status: models.PostStatusPending})
	require.NoError(t, err)
	_, err = store.CreatePost(&models.Post{Title: "New menu", Status: models.PostStatusPublished})
	require.NoError(t, err)

	resp, err := app.Test(jsonRequest(t, http.MethodGet, "/api/dashboard/stats", nil, token))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	stats := decodeBody(t, resp)
	require.Equal(t, float64(2), stats["totalUsers"])
	require.Equal(t, float64(2), stats["totalBusinesses"])
	require.Equal(t, float64(2), stats["totalPosts"])
	require.Equal(t, float64(1), stats["activeUsers"])
	// One pending business plus one pending post.
	require.Equal(t, float64(2), stats["pendingApprovals"])
}

func TestDashboardRecentActivities(t *testing.T) {
	app, store, tm := newTestApp(t)
	token, err := tm.Issue("1", auth.RoleViewer, "admin")
	require.NoError(t, err)

	_, err = store.CreateUser(&models.User{Phone: "9876543210", Name: "Asha"})
	require.NoError(t, err)
	_, err = store.CreatePost(&models.Post{Title: "Weekend sale"})
	require.NoError(t, err)

	resp, err := app.Test(jsonRequest(t, http.MethodGet, "/api/dashboard/recent-activities", nil, token))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var activities []struct {
		Type      string    `json:"type"`
		Message   string    `json:"message"`
		Timestamp time.Time `json:"timestamp"`
		TimeAgo   string    `json:"timeAgo"`
	}
	decodeInto(t, resp, &activities)
	require.Len(t, activities, 2)
	for _, a := range activities {
		require.NotEmpty(t, a.Message)
		require.Equal(t, "just now", a.TimeAgo)
	}
}
