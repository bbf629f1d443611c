package handlers

import (
	"fmt"
	"sort"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/localhub-app/localhub-backend/internal/models"
	"github.com/localhub-app/localhub-backend/internal/storage"
)

const (
	activeUserWindow    = 7 * 24 * time.Hour
	recentActivityLimit = 10
)

type DashboardHandler struct {
	store storage.Store
	now   func() time.Time
}

func NewDashboardHandler(store storage.Store) *DashboardHandler {
	return &DashboardHandler{store: store, now: time.Now}
}

// GetStats aggregates the headline numbers for the admin dashboard.
// Pending approvals combine businesses and posts awaiting review.
func (h *DashboardHandler) GetStats(c *fiber.Ctx) error {
	totalUsers, err := h.store.CountUsers()
	if err != nil {
		return serverError(c)
	}
	totalBusinesses, err := h.store.CountBusinesses()
	if err != nil {
		return serverError(c)
	}
	totalPosts, err := h.store.CountPosts()
	if err != nil {
		return serverError(c)
	}
	activeUsers, err := h.store.CountActiveUsersSince(h.now().Add(-activeUserWindow))
	if err != nil {
		return serverError(c)
	}
	pendingBusinesses, err := h.store.CountBusinessesByStatus(models.BusinessStatusPending)
	if err != nil {
		return serverError(c)
	}
	pendingPosts, err := h.store.CountPostsByStatus(models.PostStatusPending)
	if err != nil {
		return serverError(c)
	}

	return c.JSON(fiber.Map{
		"totalUsers":       totalUsers,
		"totalBusinesses":  totalBusinesses,
		"totalPosts":       totalPosts,
		"activeUsers":      activeUsers,
		"pendingApprovals": pendingBusinesses + pendingPosts,
	})
}

type activity struct {
	Type      string    `json:"type"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	TimeAgo   string    `json:"timeAgo"`
}

// GetRecentActivities merges the latest signups, business registrations
// and posts into a single reverse-chronological feed.
func (h *DashboardHandler) GetRecentActivities(c *fiber.Ctx) error {
	since := h.now().Add(-activeUserWindow)

	users, err := h.store.GetRecentUsers(since, recentActivityLimit)
	if err != nil {
		return serverError(c)
	}
	businesses, err := h.store.GetRecentBusinesses(since, recentActivityLimit)
	if err != nil {
		return serverError(c)
	}
	posts, err := h.store.GetRecentPosts(since, recentActivityLimit)
	if err != nil {
		return serverError(c)
	}

	activities := make([]activity, 0, len(users)+len(businesses)+len(posts))
	for _, u := range users {
		activities = append(activities, activity{
			Type:      "user_registered",
			Message:   fmt.Sprintf("New user %s registered", u.Name),
			Timestamp: u.CreatedAt,
		})
	}
	for _, b := range businesses {
		activities = append(activities, activity{
			Type:      "business_registered",
			Message:   fmt.Sprintf("New business %s registered", b.Name),
			Timestamp: b.CreatedAt,
		})
	}
	for _, p := range posts {
		activities = append(activities, activity{
			Type:      "post_created",
			Message:   fmt.Sprintf("New post: %s", p.Title),
			Timestamp: p.CreatedAt,
		})
	}

	sort.Slice(activities, func(i, j int) bool {
		return activities[i].Timestamp.After(activities[j].Timestamp)
	})
	if len(activities) > recentActivityLimit {
		activities = activities[:recentActivityLimit]
	}
	for i := range activities {
		activities[i].TimeAgo = timeAgo(h.now(), activities[i].Timestamp)
	}

	return c.JSON(activities)
}

func timeAgo(now, t time.Time) string {
	d := now.Sub(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%d minutes ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%d hours ago", int(d.Hours()))
	default:
		return fmt.Sprintf("%d days ago", int(d.Hours()/24))
	}
}
