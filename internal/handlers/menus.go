package handlers

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/localhub-app/localhub-backend/internal/models"
	"github.com/localhub-app/localhub-backend/internal/storage"
)

type MenuHandler struct {
	store storage.Store
}

func NewMenuHandler(store storage.Store) *MenuHandler {
	return &MenuHandler{store: store}
}

type menuResponse struct {
	ID          uint      `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Icon        string    `json:"icon"`
	Labels      []string  `json:"labels"`
	TimeFilter  string    `json:"timeFilter"`
	PostCount   int64     `json:"postCount"`
	IsActive    bool      `json:"isActive"`
	CreatedAt   time.Time `json:"createdAt"`
}

type menuPostResponse struct {
	ID            uint      `json:"id"`
	Title         string    `json:"title"`
	Content       string    `json:"content"`
	Author        string    `json:"author"`
	AuthorType    string    `json:"authorType"`
	AssignedLabel string    `json:"assignedLabel"`
	MenuID        uint      `json:"menuId"`
	Likes         int       `json:"likes"`
	Comments      int       `json:"comments"`
	CreatedAt     time.Time `json:"createdAt"`
}

func (h *MenuHandler) GetMenus(c *fiber.Ctx) error {
	menus, err := h.store.GetAllMenus()
	if err != nil {
		return serverError(c)
	}

	out := make([]menuResponse, 0, len(menus))
	for _, menu := range menus {
		count, err := h.store.CountPostsByMenu(menu.ID)
		if err != nil {
			return serverError(c)
		}
		out = append(out, h.menuResponse(menu, count))
	}
	return c.JSON(out)
}

func (h *MenuHandler) CreateMenu(c *fiber.Ctx) error {
	var req struct {
		Name        string   `json:"name"`
		Description string   `json:"description"`
		Icon        string   `json:"icon"`
		Labels      []string `json:"labels"`
		TimeFilter  string   `json:"timeFilter"`
	}
	if err := c.BodyParser(&req); err != nil || req.Name == "" {
		return badRequest(c, "Menu name is required")
	}

	menu, err := h.store.CreateMenu(&models.Menu{
		Name:        req.Name,
		Description: req.Description,
		Icon:        req.Icon,
		Labels:      encodeLabels(req.Labels),
		TimeFilter:  defaultTimeFilter(req.TimeFilter),
		IsActive:    true,
	})
	if err != nil {
		return serverError(c)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Menu created successfully",
		"menu":    h.menuResponse(menu, 0),
	})
}

func (h *MenuHandler) UpdateMenu(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return badRequest(c, "Invalid menu id")
	}

	var req struct {
		Name        string   `json:"name"`
		Description string   `json:"description"`
		Icon        string   `json:"icon"`
		Labels      []string `json:"labels"`
		TimeFilter  string   `json:"timeFilter"`
		IsActive    *bool    `json:"isActive"`
	}
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	menu, err := h.store.GetMenu(id)
	if errors.Is(err, storage.ErrNotFound) {
		return notFound(c, "Menu not found")
	}
	if err != nil {
		return serverError(c)
	}

	if req.Name != "" {
		menu.Name = req.Name
	}
	if req.Description != "" {
		menu.Description = req.Description
	}
	if req.Icon != "" {
		menu.Icon = req.Icon
	}
	if req.Labels != nil {
		menu.Labels = encodeLabels(req.Labels)
	}
	if req.TimeFilter != "" {
		menu.TimeFilter = req.TimeFilter
	}
	if req.IsActive != nil {
		menu.IsActive = *req.IsActive
	}
	if err := h.store.UpdateMenu(menu); err != nil {
		return serverError(c)
	}

	count, _ := h.store.CountPostsByMenu(menu.ID)
	return c.JSON(fiber.Map{
		"message": "Menu updated successfully",
		"menu":    h.menuResponse(menu, count),
	})
}

func (h *MenuHandler) DeleteMenu(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return badRequest(c, "Invalid menu id")
	}

	err = h.store.DeleteMenu(id)
	if errors.Is(err, storage.ErrNotFound) {
		return notFound(c, "Menu not found")
	}
	if err != nil {
		return serverError(c)
	}
	return c.JSON(fiber.Map{"message": "Menu deleted successfully"})
}

// GetMenuPosts lists the posts under a menu, optionally narrowed by the
// ?timeFilter query ("1month", "3months", "6months", "all").
func (h *MenuHandler) GetMenuPosts(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return badRequest(c, "Invalid menu id")
	}

	if _, err := h.store.GetMenu(id); errors.Is(err, storage.ErrNotFound) {
		return notFound(c, "Menu not found")
	} else if err != nil {
		return serverError(c)
	}

	posts, err := h.store.GetMenuPosts(id, timeFilterCutoff(c.Query("timeFilter")))
	if err != nil {
		return serverError(c)
	}
	return c.JSON(h.menuPosts(posts))
}

// GetAllLabels flattens every active menu's labels with per-label post
// counts.
func (h *MenuHandler) GetAllLabels(c *fiber.Ctx) error {
	menus, err := h.store.GetAllMenus()
	if err != nil {
		return serverError(c)
	}

	type labelResponse struct {
		MenuID    uint   `json:"menuId"`
		MenuName  string `json:"menuName"`
		MenuIcon  string `json:"menuIcon"`
		LabelName string `json:"labelName"`
		PostCount int    `json:"postCount"`
	}

	out := make([]labelResponse, 0)
	for _, menu := range menus {
		if !menu.IsActive {
			continue
		}
		for _, label := range decodeLabels(menu.Labels) {
			posts, err := h.store.GetLabelPosts(menu.ID, label)
			if err != nil {
				return serverError(c)
			}
			out = append(out, labelResponse{
				MenuID:    menu.ID,
				MenuName:  menu.Name,
				MenuIcon:  menu.Icon,
				LabelName: label,
				PostCount: len(posts),
			})
		}
	}
	return c.JSON(out)
}

func (h *MenuHandler) GetLabelPosts(c *fiber.Ctx) error {
	menuID, err := c.ParamsInt("menuId")
	if err != nil || menuID <= 0 {
		return badRequest(c, "Invalid menu id")
	}
	label := c.Params("labelName")

	posts, err := h.store.GetLabelPosts(uint(menuID), label)
	if err != nil {
		return serverError(c)
	}
	return c.JSON(h.menuPosts(posts))
}

func (h *MenuHandler) menuResponse(menu *models.Menu, postCount int64) menuResponse {
	return menuResponse{
		ID:          menu.ID,
		Name:        menu.Name,
		Description: menu.Description,
		Icon:        menu.Icon,
		Labels:      decodeLabels(menu.Labels),
		TimeFilter:  menu.TimeFilter,
		PostCount:   postCount,
		IsActive:    menu.IsActive,
		CreatedAt:   menu.CreatedAt,
	}
}

func (h *MenuHandler) menuPosts(posts []*models.Post) []menuPostResponse {
	out := make([]menuPostResponse, 0, len(posts))
	for _, post := range posts {
		author, authorType := h.resolveAuthor(post)
		var menuID uint
		if post.MenuID != nil {
			menuID = *post.MenuID
		}
		out = append(out, menuPostResponse{
			ID:            post.ID,
			Title:         post.Title,
			Content:       post.Content,
			Author:        author,
			AuthorType:    authorType,
			AssignedLabel: post.AssignedLabel,
			MenuID:        menuID,
			Likes:         post.LikesCount,
			Comments:      post.CommentsCount,
			CreatedAt:     post.CreatedAt,
		})
	}
	return out
}

// resolveAuthor prefers the business name over the individual author,
// matching how the directory displays posts.
func (h *MenuHandler) resolveAuthor(post *models.Post) (string, string) {
	if post.BusinessID != nil {
		if business, err := h.store.GetBusiness(*post.BusinessID); err == nil {
			return business.Name, "business"
		}
	}
	if post.UserID != nil {
		if user, err := h.store.GetUser(*post.UserID); err == nil {
			return user.Name, "individual"
		}
	}
	return "", "individual"
}

func encodeLabels(labels []string) string {
	if labels == nil {
		labels = []string{}
	}
	data, _ := json.Marshal(labels)
	return string(data)
}

func decodeLabels(raw string) []string {
	var labels []string
	if err := json.Unmarshal([]byte(raw), &labels); err != nil {
		return []string{}
	}
	return labels
}

func defaultTimeFilter(filter string) string {
	if filter == "" {
		return "all"
	}
	return filter
}

func timeFilterCutoff(filter string) *time.Time {
	var months int
	switch filter {
	case "1month":
		months = 1
	case "3months":
		months = 3
	case "6months":
		months = 6
	default:
		return nil
	}
	cutoff := time.Now().AddDate(0, -months, 0)
	return &cutoff
}
