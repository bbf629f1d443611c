package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/localhub-app/localhub-backend/internal/models"
	"github.com/localhub-app/localhub-backend/internal/storage"
)

type PostHandler struct {
	store storage.Store
}

func NewPostHandler(store storage.Store) *PostHandler {
	return &PostHandler{store: store}
}

func (h *PostHandler) GetPosts(c *fiber.Ctx) error {
	posts, err := h.store.GetAllPosts()
	if err != nil {
		return serverError(c)
	}
	return c.JSON(posts)
}

func (h *PostHandler) GetPostByID(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return badRequest(c, "Invalid post id")
	}

	post, err := h.store.GetPost(id)
	if errors.Is(err, storage.ErrNotFound) {
		return notFound(c, "Post not found")
	}
	if err != nil {
		return serverError(c)
	}
	return c.JSON(post)
}

func (h *PostHandler) CreatePost(c *fiber.Ctx) error {
	var req struct {
		Title      string `json:"title"`
		Content    string `json:"content"`
		UserID     *uint  `json:"userId"`
		BusinessID *uint  `json:"businessId"`
		District   string `json:"district"`
		MenuID     *uint  `json:"menuId"`
		Hashtags   string `json:"hashtags"`
	}
	if err := c.BodyParser(&req); err != nil || req.Title == "" {
		return badRequest(c, "Post title is required")
	}

	post, err := h.store.CreatePost(&models.Post{
		Title:      req.Title,
		Content:    req.Content,
		UserID:     req.UserID,
		BusinessID: req.BusinessID,
		District:   req.District,
		MenuID:     req.MenuID,
		Hashtags:   req.Hashtags,
		Status:     models.PostStatusPending,
	})
	if err != nil {
		return serverError(c)
	}
	return c.Status(fiber.StatusCreated).JSON(post)
}

func (h *PostHandler) DeletePost(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return badRequest(c, "Invalid post id")
	}

	err = h.store.DeletePost(id)
	if errors.Is(err, storage.ErrNotFound) {
		return notFound(c, "Post not found")
	}
	if err != nil {
		return serverError(c)
	}
	return c.JSON(fiber.Map{"message": "Post deleted successfully"})
}

func (h *PostHandler) UpdatePostStatus(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return badRequest(c, "Invalid post id")
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	switch req.Status {
	case models.PostStatusPublished, models.PostStatusPending, models.PostStatusRejected:
	default:
		return badRequest(c, "Unknown post status")
	}

	post, err := h.patchPost(id, func(p *models.Post) { p.Status = req.Status })
	if err != nil {
		return h.patchError(c, err)
	}
	return c.JSON(post)
}

func (h *PostHandler) SetPostDuration(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return badRequest(c, "Invalid post id")
	}

	var req struct {
		DurationDays int `json:"durationDays"`
	}
	if err := c.BodyParser(&req); err != nil || req.DurationDays < 0 {
		return badRequest(c, "Duration must be zero or more days")
	}

	post, err := h.patchPost(id, func(p *models.Post) { p.DurationDays = req.DurationDays })
	if err != nil {
		return h.patchError(c, err)
	}
	return c.JSON(post)
}

func (h *PostHandler) SetPostViewLimit(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return badRequest(c, "Invalid post id")
	}

	var req struct {
		ViewLimit int `json:"viewLimit"`
	}
	if err := c.BodyParser(&req); err != nil || req.ViewLimit < 0 {
		return badRequest(c, "View limit must be zero or more")
	}

	post, err := h.patchPost(id, func(p *models.Post) { p.ViewLimit = req.ViewLimit })
	if err != nil {
		return h.patchError(c, err)
	}
	return c.JSON(post)
}

func (h *PostHandler) AssignPostLabel(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return badRequest(c, "Invalid post id")
	}

	var req struct {
		Label string `json:"label"`
	}
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	post, err := h.patchPost(id, func(p *models.Post) { p.AssignedLabel = req.Label })
	if err != nil {
		return h.patchError(c, err)
	}
	return c.JSON(post)
}

func (h *PostHandler) patchPost(id uint, mutate func(*models.Post)) (*models.Post, error) {
	post, err := h.store.GetPost(id)
	if err != nil {
		return nil, err
	}
	mutate(post)
	if err := h.store.UpdatePost(post); err != nil {
		return nil, err
	}
	return post, nil
}

func (h *PostHandler) patchError(c *fiber.Ctx, err error) error {
	if errors.Is(err, storage.ErrNotFound) {
		return notFound(c, "Post not found")
	}
	return serverError(c)
}
