package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/localhub-app/localhub-backend/internal/models"
	"github.com/localhub-app/localhub-backend/internal/storage"
)

const popularHashtagLimit = 10

type HashtagHandler struct {
	store storage.Store
}

func NewHashtagHandler(store storage.Store) *HashtagHandler {
	return &HashtagHandler{store: store}
}

func (h *HashtagHandler) GetHashtags(c *fiber.Ctx) error {
	tags, err := h.store.GetAllHashtags()
	if err != nil {
		return serverError(c)
	}
	return c.JSON(tags)
}

func (h *HashtagHandler) GetPopularHashtags(c *fiber.Ctx) error {
	tags, err := h.store.GetPopularHashtags(popularHashtagLimit)
	if err != nil {
		return serverError(c)
	}
	return c.JSON(tags)
}

func (h *HashtagHandler) GetHashtagByID(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return badRequest(c, "Invalid hashtag id")
	}

	tag, err := h.store.GetHashtag(id)
	if errors.Is(err, storage.ErrNotFound) {
		return notFound(c, "Hashtag not found")
	}
	if err != nil {
		return serverError(c)
	}
	return c.JSON(tag)
}

func (h *HashtagHandler) CreateHashtag(c *fiber.Ctx) error {
	var req struct {
		Name  string `json:"name"`
		Color string `json:"color"`
	}
	if err := c.BodyParser(&req); err != nil || models.NormalizeHashtag(req.Name) == "" {
		return badRequest(c, "Hashtag name is required")
	}

	tag, err := h.store.CreateHashtag(&models.Hashtag{
		Name:  req.Name,
		Color: req.Color,
	})
	if errors.Is(err, storage.ErrDuplicate) {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"message": "Hashtag already exists",
		})
	}
	if err != nil {
		return serverError(c)
	}
	return c.Status(fiber.StatusCreated).JSON(tag)
}

func (h *HashtagHandler) UpdateHashtag(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return badRequest(c, "Invalid hashtag id")
	}

	var req struct {
		Name  string `json:"name"`
		Color string `json:"color"`
	}
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	tag, err := h.store.GetHashtag(id)
	if errors.Is(err, storage.ErrNotFound) {
		return notFound(c, "Hashtag not found")
	}
	if err != nil {
		return serverError(c)
	}

	if req.Name != "" {
		tag.Name = models.NormalizeHashtag(req.Name)
	}
	if req.Color != "" {
		tag.Color = req.Color
	}
	if err := h.store.UpdateHashtag(tag); err != nil {
		return serverError(c)
	}
	return c.JSON(tag)
}

func (h *HashtagHandler) DeleteHashtag(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return badRequest(c, "Invalid hashtag id")
	}

	err = h.store.DeleteHashtag(id)
	if errors.Is(err, storage.ErrNotFound) {
		return notFound(c, "Hashtag not found")
	}
	if err != nil {
		return serverError(c)
	}
	return c.JSON(fiber.Map{"message": "Hashtag deleted"})
}
