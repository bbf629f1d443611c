package handlers

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/localhub-app/localhub-backend/internal/storage"
)

type CategoryHandler struct {
	store storage.Store
}

func NewCategoryHandler(store storage.Store) *CategoryHandler {
	return &CategoryHandler{store: store}
}

func (h *CategoryHandler) GetCategories(c *fiber.Ctx) error {
	categories, err := h.store.GetAllCategories()
	if err != nil {
		return serverError(c)
	}
	return c.JSON(categories)
}

func (h *CategoryHandler) AddCategory(c *fiber.Ctx) error {
	var req struct {
		Name string `json:"name"`
	}
	if err := c.BodyParser(&req); err != nil || strings.TrimSpace(req.Name) == "" {
		return badRequest(c, "Category name is required")
	}

	category, err := h.store.CreateCategory(strings.TrimSpace(req.Name))
	if errors.Is(err, storage.ErrDuplicate) {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"message": "Category already exists",
		})
	}
	if err != nil {
		return serverError(c)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":  "Category added successfully",
		"category": category,
	})
}
