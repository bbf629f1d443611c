package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/localhub-app/localhub-backend/internal/models"
	"github.com/localhub-app/localhub-backend/internal/storage"
)

// UserHandler serves the admin user-management endpoints.
type UserHandler struct {
	store storage.Store
}

func NewUserHandler(store storage.Store) *UserHandler {
	return &UserHandler{store: store}
}

func (h *UserHandler) GetUsers(c *fiber.Ctx) error {
	users, err := h.store.GetAllUsers()
	if err != nil {
		return serverError(c)
	}
	return c.JSON(users)
}

func (h *UserHandler) GetUserByID(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return badRequest(c, "Invalid user id")
	}

	user, err := h.store.GetUser(id)
	if errors.Is(err, storage.ErrNotFound) {
		return notFound(c, "User not found")
	}
	if err != nil {
		return serverError(c)
	}
	return c.JSON(user)
}

func (h *UserHandler) CreateUser(c *fiber.Ctx) error {
	var req struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Phone    string `json:"phone"`
		District string `json:"district"`
		UserType string `json:"userType"`
	}
	if err := c.BodyParser(&req); err != nil || req.Phone == "" {
		return badRequest(c, "Phone is required")
	}

	userType := req.UserType
	if userType == "" {
		userType = "individual"
	}

	user, err := h.store.CreateUser(&models.User{
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		District: req.District,
		UserType: userType,
		IsActive: true,
	})
	if errors.Is(err, storage.ErrDuplicate) {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"message": "User already exists",
		})
	}
	if err != nil {
		return serverError(c)
	}
	return c.Status(fiber.StatusCreated).JSON(user)
}

func (h *UserHandler) UpdateUser(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return badRequest(c, "Invalid user id")
	}

	var req struct {
		Name     string `json:"name"`
		Phone    string `json:"phone"`
		District string `json:"district"`
	}
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	user, err := h.store.GetUser(id)
	if errors.Is(err, storage.ErrNotFound) {
		return notFound(c, "User not found")
	}
	if err != nil {
		return serverError(c)
	}

	if req.Name != "" {
		user.Name = req.Name
	}
	if req.Phone != "" {
		user.Phone = models.NormalizePhone(req.Phone)
	}
	if req.District != "" {
		user.District = req.District
	}
	if err := h.store.UpdateUser(user); err != nil {
		return serverError(c)
	}
	return c.JSON(user)
}

func (h *UserHandler) DeleteUser(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return badRequest(c, "Invalid user id")
	}

	err = h.store.DeleteUser(id)
	if errors.Is(err, storage.ErrNotFound) {
		return notFound(c, "User not found")
	}
	if err != nil {
		return serverError(c)
	}
	return c.JSON(fiber.Map{"message": "User deleted successfully"})
}

func (h *UserHandler) ToggleUserStatus(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return badRequest(c, "Invalid user id")
	}

	user, err := h.store.ToggleUserStatus(id)
	if errors.Is(err, storage.ErrNotFound) {
		return notFound(c, "User not found")
	}
	if err != nil {
		return serverError(c)
	}
	return c.JSON(user)
}
