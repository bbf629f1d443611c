package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/localhub-app/localhub-backend/internal/models"
	"github.com/localhub-app/localhub-backend/internal/storage"
)

// ProfileHandler serves the app-facing profile endpoints, looked up by
// phone number rather than by numeric id.
type ProfileHandler struct {
	store storage.Store
}

func NewProfileHandler(store storage.Store) *ProfileHandler {
	return &ProfileHandler{store: store}
}

func (h *ProfileHandler) GetProfileByPhone(c *fiber.Ctx) error {
	phone := models.NormalizePhone(c.Params("phone"))

	user, err := h.store.GetUserByPhone(phone)
	if errors.Is(err, storage.ErrNotFound) {
		return notFound(c, "Profile not found")
	}
	if err != nil {
		return serverError(c)
	}
	return c.JSON(user)
}

func (h *ProfileHandler) UpdateProfileByPhone(c *fiber.Ctx) error {
	phone := models.NormalizePhone(c.Params("phone"))

	var req struct {
		Name             string `json:"name"`
		Email            string `json:"email"`
		District         string `json:"district"`
		UserType         string `json:"user_type"`
		ProfileType      string `json:"profile_type"`
		BusinessName     string `json:"business_name"`
		BusinessCategory string `json:"business_category"`
		Address          string `json:"address"`
		Avatar           string `json:"avatar"`
	}
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	user, err := h.store.GetUserByPhone(phone)
	if errors.Is(err, storage.ErrNotFound) {
		return notFound(c, "Profile not found")
	}
	if err != nil {
		return serverError(c)
	}

	if req.Name != "" {
		user.Name = req.Name
	}
	if req.Email != "" {
		user.Email = req.Email
	}
	if req.District != "" {
		user.District = req.District
	}
	if req.UserType != "" {
		user.UserType = req.UserType
	}
	if req.ProfileType != "" {
		user.ProfileType = req.ProfileType
	}
	if req.BusinessName != "" {
		user.BusinessName = req.BusinessName
	}
	if req.BusinessCategory != "" {
		user.BusinessCategory = req.BusinessCategory
	}
	if req.Address != "" {
		user.Address = req.Address
	}
	if req.Avatar != "" {
		user.Avatar = req.Avatar
	}

	if err := h.store.UpdateUser(user); err != nil {
		return serverError(c)
	}
	return c.JSON(fiber.Map{
		"message": "Profile updated successfully",
		"profile": user,
	})
}
