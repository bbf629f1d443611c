package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/localhub-app/localhub-backend/internal/storage"
)

type DistrictHandler struct {
	store storage.Store
}

func NewDistrictHandler(store storage.Store) *DistrictHandler {
	return &DistrictHandler{store: store}
}

func (h *DistrictHandler) GetDistricts(c *fiber.Ctx) error {
	districts, err := h.store.GetAllDistricts()
	if err != nil {
		return serverError(c)
	}
	return c.JSON(districts)
}
