package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/localhub-app/localhub-backend/internal/models"
	"github.com/localhub-app/localhub-backend/internal/storage"
)

type BusinessHandler struct {
	store storage.Store
}

func NewBusinessHandler(store storage.Store) *BusinessHandler {
	return &BusinessHandler{store: store}
}

func (h *BusinessHandler) GetBusinesses(c *fiber.Ctx) error {
	businesses, err := h.store.GetAllBusinesses()
	if err != nil {
		return serverError(c)
	}
	return c.JSON(businesses)
}

func (h *BusinessHandler) GetBusinessByID(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return badRequest(c, "Invalid business id")
	}

	business, err := h.store.GetBusiness(id)
	if errors.Is(err, storage.ErrNotFound) {
		return notFound(c, "Business not found")
	}
	if err != nil {
		return serverError(c)
	}
	return c.JSON(business)
}

func (h *BusinessHandler) CreateBusiness(c *fiber.Ctx) error {
	var req struct {
		Name     string `json:"name"`
		Category string `json:"category"`
		Owner    string `json:"owner"`
		Phone    string `json:"phone"`
		Address  string `json:"address"`
		District string `json:"district"`
	}
	if err := c.BodyParser(&req); err != nil || req.Name == "" {
		return badRequest(c, "Business name is required")
	}

	business, err := h.store.CreateBusiness(&models.Business{
		Name:     req.Name,
		Category: req.Category,
		Owner:    req.Owner,
		Phone:    req.Phone,
		Address:  req.Address,
		District: req.District,
		Status:   models.BusinessStatusPending,
	})
	if err != nil {
		return serverError(c)
	}
	return c.Status(fiber.StatusCreated).JSON(business)
}

func (h *BusinessHandler) UpdateBusiness(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return badRequest(c, "Invalid business id")
	}

	var req struct {
		Name     string `json:"name"`
		Category string `json:"category"`
		Owner    string `json:"owner"`
		Phone    string `json:"phone"`
		Address  string `json:"address"`
		District string `json:"district"`
	}
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	business, err := h.store.GetBusiness(id)
	if errors.Is(err, storage.ErrNotFound) {
		return notFound(c, "Business not found")
	}
	if err != nil {
		return serverError(c)
	}

	if req.Name != "" {
		business.Name = req.Name
	}
	if req.Category != "" {
		business.Category = req.Category
	}
	if req.Owner != "" {
		business.Owner = req.Owner
	}
	if req.Phone != "" {
		business.Phone = req.Phone
	}
	if req.Address != "" {
		business.Address = req.Address
	}
	if req.District != "" {
		business.District = req.District
	}
	if err := h.store.UpdateBusiness(business); err != nil {
		return serverError(c)
	}
	return c.JSON(business)
}

func (h *BusinessHandler) DeleteBusiness(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return badRequest(c, "Invalid business id")
	}

	err = h.store.DeleteBusiness(id)
	if errors.Is(err, storage.ErrNotFound) {
		return notFound(c, "Business not found")
	}
	if err != nil {
		return serverError(c)
	}
	return c.JSON(fiber.Map{"message": "Business deleted successfully"})
}

func (h *BusinessHandler) UpdateBusinessStatus(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return badRequest(c, "Invalid business id")
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	switch req.Status {
	case models.BusinessStatusActive, models.BusinessStatusPending, models.BusinessStatusInactive:
	default:
		return badRequest(c, "Unknown business status")
	}

	business, err := h.store.UpdateBusinessStatus(id, req.Status)
	if errors.Is(err, storage.ErrNotFound) {
		return notFound(c, "Business not found")
	}
	if err != nil {
		return serverError(c)
	}
	return c.JSON(business)
}
