package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/localhub-app/localhub-backend/internal/models"
	"github.com/localhub-app/localhub-backend/internal/storage"
)

type SettingHandler struct {
	store storage.Store
}

func NewSettingHandler(store storage.Store) *SettingHandler {
	return &SettingHandler{store: store}
}

// GetSettings returns every setting grouped by category, with values
// decoded according to their declared type.
func (h *SettingHandler) GetSettings(c *fiber.Ctx) error {
	settings, err := h.store.GetAllSettings()
	if err != nil {
		return serverError(c)
	}

	grouped := make(map[string]map[string]interface{})
	for _, s := range settings {
		if grouped[s.Category] == nil {
			grouped[s.Category] = make(map[string]interface{})
		}
		grouped[s.Category][s.Key] = decodeSettingValue(s)
	}
	return c.JSON(grouped)
}

// UpdateCategorySettings upserts every key in the request body under the
// given category. Unknown keys are created, existing ones overwritten.
func (h *SettingHandler) UpdateCategorySettings(c *fiber.Ctx) error {
	category := c.Params("category")

	var values map[string]interface{}
	if err := c.BodyParser(&values); err != nil || len(values) == 0 {
		return badRequest(c, "Settings payload is required")
	}

	for key, value := range values {
		raw, settingType := encodeSettingValue(value)
		err := h.store.UpsertSetting(&models.Setting{
			Category: category,
			Key:      key,
			Value:    raw,
			Type:     settingType,
		})
		if err != nil {
			return serverError(c)
		}
	}

	return c.JSON(fiber.Map{
		"message": fmt.Sprintf("%s settings updated successfully", category),
	})
}

func (h *SettingHandler) GetSetting(c *fiber.Ctx) error {
	setting, err := h.store.GetSetting(c.Params("category"), c.Params("key"))
	if errors.Is(err, storage.ErrNotFound) {
		return notFound(c, "Setting not found")
	}
	if err != nil {
		return serverError(c)
	}

	return c.JSON(fiber.Map{
		"category":    setting.Category,
		"key":         setting.Key,
		"value":       decodeSettingValue(setting),
		"type":        setting.Type,
		"description": setting.Description,
	})
}

func (h *SettingHandler) CreateSetting(c *fiber.Ctx) error {
	var req struct {
		Category    string      `json:"category"`
		Key         string      `json:"key"`
		Value       interface{} `json:"value"`
		Description string      `json:"description"`
	}
	if err := c.BodyParser(&req); err != nil || req.Category == "" || req.Key == "" {
		return badRequest(c, "Category and key are required")
	}

	raw, settingType := encodeSettingValue(req.Value)
	setting, err := h.store.CreateSetting(&models.Setting{
		Category:    req.Category,
		Key:         req.Key,
		Value:       raw,
		Type:        settingType,
		Description: req.Description,
	})
	if errors.Is(err, storage.ErrDuplicate) {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"message": "Setting already exists",
		})
	}
	if err != nil {
		return serverError(c)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Setting created successfully",
		"setting": setting,
	})
}

func (h *SettingHandler) DeleteSetting(c *fiber.Ctx) error {
	err := h.store.DeleteSetting(c.Params("category"), c.Params("key"))
	if errors.Is(err, storage.ErrNotFound) {
		return notFound(c, "Setting not found")
	}
	if err != nil {
		return serverError(c)
	}
	return c.JSON(fiber.Map{"message": "Setting deleted successfully"})
}

// ResetCategorySettings drops the category and reinstates its defaults.
// Categories without defaults simply end up empty.
func (h *SettingHandler) ResetCategorySettings(c *fiber.Ctx) error {
	category := c.Params("category")

	if err := h.store.DeleteSettingsByCategory(category); err != nil {
		return serverError(c)
	}
	for _, setting := range defaultSettings(category) {
		if err := h.store.UpsertSetting(setting); err != nil {
			return serverError(c)
		}
	}

	return c.JSON(fiber.Map{
		"message": fmt.Sprintf("%s settings reset to defaults", category),
	})
}

func decodeSettingValue(s *models.Setting) interface{} {
	switch s.Type {
	case models.SettingTypeBoolean:
		return s.Value == "true"
	case models.SettingTypeNumber:
		if n, err := strconv.ParseFloat(s.Value, 64); err == nil {
			return n
		}
		return float64(0)
	case models.SettingTypeJSON:
		var v interface{}
		if err := json.Unmarshal([]byte(s.Value), &v); err == nil {
			return v
		}
		return s.Value
	default:
		return s.Value
	}
}

func encodeSettingValue(value interface{}) (string, string) {
	switch v := value.(type) {
	case bool:
		return strconv.FormatBool(v), models.SettingTypeBoolean
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), models.SettingTypeNumber
	case string:
		return v, models.SettingTypeString
	case nil:
		return "", models.SettingTypeString
	default:
		data, _ := json.Marshal(v)
		return string(data), models.SettingTypeJSON
	}
}

func defaultSettings(category string) []*models.Setting {
	switch category {
	case "general":
		return []*models.Setting{
			{Category: "general", Key: "siteName", Value: "LocalHub", Type: models.SettingTypeString},
			{Category: "general", Key: "maintenanceMode", Value: "false", Type: models.SettingTypeBoolean},
			{Category: "general", Key: "defaultDistrict", Value: "", Type: models.SettingTypeString},
		}
	case "content":
		return []*models.Setting{
			{Category: "content", Key: "autoApprovePosts", Value: "false", Type: models.SettingTypeBoolean},
			{Category: "content", Key: "defaultPostDuration", Value: "30", Type: models.SettingTypeNumber},
			{Category: "content", Key: "maxMediaPerPost", Value: "5", Type: models.SettingTypeNumber},
		}
	case "notifications":
		return []*models.Setting{
			{Category: "notifications", Key: "smsEnabled", Value: "true", Type: models.SettingTypeBoolean},
			{Category: "notifications", Key: "emailEnabled", Value: "false", Type: models.SettingTypeBoolean},
		}
	default:
		return nil
	}
}
