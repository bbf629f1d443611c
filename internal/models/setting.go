package models

import "gorm.io/gorm"

// Setting value types recognized by the settings handlers.
const (
	SettingTypeString  = "string"
	SettingTypeBoolean = "boolean"
	SettingTypeNumber  = "number"
	SettingTypeJSON    = "json"
)

// Setting is a single configuration entry, unique per (category, key).
// Values are stored as strings and decoded according to Type.
type Setting struct {
	gorm.Model

	Category    string `json:"category" gorm:"uniqueIndex:idx_settings_category_key;not null"`
	Key         string `json:"key" gorm:"uniqueIndex:idx_settings_category_key;not null"`
	Value       string `json:"value"`
	Type        string `json:"type" gorm:"default:string"`
	Description string `json:"description"`
}
