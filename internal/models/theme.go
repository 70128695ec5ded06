package models

import (
	"time"

	"github.com/google/uuid"
)

type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// ThemePreferenceKey is the preference key holding the theme.
const ThemePreferenceKey = "theme"

// ParseTheme maps a stored value to a theme, defaulting to light.
func ParseTheme(value string) Theme {
	if Theme(value) == ThemeDark {
		return ThemeDark
	}
	return ThemeLight
}

// Toggle returns the opposite theme.
func (t Theme) Toggle() Theme {
	if t == ThemeLight {
		return ThemeDark
	}
	return ThemeLight
}

// Icon is the glyph class shown on the toggle: a moon offers dark mode,
// a sun offers light mode.
func (t Theme) Icon() string {
	if t == ThemeDark {
		return "fas fa-sun"
	}
	return "fas fa-moon"
}

// Preference is a persisted per-visitor key/value pair.
type Preference struct {
	ID        string    `json:"id"`
	VisitorID string    `json:"visitor_id"`
	Key       string    `json:"key"`
	Value     string    `json:"value"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewPreference(visitorID, key, value string) *Preference {
	return &Preference{
		ID:        uuid.New().String(),
		VisitorID: visitorID,
		Key:       key,
		Value:     value,
	}
}
