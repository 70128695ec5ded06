package services

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/gurkanindibay/portfolio/internal/models"
	"github.com/gurkanindibay/portfolio/pkg/logger"
)

var ErrVisitorRequired = errors.New("visitor ID is required")

// PreferenceStore persists per-visitor preferences.
type PreferenceStore interface {
	Get(visitorID, key string) (*models.Preference, error)
	Toggle(pref *models.Preference, alternate string) (string, error)
}

type ThemeService struct {
	store PreferenceStore
}

func NewThemeService(store PreferenceStore) *ThemeService {
	return &ThemeService{
		store: store,
	}
}

// Current returns the visitor's saved theme, light when none is saved or
// the store cannot be read.
func (s *ThemeService) Current(visitorID string) models.Theme {
	if visitorID == "" {
		return models.ThemeLight
	}

	pref, err := s.store.Get(visitorID, models.ThemePreferenceKey)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			logger.Component("theme").WithError(err).Warn("Could not read theme preference")
		}
		return models.ThemeLight
	}

	return models.ParseTheme(pref.Value)
}

// Toggle flips the visitor's theme and persists the new value. The flip
// happens in the store so concurrent toggles are never lost.
func (s *ThemeService) Toggle(visitorID string) (models.Theme, error) {
	if visitorID == "" {
		return "", ErrVisitorRequired
	}

	pref := models.NewPreference(visitorID, models.ThemePreferenceKey, string(models.ThemeDark))
	value, err := s.store.Toggle(pref, string(models.ThemeLight))
	if err != nil {
		return "", fmt.Errorf("failed to save theme: %w", err)
	}

	return models.ParseTheme(value), nil
}
