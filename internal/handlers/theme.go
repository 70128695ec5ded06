package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gurkanindibay/portfolio/internal/middleware"
	"github.com/gurkanindibay/portfolio/internal/services"
	"github.com/gurkanindibay/portfolio/pkg/logger"
)

type ThemeHandler struct {
	themeService *services.ThemeService
}

func NewThemeHandler(themeService *services.ThemeService) *ThemeHandler {
	return &ThemeHandler{
		themeService: themeService,
	}
}

// Toggle flips the visitor's theme and returns the new one with its icon
func (h *ThemeHandler) Toggle(c *gin.Context) {
	theme, err := h.themeService.Toggle(middleware.GetVisitorID(c))
	if err != nil {
		logger.WithError(err).Error("Failed to toggle theme")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save theme"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"theme": theme,
		"icon":  theme.Icon(),
	})
}
