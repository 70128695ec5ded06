package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gurkanindibay/portfolio/internal/middleware"
	"github.com/gurkanindibay/portfolio/internal/services"
	"github.com/gurkanindibay/portfolio/pkg/logger"
)

type NotFoundHandler struct {
	themeService *services.ThemeService
}

func NewNotFoundHandler(themeService *services.ThemeService) *NotFoundHandler {
	return &NotFoundHandler{
		themeService: themeService,
	}
}

// NotFound renders the 404 page in the visitor's theme
func (h *NotFoundHandler) NotFound(c *gin.Context) {
	logger.WithField("path", c.Request.URL.Path).Debug("Route not found")

	c.HTML(http.StatusNotFound, "not_found", gin.H{
		"RequestedPath": c.Request.URL.Path,
		"Theme":         h.themeService.Current(middleware.GetVisitorID(c)),
	})
}
