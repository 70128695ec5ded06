package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gurkanindibay/portfolio/internal/services"
)

type HealthHandler struct {
	portfolioService *services.PortfolioService
}

func NewHealthHandler(portfolioService *services.PortfolioService) *HealthHandler {
	return &HealthHandler{
		portfolioService: portfolioService,
	}
}

// HealthCheck reports liveness and whether the last fetch succeeded
func (h *HealthHandler) HealthCheck(c *gin.Context) {
	data := gin.H{
		"status":   "ok",
		"projects": len(h.portfolioService.Projects()),
	}
	if included := h.portfolioService.InclusionList(); len(included) > 0 {
		data["included"] = included
	}
	if err := h.portfolioService.LastError(); err != nil {
		data["status"] = "degraded"
		data["error"] = err.Error()
	}

	c.JSON(http.StatusOK, data)
}
