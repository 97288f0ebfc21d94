// internal/interfaces/http/handlers/settings.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/storefront-backend/internal/config"
	"github.com/your-org/storefront-backend/internal/domain/settings"
	"gorm.io/gorm"
)

// SettingsHandler handles store-wide settings endpoints
type SettingsHandler struct {
	settingsService *settings.Service
}

// NewSettingsHandler creates a new settings handler
func NewSettingsHandler(db *gorm.DB, cfg *config.Config) *SettingsHandler {
	return &SettingsHandler{
		settingsService: settings.NewService(db, cfg),
	}
}

// GetShipping handles GET /admin/settings/shipping
func (h *SettingsHandler) GetShipping(c *gin.Context) {
	shippingConfig, err := h.settingsService.GetShipping()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to load shipping configuration",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Shipping configuration retrieved successfully",
		"data":    shippingConfig,
	})
}

// UpdateShipping handles PUT /admin/settings/shipping
func (h *SettingsHandler) UpdateShipping(c *gin.Context) {
	var req settings.UpdateShippingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	shippingConfig, err := h.settingsService.UpdateShipping(&req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Shipping configuration updated successfully",
		"data":    shippingConfig,
	})
}
