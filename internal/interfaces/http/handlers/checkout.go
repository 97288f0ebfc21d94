// internal/interfaces/http/handlers/checkout.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-backend/internal/config"
	"github.com/your-org/storefront-backend/internal/domain/cart"
	"github.com/your-org/storefront-backend/internal/domain/catalog"
	"github.com/your-org/storefront-backend/internal/domain/checkout"
	"github.com/your-org/storefront-backend/internal/domain/order"
	"github.com/your-org/storefront-backend/internal/domain/settings"
	"gorm.io/gorm"
)

// CheckoutHandler handles checkout preview and order placement
type CheckoutHandler struct {
	cartService     *cart.Service
	settingsService *settings.Service
	orderService    *order.Service
	log             *logrus.Logger
}

// NewCheckoutHandler creates a new checkout handler
func NewCheckoutHandler(db *gorm.DB, redisClient *redis.Client, cfg *config.Config, notifier order.Notifier, log *logrus.Logger) *CheckoutHandler {
	catalogService := catalog.NewService(db)
	cartService := cart.NewService(db, redisClient, catalogService)
	settingsService := settings.NewService(db, cfg)

	return &CheckoutHandler{
		cartService:     cartService,
		settingsService: settingsService,
		orderService:    order.NewService(db, cartService, catalogService, settingsService, notifier),
		log:             log,
	}
}

// GetSummary handles GET /checkout/summary: totals over the selected
// lines with the current shipping rule applied.
func (h *CheckoutHandler) GetSummary(c *gin.Context) {
	selected, err := h.cartService.SelectedLines(c.Request.Context(), ownerFromContext(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to retrieve cart",
		})
		return
	}

	shippingConfig, err := h.settingsService.GetShipping()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to load shipping configuration",
		})
		return
	}

	totals, err := checkout.CalculateTotals(selected, shippingConfig)
	if err != nil {
		if errors.Is(err, checkout.ErrEmptySelection) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error": "No items selected for checkout",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to calculate totals",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Checkout summary calculated successfully",
		"data": gin.H{
			"lines":  selected,
			"totals": totals,
		},
	})
}

// PlaceOrder handles POST /checkout
func (h *CheckoutHandler) PlaceOrder(c *gin.Context) {
	var req order.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	placed, err := h.orderService.Create(c.Request.Context(), ownerFromContext(c), &req)
	if err != nil {
		if errors.Is(err, checkout.ErrEmptySelection) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error": "No items selected for checkout",
			})
			return
		}
		h.log.WithError(err).Error("failed to place order")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to place order",
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Order placed successfully",
		"data":    placed,
	})
}
