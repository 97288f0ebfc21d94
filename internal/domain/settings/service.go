// internal/domain/settings/service.go
package settings

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/your-org/storefront-backend/internal/config"
	"gorm.io/gorm"
)

// ShippingConfig is the process-wide shipping rule: a flat fee waived at
// or above the free-shipping threshold. A single row holds it.
type ShippingConfig struct {
	ID                          uint            `gorm:"primaryKey" json:"id"`
	ShippingFee                 decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"shipping_fee"`
	MinimumOrderForFreeShipping decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"minimum_order_for_free_shipping"`
	UpdatedAt                   time.Time       `json:"updated_at"`
}

// TableName overrides
func (ShippingConfig) TableName() string { return "shipping_config" }

// shippingConfigID pins the singleton row.
const shippingConfigID = 1

// Service reads and updates store-wide settings
type Service struct {
	db     *gorm.DB
	config *config.Config
}

// NewService creates a new settings service
func NewService(db *gorm.DB, cfg *config.Config) *Service {
	return &Service{db: db, config: cfg}
}

// UpdateShippingRequest represents an admin update to the shipping rule
type UpdateShippingRequest struct {
	ShippingFee                 decimal.Decimal `json:"shipping_fee" binding:"required"`
	MinimumOrderForFreeShipping decimal.Decimal `json:"minimum_order_for_free_shipping" binding:"required"`
}

// GetShipping returns the shipping rule, falling back to the configured
// environment defaults when no row has been written yet.
func (s *Service) GetShipping() (*ShippingConfig, error) {
	var cfg ShippingConfig
	err := s.db.First(&cfg, shippingConfigID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &ShippingConfig{
			ID:                          shippingConfigID,
			ShippingFee:                 s.config.Shipping.Fee,
			MinimumOrderForFreeShipping: s.config.Shipping.MinimumOrderForFreeShipping,
		}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load shipping config: %w", err)
	}
	return &cfg, nil
}

// UpdateShipping writes the shipping rule singleton
func (s *Service) UpdateShipping(req *UpdateShippingRequest) (*ShippingConfig, error) {
	if req.ShippingFee.IsNegative() || req.MinimumOrderForFreeShipping.IsNegative() {
		return nil, fmt.Errorf("shipping fee and threshold must not be negative")
	}

	cfg := ShippingConfig{
		ID:                          shippingConfigID,
		ShippingFee:                 req.ShippingFee,
		MinimumOrderForFreeShipping: req.MinimumOrderForFreeShipping,
	}
	if err := s.db.Save(&cfg).Error; err != nil {
		return nil, fmt.Errorf("failed to update shipping config: %w", err)
	}
	return &cfg, nil
}
