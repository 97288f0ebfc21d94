// internal/infrastructure/database/postgres/migration.go
package postgres

import (
	"fmt"
	"log"

	"github.com/your-org/storefront-backend/internal/config"
	"github.com/your-org/storefront-backend/internal/domain/cart"
	"github.com/your-org/storefront-backend/internal/domain/catalog"
	"github.com/your-org/storefront-backend/internal/domain/content"
	"github.com/your-org/storefront-backend/internal/domain/order"
	"github.com/your-org/storefront-backend/internal/domain/settings"
	"gorm.io/gorm"
)

// Migration handles database migrations
type Migration struct {
	db *gorm.DB
}

// NewMigration creates a new migration instance
func NewMigration(db *gorm.DB) *Migration {
	return &Migration{
		db: db,
	}
}

// RunAutoMigrations runs GORM auto-migrations for all models
func (m *Migration) RunAutoMigrations() error {
	log.Println("🔄 Running database auto-migrations...")

	// Models in dependency order
	models := []interface{}{
		// Catalog domain - base tables
		&catalog.Product{},
		&catalog.Variant{},

		// Cart domain
		&cart.Item{},

		// Order domain - dependent tables
		&order.Order{},
		&order.Item{},
		&order.StatusHistory{},

		// Content domain
		&content.Banner{},
		&content.MenuItem{},
		&content.BlogPost{},

		// Settings
		&settings.ShippingConfig{},
	}

	for _, model := range models {
		log.Printf("Migrating model: %T", model)
		if err := m.db.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate model %T: %w", model, err)
		}
	}

	log.Println("✅ Database auto-migrations completed successfully")
	return nil
}

// CreateIndexes creates additional indexes for better performance
func (m *Migration) CreateIndexes() error {
	log.Println("🔄 Creating additional database indexes...")

	indexes := []string{
		// Catalog indexes
		"CREATE INDEX IF NOT EXISTS idx_products_status_created ON products(status, created_at DESC)",
		"CREATE INDEX IF NOT EXISTS idx_products_slug ON products(slug)",
		"CREATE INDEX IF NOT EXISTS idx_product_variants_product ON product_variants(product_id)",

		// Cart indexes
		"CREATE INDEX IF NOT EXISTS idx_cart_items_user ON cart_items(user_id)",
		"CREATE INDEX IF NOT EXISTS idx_cart_items_created_at ON cart_items(created_at DESC)",

		// Order indexes
		"CREATE INDEX IF NOT EXISTS idx_orders_status_created ON orders(status, created_at DESC)",
		"CREATE INDEX IF NOT EXISTS idx_orders_customer_email ON orders(customer_email)",
		"CREATE INDEX IF NOT EXISTS idx_order_items_order ON order_items(order_id)",
		"CREATE INDEX IF NOT EXISTS idx_order_status_history_order ON order_status_history(order_id, created_at DESC)",

		// Content indexes
		"CREATE INDEX IF NOT EXISTS idx_banners_active_sort ON banners(is_active, sort_order)",
		"CREATE INDEX IF NOT EXISTS idx_menu_items_parent_sort ON menu_items(parent_id, sort_order)",
		"CREATE INDEX IF NOT EXISTS idx_blog_posts_published ON blog_posts(is_published, published_at DESC)",
		"CREATE INDEX IF NOT EXISTS idx_blog_posts_slug ON blog_posts(slug)",
	}

	successCount := 0
	failCount := 0

	for _, indexSQL := range indexes {
		if err := m.db.Exec(indexSQL).Error; err != nil {
			log.Printf("⚠️ Failed to create index: %v", err)
			failCount++
		} else {
			successCount++
		}
	}

	log.Printf("✅ Created %d indexes successfully (%d failed)", successCount, failCount)
	return nil
}

// SeedInitialData inserts initial data into the database
func (m *Migration) SeedInitialData(cfg *config.Config) error {
	log.Println("🌱 Seeding initial data...")

	if err := m.seedShippingConfig(cfg); err != nil {
		return fmt.Errorf("failed to seed shipping config: %w", err)
	}

	log.Println("✅ Initial data seeded successfully")
	return nil
}

// seedShippingConfig creates the shipping fee row from environment
// defaults when no row exists yet.
func (m *Migration) seedShippingConfig(cfg *config.Config) error {
	var existing settings.ShippingConfig
	result := m.db.First(&existing)
	if result.Error == nil {
		log.Println("⏭️ Shipping config already exists")
		return nil
	}
	if result.Error != gorm.ErrRecordNotFound {
		return result.Error
	}

	row := settings.ShippingConfig{
		ID:                          1,
		ShippingFee:                 cfg.Shipping.Fee,
		MinimumOrderForFreeShipping: cfg.Shipping.MinimumOrderForFreeShipping,
	}
	if err := m.db.Create(&row).Error; err != nil {
		return err
	}

	log.Println("✅ Created default shipping config")
	return nil
}
