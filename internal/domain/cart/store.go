// internal/domain/cart/store.go
package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Owner identifies whose cart a request operates on: a logged-in customer
// or a guest session. Exactly one of the two should be set.
type Owner struct {
	UserID    *uint
	SessionID string
}

// Store abstracts cart persistence. The whole cart is read, mutated and
// written back as a unit; one shopper owns one cart (single-writer model).
type Store interface {
	Load(ctx context.Context, owner Owner) ([]Line, error)
	Save(ctx context.Context, owner Owner, lines []Line) error
	Clear(ctx context.Context, owner Owner) error
}

// guestCartTTL bounds how long an abandoned guest cart lives in Redis.
const guestCartTTL = 24 * time.Hour

// RedisStore keeps guest carts as a JSON blob per session with a TTL.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore creates a Redis-backed cart store
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

type redisCart struct {
	SessionID string    `json:"session_id"`
	Lines     []Line    `json:"lines"`
	UpdatedAt time.Time `json:"updated_at"`
}

func cartKey(sessionID string) string {
	return fmt.Sprintf("cart:session:%s", sessionID)
}

// Load retrieves a guest cart; a missing key is an empty cart.
func (s *RedisStore) Load(ctx context.Context, owner Owner) ([]Line, error) {
	if owner.SessionID == "" {
		return nil, fmt.Errorf("session ID required for guest cart")
	}

	data, err := s.client.Get(ctx, cartKey(owner.SessionID)).Result()
	if errors.Is(err, redis.Nil) {
		return []Line{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load guest cart: %w", err)
	}

	var stored redisCart
	if err := json.Unmarshal([]byte(data), &stored); err != nil {
		return nil, fmt.Errorf("failed to decode guest cart: %w", err)
	}
	return stored.Lines, nil
}

// Save writes the guest cart back with a refreshed TTL.
func (s *RedisStore) Save(ctx context.Context, owner Owner, lines []Line) error {
	if owner.SessionID == "" {
		return fmt.Errorf("session ID required for guest cart")
	}

	data, err := json.Marshal(redisCart{
		SessionID: owner.SessionID,
		Lines:     lines,
		UpdatedAt: time.Now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("failed to encode guest cart: %w", err)
	}

	if err := s.client.Set(ctx, cartKey(owner.SessionID), data, guestCartTTL).Err(); err != nil {
		return fmt.Errorf("failed to save guest cart: %w", err)
	}
	return nil
}

// Clear drops the guest cart key.
func (s *RedisStore) Clear(ctx context.Context, owner Owner) error {
	if err := s.client.Del(ctx, cartKey(owner.SessionID)).Err(); err != nil {
		return fmt.Errorf("failed to clear guest cart: %w", err)
	}
	return nil
}

// Item is the persisted row for a logged-in customer's cart line.
type Item struct {
	ID           uint            `gorm:"primaryKey" json:"id"`
	UserID       uint            `gorm:"not null;uniqueIndex:idx_cart_items_user_key" json:"user_id"`
	LineKey      string          `gorm:"not null;size:50;uniqueIndex:idx_cart_items_user_key" json:"line_key"`
	ProductID    uint            `gorm:"not null;index" json:"product_id"`
	VariantID    *uint           `gorm:"index" json:"variant_id"`
	Name         string          `gorm:"not null;size:255" json:"name"`
	UnitPrice    decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"unit_price"`
	Quantity     int             `gorm:"not null" json:"quantity"`
	StockCeiling int             `gorm:"not null" json:"stock_ceiling"`
	Selected     bool            `gorm:"default:true" json:"selected"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// TableName overrides
func (Item) TableName() string { return "cart_items" }

// GormStore keeps account carts as rows, one per line.
type GormStore struct {
	db *gorm.DB
}

// NewGormStore creates a database-backed cart store
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// Load retrieves all cart lines for a user.
func (s *GormStore) Load(ctx context.Context, owner Owner) ([]Line, error) {
	if owner.UserID == nil {
		return nil, fmt.Errorf("user ID required for account cart")
	}

	var items []Item
	err := s.db.WithContext(ctx).
		Where("user_id = ?", *owner.UserID).
		Order("created_at ASC").
		Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load account cart: %w", err)
	}

	lines := make([]Line, len(items))
	for i, item := range items {
		lines[i] = Line{
			Key:          item.LineKey,
			ProductID:    item.ProductID,
			VariantID:    item.VariantID,
			Name:         item.Name,
			UnitPrice:    item.UnitPrice,
			Quantity:     item.Quantity,
			StockCeiling: item.StockCeiling,
			Selected:     item.Selected,
			AddedAt:      item.CreatedAt,
		}
	}
	return lines, nil
}

// Save replaces the user's cart rows with the given lines in one
// transaction, so no partial cart state is ever written.
func (s *GormStore) Save(ctx context.Context, owner Owner, lines []Line) error {
	if owner.UserID == nil {
		return fmt.Errorf("user ID required for account cart")
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", *owner.UserID).Delete(&Item{}).Error; err != nil {
			return fmt.Errorf("failed to replace account cart: %w", err)
		}

		for _, line := range lines {
			item := Item{
				UserID:       *owner.UserID,
				LineKey:      line.Key,
				ProductID:    line.ProductID,
				VariantID:    line.VariantID,
				Name:         line.Name,
				UnitPrice:    line.UnitPrice,
				Quantity:     line.Quantity,
				StockCeiling: line.StockCeiling,
				Selected:     line.Selected,
				CreatedAt:    line.AddedAt,
			}
			if err := tx.Create(&item).Error; err != nil {
				return fmt.Errorf("failed to save cart line %s: %w", line.Key, err)
			}
		}
		return nil
	})
}

// Clear removes all cart rows for a user.
func (s *GormStore) Clear(ctx context.Context, owner Owner) error {
	if owner.UserID == nil {
		return fmt.Errorf("user ID required for account cart")
	}
	if err := s.db.WithContext(ctx).Where("user_id = ?", *owner.UserID).Delete(&Item{}).Error; err != nil {
		return fmt.Errorf("failed to clear account cart: %w", err)
	}
	return nil
}
