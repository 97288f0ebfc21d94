// internal/domain/catalog/entity.go
package catalog

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Status represents the lifecycle state of a catalog entry
type Status string

const (
	StatusActive     Status = "active"
	StatusInactive   Status = "inactive"
	StatusOutOfStock Status = "out_of_stock"
)

// Pricing holds the price fields shared by products and variants.
// If OnSale is true, at least one of SalePrice/SalePercentage should be
// set; when both are set, SalePrice wins.
type Pricing struct {
	RetailPrice    decimal.Decimal  `gorm:"type:numeric(12,2);not null" json:"retail_price"`
	WholesalePrice decimal.Decimal  `gorm:"type:numeric(12,2);not null" json:"wholesale_price"`
	OnSale         bool             `gorm:"default:false" json:"on_sale"`
	SalePrice      *decimal.Decimal `gorm:"type:numeric(12,2)" json:"sale_price,omitempty"`
	SalePercentage *decimal.Decimal `gorm:"type:numeric(5,2)" json:"sale_percentage,omitempty"`
	SaleStartsAt   *time.Time       `json:"sale_starts_at,omitempty"`
	SaleEndsAt     *time.Time       `json:"sale_ends_at,omitempty"`
}

// StockInfo holds the stock counter. Stock is a simple counter, not a
// ledger with holds. TrackStock false means stock is unknown and adds
// are bounded only by the soft cap.
type StockInfo struct {
	Stock      int  `gorm:"default:0" json:"stock"`
	TrackStock bool `gorm:"default:true" json:"track_stock"`
}

// Product represents a catalog product. A product with variants does not
// itself carry pricing or stock; those fields defer to the variant.
type Product struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	SKU         string `gorm:"uniqueIndex;not null;size:100" json:"sku"`
	Name        string `gorm:"not null;size:255" json:"name"`
	Slug        string `gorm:"uniqueIndex;not null;size:255" json:"slug"`
	Description string `gorm:"type:text" json:"description"`
	ImageURL    string `gorm:"size:500" json:"image_url"`

	Pricing   `gorm:"embedded" json:"pricing"`
	StockInfo `gorm:"embedded" json:"stock_info"`

	Status    Status         `gorm:"not null;default:'active';size:20" json:"status"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Variants []Variant `gorm:"foreignKey:ProductID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"variants,omitempty"`
}

// Variant represents one sellable variant of a product (size, color, pack
// count). Each variant is owned by exactly one product and carries its own
// pricing and stock.
type Variant struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	ProductID uint   `gorm:"not null;index" json:"product_id"`
	SKU       string `gorm:"uniqueIndex;not null;size:100" json:"sku"`
	Name      string `gorm:"not null;size:255" json:"name"`
	Options   string `gorm:"type:text" json:"options"` // JSON string for variant options

	Pricing   `gorm:"embedded" json:"pricing"`
	StockInfo `gorm:"embedded" json:"stock_info"`

	Status    Status         `gorm:"not null;default:'active';size:20" json:"status"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName overrides
func (Product) TableName() string { return "products" }
func (Variant) TableName() string { return "product_variants" }

// Entry is the resolved sellable unit the cart and pricing code work
// against: either a standalone product or one variant of a product.
type Entry struct {
	ProductID uint   `json:"product_id"`
	VariantID *uint  `json:"variant_id,omitempty"`
	Name      string `json:"name"`
	Status    Status `json:"status"`
	Pricing
	StockInfo
}

// EntryOf builds the sellable entry for a product, or for one of its
// variants when variant is non-nil. Variant pricing and stock win over
// the product's own fields.
func EntryOf(p *Product, v *Variant) Entry {
	if v == nil {
		return Entry{
			ProductID: p.ID,
			Name:      p.Name,
			Status:    p.Status,
			Pricing:   p.Pricing,
			StockInfo: p.StockInfo,
		}
	}

	name := p.Name
	if v.Name != "" {
		name = fmt.Sprintf("%s - %s", p.Name, v.Name)
	}

	id := v.ID
	return Entry{
		ProductID: p.ID,
		VariantID: &id,
		Name:      name,
		Status:    v.Status,
		Pricing:   v.Pricing,
		StockInfo: v.StockInfo,
	}
}

// IsSellable reports whether the entry can currently be added to a cart.
func (e Entry) IsSellable() bool {
	return e.Status == StatusActive
}
