// internal/domain/catalog/service.go
package catalog

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// ErrNotFound is returned when a product or variant does not exist or is
// no longer visible.
var ErrNotFound = errors.New("catalog entry not found")

// Service handles catalog business logic
type Service struct {
	db *gorm.DB
}

// NewService creates a new catalog service
func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// ListRequest represents catalog list query parameters
type ListRequest struct {
	Page      int    `form:"page,default=1"`
	Limit     int    `form:"limit,default=20"`
	Status    Status `form:"status"`
	OnSale    *bool  `form:"on_sale"`
	Search    string `form:"search"`
	SortBy    string `form:"sort_by,default=created_at"`
	SortOrder string `form:"sort_order,default=desc"`
}

// ListResponse represents a paginated product listing
type ListResponse struct {
	Products   []ProductView `json:"products"`
	Pagination Pagination    `json:"pagination"`
}

// Pagination represents pagination information
type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
	HasNext    bool  `json:"has_next"`
	HasPrev    bool  `json:"has_prev"`
}

// ProductView is a product with its resolved price for display
type ProductView struct {
	Product
	Quote PriceQuote `json:"quote"`
}

// List retrieves products with filtering and pagination
func (s *Service) List(req *ListRequest) (*ListResponse, error) {
	var products []Product
	var total int64

	query := s.db.Model(&Product{}).Preload("Variants")

	if req.Status != "" {
		query = query.Where("status = ?", req.Status)
	}
	if req.OnSale != nil {
		query = query.Where("on_sale = ?", *req.OnSale)
	}
	if req.Search != "" {
		pattern := "%" + req.Search + "%"
		query = query.Where("name ILIKE ? OR sku ILIKE ?", pattern, pattern)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count products: %w", err)
	}

	query = query.Order(buildOrderClause(req.SortBy, req.SortOrder))

	offset := (req.Page - 1) * req.Limit
	if err := query.Offset(offset).Limit(req.Limit).Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve products: %w", err)
	}

	now := time.Now().UTC()
	views := make([]ProductView, len(products))
	for i, p := range products {
		views[i] = ProductView{
			Product: p,
			Quote:   ResolvePrice(p.Pricing, now),
		}
	}

	totalPages := int((total + int64(req.Limit) - 1) / int64(req.Limit))
	return &ListResponse{
		Products: views,
		Pagination: Pagination{
			Page:       req.Page,
			Limit:      req.Limit,
			Total:      total,
			TotalPages: totalPages,
			HasNext:    req.Page < totalPages,
			HasPrev:    req.Page > 1,
		},
	}, nil
}

// Get retrieves a single product with its variants
func (s *Service) Get(id uint) (*Product, error) {
	var product Product
	result := s.db.Preload("Variants").First(&product, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to retrieve product: %w", result.Error)
	}
	return &product, nil
}

// GetBySlug retrieves a single product by its slug
func (s *Service) GetBySlug(slug string) (*Product, error) {
	var product Product
	result := s.db.Preload("Variants").Where("slug = ?", slug).First(&product)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to retrieve product: %w", result.Error)
	}
	return &product, nil
}

// GetEntry resolves the sellable entry for (productID, variantID).
// A product with variants requires a variant id; its own pricing and
// stock fields are ignored.
func (s *Service) GetEntry(productID uint, variantID *uint) (*Entry, error) {
	product, err := s.Get(productID)
	if err != nil {
		return nil, err
	}

	if variantID == nil {
		if len(product.Variants) > 0 {
			return nil, fmt.Errorf("product %d requires a variant selection: %w", productID, ErrNotFound)
		}
		entry := EntryOf(product, nil)
		return &entry, nil
	}

	for i := range product.Variants {
		if product.Variants[i].ID == *variantID {
			entry := EntryOf(product, &product.Variants[i])
			return &entry, nil
		}
	}
	return nil, ErrNotFound
}

// Create creates a product, optionally with variants
func (s *Service) Create(product *Product) error {
	if err := s.db.Create(product).Error; err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

// Update saves changes to a product
func (s *Service) Update(product *Product) error {
	if err := s.db.Save(product).Error; err != nil {
		return fmt.Errorf("failed to update product: %w", err)
	}
	return nil
}

// Delete soft-deletes a product and its variants
func (s *Service) Delete(id uint) error {
	result := s.db.Select("Variants").Delete(&Product{ID: id})
	if result.Error != nil {
		return fmt.Errorf("failed to delete product: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// AddVariant attaches a variant to an existing product
func (s *Service) AddVariant(productID uint, variant *Variant) error {
	if _, err := s.Get(productID); err != nil {
		return err
	}
	variant.ProductID = productID
	if err := s.db.Create(variant).Error; err != nil {
		return fmt.Errorf("failed to create variant: %w", err)
	}
	return nil
}

// UpdateVariant saves changes to a variant
func (s *Service) UpdateVariant(variant *Variant) error {
	if err := s.db.Save(variant).Error; err != nil {
		return fmt.Errorf("failed to update variant: %w", err)
	}
	return nil
}

// DeleteVariant soft-deletes a variant
func (s *Service) DeleteVariant(id uint) error {
	result := s.db.Delete(&Variant{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete variant: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeductStock decrements the stock counter for ordered entries. Untracked
// entries are skipped.
func (s *Service) DeductStock(tx *gorm.DB, productID uint, variantID *uint, quantity int) error {
	if variantID != nil {
		result := tx.Model(&Variant{}).
			Where("id = ? AND track_stock = ?", *variantID, true).
			UpdateColumn("stock", gorm.Expr("GREATEST(stock - ?, 0)", quantity))
		if result.Error != nil {
			return fmt.Errorf("failed to deduct variant stock: %w", result.Error)
		}
		return nil
	}

	result := tx.Model(&Product{}).
		Where("id = ? AND track_stock = ?", productID, true).
		UpdateColumn("stock", gorm.Expr("GREATEST(stock - ?, 0)", quantity))
	if result.Error != nil {
		return fmt.Errorf("failed to deduct product stock: %w", result.Error)
	}
	return nil
}

// RestoreStock returns stock for a cancelled order's items
func (s *Service) RestoreStock(tx *gorm.DB, productID uint, variantID *uint, quantity int) error {
	if variantID != nil {
		result := tx.Model(&Variant{}).
			Where("id = ? AND track_stock = ?", *variantID, true).
			UpdateColumn("stock", gorm.Expr("stock + ?", quantity))
		if result.Error != nil {
			return fmt.Errorf("failed to restore variant stock: %w", result.Error)
		}
		return nil
	}

	result := tx.Model(&Product{}).
		Where("id = ? AND track_stock = ?", productID, true).
		UpdateColumn("stock", gorm.Expr("stock + ?", quantity))
	if result.Error != nil {
		return fmt.Errorf("failed to restore product stock: %w", result.Error)
	}
	return nil
}

func buildOrderClause(sortBy, sortOrder string) string {
	validSortFields := map[string]bool{
		"created_at":   true,
		"updated_at":   true,
		"retail_price": true,
		"name":         true,
		"sku":          true,
	}

	if !validSortFields[sortBy] {
		sortBy = "created_at"
	}
	if sortOrder != "asc" && sortOrder != "desc" {
		sortOrder = "desc"
	}
	return fmt.Sprintf("%s %s", sortBy, sortOrder)
}
