// internal/domain/order/service.go
package order

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/your-org/storefront-backend/internal/domain/cart"
	"github.com/your-org/storefront-backend/internal/domain/catalog"
	"github.com/your-org/storefront-backend/internal/domain/checkout"
	"github.com/your-org/storefront-backend/internal/domain/settings"
	"gorm.io/gorm"
)

var (
	// ErrNotFound is returned when the requested order does not exist.
	ErrNotFound = errors.New("order not found")

	// ErrInvalidTransition is returned when an admin tries to move an
	// order backwards or out of a terminal state.
	ErrInvalidTransition = errors.New("invalid status transition")
)

// Notifier receives order lifecycle events. Dispatch is fire-and-forget:
// implementations must never block the caller on delivery and their
// failures never reach the transaction that raised the event.
type Notifier interface {
	OrderCreated(o *Order)
	OrderStatusChanged(o *Order, status Status)
}

// Service handles order business logic
type Service struct {
	db       *gorm.DB
	cart     *cart.Service
	catalog  *catalog.Service
	settings *settings.Service
	notifier Notifier
}

// NewService creates a new order service
func NewService(db *gorm.DB, cartService *cart.Service, catalogService *catalog.Service, settingsService *settings.Service, notifier Notifier) *Service {
	return &Service{
		db:       db,
		cart:     cartService,
		catalog:  catalogService,
		settings: settingsService,
		notifier: notifier,
	}
}

// CreateRequest represents checkout data for a new order
type CreateRequest struct {
	CustomerName    string  `json:"customer_name" binding:"required"`
	CustomerEmail   string  `json:"customer_email" binding:"required,email"`
	ShippingAddress Address `json:"shipping_address" binding:"required"`
	Notes           string  `json:"notes,omitempty"`
}

// ListRequest represents order list query parameters
type ListRequest struct {
	Page      int    `form:"page,default=1"`
	Limit     int    `form:"limit,default=20"`
	Status    Status `form:"status"`
	Email     string `form:"email"`
	SortBy    string `form:"sort_by,default=created_at"`
	SortOrder string `form:"sort_order,default=desc"`
	DateFrom  string `form:"date_from"`
	DateTo    string `form:"date_to"`
}

// ListResponse represents orders with pagination
type ListResponse struct {
	Orders     []Order    `json:"orders"`
	Pagination Pagination `json:"pagination"`
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

// UpdateStatusRequest represents an admin status assignment
type UpdateStatusRequest struct {
	Status  Status `json:"status" binding:"required"`
	Comment string `json:"comment,omitempty"`
}

// Create materializes the owner's selected cart lines into an order.
// Item prices come from the cart snapshots; totals are recomputed here
// and stored as subtotal + shipping fee. The cart is cleared afterwards
// and creation notifications go out to the customer and the admin list.
func (s *Service) Create(ctx context.Context, owner cart.Owner, req *CreateRequest) (*Order, error) {
	selected, err := s.cart.SelectedLines(ctx, owner)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve cart: %w", err)
	}

	shippingRule, err := s.settings.GetShipping()
	if err != nil {
		return nil, err
	}

	totals, err := checkout.CalculateTotals(selected, shippingRule)
	if err != nil {
		return nil, err
	}

	order := Order{
		CustomerName:    req.CustomerName,
		CustomerEmail:   req.CustomerEmail,
		Status:          StatusPending,
		Subtotal:        totals.Subtotal,
		ShippingFee:     totals.ShippingFee,
		Total:           totals.Total,
		ShippingAddress: req.ShippingAddress,
		Notes:           req.Notes,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&order).Error; err != nil {
			return fmt.Errorf("failed to create order: %w", err)
		}

		order.OrderNumber = GenerateOrderNumber(order.ID, time.Now().UTC())
		if err := tx.Model(&order).Update("order_number", order.OrderNumber).Error; err != nil {
			return fmt.Errorf("failed to set order number: %w", err)
		}

		for _, l := range selected {
			item := Item{
				OrderID:   order.ID,
				ProductID: l.ProductID,
				VariantID: l.VariantID,
				Name:      l.Name,
				UnitPrice: l.UnitPrice,
				Quantity:  l.Quantity,
				LineTotal: l.LineTotal(),
			}
			if err := tx.Create(&item).Error; err != nil {
				return fmt.Errorf("failed to create order item: %w", err)
			}
			order.Items = append(order.Items, item)

			if err := s.catalog.DeductStock(tx, l.ProductID, l.VariantID, l.Quantity); err != nil {
				return err
			}
		}

		history := StatusHistory{OrderID: order.ID, Status: StatusPending, Comment: "Order created"}
		if err := tx.Create(&history).Error; err != nil {
			return fmt.Errorf("failed to create status history: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Remove the ordered lines; unselected lines stay in the cart.
	for _, l := range selected {
		if _, err := s.cart.Remove(ctx, owner, l.Key); err != nil {
			// Not fatal to the order, the shopper just keeps a stale line.
			break
		}
	}

	s.notifier.OrderCreated(&order)

	return &order, nil
}

// List retrieves orders with filtering and pagination
func (s *Service) List(req *ListRequest) (*ListResponse, error) {
	var orders []Order
	var total int64

	query := s.db.Model(&Order{}).Preload("Items")

	if req.Status != "" {
		query = query.Where("status = ?", req.Status)
	}
	if req.Email != "" {
		query = query.Where("customer_email = ?", req.Email)
	}
	if req.DateFrom != "" {
		query = query.Where("created_at >= ?", req.DateFrom)
	}
	if req.DateTo != "" {
		query = query.Where("created_at <= ?", req.DateTo)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count orders: %w", err)
	}

	query = query.Order(buildOrderClause(req.SortBy, req.SortOrder))

	offset := (req.Page - 1) * req.Limit
	if err := query.Offset(offset).Limit(req.Limit).Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve orders: %w", err)
	}

	totalPages := int((total + int64(req.Limit) - 1) / int64(req.Limit))
	return &ListResponse{
		Orders: orders,
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

// Get retrieves a single order by ID
func (s *Service) Get(id uint) (*Order, error) {
	var order Order
	result := s.db.
		Preload("Items").
		Preload("StatusHistory", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at DESC")
		}).
		First(&order, id)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to retrieve order: %w", result.Error)
	}
	return &order, nil
}

// GetByNumber retrieves a single order by its order number
func (s *Service) GetByNumber(orderNumber string) (*Order, error) {
	var order Order
	result := s.db.
		Preload("Items").
		Preload("StatusHistory", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at DESC")
		}).
		Where("order_number = ?", orderNumber).
		First(&order)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to retrieve order: %w", result.Error)
	}
	return &order, nil
}

// UpdateStatus assigns a new status to an order, records it in the
// history and hands the order to the notifier. The notification is
// fire-and-forget: the status write stands even if delivery fails.
func (s *Service) UpdateStatus(orderID uint, req *UpdateStatusRequest) (*Order, error) {
	order, err := s.Get(orderID)
	if err != nil {
		return nil, err
	}

	if !order.Status.CanTransitionTo(req.Status) {
		return nil, fmt.Errorf("%w: %s to %s", ErrInvalidTransition, order.Status, req.Status)
	}

	now := time.Now().UTC()
	updates := map[string]interface{}{
		"status":     req.Status,
		"updated_at": now,
	}
	switch req.Status {
	case StatusShipped:
		updates["shipped_at"] = now
	case StatusDelivered:
		updates["delivered_at"] = now
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(order).Updates(updates).Error; err != nil {
			return fmt.Errorf("failed to update order status: %w", err)
		}

		history := StatusHistory{OrderID: orderID, Status: req.Status, Comment: req.Comment}
		if err := tx.Create(&history).Error; err != nil {
			return fmt.Errorf("failed to create status history: %w", err)
		}

		if req.Status == StatusCancelled {
			for _, item := range order.Items {
				if err := s.catalog.RestoreStock(tx, item.ProductID, item.VariantID, item.Quantity); err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	order.Status = req.Status
	order.UpdatedAt = now

	s.notifier.OrderStatusChanged(order, req.Status)

	return order, nil
}

// Cancel cancels an order, restoring stock for its items
func (s *Service) Cancel(orderID uint, reason string) (*Order, error) {
	comment := "Order cancelled"
	if reason != "" {
		comment = fmt.Sprintf("Order cancelled: %s", reason)
	}
	return s.UpdateStatus(orderID, &UpdateStatusRequest{
		Status:  StatusCancelled,
		Comment: comment,
	})
}

func buildOrderClause(sortBy, sortOrder string) string {
	validSortFields := map[string]bool{
		"created_at":   true,
		"updated_at":   true,
		"total":        true,
		"status":       true,
		"order_number": true,
	}

	if !validSortFields[sortBy] {
		sortBy = "created_at"
	}
	if sortOrder != "asc" && sortOrder != "desc" {
		sortOrder = "desc"
	}
	return fmt.Sprintf("%s %s", sortBy, sortOrder)
}
