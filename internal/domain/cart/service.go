// internal/domain/cart/service.go
package cart

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/your-org/storefront-backend/internal/domain/catalog"
	"gorm.io/gorm"
)

// ErrOutOfStock is returned when an entry with tracked stock of zero is
// added to a cart.
var ErrOutOfStock = errors.New("item out of stock")

// Service handles cart business logic. It routes account carts to the
// database store and guest carts to the Redis store, applying the same
// merge and clamp rules to both.
type Service struct {
	accountStore Store
	guestStore   Store
	catalog      *catalog.Service
}

// NewService creates a new cart service
func NewService(db *gorm.DB, redisClient *redis.Client, catalogService *catalog.Service) *Service {
	return &Service{
		accountStore: NewGormStore(db),
		guestStore:   NewRedisStore(redisClient),
		catalog:      catalogService,
	}
}

// AddRequest represents an add-to-cart request
type AddRequest struct {
	ProductID uint  `json:"product_id" binding:"required"`
	VariantID *uint `json:"variant_id"`
	Quantity  int   `json:"quantity" binding:"required,min=1"`
}

// UpdateRequest represents a quantity update for one line
type UpdateRequest struct {
	Quantity int `json:"quantity" binding:"required,min=1"`
}

// SelectRequest toggles a line's checkout selection
type SelectRequest struct {
	Selected *bool `json:"selected" binding:"required"`
}

// Response represents a shopping cart with its lines and totals
type Response struct {
	Lines            []Line          `json:"lines"`
	ItemCount        int             `json:"item_count"`
	TotalQuantity    int             `json:"total_quantity"`
	SelectedSubtotal decimal.Decimal `json:"selected_subtotal"`
}

func (s *Service) store(owner Owner) Store {
	if owner.UserID != nil {
		return s.accountStore
	}
	return s.guestStore
}

// Get retrieves the cart for an owner. Lines whose catalog entry has
// vanished or gone inactive are dropped from the cart rather than
// failing the whole render.
func (s *Service) Get(ctx context.Context, owner Owner) (*Response, error) {
	store := s.store(owner)

	lines, err := store.Load(ctx, owner)
	if err != nil {
		return nil, err
	}

	kept := lines[:0]
	dropped := false
	for _, line := range lines {
		entry, err := s.catalog.GetEntry(line.ProductID, line.VariantID)
		if err != nil {
			if errors.Is(err, catalog.ErrNotFound) {
				dropped = true
				continue
			}
			return nil, err
		}
		if !entry.IsSellable() {
			dropped = true
			continue
		}
		kept = append(kept, line)
	}

	if dropped {
		if err := store.Save(ctx, owner, kept); err != nil {
			return nil, err
		}
	}

	return buildResponse(kept), nil
}

// Add adds an entry to the cart, merging with an existing line for the
// same (product, variant) key. The unit price snapshot is taken here,
// from the pricing resolver, for new lines only.
func (s *Service) Add(ctx context.Context, owner Owner, req *AddRequest) (*Response, error) {
	entry, err := s.catalog.GetEntry(req.ProductID, req.VariantID)
	if err != nil {
		return nil, err
	}
	if !entry.IsSellable() {
		return nil, catalog.ErrNotFound
	}

	ceiling := StockCeilingFor(entry.StockInfo)
	if ceiling == 0 {
		return nil, fmt.Errorf("%q: %w", entry.Name, ErrOutOfStock)
	}

	store := s.store(owner)
	lines, err := store.Load(ctx, owner)
	if err != nil {
		return nil, err
	}

	quote := catalog.ResolvePrice(entry.Pricing, time.Now().UTC())
	lines = mergeLine(lines, Line{
		Key:          LineKey(entry.ProductID, entry.VariantID),
		ProductID:    entry.ProductID,
		VariantID:    entry.VariantID,
		Name:         entry.Name,
		UnitPrice:    quote.EffectivePrice,
		Quantity:     req.Quantity,
		StockCeiling: ceiling,
		Selected:     true,
		AddedAt:      time.Now().UTC(),
	})

	if err := store.Save(ctx, owner, lines); err != nil {
		return nil, err
	}
	return buildResponse(lines), nil
}

// SetQuantity replaces a line's quantity with the clamped value. An
// unknown key is a no-op.
func (s *Service) SetQuantity(ctx context.Context, owner Owner, key string, quantity int) (*Response, error) {
	store := s.store(owner)
	lines, err := store.Load(ctx, owner)
	if err != nil {
		return nil, err
	}

	lines, changed := setLineQuantity(lines, key, quantity)
	if changed {
		if err := store.Save(ctx, owner, lines); err != nil {
			return nil, err
		}
	}
	return buildResponse(lines), nil
}

// Remove deletes a line. An absent key is a no-op, not an error.
func (s *Service) Remove(ctx context.Context, owner Owner, key string) (*Response, error) {
	store := s.store(owner)
	lines, err := store.Load(ctx, owner)
	if err != nil {
		return nil, err
	}

	remaining := removeLine(lines, key)
	if err := store.Save(ctx, owner, remaining); err != nil {
		return nil, err
	}
	return buildResponse(remaining), nil
}

// Select marks whether a line participates in the current checkout.
func (s *Service) Select(ctx context.Context, owner Owner, key string, selected bool) (*Response, error) {
	store := s.store(owner)
	lines, err := store.Load(ctx, owner)
	if err != nil {
		return nil, err
	}

	lines, changed := selectLine(lines, key, selected)
	if changed {
		if err := store.Save(ctx, owner, lines); err != nil {
			return nil, err
		}
	}
	return buildResponse(lines), nil
}

// Clear empties the cart (used post-checkout).
func (s *Service) Clear(ctx context.Context, owner Owner) error {
	return s.store(owner).Clear(ctx, owner)
}

// SelectedLines returns the lines included in the current checkout.
func (s *Service) SelectedLines(ctx context.Context, owner Owner) ([]Line, error) {
	resp, err := s.Get(ctx, owner)
	if err != nil {
		return nil, err
	}

	selected := make([]Line, 0, len(resp.Lines))
	for _, line := range resp.Lines {
		if line.Selected {
			selected = append(selected, line)
		}
	}
	return selected, nil
}

// MergeGuestCart folds a guest session's cart into the user's account
// cart on login, line by line through the usual merge rules.
func (s *Service) MergeGuestCart(ctx context.Context, userID uint, sessionID string) error {
	guestOwner := Owner{SessionID: sessionID}
	guestLines, err := s.guestStore.Load(ctx, guestOwner)
	if err != nil {
		return fmt.Errorf("failed to load guest cart: %w", err)
	}
	if len(guestLines) == 0 {
		return nil // nothing to merge
	}

	userOwner := Owner{UserID: &userID}
	lines, err := s.accountStore.Load(ctx, userOwner)
	if err != nil {
		return err
	}

	for _, line := range guestLines {
		lines = mergeLine(lines, line)
	}

	if err := s.accountStore.Save(ctx, userOwner, lines); err != nil {
		return err
	}
	return s.guestStore.Clear(ctx, guestOwner)
}

func buildResponse(lines []Line) *Response {
	resp := &Response{
		Lines:            lines,
		ItemCount:        len(lines),
		SelectedSubtotal: decimal.Zero,
	}
	for _, line := range lines {
		resp.TotalQuantity += line.Quantity
		if line.Selected {
			resp.SelectedSubtotal = resp.SelectedSubtotal.Add(line.LineTotal())
		}
	}
	return resp
}
