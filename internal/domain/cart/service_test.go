// internal/domain/cart/service_test.go
package cart

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memoryStore is an in-memory Store keyed by owner, with optional
// injected failures per operation.
type memoryStore struct {
	carts   map[string][]Line
	loadErr error
	saves   int
	clears  int
}

func newMemoryStore() *memoryStore {
	return &memoryStore{carts: map[string][]Line{}}
}

func (m *memoryStore) key(owner Owner) string {
	if owner.UserID != nil {
		return "user"
	}
	return "session:" + owner.SessionID
}

func (m *memoryStore) Load(_ context.Context, owner Owner) ([]Line, error) {
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	return m.carts[m.key(owner)], nil
}

func (m *memoryStore) Save(_ context.Context, owner Owner, lines []Line) error {
	m.saves++
	m.carts[m.key(owner)] = lines
	return nil
}

func (m *memoryStore) Clear(_ context.Context, owner Owner) error {
	m.clears++
	delete(m.carts, m.key(owner))
	return nil
}

func testServiceLine(key string, productID uint, qty int) Line {
	return Line{
		Key:          key,
		ProductID:    productID,
		Name:         "Desk Lamp",
		UnitPrice:    decimal.RequireFromString("19.99"),
		Quantity:     qty,
		StockCeiling: 10,
		Selected:     true,
	}
}

func TestMergeGuestCart_SumsIntoAccountAndClearsGuest(t *testing.T) {
	accounts := newMemoryStore()
	guests := newMemoryStore()
	svc := &Service{accountStore: accounts, guestStore: guests}

	guests.carts["session:abc"] = []Line{testServiceLine("1", 1, 3)}
	accounts.carts["user"] = []Line{testServiceLine("1", 1, 4)}

	require.NoError(t, svc.MergeGuestCart(context.Background(), 1, "abc"))

	merged := accounts.carts["user"]
	require.Len(t, merged, 1)
	assert.Equal(t, 7, merged[0].Quantity)
	assert.Empty(t, guests.carts, "guest cart must be cleared after the merge")
}

func TestMergeGuestCart_EmptyGuestCartIsNoOp(t *testing.T) {
	accounts := newMemoryStore()
	guests := newMemoryStore()
	svc := &Service{accountStore: accounts, guestStore: guests}

	accounts.carts["user"] = []Line{testServiceLine("1", 1, 2)}

	require.NoError(t, svc.MergeGuestCart(context.Background(), 1, "abc"))

	assert.Zero(t, accounts.saves)
	assert.Zero(t, guests.clears)
	assert.Len(t, accounts.carts["user"], 1)
}

func TestMergeGuestCart_PropagatesGuestStoreFailure(t *testing.T) {
	// A store outage during login must surface, not silently drop the
	// guest cart as "nothing to merge".
	accounts := newMemoryStore()
	guests := newMemoryStore()
	guests.loadErr = errors.New("connection refused")
	svc := &Service{accountStore: accounts, guestStore: guests}

	accounts.carts["user"] = []Line{testServiceLine("1", 1, 2)}

	err := svc.MergeGuestCart(context.Background(), 1, "abc")
	require.Error(t, err)
	assert.ErrorIs(t, err, guests.loadErr)

	assert.Zero(t, accounts.saves, "account cart must be left untouched")
	assert.Zero(t, guests.clears)
}
